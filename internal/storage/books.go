package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khanhlinh1810/pagetrail/internal/models"
)

// AddBook inserts a new book and assigns it an ID. The book's CreatedAt is
// filled in from the stored row.
func (s *Store) AddBook(ctx context.Context, b *models.Book) error {
	b.ID = uuid.NewString()
	if b.Status == "" {
		b.Status = models.StatusToRead
	}

	var targetDate any
	if b.TargetDate != nil {
		targetDate = fmtTime(*b.TargetDate)
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO books (id, title, author, cover, total_pages, current_page, status, start_date, target_date, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING created_at`,
		b.ID, b.Title, b.Author, b.Cover, b.TotalPages, b.CurrentPage,
		b.Status, fmtTime(b.StartDate), targetDate, b.Notes,
	).Scan(&scanTime{&b.CreatedAt})
	if err != nil {
		return fmt.Errorf("inserting book: %w", err)
	}
	return nil
}

// GetBook returns a single book by ID, or ErrNotFound.
func (s *Store) GetBook(ctx context.Context, id string) (*models.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, author, cover, total_pages, current_page, status, start_date, target_date, notes, created_at
		 FROM books WHERE id = ?`, id)

	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying book %s: %w", id, err)
	}
	return b, nil
}

// ListBooks returns all books, newest first. If status is non-empty only
// books with that status are returned; the "reading" filter backs the
// continue-reading view.
func (s *Store) ListBooks(ctx context.Context, status string) ([]models.Book, error) {
	query := `SELECT id, title, author, cover, total_pages, current_page, status, start_date, target_date, notes, created_at
	          FROM books`
	var args []any
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", err)
	}
	return books, nil
}

// UpdateBook replaces a book's editable fields. The ID and CreatedAt are
// never changed.
func (s *Store) UpdateBook(ctx context.Context, b *models.Book) error {
	var targetDate any
	if b.TargetDate != nil {
		targetDate = fmtTime(*b.TargetDate)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE books
		 SET title = ?, author = ?, cover = ?, total_pages = ?, current_page = ?,
		     status = ?, start_date = ?, target_date = ?, notes = ?
		 WHERE id = ?`,
		b.Title, b.Author, b.Cover, b.TotalPages, b.CurrentPage,
		b.Status, fmtTime(b.StartDate), targetDate, b.Notes, b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating book %s: %w", b.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update of book %s: %w", b.ID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBook removes a book. The schema's foreign keys cascade the delete
// to the book's sessions, quotes, and notes.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting book %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete of book %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTime adapts a *time.Time for scanning stored text timestamps.
type scanTime struct {
	t *time.Time
}

func (st *scanTime) Scan(v any) error {
	switch x := v.(type) {
	case string:
		*st.t = parseTime(x)
	case []byte:
		*st.t = parseTime(string(x))
	case time.Time:
		*st.t = x.UTC()
	case nil:
		*st.t = time.Time{}
	default:
		return fmt.Errorf("unsupported timestamp type %T", v)
	}
	return nil
}

func scanBook(row rowScanner) (*models.Book, error) {
	var (
		b          models.Book
		targetDate sql.NullString
	)
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.Cover, &b.TotalPages, &b.CurrentPage,
		&b.Status, &scanTime{&b.StartDate}, &targetDate, &b.Notes, &scanTime{&b.CreatedAt},
	)
	if err != nil {
		return nil, err
	}
	if targetDate.Valid {
		td := parseTime(targetDate.String)
		b.TargetDate = &td
	}
	return &b, nil
}
