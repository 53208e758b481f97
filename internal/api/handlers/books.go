package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/khanhlinh1810/pagetrail/internal/models"
	"github.com/khanhlinh1810/pagetrail/internal/storage"
)

// bookPayload is the request body for creating or updating a book.
type bookPayload struct {
	Title       string     `json:"title" validate:"required"`
	Author      string     `json:"author" validate:"required"`
	Cover       string     `json:"cover"`
	TotalPages  int        `json:"total_pages" validate:"gt=0"`
	CurrentPage int        `json:"current_page" validate:"gte=0"`
	Status      string     `json:"status" validate:"omitempty,oneof=to-read reading on-hold completed"`
	StartDate   *time.Time `json:"start_date"`
	TargetDate  *time.Time `json:"target_date"`
	Notes       string     `json:"notes"`
}

// ListBooks handles GET /api/books. The optional "status" query parameter
// filters by reading status; ?status=reading is the continue-reading view.
func ListBooks(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")

		books, err := store.ListBooks(r.Context(), status)
		if err != nil {
			slog.Error("failed to list books", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to list books")
			return
		}

		if books == nil {
			books = []models.Book{}
		}
		writeJSON(w, http.StatusOK, books)
	}
}

// AddBook handles POST /api/books.
func AddBook(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body bookPayload
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if err := validate.Struct(body); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}

		startDate := time.Now()
		if body.StartDate != nil {
			startDate = *body.StartDate
		}

		book := &models.Book{
			Title:       body.Title,
			Author:      body.Author,
			Cover:       body.Cover,
			TotalPages:  body.TotalPages,
			CurrentPage: body.CurrentPage,
			Status:      body.Status,
			StartDate:   startDate,
			TargetDate:  body.TargetDate,
			Notes:       body.Notes,
		}
		if err := store.AddBook(r.Context(), book); err != nil {
			slog.Error("failed to add book", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to add book")
			return
		}

		writeJSON(w, http.StatusCreated, book)
	}
}

// GetBook handles GET /api/books/{id}.
func GetBook(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		book, err := store.GetBook(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Book not found")
				return
			}
			slog.Error("failed to get book", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to get book")
			return
		}

		writeJSON(w, http.StatusOK, book)
	}
}

// UpdateBook handles PUT /api/books/{id}. The whole editable surface is
// replaced; session logging advances pages through POST /api/sessions
// instead.
func UpdateBook(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var body bookPayload
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if err := validate.Struct(body); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}

		current, err := store.GetBook(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Book not found")
				return
			}
			slog.Error("failed to load book for update", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update book")
			return
		}

		book := &models.Book{
			ID:          id,
			Title:       body.Title,
			Author:      body.Author,
			Cover:       body.Cover,
			TotalPages:  body.TotalPages,
			CurrentPage: body.CurrentPage,
			Status:      body.Status,
			StartDate:   current.StartDate,
			TargetDate:  body.TargetDate,
			Notes:       body.Notes,
		}
		if body.Status == "" {
			book.Status = current.Status
		}
		if body.StartDate != nil {
			book.StartDate = *body.StartDate
		}

		if err := store.UpdateBook(r.Context(), book); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Book not found")
				return
			}
			slog.Error("failed to update book", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update book")
			return
		}

		writeJSON(w, http.StatusOK, book)
	}
}

// DeleteBook handles DELETE /api/books/{id}. Sessions, quotes, and notes
// logged against the book are removed with it.
func DeleteBook(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := store.DeleteBook(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Book not found")
				return
			}
			slog.Error("failed to delete book", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to delete book")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
