package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/khanhlinh1810/pagetrail/internal/models"
	"github.com/khanhlinh1810/pagetrail/internal/storage"
)

// sessionPayload is the request body for logging a reading session. Page
// geometry is validated here so invalid sessions never reach storage or
// the stats engine.
type sessionPayload struct {
	BookID    string     `json:"book_id" validate:"required"`
	Date      *time.Time `json:"date"`
	StartPage int        `json:"start_page" validate:"gte=0"`
	EndPage   int        `json:"end_page" validate:"gtfield=StartPage"`
	Duration  int        `json:"duration" validate:"gt=0"`
	Notes     string     `json:"notes"`
}

// ListSessions handles GET /api/sessions. The optional "book_id" query
// parameter restricts the result to one book.
func ListSessions(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookID := r.URL.Query().Get("book_id")

		sessions, err := store.ListSessions(r.Context(), bookID)
		if err != nil {
			slog.Error("failed to list sessions", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to list sessions")
			return
		}

		if sessions == nil {
			sessions = []models.ReadingSession{}
		}
		writeJSON(w, http.StatusOK, sessions)
	}
}

// AddSession handles POST /api/sessions. On success the session's book has
// been advanced (page cursor, status promotion, completion) in the same
// transaction.
func AddSession(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body sessionPayload
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if err := validate.Struct(body); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}

		date := time.Now()
		if body.Date != nil {
			date = *body.Date
		}

		sess := &models.ReadingSession{
			BookID:    body.BookID,
			Date:      date,
			StartPage: body.StartPage,
			EndPage:   body.EndPage,
			Duration:  body.Duration,
			Notes:     body.Notes,
		}
		if err := store.AddSession(r.Context(), sess); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Book not found")
				return
			}
			if strings.Contains(err.Error(), "exceeds book length") {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			slog.Error("failed to add session", "book_id", body.BookID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to add session")
			return
		}

		writeJSON(w, http.StatusCreated, sess)
	}
}

// DeleteSession handles DELETE /api/sessions/{id}.
func DeleteSession(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := store.DeleteSession(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Session not found")
				return
			}
			slog.Error("failed to delete session", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to delete session")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
