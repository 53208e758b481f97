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

type quotePayload struct {
	BookID string     `json:"book_id" validate:"required"`
	Text   string     `json:"text" validate:"required"`
	Page   int        `json:"page" validate:"gte=0"`
	Date   *time.Time `json:"date"`
	Notes  string     `json:"notes"`
}

// ListQuotes handles GET /api/quotes, optionally filtered by "book_id".
func ListQuotes(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quotes, err := store.ListQuotes(r.Context(), r.URL.Query().Get("book_id"))
		if err != nil {
			slog.Error("failed to list quotes", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to list quotes")
			return
		}

		if quotes == nil {
			quotes = []models.Quote{}
		}
		writeJSON(w, http.StatusOK, quotes)
	}
}

// AddQuote handles POST /api/quotes.
func AddQuote(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body quotePayload
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

		quote := &models.Quote{
			BookID: body.BookID,
			Text:   body.Text,
			Page:   body.Page,
			Date:   date,
			Notes:  body.Notes,
		}
		if err := store.AddQuote(r.Context(), quote); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Book not found")
				return
			}
			slog.Error("failed to add quote", "book_id", body.BookID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to add quote")
			return
		}

		writeJSON(w, http.StatusCreated, quote)
	}
}

// DeleteQuote handles DELETE /api/quotes/{id}.
func DeleteQuote(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := store.DeleteQuote(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Quote not found")
				return
			}
			slog.Error("failed to delete quote", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to delete quote")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
