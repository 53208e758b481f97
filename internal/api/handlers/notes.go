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

type notePayload struct {
	BookID string     `json:"book_id" validate:"required"`
	Text   string     `json:"text" validate:"required"`
	Page   int        `json:"page" validate:"gte=0"`
	Date   *time.Time `json:"date"`
}

// ListNotes handles GET /api/notes, optionally filtered by "book_id".
func ListNotes(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notes, err := store.ListNotes(r.Context(), r.URL.Query().Get("book_id"))
		if err != nil {
			slog.Error("failed to list notes", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to list notes")
			return
		}

		if notes == nil {
			notes = []models.Note{}
		}
		writeJSON(w, http.StatusOK, notes)
	}
}

// AddNote handles POST /api/notes.
func AddNote(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body notePayload
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

		note := &models.Note{
			BookID: body.BookID,
			Text:   body.Text,
			Page:   body.Page,
			Date:   date,
		}
		if err := store.AddNote(r.Context(), note); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Book not found")
				return
			}
			slog.Error("failed to add note", "book_id", body.BookID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to add note")
			return
		}

		writeJSON(w, http.StatusCreated, note)
	}
}

// DeleteNote handles DELETE /api/notes/{id}.
func DeleteNote(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := store.DeleteNote(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Note not found")
				return
			}
			slog.Error("failed to delete note", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to delete note")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
