package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/khanhlinh1810/pagetrail/internal/models"
	"github.com/khanhlinh1810/pagetrail/internal/stats"
	"github.com/khanhlinh1810/pagetrail/internal/storage"
)

// goalPayload is the request body for creating a goal. A positive target is
// enforced here; the progress evaluator assumes it.
type goalPayload struct {
	Type      string     `json:"type" validate:"required,oneof=pages books time"`
	Target    int        `json:"target" validate:"gt=0"`
	Period    string     `json:"period" validate:"required,oneof=daily weekly monthly yearly custom"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// goalWithProgress pairs a goal with its evaluated progress.
type goalWithProgress struct {
	models.ReadingGoal
	Progress stats.GoalProgress `json:"progress"`
}

// ListGoals handles GET /api/goals. Each goal is returned with its progress
// evaluated against stats freshly computed from the current snapshot.
func ListGoals(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		goals, err := store.ListGoals(ctx)
		if err != nil {
			slog.Error("failed to list goals", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to list goals")
			return
		}

		snap, err := store.LoadSnapshot(ctx)
		if err != nil {
			slog.Error("failed to load snapshot", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to compute goal progress")
			return
		}
		current := stats.Compute(snap.Books, snap.Sessions, time.Now())

		out := make([]goalWithProgress, 0, len(goals))
		for _, g := range goals {
			out = append(out, goalWithProgress{
				ReadingGoal: g,
				Progress:    stats.EvaluateGoal(g, current),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// AddGoal handles POST /api/goals.
func AddGoal(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body goalPayload
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if err := validate.Struct(body); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		if body.Period == models.PeriodCustom && body.EndDate == nil {
			writeError(w, http.StatusBadRequest, "end_date is required for custom periods")
			return
		}

		startDate := time.Now()
		if body.StartDate != nil {
			startDate = *body.StartDate
		}

		goal := &models.ReadingGoal{
			Type:      body.Type,
			Target:    body.Target,
			Period:    body.Period,
			StartDate: startDate,
			EndDate:   body.EndDate,
		}
		if err := store.AddGoal(r.Context(), goal); err != nil {
			slog.Error("failed to add goal", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to add goal")
			return
		}

		writeJSON(w, http.StatusCreated, goal)
	}
}

// UpdateGoal handles PATCH /api/goals/{id}. It updates the user-controlled
// completed flag and/or the target.
func UpdateGoal(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var body struct {
			Completed *bool `json:"completed"`
			Target    *int  `json:"target"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		if body.Target != nil {
			if *body.Target <= 0 {
				writeError(w, http.StatusBadRequest, "target must be greater than 0")
				return
			}
			if err := store.UpdateGoalTarget(r.Context(), id, *body.Target); err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					writeError(w, http.StatusNotFound, "Goal not found")
					return
				}
				slog.Error("failed to update goal target", "id", id, "error", err)
				writeError(w, http.StatusInternalServerError, "Failed to update goal")
				return
			}
		}

		if body.Completed != nil {
			if err := store.SetGoalCompleted(r.Context(), id, *body.Completed); err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					writeError(w, http.StatusNotFound, "Goal not found")
					return
				}
				slog.Error("failed to toggle goal", "id", id, "error", err)
				writeError(w, http.StatusInternalServerError, "Failed to update goal")
				return
			}
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

// DeleteGoal handles DELETE /api/goals/{id}.
func DeleteGoal(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := store.DeleteGoal(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Goal not found")
				return
			}
			slog.Error("failed to delete goal", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to delete goal")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
