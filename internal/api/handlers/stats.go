package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/khanhlinh1810/pagetrail/internal/config"
	"github.com/khanhlinh1810/pagetrail/internal/models"
	"github.com/khanhlinh1810/pagetrail/internal/stats"
	"github.com/khanhlinh1810/pagetrail/internal/storage"
)

// statsResponse is the combined payload for the stats overview.
type statsResponse struct {
	Stats         models.ReadingStats `json:"stats"`
	BooksByStatus map[string]int      `json:"books_by_status"`
}

// GetStats handles GET /api/stats. Statistics are recomputed from a fresh
// snapshot on every request, so the response always reflects the latest
// mutation.
func GetStats(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := store.LoadSnapshot(r.Context())
		if err != nil {
			slog.Error("failed to load snapshot", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to compute stats")
			return
		}

		writeJSON(w, http.StatusOK, statsResponse{
			Stats:         stats.Compute(snap.Books, snap.Sessions, time.Now()),
			BooksByStatus: stats.CountByStatus(snap.Books),
		})
	}
}

// GetDailyActivity handles GET /api/stats/daily. The "days" query parameter
// overrides the configured window, capped at one year.
func GetDailyActivity(store *storage.Store, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := cfg.Stats.ActivityWindowDays
		if raw := r.URL.Query().Get("days"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > 365 {
				writeError(w, http.StatusBadRequest, "days must be between 1 and 365")
				return
			}
			days = n
		}

		snap, err := store.LoadSnapshot(r.Context())
		if err != nil {
			slog.Error("failed to load snapshot", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to compute daily activity")
			return
		}

		writeJSON(w, http.StatusOK, stats.DailyActivity(snap.Sessions, days, time.Now()))
	}
}

// GetWeeklySpeed handles GET /api/stats/weekly-speed.
func GetWeeklySpeed(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := store.LoadSnapshot(r.Context())
		if err != nil {
			slog.Error("failed to load snapshot", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to compute weekly speed")
			return
		}

		series := stats.WeeklySpeed(snap.Sessions)
		if series == nil {
			series = []stats.WeekSpeed{}
		}
		writeJSON(w, http.StatusOK, series)
	}
}

// GetMonthlyRate handles GET /api/stats/monthly.
func GetMonthlyRate(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := store.LoadSnapshot(r.Context())
		if err != nil {
			slog.Error("failed to load snapshot", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to compute monthly rate")
			return
		}

		writeJSON(w, http.StatusOK, stats.MonthlyRate(snap.Sessions, time.Now()))
	}
}
