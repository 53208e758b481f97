package stats

import (
	"reflect"
	"testing"
	"time"

	"github.com/khanhlinh1810/pagetrail/internal/models"
)

// sessionOn builds a session that reads 10 pages in 30 minutes on the given
// day at noon UTC.
func sessionOn(date string) models.ReadingSession {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.ReadingSession{
		BookID:    "book-1",
		Date:      d.Add(12 * time.Hour),
		StartPage: 0,
		EndPage:   10,
		Duration:  30,
	}
}

func sessionsOn(dates ...string) []models.ReadingSession {
	out := make([]models.ReadingSession, 0, len(dates))
	for _, d := range dates {
		out = append(out, sessionOn(d))
	}
	return out
}

func noon(date string) time.Time {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return d.Add(12 * time.Hour)
}

func TestComputeTotals(t *testing.T) {
	books := []models.Book{
		{ID: "a", Status: models.StatusCompleted},
		{ID: "b", Status: models.StatusReading},
		{ID: "c", Status: models.StatusCompleted},
		{ID: "d", Status: models.StatusToRead},
	}
	sessions := []models.ReadingSession{
		{Date: noon("2026-03-01"), StartPage: 0, EndPage: 25, Duration: 40},
		{Date: noon("2026-03-01"), StartPage: 25, EndPage: 40, Duration: 20},
		{Date: noon("2026-03-02"), StartPage: 40, EndPage: 45, Duration: 15},
	}

	got := Compute(books, sessions, noon("2026-03-02"))

	if got.TotalBooksRead != 2 {
		t.Errorf("TotalBooksRead = %d, want 2", got.TotalBooksRead)
	}
	if got.TotalPagesRead != 45 {
		t.Errorf("TotalPagesRead = %d, want 45", got.TotalPagesRead)
	}
	if got.TotalReadingTime != 75 {
		t.Errorf("TotalReadingTime = %d, want 75", got.TotalReadingTime)
	}
}

func TestComputeTotalsOrderIndependent(t *testing.T) {
	sessions := []models.ReadingSession{
		{Date: noon("2026-03-03"), StartPage: 10, EndPage: 30, Duration: 45},
		{Date: noon("2026-03-01"), StartPage: 0, EndPage: 10, Duration: 20},
		{Date: noon("2026-03-02"), StartPage: 30, EndPage: 31, Duration: 5},
	}
	reversed := []models.ReadingSession{sessions[2], sessions[1], sessions[0]}
	now := noon("2026-03-03")

	a := Compute(nil, sessions, now)
	b := Compute(nil, reversed, now)

	if !reflect.DeepEqual(a, b) {
		t.Errorf("stats differ by input order: %+v vs %+v", a, b)
	}
}

func TestComputeStreaks(t *testing.T) {
	tests := []struct {
		name        string
		dates       []string
		now         string
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "no sessions",
			dates:       nil,
			now:         "2026-03-10",
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name:        "three consecutive days ending today",
			dates:       []string{"2026-03-08", "2026-03-09", "2026-03-10"},
			now:         "2026-03-10",
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "gap of two days resets current streak",
			dates:       []string{"2026-03-08", "2026-03-10"},
			now:         "2026-03-10",
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "early run shorter than recent run",
			dates:       []string{"2026-03-01", "2026-03-02", "2026-03-10", "2026-03-11", "2026-03-12"},
			now:         "2026-03-12",
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "early run longer than recent run",
			dates:       []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-11", "2026-03-12"},
			now:         "2026-03-12",
			wantCurrent: 2,
			wantLongest: 4,
		},
		{
			name:        "last session yesterday keeps streak alive",
			dates:       []string{"2026-03-08", "2026-03-09"},
			now:         "2026-03-10",
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name:        "last session two days ago breaks streak",
			dates:       []string{"2026-03-07", "2026-03-08"},
			now:         "2026-03-10",
			wantCurrent: 0,
			wantLongest: 2,
		},
		{
			name:        "duplicate sessions on one day count once",
			dates:       []string{"2026-03-09", "2026-03-09", "2026-03-10"},
			now:         "2026-03-10",
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name:        "single session today",
			dates:       []string{"2026-03-10"},
			now:         "2026-03-10",
			wantCurrent: 1,
			wantLongest: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(nil, sessionsOn(tt.dates...), noon(tt.now))
			if got.CurrentStreak != tt.wantCurrent {
				t.Errorf("CurrentStreak = %d, want %d", got.CurrentStreak, tt.wantCurrent)
			}
			if got.LongestStreak != tt.wantLongest {
				t.Errorf("LongestStreak = %d, want %d", got.LongestStreak, tt.wantLongest)
			}
		})
	}
}

func TestComputeAverages(t *testing.T) {
	tests := []struct {
		name        string
		sessions    []models.ReadingSession
		now         string
		wantPages   int
		wantMinutes int
	}{
		{
			name:        "no sessions",
			sessions:    nil,
			now:         "2026-03-10",
			wantPages:   0,
			wantMinutes: 0,
		},
		{
			name: "all sessions today uses denominator of one",
			sessions: []models.ReadingSession{
				{Date: noon("2026-03-10"), StartPage: 0, EndPage: 42, Duration: 60},
			},
			now:         "2026-03-10",
			wantPages:   42,
			wantMinutes: 60,
		},
		{
			name: "spread over ten days",
			sessions: []models.ReadingSession{
				{Date: noon("2026-03-01"), StartPage: 0, EndPage: 50, Duration: 100},
				{Date: noon("2026-03-10"), StartPage: 50, EndPage: 100, Duration: 100},
			},
			// Midnight of day 1 to noon of day 10 rounds up to 10 days.
			now:         "2026-03-10",
			wantPages:   10, // round(100 / 10)
			wantMinutes: 20, // round(200 / 10)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(nil, tt.sessions, noon(tt.now))
			if got.AveragePagesPerDay != tt.wantPages {
				t.Errorf("AveragePagesPerDay = %d, want %d", got.AveragePagesPerDay, tt.wantPages)
			}
			if got.AverageReadingTimePerDay != tt.wantMinutes {
				t.Errorf("AverageReadingTimePerDay = %d, want %d", got.AverageReadingTimePerDay, tt.wantMinutes)
			}
			if got.AveragePagesPerDay < 0 || got.AverageReadingTimePerDay < 0 {
				t.Error("averages must be non-negative")
			}
		})
	}
}

func TestComputeDeterministic(t *testing.T) {
	books := []models.Book{{ID: "a", Status: models.StatusCompleted}}
	sessions := sessionsOn("2026-03-08", "2026-03-09", "2026-03-10")
	now := noon("2026-03-10")

	first := Compute(books, sessions, now)
	second := Compute(books, sessions, now)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated computation diverged: %+v vs %+v", first, second)
	}
}
