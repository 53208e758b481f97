package stats

import (
	"testing"

	"github.com/khanhlinh1810/pagetrail/internal/models"
)

func TestDailyActivityWindowLength(t *testing.T) {
	tests := []struct {
		name     string
		sessions []models.ReadingSession
		days     int
		want     int
	}{
		{name: "empty sessions still fill the window", sessions: nil, days: 30, want: 30},
		{name: "single day window", sessions: sessionsOn("2026-03-10"), days: 1, want: 1},
		{name: "week window", sessions: sessionsOn("2026-03-08"), days: 7, want: 7},
		{name: "zero window", sessions: sessionsOn("2026-03-08"), days: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DailyActivity(tt.sessions, tt.days, noon("2026-03-10"))
			if len(got) != tt.want {
				t.Errorf("got %d entries, want %d", len(got), tt.want)
			}
		})
	}
}

func TestDailyActivityBuckets(t *testing.T) {
	sessions := []models.ReadingSession{
		{Date: noon("2026-03-09"), StartPage: 0, EndPage: 20, Duration: 30},
		{Date: noon("2026-03-09"), StartPage: 20, EndPage: 30, Duration: 15},
		{Date: noon("2026-03-10"), StartPage: 30, EndPage: 35, Duration: 10},
	}

	got := DailyActivity(sessions, 3, noon("2026-03-10"))

	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}

	// Oldest first: 03-08, 03-09, 03-10.
	if got[0].Date != "2026-03-08" || got[2].Date != "2026-03-10" {
		t.Errorf("window bounds = %s .. %s, want 2026-03-08 .. 2026-03-10", got[0].Date, got[2].Date)
	}
	if got[0].PagesRead != 0 || got[0].HasActivity {
		t.Errorf("empty day = %+v, want zero bucket", got[0])
	}
	if got[1].PagesRead != 30 || got[1].MinutesRead != 45 {
		t.Errorf("merged day = %+v, want 30 pages / 45 minutes", got[1])
	}
	if !got[1].HasActivity || !got[2].HasActivity {
		t.Error("days with pages read must report activity")
	}
}

func TestWeeklySpeed(t *testing.T) {
	sessions := []models.ReadingSession{
		// Week 2026-W11: 60 pages in 120 minutes -> 30 pages/hour.
		{Date: noon("2026-03-09"), StartPage: 0, EndPage: 30, Duration: 60},
		{Date: noon("2026-03-11"), StartPage: 30, EndPage: 60, Duration: 60},
		// Week 2026-W12: 10 pages in 30 minutes -> 20 pages/hour.
		{Date: noon("2026-03-18"), StartPage: 60, EndPage: 70, Duration: 30},
	}

	got := WeeklySpeed(sessions)

	if len(got) != 2 {
		t.Fatalf("got %d weeks, want 2", len(got))
	}
	if got[0].Week != "2026-W11" || got[1].Week != "2026-W12" {
		t.Errorf("weeks = %s, %s; want 2026-W11, 2026-W12", got[0].Week, got[1].Week)
	}
	if got[0].PagesPerHour != 30 {
		t.Errorf("W11 speed = %d, want 30", got[0].PagesPerHour)
	}
	if got[1].PagesPerHour != 20 {
		t.Errorf("W12 speed = %d, want 20", got[1].PagesPerHour)
	}
}

func TestWeeklySpeedChronologicalOrder(t *testing.T) {
	// Sessions arrive unsorted; weeks must still come out oldest first.
	sessions := []models.ReadingSession{
		{Date: noon("2026-03-18"), StartPage: 0, EndPage: 10, Duration: 30},
		{Date: noon("2026-03-02"), StartPage: 0, EndPage: 10, Duration: 30},
		{Date: noon("2026-03-09"), StartPage: 0, EndPage: 10, Duration: 30},
	}

	got := WeeklySpeed(sessions)

	if len(got) != 3 {
		t.Fatalf("got %d weeks, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Week <= got[i-1].Week {
			t.Errorf("weeks out of order: %s before %s", got[i-1].Week, got[i].Week)
		}
	}
}

func TestWeeklySpeedZeroMinutes(t *testing.T) {
	sessions := []models.ReadingSession{
		{Date: noon("2026-03-09"), StartPage: 0, EndPage: 10, Duration: 0},
	}

	got := WeeklySpeed(sessions)

	if len(got) != 1 {
		t.Fatalf("got %d weeks, want 1", len(got))
	}
	if got[0].PagesPerHour != 0 {
		t.Errorf("speed = %d, want 0 for a zero-minute week", got[0].PagesPerHour)
	}
}

func TestWeeklySpeedEmpty(t *testing.T) {
	if got := WeeklySpeed(nil); len(got) != 0 {
		t.Errorf("got %d weeks for empty input, want 0", len(got))
	}
}

func TestMonthlyRate(t *testing.T) {
	sessions := sessionsOn("2026-03-01", "2026-03-02", "2026-03-02", "2026-02-28")

	got := MonthlyRate(sessions, noon("2026-03-15"))

	if got.DaysInMonth != 31 {
		t.Errorf("DaysInMonth = %d, want 31", got.DaysInMonth)
	}
	if got.ReadingDays != 2 {
		t.Errorf("ReadingDays = %d, want 2 (February session excluded, duplicate day deduped)", got.ReadingDays)
	}
	if got.RatePercent != 6 { // round(2/31*100)
		t.Errorf("RatePercent = %d, want 6", got.RatePercent)
	}
}

func TestMonthlyRateEmpty(t *testing.T) {
	got := MonthlyRate(nil, noon("2026-02-10"))

	if got.ReadingDays != 0 || got.RatePercent != 0 {
		t.Errorf("got %+v, want zero activity", got)
	}
	if got.DaysInMonth != 28 {
		t.Errorf("DaysInMonth = %d, want 28 for February 2026", got.DaysInMonth)
	}
}

func TestCountByStatus(t *testing.T) {
	books := []models.Book{
		{Status: models.StatusReading},
		{Status: models.StatusReading},
		{Status: models.StatusCompleted},
		{Status: models.StatusToRead},
	}

	got := CountByStatus(books)

	want := map[string]int{
		models.StatusReading:   2,
		models.StatusCompleted: 1,
		models.StatusToRead:    1,
	}
	for status, n := range want {
		if got[status] != n {
			t.Errorf("count[%s] = %d, want %d", status, got[status], n)
		}
	}
}
