package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/khanhlinh1810/pagetrail/internal/models"
)

// DayActivity is one day's bucket in the daily activity series.
type DayActivity struct {
	Date        string `json:"date"` // YYYY-MM-DD
	PagesRead   int    `json:"pages_read"`
	MinutesRead int    `json:"minutes_read"`
	HasActivity bool   `json:"has_activity"`
}

// WeekSpeed is one week's reading speed in the weekly trend.
type WeekSpeed struct {
	Week         string `json:"week"` // ISO year-week, e.g. "2026-W35"
	PagesPerHour int    `json:"pages_per_hour"`
}

// MonthlySummary reports how many days of the current calendar month had
// reading activity.
type MonthlySummary struct {
	ReadingDays int `json:"reading_days"`
	DaysInMonth int `json:"days_in_month"`
	RatePercent int `json:"rate_percent"`
}

// DailyActivity buckets sessions into the last windowDays calendar days
// ending at now, inclusive. The result always has exactly windowDays
// entries, oldest first; days without sessions yield zero-valued buckets
// so charts render without gaps.
func DailyActivity(sessions []models.ReadingSession, windowDays int, now time.Time) []DayActivity {
	if windowDays <= 0 {
		return []DayActivity{}
	}

	type bucket struct{ pages, minutes int }
	byDay := make(map[time.Time]bucket)
	for _, s := range sessions {
		d := dayOf(s.Date)
		b := byDay[d]
		b.pages += s.EndPage - s.StartPage
		b.minutes += s.Duration
		byDay[d] = b
	}

	start := dayOf(now).AddDate(0, 0, -(windowDays - 1))
	out := make([]DayActivity, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		d := start.AddDate(0, 0, i)
		b := byDay[d]
		out = append(out, DayActivity{
			Date:        d.Format("2006-01-02"),
			PagesRead:   b.pages,
			MinutesRead: b.minutes,
			HasActivity: b.pages > 0,
		})
	}
	return out
}

// WeeklySpeed groups sessions by ISO week and computes pages per hour for
// each. Unlike the daily series the result is sparse: only weeks with at
// least one session appear, in chronological order.
func WeeklySpeed(sessions []models.ReadingSession) []WeekSpeed {
	sorted := make([]models.ReadingSession, len(sessions))
	copy(sorted, sessions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	type totals struct{ pages, minutes int }
	byWeek := make(map[string]totals)
	var order []string
	for _, s := range sorted {
		year, week := s.Date.UTC().ISOWeek()
		key := fmt.Sprintf("%d-W%02d", year, week)
		if _, ok := byWeek[key]; !ok {
			order = append(order, key)
		}
		t := byWeek[key]
		t.pages += s.EndPage - s.StartPage
		t.minutes += s.Duration
		byWeek[key] = t
	}

	out := make([]WeekSpeed, 0, len(order))
	for _, key := range order {
		t := byWeek[key]
		speed := 0
		if t.minutes > 0 {
			speed = int(math.Round(float64(t.pages) / float64(t.minutes) * 60))
		}
		out = append(out, WeekSpeed{Week: key, PagesPerHour: speed})
	}
	return out
}

// MonthlyRate reports the share of days in now's calendar month that had
// at least one session.
func MonthlyRate(sessions []models.ReadingSession, now time.Time) MonthlySummary {
	u := now.UTC()
	// Day 0 of the next month is the last day of this one.
	daysInMonth := time.Date(u.Year(), u.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()

	active := make(map[time.Time]struct{})
	for _, s := range sessions {
		d := dayOf(s.Date)
		if d.Year() == u.Year() && d.Month() == u.Month() {
			active[d] = struct{}{}
		}
	}

	return MonthlySummary{
		ReadingDays: len(active),
		DaysInMonth: daysInMonth,
		RatePercent: int(math.Round(float64(len(active)) / float64(daysInMonth) * 100)),
	}
}

// CountByStatus tallies books per reading status.
func CountByStatus(books []models.Book) map[string]int {
	counts := make(map[string]int)
	for _, b := range books {
		counts[b.Status]++
	}
	return counts
}
