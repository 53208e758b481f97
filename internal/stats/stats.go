// Package stats derives reading-habit metrics from raw session records.
//
// Every function is pure: the collections and the reference time are passed
// in explicitly, so results are deterministic and repeatable for a given
// snapshot. Input validation (page geometry, date sanity) is the mutation
// layer's job; these functions never error and degrade to zero values on
// empty input.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/khanhlinh1810/pagetrail/internal/models"
)

const day = 24 * time.Hour

// Compute derives ReadingStats from the full book and session collections.
// now anchors the current-streak check and the per-day averages.
func Compute(books []models.Book, sessions []models.ReadingSession, now time.Time) models.ReadingStats {
	var s models.ReadingStats

	for _, b := range books {
		if b.Status == models.StatusCompleted {
			s.TotalBooksRead++
		}
	}

	for _, sess := range sessions {
		s.TotalPagesRead += sess.EndPage - sess.StartPage
		s.TotalReadingTime += sess.Duration
	}

	days := distinctDays(sessions)
	s.CurrentStreak = currentStreak(days, now)
	s.LongestStreak = longestStreak(days)

	if len(days) > 0 {
		// Days since the first session, floored at 1 so a first session
		// logged today still yields a valid denominator.
		since := math.Ceil(now.Sub(days[0]).Hours() / 24)
		if since < 1 {
			since = 1
		}
		s.AveragePagesPerDay = int(math.Round(float64(s.TotalPagesRead) / since))
		s.AverageReadingTimePerDay = int(math.Round(float64(s.TotalReadingTime) / since))
	}

	return s
}

// dayOf projects a timestamp onto its UTC calendar day.
func dayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// distinctDays returns the sorted set of calendar days on which at least
// one session occurred.
func distinctDays(sessions []models.ReadingSession) []time.Time {
	seen := make(map[time.Time]struct{}, len(sessions))
	for _, s := range sessions {
		seen[dayOf(s.Date)] = struct{}{}
	}

	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// currentStreak counts consecutive reading days ending at the most recent
// session day. The streak is broken when more than one full day has passed
// between that day and now; reading today or yesterday both keep it alive.
func currentStreak(days []time.Time, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	last := days[len(days)-1]
	if int(now.Sub(last).Hours()/24) > 1 {
		return 0
	}

	streak := 1
	for i := len(days) - 2; i >= 0; i-- {
		if days[i+1].Sub(days[i]) != day {
			break
		}
		streak++
	}
	return streak
}

// longestStreak scans the sorted day sequence for the longest run of
// consecutive calendar days.
func longestStreak(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == day {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
