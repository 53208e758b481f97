package models

import "time"

// Book statuses.
const (
	StatusToRead    = "to-read"
	StatusReading   = "reading"
	StatusOnHold    = "on-hold"
	StatusCompleted = "completed"
)

// Goal metric types.
const (
	GoalPages = "pages"
	GoalBooks = "books"
	GoalTime  = "time"
)

// Goal periods.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
	PeriodCustom  = "custom"
)

// Book represents a single tracked book. CurrentPage advances as sessions
// are logged; Status is promoted automatically when a session reaches the
// last page.
type Book struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Cover       string     `json:"cover,omitempty"`
	TotalPages  int        `json:"total_pages"`
	CurrentPage int        `json:"current_page"`
	Status      string     `json:"status"`
	StartDate   time.Time  `json:"start_date"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ReadingSession records one logged interval of reading for one book.
// Date is when the reading happened, not when the record was created.
// Sessions are immutable once logged; they can only be deleted.
type ReadingSession struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Date      time.Time `json:"date"`
	StartPage int       `json:"start_page"`
	EndPage   int       `json:"end_page"`
	Duration  int       `json:"duration"` // minutes
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Quote is a passage saved from a book.
type Quote struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Text      string    `json:"text"`
	Page      int       `json:"page"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Note is a free-form note attached to a book.
type Note struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Text      string    `json:"text"`
	Page      int       `json:"page"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// ReadingGoal is a user-set target measured in pages, books, or minutes.
// Completed is toggled explicitly by the user and never derived from
// progress, so a goal can be closed early or kept open after the target
// is reached.
type ReadingGoal struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Target    int        `json:"target"`
	Period    string     `json:"period"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Completed bool       `json:"completed"`
	CreatedAt time.Time  `json:"created_at"`
}

// ReadingStats holds metrics derived from the book and session collections.
// It is recomputed from a fresh snapshot on every read and never persisted.
type ReadingStats struct {
	TotalBooksRead           int `json:"total_books_read"`
	TotalPagesRead           int `json:"total_pages_read"`
	TotalReadingTime         int `json:"total_reading_time"` // minutes
	AveragePagesPerDay       int `json:"average_pages_per_day"`
	AverageReadingTimePerDay int `json:"average_reading_time_per_day"`
	CurrentStreak            int `json:"current_streak"`
	LongestStreak            int `json:"longest_streak"`
}
