package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/khanhlinh1810/pagetrail/internal/api/handlers"
	"github.com/khanhlinh1810/pagetrail/internal/config"
	"github.com/khanhlinh1810/pagetrail/internal/storage"
)

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(store *storage.Store, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(RequestLogger)
	r.Use(Recovery)
	r.Use(CORS)

	r.Route("/api", func(api chi.Router) {
		api.Get("/books", handlers.ListBooks(store))
		api.Post("/books", handlers.AddBook(store))
		api.Get("/books/{id}", handlers.GetBook(store))
		api.Put("/books/{id}", handlers.UpdateBook(store))
		api.Delete("/books/{id}", handlers.DeleteBook(store))

		api.Get("/sessions", handlers.ListSessions(store))
		api.Post("/sessions", handlers.AddSession(store))
		api.Delete("/sessions/{id}", handlers.DeleteSession(store))

		api.Get("/quotes", handlers.ListQuotes(store))
		api.Post("/quotes", handlers.AddQuote(store))
		api.Delete("/quotes/{id}", handlers.DeleteQuote(store))

		api.Get("/notes", handlers.ListNotes(store))
		api.Post("/notes", handlers.AddNote(store))
		api.Delete("/notes/{id}", handlers.DeleteNote(store))

		api.Get("/goals", handlers.ListGoals(store))
		api.Post("/goals", handlers.AddGoal(store))
		api.Patch("/goals/{id}", handlers.UpdateGoal(store))
		api.Delete("/goals/{id}", handlers.DeleteGoal(store))

		api.Get("/stats", handlers.GetStats(store))
		api.Get("/stats/daily", handlers.GetDailyActivity(store, cfg))
		api.Get("/stats/weekly-speed", handlers.GetWeeklySpeed(store))
		api.Get("/stats/monthly", handlers.GetMonthlyRate(store))
	})

	return r
}
