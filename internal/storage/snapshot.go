package storage

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/khanhlinh1810/pagetrail/internal/models"
)

// Snapshot is the immutable view of the collections the stats engine
// consumes. Derived metrics are always recomputed from a fresh snapshot,
// so a read that follows a mutation observes that mutation.
type Snapshot struct {
	Books    []models.Book
	Sessions []models.ReadingSession
}

// LoadSnapshot reads the full book and session collections, with the two
// queries issued concurrently.
func (s *Store) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		books, err := s.ListBooks(ctx, "")
		if err != nil {
			return err
		}
		snap.Books = books
		return nil
	})
	g.Go(func() error {
		sessions, err := s.ListSessions(ctx, "")
		if err != nil {
			return err
		}
		snap.Sessions = sessions
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}
