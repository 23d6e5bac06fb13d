package sequence

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"steelestim/internal/storage"
)

// ErrSeriesInactive is returned when allocation is attempted on a disabled
// series.
var ErrSeriesInactive = errors.New("number series is not active")

// How many optimistic update rounds Allocate runs before giving up. A lost
// round is a transient conflict, never a permanent failure.
const maxAllocateAttempts = 5

type SeriesStore interface {
	GetSeries(ctx context.Context, companyID int64, entityType string) (*storage.NumberSeries, error)
	// SaveSeries persists counter state with a version check and returns
	// storage.ErrConflict when the row changed underneath.
	SaveSeries(ctx context.Context, series *storage.NumberSeries) error
}

// Generator allocates formatted identifiers, one counter per
// (company, entity type). Allocation is the only mutating path and runs
// under a per-key mutex plus the store's version check; Preview never
// touches state.
type Generator struct {
	store SeriesStore
	now   func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewGenerator(store SeriesStore) *Generator {
	return &Generator{
		store: store,
		now:   time.Now,
		locks: make(map[string]*sync.Mutex),
	}
}

// Preview formats the number the next allocation would produce without
// mutating any state, reset semantics included.
func (g *Generator) Preview(ctx context.Context, companyID int64, entityType string) (string, error) {
	const op = "service.sequence.Preview"

	series, err := g.store.GetSeries(ctx, companyID, entityType)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	now := g.now()
	scratch := *series
	applyReset(&scratch, now)

	return FormatNumber(scratch, scratch.CurrentNumber+increment(&scratch), now), nil
}

// Allocate advances the counter for the key and returns the formatted
// identifier. Two concurrent calls never receive the same number: the
// in-process per-key lock serializes local callers and the store version
// check catches racing writers elsewhere, which are retried.
func (g *Generator) Allocate(ctx context.Context, companyID int64, entityType string) (string, error) {
	const op = "service.sequence.Allocate"

	lock := g.keyLock(companyID, entityType)
	lock.Lock()
	defer lock.Unlock()

	var lastErr error
	for attempt := 0; attempt < maxAllocateAttempts; attempt++ {
		series, err := g.store.GetSeries(ctx, companyID, entityType)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		if !series.IsActive {
			return "", fmt.Errorf("%s: %s/%d: %w", op, entityType, companyID, ErrSeriesInactive)
		}

		now := g.now()
		applyReset(series, now)
		series.CurrentNumber += increment(series)
		series.LastUsed = now

		formatted := FormatNumber(*series, series.CurrentNumber, now)

		if err := g.store.SaveSeries(ctx, series); err != nil {
			if errors.Is(err, storage.ErrConflict) {
				lastErr = err
				continue
			}
			return "", fmt.Errorf("%s: %w", op, err)
		}

		return formatted, nil
	}

	return "", fmt.Errorf("%s: gave up after %d attempts: %w", op, maxAllocateAttempts, lastErr)
}

func (g *Generator) keyLock(companyID int64, entityType string) *sync.Mutex {
	key := fmt.Sprintf("%d/%s", companyID, entityType)

	g.mu.Lock()
	defer g.mu.Unlock()

	lock, ok := g.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		g.locks[key] = lock
	}
	return lock
}

// applyReset rewinds the counter at a calendar boundary so the next
// allocation yields the starting number again, and records the new period.
func applyReset(s *storage.NumberSeries, now time.Time) {
	year, month := now.Year(), int(now.Month())

	yearChanged := s.LastResetYear == nil || *s.LastResetYear != year
	monthChanged := s.LastResetMonth == nil || *s.LastResetMonth != month

	switch {
	case s.ResetMonthly && (monthChanged || yearChanged):
		s.CurrentNumber = s.StartingNumber - increment(s)
		s.LastResetYear = &year
		s.LastResetMonth = &month
	case s.ResetYearly && yearChanged:
		s.CurrentNumber = s.StartingNumber - increment(s)
		s.LastResetYear = &year
	}
}

func increment(s *storage.NumberSeries) int {
	if s.IncrementBy <= 0 {
		return 1
	}
	return s.IncrementBy
}
