package badges

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/finlitapp/finlit/internal/store"
)

// Service tracks which catalog badges have been unlocked. Unlocking is
// monotonic: Evaluate only ever adds to the unlocked set, and repeat
// evaluations of an already-unlocked badge are skipped.
//
// Persistence failures are returned but never undo an unlock; the
// in-memory state stays authoritative.
type Service struct {
	mu       sync.Mutex
	catalog  []Badge
	unlocked map[string]Unlock

	events store.EventRepo
}

// NewService creates a service over the given catalog. events may be nil
// in tests.
func NewService(catalog []Badge, events store.EventRepo) *Service {
	return &Service{
		catalog:  catalog,
		unlocked: make(map[string]Unlock),
		events:   events,
	}
}

// Evaluate unlocks every not-yet-unlocked badge whose condition the
// metrics satisfy, stamping each with now. Returns the newly unlocked
// badges in catalog order. The first persistence error is returned after
// all unlocks have been applied.
func (s *Service) Evaluate(ctx context.Context, m Metrics, now time.Time) ([]Unlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var newly []Unlock
	var firstErr error
	for _, b := range s.catalog {
		if _, done := s.unlocked[b.ID]; done {
			continue
		}
		if !b.Condition.Met(m) {
			continue
		}

		unlock := Unlock{Badge: b, UnlockedAt: now}
		s.unlocked[b.ID] = unlock
		newly = append(newly, unlock)

		if s.events != nil {
			err := s.events.AppendBadgeEvent(ctx, store.BadgeEventData{
				BadgeID:         b.ID,
				Name:            b.Name,
				Rarity:          string(b.Rarity),
				ConditionType:   string(b.Condition.Type),
				ConditionTarget: b.Condition.Target,
				MetricValue:     m.value(b.Condition.Type),
			})
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return newly, firstErr
}

// IsUnlocked reports whether a badge has been earned.
func (s *Service) IsUnlocked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.unlocked[id]
	return ok
}

// Unlocked returns all earned badges sorted by unlock time, oldest first.
func (s *Service) Unlocked() []Unlock {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Unlock, 0, len(s.unlocked))
	for _, u := range s.unlocked {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UnlockedAt.Equal(out[j].UnlockedAt) {
			return out[i].Badge.ID < out[j].Badge.ID
		}
		return out[i].UnlockedAt.Before(out[j].UnlockedAt)
	})
	return out
}

// Catalog returns the badge definitions this service evaluates.
func (s *Service) Catalog() []Badge {
	return s.catalog
}

// UnlockedCount returns how many badges have been earned.
func (s *Service) UnlockedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.unlocked)
}

// SnapshotData serializes the unlock state for snapshot persistence.
func (s *Service) SnapshotData() *store.BadgesSnapshotData {
	unlocks := s.Unlocked()
	data := &store.BadgesSnapshotData{}
	for _, u := range unlocks {
		data.Unlocked = append(data.Unlocked, store.UnlockedBadgeData{
			BadgeID:    u.Badge.ID,
			UnlockedAt: u.UnlockedAt.UTC().Format(time.RFC3339),
		})
	}
	return data
}

// Restore rebuilds unlock state from snapshot data. Entries referencing
// badges no longer in the catalog are dropped.
func (s *Service) Restore(data *store.BadgesSnapshotData) {
	if data == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[string]Badge, len(s.catalog))
	for _, b := range s.catalog {
		byID[b.ID] = b
	}

	for _, entry := range data.Unlocked {
		b, ok := byID[entry.BadgeID]
		if !ok {
			continue
		}
		at, err := time.Parse(time.RFC3339, entry.UnlockedAt)
		if err != nil {
			at = time.Time{}
		}
		s.unlocked[entry.BadgeID] = Unlock{Badge: b, UnlockedAt: at}
	}
}
