package badges

import (
	"context"
	"testing"
	"time"

	"github.com/finlitapp/finlit/internal/store"
)

// mockEventRepo records appended badge events.
type mockEventRepo struct {
	badgeEvents []store.BadgeEventData
}

func (m *mockEventRepo) AppendQuizEvent(ctx context.Context, data store.QuizEventData) error {
	return nil
}

func (m *mockEventRepo) QueryQuizEvents(ctx context.Context, opts store.QueryOpts) ([]store.QuizEventRecord, error) {
	return nil, nil
}

func (m *mockEventRepo) LatestQuizEvent(ctx context.Context, quizID string) (*store.QuizEventRecord, error) {
	return nil, nil
}

func (m *mockEventRepo) CountAttempts(ctx context.Context, quizID string) (int, error) {
	return 0, nil
}

func (m *mockEventRepo) AppendXPEvent(ctx context.Context, data store.XPEventData) error {
	return nil
}

func (m *mockEventRepo) QueryXPEvents(ctx context.Context, opts store.QueryOpts) ([]store.XPEventRecord, error) {
	return nil, nil
}

func (m *mockEventRepo) AppendBadgeEvent(ctx context.Context, data store.BadgeEventData) error {
	m.badgeEvents = append(m.badgeEvents, data)
	return nil
}

func (m *mockEventRepo) QueryBadgeEvents(ctx context.Context, opts store.QueryOpts) ([]store.BadgeEventRecord, error) {
	return nil, nil
}

func testCatalog() []Badge {
	return []Badge{
		{
			ID: "first-steps", Name: "First Steps", Rarity: RarityCommon,
			Condition: Condition{Type: ConditionModulesCompleted, Target: 1},
		},
		{
			ID: "pocket-money", Name: "Pocket Money", Rarity: RarityCommon,
			Condition: Condition{Type: ConditionXPEarned, Target: 100},
		},
		{
			ID: "week-strong", Name: "Week Strong", Rarity: RarityRare,
			Condition: Condition{Type: ConditionStreakDays, Target: 7},
		},
	}
}

func TestEvaluateUnlocksMetConditions(t *testing.T) {
	s := NewService(testCatalog(), nil)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	newly, err := s.Evaluate(context.Background(), Metrics{ModulesCompleted: 1, XP: 120}, now)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(newly) != 2 {
		t.Fatalf("newly unlocked = %d, want 2", len(newly))
	}
	if newly[0].Badge.ID != "first-steps" || newly[1].Badge.ID != "pocket-money" {
		t.Errorf("unlock order = %s, %s, want catalog order", newly[0].Badge.ID, newly[1].Badge.ID)
	}
	if !newly[0].UnlockedAt.Equal(now) {
		t.Errorf("unlock time = %v, want %v", newly[0].UnlockedAt, now)
	}
	if s.IsUnlocked("week-strong") {
		t.Error("week-strong should stay locked below its target")
	}
}

func TestEvaluateExactTarget(t *testing.T) {
	s := NewService(testCatalog(), nil)

	newly, _ := s.Evaluate(context.Background(), Metrics{XP: 100}, time.Now())
	if len(newly) != 1 || newly[0].Badge.ID != "pocket-money" {
		t.Errorf("meeting the target exactly should unlock, got %v", newly)
	}
}

func TestEvaluateIsMonotonic(t *testing.T) {
	s := NewService(testCatalog(), nil)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	s.Evaluate(ctx, Metrics{StreakDays: 7}, now)
	if !s.IsUnlocked("week-strong") {
		t.Fatal("expected week-strong unlocked")
	}

	// The metric dropping below the target must not revoke the badge.
	newly, _ := s.Evaluate(ctx, Metrics{StreakDays: 1}, now.Add(time.Hour))
	if len(newly) != 0 {
		t.Errorf("newly unlocked = %v, want none", newly)
	}
	if !s.IsUnlocked("week-strong") {
		t.Error("unlock was revoked by a later evaluation")
	}

	// Re-meeting the condition must not re-unlock or restamp.
	s.Evaluate(ctx, Metrics{StreakDays: 10}, now.Add(48*time.Hour))
	unlocks := s.Unlocked()
	if len(unlocks) != 1 || !unlocks[0].UnlockedAt.Equal(now) {
		t.Errorf("unlock restamped: %v", unlocks)
	}
}

func TestEvaluateRecordsEvents(t *testing.T) {
	repo := &mockEventRepo{}
	s := NewService(testCatalog(), repo)

	s.Evaluate(context.Background(), Metrics{ModulesCompleted: 3}, time.Now())

	if len(repo.badgeEvents) != 1 {
		t.Fatalf("badge events = %d, want 1", len(repo.badgeEvents))
	}
	ev := repo.badgeEvents[0]
	if ev.BadgeID != "first-steps" || ev.ConditionType != "modules_completed" {
		t.Errorf("unexpected event: %+v", ev)
	}
	if ev.MetricValue != 3 || ev.ConditionTarget != 1 {
		t.Errorf("metric/target = %d/%d, want 3/1", ev.MetricValue, ev.ConditionTarget)
	}
}

func TestUnlockedSortedByTime(t *testing.T) {
	s := NewService(testCatalog(), nil)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	s.Evaluate(ctx, Metrics{StreakDays: 7}, base)
	s.Evaluate(ctx, Metrics{StreakDays: 7, ModulesCompleted: 1}, base.Add(time.Hour))

	unlocks := s.Unlocked()
	if len(unlocks) != 2 {
		t.Fatalf("unlocked = %d, want 2", len(unlocks))
	}
	if unlocks[0].Badge.ID != "week-strong" || unlocks[1].Badge.ID != "first-steps" {
		t.Errorf("order = %s, %s, want oldest first", unlocks[0].Badge.ID, unlocks[1].Badge.ID)
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s := NewService(testCatalog(), nil)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.Evaluate(ctx, Metrics{ModulesCompleted: 1, XP: 150}, now)

	data := s.SnapshotData()
	if len(data.Unlocked) != 2 {
		t.Fatalf("snapshot unlocked = %d, want 2", len(data.Unlocked))
	}

	restored := NewService(testCatalog(), nil)
	restored.Restore(data)
	if restored.UnlockedCount() != 2 {
		t.Fatalf("restored unlocked = %d, want 2", restored.UnlockedCount())
	}
	if !restored.IsUnlocked("first-steps") || !restored.IsUnlocked("pocket-money") {
		t.Error("restored service lost unlocks")
	}

	// Restored unlocks stay monotonic.
	newly, _ := restored.Evaluate(ctx, Metrics{ModulesCompleted: 1, XP: 150}, now.Add(time.Hour))
	if len(newly) != 0 {
		t.Errorf("restored badges re-unlocked: %v", newly)
	}
}

func TestRestoreDropsUnknownBadges(t *testing.T) {
	s := NewService(testCatalog(), nil)
	s.Restore(&store.BadgesSnapshotData{
		Unlocked: []store.UnlockedBadgeData{
			{BadgeID: "first-steps", UnlockedAt: "2026-03-01T09:00:00Z"},
			{BadgeID: "retired-badge", UnlockedAt: "2026-03-01T09:00:00Z"},
		},
	})
	if s.UnlockedCount() != 1 {
		t.Errorf("unlocked = %d, want 1 after dropping unknown badge", s.UnlockedCount())
	}
}
