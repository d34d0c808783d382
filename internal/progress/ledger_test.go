package progress

import (
	"context"
	"testing"
	"time"

	"github.com/finlitapp/finlit/internal/engine"
	"github.com/finlitapp/finlit/internal/store"
)

// mockEventRepo records appended events for assertions.
type mockEventRepo struct {
	xpEvents    []store.XPEventData
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
	m.xpEvents = append(m.xpEvents, data)
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

func passedResult(quizID string) *engine.QuizResult {
	return &engine.QuizResult{
		QuizID:         quizID,
		Score:          80,
		CorrectCount:   4,
		TotalQuestions: 5,
		Passed:         true,
	}
}

func TestApplyXPLevelsUp(t *testing.T) {
	l := NewLedger(nil)
	ctx := context.Background()

	level, leveledUp, err := l.ApplyXP(ctx, 150, SourceQuiz, "q1")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if level != 2 || !leveledUp {
		t.Errorf("level = %d leveledUp = %v, want 2 true", level, leveledUp)
	}
	if l.XP() != 150 || l.Level() != 2 {
		t.Errorf("xp = %d level = %d, want 150 2", l.XP(), l.Level())
	}
}

func TestApplyXPZeroIsNoop(t *testing.T) {
	l := NewLedger(nil)
	ctx := context.Background()

	level, leveledUp, err := l.ApplyXP(ctx, 0, SourceQuiz, "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if level != 1 || leveledUp {
		t.Errorf("level = %d leveledUp = %v, want 1 false", level, leveledUp)
	}
	if l.XP() != 0 {
		t.Errorf("xp = %d, want 0", l.XP())
	}
}

func TestApplyXPOrderIndependent(t *testing.T) {
	ctx := context.Background()

	a := NewLedger(nil)
	a.ApplyXP(ctx, 80, SourceModule, "m1")
	a.ApplyXP(ctx, 70, SourceQuiz, "q1")

	b := NewLedger(nil)
	b.ApplyXP(ctx, 150, SourceModule, "m1")

	if a.XP() != b.XP() || a.Level() != b.Level() {
		t.Errorf("split apply (xp=%d level=%d) differs from single apply (xp=%d level=%d)",
			a.XP(), a.Level(), b.XP(), b.Level())
	}
}

func TestApplyXPRecordsEvent(t *testing.T) {
	repo := &mockEventRepo{}
	l := NewLedger(repo)
	ctx := context.Background()

	l.ApplyXP(ctx, 150, SourceQuiz, "budgeting-101")

	if len(repo.xpEvents) != 1 {
		t.Fatalf("xp events = %d, want 1", len(repo.xpEvents))
	}
	ev := repo.xpEvents[0]
	if ev.Amount != 150 || ev.Source != SourceQuiz || !ev.LeveledUp || ev.LevelAfter != 2 {
		t.Errorf("unexpected event: %+v", ev)
	}
	if ev.SourceID == nil || *ev.SourceID != "budgeting-101" {
		t.Errorf("source id = %v, want budgeting-101", ev.SourceID)
	}
}

func TestCompleteModuleIdempotent(t *testing.T) {
	repo := &mockEventRepo{}
	l := NewLedger(repo)
	ctx := context.Background()

	award, err := l.CompleteModule(ctx, "m1", 2)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if award == nil || award.XP != 2*ModuleBaseXP {
		t.Fatalf("award = %+v, want %d XP", award, 2*ModuleBaseXP)
	}

	again, err := l.CompleteModule(ctx, "m1", 2)
	if err != nil {
		t.Fatalf("repeat complete: %v", err)
	}
	if again != nil {
		t.Error("repeat completion should award nothing")
	}
	if l.XP() != 2*ModuleBaseXP {
		t.Errorf("xp = %d, want %d after duplicate", l.XP(), 2*ModuleBaseXP)
	}
	if got := l.CompletedModules(); len(got) != 1 {
		t.Errorf("completed modules = %v, want exactly one entry", got)
	}
	if len(repo.xpEvents) != 1 {
		t.Errorf("xp events = %d, want 1", len(repo.xpEvents))
	}
}

func TestCompleteModuleTierScaling(t *testing.T) {
	l := NewLedger(nil)
	ctx := context.Background()

	award, _ := l.CompleteModule(ctx, "easy", 1)
	if award.XP != ModuleBaseXP {
		t.Errorf("tier 1 award = %d, want %d", award.XP, ModuleBaseXP)
	}
	award, _ = l.CompleteModule(ctx, "hard", 3)
	if award.XP != 3*ModuleBaseXP {
		t.Errorf("tier 3 award = %d, want %d", award.XP, 3*ModuleBaseXP)
	}
	// A nonsense tier is clamped rather than zeroing the award.
	award, _ = l.CompleteModule(ctx, "odd", 0)
	if award.XP != ModuleBaseXP {
		t.Errorf("tier 0 award = %d, want %d", award.XP, ModuleBaseXP)
	}
}

func TestCompleteQuizOnlyAwardsOnPass(t *testing.T) {
	l := NewLedger(nil)
	ctx := context.Background()

	failed := passedResult("budgeting-101")
	failed.Passed = false
	award, err := l.CompleteQuiz(ctx, failed, 25)
	if err != nil {
		t.Fatalf("complete failed attempt: %v", err)
	}
	if award != nil || l.XP() != 0 {
		t.Error("failed attempt should award nothing")
	}
	if l.HasCompletedQuiz("budgeting-101") {
		t.Error("failed attempt should not mark the quiz completed")
	}

	award, err = l.CompleteQuiz(ctx, passedResult("budgeting-101"), 25)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if award == nil || award.XP != QuizPassXP+25 {
		t.Fatalf("award = %+v, want %d XP", award, QuizPassXP+25)
	}
	if !l.HasCompletedQuiz("budgeting-101") {
		t.Error("expected quiz marked completed")
	}
}

func TestCompleteQuizPerfectBonus(t *testing.T) {
	l := NewLedger(nil)
	ctx := context.Background()

	perfect := passedResult("q")
	perfect.CorrectCount = perfect.TotalQuestions
	award, _ := l.CompleteQuiz(ctx, perfect, 25)
	if award.XP != QuizPassXP+25+PerfectBonusXP {
		t.Errorf("award = %d, want %d with perfect bonus", award.XP, QuizPassXP+25+PerfectBonusXP)
	}
}

func TestCompleteQuizIdempotent(t *testing.T) {
	l := NewLedger(nil)
	ctx := context.Background()

	l.CompleteQuiz(ctx, passedResult("q"), 25)
	xp := l.XP()

	again, err := l.CompleteQuiz(ctx, passedResult("q"), 25)
	if err != nil {
		t.Fatalf("repeat: %v", err)
	}
	if again != nil || l.XP() != xp {
		t.Error("repeat quiz completion should not double-count XP")
	}
}

func TestCompleteTrack(t *testing.T) {
	l := NewLedger(nil)
	ctx := context.Background()

	award, _ := l.CompleteTrack(ctx, "foundations")
	if award == nil || award.XP != TrackXP {
		t.Fatalf("award = %+v, want %d XP", award, TrackXP)
	}
	again, _ := l.CompleteTrack(ctx, "foundations")
	if again != nil || l.XP() != TrackXP {
		t.Error("repeat track completion should be a no-op")
	}
}

func TestStreakBranches(t *testing.T) {
	ctx := context.Background()
	day1 := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)

	l := NewLedger(nil)

	// First ever activity starts the streak.
	up, err := l.UpdateStreak(ctx, day1)
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	if up.Days != 1 || !up.Extended {
		t.Errorf("first update = %+v, want day 1 extended", up)
	}

	// Same day: unchanged, no bonus.
	up, _ = l.UpdateStreak(ctx, day1.Add(2*time.Hour))
	if up.Days != 1 || up.Extended || up.Award != nil {
		t.Errorf("same-day update = %+v, want unchanged", up)
	}

	// Next day: extends and pays the bonus.
	up, _ = l.UpdateStreak(ctx, day1.Add(26*time.Hour))
	if up.Days != 2 || !up.Extended {
		t.Errorf("next-day update = %+v, want day 2 extended", up)
	}
	if up.Award == nil || up.Award.XP != StreakBonusXP {
		t.Errorf("next-day award = %+v, want %d XP", up.Award, StreakBonusXP)
	}

	// Three-day gap: resets to 1.
	up, _ = l.UpdateStreak(ctx, day1.Add(26*time.Hour).Add(72*time.Hour))
	if up.Days != 1 || up.Extended || up.Award != nil {
		t.Errorf("gap update = %+v, want reset to day 1", up)
	}
}

func TestStreakAlwaysMovesLastActivity(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(nil)

	t1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(3 * time.Hour)
	l.UpdateStreak(ctx, t1)
	l.UpdateStreak(ctx, t2)
	if !l.LastActivity().Equal(t2) {
		t.Errorf("last activity = %v, want %v even on the same-day branch", l.LastActivity(), t2)
	}
}

func TestLevelingScenario(t *testing.T) {
	// Starting from zero, 150 XP reaches level 2; zero more changes nothing.
	l := NewLedger(nil)
	ctx := context.Background()

	if l.Level() != 1 {
		t.Fatalf("fresh ledger level = %d, want 1", l.Level())
	}
	level, leveledUp, _ := l.ApplyXP(ctx, 150, SourceQuiz, "")
	if level != 2 || !leveledUp {
		t.Fatalf("after 150 XP: level = %d leveledUp = %v, want 2 true", level, leveledUp)
	}
	level, leveledUp, _ = l.ApplyXP(ctx, 0, SourceQuiz, "")
	if level != 2 || leveledUp {
		t.Errorf("after 0 XP: level = %d leveledUp = %v, want 2 false", level, leveledUp)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(nil)
	l.ApplyXP(ctx, 200, SourceQuiz, "")
	l.CompleteModule(ctx, "m2", 1)
	l.CompleteModule(ctx, "m1", 1)
	l.CompleteTrack(ctx, "t1")
	l.CompleteQuiz(ctx, passedResult("q1"), 0)
	l.UpdateStreak(ctx, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	data := l.SnapshotData()
	if data.XP != l.XP() || data.Level != l.Level() {
		t.Errorf("snapshot xp/level = %d/%d, want %d/%d", data.XP, data.Level, l.XP(), l.Level())
	}
	if len(data.CompletedModules) != 2 || data.CompletedModules[0] != "m1" {
		t.Errorf("snapshot modules = %v, want sorted [m1 m2]", data.CompletedModules)
	}

	restored := FromSnapshot(data, nil)
	if restored.XP() != l.XP() || restored.Level() != l.Level() {
		t.Errorf("restored xp/level = %d/%d, want %d/%d", restored.XP(), restored.Level(), l.XP(), l.Level())
	}
	if restored.StreakDays() != l.StreakDays() {
		t.Errorf("restored streak = %d, want %d", restored.StreakDays(), l.StreakDays())
	}
	if !restored.HasCompletedQuiz("q1") {
		t.Error("restored ledger lost completed quiz")
	}
	if !restored.LastActivity().Equal(l.LastActivity().UTC().Truncate(time.Second)) {
		t.Errorf("restored last activity = %v, want %v", restored.LastActivity(), l.LastActivity())
	}

	// A second completion of an already-restored module stays a no-op.
	if award, _ := restored.CompleteModule(ctx, "m1", 1); award != nil {
		t.Error("restored ledger should remember completed modules")
	}
}

func TestFromNilSnapshot(t *testing.T) {
	l := FromSnapshot(nil, nil)
	if l.XP() != 0 || l.Level() != 1 || l.StreakDays() != 0 {
		t.Error("nil snapshot should produce an empty ledger")
	}
}

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(nil)
	l.CompleteModule(ctx, "m1", 1)
	l.CompleteModule(ctx, "m2", 1)
	l.UpdateStreak(ctx, time.Now())

	m := l.Metrics()
	if m.ModulesCompleted != 2 {
		t.Errorf("modules completed = %d, want 2", m.ModulesCompleted)
	}
	if m.XP != l.XP() {
		t.Errorf("metrics xp = %d, want %d", m.XP, l.XP())
	}
	if m.StreakDays != 1 {
		t.Errorf("streak days = %d, want 1", m.StreakDays)
	}
}
