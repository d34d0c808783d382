package appstate

import (
	"context"
	"testing"

	"github.com/finlitapp/finlit/internal/badges"
	"github.com/finlitapp/finlit/internal/content"
	"github.com/finlitapp/finlit/internal/engine"
	"github.com/finlitapp/finlit/internal/progress"
	"github.com/finlitapp/finlit/internal/session"
	"github.com/finlitapp/finlit/internal/store"
)

// mockEventRepo records appended events for assertions.
type mockEventRepo struct {
	quizEvents []store.QuizEventData
	xpEvents   []store.XPEventData
}

func (m *mockEventRepo) AppendQuizEvent(ctx context.Context, data store.QuizEventData) error {
	m.quizEvents = append(m.quizEvents, data)
	return nil
}

func (m *mockEventRepo) QueryQuizEvents(ctx context.Context, opts store.QueryOpts) ([]store.QuizEventRecord, error) {
	return nil, nil
}

func (m *mockEventRepo) LatestQuizEvent(ctx context.Context, quizID string) (*store.QuizEventRecord, error) {
	return nil, nil
}

func (m *mockEventRepo) CountAttempts(ctx context.Context, quizID string) (int, error) {
	return len(m.quizEvents), nil
}

func (m *mockEventRepo) AppendXPEvent(ctx context.Context, data store.XPEventData) error {
	m.xpEvents = append(m.xpEvents, data)
	return nil
}

func (m *mockEventRepo) QueryXPEvents(ctx context.Context, opts store.QueryOpts) ([]store.XPEventRecord, error) {
	return nil, nil
}

func (m *mockEventRepo) AppendBadgeEvent(ctx context.Context, data store.BadgeEventData) error {
	return nil
}

func (m *mockEventRepo) QueryBadgeEvents(ctx context.Context, opts store.QueryOpts) ([]store.BadgeEventRecord, error) {
	return nil, nil
}

// mockSnapshotRepo records saves and prunes.
type mockSnapshotRepo struct {
	saved  []*store.Snapshot
	pruned []int
}

func (m *mockSnapshotRepo) Save(ctx context.Context, snap *store.Snapshot) error {
	m.saved = append(m.saved, snap)
	return nil
}

func (m *mockSnapshotRepo) Latest(ctx context.Context) (*store.Snapshot, error) {
	if len(m.saved) == 0 {
		return nil, nil
	}
	return m.saved[len(m.saved)-1], nil
}

func (m *mockSnapshotRepo) Prune(ctx context.Context, keep int) error {
	m.pruned = append(m.pruned, keep)
	return nil
}

func testState(t *testing.T) (*State, *mockEventRepo, *mockSnapshotRepo) {
	t.Helper()
	catalog, err := badges.Catalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	events := &mockEventRepo{}
	snapshots := &mockSnapshotRepo{}
	return &State{
		Quizzes: []content.Quiz{{
			ID:           "budgeting-101",
			Title:        "Budgeting Basics",
			PassingScore: 70,
			XPReward:     30,
			Questions: []content.Question{
				{ID: "q1", Type: content.TypeBoolean, Prompt: "p", Answer: "true"},
			},
		}},
		Ledger:    progress.NewLedger(events),
		Badges:    badges.NewService(catalog, events),
		Session:   session.New(),
		Events:    events,
		Snapshots: snapshots,
		lastSeq:   func(ctx context.Context) (int64, error) { return 42, nil },
	}, events, snapshots
}

func TestFinishAttemptRecordsEverything(t *testing.T) {
	state, events, snapshots := testState(t)
	ctx := context.Background()
	quiz := &state.Quizzes[0]

	result := &engine.QuizResult{
		QuizID:         quiz.ID,
		AttemptID:      "attempt-1",
		Score:          100,
		CorrectCount:   1,
		TotalQuestions: 1,
		TotalPoints:    10,
		MaxPoints:      10,
		Passed:         true,
	}

	outcome, err := state.FinishAttempt(ctx, quiz, result)
	if err != nil {
		t.Fatalf("finish attempt: %v", err)
	}

	if len(events.quizEvents) != 1 {
		t.Fatalf("quiz events = %d, want 1", len(events.quizEvents))
	}
	if events.quizEvents[0].AttemptID != "attempt-1" {
		t.Errorf("attempt id = %q", events.quizEvents[0].AttemptID)
	}

	if outcome.QuizAward == nil {
		t.Fatal("expected a quiz award for a passed attempt")
	}
	// Pass XP + quiz reward + perfect bonus.
	wantXP := progress.QuizPassXP + quiz.XPReward + progress.PerfectBonusXP
	if outcome.QuizAward.XP != wantXP {
		t.Errorf("award xp = %d, want %d", outcome.QuizAward.XP, wantXP)
	}

	if outcome.Streak == nil || outcome.Streak.Days != 1 {
		t.Errorf("streak = %+v, want 1 day", outcome.Streak)
	}

	if len(snapshots.saved) != 1 {
		t.Fatalf("snapshots saved = %d, want 1", len(snapshots.saved))
	}
	if snapshots.saved[0].Sequence != 42 {
		t.Errorf("snapshot sequence = %d, want 42", snapshots.saved[0].Sequence)
	}
	if len(snapshots.pruned) != 1 || snapshots.pruned[0] != snapshotKeep {
		t.Errorf("prune calls = %v, want [%d]", snapshots.pruned, snapshotKeep)
	}
}

func TestFinishAttemptRepeatGivesNoAward(t *testing.T) {
	state, _, _ := testState(t)
	ctx := context.Background()
	quiz := &state.Quizzes[0]

	result := &engine.QuizResult{
		QuizID: quiz.ID, Score: 100, CorrectCount: 1, TotalQuestions: 1, Passed: true,
	}

	if _, err := state.FinishAttempt(ctx, quiz, result); err != nil {
		t.Fatalf("first attempt: %v", err)
	}
	outcome, err := state.FinishAttempt(ctx, quiz, result)
	if err != nil {
		t.Fatalf("second attempt: %v", err)
	}
	if outcome.QuizAward != nil {
		t.Errorf("second completion award = %+v, want nil", outcome.QuizAward)
	}
}

func TestFinishAttemptFailedQuiz(t *testing.T) {
	state, events, _ := testState(t)
	ctx := context.Background()
	quiz := &state.Quizzes[0]

	result := &engine.QuizResult{
		QuizID: quiz.ID, Score: 0, TotalQuestions: 1, Passed: false,
	}

	outcome, err := state.FinishAttempt(ctx, quiz, result)
	if err != nil {
		t.Fatalf("finish attempt: %v", err)
	}
	if outcome.QuizAward != nil {
		t.Errorf("award for failed attempt = %+v, want nil", outcome.QuizAward)
	}
	// The attempt is still recorded and still counts for the streak.
	if len(events.quizEvents) != 1 {
		t.Errorf("quiz events = %d, want 1", len(events.quizEvents))
	}
	if outcome.Streak == nil {
		t.Error("expected streak update for failed attempt")
	}
}

func TestQuizByID(t *testing.T) {
	state, _, _ := testState(t)

	if quiz := state.QuizByID("budgeting-101"); quiz == nil || quiz.Title != "Budgeting Basics" {
		t.Errorf("QuizByID(budgeting-101) = %+v", quiz)
	}
	if quiz := state.QuizByID("missing"); quiz != nil {
		t.Errorf("QuizByID(missing) = %+v, want nil", quiz)
	}
}
