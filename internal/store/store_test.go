package store

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().UTC().Truncate(time.Second)
	err = repo.Save(ctx, &Snapshot{
		Sequence:  42,
		Timestamp: now,
		Data: SnapshotData{
			Version: 1,
			Ledger: &LedgerSnapshotData{
				XP:               175,
				Level:            2,
				CompletedQuizzes: []string{"budgeting-101"},
				StreakDays:       3,
				LastActivity:     now.Format(time.RFC3339),
			},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", snap.Sequence)
	}
	if snap.Data.Ledger == nil {
		t.Fatal("expected ledger data in snapshot")
	}
	if snap.Data.Ledger.XP != 175 {
		t.Errorf("ledger xp = %d, want 175", snap.Data.Ledger.XP)
	}
	if snap.Data.Ledger.Level != 2 {
		t.Errorf("ledger level = %d, want 2", snap.Data.Ledger.Level)
	}
	if len(snap.Data.Ledger.CompletedQuizzes) != 1 || snap.Data.Ledger.CompletedQuizzes[0] != "budgeting-101" {
		t.Errorf("completed quizzes = %v, want [budgeting-101]", snap.Data.Ledger.CompletedQuizzes)
	}
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: i + 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 3 {
		t.Errorf("sequence = %d, want 3", snap.Sequence)
	}
	if snap.Data.Version != 3 {
		t.Errorf("data.version = %d, want 3", snap.Data.Version)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	// Prune to keep 5.
	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	count, err := s.Client().Snapshot.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Errorf("remaining snapshots = %d, want 5", count)
	}

	// Latest should still be sequence 7.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 7 {
		t.Errorf("latest sequence = %d, want 7", snap.Sequence)
	}
}

func TestSnapshotPruneWithFewerThanKeep(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 2; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	// Prune with keep=5 should be a no-op.
	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	count, err := s.Client().Snapshot.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("remaining snapshots = %d, want 2", count)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestLastSequence(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	last, err := s.LastSequence(ctx)
	if err != nil {
		t.Fatalf("last sequence: %v", err)
	}
	if last != 0 {
		t.Errorf("last sequence = %d, want 0 on a fresh store", last)
	}

	if err := s.EventRepo().AppendXPEvent(ctx, XPEventData{Amount: 10, Source: "quiz", LevelAfter: 1}); err != nil {
		t.Fatalf("append: %v", err)
	}
	last, err = s.LastSequence(ctx)
	if err != nil {
		t.Fatalf("last sequence: %v", err)
	}
	if last != 1 {
		t.Errorf("last sequence = %d, want 1 after one event", last)
	}
}

func TestAppendAndQueryQuizEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	attempts := []QuizEventData{
		{QuizID: "budgeting-101", AttemptID: "a1", Score: 40, CorrectCount: 2, TotalQuestions: 5, TotalPoints: 20, MaxPoints: 50, Passed: false, TimeSpentSecs: 120},
		{QuizID: "budgeting-101", AttemptID: "a2", Score: 80, CorrectCount: 4, TotalQuestions: 5, TotalPoints: 40, MaxPoints: 50, Passed: true, TimeSpentSecs: 95,
			QuestionResults: []QuestionResultData{
				{QuestionID: "q1", IsCorrect: true, UserAnswer: "b", PointsAwarded: 10},
				{QuestionID: "q2", IsCorrect: false, UserAnswerSet: []string{"a", "c"}},
			}},
		{QuizID: "saving-strategies", AttemptID: "a3", Score: 100, CorrectCount: 3, TotalQuestions: 3, TotalPoints: 30, MaxPoints: 30, Passed: true, TimeSpentSecs: 60},
	}
	for i, data := range attempts {
		if err := repo.AppendQuizEvent(ctx, data); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	records, err := repo.QueryQuizEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}

	// Newest first.
	if records[0].AttemptID != "a3" {
		t.Errorf("records[0].AttemptID = %q, want a3", records[0].AttemptID)
	}
	for i := 1; i < len(records); i++ {
		if records[i].Sequence >= records[i-1].Sequence {
			t.Errorf("records not ordered newest first at index %d", i)
		}
	}

	// Question results survive the round trip.
	if len(records[1].QuestionResults) != 2 {
		t.Fatalf("question results = %d, want 2", len(records[1].QuestionResults))
	}
	qr := records[1].QuestionResults[1]
	if qr.QuestionID != "q2" || qr.IsCorrect || len(qr.UserAnswerSet) != 2 {
		t.Errorf("unexpected question result: %+v", qr)
	}

	// Limit.
	limited, err := repo.QueryQuizEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limited records = %d, want 1", len(limited))
	}
}

func TestLatestQuizEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	// Empty store.
	rec, err := repo.LatestQuizEvent(ctx, "")
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if rec != nil {
		t.Fatal("expected nil record when no events exist")
	}

	events := []QuizEventData{
		{QuizID: "budgeting-101", AttemptID: "a1", Score: 40},
		{QuizID: "saving-strategies", AttemptID: "a2", Score: 100, Passed: true},
		{QuizID: "budgeting-101", AttemptID: "a3", Score: 90, Passed: true},
	}
	for i, data := range events {
		if err := repo.AppendQuizEvent(ctx, data); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	// Latest overall.
	rec, err = repo.LatestQuizEvent(ctx, "")
	if err != nil {
		t.Fatalf("latest overall: %v", err)
	}
	if rec == nil || rec.AttemptID != "a3" {
		t.Errorf("latest overall = %+v, want attempt a3", rec)
	}

	// Latest for a specific quiz.
	rec, err = repo.LatestQuizEvent(ctx, "saving-strategies")
	if err != nil {
		t.Fatalf("latest for quiz: %v", err)
	}
	if rec == nil || rec.AttemptID != "a2" {
		t.Errorf("latest for saving-strategies = %+v, want attempt a2", rec)
	}
}

func TestCountAttempts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := repo.AppendQuizEvent(ctx, QuizEventData{QuizID: "credit-fundamentals", AttemptID: "a"})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if err := repo.AppendQuizEvent(ctx, QuizEventData{QuizID: "budgeting-101", AttemptID: "b"}); err != nil {
		t.Fatalf("append other quiz: %v", err)
	}

	count, err := repo.CountAttempts(ctx, "credit-fundamentals")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Errorf("attempts = %d, want 3", count)
	}

	count, err = repo.CountAttempts(ctx, "never-taken")
	if err != nil {
		t.Fatalf("count (none): %v", err)
	}
	if count != 0 {
		t.Errorf("attempts = %d, want 0", count)
	}
}

func TestAppendAndQueryXPEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	quizID := "budgeting-101"
	events := []XPEventData{
		{Amount: 25, Source: "quiz", SourceID: &quizID, LevelAfter: 1},
		{Amount: 100, Source: "module", LevelAfter: 2, LeveledUp: true},
	}
	for i, data := range events {
		if err := repo.AppendXPEvent(ctx, data); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	records, err := repo.QueryXPEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Amount != 100 || !records[0].LeveledUp {
		t.Errorf("records[0] = %+v, want the level-up award first", records[0].XPEventData)
	}
	if records[1].SourceID == nil || *records[1].SourceID != quizID {
		t.Errorf("records[1].SourceID = %v, want %q", records[1].SourceID, quizID)
	}
}

func TestAppendAndQueryBadgeEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendBadgeEvent(ctx, BadgeEventData{
		BadgeID:         "first-steps",
		Name:            "First Steps",
		Rarity:          "common",
		ConditionType:   "modules_completed",
		ConditionTarget: 1,
		MetricValue:     1,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	records, err := repo.QueryBadgeEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	rec := records[0]
	if rec.BadgeID != "first-steps" || rec.Rarity != "common" || rec.ConditionTarget != 1 {
		t.Errorf("unexpected record: %+v", rec.BadgeEventData)
	}
}

func TestSequenceSharedAcrossEventTypes(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendQuizEvent(ctx, QuizEventData{QuizID: "q", AttemptID: "a"}); err != nil {
		t.Fatalf("append quiz event: %v", err)
	}
	if err := repo.AppendXPEvent(ctx, XPEventData{Amount: 10, Source: "quiz", LevelAfter: 1}); err != nil {
		t.Fatalf("append xp event: %v", err)
	}
	badge := BadgeEventData{
		BadgeID:         "b",
		Name:            "B",
		Rarity:          "common",
		ConditionType:   "xp_earned",
		ConditionTarget: 10,
		MetricValue:     10,
	}
	if err := repo.AppendBadgeEvent(ctx, badge); err != nil {
		t.Fatalf("append badge event: %v", err)
	}

	quiz, err := repo.QueryQuizEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query quiz: %v", err)
	}
	xp, err := repo.QueryXPEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query xp: %v", err)
	}
	badges, err := repo.QueryBadgeEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query badges: %v", err)
	}

	// One global counter covers all three tables.
	if quiz[0].Sequence >= xp[0].Sequence {
		t.Errorf("quiz seq %d should precede xp seq %d", quiz[0].Sequence, xp[0].Sequence)
	}
	if xp[0].Sequence >= badges[0].Sequence {
		t.Errorf("xp seq %d should precede badge seq %d", xp[0].Sequence, badges[0].Sequence)
	}
}

func TestAutoMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	var name string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='snapshots'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "snapshots" {
		t.Errorf("table name = %q, want 'snapshots'", name)
	}
}
