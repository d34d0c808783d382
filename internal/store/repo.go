package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SnapshotData captures the full progression state at a point in time.
// Timestamps inside the nested data are RFC3339 strings; the owning
// domain packages parse them back on load.
type SnapshotData struct {
	Version int                  `json:"version"`
	Ledger  *LedgerSnapshotData  `json:"ledger,omitempty"`
	Badges  *BadgesSnapshotData  `json:"badges,omitempty"`
	Session *SessionSnapshotData `json:"session,omitempty"`
}

// LedgerSnapshotData is the serialized form of the progression ledger.
type LedgerSnapshotData struct {
	XP               int      `json:"xp"`
	Level            int      `json:"level"`
	CompletedModules []string `json:"completed_modules"`
	CompletedTracks  []string `json:"completed_tracks"`
	CompletedQuizzes []string `json:"completed_quizzes"`
	StreakDays       int      `json:"streak_days"`
	LastActivity     string   `json:"last_activity,omitempty"` // RFC3339
}

// BadgesSnapshotData is the serialized unlock state of the badge set.
type BadgesSnapshotData struct {
	Unlocked []UnlockedBadgeData `json:"unlocked"`
}

// UnlockedBadgeData is one unlocked badge in a snapshot or export.
type UnlockedBadgeData struct {
	BadgeID    string `json:"badge_id"`
	UnlockedAt string `json:"unlocked_at"` // RFC3339
}

// AnswerData is the serialized form of a captured answer.
type AnswerData struct {
	Value  string   `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
}

// SessionSnapshotData is an in-flight quiz attempt, saved so an
// interrupted session can be resumed.
type SessionSnapshotData struct {
	QuizID           string                `json:"quiz_id"`
	AttemptID        string                `json:"attempt_id"`
	CurrentIndex     int                   `json:"current_index"`
	Answers          map[string]AnswerData `json:"answers"`
	Flagged          []string              `json:"flagged,omitempty"`
	StartedAt        string                `json:"started_at"` // RFC3339
	RemainingSeconds int                   `json:"remaining_seconds"`
}

// Snapshot represents a point-in-time capture of progression state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages progression state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// QuestionResultData is the per-question detail on a quiz event.
type QuestionResultData struct {
	QuestionID    string
	IsCorrect     bool
	UserAnswer    string
	UserAnswerSet []string
	PointsAwarded int
}

// QuizEventData captures one finalized quiz attempt.
type QuizEventData struct {
	QuizID          string
	AttemptID       string
	Score           float64
	CorrectCount    int
	TotalQuestions  int
	TotalPoints     int
	MaxPoints       int
	Passed          bool
	TimeSpentSecs   int
	QuestionResults []QuestionResultData
}

// QuizEventRecord is a stored quiz event with its ordering metadata.
type QuizEventRecord struct {
	QuizEventData
	Sequence  int64
	Timestamp time.Time
}

// XPEventData captures one experience award.
type XPEventData struct {
	Amount     int
	Source     string // quiz, module, track, streak, bonus
	SourceID   *string
	LevelAfter int
	LeveledUp  bool
}

// XPEventRecord is a stored XP event with its ordering metadata.
type XPEventRecord struct {
	XPEventData
	Sequence  int64
	Timestamp time.Time
}

// BadgeEventData captures a badge unlock.
type BadgeEventData struct {
	BadgeID         string
	Name            string
	Rarity          string
	ConditionType   string
	ConditionTarget int
	MetricValue     int
}

// BadgeEventRecord is a stored badge event with its ordering metadata.
type BadgeEventRecord struct {
	BadgeEventData
	Sequence  int64
	Timestamp time.Time
}

// EventRepo provides append and query access to progression events.
type EventRepo interface {
	// AppendQuizEvent records a finalized quiz attempt.
	AppendQuizEvent(ctx context.Context, data QuizEventData) error

	// QueryQuizEvents returns quiz attempts, newest first.
	QueryQuizEvents(ctx context.Context, opts QueryOpts) ([]QuizEventRecord, error)

	// LatestQuizEvent returns the most recent attempt for a quiz,
	// or the most recent overall when quizID is empty. Nil if none.
	LatestQuizEvent(ctx context.Context, quizID string) (*QuizEventRecord, error)

	// CountAttempts returns the number of recorded attempts for a quiz.
	CountAttempts(ctx context.Context, quizID string) (int, error)

	// AppendXPEvent records an experience award.
	AppendXPEvent(ctx context.Context, data XPEventData) error

	// QueryXPEvents returns XP awards, newest first.
	QueryXPEvents(ctx context.Context, opts QueryOpts) ([]XPEventRecord, error)

	// AppendBadgeEvent records a badge unlock.
	AppendBadgeEvent(ctx context.Context, data BadgeEventData) error

	// QueryBadgeEvents returns badge unlocks, newest first.
	QueryBadgeEvents(ctx context.Context, opts QueryOpts) ([]BadgeEventRecord, error)
}
