package progress

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/finlitapp/finlit/internal/badges"
	"github.com/finlitapp/finlit/internal/engine"
	"github.com/finlitapp/finlit/internal/store"
)

// XP awards per completion source.
const (
	// QuizPassXP is the base award for passing a quiz, on top of the
	// quiz's own XPReward.
	QuizPassXP = 50
	// PerfectBonusXP is added when every question was answered correctly.
	PerfectBonusXP = 25
	// ModuleBaseXP is multiplied by the module's difficulty tier.
	ModuleBaseXP = 50
	// TrackXP is the flat award for finishing a learning track.
	TrackXP = 200
	// StreakBonusXP is awarded each day the study streak extends.
	StreakBonusXP = 10
)

// Event source labels recorded on XP events.
const (
	SourceQuiz   = "quiz"
	SourceModule = "module"
	SourceTrack  = "track"
	SourceStreak = "streak"
)

// Award describes the outcome of a single XP grant.
type Award struct {
	XP        int
	NewLevel  int
	LeveledUp bool
}

// StreakUpdate describes the outcome of a streak evaluation.
type StreakUpdate struct {
	Days     int
	Extended bool
	Award    *Award // non-nil only when the streak extended
}

// Ledger is the single long-lived progression record. XP is strictly
// additive and level is always rederived from XP, never stored on its
// own. Completion methods are idempotent per ID.
//
// Persistence failures from the event repo are returned to the caller
// but never roll back the in-memory state; the ledger stays
// authoritative and the next snapshot carries the state forward.
type Ledger struct {
	mu sync.Mutex

	xp               int
	completedModules map[string]bool
	completedTracks  map[string]bool
	completedQuizzes map[string]bool
	streakDays       int
	lastActivity     time.Time

	events store.EventRepo
}

// NewLedger creates an empty ledger. events may be nil in tests.
func NewLedger(events store.EventRepo) *Ledger {
	return &Ledger{
		completedModules: make(map[string]bool),
		completedTracks:  make(map[string]bool),
		completedQuizzes: make(map[string]bool),
		events:           events,
	}
}

// FromSnapshot rebuilds a ledger from persisted snapshot data.
func FromSnapshot(data *store.LedgerSnapshotData, events store.EventRepo) *Ledger {
	l := NewLedger(events)
	if data == nil {
		return l
	}

	l.xp = data.XP
	if l.xp < 0 {
		l.xp = 0
	}
	for _, id := range data.CompletedModules {
		l.completedModules[id] = true
	}
	for _, id := range data.CompletedTracks {
		l.completedTracks[id] = true
	}
	for _, id := range data.CompletedQuizzes {
		l.completedQuizzes[id] = true
	}
	l.streakDays = data.StreakDays
	if data.LastActivity != "" {
		if t, err := time.Parse(time.RFC3339, data.LastActivity); err == nil {
			l.lastActivity = t
		}
	}
	return l
}

// ApplyXP adds amount to the ledger and rederives the level. Amounts
// that are not positive leave the ledger untouched.
func (l *Ledger) ApplyXP(ctx context.Context, amount int, source, sourceID string) (newLevel int, leveledUp bool, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.applyXPLocked(ctx, amount, source, sourceID)
}

func (l *Ledger) applyXPLocked(ctx context.Context, amount int, source, sourceID string) (int, bool, error) {
	before := LevelFromXP(l.xp)
	if amount <= 0 {
		return before, false, nil
	}

	l.xp += amount
	after := LevelFromXP(l.xp)
	leveledUp := after > before

	var err error
	if l.events != nil {
		data := store.XPEventData{
			Amount:     amount,
			Source:     source,
			LevelAfter: after,
			LeveledUp:  leveledUp,
		}
		if sourceID != "" {
			data.SourceID = &sourceID
		}
		err = l.events.AppendXPEvent(ctx, data)
	}
	return after, leveledUp, err
}

// CompleteModule records a finished learning module and awards XP scaled
// by its difficulty tier. Completing the same module again is a no-op.
func (l *Ledger) CompleteModule(ctx context.Context, id string, tier int) (*Award, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if id == "" || l.completedModules[id] {
		return nil, nil
	}
	l.completedModules[id] = true

	if tier < 1 {
		tier = 1
	}
	amount := ModuleBaseXP * tier
	level, leveledUp, err := l.applyXPLocked(ctx, amount, SourceModule, id)
	return &Award{XP: amount, NewLevel: level, LeveledUp: leveledUp}, err
}

// CompleteQuiz records a passed quiz attempt and awards its XP. Failed
// attempts and repeat completions award nothing.
func (l *Ledger) CompleteQuiz(ctx context.Context, result *engine.QuizResult, xpReward int) (*Award, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if result == nil || !result.Passed {
		return nil, nil
	}
	if result.QuizID == "" || l.completedQuizzes[result.QuizID] {
		return nil, nil
	}
	l.completedQuizzes[result.QuizID] = true

	amount := QuizPassXP + xpReward
	if result.Perfect() {
		amount += PerfectBonusXP
	}
	level, leveledUp, err := l.applyXPLocked(ctx, amount, SourceQuiz, result.QuizID)
	return &Award{XP: amount, NewLevel: level, LeveledUp: leveledUp}, err
}

// CompleteTrack records a finished learning track with a flat XP award.
// Completing the same track again is a no-op.
func (l *Ledger) CompleteTrack(ctx context.Context, id string) (*Award, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if id == "" || l.completedTracks[id] {
		return nil, nil
	}
	l.completedTracks[id] = true

	level, leveledUp, err := l.applyXPLocked(ctx, TrackXP, SourceTrack, id)
	return &Award{XP: TrackXP, NewLevel: level, LeveledUp: leveledUp}, err
}

// UpdateStreak evaluates the study streak against now. Whole days since
// the last activity decide the branch: one day extends the streak and
// pays the bonus, same-day activity changes nothing, and a longer gap
// resets the streak to 1. LastActivity always moves to now.
func (l *Ledger) UpdateStreak(ctx context.Context, now time.Time) (*StreakUpdate, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.lastActivity.IsZero() {
		l.streakDays = 1
		l.lastActivity = now
		return &StreakUpdate{Days: 1, Extended: true}, nil
	}

	deltaDays := int(now.Sub(l.lastActivity).Hours() / 24)
	l.lastActivity = now

	switch {
	case deltaDays == 0:
		return &StreakUpdate{Days: l.streakDays}, nil
	case deltaDays == 1:
		l.streakDays++
		level, leveledUp, err := l.applyXPLocked(ctx, StreakBonusXP, SourceStreak, "")
		return &StreakUpdate{
			Days:     l.streakDays,
			Extended: true,
			Award:    &Award{XP: StreakBonusXP, NewLevel: level, LeveledUp: leveledUp},
		}, err
	default:
		l.streakDays = 1
		return &StreakUpdate{Days: 1}, nil
	}
}

// XP returns the cumulative experience total.
func (l *Ledger) XP() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.xp
}

// Level returns the current level, derived from XP.
func (l *Ledger) Level() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return LevelFromXP(l.xp)
}

// NextThreshold returns the XP needed for the next level.
func (l *Ledger) NextThreshold() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return NextLevelXP(LevelFromXP(l.xp))
}

// Progress returns the fraction of the way to the next level.
func (l *Ledger) Progress() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ProgressToNext(l.xp)
}

// StreakDays returns the current streak length.
func (l *Ledger) StreakDays() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.streakDays
}

// LastActivity returns the time of the last streak-relevant activity.
func (l *Ledger) LastActivity() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastActivity
}

// HasCompletedQuiz reports whether a quiz has ever been passed.
func (l *Ledger) HasCompletedQuiz(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.completedQuizzes[id]
}

// CompletedModules returns the completed module IDs, sorted.
func (l *Ledger) CompletedModules() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return sortedKeys(l.completedModules)
}

// CompletedTracks returns the completed track IDs, sorted.
func (l *Ledger) CompletedTracks() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return sortedKeys(l.completedTracks)
}

// CompletedQuizzes returns the passed quiz IDs, sorted.
func (l *Ledger) CompletedQuizzes() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return sortedKeys(l.completedQuizzes)
}

// Metrics returns the counters badge conditions are evaluated against.
func (l *Ledger) Metrics() badges.Metrics {
	l.mu.Lock()
	defer l.mu.Unlock()
	return badges.Metrics{
		ModulesCompleted: len(l.completedModules),
		XP:               l.xp,
		StreakDays:       l.streakDays,
	}
}

// SnapshotData serializes the ledger for snapshot persistence.
func (l *Ledger) SnapshotData() *store.LedgerSnapshotData {
	l.mu.Lock()
	defer l.mu.Unlock()

	data := &store.LedgerSnapshotData{
		XP:               l.xp,
		Level:            LevelFromXP(l.xp),
		CompletedModules: sortedKeys(l.completedModules),
		CompletedTracks:  sortedKeys(l.completedTracks),
		CompletedQuizzes: sortedKeys(l.completedQuizzes),
		StreakDays:       l.streakDays,
	}
	if !l.lastActivity.IsZero() {
		data.LastActivity = l.lastActivity.UTC().Format(time.RFC3339)
	}
	return data
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
