package badges

import "time"

// ConditionType selects which ledger metric a badge condition reads.
type ConditionType string

const (
	ConditionModulesCompleted ConditionType = "modules_completed"
	ConditionXPEarned         ConditionType = "xp_earned"
	ConditionStreakDays       ConditionType = "streak_days"
)

// Valid reports whether t is a known condition type.
func (t ConditionType) Valid() bool {
	switch t {
	case ConditionModulesCompleted, ConditionXPEarned, ConditionStreakDays:
		return true
	}
	return false
}

// Condition is the unlock rule on a badge: the selected metric must
// meet or exceed Target.
type Condition struct {
	Type   ConditionType `yaml:"type"`
	Target int           `yaml:"target"`
}

// Badge is a catalog entry. Definitions are authoring-time data and
// read-only at runtime; unlock state lives in the Service.
type Badge struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Rarity      Rarity    `yaml:"rarity"`
	Condition   Condition `yaml:"condition"`
}

// Unlock records when a badge was earned. Unlocks are monotonic; once
// earned a badge is never revoked.
type Unlock struct {
	Badge      Badge
	UnlockedAt time.Time
}

// Metrics are the ledger counters badge conditions evaluate against.
type Metrics struct {
	ModulesCompleted int
	XP               int
	StreakDays       int
}

// value returns the metric selected by a condition type.
func (m Metrics) value(t ConditionType) int {
	switch t {
	case ConditionModulesCompleted:
		return m.ModulesCompleted
	case ConditionXPEarned:
		return m.XP
	case ConditionStreakDays:
		return m.StreakDays
	}
	return 0
}

// Met reports whether the condition is satisfied by the metrics.
func (c Condition) Met(m Metrics) bool {
	return m.value(c.Type) >= c.Target
}
