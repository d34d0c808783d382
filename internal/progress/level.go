package progress

import "math"

// Leveling curve constants. Each level's threshold grows geometrically,
// so later levels take proportionally longer to reach.
const (
	BaseXP          = 100
	LevelMultiplier = 1.5
)

// XPForLevel returns the total XP threshold for reaching level n.
// Level 1 is the floor; any XP below BaseXP*1.5 keeps the learner there.
func XPForLevel(n int) int {
	if n <= 1 {
		return BaseXP
	}
	// Past level ~97 the geometric threshold no longer fits in an int.
	// Saturate instead of overflowing so the walk in LevelFromXP stays
	// monotone for any input.
	xp := math.Floor(BaseXP * math.Pow(LevelMultiplier, float64(n-1)))
	if xp >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int(xp)
}

// LevelFromXP derives the level for a given XP total. It walks the
// thresholds upward from level 1, advancing while the next level's
// threshold is within reach. Exact inverse of XPForLevel:
// LevelFromXP(XPForLevel(n)) == n for every representable threshold.
func LevelFromXP(xp int) int {
	level := 1
	for {
		next := XPForLevel(level + 1)
		if xp < next || next <= XPForLevel(level) {
			return level
		}
		level++
	}
}

// NextLevelXP returns the XP threshold for the level after the current one.
func NextLevelXP(level int) int {
	return XPForLevel(level + 1)
}

// ProgressToNext returns how far xp has advanced between the current
// level's threshold and the next, in [0, 1). Level 1 spans from zero.
func ProgressToNext(xp int) float64 {
	if xp < 0 {
		xp = 0
	}
	level := LevelFromXP(xp)
	cur := 0
	if level > 1 {
		cur = XPForLevel(level)
	}
	next := XPForLevel(level + 1)
	if next <= cur {
		return 0
	}
	return float64(xp-cur) / float64(next-cur)
}
