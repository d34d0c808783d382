package progress

import (
	"math"
	"testing"
)

func TestXPForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 100},
		{2, 150},
		{3, 225},
		{4, 337}, // floor(100 * 1.5^3)
		{5, 506},
	}
	for _, tt := range tests {
		if got := XPForLevel(tt.level); got != tt.want {
			t.Errorf("XPForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestLevelFromXP(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 1},
		{149, 1},
		{150, 2},
		{224, 2},
		{225, 3},
		{1000, 6}, // thresholds 759 (L6) and 1139 (L7)
	}
	for _, tt := range tests {
		if got := LevelFromXP(tt.xp); got != tt.want {
			t.Errorf("LevelFromXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestThresholdExactness(t *testing.T) {
	// LevelFromXP must be the exact inverse of XPForLevel.
	for n := 1; n <= 30; n++ {
		if got := LevelFromXP(XPForLevel(n)); got != n {
			t.Errorf("LevelFromXP(XPForLevel(%d)) = %d, want %d", n, got, n)
		}
		// One XP short of the threshold stays on the previous level.
		if n > 1 {
			if got := LevelFromXP(XPForLevel(n) - 1); got != n-1 {
				t.Errorf("LevelFromXP(XPForLevel(%d)-1) = %d, want %d", n, got, n-1)
			}
		}
	}
}

func TestXPForLevelSaturates(t *testing.T) {
	// The geometric curve outgrows int64 around level 98. Thresholds must
	// stay non-negative and monotone instead of wrapping.
	prev := 0
	for n := 1; n <= 200; n++ {
		got := XPForLevel(n)
		if got < 0 {
			t.Fatalf("XPForLevel(%d) = %d, negative", n, got)
		}
		if got < prev {
			t.Fatalf("XPForLevel(%d) = %d, below XPForLevel(%d) = %d", n, got, n-1, prev)
		}
		prev = got
	}
	if got := XPForLevel(200); got != math.MaxInt64 {
		t.Errorf("XPForLevel(200) = %d, want saturation at MaxInt64", got)
	}
}

func TestLevelFromXPTerminatesAtExtremes(t *testing.T) {
	// An imported ledger can carry any xp value within the schema bounds;
	// the walk must terminate even past the saturated thresholds.
	for _, xp := range []int{math.MaxInt64, math.MaxInt64 - 1, 1 << 62} {
		got := LevelFromXP(xp)
		if got < 90 {
			t.Errorf("LevelFromXP(%d) = %d, want a level near the top of the curve", xp, got)
		}
	}
	if got := ProgressToNext(math.MaxInt64); math.IsNaN(got) || got < 0 || got > 1 {
		t.Errorf("ProgressToNext(MaxInt64) = %f, want a value in [0, 1]", got)
	}
}

func TestNextLevelXP(t *testing.T) {
	if got := NextLevelXP(1); got != 150 {
		t.Errorf("NextLevelXP(1) = %d, want 150", got)
	}
	if got := NextLevelXP(2); got != 225 {
		t.Errorf("NextLevelXP(2) = %d, want 225", got)
	}
}

func TestProgressToNext(t *testing.T) {
	if got := ProgressToNext(0); got != 0 {
		t.Errorf("ProgressToNext(0) = %f, want 0", got)
	}
	if got := ProgressToNext(75); got != 0.5 {
		t.Errorf("ProgressToNext(75) = %f, want 0.5", got)
	}
	// Level 2 spans 150 to 225.
	got := ProgressToNext(150 + 37)
	want := 37.0 / 75.0
	if got != want {
		t.Errorf("ProgressToNext(187) = %f, want %f", got, want)
	}
}
