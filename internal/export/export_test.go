package export

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/finlitapp/finlit/internal/badges"
	"github.com/finlitapp/finlit/internal/progress"
)

func seededState(t *testing.T) (*progress.Ledger, *badges.Service) {
	t.Helper()
	ctx := context.Background()

	ledger := progress.NewLedger(nil)
	ledger.ApplyXP(ctx, 200, progress.SourceQuiz, "budgeting-101")
	ledger.CompleteModule(ctx, "m1", 2)
	ledger.UpdateStreak(ctx, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	catalog, err := badges.Catalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	svc := badges.NewService(catalog, nil)
	svc.Evaluate(ctx, ledger.Metrics(), time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	return ledger, svc
}

func TestExportShape(t *testing.T) {
	ledger, svc := seededState(t)
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	out, err := Export(ledger, svc, now)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasSuffix(string(out), "\n") {
		t.Error("export should end with a newline")
	}
	if !strings.Contains(string(out), "\n  \"version\"") {
		t.Error("export should be pretty-printed")
	}

	var env Envelope
	if err := json.Unmarshal(out, &env); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if env.Version != Version {
		t.Errorf("version = %q, want %q", env.Version, Version)
	}
	if env.ExportedAt != "2026-03-02T12:00:00Z" {
		t.Errorf("exportedAt = %q", env.ExportedAt)
	}
	if env.ProgressionLedger == nil || env.ProgressionLedger.XP != ledger.XP() {
		t.Errorf("ledger xp = %+v, want %d", env.ProgressionLedger, ledger.XP())
	}
	if env.Badges == nil || len(env.Badges.Unlocked) != svc.UnlockedCount() {
		t.Errorf("badges in export = %+v, want %d unlocks", env.Badges, svc.UnlockedCount())
	}
}

func TestRoundTrip(t *testing.T) {
	ledger, svc := seededState(t)

	out, err := Export(ledger, svc, time.Now())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	catalog, _ := badges.Catalog()
	imported, err := Import(out, catalog, nil)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if imported.Ledger.XP() != ledger.XP() {
		t.Errorf("xp = %d, want %d", imported.Ledger.XP(), ledger.XP())
	}
	if imported.Ledger.Level() != ledger.Level() {
		t.Errorf("level = %d, want %d", imported.Ledger.Level(), ledger.Level())
	}
	if imported.Ledger.StreakDays() != ledger.StreakDays() {
		t.Errorf("streak = %d, want %d", imported.Ledger.StreakDays(), ledger.StreakDays())
	}
	got := imported.Ledger.CompletedModules()
	want := ledger.CompletedModules()
	if len(got) != len(want) || got[0] != want[0] {
		t.Errorf("modules = %v, want %v", got, want)
	}
	if imported.Badges.UnlockedCount() != svc.UnlockedCount() {
		t.Errorf("badges = %d, want %d", imported.Badges.UnlockedCount(), svc.UnlockedCount())
	}

	// Exporting the imported state reproduces the same ledger and badges.
	again, err := Export(imported.Ledger, imported.Badges, time.Now())
	if err != nil {
		t.Fatalf("re-export: %v", err)
	}
	var a, b Envelope
	json.Unmarshal(out, &a)
	json.Unmarshal(again, &b)
	aj, _ := json.Marshal(a.ProgressionLedger)
	bj, _ := json.Marshal(b.ProgressionLedger)
	if string(aj) != string(bj) {
		t.Errorf("re-exported ledger differs:\n%s\n%s", aj, bj)
	}
}

func TestImportRejectsMalformed(t *testing.T) {
	catalog, _ := badges.Catalog()

	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{nope"},
		{"empty object", "{}"},
		{"missing ledger", `{"version":"1.0.0","exportedAt":"2026-03-01T09:00:00Z","badges":{"unlocked":[]}}`},
		{"negative xp", `{"version":"1.0.0","exportedAt":"2026-03-01T09:00:00Z","progressionLedger":{"xp":-5,"level":1,"streak_days":0},"badges":{"unlocked":[]}}`},
		{"xp wrong type", `{"version":"1.0.0","exportedAt":"2026-03-01T09:00:00Z","progressionLedger":{"xp":"lots","level":1,"streak_days":0},"badges":{"unlocked":[]}}`},
		{"bad version", `{"version":"one","exportedAt":"2026-03-01T09:00:00Z","progressionLedger":{"xp":0,"level":1,"streak_days":0},"badges":{"unlocked":[]}}`},
		{"newer major", `{"version":"2.0.0","exportedAt":"2026-03-01T09:00:00Z","progressionLedger":{"xp":0,"level":1,"streak_days":0},"badges":{"unlocked":[]}}`},
		{"bad exportedAt", `{"version":"1.0.0","exportedAt":"yesterday","progressionLedger":{"xp":0,"level":1,"streak_days":0},"badges":{"unlocked":[]}}`},
		{"bad last_activity", `{"version":"1.0.0","exportedAt":"2026-03-01T09:00:00Z","progressionLedger":{"xp":0,"level":1,"streak_days":0,"last_activity":"never"},"badges":{"unlocked":[]}}`},
		{"bad unlocked_at", `{"version":"1.0.0","exportedAt":"2026-03-01T09:00:00Z","progressionLedger":{"xp":0,"level":1,"streak_days":0},"badges":{"unlocked":[{"badge_id":"first-steps","unlocked_at":"someday"}]}}`},
		{"unknown top-level field", `{"version":"1.0.0","exportedAt":"2026-03-01T09:00:00Z","progressionLedger":{"xp":0,"level":1,"streak_days":0},"badges":{"unlocked":[]},"extra":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Import([]byte(tt.raw), catalog, nil); err == nil {
				t.Error("expected import error")
			}
		})
	}
}

func TestImportDoesNotTouchPriorState(t *testing.T) {
	ledger, svc := seededState(t)
	xp := ledger.XP()
	unlocks := svc.UnlockedCount()

	catalog, _ := badges.Catalog()
	_, err := Import([]byte(`{"version":"2.0.0"}`), catalog, nil)
	if err == nil {
		t.Fatal("expected import error")
	}

	// The failed import built nothing and the caller's state is whatever
	// it was before.
	if ledger.XP() != xp || svc.UnlockedCount() != unlocks {
		t.Error("failed import mutated existing state")
	}
}

func TestImportOlderMinorAccepted(t *testing.T) {
	catalog, _ := badges.Catalog()
	raw := `{"version":"0.9.0","exportedAt":"2026-03-01T09:00:00Z","progressionLedger":{"xp":50,"level":1,"streak_days":2},"badges":{"unlocked":[]}}`

	imported, err := Import([]byte(raw), catalog, nil)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported.Ledger.XP() != 50 || imported.Ledger.StreakDays() != 2 {
		t.Errorf("imported ledger = xp %d streak %d, want 50 2", imported.Ledger.XP(), imported.Ledger.StreakDays())
	}
}
