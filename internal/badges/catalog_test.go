package badges

import "testing"

func TestCatalogLoads(t *testing.T) {
	catalog, err := Catalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if len(catalog) == 0 {
		t.Fatal("expected a non-empty catalog")
	}

	types := make(map[ConditionType]bool)
	for _, b := range catalog {
		types[b.Condition.Type] = true
	}
	for _, ct := range []ConditionType{ConditionModulesCompleted, ConditionXPEarned, ConditionStreakDays} {
		if !types[ct] {
			t.Errorf("catalog has no badge with condition type %s", ct)
		}
	}
}

func TestParseCatalogRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", "badges:\n  - name: X\n    rarity: common\n    condition: {type: xp_earned, target: 1}\n"},
		{"unknown rarity", "badges:\n  - id: x\n    name: X\n    rarity: mythic\n    condition: {type: xp_earned, target: 1}\n"},
		{"unknown condition", "badges:\n  - id: x\n    name: X\n    rarity: common\n    condition: {type: quizzes_won, target: 1}\n"},
		{"zero target", "badges:\n  - id: x\n    name: X\n    rarity: common\n    condition: {type: xp_earned, target: 0}\n"},
		{"duplicate id", "badges:\n  - id: x\n    name: X\n    rarity: common\n    condition: {type: xp_earned, target: 1}\n  - id: x\n    name: Y\n    rarity: rare\n    condition: {type: xp_earned, target: 2}\n"},
		{"not yaml", "badges: [}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseCatalog([]byte(tt.yaml)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestRarityDisplay(t *testing.T) {
	if got := RarityEpic.DisplayName(); got != "Epic" {
		t.Errorf("display name = %q, want Epic", got)
	}
	if got := Rarity("odd").DisplayName(); got != "odd" {
		t.Errorf("unknown rarity display = %q, want passthrough", got)
	}
	if len(AllRarities()) != 4 {
		t.Errorf("rarities = %d, want 4", len(AllRarities()))
	}
}
