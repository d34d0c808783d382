package content

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefault(t *testing.T) {
	quizzes, err := LoadDefault()
	if err != nil {
		t.Fatalf("load default packs: %v", err)
	}
	if len(quizzes) == 0 {
		t.Fatal("expected embedded quizzes")
	}

	// Every embedded quiz must be valid and findable by question ID.
	for _, z := range quizzes {
		if err := z.Validate(); err != nil {
			t.Errorf("embedded quiz %s invalid: %v", z.ID, err)
		}
		for _, q := range z.Questions {
			if z.Question(q.ID) == nil {
				t.Errorf("quiz %s: Question(%q) = nil", z.ID, q.ID)
			}
		}
	}

	// The default packs cover every question type.
	covered := make(map[QuestionType]bool)
	for _, z := range quizzes {
		for _, q := range z.Questions {
			covered[q.Type] = true
		}
	}
	for _, qt := range AllQuestionTypes() {
		if !covered[qt] {
			t.Errorf("no embedded question of type %s", qt)
		}
	}
}

func TestLoadDirMissingIsNotError(t *testing.T) {
	quizzes, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing dir: %v", err)
	}
	if quizzes != nil {
		t.Errorf("quizzes = %v, want nil", quizzes)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	pack := `
quizzes:
  - id: custom-1
    title: Custom
    passing_score: 50
    allow_review: true
    questions:
      - id: c1
        type: boolean
        prompt: Water is wet.
        answer: "true"
`
	if err := os.WriteFile(filepath.Join(dir, "custom.yaml"), []byte(pack), 0o644); err != nil {
		t.Fatal(err)
	}
	// Non-yaml files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	quizzes, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if len(quizzes) != 1 {
		t.Fatalf("loaded %d quizzes, want 1", len(quizzes))
	}
	if quizzes[0].ID != "custom-1" {
		t.Errorf("quiz id = %q, want custom-1", quizzes[0].ID)
	}
}

func TestLoadDirRejectsInvalidQuiz(t *testing.T) {
	dir := t.TempDir()
	pack := `
quizzes:
  - id: broken
    title: Broken
    passing_score: 150
    questions:
      - id: c1
        type: boolean
        prompt: p
        answer: "true"
`
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte(pack), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDir(dir); err == nil {
		t.Fatal("expected validation error")
	}
}
