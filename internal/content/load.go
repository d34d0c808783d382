package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed packs/*.yaml
var defaultPacks embed.FS

// pack is the top-level shape of a quiz pack file.
type pack struct {
	Quizzes []Quiz `yaml:"quizzes"`
}

// LoadDefault loads the embedded quiz packs shipped with the binary.
func LoadDefault() ([]Quiz, error) {
	var quizzes []Quiz
	entries, err := fs.ReadDir(defaultPacks, "packs")
	if err != nil {
		return nil, fmt.Errorf("read embedded packs: %w", err)
	}
	for _, e := range entries {
		data, err := defaultPacks.ReadFile("packs/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read pack %s: %w", e.Name(), err)
		}
		qs, err := parsePack(data)
		if err != nil {
			return nil, fmt.Errorf("pack %s: %w", e.Name(), err)
		}
		quizzes = append(quizzes, qs...)
	}
	sortQuizzes(quizzes)
	return quizzes, nil
}

// LoadDir loads quiz packs from *.yaml files in dir, in addition to
// whatever the caller already has. A missing dir is not an error.
func LoadDir(dir string) ([]Quiz, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read content dir: %w", err)
	}

	var quizzes []Quiz
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read pack %s: %w", e.Name(), err)
		}
		qs, err := parsePack(data)
		if err != nil {
			return nil, fmt.Errorf("pack %s: %w", e.Name(), err)
		}
		quizzes = append(quizzes, qs...)
	}
	sortQuizzes(quizzes)
	return quizzes, nil
}

// parsePack unmarshals and validates one pack file.
func parsePack(data []byte) ([]Quiz, error) {
	var p pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	for i := range p.Quizzes {
		if err := p.Quizzes[i].Validate(); err != nil {
			return nil, err
		}
	}
	return p.Quizzes, nil
}

func sortQuizzes(quizzes []Quiz) {
	sort.Slice(quizzes, func(i, j int) bool {
		if quizzes[i].Topic != quizzes[j].Topic {
			return quizzes[i].Topic < quizzes[j].Topic
		}
		return quizzes[i].Title < quizzes[j].Title
	})
}
