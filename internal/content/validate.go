package content

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate checks the structural invariants of a quiz: passing score range,
// unique question IDs, and per-question answer shape. Quizzes that fail
// validation are rejected at load time so the engine never sees them.
func (z *Quiz) Validate() error {
	if z.ID == "" {
		return fmt.Errorf("quiz has no id")
	}
	if z.PassingScore < 0 || z.PassingScore > 100 {
		return fmt.Errorf("quiz %s: passing_score %.1f outside [0,100]", z.ID, z.PassingScore)
	}
	if z.TimeLimitMinutes < 0 {
		return fmt.Errorf("quiz %s: negative time limit", z.ID)
	}
	if len(z.Questions) == 0 {
		return fmt.Errorf("quiz %s: no questions", z.ID)
	}

	seen := make(map[string]bool, len(z.Questions))
	for i := range z.Questions {
		q := &z.Questions[i]
		if seen[q.ID] {
			return fmt.Errorf("quiz %s: duplicate question id %q", z.ID, q.ID)
		}
		seen[q.ID] = true
		if err := q.Validate(); err != nil {
			return fmt.Errorf("quiz %s: %w", z.ID, err)
		}
	}
	return nil
}

// Validate checks that the question's correct answer matches its declared
// type: a scalar for single_choice/boolean/numeric/free_text, a set for
// multi_select, and that choice answers actually appear among the options.
func (q *Question) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("question has no id")
	}
	if q.Prompt == "" {
		return fmt.Errorf("question %s: empty prompt", q.ID)
	}
	if q.Points < 0 {
		return fmt.Errorf("question %s: negative points", q.ID)
	}
	if q.Tolerance < 0 {
		return fmt.Errorf("question %s: negative tolerance", q.ID)
	}

	switch q.Type {
	case TypeSingleChoice:
		if q.Answer == "" || len(q.AnswerSet) > 0 {
			return fmt.Errorf("question %s: single_choice requires a scalar answer", q.ID)
		}
		if err := q.validateOptions(2); err != nil {
			return err
		}
		if !q.hasOption(q.Answer) {
			return fmt.Errorf("question %s: answer %q not found in options", q.ID, q.Answer)
		}

	case TypeMultiSelect:
		if len(q.AnswerSet) == 0 || q.Answer != "" {
			return fmt.Errorf("question %s: multi_select requires an answer set", q.ID)
		}
		if err := q.validateOptions(2); err != nil {
			return err
		}
		seen := make(map[string]bool, len(q.AnswerSet))
		for _, v := range q.AnswerSet {
			if seen[v] {
				return fmt.Errorf("question %s: duplicate value %q in answer set", q.ID, v)
			}
			seen[v] = true
			if !q.hasOption(v) {
				return fmt.Errorf("question %s: answer value %q not found in options", q.ID, v)
			}
		}

	case TypeBoolean:
		if q.Answer != "true" && q.Answer != "false" {
			return fmt.Errorf("question %s: boolean answer must be \"true\" or \"false\", got %q", q.ID, q.Answer)
		}
		if len(q.AnswerSet) > 0 {
			return fmt.Errorf("question %s: boolean requires a scalar answer", q.ID)
		}

	case TypeNumeric:
		if len(q.AnswerSet) > 0 {
			return fmt.Errorf("question %s: numeric requires a scalar answer", q.ID)
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(q.Answer), 64); err != nil {
			return fmt.Errorf("question %s: answer %q is not numeric", q.ID, q.Answer)
		}

	case TypeFreeText:
		if strings.TrimSpace(q.Answer) == "" || len(q.AnswerSet) > 0 {
			return fmt.Errorf("question %s: free_text requires a scalar answer", q.ID)
		}

	default:
		return fmt.Errorf("question %s: unknown type %q", q.ID, q.Type)
	}
	return nil
}

// validateOptions checks option count, non-empty distinct values.
func (q *Question) validateOptions(minCount int) error {
	if len(q.Options) < minCount {
		return fmt.Errorf("question %s: needs at least %d options, got %d", q.ID, minCount, len(q.Options))
	}
	seen := make(map[string]bool, len(q.Options))
	for i, o := range q.Options {
		if strings.TrimSpace(o.Value) == "" {
			return fmt.Errorf("question %s: option %d has empty value", q.ID, i+1)
		}
		if seen[o.Value] {
			return fmt.Errorf("question %s: duplicate option value %q", q.ID, o.Value)
		}
		seen[o.Value] = true
	}
	return nil
}

func (q *Question) hasOption(value string) bool {
	for _, o := range q.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}
