package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// QuestionResultJSON is the per-question detail stored on a quiz event.
type QuestionResultJSON struct {
	QuestionID    string   `json:"question_id"`
	IsCorrect     bool     `json:"is_correct"`
	UserAnswer    string   `json:"user_answer,omitempty"`
	UserAnswerSet []string `json:"user_answer_set,omitempty"`
	PointsAwarded int      `json:"points_awarded"`
}

// QuizEvent records one finalized quiz attempt.
type QuizEvent struct {
	ent.Schema
}

func (QuizEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (QuizEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("quiz_id").NotEmpty(),
		field.String("attempt_id").NotEmpty(),
		field.Float("score"),
		field.Int("correct_count"),
		field.Int("total_questions"),
		field.Int("total_points"),
		field.Int("max_points"),
		field.Bool("passed"),
		field.Int("time_spent_secs"),
		field.JSON("question_results", []QuestionResultJSON{}).Optional(),
	}
}

func (QuizEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("quiz_id"),
		index.Fields("attempt_id"),
		index.Fields("passed"),
	}
}
