package content

// QuestionType identifies how a question is presented and evaluated.
type QuestionType string

const (
	TypeSingleChoice QuestionType = "single_choice"
	TypeMultiSelect  QuestionType = "multi_select"
	TypeBoolean      QuestionType = "boolean"
	TypeNumeric      QuestionType = "numeric"
	TypeFreeText     QuestionType = "free_text"
)

// AllQuestionTypes returns all question types in display order.
func AllQuestionTypes() []QuestionType {
	return []QuestionType{TypeSingleChoice, TypeMultiSelect, TypeBoolean, TypeNumeric, TypeFreeText}
}

// DisplayName returns a human-readable label for the question type.
func (t QuestionType) DisplayName() string {
	switch t {
	case TypeSingleChoice:
		return "Single Choice"
	case TypeMultiSelect:
		return "Multi Select"
	case TypeBoolean:
		return "True / False"
	case TypeNumeric:
		return "Numeric"
	case TypeFreeText:
		return "Free Text"
	default:
		return string(t)
	}
}

// Option is one selectable answer for a choice-style question.
type Option struct {
	Value       string `yaml:"value" json:"value"`
	Text        string `yaml:"text" json:"text"`
	Explanation string `yaml:"explanation,omitempty" json:"explanation,omitempty"`
}

// DefaultTolerance is the numeric deviation accepted when a question
// does not declare its own tolerance.
const DefaultTolerance = 0.01

// DefaultPoints is awarded per question when the author omits points.
const DefaultPoints = 10

// Question is one assessable item inside a quiz.
//
// The correct answer is type-dependent: Answer holds the scalar form
// (single_choice option value, "true"/"false", a numeric literal, or the
// model free-text answer); AnswerSet holds the multi_select set. Exactly
// one of the two is populated, enforced by Validate.
type Question struct {
	ID         string       `yaml:"id" json:"id"`
	Type       QuestionType `yaml:"type" json:"type"`
	Prompt     string       `yaml:"prompt" json:"prompt"`
	Options    []Option     `yaml:"options,omitempty" json:"options,omitempty"`
	Answer     string       `yaml:"answer,omitempty" json:"answer,omitempty"`
	AnswerSet  []string     `yaml:"answer_set,omitempty" json:"answerSet,omitempty"`
	Tolerance  float64      `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
	Points     int          `yaml:"points,omitempty" json:"points,omitempty"`
	Difficulty int          `yaml:"difficulty,omitempty" json:"difficulty,omitempty"`
}

// EffectiveTolerance returns the declared tolerance or the default.
func (q *Question) EffectiveTolerance() float64 {
	if q.Tolerance > 0 {
		return q.Tolerance
	}
	return DefaultTolerance
}

// EffectivePoints returns the declared points or the default.
func (q *Question) EffectivePoints() int {
	if q.Points > 0 {
		return q.Points
	}
	return DefaultPoints
}

// Quiz is an ordered list of questions plus the attempt policy.
// Quizzes are authored in YAML packs and read-only at runtime.
type Quiz struct {
	ID               string     `yaml:"id" json:"id"`
	Title            string     `yaml:"title" json:"title"`
	Topic            string     `yaml:"topic,omitempty" json:"topic,omitempty"`
	PassingScore     float64    `yaml:"passing_score" json:"passingScore"`
	TimeLimitMinutes int        `yaml:"time_limit_minutes,omitempty" json:"timeLimitMinutes,omitempty"`
	MaxAttempts      int        `yaml:"max_attempts,omitempty" json:"maxAttempts,omitempty"`
	AllowReview      bool       `yaml:"allow_review" json:"allowReview"`
	XPReward         int        `yaml:"xp_reward,omitempty" json:"xpReward,omitempty"`
	Questions        []Question `yaml:"questions" json:"questions"`
}

// MaxPoints returns the total points available across all questions.
func (z *Quiz) MaxPoints() int {
	total := 0
	for i := range z.Questions {
		total += z.Questions[i].EffectivePoints()
	}
	return total
}

// Question returns the question with the given ID, or nil.
func (z *Quiz) Question(id string) *Question {
	for i := range z.Questions {
		if z.Questions[i].ID == id {
			return &z.Questions[i]
		}
	}
	return nil
}
