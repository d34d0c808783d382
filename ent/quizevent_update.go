// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/dialect/sql/sqljson"
	"entgo.io/ent/schema/field"
	"github.com/finlitapp/finlit/ent/predicate"
	"github.com/finlitapp/finlit/ent/quizevent"
	"github.com/finlitapp/finlit/ent/schema"
)

// QuizEventUpdate is the builder for updating QuizEvent entities.
type QuizEventUpdate struct {
	config
	hooks    []Hook
	mutation *QuizEventMutation
}

// Where appends a list predicates to the QuizEventUpdate builder.
func (_u *QuizEventUpdate) Where(ps ...predicate.QuizEvent) *QuizEventUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetQuizID sets the "quiz_id" field.
func (_u *QuizEventUpdate) SetQuizID(v string) *QuizEventUpdate {
	_u.mutation.SetQuizID(v)
	return _u
}

// SetNillableQuizID sets the "quiz_id" field if the given value is not nil.
func (_u *QuizEventUpdate) SetNillableQuizID(v *string) *QuizEventUpdate {
	if v != nil {
		_u.SetQuizID(*v)
	}
	return _u
}

// SetAttemptID sets the "attempt_id" field.
func (_u *QuizEventUpdate) SetAttemptID(v string) *QuizEventUpdate {
	_u.mutation.SetAttemptID(v)
	return _u
}

// SetNillableAttemptID sets the "attempt_id" field if the given value is not nil.
func (_u *QuizEventUpdate) SetNillableAttemptID(v *string) *QuizEventUpdate {
	if v != nil {
		_u.SetAttemptID(*v)
	}
	return _u
}

// SetScore sets the "score" field.
func (_u *QuizEventUpdate) SetScore(v float64) *QuizEventUpdate {
	_u.mutation.ResetScore()
	_u.mutation.SetScore(v)
	return _u
}

// SetNillableScore sets the "score" field if the given value is not nil.
func (_u *QuizEventUpdate) SetNillableScore(v *float64) *QuizEventUpdate {
	if v != nil {
		_u.SetScore(*v)
	}
	return _u
}

// AddScore adds value to the "score" field.
func (_u *QuizEventUpdate) AddScore(v float64) *QuizEventUpdate {
	_u.mutation.AddScore(v)
	return _u
}

// SetCorrectCount sets the "correct_count" field.
func (_u *QuizEventUpdate) SetCorrectCount(v int) *QuizEventUpdate {
	_u.mutation.ResetCorrectCount()
	_u.mutation.SetCorrectCount(v)
	return _u
}

// SetNillableCorrectCount sets the "correct_count" field if the given value is not nil.
func (_u *QuizEventUpdate) SetNillableCorrectCount(v *int) *QuizEventUpdate {
	if v != nil {
		_u.SetCorrectCount(*v)
	}
	return _u
}

// AddCorrectCount adds value to the "correct_count" field.
func (_u *QuizEventUpdate) AddCorrectCount(v int) *QuizEventUpdate {
	_u.mutation.AddCorrectCount(v)
	return _u
}

// SetTotalQuestions sets the "total_questions" field.
func (_u *QuizEventUpdate) SetTotalQuestions(v int) *QuizEventUpdate {
	_u.mutation.ResetTotalQuestions()
	_u.mutation.SetTotalQuestions(v)
	return _u
}

// SetNillableTotalQuestions sets the "total_questions" field if the given value is not nil.
func (_u *QuizEventUpdate) SetNillableTotalQuestions(v *int) *QuizEventUpdate {
	if v != nil {
		_u.SetTotalQuestions(*v)
	}
	return _u
}

// AddTotalQuestions adds value to the "total_questions" field.
func (_u *QuizEventUpdate) AddTotalQuestions(v int) *QuizEventUpdate {
	_u.mutation.AddTotalQuestions(v)
	return _u
}

// SetTotalPoints sets the "total_points" field.
func (_u *QuizEventUpdate) SetTotalPoints(v int) *QuizEventUpdate {
	_u.mutation.ResetTotalPoints()
	_u.mutation.SetTotalPoints(v)
	return _u
}

// SetNillableTotalPoints sets the "total_points" field if the given value is not nil.
func (_u *QuizEventUpdate) SetNillableTotalPoints(v *int) *QuizEventUpdate {
	if v != nil {
		_u.SetTotalPoints(*v)
	}
	return _u
}

// AddTotalPoints adds value to the "total_points" field.
func (_u *QuizEventUpdate) AddTotalPoints(v int) *QuizEventUpdate {
	_u.mutation.AddTotalPoints(v)
	return _u
}

// SetMaxPoints sets the "max_points" field.
func (_u *QuizEventUpdate) SetMaxPoints(v int) *QuizEventUpdate {
	_u.mutation.ResetMaxPoints()
	_u.mutation.SetMaxPoints(v)
	return _u
}

// SetNillableMaxPoints sets the "max_points" field if the given value is not nil.
func (_u *QuizEventUpdate) SetNillableMaxPoints(v *int) *QuizEventUpdate {
	if v != nil {
		_u.SetMaxPoints(*v)
	}
	return _u
}

// AddMaxPoints adds value to the "max_points" field.
func (_u *QuizEventUpdate) AddMaxPoints(v int) *QuizEventUpdate {
	_u.mutation.AddMaxPoints(v)
	return _u
}

// SetPassed sets the "passed" field.
func (_u *QuizEventUpdate) SetPassed(v bool) *QuizEventUpdate {
	_u.mutation.SetPassed(v)
	return _u
}

// SetNillablePassed sets the "passed" field if the given value is not nil.
func (_u *QuizEventUpdate) SetNillablePassed(v *bool) *QuizEventUpdate {
	if v != nil {
		_u.SetPassed(*v)
	}
	return _u
}

// SetTimeSpentSecs sets the "time_spent_secs" field.
func (_u *QuizEventUpdate) SetTimeSpentSecs(v int) *QuizEventUpdate {
	_u.mutation.ResetTimeSpentSecs()
	_u.mutation.SetTimeSpentSecs(v)
	return _u
}

// SetNillableTimeSpentSecs sets the "time_spent_secs" field if the given value is not nil.
func (_u *QuizEventUpdate) SetNillableTimeSpentSecs(v *int) *QuizEventUpdate {
	if v != nil {
		_u.SetTimeSpentSecs(*v)
	}
	return _u
}

// AddTimeSpentSecs adds value to the "time_spent_secs" field.
func (_u *QuizEventUpdate) AddTimeSpentSecs(v int) *QuizEventUpdate {
	_u.mutation.AddTimeSpentSecs(v)
	return _u
}

// SetQuestionResults sets the "question_results" field.
func (_u *QuizEventUpdate) SetQuestionResults(v []schema.QuestionResultJSON) *QuizEventUpdate {
	_u.mutation.SetQuestionResults(v)
	return _u
}

// AppendQuestionResults appends value to the "question_results" field.
func (_u *QuizEventUpdate) AppendQuestionResults(v []schema.QuestionResultJSON) *QuizEventUpdate {
	_u.mutation.AppendQuestionResults(v)
	return _u
}

// ClearQuestionResults clears the value of the "question_results" field.
func (_u *QuizEventUpdate) ClearQuestionResults() *QuizEventUpdate {
	_u.mutation.ClearQuestionResults()
	return _u
}

// Mutation returns the QuizEventMutation object of the builder.
func (_u *QuizEventUpdate) Mutation() *QuizEventMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *QuizEventUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *QuizEventUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *QuizEventUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *QuizEventUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *QuizEventUpdate) check() error {
	if v, ok := _u.mutation.QuizID(); ok {
		if err := quizevent.QuizIDValidator(v); err != nil {
			return &ValidationError{Name: "quiz_id", err: fmt.Errorf(`ent: validator failed for field "QuizEvent.quiz_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.AttemptID(); ok {
		if err := quizevent.AttemptIDValidator(v); err != nil {
			return &ValidationError{Name: "attempt_id", err: fmt.Errorf(`ent: validator failed for field "QuizEvent.attempt_id": %w`, err)}
		}
	}
	return nil
}

func (_u *QuizEventUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(quizevent.Table, quizevent.Columns, sqlgraph.NewFieldSpec(quizevent.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.QuizID(); ok {
		_spec.SetField(quizevent.FieldQuizID, field.TypeString, value)
	}
	if value, ok := _u.mutation.AttemptID(); ok {
		_spec.SetField(quizevent.FieldAttemptID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Score(); ok {
		_spec.SetField(quizevent.FieldScore, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedScore(); ok {
		_spec.AddField(quizevent.FieldScore, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.CorrectCount(); ok {
		_spec.SetField(quizevent.FieldCorrectCount, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedCorrectCount(); ok {
		_spec.AddField(quizevent.FieldCorrectCount, field.TypeInt, value)
	}
	if value, ok := _u.mutation.TotalQuestions(); ok {
		_spec.SetField(quizevent.FieldTotalQuestions, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedTotalQuestions(); ok {
		_spec.AddField(quizevent.FieldTotalQuestions, field.TypeInt, value)
	}
	if value, ok := _u.mutation.TotalPoints(); ok {
		_spec.SetField(quizevent.FieldTotalPoints, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedTotalPoints(); ok {
		_spec.AddField(quizevent.FieldTotalPoints, field.TypeInt, value)
	}
	if value, ok := _u.mutation.MaxPoints(); ok {
		_spec.SetField(quizevent.FieldMaxPoints, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedMaxPoints(); ok {
		_spec.AddField(quizevent.FieldMaxPoints, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Passed(); ok {
		_spec.SetField(quizevent.FieldPassed, field.TypeBool, value)
	}
	if value, ok := _u.mutation.TimeSpentSecs(); ok {
		_spec.SetField(quizevent.FieldTimeSpentSecs, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedTimeSpentSecs(); ok {
		_spec.AddField(quizevent.FieldTimeSpentSecs, field.TypeInt, value)
	}
	if value, ok := _u.mutation.QuestionResults(); ok {
		_spec.SetField(quizevent.FieldQuestionResults, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedQuestionResults(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, quizevent.FieldQuestionResults, value)
		})
	}
	if _u.mutation.QuestionResultsCleared() {
		_spec.ClearField(quizevent.FieldQuestionResults, field.TypeJSON)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{quizevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// QuizEventUpdateOne is the builder for updating a single QuizEvent entity.
type QuizEventUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *QuizEventMutation
}

// SetQuizID sets the "quiz_id" field.
func (_u *QuizEventUpdateOne) SetQuizID(v string) *QuizEventUpdateOne {
	_u.mutation.SetQuizID(v)
	return _u
}

// SetNillableQuizID sets the "quiz_id" field if the given value is not nil.
func (_u *QuizEventUpdateOne) SetNillableQuizID(v *string) *QuizEventUpdateOne {
	if v != nil {
		_u.SetQuizID(*v)
	}
	return _u
}

// SetAttemptID sets the "attempt_id" field.
func (_u *QuizEventUpdateOne) SetAttemptID(v string) *QuizEventUpdateOne {
	_u.mutation.SetAttemptID(v)
	return _u
}

// SetNillableAttemptID sets the "attempt_id" field if the given value is not nil.
func (_u *QuizEventUpdateOne) SetNillableAttemptID(v *string) *QuizEventUpdateOne {
	if v != nil {
		_u.SetAttemptID(*v)
	}
	return _u
}

// SetScore sets the "score" field.
func (_u *QuizEventUpdateOne) SetScore(v float64) *QuizEventUpdateOne {
	_u.mutation.ResetScore()
	_u.mutation.SetScore(v)
	return _u
}

// SetNillableScore sets the "score" field if the given value is not nil.
func (_u *QuizEventUpdateOne) SetNillableScore(v *float64) *QuizEventUpdateOne {
	if v != nil {
		_u.SetScore(*v)
	}
	return _u
}

// AddScore adds value to the "score" field.
func (_u *QuizEventUpdateOne) AddScore(v float64) *QuizEventUpdateOne {
	_u.mutation.AddScore(v)
	return _u
}

// SetCorrectCount sets the "correct_count" field.
func (_u *QuizEventUpdateOne) SetCorrectCount(v int) *QuizEventUpdateOne {
	_u.mutation.ResetCorrectCount()
	_u.mutation.SetCorrectCount(v)
	return _u
}

// SetNillableCorrectCount sets the "correct_count" field if the given value is not nil.
func (_u *QuizEventUpdateOne) SetNillableCorrectCount(v *int) *QuizEventUpdateOne {
	if v != nil {
		_u.SetCorrectCount(*v)
	}
	return _u
}

// AddCorrectCount adds value to the "correct_count" field.
func (_u *QuizEventUpdateOne) AddCorrectCount(v int) *QuizEventUpdateOne {
	_u.mutation.AddCorrectCount(v)
	return _u
}

// SetTotalQuestions sets the "total_questions" field.
func (_u *QuizEventUpdateOne) SetTotalQuestions(v int) *QuizEventUpdateOne {
	_u.mutation.ResetTotalQuestions()
	_u.mutation.SetTotalQuestions(v)
	return _u
}

// SetNillableTotalQuestions sets the "total_questions" field if the given value is not nil.
func (_u *QuizEventUpdateOne) SetNillableTotalQuestions(v *int) *QuizEventUpdateOne {
	if v != nil {
		_u.SetTotalQuestions(*v)
	}
	return _u
}

// AddTotalQuestions adds value to the "total_questions" field.
func (_u *QuizEventUpdateOne) AddTotalQuestions(v int) *QuizEventUpdateOne {
	_u.mutation.AddTotalQuestions(v)
	return _u
}

// SetTotalPoints sets the "total_points" field.
func (_u *QuizEventUpdateOne) SetTotalPoints(v int) *QuizEventUpdateOne {
	_u.mutation.ResetTotalPoints()
	_u.mutation.SetTotalPoints(v)
	return _u
}

// SetNillableTotalPoints sets the "total_points" field if the given value is not nil.
func (_u *QuizEventUpdateOne) SetNillableTotalPoints(v *int) *QuizEventUpdateOne {
	if v != nil {
		_u.SetTotalPoints(*v)
	}
	return _u
}

// AddTotalPoints adds value to the "total_points" field.
func (_u *QuizEventUpdateOne) AddTotalPoints(v int) *QuizEventUpdateOne {
	_u.mutation.AddTotalPoints(v)
	return _u
}

// SetMaxPoints sets the "max_points" field.
func (_u *QuizEventUpdateOne) SetMaxPoints(v int) *QuizEventUpdateOne {
	_u.mutation.ResetMaxPoints()
	_u.mutation.SetMaxPoints(v)
	return _u
}

// SetNillableMaxPoints sets the "max_points" field if the given value is not nil.
func (_u *QuizEventUpdateOne) SetNillableMaxPoints(v *int) *QuizEventUpdateOne {
	if v != nil {
		_u.SetMaxPoints(*v)
	}
	return _u
}

// AddMaxPoints adds value to the "max_points" field.
func (_u *QuizEventUpdateOne) AddMaxPoints(v int) *QuizEventUpdateOne {
	_u.mutation.AddMaxPoints(v)
	return _u
}

// SetPassed sets the "passed" field.
func (_u *QuizEventUpdateOne) SetPassed(v bool) *QuizEventUpdateOne {
	_u.mutation.SetPassed(v)
	return _u
}

// SetNillablePassed sets the "passed" field if the given value is not nil.
func (_u *QuizEventUpdateOne) SetNillablePassed(v *bool) *QuizEventUpdateOne {
	if v != nil {
		_u.SetPassed(*v)
	}
	return _u
}

// SetTimeSpentSecs sets the "time_spent_secs" field.
func (_u *QuizEventUpdateOne) SetTimeSpentSecs(v int) *QuizEventUpdateOne {
	_u.mutation.ResetTimeSpentSecs()
	_u.mutation.SetTimeSpentSecs(v)
	return _u
}

// SetNillableTimeSpentSecs sets the "time_spent_secs" field if the given value is not nil.
func (_u *QuizEventUpdateOne) SetNillableTimeSpentSecs(v *int) *QuizEventUpdateOne {
	if v != nil {
		_u.SetTimeSpentSecs(*v)
	}
	return _u
}

// AddTimeSpentSecs adds value to the "time_spent_secs" field.
func (_u *QuizEventUpdateOne) AddTimeSpentSecs(v int) *QuizEventUpdateOne {
	_u.mutation.AddTimeSpentSecs(v)
	return _u
}

// SetQuestionResults sets the "question_results" field.
func (_u *QuizEventUpdateOne) SetQuestionResults(v []schema.QuestionResultJSON) *QuizEventUpdateOne {
	_u.mutation.SetQuestionResults(v)
	return _u
}

// AppendQuestionResults appends value to the "question_results" field.
func (_u *QuizEventUpdateOne) AppendQuestionResults(v []schema.QuestionResultJSON) *QuizEventUpdateOne {
	_u.mutation.AppendQuestionResults(v)
	return _u
}

// ClearQuestionResults clears the value of the "question_results" field.
func (_u *QuizEventUpdateOne) ClearQuestionResults() *QuizEventUpdateOne {
	_u.mutation.ClearQuestionResults()
	return _u
}

// Mutation returns the QuizEventMutation object of the builder.
func (_u *QuizEventUpdateOne) Mutation() *QuizEventMutation {
	return _u.mutation
}

// Where appends a list predicates to the QuizEventUpdate builder.
func (_u *QuizEventUpdateOne) Where(ps ...predicate.QuizEvent) *QuizEventUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *QuizEventUpdateOne) Select(field string, fields ...string) *QuizEventUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated QuizEvent entity.
func (_u *QuizEventUpdateOne) Save(ctx context.Context) (*QuizEvent, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *QuizEventUpdateOne) SaveX(ctx context.Context) *QuizEvent {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *QuizEventUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *QuizEventUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *QuizEventUpdateOne) check() error {
	if v, ok := _u.mutation.QuizID(); ok {
		if err := quizevent.QuizIDValidator(v); err != nil {
			return &ValidationError{Name: "quiz_id", err: fmt.Errorf(`ent: validator failed for field "QuizEvent.quiz_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.AttemptID(); ok {
		if err := quizevent.AttemptIDValidator(v); err != nil {
			return &ValidationError{Name: "attempt_id", err: fmt.Errorf(`ent: validator failed for field "QuizEvent.attempt_id": %w`, err)}
		}
	}
	return nil
}

func (_u *QuizEventUpdateOne) sqlSave(ctx context.Context) (_node *QuizEvent, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(quizevent.Table, quizevent.Columns, sqlgraph.NewFieldSpec(quizevent.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "QuizEvent.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, quizevent.FieldID)
		for _, f := range fields {
			if !quizevent.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != quizevent.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.QuizID(); ok {
		_spec.SetField(quizevent.FieldQuizID, field.TypeString, value)
	}
	if value, ok := _u.mutation.AttemptID(); ok {
		_spec.SetField(quizevent.FieldAttemptID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Score(); ok {
		_spec.SetField(quizevent.FieldScore, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedScore(); ok {
		_spec.AddField(quizevent.FieldScore, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.CorrectCount(); ok {
		_spec.SetField(quizevent.FieldCorrectCount, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedCorrectCount(); ok {
		_spec.AddField(quizevent.FieldCorrectCount, field.TypeInt, value)
	}
	if value, ok := _u.mutation.TotalQuestions(); ok {
		_spec.SetField(quizevent.FieldTotalQuestions, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedTotalQuestions(); ok {
		_spec.AddField(quizevent.FieldTotalQuestions, field.TypeInt, value)
	}
	if value, ok := _u.mutation.TotalPoints(); ok {
		_spec.SetField(quizevent.FieldTotalPoints, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedTotalPoints(); ok {
		_spec.AddField(quizevent.FieldTotalPoints, field.TypeInt, value)
	}
	if value, ok := _u.mutation.MaxPoints(); ok {
		_spec.SetField(quizevent.FieldMaxPoints, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedMaxPoints(); ok {
		_spec.AddField(quizevent.FieldMaxPoints, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Passed(); ok {
		_spec.SetField(quizevent.FieldPassed, field.TypeBool, value)
	}
	if value, ok := _u.mutation.TimeSpentSecs(); ok {
		_spec.SetField(quizevent.FieldTimeSpentSecs, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedTimeSpentSecs(); ok {
		_spec.AddField(quizevent.FieldTimeSpentSecs, field.TypeInt, value)
	}
	if value, ok := _u.mutation.QuestionResults(); ok {
		_spec.SetField(quizevent.FieldQuestionResults, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedQuestionResults(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, quizevent.FieldQuestionResults, value)
		})
	}
	if _u.mutation.QuestionResultsCleared() {
		_spec.ClearField(quizevent.FieldQuestionResults, field.TypeJSON)
	}
	_node = &QuizEvent{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{quizevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
