package store

import (
	"context"
	"fmt"

	"github.com/finlitapp/finlit/ent"
	"github.com/finlitapp/finlit/ent/quizevent"
	entschema "github.com/finlitapp/finlit/ent/schema"
)

// eventRepo implements EventRepo backed by ent and the global sequence counter.
type eventRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *eventRepo) AppendQuizEvent(ctx context.Context, data QuizEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	var results []entschema.QuestionResultJSON
	for _, qr := range data.QuestionResults {
		results = append(results, entschema.QuestionResultJSON{
			QuestionID:    qr.QuestionID,
			IsCorrect:     qr.IsCorrect,
			UserAnswer:    qr.UserAnswer,
			UserAnswerSet: qr.UserAnswerSet,
			PointsAwarded: qr.PointsAwarded,
		})
	}

	builder := r.client.QuizEvent.Create().
		SetSequence(seqNum).
		SetQuizID(data.QuizID).
		SetAttemptID(data.AttemptID).
		SetScore(data.Score).
		SetCorrectCount(data.CorrectCount).
		SetTotalQuestions(data.TotalQuestions).
		SetTotalPoints(data.TotalPoints).
		SetMaxPoints(data.MaxPoints).
		SetPassed(data.Passed).
		SetTimeSpentSecs(data.TimeSpentSecs)

	if len(results) > 0 {
		builder = builder.SetQuestionResults(results)
	}

	_, err = builder.Save(ctx)
	if err != nil {
		return fmt.Errorf("save quiz event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryQuizEvents(ctx context.Context, opts QueryOpts) ([]QuizEventRecord, error) {
	query := r.client.QuizEvent.Query().
		Order(ent.Desc(quizevent.FieldSequence))

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.After > 0 {
		query = query.Where(quizevent.SequenceGT(opts.After))
	}
	if opts.Before > 0 {
		query = query.Where(quizevent.SequenceLT(opts.Before))
	}
	if !opts.From.IsZero() {
		query = query.Where(quizevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		query = query.Where(quizevent.TimestampLTE(opts.To))
	}

	events, err := query.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query quiz events: %w", err)
	}

	records := make([]QuizEventRecord, len(events))
	for i, e := range events {
		records[i] = quizEventToRecord(e)
	}
	return records, nil
}

func (r *eventRepo) LatestQuizEvent(ctx context.Context, quizID string) (*QuizEventRecord, error) {
	query := r.client.QuizEvent.Query().
		Order(ent.Desc(quizevent.FieldSequence))
	if quizID != "" {
		query = query.Where(quizevent.QuizID(quizID))
	}

	e, err := query.First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest quiz event: %w", err)
	}
	rec := quizEventToRecord(e)
	return &rec, nil
}

func (r *eventRepo) CountAttempts(ctx context.Context, quizID string) (int, error) {
	count, err := r.client.QuizEvent.Query().
		Where(quizevent.QuizID(quizID)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count attempts: %w", err)
	}
	return count, nil
}

func quizEventToRecord(e *ent.QuizEvent) QuizEventRecord {
	rec := QuizEventRecord{
		QuizEventData: QuizEventData{
			QuizID:         e.QuizID,
			AttemptID:      e.AttemptID,
			Score:          e.Score,
			CorrectCount:   e.CorrectCount,
			TotalQuestions: e.TotalQuestions,
			TotalPoints:    e.TotalPoints,
			MaxPoints:      e.MaxPoints,
			Passed:         e.Passed,
			TimeSpentSecs:  e.TimeSpentSecs,
		},
		Sequence:  e.Sequence,
		Timestamp: e.Timestamp,
	}
	for _, qr := range e.QuestionResults {
		rec.QuestionResults = append(rec.QuestionResults, QuestionResultData{
			QuestionID:    qr.QuestionID,
			IsCorrect:     qr.IsCorrect,
			UserAnswer:    qr.UserAnswer,
			UserAnswerSet: qr.UserAnswerSet,
			PointsAwarded: qr.PointsAwarded,
		})
	}
	return rec
}
