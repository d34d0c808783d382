package store

import (
	"context"
	"fmt"

	"github.com/finlitapp/finlit/ent"
	"github.com/finlitapp/finlit/ent/xpevent"
)

func (r *eventRepo) AppendXPEvent(ctx context.Context, data XPEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	builder := r.client.XPEvent.Create().
		SetSequence(seqNum).
		SetAmount(data.Amount).
		SetSource(data.Source).
		SetLevelAfter(data.LevelAfter).
		SetLeveledUp(data.LeveledUp)

	if data.SourceID != nil {
		builder = builder.SetSourceID(*data.SourceID)
	}

	_, err = builder.Save(ctx)
	if err != nil {
		return fmt.Errorf("save xp event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryXPEvents(ctx context.Context, opts QueryOpts) ([]XPEventRecord, error) {
	query := r.client.XPEvent.Query().
		Order(ent.Desc(xpevent.FieldSequence))

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.After > 0 {
		query = query.Where(xpevent.SequenceGT(opts.After))
	}
	if opts.Before > 0 {
		query = query.Where(xpevent.SequenceLT(opts.Before))
	}
	if !opts.From.IsZero() {
		query = query.Where(xpevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		query = query.Where(xpevent.TimestampLTE(opts.To))
	}

	events, err := query.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query xp events: %w", err)
	}

	records := make([]XPEventRecord, len(events))
	for i, e := range events {
		records[i] = XPEventRecord{
			XPEventData: XPEventData{
				Amount:     e.Amount,
				Source:     e.Source,
				SourceID:   e.SourceID,
				LevelAfter: e.LevelAfter,
				LeveledUp:  e.LeveledUp,
			},
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp,
		}
	}
	return records, nil
}
