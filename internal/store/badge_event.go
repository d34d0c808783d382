package store

import (
	"context"
	"fmt"

	"github.com/finlitapp/finlit/ent"
	"github.com/finlitapp/finlit/ent/badgeevent"
)

func (r *eventRepo) AppendBadgeEvent(ctx context.Context, data BadgeEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.BadgeEvent.Create().
		SetSequence(seqNum).
		SetBadgeID(data.BadgeID).
		SetName(data.Name).
		SetRarity(data.Rarity).
		SetConditionType(data.ConditionType).
		SetConditionTarget(data.ConditionTarget).
		SetMetricValue(data.MetricValue).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save badge event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryBadgeEvents(ctx context.Context, opts QueryOpts) ([]BadgeEventRecord, error) {
	query := r.client.BadgeEvent.Query().
		Order(ent.Desc(badgeevent.FieldSequence))

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.After > 0 {
		query = query.Where(badgeevent.SequenceGT(opts.After))
	}
	if opts.Before > 0 {
		query = query.Where(badgeevent.SequenceLT(opts.Before))
	}
	if !opts.From.IsZero() {
		query = query.Where(badgeevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		query = query.Where(badgeevent.TimestampLTE(opts.To))
	}

	events, err := query.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query badge events: %w", err)
	}

	records := make([]BadgeEventRecord, len(events))
	for i, e := range events {
		records[i] = BadgeEventRecord{
			BadgeEventData: BadgeEventData{
				BadgeID:         e.BadgeID,
				Name:            e.Name,
				Rarity:          e.Rarity,
				ConditionType:   e.ConditionType,
				ConditionTarget: e.ConditionTarget,
				MetricValue:     e.MetricValue,
			},
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp,
		}
	}
	return records, nil
}
