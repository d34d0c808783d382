package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// BadgeEvent records a badge unlock. Unlocks are monotonic, so these
// events are never compensated or deleted.
type BadgeEvent struct {
	ent.Schema
}

func (BadgeEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (BadgeEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("badge_id").NotEmpty(),
		field.String("name").NotEmpty(),
		field.String("rarity").NotEmpty(),
		field.String("condition_type").NotEmpty(),
		field.Int("condition_target"),
		field.Int("metric_value").
			Comment("The ledger metric at the moment the badge unlocked"),
	}
}

func (BadgeEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("badge_id"),
		index.Fields("rarity"),
	}
}
