package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// XPEvent records one experience award and the level it produced.
type XPEvent struct {
	ent.Schema
}

func (XPEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (XPEvent) Fields() []ent.Field {
	return []ent.Field{
		field.Int("amount").Positive(),
		field.String("source").NotEmpty().
			Comment("What earned the XP: quiz, module, track, streak, bonus"),
		field.String("source_id").Optional().Nillable(),
		field.Int("level_after"),
		field.Bool("leveled_up"),
	}
}

func (XPEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("source"),
	}
}
