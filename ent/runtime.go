// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/finlitapp/finlit/ent/badgeevent"
	"github.com/finlitapp/finlit/ent/quizevent"
	"github.com/finlitapp/finlit/ent/schema"
	"github.com/finlitapp/finlit/ent/snapshot"
	"github.com/finlitapp/finlit/ent/xpevent"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	badgeeventMixin := schema.BadgeEvent{}.Mixin()
	badgeeventMixinFields0 := badgeeventMixin[0].Fields()
	_ = badgeeventMixinFields0
	badgeeventFields := schema.BadgeEvent{}.Fields()
	_ = badgeeventFields
	// badgeeventDescTimestamp is the schema descriptor for timestamp field.
	badgeeventDescTimestamp := badgeeventMixinFields0[1].Descriptor()
	// badgeevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	badgeevent.DefaultTimestamp = badgeeventDescTimestamp.Default.(func() time.Time)
	// badgeeventDescBadgeID is the schema descriptor for badge_id field.
	badgeeventDescBadgeID := badgeeventFields[0].Descriptor()
	// badgeevent.BadgeIDValidator is a validator for the "badge_id" field. It is called by the builders before save.
	badgeevent.BadgeIDValidator = badgeeventDescBadgeID.Validators[0].(func(string) error)
	// badgeeventDescName is the schema descriptor for name field.
	badgeeventDescName := badgeeventFields[1].Descriptor()
	// badgeevent.NameValidator is a validator for the "name" field. It is called by the builders before save.
	badgeevent.NameValidator = badgeeventDescName.Validators[0].(func(string) error)
	// badgeeventDescRarity is the schema descriptor for rarity field.
	badgeeventDescRarity := badgeeventFields[2].Descriptor()
	// badgeevent.RarityValidator is a validator for the "rarity" field. It is called by the builders before save.
	badgeevent.RarityValidator = badgeeventDescRarity.Validators[0].(func(string) error)
	// badgeeventDescConditionType is the schema descriptor for condition_type field.
	badgeeventDescConditionType := badgeeventFields[3].Descriptor()
	// badgeevent.ConditionTypeValidator is a validator for the "condition_type" field. It is called by the builders before save.
	badgeevent.ConditionTypeValidator = badgeeventDescConditionType.Validators[0].(func(string) error)
	quizeventMixin := schema.QuizEvent{}.Mixin()
	quizeventMixinFields0 := quizeventMixin[0].Fields()
	_ = quizeventMixinFields0
	quizeventFields := schema.QuizEvent{}.Fields()
	_ = quizeventFields
	// quizeventDescTimestamp is the schema descriptor for timestamp field.
	quizeventDescTimestamp := quizeventMixinFields0[1].Descriptor()
	// quizevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	quizevent.DefaultTimestamp = quizeventDescTimestamp.Default.(func() time.Time)
	// quizeventDescQuizID is the schema descriptor for quiz_id field.
	quizeventDescQuizID := quizeventFields[0].Descriptor()
	// quizevent.QuizIDValidator is a validator for the "quiz_id" field. It is called by the builders before save.
	quizevent.QuizIDValidator = quizeventDescQuizID.Validators[0].(func(string) error)
	// quizeventDescAttemptID is the schema descriptor for attempt_id field.
	quizeventDescAttemptID := quizeventFields[1].Descriptor()
	// quizevent.AttemptIDValidator is a validator for the "attempt_id" field. It is called by the builders before save.
	quizevent.AttemptIDValidator = quizeventDescAttemptID.Validators[0].(func(string) error)
	snapshotFields := schema.Snapshot{}.Fields()
	_ = snapshotFields
	// snapshotDescTimestamp is the schema descriptor for timestamp field.
	snapshotDescTimestamp := snapshotFields[1].Descriptor()
	// snapshot.DefaultTimestamp holds the default value on creation for the timestamp field.
	snapshot.DefaultTimestamp = snapshotDescTimestamp.Default.(func() time.Time)
	xpeventMixin := schema.XPEvent{}.Mixin()
	xpeventMixinFields0 := xpeventMixin[0].Fields()
	_ = xpeventMixinFields0
	xpeventFields := schema.XPEvent{}.Fields()
	_ = xpeventFields
	// xpeventDescTimestamp is the schema descriptor for timestamp field.
	xpeventDescTimestamp := xpeventMixinFields0[1].Descriptor()
	// xpevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	xpevent.DefaultTimestamp = xpeventDescTimestamp.Default.(func() time.Time)
	// xpeventDescAmount is the schema descriptor for amount field.
	xpeventDescAmount := xpeventFields[0].Descriptor()
	// xpevent.AmountValidator is a validator for the "amount" field. It is called by the builders before save.
	xpevent.AmountValidator = xpeventDescAmount.Validators[0].(func(int) error)
	// xpeventDescSource is the schema descriptor for source field.
	xpeventDescSource := xpeventFields[1].Descriptor()
	// xpevent.SourceValidator is a validator for the "source" field. It is called by the builders before save.
	xpevent.SourceValidator = xpeventDescSource.Validators[0].(func(string) error)
}
