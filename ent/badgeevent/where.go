// Code generated by ent, DO NOT EDIT.

package badgeevent

import (
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/finlitapp/finlit/ent/predicate"
)

// ID filters vertices based on their ID field.
func ID(id int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEQ(FieldID, id))
}

// IDEQ applies the EQ predicate on the ID field.
func IDEQ(id int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEQ(FieldID, id))
}

// IDNEQ applies the NEQ predicate on the ID field.
func IDNEQ(id int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldNEQ(FieldID, id))
}

// IDIn applies the In predicate on the ID field.
func IDIn(ids ...int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldIn(FieldID, ids...))
}

// IDNotIn applies the NotIn predicate on the ID field.
func IDNotIn(ids ...int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldNotIn(FieldID, ids...))
}

// IDGT applies the GT predicate on the ID field.
func IDGT(id int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldGT(FieldID, id))
}

// IDGTE applies the GTE predicate on the ID field.
func IDGTE(id int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldGTE(FieldID, id))
}

// IDLT applies the LT predicate on the ID field.
func IDLT(id int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldLT(FieldID, id))
}

// IDLTE applies the LTE predicate on the ID field.
func IDLTE(id int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldLTE(FieldID, id))
}

// Sequence applies equality check predicate on the "sequence" field. It's identical to SequenceEQ.
func Sequence(v int64) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEQ(FieldSequence, v))
}

// Timestamp applies equality check predicate on the "timestamp" field. It's identical to TimestampEQ.
func Timestamp(v time.Time) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEQ(FieldTimestamp, v))
}

// BadgeID applies equality check predicate on the "badge_id" field. It's identical to BadgeIDEQ.
func BadgeID(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEQ(FieldBadgeID, v))
}

// Name applies equality check predicate on the "name" field. It's identical to NameEQ.
func Name(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEQ(FieldName, v))
}

// Rarity applies equality check predicate on the "rarity" field. It's identical to RarityEQ.
func Rarity(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEQ(FieldRarity, v))
}

// ConditionType applies equality check predicate on the "condition_type" field. It's identical to ConditionTypeEQ.
func ConditionType(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEQ(FieldConditionType, v))
}

// ConditionTarget applies equality check predicate on the "condition_target" field. It's identical to ConditionTargetEQ.
func ConditionTarget(v int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEQ(FieldConditionTarget, v))
}

// MetricValue applies equality check predicate on the "metric_value" field. It's identical to MetricValueEQ.
func MetricValue(v int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEQ(FieldMetricValue, v))
}

// SequenceEQ applies the EQ predicate on the "sequence" field.
func SequenceEQ(v int64) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEQ(FieldSequence, v))
}

// SequenceNEQ applies the NEQ predicate on the "sequence" field.
func SequenceNEQ(v int64) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldNEQ(FieldSequence, v))
}

// SequenceIn applies the In predicate on the "sequence" field.
func SequenceIn(vs ...int64) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldIn(FieldSequence, vs...))
}

// SequenceNotIn applies the NotIn predicate on the "sequence" field.
func SequenceNotIn(vs ...int64) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldNotIn(FieldSequence, vs...))
}

// SequenceGT applies the GT predicate on the "sequence" field.
func SequenceGT(v int64) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldGT(FieldSequence, v))
}

// SequenceGTE applies the GTE predicate on the "sequence" field.
func SequenceGTE(v int64) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldGTE(FieldSequence, v))
}

// SequenceLT applies the LT predicate on the "sequence" field.
func SequenceLT(v int64) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldLT(FieldSequence, v))
}

// SequenceLTE applies the LTE predicate on the "sequence" field.
func SequenceLTE(v int64) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldLTE(FieldSequence, v))
}

// TimestampEQ applies the EQ predicate on the "timestamp" field.
func TimestampEQ(v time.Time) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEQ(FieldTimestamp, v))
}

// TimestampNEQ applies the NEQ predicate on the "timestamp" field.
func TimestampNEQ(v time.Time) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldNEQ(FieldTimestamp, v))
}

// TimestampIn applies the In predicate on the "timestamp" field.
func TimestampIn(vs ...time.Time) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldIn(FieldTimestamp, vs...))
}

// TimestampNotIn applies the NotIn predicate on the "timestamp" field.
func TimestampNotIn(vs ...time.Time) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldNotIn(FieldTimestamp, vs...))
}

// TimestampGT applies the GT predicate on the "timestamp" field.
func TimestampGT(v time.Time) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldGT(FieldTimestamp, v))
}

// TimestampGTE applies the GTE predicate on the "timestamp" field.
func TimestampGTE(v time.Time) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldGTE(FieldTimestamp, v))
}

// TimestampLT applies the LT predicate on the "timestamp" field.
func TimestampLT(v time.Time) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldLT(FieldTimestamp, v))
}

// TimestampLTE applies the LTE predicate on the "timestamp" field.
func TimestampLTE(v time.Time) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldLTE(FieldTimestamp, v))
}

// BadgeIDEQ applies the EQ predicate on the "badge_id" field.
func BadgeIDEQ(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEQ(FieldBadgeID, v))
}

// BadgeIDNEQ applies the NEQ predicate on the "badge_id" field.
func BadgeIDNEQ(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldNEQ(FieldBadgeID, v))
}

// BadgeIDIn applies the In predicate on the "badge_id" field.
func BadgeIDIn(vs ...string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldIn(FieldBadgeID, vs...))
}

// BadgeIDNotIn applies the NotIn predicate on the "badge_id" field.
func BadgeIDNotIn(vs ...string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldNotIn(FieldBadgeID, vs...))
}

// BadgeIDGT applies the GT predicate on the "badge_id" field.
func BadgeIDGT(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldGT(FieldBadgeID, v))
}

// BadgeIDGTE applies the GTE predicate on the "badge_id" field.
func BadgeIDGTE(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldGTE(FieldBadgeID, v))
}

// BadgeIDLT applies the LT predicate on the "badge_id" field.
func BadgeIDLT(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldLT(FieldBadgeID, v))
}

// BadgeIDLTE applies the LTE predicate on the "badge_id" field.
func BadgeIDLTE(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldLTE(FieldBadgeID, v))
}

// BadgeIDContains applies the Contains predicate on the "badge_id" field.
func BadgeIDContains(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldContains(FieldBadgeID, v))
}

// BadgeIDHasPrefix applies the HasPrefix predicate on the "badge_id" field.
func BadgeIDHasPrefix(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldHasPrefix(FieldBadgeID, v))
}

// BadgeIDHasSuffix applies the HasSuffix predicate on the "badge_id" field.
func BadgeIDHasSuffix(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldHasSuffix(FieldBadgeID, v))
}

// BadgeIDEqualFold applies the EqualFold predicate on the "badge_id" field.
func BadgeIDEqualFold(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEqualFold(FieldBadgeID, v))
}

// BadgeIDContainsFold applies the ContainsFold predicate on the "badge_id" field.
func BadgeIDContainsFold(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldContainsFold(FieldBadgeID, v))
}

// NameEQ applies the EQ predicate on the "name" field.
func NameEQ(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEQ(FieldName, v))
}

// NameNEQ applies the NEQ predicate on the "name" field.
func NameNEQ(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldNEQ(FieldName, v))
}

// NameIn applies the In predicate on the "name" field.
func NameIn(vs ...string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldIn(FieldName, vs...))
}

// NameNotIn applies the NotIn predicate on the "name" field.
func NameNotIn(vs ...string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldNotIn(FieldName, vs...))
}

// NameGT applies the GT predicate on the "name" field.
func NameGT(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldGT(FieldName, v))
}

// NameGTE applies the GTE predicate on the "name" field.
func NameGTE(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldGTE(FieldName, v))
}

// NameLT applies the LT predicate on the "name" field.
func NameLT(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldLT(FieldName, v))
}

// NameLTE applies the LTE predicate on the "name" field.
func NameLTE(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldLTE(FieldName, v))
}

// NameContains applies the Contains predicate on the "name" field.
func NameContains(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldContains(FieldName, v))
}

// NameHasPrefix applies the HasPrefix predicate on the "name" field.
func NameHasPrefix(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldHasPrefix(FieldName, v))
}

// NameHasSuffix applies the HasSuffix predicate on the "name" field.
func NameHasSuffix(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldHasSuffix(FieldName, v))
}

// NameEqualFold applies the EqualFold predicate on the "name" field.
func NameEqualFold(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEqualFold(FieldName, v))
}

// NameContainsFold applies the ContainsFold predicate on the "name" field.
func NameContainsFold(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldContainsFold(FieldName, v))
}

// RarityEQ applies the EQ predicate on the "rarity" field.
func RarityEQ(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEQ(FieldRarity, v))
}

// RarityNEQ applies the NEQ predicate on the "rarity" field.
func RarityNEQ(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldNEQ(FieldRarity, v))
}

// RarityIn applies the In predicate on the "rarity" field.
func RarityIn(vs ...string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldIn(FieldRarity, vs...))
}

// RarityNotIn applies the NotIn predicate on the "rarity" field.
func RarityNotIn(vs ...string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldNotIn(FieldRarity, vs...))
}

// RarityGT applies the GT predicate on the "rarity" field.
func RarityGT(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldGT(FieldRarity, v))
}

// RarityGTE applies the GTE predicate on the "rarity" field.
func RarityGTE(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldGTE(FieldRarity, v))
}

// RarityLT applies the LT predicate on the "rarity" field.
func RarityLT(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldLT(FieldRarity, v))
}

// RarityLTE applies the LTE predicate on the "rarity" field.
func RarityLTE(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldLTE(FieldRarity, v))
}

// RarityContains applies the Contains predicate on the "rarity" field.
func RarityContains(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldContains(FieldRarity, v))
}

// RarityHasPrefix applies the HasPrefix predicate on the "rarity" field.
func RarityHasPrefix(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldHasPrefix(FieldRarity, v))
}

// RarityHasSuffix applies the HasSuffix predicate on the "rarity" field.
func RarityHasSuffix(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldHasSuffix(FieldRarity, v))
}

// RarityEqualFold applies the EqualFold predicate on the "rarity" field.
func RarityEqualFold(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEqualFold(FieldRarity, v))
}

// RarityContainsFold applies the ContainsFold predicate on the "rarity" field.
func RarityContainsFold(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldContainsFold(FieldRarity, v))
}

// ConditionTypeEQ applies the EQ predicate on the "condition_type" field.
func ConditionTypeEQ(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEQ(FieldConditionType, v))
}

// ConditionTypeNEQ applies the NEQ predicate on the "condition_type" field.
func ConditionTypeNEQ(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldNEQ(FieldConditionType, v))
}

// ConditionTypeIn applies the In predicate on the "condition_type" field.
func ConditionTypeIn(vs ...string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldIn(FieldConditionType, vs...))
}

// ConditionTypeNotIn applies the NotIn predicate on the "condition_type" field.
func ConditionTypeNotIn(vs ...string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldNotIn(FieldConditionType, vs...))
}

// ConditionTypeGT applies the GT predicate on the "condition_type" field.
func ConditionTypeGT(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldGT(FieldConditionType, v))
}

// ConditionTypeGTE applies the GTE predicate on the "condition_type" field.
func ConditionTypeGTE(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldGTE(FieldConditionType, v))
}

// ConditionTypeLT applies the LT predicate on the "condition_type" field.
func ConditionTypeLT(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldLT(FieldConditionType, v))
}

// ConditionTypeLTE applies the LTE predicate on the "condition_type" field.
func ConditionTypeLTE(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldLTE(FieldConditionType, v))
}

// ConditionTypeContains applies the Contains predicate on the "condition_type" field.
func ConditionTypeContains(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldContains(FieldConditionType, v))
}

// ConditionTypeHasPrefix applies the HasPrefix predicate on the "condition_type" field.
func ConditionTypeHasPrefix(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldHasPrefix(FieldConditionType, v))
}

// ConditionTypeHasSuffix applies the HasSuffix predicate on the "condition_type" field.
func ConditionTypeHasSuffix(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldHasSuffix(FieldConditionType, v))
}

// ConditionTypeEqualFold applies the EqualFold predicate on the "condition_type" field.
func ConditionTypeEqualFold(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEqualFold(FieldConditionType, v))
}

// ConditionTypeContainsFold applies the ContainsFold predicate on the "condition_type" field.
func ConditionTypeContainsFold(v string) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldContainsFold(FieldConditionType, v))
}

// ConditionTargetEQ applies the EQ predicate on the "condition_target" field.
func ConditionTargetEQ(v int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEQ(FieldConditionTarget, v))
}

// ConditionTargetNEQ applies the NEQ predicate on the "condition_target" field.
func ConditionTargetNEQ(v int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldNEQ(FieldConditionTarget, v))
}

// ConditionTargetIn applies the In predicate on the "condition_target" field.
func ConditionTargetIn(vs ...int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldIn(FieldConditionTarget, vs...))
}

// ConditionTargetNotIn applies the NotIn predicate on the "condition_target" field.
func ConditionTargetNotIn(vs ...int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldNotIn(FieldConditionTarget, vs...))
}

// ConditionTargetGT applies the GT predicate on the "condition_target" field.
func ConditionTargetGT(v int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldGT(FieldConditionTarget, v))
}

// ConditionTargetGTE applies the GTE predicate on the "condition_target" field.
func ConditionTargetGTE(v int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldGTE(FieldConditionTarget, v))
}

// ConditionTargetLT applies the LT predicate on the "condition_target" field.
func ConditionTargetLT(v int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldLT(FieldConditionTarget, v))
}

// ConditionTargetLTE applies the LTE predicate on the "condition_target" field.
func ConditionTargetLTE(v int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldLTE(FieldConditionTarget, v))
}

// MetricValueEQ applies the EQ predicate on the "metric_value" field.
func MetricValueEQ(v int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldEQ(FieldMetricValue, v))
}

// MetricValueNEQ applies the NEQ predicate on the "metric_value" field.
func MetricValueNEQ(v int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldNEQ(FieldMetricValue, v))
}

// MetricValueIn applies the In predicate on the "metric_value" field.
func MetricValueIn(vs ...int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldIn(FieldMetricValue, vs...))
}

// MetricValueNotIn applies the NotIn predicate on the "metric_value" field.
func MetricValueNotIn(vs ...int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldNotIn(FieldMetricValue, vs...))
}

// MetricValueGT applies the GT predicate on the "metric_value" field.
func MetricValueGT(v int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldGT(FieldMetricValue, v))
}

// MetricValueGTE applies the GTE predicate on the "metric_value" field.
func MetricValueGTE(v int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldGTE(FieldMetricValue, v))
}

// MetricValueLT applies the LT predicate on the "metric_value" field.
func MetricValueLT(v int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldLT(FieldMetricValue, v))
}

// MetricValueLTE applies the LTE predicate on the "metric_value" field.
func MetricValueLTE(v int) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.FieldLTE(FieldMetricValue, v))
}

// And groups predicates with the AND operator between them.
func And(predicates ...predicate.BadgeEvent) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.AndPredicates(predicates...))
}

// Or groups predicates with the OR operator between them.
func Or(predicates ...predicate.BadgeEvent) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.OrPredicates(predicates...))
}

// Not applies the not operator on the given predicate.
func Not(p predicate.BadgeEvent) predicate.BadgeEvent {
	return predicate.BadgeEvent(sql.NotPredicates(p))
}
