// Code generated by ent, DO NOT EDIT.

package badgeevent

import (
	"time"

	"entgo.io/ent/dialect/sql"
)

const (
	// Label holds the string label denoting the badgeevent type in the database.
	Label = "badge_event"
	// FieldID holds the string denoting the id field in the database.
	FieldID = "id"
	// FieldSequence holds the string denoting the sequence field in the database.
	FieldSequence = "sequence"
	// FieldTimestamp holds the string denoting the timestamp field in the database.
	FieldTimestamp = "timestamp"
	// FieldBadgeID holds the string denoting the badge_id field in the database.
	FieldBadgeID = "badge_id"
	// FieldName holds the string denoting the name field in the database.
	FieldName = "name"
	// FieldRarity holds the string denoting the rarity field in the database.
	FieldRarity = "rarity"
	// FieldConditionType holds the string denoting the condition_type field in the database.
	FieldConditionType = "condition_type"
	// FieldConditionTarget holds the string denoting the condition_target field in the database.
	FieldConditionTarget = "condition_target"
	// FieldMetricValue holds the string denoting the metric_value field in the database.
	FieldMetricValue = "metric_value"
	// Table holds the table name of the badgeevent in the database.
	Table = "badge_events"
)

// Columns holds all SQL columns for badgeevent fields.
var Columns = []string{
	FieldID,
	FieldSequence,
	FieldTimestamp,
	FieldBadgeID,
	FieldName,
	FieldRarity,
	FieldConditionType,
	FieldConditionTarget,
	FieldMetricValue,
}

// ValidColumn reports if the column name is valid (part of the table columns).
func ValidColumn(column string) bool {
	for i := range Columns {
		if column == Columns[i] {
			return true
		}
	}
	return false
}

var (
	// DefaultTimestamp holds the default value on creation for the "timestamp" field.
	DefaultTimestamp func() time.Time
	// BadgeIDValidator is a validator for the "badge_id" field. It is called by the builders before save.
	BadgeIDValidator func(string) error
	// NameValidator is a validator for the "name" field. It is called by the builders before save.
	NameValidator func(string) error
	// RarityValidator is a validator for the "rarity" field. It is called by the builders before save.
	RarityValidator func(string) error
	// ConditionTypeValidator is a validator for the "condition_type" field. It is called by the builders before save.
	ConditionTypeValidator func(string) error
)

// OrderOption defines the ordering options for the BadgeEvent queries.
type OrderOption func(*sql.Selector)

// ByID orders the results by the id field.
func ByID(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldID, opts...).ToFunc()
}

// BySequence orders the results by the sequence field.
func BySequence(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldSequence, opts...).ToFunc()
}

// ByTimestamp orders the results by the timestamp field.
func ByTimestamp(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldTimestamp, opts...).ToFunc()
}

// ByBadgeID orders the results by the badge_id field.
func ByBadgeID(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldBadgeID, opts...).ToFunc()
}

// ByName orders the results by the name field.
func ByName(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldName, opts...).ToFunc()
}

// ByRarity orders the results by the rarity field.
func ByRarity(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldRarity, opts...).ToFunc()
}

// ByConditionType orders the results by the condition_type field.
func ByConditionType(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldConditionType, opts...).ToFunc()
}

// ByConditionTarget orders the results by the condition_target field.
func ByConditionTarget(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldConditionTarget, opts...).ToFunc()
}

// ByMetricValue orders the results by the metric_value field.
func ByMetricValue(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldMetricValue, opts...).ToFunc()
}
