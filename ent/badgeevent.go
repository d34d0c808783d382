// Code generated by ent, DO NOT EDIT.

package ent

import (
	"fmt"
	"strings"
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql"
	"github.com/finlitapp/finlit/ent/badgeevent"
)

// BadgeEvent is the model entity for the BadgeEvent schema.
type BadgeEvent struct {
	config `json:"-"`
	// ID of the ent.
	ID int `json:"id,omitempty"`
	// Monotonically increasing global sequence number
	Sequence int64 `json:"sequence,omitempty"`
	// UTC wall-clock time of the event
	Timestamp time.Time `json:"timestamp,omitempty"`
	// BadgeID holds the value of the "badge_id" field.
	BadgeID string `json:"badge_id,omitempty"`
	// Name holds the value of the "name" field.
	Name string `json:"name,omitempty"`
	// Rarity holds the value of the "rarity" field.
	Rarity string `json:"rarity,omitempty"`
	// ConditionType holds the value of the "condition_type" field.
	ConditionType string `json:"condition_type,omitempty"`
	// ConditionTarget holds the value of the "condition_target" field.
	ConditionTarget int `json:"condition_target,omitempty"`
	// The ledger metric at the moment the badge unlocked
	MetricValue  int `json:"metric_value,omitempty"`
	selectValues sql.SelectValues
}

// scanValues returns the types for scanning values from sql.Rows.
func (*BadgeEvent) scanValues(columns []string) ([]any, error) {
	values := make([]any, len(columns))
	for i := range columns {
		switch columns[i] {
		case badgeevent.FieldID, badgeevent.FieldSequence, badgeevent.FieldConditionTarget, badgeevent.FieldMetricValue:
			values[i] = new(sql.NullInt64)
		case badgeevent.FieldBadgeID, badgeevent.FieldName, badgeevent.FieldRarity, badgeevent.FieldConditionType:
			values[i] = new(sql.NullString)
		case badgeevent.FieldTimestamp:
			values[i] = new(sql.NullTime)
		default:
			values[i] = new(sql.UnknownType)
		}
	}
	return values, nil
}

// assignValues assigns the values that were returned from sql.Rows (after scanning)
// to the BadgeEvent fields.
func (_m *BadgeEvent) assignValues(columns []string, values []any) error {
	if m, n := len(values), len(columns); m < n {
		return fmt.Errorf("mismatch number of scan values: %d != %d", m, n)
	}
	for i := range columns {
		switch columns[i] {
		case badgeevent.FieldID:
			value, ok := values[i].(*sql.NullInt64)
			if !ok {
				return fmt.Errorf("unexpected type %T for field id", value)
			}
			_m.ID = int(value.Int64)
		case badgeevent.FieldSequence:
			if value, ok := values[i].(*sql.NullInt64); !ok {
				return fmt.Errorf("unexpected type %T for field sequence", values[i])
			} else if value.Valid {
				_m.Sequence = value.Int64
			}
		case badgeevent.FieldTimestamp:
			if value, ok := values[i].(*sql.NullTime); !ok {
				return fmt.Errorf("unexpected type %T for field timestamp", values[i])
			} else if value.Valid {
				_m.Timestamp = value.Time
			}
		case badgeevent.FieldBadgeID:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field badge_id", values[i])
			} else if value.Valid {
				_m.BadgeID = value.String
			}
		case badgeevent.FieldName:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field name", values[i])
			} else if value.Valid {
				_m.Name = value.String
			}
		case badgeevent.FieldRarity:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field rarity", values[i])
			} else if value.Valid {
				_m.Rarity = value.String
			}
		case badgeevent.FieldConditionType:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field condition_type", values[i])
			} else if value.Valid {
				_m.ConditionType = value.String
			}
		case badgeevent.FieldConditionTarget:
			if value, ok := values[i].(*sql.NullInt64); !ok {
				return fmt.Errorf("unexpected type %T for field condition_target", values[i])
			} else if value.Valid {
				_m.ConditionTarget = int(value.Int64)
			}
		case badgeevent.FieldMetricValue:
			if value, ok := values[i].(*sql.NullInt64); !ok {
				return fmt.Errorf("unexpected type %T for field metric_value", values[i])
			} else if value.Valid {
				_m.MetricValue = int(value.Int64)
			}
		default:
			_m.selectValues.Set(columns[i], values[i])
		}
	}
	return nil
}

// Value returns the ent.Value that was dynamically selected and assigned to the BadgeEvent.
// This includes values selected through modifiers, order, etc.
func (_m *BadgeEvent) Value(name string) (ent.Value, error) {
	return _m.selectValues.Get(name)
}

// Update returns a builder for updating this BadgeEvent.
// Note that you need to call BadgeEvent.Unwrap() before calling this method if this BadgeEvent
// was returned from a transaction, and the transaction was committed or rolled back.
func (_m *BadgeEvent) Update() *BadgeEventUpdateOne {
	return NewBadgeEventClient(_m.config).UpdateOne(_m)
}

// Unwrap unwraps the BadgeEvent entity that was returned from a transaction after it was closed,
// so that all future queries will be executed through the driver which created the transaction.
func (_m *BadgeEvent) Unwrap() *BadgeEvent {
	_tx, ok := _m.config.driver.(*txDriver)
	if !ok {
		panic("ent: BadgeEvent is not a transactional entity")
	}
	_m.config.driver = _tx.drv
	return _m
}

// String implements the fmt.Stringer.
func (_m *BadgeEvent) String() string {
	var builder strings.Builder
	builder.WriteString("BadgeEvent(")
	builder.WriteString(fmt.Sprintf("id=%v, ", _m.ID))
	builder.WriteString("sequence=")
	builder.WriteString(fmt.Sprintf("%v", _m.Sequence))
	builder.WriteString(", ")
	builder.WriteString("timestamp=")
	builder.WriteString(_m.Timestamp.Format(time.ANSIC))
	builder.WriteString(", ")
	builder.WriteString("badge_id=")
	builder.WriteString(_m.BadgeID)
	builder.WriteString(", ")
	builder.WriteString("name=")
	builder.WriteString(_m.Name)
	builder.WriteString(", ")
	builder.WriteString("rarity=")
	builder.WriteString(_m.Rarity)
	builder.WriteString(", ")
	builder.WriteString("condition_type=")
	builder.WriteString(_m.ConditionType)
	builder.WriteString(", ")
	builder.WriteString("condition_target=")
	builder.WriteString(fmt.Sprintf("%v", _m.ConditionTarget))
	builder.WriteString(", ")
	builder.WriteString("metric_value=")
	builder.WriteString(fmt.Sprintf("%v", _m.MetricValue))
	builder.WriteByte(')')
	return builder.String()
}

// BadgeEvents is a parsable slice of BadgeEvent.
type BadgeEvents []*BadgeEvent
