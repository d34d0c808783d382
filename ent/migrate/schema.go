// Code generated by ent, DO NOT EDIT.

package migrate

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// BadgeEventsColumns holds the columns for the "badge_events" table.
	BadgeEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "badge_id", Type: field.TypeString},
		{Name: "name", Type: field.TypeString},
		{Name: "rarity", Type: field.TypeString},
		{Name: "condition_type", Type: field.TypeString},
		{Name: "condition_target", Type: field.TypeInt},
		{Name: "metric_value", Type: field.TypeInt},
	}
	// BadgeEventsTable holds the schema information for the "badge_events" table.
	BadgeEventsTable = &schema.Table{
		Name:       "badge_events",
		Columns:    BadgeEventsColumns,
		PrimaryKey: []*schema.Column{BadgeEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "badgeevent_sequence",
				Unique:  false,
				Columns: []*schema.Column{BadgeEventsColumns[1]},
			},
			{
				Name:    "badgeevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{BadgeEventsColumns[2]},
			},
			{
				Name:    "badgeevent_badge_id",
				Unique:  false,
				Columns: []*schema.Column{BadgeEventsColumns[3]},
			},
			{
				Name:    "badgeevent_rarity",
				Unique:  false,
				Columns: []*schema.Column{BadgeEventsColumns[5]},
			},
		},
	}
	// QuizEventsColumns holds the columns for the "quiz_events" table.
	QuizEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "quiz_id", Type: field.TypeString},
		{Name: "attempt_id", Type: field.TypeString},
		{Name: "score", Type: field.TypeFloat64},
		{Name: "correct_count", Type: field.TypeInt},
		{Name: "total_questions", Type: field.TypeInt},
		{Name: "total_points", Type: field.TypeInt},
		{Name: "max_points", Type: field.TypeInt},
		{Name: "passed", Type: field.TypeBool},
		{Name: "time_spent_secs", Type: field.TypeInt},
		{Name: "question_results", Type: field.TypeJSON, Nullable: true},
	}
	// QuizEventsTable holds the schema information for the "quiz_events" table.
	QuizEventsTable = &schema.Table{
		Name:       "quiz_events",
		Columns:    QuizEventsColumns,
		PrimaryKey: []*schema.Column{QuizEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "quizevent_sequence",
				Unique:  false,
				Columns: []*schema.Column{QuizEventsColumns[1]},
			},
			{
				Name:    "quizevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{QuizEventsColumns[2]},
			},
			{
				Name:    "quizevent_quiz_id",
				Unique:  false,
				Columns: []*schema.Column{QuizEventsColumns[3]},
			},
			{
				Name:    "quizevent_attempt_id",
				Unique:  false,
				Columns: []*schema.Column{QuizEventsColumns[4]},
			},
			{
				Name:    "quizevent_passed",
				Unique:  false,
				Columns: []*schema.Column{QuizEventsColumns[10]},
			},
		},
	}
	// SnapshotsColumns holds the columns for the "snapshots" table.
	SnapshotsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "data", Type: field.TypeJSON},
	}
	// SnapshotsTable holds the schema information for the "snapshots" table.
	SnapshotsTable = &schema.Table{
		Name:       "snapshots",
		Columns:    SnapshotsColumns,
		PrimaryKey: []*schema.Column{SnapshotsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "snapshot_timestamp",
				Unique:  false,
				Columns: []*schema.Column{SnapshotsColumns[2]},
			},
			{
				Name:    "snapshot_sequence",
				Unique:  false,
				Columns: []*schema.Column{SnapshotsColumns[1]},
			},
		},
	}
	// XpEventsColumns holds the columns for the "xp_events" table.
	XpEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "amount", Type: field.TypeInt},
		{Name: "source", Type: field.TypeString},
		{Name: "source_id", Type: field.TypeString, Nullable: true},
		{Name: "level_after", Type: field.TypeInt},
		{Name: "leveled_up", Type: field.TypeBool},
	}
	// XpEventsTable holds the schema information for the "xp_events" table.
	XpEventsTable = &schema.Table{
		Name:       "xp_events",
		Columns:    XpEventsColumns,
		PrimaryKey: []*schema.Column{XpEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "xpevent_sequence",
				Unique:  false,
				Columns: []*schema.Column{XpEventsColumns[1]},
			},
			{
				Name:    "xpevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{XpEventsColumns[2]},
			},
			{
				Name:    "xpevent_source",
				Unique:  false,
				Columns: []*schema.Column{XpEventsColumns[4]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		BadgeEventsTable,
		QuizEventsTable,
		SnapshotsTable,
		XpEventsTable,
	}
)

func init() {
}
