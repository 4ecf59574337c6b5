package store

import (
	"context"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	attemptsTable    = "attempts"
	performanceTable = "performance_records"
	studyDaysTable   = "study_days"
	sequenceTable    = "global_sequence"
)

var (
	attemptColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "document_id", Type: field.TypeString},
		{Name: "score", Type: field.TypeFloat64},
		{Name: "earned_points", Type: field.TypeInt},
		{Name: "total_points", Type: field.TypeInt},
		{Name: "questions_answered", Type: field.TypeInt},
		{Name: "correct_answers", Type: field.TypeInt},
		{Name: "time_taken_minutes", Type: field.TypeInt},
		{Name: "completed_at", Type: field.TypeTime},
	}
	attemptsSchema = &schema.Table{
		Name:       attemptsTable,
		Columns:    attemptColumns,
		PrimaryKey: []*schema.Column{attemptColumns[0]},
		Indexes: []*schema.Index{
			{Name: "attempt_user_id_document_id", Columns: []*schema.Column{attemptColumns[2], attemptColumns[3]}},
			{Name: "attempt_completed_at", Columns: []*schema.Column{attemptColumns[10]}},
		},
	}

	performanceColumns = []*schema.Column{
		{Name: "user_id", Type: field.TypeString},
		{Name: "document_id", Type: field.TypeString},
		{Name: "total_attempts", Type: field.TypeInt},
		{Name: "best_score", Type: field.TypeFloat64},
		{Name: "average_score", Type: field.TypeFloat64},
		{Name: "total_time_minutes", Type: field.TypeInt},
		{Name: "mastery_level", Type: field.TypeString},
		{Name: "last_attempt_date", Type: field.TypeTime},
		{Name: "scores", Type: field.TypeJSON},
		{Name: "version", Type: field.TypeInt64},
	}
	performanceSchema = &schema.Table{
		Name:       performanceTable,
		Columns:    performanceColumns,
		PrimaryKey: []*schema.Column{performanceColumns[0], performanceColumns[1]},
	}

	studyDayColumns = []*schema.Column{
		{Name: "user_id", Type: field.TypeString},
		{Name: "day", Type: field.TypeString, Size: 10},
		{Name: "minutes", Type: field.TypeInt},
		{Name: "questions_answered", Type: field.TypeInt},
		{Name: "correct_answers", Type: field.TypeInt},
		{Name: "points_earned", Type: field.TypeInt},
	}
	studyDaysSchema = &schema.Table{
		Name:       studyDaysTable,
		Columns:    studyDayColumns,
		PrimaryKey: []*schema.Column{studyDayColumns[0], studyDayColumns[1]},
	}

	sequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64},
	}
	sequenceSchema = &schema.Table{
		Name:       sequenceTable,
		Columns:    sequenceColumns,
		PrimaryKey: []*schema.Column{sequenceColumns[0]},
	}

	tables = []*schema.Table{attemptsSchema, performanceSchema, studyDaysSchema, sequenceSchema}
)

// migrate creates or updates all tables.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}
