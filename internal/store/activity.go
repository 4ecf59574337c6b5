package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// dayLayout is how study days are keyed in the database.
const dayLayout = "2006-01-02"

// activityRepo implements ActivityRepo using the ent SQL driver.
type activityRepo struct {
	drv *entsql.Driver
}

func (r *activityRepo) RecordStudyDay(ctx context.Context, d StudyDay) error {
	query, args := builder().Insert(studyDaysTable).
		Columns("user_id", "day", "minutes", "questions_answered", "correct_answers", "points_earned").
		Values(d.UserID, d.Day.Format(dayLayout), d.Minutes, d.QuestionsAnswered, d.CorrectAnswers, d.PointsEarned).
		OnConflict(
			entsql.ConflictColumns("user_id", "day"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.Add("minutes", d.Minutes)
				u.Add("questions_answered", d.QuestionsAnswered)
				u.Add("correct_answers", d.CorrectAnswers)
				u.Add("points_earned", d.PointsEarned)
			}),
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("record study day: %w", err)
	}
	return nil
}

func (r *activityRepo) StudyDays(ctx context.Context, userID string) ([]StudyDay, error) {
	query, args := builder().
		Select("user_id", "day", "minutes", "questions_answered", "correct_answers", "points_earned").
		From(builder().Table(studyDaysTable)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("day").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query study days: %w", err)
	}
	defer rows.Close()

	var out []StudyDay
	for rows.Next() {
		var (
			d   StudyDay
			day string
		)
		if err := rows.Scan(&d.UserID, &day, &d.Minutes, &d.QuestionsAnswered, &d.CorrectAnswers, &d.PointsEarned); err != nil {
			return nil, fmt.Errorf("scan study day: %w", err)
		}
		t, err := time.Parse(dayLayout, day)
		if err != nil {
			return nil, fmt.Errorf("parse study day %q: %w", day, err)
		}
		d.Day = t
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate study days: %w", err)
	}
	return out, nil
}

func (r *activityRepo) DeleteUser(ctx context.Context, userID string) (int64, error) {
	query, args := builder().Delete(studyDaysTable).Where(entsql.EQ("user_id", userID)).Query()
	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("delete study days: %w", err)
	}
	return res.RowsAffected()
}
