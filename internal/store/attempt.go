package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// builder returns a SQL builder for the store's dialect.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

var attemptFields = []string{
	"id", "sequence", "user_id", "document_id", "score", "earned_points", "total_points",
	"questions_answered", "correct_answers", "time_taken_minutes", "completed_at",
}

var performanceFields = []string{
	"user_id", "document_id", "total_attempts", "best_score", "average_score",
	"total_time_minutes", "mastery_level", "last_attempt_date", "scores", "version",
}

// attemptRepo implements AttemptRepo using the ent SQL driver.
type attemptRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *attemptRepo) CommitAttempt(ctx context.Context, a AttemptRecord, perf PerformanceData, expectedVersion int64) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := r.commitAttempt(ctx, tx, a, perf, expectedVersion); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) commitAttempt(ctx context.Context, tx dialect.Tx, a AttemptRecord, perf PerformanceData, expectedVersion int64) error {
	seq, err := r.seq.Next(ctx, tx)
	if err != nil {
		return err
	}

	query, args := builder().Insert(attemptsTable).
		Columns(attemptFields...).
		Values(a.ID, seq, a.UserID, a.DocumentID, a.Score, a.EarnedPoints, a.TotalPoints,
			a.QuestionsAnswered, a.CorrectAnswers, a.TimeTakenMinutes, a.CompletedAt.UTC()).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}

	scores, err := json.Marshal(perf.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}

	if expectedVersion == 0 {
		query, args = builder().Insert(performanceTable).
			Columns(performanceFields...).
			Values(perf.UserID, perf.DocumentID, perf.TotalAttempts, perf.BestScore, perf.AverageScore,
				perf.TotalTimeMinutes, perf.MasteryLevel, perf.LastAttemptDate.UTC(), string(scores), perf.Version).
			OnConflict(entsql.ConflictColumns("user_id", "document_id"), entsql.DoNothing()).
			Query()
	} else {
		query, args = builder().Update(performanceTable).
			Set("total_attempts", perf.TotalAttempts).
			Set("best_score", perf.BestScore).
			Set("average_score", perf.AverageScore).
			Set("total_time_minutes", perf.TotalTimeMinutes).
			Set("mastery_level", perf.MasteryLevel).
			Set("last_attempt_date", perf.LastAttemptDate.UTC()).
			Set("scores", string(scores)).
			Set("version", perf.Version).
			Where(entsql.And(
				entsql.EQ("user_id", perf.UserID),
				entsql.EQ("document_id", perf.DocumentID),
				entsql.EQ("version", expectedVersion),
			)).
			Query()
	}

	var res sql.Result
	if err := tx.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("write performance record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write performance record: %w", err)
	}
	if n == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *attemptRepo) Performance(ctx context.Context, userID, documentID string) (*PerformanceData, error) {
	query, args := builder().Select(performanceFields...).
		From(builder().Table(performanceTable)).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("document_id", documentID))).
		Query()
	recs, err := r.queryPerformance(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

func (r *attemptRepo) PerformanceByUser(ctx context.Context, userID string) ([]PerformanceData, error) {
	query, args := builder().Select(performanceFields...).
		From(builder().Table(performanceTable)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("document_id").
		Query()
	return r.queryPerformance(ctx, query, args)
}

func (r *attemptRepo) queryPerformance(ctx context.Context, query string, args []any) ([]PerformanceData, error) {
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query performance records: %w", err)
	}
	defer rows.Close()

	var out []PerformanceData
	for rows.Next() {
		var (
			p      PerformanceData
			scores string
		)
		if err := rows.Scan(&p.UserID, &p.DocumentID, &p.TotalAttempts, &p.BestScore, &p.AverageScore,
			&p.TotalTimeMinutes, &p.MasteryLevel, &p.LastAttemptDate, &scores, &p.Version); err != nil {
			return nil, fmt.Errorf("scan performance record: %w", err)
		}
		if err := json.Unmarshal([]byte(scores), &p.Scores); err != nil {
			return nil, fmt.Errorf("unmarshal scores: %w", err)
		}
		p.LastAttemptDate = p.LastAttemptDate.UTC()
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate performance records: %w", err)
	}
	return out, nil
}

func (r *attemptRepo) Attempts(ctx context.Context, userID, documentID string, opts QueryOpts) ([]AttemptRecord, error) {
	preds := []*entsql.Predicate{entsql.EQ("user_id", userID)}
	if documentID != "" {
		preds = append(preds, entsql.EQ("document_id", documentID))
	}
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("completed_at", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("completed_at", opts.To.UTC()))
	}

	sel := builder().Select(attemptFields...).
		From(builder().Table(attemptsTable)).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		var a AttemptRecord
		if err := rows.Scan(&a.ID, &a.Sequence, &a.UserID, &a.DocumentID, &a.Score, &a.EarnedPoints,
			&a.TotalPoints, &a.QuestionsAnswered, &a.CorrectAnswers, &a.TimeTakenMinutes, &a.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.CompletedAt = a.CompletedAt.UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}

func (r *attemptRepo) DeleteUser(ctx context.Context, userID string) (int64, error) {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	var total int64
	for _, table := range []string{attemptsTable, performanceTable} {
		query, args := builder().Delete(table).Where(entsql.EQ("user_id", userID)).Query()
		var res sql.Result
		if err := tx.Exec(ctx, query, args, &res); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("delete from %s: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("delete from %s: %w", table, err)
		}
		total += n
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete: %w", err)
	}
	return total, nil
}
