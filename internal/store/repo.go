package store

import (
	"context"
	"errors"
	"time"
)

// ErrVersionConflict is returned when a performance record changed between
// the caller's read and its write. Callers reload and retry.
var ErrVersionConflict = errors.New("performance record version conflict")

// QueryOpts configures attempt queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // completed_at >= From
	To     time.Time // completed_at <= To
}

// AttemptRecord is a completed quiz attempt as stored.
type AttemptRecord struct {
	ID                string
	Sequence          int64 // assigned on commit
	UserID            string
	DocumentID        string
	Score             float64
	EarnedPoints      int
	TotalPoints       int
	QuestionsAnswered int
	CorrectAnswers    int
	TimeTakenMinutes  int
	CompletedAt       time.Time
}

// PerformanceData is the aggregated performance of a user on a document.
type PerformanceData struct {
	UserID           string
	DocumentID       string
	TotalAttempts    int
	BestScore        float64
	AverageScore     float64
	TotalTimeMinutes int
	MasteryLevel     string
	LastAttemptDate  time.Time
	Scores           []float64
	Version          int64
}

// StudyDay accumulates one user's activity on one calendar day.
type StudyDay struct {
	UserID            string
	Day               time.Time // midnight UTC
	Minutes           int
	QuestionsAnswered int
	CorrectAnswers    int
	PointsEarned      int
}

// AttemptRepo persists attempts and the performance records they fold into.
type AttemptRepo interface {
	// CommitAttempt stores the attempt and the updated performance record
	// in one transaction. expectedVersion is the version of the record the
	// caller read, 0 when there was none. If the stored version differs
	// nothing is written and ErrVersionConflict is returned.
	CommitAttempt(ctx context.Context, a AttemptRecord, perf PerformanceData, expectedVersion int64) error

	// Performance returns the record for (userID, documentID), or nil if
	// none exists.
	Performance(ctx context.Context, userID, documentID string) (*PerformanceData, error)

	// PerformanceByUser returns all of a user's records ordered by document.
	PerformanceByUser(ctx context.Context, userID string) ([]PerformanceData, error)

	// Attempts returns a user's attempts, newest first. An empty
	// documentID matches every document.
	Attempts(ctx context.Context, userID, documentID string, opts QueryOpts) ([]AttemptRecord, error)

	// DeleteUser removes every attempt and performance record of a user
	// and returns the number of rows removed.
	DeleteUser(ctx context.Context, userID string) (int64, error)
}

// ActivityRepo persists per-day study activity.
type ActivityRepo interface {
	// RecordStudyDay adds the counters of d to the stored day, creating it
	// if needed.
	RecordStudyDay(ctx context.Context, d StudyDay) error

	// StudyDays returns a user's study days in ascending order.
	StudyDays(ctx context.Context, userID string) ([]StudyDay, error)

	// DeleteUser removes every study day of a user and returns the number
	// of rows removed.
	DeleteUser(ctx context.Context, userID string) (int64, error)
}
