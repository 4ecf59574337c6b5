package mastery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/docquiz/internal/logger"
	"github.com/abhisek/docquiz/internal/store"
	"github.com/abhisek/docquiz/internal/streak"
)

// DefaultMaxRetries bounds how often CompleteAttempt reloads a record after
// losing a version race.
const DefaultMaxRetries = 5

// Outcome is the result of completing an attempt.
type Outcome struct {
	AttemptID     string
	Record        PerformanceRecord
	Streak        streak.State
	NextMilestone int
	Milestone     bool         // the current streak just reached a milestone
	LevelChange   *LevelChange // nil when the level did not change
}

// Service persists attempts and study activity. Updates to the same
// (user, document) record are serialized in-process; the record version
// guards against writers in other processes.
type Service struct {
	attempts   store.AttemptRepo
	activity   store.ActivityRepo
	log        *logger.Logger
	now        func() time.Time
	maxRetries int
	locks      keyedMutex
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used for "today" in streak calculations.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMaxRetries sets the number of reload attempts after a version conflict.
func WithMaxRetries(n int) Option {
	return func(s *Service) { s.maxRetries = n }
}

// NewService creates a service over the given repositories.
func NewService(attempts store.AttemptRepo, activity store.ActivityRepo, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		attempts:   attempts,
		activity:   activity,
		log:        logger.OrNop(log),
		now:        time.Now,
		maxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CompleteAttempt folds a into the user's record for its document, stores
// both, records the study day and returns the new record and streak. Once
// the attempt is committed it is reported as completed; a failure to record
// the study day is only logged.
func (s *Service) CompleteAttempt(ctx context.Context, a AttemptSummary) (Outcome, error) {
	if err := a.Validate(); err != nil {
		return Outcome{}, fmt.Errorf("complete attempt: %w", err)
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CompletedAt.IsZero() {
		a.CompletedAt = s.now()
	}

	unlock := s.locks.Lock(a.UserID + "\x00" + a.DocumentID)
	rec, prev, err := s.commit(ctx, a)
	unlock()
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{AttemptID: a.ID, Record: rec}
	if prev != rec.Level {
		out.LevelChange = &LevelChange{DocumentID: a.DocumentID, From: prev, To: rec.Level}
	}

	st, err := s.recordDay(ctx, store.StudyDay{
		UserID:            a.UserID,
		Day:               streak.Day(a.CompletedAt),
		Minutes:           a.TimeTakenMinutes,
		QuestionsAnswered: a.QuestionsAnswered,
		CorrectAnswers:    a.CorrectAnswers,
		PointsEarned:      a.EarnedPoints,
	})
	if err != nil {
		// The attempt is committed. From here on errors are logged only.
		s.log.Warn("record study day failed", "user", a.UserID, "attempt", a.ID, "error", err)
		st, err = s.Streak(ctx, a.UserID)
		if err != nil {
			s.log.Warn("load streak failed", "user", a.UserID, "error", err)
		}
	}
	out.Streak = st
	out.NextMilestone = streak.NextMilestone(st.CurrentStreak)
	out.Milestone = streak.IsMilestone(st.CurrentStreak)

	s.log.Info("attempt completed",
		"user", a.UserID,
		"document", a.DocumentID,
		"attempt", a.ID,
		"score", a.Score,
		"level", rec.Level,
		"streak", st.CurrentStreak,
	)
	return out, nil
}

// commit runs the read-fold-write cycle, reloading on version conflicts.
// It returns the stored record and the level before the attempt.
func (s *Service) commit(ctx context.Context, a AttemptSummary) (PerformanceRecord, Level, error) {
	for try := 0; ; try++ {
		existing, err := s.attempts.Performance(ctx, a.UserID, a.DocumentID)
		if err != nil {
			return PerformanceRecord{}, "", fmt.Errorf("load performance record: %w", err)
		}

		var (
			current *PerformanceRecord
			prev    Level
			version int64
		)
		if existing != nil {
			r := fromPerformanceData(*existing)
			current, prev, version = &r, r.Level, r.Version
		}

		rec := RecordAttempt(current, a)
		err = s.attempts.CommitAttempt(ctx, toAttemptRecord(a), toPerformanceData(rec), version)
		if err == nil {
			return rec, prev, nil
		}
		if !errors.Is(err, store.ErrVersionConflict) || try >= s.maxRetries {
			return PerformanceRecord{}, "", fmt.Errorf("commit attempt: %w", err)
		}
		s.log.Debug("performance record changed, retrying",
			"user", a.UserID, "document", a.DocumentID, "try", try+1)
	}
}

// RecordActivity marks date as a study day for the user and returns the
// streak as of the service clock.
func (s *Service) RecordActivity(ctx context.Context, userID string, date time.Time) (streak.State, error) {
	if userID == "" {
		return streak.State{}, errors.New("record activity: no user")
	}
	return s.recordDay(ctx, store.StudyDay{UserID: userID, Day: streak.Day(date)})
}

func (s *Service) recordDay(ctx context.Context, d store.StudyDay) (streak.State, error) {
	unlock := s.locks.Lock(d.UserID)
	defer unlock()

	if err := s.activity.RecordStudyDay(ctx, d); err != nil {
		return streak.State{}, err
	}
	days, err := s.activity.StudyDays(ctx, d.UserID)
	if err != nil {
		return streak.State{}, err
	}
	return streak.NewHistory(studyDays(days)...).State(s.now()), nil
}

// Performance returns every record of the user, ordered by document.
func (s *Service) Performance(ctx context.Context, userID string) ([]PerformanceRecord, error) {
	data, err := s.attempts.PerformanceByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]PerformanceRecord, len(data))
	for i, d := range data {
		out[i] = fromPerformanceData(d)
	}
	return out, nil
}

// RecentAttempts returns up to limit of the user's attempts, newest first.
// An empty documentID matches every document.
func (s *Service) RecentAttempts(ctx context.Context, userID, documentID string, limit int) ([]AttemptSummary, error) {
	return s.loadAttempts(ctx, userID, documentID, store.QueryOpts{Limit: limit})
}

func (s *Service) loadAttempts(ctx context.Context, userID, documentID string, opts store.QueryOpts) ([]AttemptSummary, error) {
	recs, err := s.attempts.Attempts(ctx, userID, documentID, opts)
	if err != nil {
		return nil, err
	}
	out := make([]AttemptSummary, len(recs))
	for i, r := range recs {
		out[i] = fromAttemptRecord(r)
	}
	return out, nil
}

// Streak returns the user's streak as of the service clock.
func (s *Service) Streak(ctx context.Context, userID string) (streak.State, error) {
	days, err := s.activity.StudyDays(ctx, userID)
	if err != nil {
		return streak.State{}, err
	}
	return streak.Compute(studyDays(days), s.now()), nil
}

// StudyPatterns summarizes the user's study days as of the service clock.
func (s *Service) StudyPatterns(ctx context.Context, userID string) (Patterns, error) {
	days, err := s.activity.StudyDays(ctx, userID)
	if err != nil {
		return Patterns{}, err
	}
	return StudyPatterns(fromStudyDays(days), s.now()), nil
}

// PerformanceOverTime returns the user's daily average scores for the last
// days days and today.
func (s *Service) PerformanceOverTime(ctx context.Context, userID string, days int) ([]DailyScore, error) {
	now := s.now()
	from := streak.Day(now).AddDate(0, 0, -max(days, 0)-1)
	attempts, err := s.loadAttempts(ctx, userID, "", store.QueryOpts{From: from})
	if err != nil {
		return nil, err
	}
	return PerformanceOverTime(attempts, now, days), nil
}

// Suggestions returns study recommendations for the user. kinds are the
// per-kind results to judge, typically from the attempt just finished; nil
// skips the question-kind advice.
func (s *Service) Suggestions(ctx context.Context, userID string, kinds []KindStats) ([]Suggestion, error) {
	now := s.now()
	attempts, err := s.loadAttempts(ctx, userID, "", store.QueryOpts{From: now.AddDate(0, 0, -SuggestionWindowDays)})
	if err != nil {
		return nil, err
	}
	p, err := s.StudyPatterns(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Suggestions(attempts, kinds, p, now), nil
}

// Reset deletes every attempt, record and study day of the user and returns
// the number of rows removed.
func (s *Service) Reset(ctx context.Context, userID string) (int64, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	n, err := s.attempts.DeleteUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("reset attempts: %w", err)
	}
	m, err := s.activity.DeleteUser(ctx, userID)
	if err != nil {
		return n, fmt.Errorf("reset study days: %w", err)
	}
	s.log.Info("user reset", "user", userID, "rows", n+m)
	return n + m, nil
}

// keyedMutex hands out one mutex per key and forgets keys nobody holds.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

// Lock acquires the mutex for key and returns its release func.
func (k *keyedMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*refMutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
