// Package session tracks one learner working through a generated quiz:
// answers are graded as they arrive and the finished attempt is summarized
// for the mastery service.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/docquiz/internal/grading"
	"github.com/abhisek/docquiz/internal/mastery"
	"github.com/abhisek/docquiz/internal/quizgen"
)

// ErrFinished is returned when answering a session that has been finished.
var ErrFinished = errors.New("session already finished")

// Session is one attempt at a quiz. It is safe for concurrent use.
type Session struct {
	ID         string
	UserID     string
	DocumentID string
	Quiz       *quizgen.Quiz
	StartTime  time.Time

	grader *grading.Grader

	mu       sync.Mutex
	answers  map[int]string
	verdicts map[int]grading.Verdict
	summary  *mastery.AttemptSummary
}

// Option configures a Session.
type Option func(*Session)

// WithGrader grades answers with g instead of a default grader.
func WithGrader(g *grading.Grader) Option {
	return func(s *Session) { s.grader = g }
}

// WithID sets the attempt ID instead of a generated one.
func WithID(id string) Option {
	return func(s *Session) { s.ID = id }
}

// New starts a session on quiz for the given user and document at now.
func New(quiz *quizgen.Quiz, userID, documentID string, now time.Time, opts ...Option) *Session {
	s := &Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		DocumentID: documentID,
		Quiz:       quiz,
		StartTime:  now,
		answers:    make(map[int]string),
		verdicts:   make(map[int]grading.Verdict),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.grader == nil {
		s.grader = grading.New(grading.DefaultConfig())
	}
	return s
}

// Len returns the number of questions in the quiz.
func (s *Session) Len() int {
	return len(s.Quiz.Questions)
}

// Answer grades raw against question i (0-based). Answering a question again
// replaces the earlier verdict.
func (s *Session) Answer(i int, raw string) (grading.Verdict, error) {
	if i < 0 || i >= s.Len() {
		return grading.Verdict{}, fmt.Errorf("question %d out of range [0, %d)", i, s.Len())
	}
	v := s.grader.Grade(&s.Quiz.Questions[i], raw)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.summary != nil {
		return grading.Verdict{}, ErrFinished
	}
	s.answers[i] = raw
	s.verdicts[i] = v
	return v, nil
}

// Verdict returns the current verdict for question i, if answered.
func (s *Session) Verdict(i int) (grading.Verdict, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.verdicts[i]
	return v, ok
}

// Feedback returns the full feedback for question i, if answered.
func (s *Session) Feedback(i int) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.verdicts[i]
	if !ok {
		return nil, false
	}
	return grading.Feedback(&s.Quiz.Questions[i], s.answers[i], v), true
}

// Progress returns the running totals over the answered questions.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progressLocked()
}

func (s *Session) progressLocked() Progress {
	var p Progress
	for _, v := range s.verdicts {
		p.Record(v)
	}
	return p
}

// Results returns the graded result of each answered question in quiz
// order.
func (s *Session) Results() []mastery.QuestionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]mastery.QuestionResult, 0, len(s.verdicts))
	for i := range s.Quiz.Questions {
		v, ok := s.verdicts[i]
		if !ok {
			continue
		}
		out = append(out, mastery.QuestionResult{
			Kind:         s.Quiz.Questions[i].Kind,
			Correct:      v.IsCorrect,
			PointsEarned: v.PointsEarned,
			MaxPoints:    v.MaxPoints,
		})
	}
	return out
}

// Finish closes the session at now and returns the attempt to record.
// Unanswered questions earn nothing but still count toward the total.
// Later calls return the same summary.
func (s *Session) Finish(now time.Time) mastery.AttemptSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.summary != nil {
		return *s.summary
	}

	p := s.progressLocked()
	total := s.Quiz.TotalPoints()
	sum := mastery.AttemptSummary{
		ID:                s.ID,
		UserID:            s.UserID,
		DocumentID:        s.DocumentID,
		Score:             mastery.Score(p.PointsEarned, total),
		EarnedPoints:      p.PointsEarned,
		TotalPoints:       total,
		QuestionsAnswered: s.Len(),
		CorrectAnswers:    p.Correct,
		TimeTakenMinutes:  mastery.ElapsedMinutes(s.StartTime, now),
		CompletedAt:       now,
	}
	s.summary = &sum
	return sum
}

// Finished reports whether Finish has been called.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary != nil
}
