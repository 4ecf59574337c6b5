// Package quizgen synthesizes quiz questions from plain document text.
// Generation is local and rule-based: sentences are segmented, key terms
// extracted, and one of four question synthesizers is drawn per question
// from a difficulty-dependent distribution.
package quizgen

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/docquiz/internal/logger"
	"github.com/abhisek/docquiz/internal/textseg"
)

// Generator produces quizzes from document text. It holds no mutable
// state and is safe for concurrent use as long as each call gets its
// own Rand.
type Generator struct {
	cfg Config
	log *logger.Logger
}

// New returns a Generator. A nil logger discards output.
func New(cfg Config, log *logger.Logger) *Generator {
	return &Generator{cfg: cfg, log: logger.OrNop(log)}
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config { return g.cfg }

// NewRand returns a deterministic random source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate builds up to count questions from text at the given
// difficulty. Draws that cannot produce a question are retried; once more
// than MaxConsecutiveFailures draws in a row fail, the questions produced
// so far are returned. Use Quiz.Partial and Quiz.InsufficientContent to
// detect a shortfall. An error is returned only for invalid arguments.
func (g *Generator) Generate(rng Rand, text string, count int, difficulty Difficulty) (*Quiz, error) {
	if count < 1 || count > g.cfg.MaxQuestions {
		return nil, fmt.Errorf("question count %d out of range 1..%d", count, g.cfg.MaxQuestions)
	}
	dist, ok := g.cfg.Distributions[difficulty]
	if !ok {
		return nil, fmt.Errorf("unknown difficulty %q", difficulty)
	}

	pool := textseg.SplitSentences(text)
	quiz := &Quiz{Difficulty: difficulty, Requested: count, Questions: make([]Question, 0, count)}

	failures := 0
	for len(quiz.Questions) < count && failures <= g.cfg.MaxConsecutiveFailures {
		kind := ChooseKind(rng, dist)
		q, ok := Synthesize(rng, kind, pool)
		if !ok {
			failures++
			continue
		}
		if verr := runValidators(&q, g.cfg); verr != nil {
			if !verr.Retryable {
				g.log.Warn("question rejected permanently, stopping", "kind", kind, "validator", verr.Validator, "reason", verr.Message)
				break
			}
			g.log.Debug("question rejected", "kind", kind, "validator", verr.Validator, "reason", verr.Message)
			failures++
			continue
		}
		failures = 0
		quiz.Questions = append(quiz.Questions, q)
	}

	switch {
	case quiz.InsufficientContent():
		g.log.Warn("no questions generated", "requested", count, "sentences", len(pool))
	case quiz.Partial():
		g.log.Info("partial generation", "requested", count, "generated", len(quiz.Questions))
	default:
		g.log.Debug("quiz generated", "count", count, "difficulty", difficulty)
	}
	return quiz, nil
}
