package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/docquiz/internal/config"
	"github.com/abhisek/docquiz/internal/logger"
	"github.com/abhisek/docquiz/internal/quizgen"
	"github.com/abhisek/docquiz/internal/store"
)

// environment is what every command needs: the resolved config and a logger.
type environment struct {
	cfg *config.Config
	log *logger.Logger
}

// loadEnv reads .env, the config file and the environment, then applies
// the --log flag.
func loadEnv(cmd *cobra.Command) (*environment, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if mode, _ := cmd.Flags().GetString("log"); mode != "" {
		cfg.LogMode = mode
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, err
	}
	return &environment{cfg: cfg, log: log}, nil
}

func (e *environment) Close() {
	e.log.Sync()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file or DOCQUIZ_DB, then the default XDG path.
func (e *environment) resolveDBPath(cmd *cobra.Command) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	if p == "" {
		p = e.cfg.DBPath
	}
	if p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func (e *environment) openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := e.resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.log.Debug("store opened", "path", dbPath)
	return st, nil
}

// loadQuiz reads and validates a quiz file.
func loadQuiz(path string) (*quizgen.Quiz, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quiz: %w", err)
	}
	quiz, err := quizgen.DecodeQuiz(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return quiz, nil
}

// documentID names a document after its file: the base name without
// extensions, so notes.txt and notes.quiz.json both map to "notes".
func documentID(path string) string {
	name := filepath.Base(path)
	if i := strings.IndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	return name
}
