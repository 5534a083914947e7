package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"footdle/internal/puzzle"
)

type contextKey string

// WordList is the on-disk format of data/words.json.
type WordList struct {
	Words []string `json:"words"`
}

// App holds everything the HTTP layer needs. Puzzle state lives entirely in
// the Service and the tokens clients send back; the only mutable field is
// the rate limiter map.
type App struct {
	Puzzles        *puzzle.Service
	IsProduction   bool
	StartTime      time.Time
	PuzzleCacheAge time.Duration
	RateLimitRPS   int
	RateLimitBurst int
	LimiterMap     map[string]*rate.Limiter
	LimiterMutex   sync.Mutex
}

// newApp builds the App for cfg over an already loaded word list.
func newApp(cfg *Config, words []string, now func() time.Time) (*App, error) {
	svc, err := puzzle.NewService(words, puzzle.Config{
		Seed:  []byte(cfg.seed),
		Epoch: cfg.epochTime,
		Now:   now,
	})
	if err != nil {
		return nil, err
	}
	return &App{
		Puzzles:        svc,
		IsProduction:   cfg.production,
		StartTime:      time.Now(),
		PuzzleCacheAge: cfg.puzzleCacheAge,
		RateLimitRPS:   cfg.rateLimitRPS,
		RateLimitBurst: cfg.rateLimitBurst,
		LimiterMap:     make(map[string]*rate.Limiter),
	}, nil
}

func envName(production bool) string {
	return map[bool]string{true: "production", false: "development"}[production]
}
