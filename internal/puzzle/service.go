package puzzle

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrMissingFields = errors.New("missing guess or puzzle id")
	ErrWrongPuzzle   = errors.New("puzzle id is not today's puzzle")
	ErrBadLength     = errors.New("guess length does not match the answer")
	ErrInternal      = errors.New("internal scoring error")

	ErrEmptyWordList = errors.New("word list is empty")
	ErrEmptySeed     = errors.New("seed is empty")
)

// IsValidation reports whether err is a rejected-request error that should
// be returned to the caller rather than treated as a server fault.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrWrongPuzzle) ||
		errors.Is(err, ErrBadLength)
}

// Config is the process-wide puzzle configuration, fixed at startup.
type Config struct {
	Seed  []byte
	Epoch time.Time
	// Now defaults to time.Now.
	Now func() time.Time
}

// Puzzle is the public metadata for a day's puzzle. It never includes the answer.
type Puzzle struct {
	ID     string
	Length int
}

// Submission is one guess as sent by a client.
type Submission struct {
	Guess         string
	PuzzleID      string
	ProgressToken string
}

// GuessResult is the outcome of scoring one guess.
type GuessResult struct {
	Marks         []Mark
	Won           bool
	Length        int
	Count         int
	ProgressToken string
	// Answer is set only when the final attempt was lost.
	Answer string
}

// Service composes the indexer, normalizer, scorer and token codec over a
// fixed word list. It holds no mutable state and is safe for concurrent use.
type Service struct {
	words   []string
	indexer *Indexer
	codec   *Codec
	now     func() time.Time
}

func NewService(words []string, cfg Config) (*Service, error) {
	if len(words) == 0 {
		return nil, ErrEmptyWordList
	}
	if len(cfg.Seed) == 0 {
		return nil, ErrEmptySeed
	}
	epoch := cfg.Epoch
	if epoch.IsZero() {
		epoch = DefaultEpoch
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		words:   slices.Clone(words),
		indexer: NewIndexer(cfg.Seed, epoch),
		codec:   NewCodec(cfg.Seed),
		now:     now,
	}, nil
}

// WordCount returns the size of the word list.
func (s *Service) WordCount() int {
	return len(s.words)
}

func (s *Service) answerFor(day time.Time) string {
	return s.words[s.indexer.Index(day, len(s.words))]
}

// Today returns the metadata of the puzzle for the current UTC day.
func (s *Service) Today() Puzzle {
	now := s.now()
	return Puzzle{
		ID:     DateKey(now),
		Length: Length(Normalize(s.answerFor(now))),
	}
}

// Submit scores a guess against today's answer and advances the signed
// attempt counter. Guesses for any day other than today are rejected.
func (s *Service) Submit(ctx context.Context, sub Submission) (GuessResult, error) {
	logger := zerolog.Ctx(ctx)

	if sub.Guess == "" || sub.PuzzleID == "" {
		return GuessResult{}, ErrMissingFields
	}

	now := s.now()
	today := DateKey(now)
	if sub.PuzzleID != today {
		return GuessResult{}, fmt.Errorf("%w: got %q, today is %q", ErrWrongPuzzle, sub.PuzzleID, today)
	}

	prevCount := s.codec.Verify(today, sub.ProgressToken)
	if sub.ProgressToken != "" && prevCount == 0 {
		logger.Debug().Str("puzzle_id", today).Msg("progress token rejected, treating as no progress")
	}
	newCount := min(prevCount+1, MaxAttempts)

	answer := s.answerFor(now)
	answerNorm := Normalize(answer)
	guessNorm := Normalize(sub.Guess)

	if Length(guessNorm) != Length(answerNorm) {
		return GuessResult{}, fmt.Errorf("%w: got %d letters, want %d", ErrBadLength, Length(guessNorm), Length(answerNorm))
	}

	marks, err := Score(guessNorm, answerNorm)
	if err != nil {
		return GuessResult{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	won := guessNorm == answerNorm
	if won != AllCorrect(marks) {
		return GuessResult{}, fmt.Errorf("%w: win flag disagrees with marks for %q", ErrInternal, guessNorm)
	}

	result := GuessResult{
		Marks:         marks,
		Won:           won,
		Length:        Length(answerNorm),
		Count:         newCount,
		ProgressToken: s.codec.Issue(today, newCount),
	}
	if !won && newCount == MaxAttempts {
		result.Answer = Display(answer)
	}

	logger.Debug().
		Str("puzzle_id", today).
		Int("attempt", newCount).
		Bool("won", won).
		Msg("scored guess")

	return result, nil
}
