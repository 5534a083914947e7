package client

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"footdle/internal/puzzle"
	"footdle/internal/types"
)

// ErrNotEnoughLetters is returned by PendingGuess when the current row is short.
var ErrNotEnoughLetters = errors.New("not enough letters")

// ErrFinished is returned by PendingGuess once the puzzle is won or lost.
var ErrFinished = errors.New("puzzle already finished")

// State is the player's view of one day's puzzle. Transitions return a new
// State and never modify the receiver.
type State struct {
	PuzzleID     string
	TargetLength int
	Rows         []string
	RowMarks     [][]puzzle.Mark
	// Letters holds the best mark seen for each normalized letter.
	Letters map[rune]puzzle.Mark
	Attempt int
	Token   string
	Won     bool
	Lost    bool
	Answer  string
	Banner  string
}

// Init starts a fresh game for p.
func Init(p types.PuzzleResponse) State {
	return State{
		PuzzleID:     p.PuzzleID,
		TargetLength: p.Length,
		Rows:         make([]string, puzzle.MaxAttempts),
		RowMarks:     make([][]puzzle.Mark, puzzle.MaxAttempts),
		Letters:      map[rune]puzzle.Mark{},
	}
}

func (s State) clone() State {
	s.Rows = slices.Clone(s.Rows)
	s.RowMarks = slices.Clone(s.RowMarks)
	s.Letters = maps.Clone(s.Letters)
	return s
}

// Finished reports whether the game is over.
func (s State) Finished() bool {
	return s.Won || s.Lost
}

// Current returns the row being typed.
func (s State) Current() string {
	if s.Attempt >= len(s.Rows) {
		return ""
	}
	return s.Rows[s.Attempt]
}

// TypeLetter appends r to the current row if it is a Latin letter and the
// row is not full.
func (s State) TypeLetter(r rune) State {
	if s.Finished() || s.Attempt >= len(s.Rows) || !unicode.In(r, unicode.Latin) {
		return s
	}
	row := s.Rows[s.Attempt]
	if utf8.RuneCountInString(row) >= s.TargetLength {
		return s
	}
	s = s.clone()
	s.Rows[s.Attempt] = row + string(unicode.ToLower(r))
	return s
}

// Backspace removes the last letter of the current row.
func (s State) Backspace() State {
	if s.Finished() || s.Attempt >= len(s.Rows) {
		return s
	}
	row := []rune(s.Rows[s.Attempt])
	if len(row) == 0 {
		return s
	}
	s = s.clone()
	s.Rows[s.Attempt] = string(row[:len(row)-1])
	return s
}

// PendingGuess returns the current row ready for submission.
func (s State) PendingGuess() (string, error) {
	if s.Finished() {
		return "", ErrFinished
	}
	guess := strings.TrimSpace(s.Current())
	if utf8.RuneCountInString(guess) < s.TargetLength {
		return "", ErrNotEnoughLetters
	}
	return guess, nil
}

// Request builds the score request for guess.
func (s State) Request(guess string) types.GuessRequest {
	req := types.GuessRequest{Guess: guess, PuzzleID: s.PuzzleID}
	if s.Token != "" {
		token := s.Token
		req.ProgressToken = &token
	}
	return req
}

// ApplyResult records the server's verdict on guess and moves to the next row.
func (s State) ApplyResult(guess string, resp types.GuessResponse) State {
	if s.Finished() || s.Attempt >= len(s.Rows) {
		return s
	}
	s = s.clone()
	s.Token = resp.ProgressToken
	s.Rows[s.Attempt] = guess
	s.RowMarks[s.Attempt] = slices.Clone(resp.Marks)

	norm := []rune(puzzle.Normalize(guess))
	for i, m := range resp.Marks {
		if i >= len(norm) {
			break
		}
		s.Letters[norm[i]] = MergeMark(s.Letters[norm[i]], m)
	}

	s.Attempt++
	s.Banner = ""
	switch {
	case resp.Won:
		s.Won = true
		s.Banner = "GOAL!"
	case s.Attempt >= puzzle.MaxAttempts:
		s.Lost = true
		s.Answer = resp.Answer
		if resp.Answer != "" {
			s.Banner = "FULL TIME: " + resp.Answer
		} else {
			s.Banner = "FULL TIME"
		}
	}
	return s
}

// Reject records a refused guess, keeping the row for editing.
func (s State) Reject(reason string) State {
	s.Banner = reason
	return s
}

// MergeMark keeps the more informative of two marks for a keyboard key.
func MergeMark(prev, next puzzle.Mark) puzzle.Mark {
	if next.Rank() > prev.Rank() {
		return next
	}
	return prev
}
