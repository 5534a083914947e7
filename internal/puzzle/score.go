package puzzle

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// Mark is the feedback for a single guessed letter.
type Mark string

const (
	MarkCorrect Mark = "correct"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

// Rank orders marks for keyboard-state merging: correct > present > absent.
// The zero Mark ranks below all of them.
func (m Mark) Rank() int {
	switch m {
	case MarkCorrect:
		return 3
	case MarkPresent:
		return 2
	case MarkAbsent:
		return 1
	default:
		return 0
	}
}

// ErrLengthMismatch is returned by Score when the guess and answer differ in length.
var ErrLengthMismatch = errors.New("guess and answer must have the same length")

// Score compares a normalized guess to the normalized answer letter by
// letter. Exact matches are consumed before any letter is marked present,
// so a repeated letter is never credited more often than it occurs in the
// answer.
func Score(guess, answer string) ([]Mark, error) {
	g, a := []rune(guess), []rune(answer)
	if len(g) != len(a) {
		return nil, fmt.Errorf("%w (%d vs %d)", ErrLengthMismatch, len(g), len(a))
	}

	remaining := lo.CountValues(a)
	marks := make([]Mark, len(a))

	for i := range g {
		if g[i] == a[i] {
			marks[i] = MarkCorrect
			remaining[g[i]]--
		}
	}

	for i := range g {
		if marks[i] != "" {
			continue
		}
		if remaining[g[i]] > 0 {
			marks[i] = MarkPresent
			remaining[g[i]]--
		} else {
			marks[i] = MarkAbsent
		}
	}

	return marks, nil
}

// AllCorrect reports whether every mark in the row is correct.
func AllCorrect(marks []Mark) bool {
	return len(marks) > 0 && lo.EveryBy(marks, func(m Mark) bool { return m == MarkCorrect })
}
