package client

import (
	"testing"

	"github.com/matryer/is"

	"footdle/internal/puzzle"
	"footdle/internal/types"
)

var (
	allCorrect = []puzzle.Mark{puzzle.MarkCorrect, puzzle.MarkCorrect, puzzle.MarkCorrect, puzzle.MarkCorrect, puzzle.MarkCorrect}
	allAbsent  = []puzzle.Mark{puzzle.MarkAbsent, puzzle.MarkAbsent, puzzle.MarkAbsent, puzzle.MarkAbsent, puzzle.MarkAbsent}
)

func newState() State {
	return Init(types.PuzzleResponse{PuzzleID: "2025-01-01", Length: 5})
}

func typeWord(s State, word string) State {
	for _, r := range word {
		s = s.TypeLetter(r)
	}
	return s
}

func TestInit(t *testing.T) {
	is := is.New(t)
	s := newState()
	is.Equal(s.PuzzleID, "2025-01-01")
	is.Equal(s.TargetLength, 5)
	is.Equal(len(s.Rows), puzzle.MaxAttempts)
	is.Equal(s.Attempt, 0)
	is.True(!s.Finished())
	is.Equal(s.Request("rouge").ProgressToken, nil)
}

func TestTypeLetterStopsAtTargetLength(t *testing.T) {
	is := is.New(t)
	s := typeWord(newState(), "ROUGEXYZ")
	is.Equal(s.Current(), "rouge")
}

func TestTypeLetterIgnoresNonLetters(t *testing.T) {
	is := is.New(t)
	s := typeWord(newState(), "r1o-u g")
	is.Equal(s.Current(), "roug")

	s = typeWord(newState(), "Pelé")
	is.Equal(s.Current(), "pelé")
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	is := is.New(t)
	before := typeWord(newState(), "rou")
	after := before.TypeLetter('g')
	is.Equal(before.Current(), "rou")
	is.Equal(after.Current(), "roug")

	back := after.Backspace()
	is.Equal(after.Current(), "roug")
	is.Equal(back.Current(), "rou")
}

func TestBackspace(t *testing.T) {
	is := is.New(t)
	s := typeWord(newState(), "pé")
	s = s.Backspace()
	is.Equal(s.Current(), "p")
	s = s.Backspace().Backspace()
	is.Equal(s.Current(), "")
}

func TestPendingGuess(t *testing.T) {
	is := is.New(t)
	_, err := typeWord(newState(), "rou").PendingGuess()
	is.Equal(err, ErrNotEnoughLetters)

	guess, err := typeWord(newState(), "rouge").PendingGuess()
	is.NoErr(err)
	is.Equal(guess, "rouge")
}

func TestApplyResultWin(t *testing.T) {
	is := is.New(t)
	s := typeWord(newState(), "rouge")
	s = s.ApplyResult("rouge", types.GuessResponse{Marks: allCorrect, Won: true, Length: 5, ProgressToken: "1.sig"})

	is.True(s.Won)
	is.True(s.Finished())
	is.Equal(s.Attempt, 1)
	is.Equal(s.Token, "1.sig")
	is.Equal(s.Banner, "GOAL!")
	is.Equal(s.Letters['r'], puzzle.MarkCorrect)

	_, err := s.PendingGuess()
	is.Equal(err, ErrFinished)
	is.Equal(s.TypeLetter('a').Current(), s.Current())
}

func TestApplyResultLossRevealsAnswer(t *testing.T) {
	is := is.New(t)
	s := newState()
	for i := 1; i <= puzzle.MaxAttempts; i++ {
		s = typeWord(s, "sable")
		resp := types.GuessResponse{Marks: allAbsent, Length: 5, ProgressToken: "x"}
		if i == puzzle.MaxAttempts {
			resp.Answer = "ROUGE"
		}
		s = s.ApplyResult("sable", resp)
		if i < puzzle.MaxAttempts {
			is.True(!s.Lost)
		}
	}
	is.True(s.Lost)
	is.Equal(s.Answer, "ROUGE")
	is.Equal(s.Banner, "FULL TIME: ROUGE")

	// Further results are ignored.
	is.Equal(s.ApplyResult("rouge", types.GuessResponse{Marks: allCorrect, Won: true}).Won, false)
}

func TestRequestCarriesToken(t *testing.T) {
	is := is.New(t)
	s := newState().ApplyResult("sable", types.GuessResponse{Marks: allAbsent, ProgressToken: "1.abc"})
	req := s.Request("rouge")
	is.Equal(req.PuzzleID, "2025-01-01")
	is.Equal(*req.ProgressToken, "1.abc")
}

func TestKeyboardKeepsBestMark(t *testing.T) {
	is := is.New(t)
	s := newState()
	s = s.ApplyResult("arose", types.GuessResponse{Marks: []puzzle.Mark{
		puzzle.MarkPresent, puzzle.MarkAbsent, puzzle.MarkAbsent, puzzle.MarkAbsent, puzzle.MarkAbsent,
	}})
	is.Equal(s.Letters['a'], puzzle.MarkPresent)

	s = s.ApplyResult("alarm", types.GuessResponse{Marks: []puzzle.Mark{
		puzzle.MarkCorrect, puzzle.MarkAbsent, puzzle.MarkAbsent, puzzle.MarkAbsent, puzzle.MarkAbsent,
	}})
	is.Equal(s.Letters['a'], puzzle.MarkCorrect)

	s = s.ApplyResult("about", types.GuessResponse{Marks: allAbsent})
	is.Equal(s.Letters['a'], puzzle.MarkCorrect)
}

func TestKeyboardUsesNormalizedLetters(t *testing.T) {
	is := is.New(t)
	s := Init(types.PuzzleResponse{PuzzleID: "2025-01-01", Length: 4})
	s = s.ApplyResult("Pelé", types.GuessResponse{Marks: []puzzle.Mark{
		puzzle.MarkAbsent, puzzle.MarkAbsent, puzzle.MarkAbsent, puzzle.MarkPresent,
	}})
	is.Equal(s.Letters['e'], puzzle.MarkPresent)
	_, accented := s.Letters['é']
	is.True(!accented)
}

func TestMergeMark(t *testing.T) {
	is := is.New(t)
	is.Equal(MergeMark("", puzzle.MarkAbsent), puzzle.MarkAbsent)
	is.Equal(MergeMark(puzzle.MarkAbsent, puzzle.MarkPresent), puzzle.MarkPresent)
	is.Equal(MergeMark(puzzle.MarkCorrect, puzzle.MarkPresent), puzzle.MarkCorrect)
}

func TestReject(t *testing.T) {
	is := is.New(t)
	s := typeWord(newState(), "rouge").Reject("Bad guess length")
	is.Equal(s.Banner, "Bad guess length")
	is.Equal(s.Current(), "rouge")
	is.Equal(s.Attempt, 0)
}
