package types

import "footdle/internal/puzzle"

type PuzzleResponse struct {
	PuzzleID string `json:"puzzleId"`
	Length   int    `json:"length"`
}

type GuessRequest struct {
	Guess         string  `json:"guess"`
	PuzzleID      string  `json:"puzzleId"`
	ProgressToken *string `json:"progressToken"`
}

type GuessResponse struct {
	Marks         []puzzle.Mark `json:"marks"`
	Won           bool          `json:"won"`
	Length        int           `json:"length"`
	ProgressToken string        `json:"progressToken"`
	Answer        string        `json:"answer,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Env         string `json:"env"`
	WordsLoaded int    `json:"words_loaded"`
	Uptime      string `json:"uptime"`
	Timestamp   string `json:"timestamp"`
}
