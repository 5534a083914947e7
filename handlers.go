package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"footdle/internal/puzzle"
	"footdle/internal/types"
)

// puzzleHandler returns today's puzzle id and answer length. The answer
// itself never leaves the server here.
func (app *App) puzzleHandler(c *gin.Context) {
	p := app.Puzzles.Today()
	c.JSON(http.StatusOK, types.PuzzleResponse{
		PuzzleID: p.ID,
		Length:   p.Length,
	})
}

// scoreHandler scores one guess for today's puzzle and returns the marks
// along with a freshly signed progress token.
func (app *App) scoreHandler(c *gin.Context) {
	ctx := c.Request.Context()
	logger := ctxLogger(ctx)

	var req types.GuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn().Err(err).Msg("Rejected malformed score request")
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: ErrorInvalidBody})
		return
	}

	res, err := app.Puzzles.Submit(ctx, puzzle.Submission{
		Guess:         req.Guess,
		PuzzleID:      req.PuzzleID,
		ProgressToken: lo.FromPtr(req.ProgressToken),
	})
	if err != nil {
		status, msg := errorResponse(err)
		if status == http.StatusInternalServerError {
			logger.Error().Err(err).Msg("Failed to score guess")
		} else {
			logger.Info().Err(err).Msg("Rejected guess")
		}
		c.JSON(status, types.ErrorResponse{Error: msg})
		return
	}

	if res.Answer != "" {
		logger.Info().Int("attempt", res.Count).Msg("Player lost, answer revealed")
	} else if res.Won {
		logger.Info().Int("attempt", res.Count).Msg("Player won")
	}

	c.JSON(http.StatusOK, types.GuessResponse{
		Marks:         res.Marks,
		Won:           res.Won,
		Length:        res.Length,
		ProgressToken: res.ProgressToken,
		Answer:        res.Answer,
	})
}

// errorResponse maps a Submit error to a status code and wire message.
func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, puzzle.ErrMissingFields):
		return http.StatusBadRequest, ErrorMissingFields
	case errors.Is(err, puzzle.ErrWrongPuzzle):
		return http.StatusBadRequest, ErrorInvalidPuzzle
	case errors.Is(err, puzzle.ErrBadLength):
		return http.StatusBadRequest, ErrorBadLength
	default:
		return http.StatusInternalServerError, ErrorInternal
	}
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	uptime := time.Since(app.StartTime)
	c.JSON(http.StatusOK, types.HealthResponse{
		Status:      "ok",
		Env:         envName(app.IsProduction),
		WordsLoaded: app.Puzzles.WordCount(),
		Uptime:      formatUptime(uptime),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}

func versionHandler(c *gin.Context) {
	c.String(http.StatusOK, "footdle v"+releaseVersion+"\n")
}
