package main

// Route constants
const (
	RouteHealthz = "/healthz"
	RouteVersion = "/version"
	RouteAPI     = "/api"
	RoutePuzzle  = "/puzzle"
	RouteScore   = "/score"
)

// Error message constants
const (
	ErrorMissingFields  = "Missing guess or puzzleId"
	ErrorInvalidPuzzle  = "Invalid puzzle id"
	ErrorBadLength      = "Bad guess length"
	ErrorInvalidBody    = "Invalid request body"
	ErrorInternal       = "Internal error"
	ErrorTooManyRequest = "Too many requests. Please slow down."
)

// Header constants
const (
	HeaderRequestID = "X-Request-Id"
)

// Defaults
const (
	releaseVersion   = "0.4.0"
	defaultSeed      = "dev-seed-only-change-in-prod"
	defaultWordsPath = "data/words.json"
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)
