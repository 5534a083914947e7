package puzzle

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"strconv"
	"time"
)

// DateKeyLayout is the layout of a puzzle ID.
const DateKeyLayout = "2006-01-02"

// DefaultEpoch is day 0 of the puzzle calendar.
var DefaultEpoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// DateKey returns the puzzle ID (YYYY-MM-DD) for the UTC day containing t.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD key as midnight UTC.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(DateKeyLayout, key, time.UTC)
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Indexer maps calendar days to word-list positions with a keyed hash, so
// future answers cannot be predicted without the seed.
type Indexer struct {
	seed  []byte
	epoch time.Time
}

// NewIndexer returns an Indexer counting days from the UTC day of epoch.
func NewIndexer(seed []byte, epoch time.Time) *Indexer {
	return &Indexer{
		seed:  bytes.Clone(seed),
		epoch: midnightUTC(epoch),
	}
}

// DaysSinceEpoch returns the number of whole UTC days between the epoch
// and date. Dates before the epoch collapse to day 0.
func (ix *Indexer) DaysSinceEpoch(date time.Time) int64 {
	days := (midnightUTC(date).Unix() - ix.epoch.Unix()) / int64(24*time.Hour/time.Second)
	return max(days, 0)
}

// Index returns the word-list position for date in a list of n words.
// It panics if n is not positive.
func (ix *Indexer) Index(date time.Time, n int) int {
	if n <= 0 {
		panic("puzzle: Index called with an empty word list")
	}
	mac := hmac.New(sha256.New, ix.seed)
	mac.Write([]byte(strconv.FormatInt(ix.DaysSinceEpoch(date), 10)))
	sum := mac.Sum(nil)
	return int(uint64(binary.BigEndian.Uint32(sum[:4])) % uint64(n))
}
