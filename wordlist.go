package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"footdle/internal/puzzle"
)

// loadWordList reads the answer list from a JSON file of the form
// {"words": ["..."]}. Order matters: puzzle selection indexes into it.
func loadWordList(path string) ([]string, error) {
	logDebug("Loading words from %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}

	var wl WordList
	if err := json.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("parsing word list %s: %w", path, err)
	}

	words := cleanWordList(wl.Words)
	if len(words) == 0 {
		return nil, fmt.Errorf("word list %s has no usable words", path)
	}
	if skipped := len(wl.Words) - len(words); skipped > 0 {
		logWarn("Skipped %d of %d entries in %s", skipped, len(wl.Words), path)
	}
	return words, nil
}

// cleanWordList trims entries and drops blanks, entries with non-letters,
// and later duplicates (compared after normalization), keeping the order
// of the survivors.
func cleanWordList(raw []string) []string {
	trimmed := lo.Map(raw, func(w string, _ int) string {
		return strings.TrimSpace(w)
	})
	valid := lo.Filter(trimmed, func(w string, _ int) bool {
		norm := puzzle.Normalize(w)
		if norm == "" {
			logWarn("Skipping blank word")
			return false
		}
		if strings.ContainsFunc(norm, func(r rune) bool { return !unicode.IsLetter(r) }) {
			logWarn("Skipping word %q: contains non-letters", w)
			return false
		}
		return true
	})
	return lo.UniqBy(valid, puzzle.Normalize)
}
