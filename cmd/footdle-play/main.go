// Command footdle-play plays the daily Footdle puzzle in a terminal
// against a running server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"time"

	"github.com/TwiN/go-color"
	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"footdle/internal/client"
	"footdle/internal/puzzle"
)

const keyboardRows = "qwertyuiop\nasdfghjkl\nzxcvbnm"

type player struct {
	api   *client.Client
	l     *readline.Instance
	out   io.Writer
	state client.State
}

func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func markColor(m puzzle.Mark) string {
	switch m {
	case puzzle.MarkCorrect:
		return color.Green
	case puzzle.MarkPresent:
		return color.Yellow
	case puzzle.MarkAbsent:
		return color.Gray
	}
	return color.Reset
}

// renderRow colours each letter of guess by its mark.
func renderRow(guess string, marks []puzzle.Mark) string {
	var b strings.Builder
	for i, r := range []rune(strings.ToUpper(guess)) {
		tile := " " + string(r) + " "
		if i < len(marks) {
			tile = color.Ize(markColor(marks[i]), tile)
		}
		b.WriteString(tile)
	}
	return b.String()
}

func renderKeyboard(letters map[rune]puzzle.Mark) string {
	var b strings.Builder
	for i, row := range strings.Split(keyboardRows, "\n") {
		b.WriteString(strings.Repeat(" ", i))
		for _, r := range row {
			key := strings.ToUpper(string(r))
			if m, ok := letters[r]; ok {
				key = color.Ize(markColor(m), key)
			}
			b.WriteString(key + " ")
		}
		b.WriteString("\n")
	}
	var extra []string
	for _, r := range keyboardLetters(letters) {
		if !strings.ContainsRune(keyboardRows, r) {
			extra = append(extra, color.Ize(markColor(letters[r]), strings.ToUpper(string(r))))
		}
	}
	if len(extra) > 0 {
		b.WriteString("other: " + strings.Join(extra, " ") + "\n")
	}
	return b.String()
}

func (p *player) render() {
	s := p.state
	fmt.Fprintf(p.out, "\nPuzzle %s (%d letters), attempt %d/%d\n",
		s.PuzzleID, s.TargetLength, min(s.Attempt+1, puzzle.MaxAttempts), puzzle.MaxAttempts)
	for i := 0; i < s.Attempt; i++ {
		fmt.Fprintln(p.out, renderRow(s.Rows[i], s.RowMarks[i]))
	}
	fmt.Fprintln(p.out)
	fmt.Fprint(p.out, renderKeyboard(s.Letters))
	if s.Banner != "" {
		fmt.Fprintln(p.out, color.Ize(color.Bold, s.Banner))
	}
}

func (p *player) newGame(ctx context.Context) error {
	pz, err := p.api.Puzzle(ctx)
	if err != nil {
		return err
	}
	p.state = client.Init(pz)
	p.render()
	return nil
}

// guess types line into the current row and submits it.
func (p *player) guess(ctx context.Context, line string) {
	if p.state.Finished() {
		fmt.Fprintln(p.out, "Match over. Type \"new\" to fetch today's puzzle again.")
		return
	}

	s := p.state
	for range []rune(s.Current()) {
		s = s.Backspace()
	}
	for _, r := range line {
		s = s.TypeLetter(r)
	}

	g, err := s.PendingGuess()
	if errors.Is(err, client.ErrNotEnoughLetters) {
		p.state = s.Reject("Not enough letters")
		p.render()
		return
	} else if err != nil {
		p.state = s.Reject(err.Error())
		p.render()
		return
	}

	resp, err := p.api.Score(ctx, s.Request(g))
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			p.state = s.Reject(apiErr.Message)
		} else {
			log.Error().Err(err).Msg("score request failed")
			p.state = s.Reject("Network error, try again")
		}
		p.render()
		return
	}
	p.state = s.ApplyResult(g, resp)
	p.render()
}

func (p *player) loop(ctx context.Context) error {
	defer p.l.Close()

	for {
		line, err := p.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if err == io.EOF {
			return nil
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "":
		case line == "exit" || line == "quit":
			return nil
		case line == "help":
			fmt.Fprintln(p.out, "Type a name to guess it. Commands: new, help, exit")
		case line == "new":
			if err := p.newGame(ctx); err != nil {
				return err
			}
		default:
			p.guess(ctx, line)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func newCmd() *cobra.Command {
	var (
		server  string
		timeout time.Duration
		verbose bool
	)

	cmd := &cobra.Command{
		Use:           "footdle-play",
		Short:         "Play today's Footdle in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

			l, err := readline.NewEx(&readline.Config{
				Prompt:              "\033[32mfootdle>\033[0m ",
				EOFPrompt:           "exit",
				InterruptPrompt:     "^C",
				HistorySearchFold:   true,
				FuncFilterInputRune: filterInput,
			})
			if err != nil {
				return err
			}

			p := &player{
				api: client.New(server, client.WithHTTPClient(newHTTPClient(timeout))),
				l:   l,
				out: l.Stdout(),
			}
			if err := p.newGame(cmd.Context()); err != nil {
				l.Close()
				return fmt.Errorf("fetching puzzle from %s: %w", server, err)
			}
			return p.loop(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&server, "server", "s", "http://localhost:8080", "base URL of the footdle server")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "HTTP request timeout")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")

	return cmd
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("")
		os.Exit(1)
	}
}

// keyboardLetters lists the letters the player has tried, best mark first.
func keyboardLetters(letters map[rune]puzzle.Mark) []rune {
	keys := make([]rune, 0, len(letters))
	for r := range letters {
		keys = append(keys, r)
	}
	slices.SortFunc(keys, func(a, b rune) int {
		if d := letters[b].Rank() - letters[a].Rank(); d != 0 {
			return d
		}
		return int(a - b)
	})
	return keys
}
