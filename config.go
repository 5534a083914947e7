package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"footdle/internal/puzzle"
)

type Config struct {
	bind           string
	epoch          string
	port           int
	production     bool
	puzzleCacheAge time.Duration
	rateLimitBurst int
	rateLimitRPS   int
	seed           string
	verbose        bool
	version        bool
	wordsPath      string

	epochTime time.Time
}

// envAliases lists extra environment variables honoured for a flag, after
// the FOOTDLE_ prefixed one.
var envAliases = map[string][]string{
	"seed": {"FOOTDLE_SEED", "WORDS_SEED"},
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.seed == "" {
		return errors.New("--seed must not be empty")
	}
	if c.wordsPath == "" {
		return errors.New("--words must not be empty")
	}
	if c.rateLimitRPS > 0 && c.rateLimitBurst < 1 {
		return fmt.Errorf("invalid rate limit burst (must be at least 1 when rate limiting is enabled): %d", c.rateLimitBurst)
	}
	if c.puzzleCacheAge < 0 {
		return fmt.Errorf("invalid puzzle cache age: %v", c.puzzleCacheAge)
	}

	epoch, err := puzzle.ParseDateKey(c.epoch)
	if err != nil {
		return fmt.Errorf("invalid epoch %q (want YYYY-MM-DD): %w", c.epoch, err)
	}
	c.epochTime = epoch

	if os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production" {
		c.production = true
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("FOOTDLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "footdle",
		Short:         "Serves a daily guess-the-footballer puzzle without server-side sessions.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: FOOTDLE_BIND)")
	fs.StringVar(&cfg.epoch, "epoch", puzzle.DateKey(puzzle.DefaultEpoch), "first puzzle day, YYYY-MM-DD (env: FOOTDLE_EPOCH)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: FOOTDLE_PORT)")
	fs.BoolVar(&cfg.production, "production", false, "run in production mode (env: FOOTDLE_PRODUCTION, GIN_MODE=release)")
	fs.DurationVar(&cfg.puzzleCacheAge, "puzzle-cache-age", time.Minute, "max-age sent with puzzle metadata (env: FOOTDLE_PUZZLE_CACHE_AGE)")
	fs.IntVar(&cfg.rateLimitBurst, "rate-limit-burst", 10, "burst allowed per client IP (env: FOOTDLE_RATE_LIMIT_BURST)")
	fs.IntVar(&cfg.rateLimitRPS, "rate-limit-rps", 0, "guesses per second per client IP, 0 disables (env: FOOTDLE_RATE_LIMIT_RPS)")
	fs.StringVar(&cfg.seed, "seed", defaultSeed, "secret seed for puzzle selection and progress tokens (env: FOOTDLE_SEED, WORDS_SEED)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: FOOTDLE_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: FOOTDLE_VERSION)")
	fs.StringVarP(&cfg.wordsPath, "words", "w", defaultWordsPath, "path to the answer list (env: FOOTDLE_WORDS)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		if envs, ok := envAliases[f.Name]; ok {
			_ = v.BindEnv(append([]string{f.Name}, envs...)...)
		} else {
			_ = v.BindEnv(f.Name)
		}
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("footdle v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
