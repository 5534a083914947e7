package main

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestConfigValidate(t *testing.T) {
	is := is.New(t)

	cfg := testConfig()
	cfg.epoch = "2025-03-15"
	is.NoErr(cfg.validate())
	is.Equal(cfg.epochTime, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))
}

func TestConfigValidateRejects(t *testing.T) {
	cases := map[string]func(c *Config){
		"port zero":        func(c *Config) { c.port = 0 },
		"port too large":   func(c *Config) { c.port = 70000 },
		"empty seed":       func(c *Config) { c.seed = "" },
		"empty words path": func(c *Config) { c.wordsPath = "" },
		"bad epoch":        func(c *Config) { c.epoch = "01/01/2025" },
		"zero burst":       func(c *Config) { c.rateLimitRPS = 5; c.rateLimitBurst = 0 },
		"negative cache":   func(c *Config) { c.puzzleCacheAge = -time.Second },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			cfg := testConfig()
			mutate(cfg)
			is.True(cfg.validate() != nil)
		})
	}
}

func TestConfigReleaseModeEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("GIN_MODE", "release")

	cfg := testConfig()
	is.NoErr(cfg.validate())
	is.True(cfg.production)
}

func TestNewCmdDefaults(t *testing.T) {
	is := is.New(t)

	cfg := &Config{}
	cmd := newCmd(cfg)
	is.NoErr(cmd.ParseFlags(nil))

	is.Equal(cfg.port, 8080)
	is.Equal(cfg.seed, defaultSeed)
	is.Equal(cfg.epoch, "2025-01-01")
	is.Equal(cfg.wordsPath, defaultWordsPath)
	is.Equal(cfg.puzzleCacheAge, time.Minute)
	is.Equal(cfg.rateLimitRPS, 0)
}

func TestNewCmdFlags(t *testing.T) {
	is := is.New(t)

	cfg := &Config{}
	cmd := newCmd(cfg)
	is.NoErr(cmd.ParseFlags([]string{"--port", "9090", "--seed", "s3cret", "--rate_limit_rps", "3"}))

	is.Equal(cfg.port, 9090)
	is.Equal(cfg.seed, "s3cret")
	is.Equal(cfg.rateLimitRPS, 3)
}

func TestNewCmdEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("FOOTDLE_PORT", "7070")
	t.Setenv("FOOTDLE_PUZZLE_CACHE_AGE", "2m")

	cfg := &Config{}
	newCmd(cfg)

	is.Equal(cfg.port, 7070)
	is.Equal(cfg.puzzleCacheAge, 2*time.Minute)
}

func TestNewCmdSeedFromWordsSeed(t *testing.T) {
	is := is.New(t)
	t.Setenv("WORDS_SEED", "legacy-seed")

	cfg := &Config{}
	newCmd(cfg)
	is.Equal(cfg.seed, "legacy-seed")

	t.Setenv("FOOTDLE_SEED", "preferred-seed")
	cfg = &Config{}
	newCmd(cfg)
	is.Equal(cfg.seed, "preferred-seed")
}
