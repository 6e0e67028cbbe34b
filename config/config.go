// Package config assembles server settings from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"

	"github.com/CammyCodes/Remik/game"
)

type Config struct {
	Port       int    `env:"PORT,default=8000"`
	LogLevel   string `env:"LOG_LEVEL,default=info"`
	HistoryDSN string `env:"HISTORY_DB,default=./data/remik.db"`

	Jokers           int  `env:"GAME_JOKERS,default=4"`
	HandSize         int  `env:"GAME_HAND_SIZE,default=13"`
	OpeningPoints    int  `env:"GAME_OPENING_POINTS,default=51"`
	EliminationScore int  `env:"GAME_ELIMINATION_SCORE,default=501"`
	SkipOpeningGate  bool `env:"GAME_SKIP_OPENING_GATE,default=false"`
}

// Load reads .env if present, then decodes the environment
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := envdecode.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	return c, nil
}

// Addr is the listen address for the HTTP server
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Game maps the environment settings onto the game's own config
func (c Config) Game() game.Config {
	return game.Config{
		Jokers:           c.Jokers,
		HandSize:         c.HandSize,
		StarterHandSize:  c.HandSize + 1,
		OpeningPoints:    c.OpeningPoints,
		EliminationScore: c.EliminationScore,
		SkipOpeningGate:  c.SkipOpeningGate,
	}
}
