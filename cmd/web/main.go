package main

import (
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/CammyCodes/Remik/config"
	"github.com/CammyCodes/Remik/server"
	"github.com/CammyCodes/Remik/store"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load configuration")
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	history, err := store.NewSQLiteHistoryStore(cfg.HistoryDSN)
	if err != nil {
		logger.Fatal().Err(err).Str("dsn", cfg.HistoryDSN).Msg("could not open history store")
	}
	defer history.Close()

	s := server.NewServer(store.NewInMemoryGameStore(), history, cfg.Game(), logger)

	logger.Info().Str("addr", cfg.Addr()).Msg("listening")
	if err := http.ListenAndServe(cfg.Addr(), s); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
