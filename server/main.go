// cmd/forum-server/main.go
package main

import (
	"net/http"
	"os"

	"github.com/parleyhq/parley/forum"
	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := forum.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	// All state is process memory; a restart starts from an empty board.
	store := forum.NewStore()

	handlers, err := forum.NewHandlers(store, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create forum handlers")
	}

	log.Info().Str("addr", cfg.Addr).Msg("starting forum server")
	svr := &http.Server{
		Addr:    cfg.Addr,
		Handler: handlers.Session.LoadAndSave(handlers.Router()),
	}
	if err := svr.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
