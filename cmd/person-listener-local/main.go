package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/weegigs/person-listener-go/support"
)

func run() error {
	// a missing .env is fine; the environment alone may be enough
	_ = godotenv.Load()

	ctx := context.Background()
	settings, err := support.LoadSettings()
	if err != nil {
		return err
	}

	_, shutdown, err := support.TracerProvider(ctx, settings)
	if err != nil {
		return err
	}
	defer shutdown()

	handler, cleanup, err := local(ctx, settings)
	if err != nil {
		return err
	}
	defer cleanup()

	log.Info().Str("address", settings.HTTPAddress).Msg("listening")
	return http.ListenAndServe(settings.HTTPAddress, handler)
}

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("person listener stopped")
		os.Exit(1)
	}
}
