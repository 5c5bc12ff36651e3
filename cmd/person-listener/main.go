package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"
)

func main() {
	handler, cleanup, err := live(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("failed to configure person listener")
		os.Exit(1)
	}
	defer cleanup()

	lambda.Start(handler)
}
