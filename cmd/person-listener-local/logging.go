package main

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

func withLogging(h http.Handler, log *zerolog.Logger) http.Handler {
	logFn := func(rw http.ResponseWriter, r *http.Request) {
		start := time.Now()

		uri := r.RequestURI
		method := r.Method
		h.ServeHTTP(rw, r)

		log.Info().
			Str("uri", uri).
			Str("method", method).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
	return http.HandlerFunc(logFn)
}
