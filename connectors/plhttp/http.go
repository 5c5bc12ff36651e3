package plhttp

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/weegigs/person-listener-go/apis"
	"github.com/weegigs/person-listener-go/listener"
)

type HandlerOption func(service *httpService)

func Logger(log *zerolog.Logger) HandlerOption {
	return func(service *httpService) {
		service.log = log
	}
}

// NewHandler exposes the listener over HTTP: POST /events processes one entity event and
// GET /persons/{id} reads a person record back.
func NewHandler(l *listener.Listener, persons listener.PersonStore, options ...HandlerOption) http.Handler {
	service := &httpService{listener: l, persons: persons}
	for _, option := range options {
		option(service)
	}
	if service.log == nil {
		service.log = &log.Logger
	}

	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Method("POST", "/events", service.handleEvent())
	r.Method("GET", "/persons/{id}", service.getPerson())

	return otelhttp.NewHandler(r, "person-listener-http")
}

type httpService struct {
	log      *zerolog.Logger
	listener *listener.Listener
	persons  listener.PersonStore
}

type problem struct {
	Message string `json:"message"`
}

func (service *httpService) handleEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-type"))
		if mediaType != "application/json" || err != nil {
			http.Error(w, "unsupported content type", http.StatusUnsupportedMediaType)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		envelope, err := listener.DecodeEnvelope(r.Context(), body)
		if err != nil {
			service.log.Info().Err(err).Msg("failed to decode event")
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		log := service.log.With().
			Str("eventType", envelope.EventType.String()).
			Str("entityId", envelope.EntityID.String()).
			Str("correlationId", envelope.CorrelationID.String()).
			Logger()

		handled, err := service.listener.Handle(log.WithContext(r.Context()), envelope)
		if err != nil {
			status := StatusFor(err)
			log.Info().Err(err).Int("status", status).Msg("failed to process event")
			render.Status(r, status)
			render.JSON(w, r, problem{Message: err.Error()})
			return
		}

		if !handled {
			w.WriteHeader(http.StatusAccepted)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (service *httpService) getPerson() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid person id", http.StatusBadRequest)
			return
		}

		person, err := service.persons.GetPerson(r.Context(), id)
		if err != nil {
			service.log.Info().Err(err).Str("personId", id.String()).Msg("failed to load person")
			http.Error(w, "failed to load person", http.StatusInternalServerError)
			return
		}

		if person == nil {
			http.NotFound(w, r)
			return
		}

		render.JSON(w, r, person)
	}
}

// StatusFor maps a processing failure to the response status.
func StatusFor(err error) int {
	var (
		invalid     listener.InvalidArgumentError
		notFound    listener.NotFoundError
		notChanged  listener.HouseholdMembersNotChangedError
		missing     listener.PersonMissingTenureError
		unknownType listener.UnknownEventTypeError
		remote      *apis.ApiError
	)

	switch {
	case errors.As(err, &invalid), errors.As(err, &unknownType):
		return http.StatusBadRequest
	case errors.Is(err, listener.VersionConflict):
		return http.StatusConflict
	case errors.As(err, &notChanged), errors.As(err, &missing):
		return http.StatusUnprocessableEntity
	case errors.As(err, &remote):
		return http.StatusBadGateway
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
