package plsqs

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/weegigs/person-listener-go/listener"
)

const tracerName = "person-listener/plsqs"

// Handler is the Lambda entry point for an SQS event source with ReportBatchItemFailures enabled.
type Handler = func(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error)

type HandlerOption func(*sqsHandler)

func Logger(log *zerolog.Logger) HandlerOption {
	return func(h *sqsHandler) {
		h.log = log
	}
}

// TracerProvider traces batches with provider instead of the global one. Providers that can flush are flushed
// after every batch, before the Lambda environment is frozen.
func TracerProvider(provider trace.TracerProvider) HandlerOption {
	return func(h *sqsHandler) {
		h.tracer = provider
	}
}

type flusher interface {
	ForceFlush(ctx context.Context) error
}

type sqsHandler struct {
	listener *listener.Listener
	log      *zerolog.Logger
	tracer   trace.TracerProvider
}

func NewHandler(l *listener.Listener, options ...HandlerOption) Handler {
	h := &sqsHandler{listener: l}
	for _, option := range options {
		option(h)
	}
	if h.log == nil {
		h.log = &log.Logger
	}
	if h.tracer == nil {
		h.tracer = otel.GetTracerProvider()
	}

	return h.handle
}

// handle processes each record independently. Failed records are reported back so only they are redelivered.
func (h *sqsHandler) handle(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	if f, ok := h.tracer.(flusher); ok {
		defer func() {
			if err := f.ForceFlush(ctx); err != nil {
				h.log.Warn().Err(err).Msg("failed to flush traces")
			}
		}()
	}

	ctx, span := h.tracer.Tracer(tracerName).Start(ctx, "sqs batch")
	defer span.End()
	span.SetAttributes(attribute.Int("messaging.batch.message_count", len(event.Records)))

	var response events.SQSEventResponse
	for _, record := range event.Records {
		if err := h.process(ctx, record); err != nil {
			response.BatchItemFailures = append(response.BatchItemFailures, events.SQSBatchItemFailure{
				ItemIdentifier: record.MessageId,
			})
		}
	}

	return response, nil
}

func (h *sqsHandler) process(ctx context.Context, record events.SQSMessage) error {
	log := h.log.With().Str("messageId", record.MessageId).Logger()

	envelope, err := decode(ctx, []byte(record.Body))
	if err != nil {
		log.Error().Err(err).Msg("failed to decode message")
		return err
	}

	log = log.With().
		Str("eventId", envelope.ID.String()).
		Str("eventType", envelope.EventType.String()).
		Str("entityId", envelope.EntityID.String()).
		Str("correlationId", envelope.CorrelationID.String()).
		Logger()
	ctx = log.WithContext(ctx)

	handled, err := h.listener.Handle(ctx, envelope)
	if err != nil {
		log.Error().Err(err).Msg("failed to process message")
		return err
	}

	log.Debug().Bool("handled", handled).Msg("message processed")
	return nil
}

type snsNotification struct {
	Type    string `json:"Type"`
	Message string `json:"Message"`
}

// decode reads the envelope from the record body, unwrapping it first when the queue is subscribed to SNS
// without raw message delivery.
func decode(ctx context.Context, body []byte) (*listener.EventEnvelope, error) {
	var notification snsNotification
	if err := json.UnmarshalContext(ctx, body, &notification); err == nil && notification.Type == "Notification" {
		body = []byte(notification.Message)
	}

	return listener.DecodeEnvelope(ctx, body)
}
