package listener

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "person-listener"

func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

func envelopeAttributes(envelope *EventEnvelope) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("event.type", envelope.EventType.String()),
		attribute.String("event.entity_id", envelope.EntityID.String()),
		attribute.String("event.correlation_id", envelope.CorrelationID.String()),
	}
}

func recordError(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}
