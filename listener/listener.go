package listener

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Listener is the entry point used by transports: it routes each envelope to its processor.
type Listener struct {
	registry *Registry
}

func NewListener(registry *Registry) *Listener {
	return &Listener{registry: registry}
}

// NewPersonListener builds a Listener with the person reconciliation processors registered.
func NewPersonListener(deps Dependencies) (*Listener, error) {
	registry, err := NewPersonRegistry(deps)
	if err != nil {
		return nil, err
	}

	return NewListener(registry), nil
}

// Handle processes the envelope and reports whether a processor ran. Ignored event types return false and no
// error.
func (l *Listener) Handle(ctx context.Context, envelope *EventEnvelope) (handled bool, err error) {
	if envelope == nil {
		return false, InvalidArgument("envelope")
	}

	ctx, span := tracer().Start(ctx, fmt.Sprintf("handle %s", envelope.EventType))
	defer span.End()
	defer func() { recordError(span, err) }()

	span.SetAttributes(envelopeAttributes(envelope)...)

	processor, err := l.registry.Dispatch(envelope)
	if err != nil {
		return false, err
	}

	log := zerolog.Ctx(ctx)
	if processor == nil {
		log.Info().Str("eventType", envelope.EventType.String()).Msg("ignoring event")
		return false, nil
	}

	if err := processor.ProcessMessage(ctx, envelope); err != nil {
		return false, err
	}

	return true, nil
}
