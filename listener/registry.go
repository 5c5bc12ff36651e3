package listener

import (
	"context"
	"fmt"
)

// MessageProcessor reconciles person records for a single entity event.
type MessageProcessor interface {
	ProcessMessage(ctx context.Context, envelope *EventEnvelope) error
}

type MessageProcessorFunction func(ctx context.Context, envelope *EventEnvelope) error

func (f MessageProcessorFunction) ProcessMessage(ctx context.Context, envelope *EventEnvelope) error {
	return f(ctx, envelope)
}

type ProcessorFactory func() MessageProcessor

// Registry maps event types to the processor that handles them. Processors are created on demand, so an
// ignored or unknown event never builds one.
type Registry struct {
	factories map[EventType]ProcessorFactory
	ignored   map[EventType]bool
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[EventType]ProcessorFactory),
		ignored:   make(map[EventType]bool),
	}
}

func (r *Registry) Register(eventType EventType, factory ProcessorFactory) *Registry {
	if r.factories[eventType] != nil || r.ignored[eventType] {
		panic(fmt.Sprintf("multiple registrations for event type %s", eventType))
	}

	r.factories[eventType] = factory

	return r
}

func (r *Registry) Ignore(eventTypes ...EventType) *Registry {
	for _, eventType := range eventTypes {
		if r.factories[eventType] != nil {
			panic(fmt.Sprintf("event type %s is both registered and ignored", eventType))
		}
		r.ignored[eventType] = true
	}

	return r
}

// Dispatch selects the processor for the envelope. Ignored event types return a nil processor and no error.
func (r *Registry) Dispatch(envelope *EventEnvelope) (MessageProcessor, error) {
	if envelope == nil {
		return nil, InvalidArgument("envelope")
	}

	if r.ignored[envelope.EventType] {
		return nil, nil
	}

	factory := r.factories[envelope.EventType]
	if factory == nil {
		return nil, UnknownEventType(envelope.EventType)
	}

	return factory(), nil
}

// Dependencies are the gateways the reconciliation processors work against.
type Dependencies struct {
	Persons     PersonStore
	Tenures     TenureLookup
	Accounts    AccountLookup
	FanOutLimit int
}

func (d Dependencies) validate() error {
	if d.Persons == nil {
		return InvalidArgument("persons")
	}
	if d.Tenures == nil {
		return InvalidArgument("tenures")
	}
	if d.Accounts == nil {
		return InvalidArgument("accounts")
	}

	return nil
}

// NewPersonRegistry registers the person reconciliation processors and ignores tenure creation, which carries
// no household member changes.
func NewPersonRegistry(deps Dependencies) (*Registry, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	registry := NewRegistry().
		Register(PersonAddedToTenureEvent, func() MessageProcessor {
			return NewPersonAddedToTenure(deps.Persons, deps.Tenures)
		}).
		Register(PersonRemovedFromTenureEvent, func() MessageProcessor {
			return NewPersonRemovedFromTenure(deps.Persons, deps.Tenures, deps.FanOutLimit)
		}).
		Register(TenureUpdatedEvent, func() MessageProcessor {
			return NewTenureUpdated(deps.Persons, deps.Tenures, deps.FanOutLimit)
		}).
		Register(AccountCreatedEvent, func() MessageProcessor {
			return NewAccountCreated(deps.Persons, deps.Tenures, deps.Accounts, deps.FanOutLimit)
		}).
		Ignore(TenureCreatedEvent)

	return registry, nil
}
