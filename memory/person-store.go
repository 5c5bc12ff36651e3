package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/weegigs/person-listener-go/listener"
)

type Clock func() time.Time

type PersonStoreOption func(*PersonStore)

func WithClock(clock Clock) PersonStoreOption {
	return func(store *PersonStore) {
		store.now = clock
	}
}

// PersonStore keeps person records in process. Saves are compare-and-swap on the version number.
type PersonStore struct {
	lk      sync.RWMutex
	persons map[uuid.UUID]*listener.Person
	now     Clock
}

func NewPersonStore(options ...PersonStoreOption) *PersonStore {
	store := &PersonStore{
		persons: make(map[uuid.UUID]*listener.Person),
		now:     time.Now,
	}

	for _, option := range options {
		option(store)
	}

	return store
}

func (s *PersonStore) GetPerson(_ context.Context, id uuid.UUID) (*listener.Person, error) {
	s.lk.RLock()
	defer s.lk.RUnlock()

	person, ok := s.persons[id]
	if !ok {
		return nil, nil
	}

	return person.Clone(), nil
}

func (s *PersonStore) SavePerson(_ context.Context, person *listener.Person, expectedVersion int) error {
	if person == nil {
		return listener.InvalidArgument("person")
	}

	s.lk.Lock()
	defer s.lk.Unlock()

	// a missing person is at version zero
	current := 0
	if stored, ok := s.persons[person.ID]; ok {
		current = stored.VersionNumber
	}

	if current != expectedVersion {
		return listener.VersionConflict
	}

	person.VersionNumber = expectedVersion + 1
	person.LastModified = s.now().UTC()
	s.persons[person.ID] = person.Clone()

	return nil
}
