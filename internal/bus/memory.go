package bus

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/lectern/internal/common/clock"
	"github.com/KirkDiggler/lectern/internal/models"
)

// MemoryConfig holds configuration for the in-process bus
type MemoryConfig struct {
	Clock clock.Clock
}

// MemoryBus delivers events within a single process. Delivery is synchronous
// and serialized per session, so handlers should hand events off quickly.
type MemoryBus struct {
	clock clock.Clock

	mu     sync.Mutex
	topics map[string]*topic
}

type topic struct {
	mu          sync.Mutex
	seq         int64
	nextID      int
	subscribers map[int]*subscriber
	expiry      clock.Timer
}

type subscriber struct {
	mu      sync.Mutex
	closed  bool
	handler Handler
}

// deliver calls the handler unless the subscriber was closed
func (s *subscriber) deliver(event *models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.handler(event)
}

func (s *subscriber) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// NewMemory creates a new in-process bus
func NewMemory(cfg *MemoryConfig) (*MemoryBus, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	return &MemoryBus{
		clock:  cfg.Clock,
		topics: make(map[string]*topic),
	}, nil
}

func (b *MemoryBus) topic(code string) *topic {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.topics[code]
	if !ok {
		t = &topic{subscribers: make(map[int]*subscriber)}
		b.topics[code] = t
	}
	return t
}

// Publish sequences the event and hands it to every current subscriber
func (b *MemoryBus) Publish(ctx context.Context, input *PublishInput) (*PublishOutput, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	t := b.topic(input.Code)
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	input.Event.Seq = t.seq

	ids := make([]int, 0, len(t.subscribers))
	for id, sub := range t.subscribers {
		sub.mu.Lock()
		closed := sub.closed
		sub.mu.Unlock()
		if closed {
			delete(t.subscribers, id)
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		// Each subscriber gets its own copy so handlers cannot interfere
		event := *input.Event
		t.subscribers[id].deliver(&event)
	}

	return &PublishOutput{
		Seq: t.seq,
	}, nil
}

// Subscribe registers the handler for every later publish
func (b *MemoryBus) Subscribe(ctx context.Context, input *SubscribeInput) (func(), error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	t := b.topic(input.Code)
	t.mu.Lock()
	defer t.mu.Unlock()

	sub := &subscriber{handler: input.Handler}
	id := t.nextID
	t.nextID++
	t.subscribers[id] = sub

	return sub.close, nil
}

// LastSeq reads the session's sequence under the publish lock
func (b *MemoryBus) LastSeq(ctx context.Context, code string) (int64, error) {
	t := b.topic(code)
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.seq, nil
}

// Expire forgets the session's sequence once ttl has passed
func (b *MemoryBus) Expire(ctx context.Context, code string, ttl time.Duration) error {
	t := b.topic(code)
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.expiry != nil {
		t.expiry.Stop()
	}
	t.expiry = b.clock.AfterFunc(ttl, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.topics[code] == t {
			delete(b.topics, code)
		}
	})

	return nil
}
