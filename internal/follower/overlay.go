package follower

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/lectern/internal/common/clock"
	"github.com/KirkDiggler/lectern/internal/common/uuid"
	"github.com/KirkDiggler/lectern/internal/models"
)

const (
	// ReactionLifetime is how long a floating reaction stays on screen
	ReactionLifetime = 3000 * time.Millisecond

	// CountResetInterval is how often the per-emoji counters go back to zero
	CountResetInterval = 10000 * time.Millisecond
)

// FloatingReaction is one rendered instance of a reaction
type FloatingReaction struct {
	InstanceID string
	Reaction   *models.Reaction
	CreatedAt  time.Time
}

// OverlayConfig holds configuration for an Overlay
type OverlayConfig struct {
	// Lifetime and ResetInterval default to ReactionLifetime and CountResetInterval
	Lifetime      time.Duration
	ResetInterval time.Duration

	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// OnChange is called without locks held whenever the live set or counts change
	OnChange func()
}

// Overlay keeps the short-lived reactions floating over a slide. Nothing in
// it is persisted; every instance removes itself on its own timer.
type Overlay struct {
	lifetime      time.Duration
	resetInterval time.Duration
	clock         clock.Clock
	uuidGenerator uuid.UUID
	onChange      func()

	mu         sync.Mutex
	closed     bool
	live       map[string]*FloatingReaction
	timers     map[string]clock.Timer
	counts     map[models.Emoji]int
	seen       map[string]time.Time
	resetTimer clock.Timer
}

// NewOverlay creates an overlay and starts its counter reset timer
func NewOverlay(cfg *OverlayConfig) (*Overlay, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}
	if cfg.UUIDGenerator == nil {
		return nil, errors.New("uuid generator cannot be nil")
	}

	o := &Overlay{
		lifetime:      cfg.Lifetime,
		resetInterval: cfg.ResetInterval,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		onChange:      cfg.OnChange,
		live:          make(map[string]*FloatingReaction),
		timers:        make(map[string]clock.Timer),
		counts:        make(map[models.Emoji]int),
		seen:          make(map[string]time.Time),
	}
	if o.lifetime <= 0 {
		o.lifetime = ReactionLifetime
	}
	if o.resetInterval <= 0 {
		o.resetInterval = CountResetInterval
	}

	o.mu.Lock()
	o.resetTimer = o.clock.AfterFunc(o.resetInterval, o.resetCounts)
	o.mu.Unlock()

	return o, nil
}

// Add spawns one floating instance for the reaction and counts it. A
// reaction id that was already added, such as the echo of our own
// reaction, is ignored and Add returns false.
func (o *Overlay) Add(reaction *models.Reaction) bool {
	if reaction == nil {
		return false
	}

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return false
	}
	if reaction.ID != "" {
		if _, ok := o.seen[reaction.ID]; ok {
			o.mu.Unlock()
			return false
		}
		o.seen[reaction.ID] = o.clock.Now()
	}

	instance := &FloatingReaction{
		InstanceID: o.uuidGenerator.NewUUID(),
		Reaction:   reaction,
		CreatedAt:  o.clock.Now(),
	}
	o.live[instance.InstanceID] = instance
	o.counts[reaction.Emoji]++
	o.timers[instance.InstanceID] = o.clock.AfterFunc(o.lifetime, func() {
		o.remove(instance.InstanceID)
	})
	o.mu.Unlock()

	o.changed()
	return true
}

// remove drops one instance; later calls for the same id do nothing
func (o *Overlay) remove(instanceID string) {
	o.mu.Lock()
	if _, ok := o.live[instanceID]; !ok {
		o.mu.Unlock()
		return
	}
	delete(o.live, instanceID)
	delete(o.timers, instanceID)
	o.mu.Unlock()

	o.changed()
}

func (o *Overlay) resetCounts() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.counts = make(map[models.Emoji]int)

	// Echoes arrive well within one interval, so older ids can go
	cutoff := o.clock.Now().Add(-o.resetInterval)
	for id, at := range o.seen {
		if at.Before(cutoff) {
			delete(o.seen, id)
		}
	}

	o.resetTimer = o.clock.AfterFunc(o.resetInterval, o.resetCounts)
	o.mu.Unlock()

	o.changed()
}

// Live returns the floating instances, oldest first
func (o *Overlay) Live() []*FloatingReaction {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]*FloatingReaction, 0, len(o.live))
	for _, instance := range o.live {
		out = append(out, instance)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].InstanceID < out[j].InstanceID
	})
	return out
}

// Counts returns how often each emoji was received since the last reset
func (o *Overlay) Counts() map[models.Emoji]int {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make(map[models.Emoji]int, len(o.counts))
	for emoji, count := range o.counts {
		out[emoji] = count
	}
	return out
}

// Close stops every timer and clears the live set
func (o *Overlay) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	for id, timer := range o.timers {
		timer.Stop()
		delete(o.timers, id)
	}
	o.live = make(map[string]*FloatingReaction)
	if o.resetTimer != nil {
		o.resetTimer.Stop()
	}
	o.mu.Unlock()
}

func (o *Overlay) changed() {
	if o.onChange != nil {
		o.onChange()
	}
}
