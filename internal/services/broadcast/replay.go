package broadcast

import (
	"sync"

	"github.com/KirkDiggler/lectern/internal/bus"
	"github.com/KirkDiggler/lectern/internal/models"
)

// replayGate holds live events back until the snapshot has been handed
// over, then drops any event at or below the last one delivered
type replayGate struct {
	handler bus.Handler

	mu       sync.Mutex
	released bool
	floor    int64
	pending  []*models.Event
}

func (g *replayGate) deliver(event *models.Event) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.released {
		g.pending = append(g.pending, event)
		return
	}
	g.forward(event)
}

// forward passes the event on if it is newer than the floor. Callers hold mu.
func (g *replayGate) forward(event *models.Event) {
	if event.Seq <= g.floor {
		return
	}
	g.floor = event.Seq
	g.handler(event)
}

func (g *replayGate) open(snapshot *models.Event) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.handler(snapshot)
	g.floor = snapshot.Seq
	for _, event := range g.pending {
		g.forward(event)
	}
	g.pending = nil
	g.released = true
}
