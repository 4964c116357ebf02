package follower

import (
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/lectern/internal/common/clock"
	"github.com/KirkDiggler/lectern/internal/common/clock/mocks"
	"go.uber.org/mock/gomock"
)

// timeline drives a MockClock by hand: AfterFunc callbacks run when
// advance moves past their deadline
type timeline struct {
	mu      sync.Mutex
	now     time.Time
	pending []*pendingTimer
}

type pendingTimer struct {
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func (t *pendingTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func newTimeline(ctrl *gomock.Controller, start time.Time) (*timeline, *mocks.MockClock) {
	tl := &timeline{now: start}
	clk := mocks.NewMockClock(ctrl)
	clk.EXPECT().Now().DoAndReturn(tl.Now).AnyTimes()
	clk.EXPECT().AfterFunc(gomock.Any(), gomock.Any()).DoAndReturn(tl.AfterFunc).AnyTimes()
	return tl, clk
}

func (tl *timeline) Now() time.Time {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.now
}

func (tl *timeline) AfterFunc(d time.Duration, f func()) clock.Timer {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	timer := &pendingTimer{at: tl.now.Add(d), f: f}
	tl.pending = append(tl.pending, timer)
	return timer
}

// advance fires due timers in deadline order, including timers they schedule
func (tl *timeline) advance(d time.Duration) {
	tl.mu.Lock()
	target := tl.now.Add(d)
	tl.mu.Unlock()

	for {
		tl.mu.Lock()
		sort.SliceStable(tl.pending, func(i, j int) bool {
			return tl.pending[i].at.Before(tl.pending[j].at)
		})
		var next *pendingTimer
		for _, timer := range tl.pending {
			if !timer.stopped && !timer.fired && !timer.at.After(target) {
				next = timer
				break
			}
		}
		if next == nil {
			tl.now = target
			tl.mu.Unlock()
			return
		}
		next.fired = true
		tl.now = next.at
		tl.mu.Unlock()

		next.f()
	}
}

// active counts timers that have neither fired nor been stopped
func (tl *timeline) active() int {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	n := 0
	for _, timer := range tl.pending {
		if !timer.stopped && !timer.fired {
			n++
		}
	}
	return n
}
