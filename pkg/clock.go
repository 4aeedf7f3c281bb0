package pkg

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const clockInterval = time.Second

// Clock measures how long the local player has spent thinking. It only runs
// while it is the local player's turn.
type Clock struct {
	mu      sync.Mutex
	elapsed time.Duration
	paused  bool
	OnTick  func()
}

func NewClock() *Clock {
	return &Clock{paused: true}
}

func (cl *Clock) String() string {
	e := cl.Elapsed()
	return fmt.Sprintf("%d:%02d", int(e.Minutes()), int(e.Seconds())%60)
}

// Run advances the clock every interval until ctx is done.
func (cl *Clock) Run(ctx context.Context, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if cl.advance(interval) && cl.OnTick != nil {
				cl.OnTick()
			}
		}
	}
}

func (cl *Clock) advance(d time.Duration) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.paused {
		return false
	}
	cl.elapsed += d
	return true
}

func (cl *Clock) Elapsed() time.Duration {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.elapsed
}

func (cl *Clock) Resume() {
	cl.mu.Lock()
	cl.paused = false
	cl.mu.Unlock()
}

func (cl *Clock) Pause() {
	cl.mu.Lock()
	cl.paused = true
	cl.mu.Unlock()
}

func (cl *Clock) Reset() {
	cl.mu.Lock()
	cl.elapsed = 0
	cl.paused = true
	cl.mu.Unlock()
}
