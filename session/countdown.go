package session

import (
	"context"
	"time"
)

// startTimerLocked cancels any previous countdown and starts a new one
func (c *Controller) startTimerLocked() {
	c.stopTimerLocked()

	ctx, cancel := context.WithCancel(context.Background())
	c.cancelTimer = cancel
	c.timer = TimerRunning
	go c.countdown(ctx, c.timerGen, c.tickInterval)
}

// stopTimerLocked invalidates the running countdown. Bumping the generation
// under the lock guarantees that a tick already waiting for the lock is
// dropped, so nothing from the old countdown is observed after this returns.
func (c *Controller) stopTimerLocked() {
	if c.cancelTimer != nil {
		c.cancelTimer()
		c.cancelTimer = nil
	}
	c.timerGen++
	if c.timer == TimerRunning {
		c.timer = TimerStopped
	}
}

func (c *Controller) countdown(ctx context.Context, gen uint64, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !c.tick(gen) {
				return
			}
		}
	}
}

// tick applies one countdown step and reports whether the countdown goes on
func (c *Controller) tick(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.timerGen || c.submitted {
		return false
	}

	c.remaining--
	if c.remaining < 0 {
		c.remaining = 0
	}
	if c.events != nil {
		c.events.OnTick(c.remaining)
	}
	if c.remaining > 0 {
		return true
	}

	c.submitLocked(true)
	if c.events != nil {
		c.events.OnExpire(c.snapshotLocked())
	}
	return false
}
