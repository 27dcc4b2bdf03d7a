package app

import (
	"sync"
	"time"
)

// Countdown emits one tick per interval for the generation it was armed for.
// At most one countdown goroutine is running at any time.
type Countdown struct {
	interval time.Duration
	onTick   func(generation uint64)

	mu         sync.Mutex
	stop       chan struct{}
	generation uint64
}

// NewCountdown creates a disarmed countdown that calls onTick on every tick
func NewCountdown(interval time.Duration, onTick func(generation uint64)) *Countdown {
	return &Countdown{
		interval: interval,
		onTick:   onTick,
	}
}

// Arm starts ticking for generation, stopping any previous countdown first
func (c *Countdown) Arm(generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.disarmLocked()

	stop := make(chan struct{})
	c.stop = stop
	c.generation = generation

	go c.run(generation, stop)
}

// Disarm stops the countdown. Safe to call when not armed.
func (c *Countdown) Disarm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disarmLocked()
}

// Armed reports the armed generation, if any
func (c *Countdown) Armed() (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation, c.stop != nil
}

func (c *Countdown) disarmLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
		c.generation = 0
	}
}

// run delivers ticks until stop is closed
func (c *Countdown) run(generation uint64, stop <-chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// Disarm may have raced with the ticker
			select {
			case <-stop:
				return
			default:
			}
			c.onTick(generation)
		}
	}
}
