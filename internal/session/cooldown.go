package session

import (
	"sync"
	"time"
)

// CooldownSeconds is the fixed lockout applied after a quota-exhaustion
// failure. The free Gemini tier recovers within about two minutes.
const CooldownSeconds = 120

// Cooldown is a countdown gate on the convert action. A single goroutine
// decrements the counter once per tick; readers check Active before allowing
// a new conversion. Not persisted across restarts.
type Cooldown struct {
	mu        sync.Mutex
	remaining int
	running   bool
	tick      time.Duration
}

// NewCooldown creates an inactive cooldown ticking once per second.
func NewCooldown() *Cooldown {
	return &Cooldown{tick: time.Second}
}

// newCooldownWithTick is used by tests to run the countdown faster.
func newCooldownWithTick(tick time.Duration) *Cooldown {
	return &Cooldown{tick: tick}
}

// Arm starts (or restarts) the countdown at the given number of seconds.
// Only one decrementing goroutine ever runs.
func (c *Cooldown) Arm(seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remaining = seconds
	if c.running || seconds <= 0 {
		return
	}
	c.running = true
	go c.countdown()
}

func (c *Cooldown) countdown() {
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()
	for range ticker.C {
		c.mu.Lock()
		c.remaining--
		if c.remaining <= 0 {
			c.remaining = 0
			c.running = false
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
	}
}

// Remaining reports the seconds left until the gate clears.
func (c *Cooldown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Active reports whether the gate currently refuses conversions.
func (c *Cooldown) Active() bool {
	return c.Remaining() > 0
}
