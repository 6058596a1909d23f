package ratelimit

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// GeminiBudget caps how many Gemini requests a run may spend. Counters
// reset daily so a long-lived process keeps working day to day.
type GeminiBudget struct {
	mu        sync.Mutex
	count     int
	max       int // 0 = unlimited
	resetTime time.Time
}

func NewGeminiBudget(max int) *GeminiBudget {
	return &GeminiBudget{
		max:       max,
		resetTime: time.Now().Add(24 * time.Hour),
	}
}

// CanUse reports whether another request fits the budget.
func (b *GeminiBudget) CanUse() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.checkReset()

	if b.max > 0 && b.count >= b.max {
		log.Printf("Gemini budget reached (%d/%d)", b.count, b.max)
		return false
	}
	return true
}

// Use consumes one request from the budget.
func (b *GeminiBudget) Use() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.checkReset()

	if b.max > 0 && b.count >= b.max {
		return fmt.Errorf("gemini budget exceeded (%d/%d)", b.count, b.max)
	}

	b.count++
	log.Printf("Gemini usage: %d/%d", b.count, b.max)
	return nil
}

// GetStats returns current budget statistics.
func (b *GeminiBudget) GetStats() map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	return map[string]interface{}{
		"gemini_used":  b.count,
		"gemini_limit": b.max,
		"reset_time":   b.resetTime,
	}
}

func (b *GeminiBudget) checkReset() {
	if time.Now().After(b.resetTime) {
		log.Printf("Resetting Gemini budget (used %d/%d)", b.count, b.max)
		b.count = 0
		b.resetTime = time.Now().Add(24 * time.Hour)
	}
}
