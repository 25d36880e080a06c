package session

import (
	"sync"
	"time"
)

// Debouncer delays typeahead execution per search slot. Each new trigger for
// a slot resets that slot's timer, so a burst of keystrokes produces exactly
// one search.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	timers   map[SearchSlot]*time.Timer
}

func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		timers:   make(map[SearchSlot]*time.Timer),
	}
}

// Trigger schedules fn for the slot after the debounce interval, replacing
// any pending schedule for the same slot.
func (d *Debouncer) Trigger(slot SearchSlot, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if timer, ok := d.timers[slot]; ok {
		timer.Stop()
	}
	d.timers[slot] = time.AfterFunc(d.interval, fn)
}

// Cancel drops any pending schedule for the slot.
func (d *Debouncer) Cancel(slot SearchSlot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if timer, ok := d.timers[slot]; ok {
		timer.Stop()
		delete(d.timers, slot)
	}
}

// Stop cancels every pending schedule. Used when a session closes.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for slot, timer := range d.timers {
		timer.Stop()
		delete(d.timers, slot)
	}
}
