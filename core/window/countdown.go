package window

import (
	"fmt"
	"sync"
	"time"
)

// NowFunc returns the current time; tests swap it out.
var NowFunc = time.Now // mockable

// Phase is derived from (now, end, grace) on every evaluation; it is never
// stored or decremented.
type Phase int

const (
	// Counting: now is inside the window.
	Counting Phase = iota
	// GracePeriod: the window has ended but late submission is still open.
	GracePeriod
	// Expired: past the hard cutoff (end + grace). Terminal for a mount.
	Expired
)

func (p Phase) String() string {
	switch p {
	case Counting:
		return "counting"
	case GracePeriod:
		return "grace"
	case Expired:
		return "expired"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Evaluate derives the current phase and remaining time from wall-clock
// time. Counting counts down to `end`; GracePeriod counts down to the hard
// cutoff `end + graceMinutes`; Expired has no remaining time.
func Evaluate(now, end time.Time, graceMinutes int) (Phase, time.Duration) {
	if !now.After(end) {
		return Counting, end.Sub(now)
	}
	cutoff := end.Add(time.Duration(graceMinutes) * time.Minute)
	if !now.After(cutoff) {
		return GracePeriod, cutoff.Sub(now)
	}
	return Expired, 0
}

// Remaining is the display breakdown of a countdown duration.
type Remaining struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// FormatRemaining splits `d` into display fields. Zero or negative durations
// render as all zeros.
func FormatRemaining(d time.Duration) Remaining {
	if d <= 0 {
		return Remaining{}
	}
	secs := int(d / time.Second)
	return Remaining{
		Days:    secs / 86400,
		Hours:   (secs % 86400) / 3600,
		Minutes: (secs % 3600) / 60,
		Seconds: secs % 60,
	}
}

func (r Remaining) String() string {
	return fmt.Sprintf("%02dd %02dh %02dm %02ds", r.Days, r.Hours, r.Minutes, r.Seconds)
}

// ClosedLabel is displayed in place of a countdown once the hard cutoff has
// passed.
const ClosedLabel = "closed"

// Countdown re-derives the phase from wall-clock time once per second and
// signals expiry exactly once per instance. One instance corresponds to one
// mount of the assessment view; a remount gets a fresh instance (and hence
// one fresh expiry signal).
type Countdown struct {
	end          time.Time
	graceMinutes int
	onExpire     func()
	interval     time.Duration

	mu        sync.Mutex
	phase     Phase
	remaining time.Duration
	signaled  bool

	stopOnce sync.Once
	stop     chan struct{}
}

func NewCountdown(end time.Time, graceMinutes int, onExpire func()) *Countdown {
	c := &Countdown{
		end:          end,
		graceMinutes: graceMinutes,
		onExpire:     onExpire,
		interval:     time.Second,
		stop:         make(chan struct{}),
	}
	c.tick(NowFunc())
	return c
}

// Start runs the periodic re-evaluation loop until Stop is called.
func (c *Countdown) Start() {
	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.tick(NowFunc())
			case <-c.stop:
				return
			}
		}
	}()
}

// Stop halts the loop. Safe to call more than once.
func (c *Countdown) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Snapshot returns the phase and remaining time as of the last evaluation.
func (c *Countdown) Snapshot() (Phase, time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase, c.remaining
}

// tick evaluates afresh. The expiry callback fires only on the first tick
// that observes Expired; the guard is the signaled flag, not the phase, so
// repeated Expired ticks stay silent.
func (c *Countdown) tick(now time.Time) {
	phase, remaining := Evaluate(now, c.end, c.graceMinutes)

	c.mu.Lock()
	c.phase, c.remaining = phase, remaining
	fire := phase == Expired && !c.signaled
	if fire {
		c.signaled = true
	}
	c.mu.Unlock()

	if fire && c.onExpire != nil {
		c.onExpire()
	}
}
