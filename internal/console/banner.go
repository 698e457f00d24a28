package console

import (
	"sync"
	"time"
)

// DefaultBannerTTL is how long an alert banner stays up before
// self-clearing.
const DefaultBannerTTL = 5 * time.Second

// BannerKind classifies an alert banner.
type BannerKind int

const (
	BannerInfo BannerKind = iota
	BannerSuccess
	BannerError
)

func (k BannerKind) String() string {
	switch k {
	case BannerSuccess:
		return "success"
	case BannerError:
		return "error"
	default:
		return "info"
	}
}

// Banner is a transient notification of an operation's outcome.
type Banner struct {
	Message string
	Kind    BannerKind
}

// BannerSlot is a single-slot timed banner holder: a new banner immediately
// replaces the current one and cancels its pending dismiss timer. It is a
// slot, not a queue.
type BannerSlot struct {
	ttl time.Duration

	mu      sync.Mutex
	current *Banner
	timer   *time.Timer
}

// NewBannerSlot creates a banner slot. ttl defaults to DefaultBannerTTL.
func NewBannerSlot(ttl time.Duration) *BannerSlot {
	if ttl <= 0 {
		ttl = DefaultBannerTTL
	}
	return &BannerSlot{ttl: ttl}
}

// Show replaces the current banner and restarts the dismiss timer.
func (b *BannerSlot) Show(kind BannerKind, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
	}
	shown := &Banner{Message: message, Kind: kind}
	b.current = shown
	b.timer = time.AfterFunc(b.ttl, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		// Only clear if this banner is still the one on display.
		if b.current == shown {
			b.current = nil
		}
	})
}

// Current returns the banner on display, if any.
func (b *BannerSlot) Current() (Banner, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return Banner{}, false
	}
	return *b.current, true
}
