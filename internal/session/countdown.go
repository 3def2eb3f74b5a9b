package session

import (
	"sync"
	"time"
)

// Ticker is the part of *time.Ticker the countdown needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewRealTicker backs the countdown with time.NewTicker.
func NewRealTicker(d time.Duration) Ticker { return realTicker{t: time.NewTicker(d)} }

// countdown calls tick once per ticker period until tick returns false or cancel is called.
type countdown struct {
	ticker Ticker
	stop   chan struct{}
	once   sync.Once
}

func startCountdown(t Ticker, tick func() bool) *countdown {
	c := &countdown{ticker: t, stop: make(chan struct{})}
	go c.run(tick)
	return c
}

func (c *countdown) run(tick func() bool) {
	for {
		select {
		case <-c.stop:
			return
		case <-c.ticker.C():
			if !tick() {
				return
			}
		}
	}
}

// cancel is safe to call from any goroutine, including from inside tick, and more than once.
func (c *countdown) cancel() {
	c.once.Do(func() {
		c.ticker.Stop()
		close(c.stop)
	})
}
