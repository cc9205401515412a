// Package clock evaluates cron schedules and turns them into streams of
// linear time values.
package clock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"gzctime/internal/gztime"
	appLog "gzctime/internal/log"
)

// ErrSchedule is wrapped when a cron expression cannot be parsed.
var ErrSchedule = errors.New("clock: invalid schedule")

// Parse parses a standard five-field cron expression or a descriptor such
// as @hourly or @every 90s. A CRON_TZ= prefix pins the schedule to a
// location; otherwise it follows the location of the times it is given.
func Parse(spec string) (cron.Schedule, error) {
	s, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSchedule, spec, err)
	}
	return s, nil
}

// Next returns the next n activations of spec strictly after from, with
// the schedule read as wall clock in loc. A nil loc means the system local
// zone.
func Next(spec string, from gztime.Time, n int, loc *time.Location) ([]gztime.Time, error) {
	s, err := Parse(spec)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.Local
	}

	out := make([]gztime.Time, 0, n)
	t := from.Std().In(loc)
	for len(out) < n {
		next := s.Next(t)
		if next.IsZero() {
			// The schedule never fires again.
			break
		}
		out = append(out, gztime.Unix(next.Unix()))
		t = next
	}
	return out, nil
}

// Ticker delivers the current time on C each time its schedule fires.
// Ticks are dropped while the receiver is busy.
type Ticker struct {
	C <-chan gztime.Time

	c    chan gztime.Time
	cron *cron.Cron
	once sync.Once
}

// NewTicker returns a stopped ticker for spec.
func NewTicker(spec string, loc *time.Location) (*Ticker, error) {
	if loc == nil {
		loc = time.Local
	}
	ch := make(chan gztime.Time, 1)
	t := &Ticker{
		C:    ch,
		c:    ch,
		cron: cron.New(cron.WithLocation(loc)),
	}
	if _, err := t.cron.AddFunc(spec, t.fire); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSchedule, spec, err)
	}
	return t, nil
}

func (t *Ticker) fire() {
	select {
	case t.c <- gztime.Now():
	default:
		appLog.Debug("clock tick dropped; receiver busy")
	}
}

// Start runs the schedule until ctx is done or Stop is called.
func (t *Ticker) Start(ctx context.Context) {
	t.cron.Start()
	go func() {
		<-ctx.Done()
		t.Stop()
	}()
}

// Stop halts the schedule and waits for a running tick to finish. It is
// safe to call more than once.
func (t *Ticker) Stop() {
	t.once.Do(func() {
		<-t.cron.Stop().Done()
	})
}
