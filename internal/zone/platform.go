package zone

import (
	"fmt"
	"sync"
	"time"
)

// Platform is the host's local-time facility: it reports the local zone in
// effect at a given instant (unix seconds). Implementations must be safe for
// concurrent use.
type Platform interface {
	Zone(unix int64) (Zone, error)
}

// System reads zone information from a *time.Location. A nil Location means
// time.Local.
type System struct {
	Location *time.Location
}

// Zone reports the geographic zone and DST status of s.Location at unix.
// DST is assumed to advance the wall clock by exactly one hour; locations
// that use other amounts are reported as relative offsets.
func (s System) Zone(unix int64) (Zone, error) {
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	if loc == nil {
		return Zone{}, ErrPlatformUnavailable
	}

	t := time.Unix(unix, 0).In(loc)
	_, secs := t.Zone()
	if secs%60 != 0 {
		return Relative(Offset(secs / 60)), nil
	}
	off := Offset(secs / 60)
	if !t.IsDST() {
		return Geographic(off, Inactive), nil
	}

	// Check that the standard offset is really one hour behind.
	if std, ok := standardOffset(t, loc); ok && std != off-Hour {
		return Relative(off), nil
	}
	return Geographic(off-Hour, Active), nil
}

// standardOffset searches the surrounding half year for a non-DST reading.
func standardOffset(t time.Time, loc *time.Location) (Offset, bool) {
	for months := 1; months <= 7; months++ {
		for _, d := range []int{months, -months} {
			u := t.AddDate(0, d, 0).In(loc)
			if !u.IsDST() {
				_, secs := u.Zone()
				return Offset(secs / 60), true
			}
		}
	}
	return 0, false
}

// Fixed is a Platform that always reports the same zone.
type Fixed struct {
	Value Zone
}

// Zone returns f.Value.
func (f Fixed) Zone(int64) (Zone, error) { return f.Value, nil }

// Unavailable is a Platform that never knows the local zone.
type Unavailable struct{}

// Zone always fails with ErrPlatformUnavailable.
func (Unavailable) Zone(int64) (Zone, error) { return Zone{}, ErrPlatformUnavailable }

// Location returns a cached System platform for the IANA location name.
// An empty name selects time.Local.
func Location(name string) (Platform, error) {
	if name == "" || name == "Local" {
		return System{}, nil
	}

	locationMu.RLock()
	loc, ok := locationCache[name]
	locationMu.RUnlock()
	if ok {
		return System{Location: loc}, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlatformUnavailable, err)
	}

	locationMu.Lock()
	locationCache[name] = loc
	locationMu.Unlock()
	return System{Location: loc}, nil
}

var (
	locationCache = make(map[string]*time.Location)
	locationMu    sync.RWMutex
)
