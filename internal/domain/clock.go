package domain

import "github.com/jonboulle/clockwork"

// clock supplies the GeneratedAt stamp on merge output. Tests swap in a
// fake via SetClock so the stamp is deterministic.
var clock = clockwork.NewRealClock()

// SetClock replaces the time source; nil restores the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
