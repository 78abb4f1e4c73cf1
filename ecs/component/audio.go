package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// Audio is the sound emitter of an entity. Clips are parallel slices indexed
// by name; Play/Stop are requests consumed by the audio system.
type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Play    []bool
	Stop    []bool
	// Cooldown is the minimum time between two plays of the same clip.
	// Remaining counts it down per clip.
	Cooldown  float64
	Remaining []float64
}

// Index returns the slot of the named clip or -1.
func (a *Audio) Index(name string) int {
	if a == nil {
		return -1
	}
	for i, n := range a.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// Request queues the named clip unless it is still cooling down. It reports
// whether the request was accepted.
func (a *Audio) Request(name string) bool {
	i := a.Index(name)
	if i < 0 {
		return false
	}
	a.grow()
	if a.Remaining[i] > 0 {
		return false
	}
	a.Play[i] = true
	a.Remaining[i] = a.Cooldown
	return true
}

// Tick advances clip cooldowns by dt seconds.
func (a *Audio) Tick(dt float64) {
	if a == nil {
		return
	}
	for i := range a.Remaining {
		if a.Remaining[i] > 0 {
			a.Remaining[i] -= dt
		}
	}
}

func (a *Audio) grow() {
	n := len(a.Names)
	for len(a.Play) < n {
		a.Play = append(a.Play, false)
	}
	for len(a.Stop) < n {
		a.Stop = append(a.Stop, false)
	}
	for len(a.Volume) < n {
		a.Volume = append(a.Volume, 1)
	}
	for len(a.Remaining) < n {
		a.Remaining = append(a.Remaining, 0)
	}
}

var AudioComponent = NewComponent[Audio]()
