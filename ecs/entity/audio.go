package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/sidescroller-movement/ecs/component"
	"github.com/milk9111/sidescroller-movement/prefabs"
)

// buildAudioComponent creates one slot per clip. Without a loader the slots
// have names but no players, so requests are accepted and dropped.
func buildAudioComponent(clips []prefabs.AudioClipSpec, load func(string) (*audio.Player, error)) (*component.Audio, error) {
	n := len(clips)
	comp := &component.Audio{
		Names:     make([]string, 0, n),
		Players:   make([]*audio.Player, 0, n),
		Volume:    make([]float64, 0, n),
		Play:      make([]bool, n),
		Stop:      make([]bool, n),
		Remaining: make([]float64, n),
	}

	for i, clip := range clips {
		if clip.Name == "" {
			return nil, fmt.Errorf("audio clip %d has no name", i)
		}
		var player *audio.Player
		if load != nil {
			p, err := load(clip.File)
			if err != nil {
				return nil, fmt.Errorf("audio clip %d (%q): %w", i, clip.Name, err)
			}
			player = p
		}
		volume := clip.Volume
		if volume == 0 {
			volume = 1
		}
		comp.Names = append(comp.Names, clip.Name)
		comp.Players = append(comp.Players, player)
		comp.Volume = append(comp.Volume, volume)
	}
	return comp, nil
}
