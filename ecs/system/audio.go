package system

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/sidescroller-movement/ecs"
	"github.com/milk9111/sidescroller-movement/ecs/component"
)

type AudioSystem struct {
	FrameTime float64
}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{FrameTime: defaultFixedStep}
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		audioComp.Tick(a.FrameTime)

		for i := range audioComp.Play {
			if !audioComp.Play[i] {
				continue
			}
			audioComp.Play[i] = false

			player := clipPlayer(audioComp, i)
			if player == nil {
				continue
			}
			if i < len(audioComp.Volume) {
				player.SetVolume(audioComp.Volume[i])
			}
			player.Rewind()
			player.Play()
		}

		for i := range audioComp.Stop {
			if !audioComp.Stop[i] {
				continue
			}
			audioComp.Stop[i] = false

			if player := clipPlayer(audioComp, i); player != nil && player.IsPlaying() {
				player.Pause()
			}
		}
	})
}

// clipPlayer returns the player of clip i, nil when the clip has no decoded
// audio.
func clipPlayer(a *component.Audio, i int) *audio.Player {
	if i < 0 || i >= len(a.Players) {
		return nil
	}
	return a.Players[i]
}
