package system

import "github.com/milk9111/sidescroller-movement/ecs/component"

// AnimationSink plays the animation matching the composed axis states. The
// vertical state wins over the horizontal one unless it is idle; crouching
// while moving plays "crawl" when the sheet has it.
type AnimationSink struct {
	anim       *component.Animation
	horizontal component.HorizontalState
	vertical   component.VerticalState
	// Names maps a state name to the animation played for it.
	Names map[string]string
}

func NewAnimationSink(anim *component.Animation, names map[string]string) *AnimationSink {
	return &AnimationSink{anim: anim, Names: names}
}

func (s *AnimationSink) OnHorizontalStateChange(state component.HorizontalState) {
	s.horizontal = state
	s.play()
}

func (s *AnimationSink) OnVerticalStateChange(state component.VerticalState) {
	s.vertical = state
	s.play()
}

func (s *AnimationSink) OnClimbPause(paused bool) {
	if s.anim != nil {
		s.anim.Paused = paused
	}
}

// Resolve returns the animation for the current state pair.
func (s *AnimationSink) Resolve() string {
	moving := s.horizontal == component.HorizontalWalking || s.horizontal == component.HorizontalSprinting
	if s.vertical == component.VerticalCrouching && moving {
		if name, ok := s.lookup("crawl"); ok {
			return name
		}
	}
	if s.vertical != component.VerticalIdle {
		if name, ok := s.lookup(s.vertical.String()); ok {
			return name
		}
	}
	if name, ok := s.lookup(s.horizontal.String()); ok {
		return name
	}
	return "idle"
}

func (s *AnimationSink) lookup(state string) (string, bool) {
	name := state
	if mapped, ok := s.Names[state]; ok {
		name = mapped
	}
	if s.anim == nil {
		return name, false
	}
	_, ok := s.anim.Defs[name]
	return name, ok
}

func (s *AnimationSink) play() {
	if s.anim == nil {
		return
	}
	s.anim.Play(s.Resolve())
}

// AudioSink requests the clip named after each new state. Clips cool down
// inside the audio component so rapid state flicker does not stack sounds.
type AudioSink struct {
	audio *component.Audio
	// Names maps a state name to a clip name.
	Names map[string]string
}

func NewAudioSink(audio *component.Audio, names map[string]string) *AudioSink {
	return &AudioSink{audio: audio, Names: names}
}

func (s *AudioSink) OnHorizontalStateChange(state component.HorizontalState) {
	s.request(state.String())
}

func (s *AudioSink) OnVerticalStateChange(state component.VerticalState) {
	s.request(state.String())
}

func (s *AudioSink) request(state string) {
	if s.audio == nil {
		return
	}
	name := state
	if mapped, ok := s.Names[state]; ok {
		name = mapped
	}
	s.audio.Request(name)
}
