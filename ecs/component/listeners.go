package component

// StateListener receives movement state changes. Calls are synchronous and
// happen at most once per axis per frame.
type StateListener interface {
	OnHorizontalStateChange(HorizontalState)
	OnVerticalStateChange(VerticalState)
}

// PauseListener is implemented by presentation sinks that follow the climb
// frozen/moving sub-mode.
type PauseListener interface {
	OnClimbPause(paused bool)
}

// NopListener ignores every notification.
type NopListener struct{}

func (NopListener) OnHorizontalStateChange(HorizontalState) {}
func (NopListener) OnVerticalStateChange(VerticalState)     {}

// StateListeners is the set of notification sinks for one entity. Pause
// support is resolved once when a listener is added.
type StateListeners struct {
	listeners []StateListener
	pausers   []PauseListener
}

// Add registers l. A nil listener is ignored.
func (s *StateListeners) Add(l StateListener) {
	if s == nil || l == nil {
		return
	}
	s.listeners = append(s.listeners, l)
	if p, ok := l.(PauseListener); ok {
		s.pausers = append(s.pausers, p)
	}
}

func (s *StateListeners) Len() int {
	if s == nil {
		return 0
	}
	return len(s.listeners)
}

func (s *StateListeners) Horizontal(state HorizontalState) {
	if s == nil {
		return
	}
	for _, l := range s.listeners {
		l.OnHorizontalStateChange(state)
	}
}

func (s *StateListeners) Vertical(state VerticalState) {
	if s == nil {
		return
	}
	for _, l := range s.listeners {
		l.OnVerticalStateChange(state)
	}
}

func (s *StateListeners) ClimbPause(paused bool) {
	if s == nil {
		return
	}
	for _, p := range s.pausers {
		p.OnClimbPause(paused)
	}
}

var StateListenersComponent = NewComponent[StateListeners]()
