package system

import (
	"github.com/milk9111/sidescroller-movement/ecs"
	"github.com/milk9111/sidescroller-movement/ecs/component"
)

// ResourceSystem refills resource meters each frame.
type ResourceSystem struct {
	FrameTime float64
}

func NewResourceSystem() *ResourceSystem {
	return &ResourceSystem{FrameTime: defaultFixedStep}
}

func (s *ResourceSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.ResourceMeterComponent.Kind(), func(_ ecs.Entity, meter *component.ResourceMeter) {
		meter.Tick(s.FrameTime)
	})
}
