package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/sidescroller-movement/ecs"
	"github.com/milk9111/sidescroller-movement/ecs/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const hudLineHeight = 14

// hud prints the player's machine states, sensor contacts, modules and the
// most recent state changes.
type hud struct {
	face   text.Face
	log    []string
	maxLog int
}

func newHUD(maxLog int) *hud {
	return &hud{face: text.NewGoXFace(basicfont.Face7x13), maxLog: maxLog}
}

// Update runs last in the scheduler and keeps the frame's state changes
// before the world drops them.
func (h *hud) Update(w *ecs.World) {
	for _, evt := range w.Events().Drain() {
		h.record(evt)
	}
}

func (h *hud) record(evt ecs.Event) {
	var line string
	switch evt.Type {
	case ecs.EventHorizontalStateChanged, ecs.EventVerticalStateChanged:
		change, ok := evt.Data.(ecs.StateChangeEvent)
		if !ok {
			return
		}
		axis := "h"
		if evt.Type == ecs.EventVerticalStateChanged {
			axis = "v"
		}
		line = fmt.Sprintf("%v %s: %s -> %s", change.Entity, axis, change.From, change.To)
	case ecs.EventModuleMissing:
		line = fmt.Sprintf("missing module %v", evt.Data)
	default:
		return
	}

	h.log = append(h.log, line)
	if len(h.log) > h.maxLog {
		h.log = h.log[len(h.log)-h.maxLog:]
	}
}

func (h *hud) draw(screen *ebiten.Image, w *ecs.World, player ecs.Entity) {
	y := 4.0
	line := func(s string, c color.Color) {
		h.text(screen, s, 4, y, c)
		y += hudLineHeight
	}

	line(fmt.Sprintf("FPS %.0f  entities %d", ebiten.ActualFPS(), len(w.Entities())), colornames.White)

	if hm, ok := ecs.Get(w, player, component.HorizontalMotionComponent.Kind()); ok {
		line("horizontal "+hm.State.String(), colornames.Lightskyblue)
	}
	if vm, ok := ecs.Get(w, player, component.VerticalMotionComponent.Kind()); ok {
		line(fmt.Sprintf("vertical %s  charges %d", vm.State, vm.Charges), colornames.Lightskyblue)
	}
	if found, ok := ecs.Get(w, player, component.SurfacesComponent.Kind()); ok {
		line(contactLine(found), colornames.Lightgreen)
	}
	if meter, ok := ecs.Get(w, player, component.ResourceMeterComponent.Kind()); ok {
		line(fmt.Sprintf("stamina %.2f/%.0f", meter.Value, meter.Max), colornames.Gold)
	}
	if modules, ok := ecs.Get(w, player, component.ModulesComponent.Kind()); ok {
		for _, m := range modules.All() {
			line(fmt.Sprintf("[%s] %s", m.Category.Label(), m.Name), m.Category.Color())
		}
	}

	y += hudLineHeight / 2
	for _, l := range h.log {
		line(l, colornames.Lightgray)
	}
}

func contactLine(s *component.Surfaces) string {
	var parts []string
	if s.Grounded {
		parts = append(parts, "grounded")
	}
	contacts := []struct {
		name string
		c    component.Contact
	}{
		{"wall", s.Wall},
		{"ledge", s.Ledge},
		{"platform", s.Platform},
		{"climbable", s.Climbable},
	}
	for _, c := range contacts {
		if c.c.Touching() {
			parts = append(parts, c.name)
		}
	}
	if len(parts) == 0 {
		return "airborne"
	}
	return strings.Join(parts, " ")
}

func (h *hud) text(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, h.face, op)
}
