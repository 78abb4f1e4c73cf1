package main

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sidescroller-movement/ecs"
	"github.com/milk9111/sidescroller-movement/ecs/component"
)

func TestHUDRecordKeepsRecentChanges(t *testing.T) {
	h := &hud{maxLog: 2}
	h.record(ecs.Event{Type: ecs.EventHorizontalStateChanged, Data: ecs.StateChangeEvent{From: "idle", To: "walking"}})
	h.record(ecs.Event{Type: "unrelated"})
	h.record(ecs.Event{Type: ecs.EventVerticalStateChanged, Data: ecs.StateChangeEvent{From: "idle", To: "jumping"}})
	h.record(ecs.Event{Type: ecs.EventModuleMissing, Data: "stamina"})

	if len(h.log) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(h.log), h.log)
	}
	if h.log[1] != "missing module stamina" {
		t.Fatalf("unexpected last line %q", h.log[1])
	}
}

func TestContactLine(t *testing.T) {
	shape := &cp.Shape{}
	tests := []struct {
		name string
		s    component.Surfaces
		want string
	}{
		{"airborne", component.Surfaces{}, "airborne"},
		{"grounded", component.Surfaces{Grounded: true}, "grounded"},
		{"wall", component.Surfaces{Wall: component.Contact{Shape: shape, Side: 1}}, "wall"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := contactLine(&tt.s); got != tt.want {
				t.Fatalf("contactLine = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHUDUpdateDrainsWorldEvents(t *testing.T) {
	w := ecs.NewWorld()
	w.Events().Push(ecs.Event{Type: ecs.EventVerticalStateChanged, Data: ecs.StateChangeEvent{From: "idle", To: "falling"}})

	h := &hud{maxLog: 4}
	h.Update(w)
	if len(h.log) != 1 || w.Events().Len() != 0 {
		t.Fatalf("expected one logged change and an empty queue, got %q and %d", h.log, w.Events().Len())
	}
}
