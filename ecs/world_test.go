package ecs

import (
	"strconv"
	"testing"

	"github.com/milk9111/sidescroller-movement/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	pb := &component.PhysicsBody{Mass: 1}
	if err := Add(w, e, component.PhysicsBodyComponent.Kind(), pb); err != nil {
		t.Fatalf("add: %v", err)
	}

	if !DestroyEntity(w, e) {
		t.Fatalf("expected the live entity to be destroyed")
	}
	if w.IsAlive(e) || DestroyEntity(w, e) {
		t.Fatalf("stale handle must stay dead")
	}
	if Has(w, e, component.PhysicsBodyComponent.Kind()) {
		t.Fatalf("destroyed entity kept its body")
	}

	reused := CreateEntity(w)
	if Has(w, reused, component.PhysicsBodyComponent.Kind()) {
		t.Fatalf("reused slot inherited components from %v", e)
	}
	if got := w.Entities(); len(got) != 1 || got[0] != reused {
		t.Fatalf("expected only %v alive, got %v", reused, got)
	}
}

func TestWorldAddAndGet(t *testing.T) {
	cases := []struct {
		name    string
		add     func(w *World, e Entity) error
		wantErr error
	}{
		{
			name: "stores_value",
			add: func(w *World, e Entity) error {
				return Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: 2, Default: 1})
			},
		},
		{
			name: "nil_value",
			add: func(w *World, e Entity) error {
				return Add[component.GravityScale](w, e, component.GravityScaleComponent.Kind(), nil)
			},
			wantErr: component.ErrNilComponent,
		},
		{
			name: "dead_entity",
			add: func(w *World, e Entity) error {
				DestroyEntity(w, e)
				return Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{})
			},
			wantErr: component.ErrEntityNotAlive,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld()
			e := CreateEntity(w)
			if err := tc.add(w, e); err != tc.wantErr {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			g, ok := Get(w, e, component.GravityScaleComponent.Kind())
			if ok != (tc.wantErr == nil) {
				t.Fatalf("expected stored=%v, got %v", tc.wantErr == nil, ok)
			}
			if ok && g.Scale != 2 {
				t.Fatalf("expected scale 2, got %v", g.Scale)
			}
		})
	}
}

func TestForEachVisitsIntersection(t *testing.T) {
	w := NewWorld()
	both := CreateEntity(w)
	bodyOnly := CreateEntity(w)
	transformOnly := CreateEntity(w)

	for _, err := range []error{
		Add(w, both, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{}),
		Add(w, both, component.TransformComponent.Kind(), &component.Transform{X: 3}),
		Add(w, bodyOnly, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{}),
		Add(w, transformOnly, component.TransformComponent.Kind(), &component.Transform{}),
	} {
		if err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	var bodies []Entity
	ForEach(w, component.PhysicsBodyComponent.Kind(), func(e Entity, _ *component.PhysicsBody) {
		bodies = append(bodies, e)
	})
	if len(bodies) != 2 {
		t.Fatalf("expected two bodies, got %v", bodies)
	}

	var pairs []Entity
	ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e Entity, _ *component.PhysicsBody, tr *component.Transform) {
		if tr.X != 3 {
			t.Fatalf("unexpected transform %+v for %v", tr, e)
		}
		pairs = append(pairs, e)
	})
	if len(pairs) != 1 || pairs[0] != both {
		t.Fatalf("expected only %v, got %v", both, pairs)
	}
}

type recordingSystem struct {
	name  string
	order *[]string
	push  bool
}

func (s *recordingSystem) Update(w *World) {
	*s.order = append(*s.order, s.name)
	if s.push {
		w.Events().Push(Event{Type: EventHorizontalStateChanged, Data: StateChangeEvent{From: "idle", To: "walking"}})
	}
}

func TestSchedulerAndEvents(t *testing.T) {
	t.Run("runs_in_order_and_drops_undrained_events", func(t *testing.T) {
		w := NewWorld()
		var order []string
		var seen []Event
		drain := systemFunc(func(w *World) { seen = append(seen, w.Events().Drain()...) })

		s := NewScheduler(&recordingSystem{name: "a", order: &order, push: true}, drain)
		s.Add(&recordingSystem{name: "b", order: &order, push: true})
		s.Add(nil)
		s.Update(w)

		if len(order) != 2 || order[0] != "a" || order[1] != "b" {
			t.Fatalf("unexpected order %v", order)
		}
		if len(seen) != 1 {
			t.Fatalf("expected 1 drained event, got %d", len(seen))
		}
		ev, ok := seen[0].Data.(StateChangeEvent)
		if !ok || ev.To != "walking" {
			t.Fatalf("unexpected event payload %#v", seen[0].Data)
		}
		if w.Events().Len() != 0 {
			t.Fatalf("expected events flushed at end of frame, got %d", w.Events().Len())
		}
		if got := len(s.Systems()); got != 3 {
			t.Fatalf("expected 3 systems, got %d", got)
		}
	})

	t.Run("nil_queue_is_safe", func(t *testing.T) {
		var q *EventQueue
		q.Push(Event{Type: EventModuleMissing})
		if q.Len() != 0 || q.Drain() != nil {
			t.Fatalf("nil queue should stay empty")
		}
	})
}

type systemFunc func(w *World)

func (f systemFunc) Update(w *World) { f(w) }

func TestEntityStringAndFirst(t *testing.T) {
	w := NewWorld()
	e1 := CreateEntity(w)
	DestroyEntity(w, e1)
	e2 := CreateEntity(w)

	if e2.id() != e1.id() || e2.generation() == e1.generation() {
		t.Fatalf("expected slot reuse with a new generation: %v then %v", e1, e2)
	}
	want := "e" + strconv.FormatUint(uint64(e2.id()), 10) + "." + strconv.FormatUint(uint64(e2.generation()), 10)
	if e2.String() != want {
		t.Fatalf("String() = %q, want %q", e2.String(), want)
	}

	if _, ok := w.First(component.TransformComponent.Kind()); ok {
		t.Fatalf("expected no match in empty store")
	}
	if err := Add(w, e2, component.TransformComponent.Kind(), &component.Transform{X: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got, ok := w.First(component.TransformComponent.Kind()); !ok || got != e2 {
		t.Fatalf("First = %v %v, want %v", got, ok, e2)
	}
}
