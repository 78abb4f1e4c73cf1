package component

import (
	"errors"
	"testing"
)

func TestModulesLookup(t *testing.T) {
	var mods Modules
	meter := &ResourceMeter{Value: 2, Max: 2}
	mods.Register("stamina", ModuleContainer, meter)
	mods.Register("dash", ModuleMovement, nil)

	got, err := mods.Lookup("stamina")
	if err != nil || got.Value != meter || got.Category.Label() != "Container" {
		t.Fatalf("unexpected lookup result %+v, %v", got, err)
	}
	if _, err := mods.Lookup("mana"); !errors.Is(err, ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}

	var none *Modules
	if _, err := none.Lookup("stamina"); !errors.Is(err, ErrModuleNotFound) {
		t.Fatalf("expected nil registry lookup to fail, got %v", err)
	}

	all := mods.All()
	if len(all) != 2 || all[0].Name != "dash" || all[1].Name != "stamina" {
		t.Fatalf("expected modules sorted by name, got %+v", all)
	}
	if ModuleMovement.Color() == ModuleContainer.Color() {
		t.Fatalf("expected distinct category colours")
	}
}

func TestResourceMeter(t *testing.T) {
	r := &ResourceMeter{Value: 1, Max: 2, Regen: 1}
	if r.Consume(1.5) {
		t.Fatalf("expected consume beyond value to fail")
	}
	if !r.Consume(1) || r.Value != 0 {
		t.Fatalf("expected consume to spend, got %v", r.Value)
	}
	r.Tick(5)
	if r.Value != 2 {
		t.Fatalf("expected refill to clamp at max, got %v", r.Value)
	}
}

func TestAudioRequestCooldown(t *testing.T) {
	a := &Audio{Names: []string{"jump", "land"}, Cooldown: 0.1}
	if !a.Request("jump") || !a.Play[0] {
		t.Fatalf("expected first request accepted")
	}
	if a.Request("jump") {
		t.Fatalf("expected request during cooldown rejected")
	}
	if a.Request("dash") {
		t.Fatalf("expected unknown clip rejected")
	}
	a.Tick(0.1)
	if !a.Request("jump") {
		t.Fatalf("expected request after cooldown accepted")
	}
}

func TestAnimationPlay(t *testing.T) {
	a := &Animation{Defs: map[string]AnimationDef{"idle": {Name: "idle"}, "run": {Name: "run"}}}
	if !a.Play("run") || a.Current != "run" || !a.Playing {
		t.Fatalf("expected run playing, got %+v", a)
	}
	a.Frame = 3
	a.Play("run")
	if a.Frame != 3 {
		t.Fatalf("expected replaying the current animation to keep its frame")
	}
	if a.Play("fly") || a.Current != "run" {
		t.Fatalf("expected unknown animation ignored")
	}
}
