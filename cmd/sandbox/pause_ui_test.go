package main

import (
	"testing"

	"github.com/milk9111/sidescroller-movement/ecs"
	"github.com/milk9111/sidescroller-movement/levels"
)

func TestPauseActions(t *testing.T) {
	tests := []struct {
		label      string
		wantPaused bool
		wantDebug  bool
	}{
		{"Resume", false, false},
		{"Respawn", false, false},
		{"Toggle debug", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			g := &Game{paused: true, world: ecs.NewWorld(), level: &levels.Level{}}
			var run func()
			for _, a := range g.pauseActions() {
				if a.label == tt.label {
					run = a.run
				}
			}
			if run == nil {
				t.Fatalf("no %q button", tt.label)
			}
			run()
			if g.paused != tt.wantPaused || g.debug != tt.wantDebug {
				t.Fatalf("paused=%v debug=%v, want %v %v", g.paused, g.debug, tt.wantPaused, tt.wantDebug)
			}
		})
	}
}
