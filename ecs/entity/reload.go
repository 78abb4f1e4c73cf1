package entity

import (
	"github.com/milk9111/sidescroller-movement/ecs"
	"github.com/milk9111/sidescroller-movement/ecs/component"
	"github.com/milk9111/sidescroller-movement/prefabs"
)

// ReloadActions re-reads file and copies it over every action config that
// was loaded from it. Inline configs are left alone. It returns the fresh
// config and the number of entities updated.
func ReloadActions(w *ecs.World, file string) (*component.ActionConfig, int, error) {
	fresh, err := prefabs.LoadActionConfig(file)
	if err != nil {
		return nil, 0, err
	}

	n := 0
	ecs.ForEach(w, component.ActionConfigComponent.Kind(), func(_ ecs.Entity, cfg *component.ActionConfig) {
		if cfg.Source == "" || cfg.Source != fresh.Source {
			return
		}
		*cfg = *fresh
		n++
	})
	return fresh, n, nil
}
