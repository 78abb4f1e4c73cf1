package entity

import (
	"fmt"

	"github.com/milk9111/sidescroller-movement/ecs"
	"github.com/milk9111/sidescroller-movement/ecs/component"
	"github.com/milk9111/sidescroller-movement/ecs/system"
	"github.com/milk9111/sidescroller-movement/levels"
)

// LoadLevelToWorld adds the level's surfaces to the physics space, records
// its bounds and builds every spawn that names a prefab. It returns the
// spawned entities keyed by spawn name.
func LoadLevelToWorld(w *ecs.World, ps *system.PhysicsSystem, lvl *levels.Level, loaders Loaders) (map[string]ecs.Entity, error) {
	if w == nil || ps == nil || lvl == nil {
		return nil, fmt.Errorf("load level: world, physics and level are required")
	}

	bounds := ecs.CreateEntity(w)
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  lvl.Width,
		Height: lvl.Height,
	}); err != nil {
		return nil, fmt.Errorf("load level: add bounds: %w", err)
	}

	for _, s := range lvl.Surfaces {
		ps.AddSurface(s.Bounds, component.SurfaceTag{Kind: s.Kind, Name: s.Name})
	}

	spawned := make(map[string]ecs.Entity, len(lvl.Spawns))
	for _, spawn := range lvl.Spawns {
		if spawn.Prefab == "" {
			continue
		}
		e, err := newAt(w, spawn.Prefab, loaders, spawn.X, spawn.Y)
		if err != nil {
			return nil, fmt.Errorf("load level: spawn %q: %w", spawn.Name, err)
		}
		spawned[spawn.Name] = e
	}
	return spawned, nil
}
