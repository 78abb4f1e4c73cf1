package entity

import (
	"fmt"

	"github.com/milk9111/sidescroller-movement/ecs"
)

const (
	PlayerPrefab = "player.yaml"
	DemoPrefab   = "demo.yaml"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, PlayerPrefab)
}

func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	return newAt(w, PlayerPrefab, DefaultLoaders, x, y)
}

// newAt builds prefab and moves it to x, y.
func newAt(w *ecs.World, prefab string, loaders Loaders, x, y float64) (ecs.Entity, error) {
	entity, err := BuildEntityWith(w, prefab, loaders)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y, 0); err != nil {
		return 0, fmt.Errorf("%s: override transform: %w", prefab, err)
	}
	return entity, nil
}
