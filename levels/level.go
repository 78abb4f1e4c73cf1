package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/lafriks/go-tiled"
	"github.com/milk9111/sidescroller-movement/ecs/component"
)

//go:embed *.tmx
var LevelsFS embed.FS

// Object group names read from level files.
const (
	SurfacesGroup = "Surfaces"
	SpawnsGroup   = "Spawns"
)

// Level is the movement-relevant content of a Tiled map, converted to the
// Y-up world space used by physics.
type Level struct {
	Name     string
	Width    float64
	Height   float64
	Surfaces []Surface
	Spawns   []Spawn
}

// Surface is one rectangle of static geometry tagged for the surface sensor.
type Surface struct {
	Name   string
	Kind   component.SurfaceKind
	Bounds cp.BB
}

// Spawn places a prefab at a world position.
type Spawn struct {
	Name   string
	Prefab string
	X      float64
	Y      float64
}

// Load reads an embedded level. The .tmx extension is optional.
func Load(name string) (*Level, error) {
	if path.Ext(name) == "" {
		name += ".tmx"
	}
	return LoadFS(LevelsFS, name)
}

// LoadFS parses a TMX file from fsys. Rectangle objects in the Surfaces
// group become surfaces, classified by their "surface" property; objects in
// the Spawns group become spawns of the prefab named by their "prefab"
// property.
func LoadFS(fsys fs.FS, name string) (*Level, error) {
	levelMap, err := tiled.LoadFile(name, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}

	lvl := &Level{
		Name:   name,
		Width:  float64(levelMap.Width * levelMap.TileWidth),
		Height: float64(levelMap.Height * levelMap.TileHeight),
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case SurfacesGroup:
			for _, o := range og.Objects {
				if o.Width <= 0 || o.Height <= 0 {
					continue
				}
				kind, err := component.ParseSurfaceKind(o.Properties.GetString("surface"))
				if err != nil {
					return nil, fmt.Errorf("levels: %s: object %q: %w", name, o.Name, err)
				}
				lvl.Surfaces = append(lvl.Surfaces, Surface{
					Name:   o.Name,
					Kind:   kind,
					Bounds: lvl.toWorld(o.X, o.Y, o.Width, o.Height),
				})
			}
		case SpawnsGroup:
			for _, o := range og.Objects {
				lvl.Spawns = append(lvl.Spawns, Spawn{
					Name:   o.Name,
					Prefab: o.Properties.GetString("prefab"),
					X:      o.X,
					Y:      lvl.Height - o.Y,
				})
			}
		}
	}

	sort.SliceStable(lvl.Spawns, func(i, j int) bool {
		return lvl.Spawns[i].X < lvl.Spawns[j].X
	})
	return lvl, nil
}

// Spawn returns the spawn with the given name.
func (l *Level) Spawn(name string) (Spawn, bool) {
	for _, s := range l.Spawns {
		if s.Name == name {
			return s, true
		}
	}
	return Spawn{}, false
}

// toWorld converts a Tiled rectangle (top-left origin, Y down) to world
// bounds.
func (l *Level) toWorld(x, y, w, h float64) cp.BB {
	return cp.BB{L: x, B: l.Height - (y + h), R: x + w, T: l.Height - y}
}
