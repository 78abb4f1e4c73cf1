package prefabs

import (
	"github.com/milk9111/sidescroller-movement/ecs/component"
	"gopkg.in/yaml.v3"
)

// EntityBuildSpec is a prefab: a named set of component specs keyed by
// component name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-decodes one raw component entry into its typed spec.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Image     string  `yaml:"image"`
	UseSource bool    `yaml:"use_source"`
	OriginX   float64 `yaml:"origin_x"`
	OriginY   float64 `yaml:"origin_y"`
}

type AnimationDefComponentSpec struct {
	Row        int     `yaml:"row"`
	ColStart   int     `yaml:"col_start"`
	FrameCount int     `yaml:"frame_count"`
	FrameW     int     `yaml:"frame_w"`
	FrameH     int     `yaml:"frame_h"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
}

type AnimationComponentSpec struct {
	Sheet   string                               `yaml:"sheet"`
	Defs    map[string]AnimationDefComponentSpec `yaml:"defs"`
	Current string                               `yaml:"current"`
}

type AudioClipSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type AudioComponentSpec struct {
	Cooldown float64         `yaml:"cooldown"`
	Clips    []AudioClipSpec `yaml:"clips"`
}

type PhysicsBodyComponentSpec struct {
	Mass       float64 `yaml:"mass"`
	LinearDrag float64 `yaml:"linear_drag"`
}

type ColliderComponentSpec struct {
	Kind     component.ColliderKind `yaml:"kind"`
	Width    float64                `yaml:"width"`
	Height   float64                `yaml:"height"`
	OffsetX  float64                `yaml:"offset_x"`
	OffsetY  float64                `yaml:"offset_y"`
	Friction float64                `yaml:"friction"`
}

type CollisionLayerComponentSpec struct {
	Category uint `yaml:"category"`
	Mask     uint `yaml:"mask"`
}

type GravityScaleComponentSpec struct {
	Scale float64 `yaml:"scale"`
}

// ActionsComponentSpec points at an action configuration file or inlines
// one. File wins when both are set.
type ActionsComponentSpec struct {
	File   string    `yaml:"file"`
	Inline yaml.Node `yaml:"inline"`
}

type ResourceMeterComponentSpec struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
	Max   float64 `yaml:"max"`
	Regen float64 `yaml:"regen"`
}

// StateListenersComponentSpec maps state names to animation and clip names
// for the presentation sinks. A nil map leaves that sink out.
type StateListenersComponentSpec struct {
	Animation map[string]string `yaml:"animation"`
	Audio     map[string]string `yaml:"audio"`
}

type ScriptedInputComponentSpec struct {
	Script string `yaml:"script"`
}
