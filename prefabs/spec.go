package prefabs

import (
	"fmt"

	"github.com/milk9111/sidescroller-movement/ecs/component"
	"gopkg.in/yaml.v3"
)

// DefaultActions is the action configuration used by the sandbox player.
const DefaultActions = "actions.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadActionConfig decodes and validates an action configuration.
func LoadActionConfig(filename string) (*component.ActionConfig, error) {
	cfg, err := LoadSpec[component.ActionConfig](filename)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: validate %s: %w", filename, err)
	}
	cfg.Source = cleanPrefabPath(filename)
	return &cfg, nil
}

// DecodeActionConfig decodes and validates an action configuration inlined
// in a prefab.
func DecodeActionConfig(node *yaml.Node) (*component.ActionConfig, error) {
	var cfg component.ActionConfig
	if err := node.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("prefabs: decode inline action config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: validate inline action config: %w", err)
	}
	return &cfg, nil
}
