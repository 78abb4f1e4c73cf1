package component

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
)

var ErrModuleNotFound = errors.New("module not found")

// ModuleCategory is fixed when a module is registered and drives how tools
// label and colour it.
type ModuleCategory uint8

const (
	ModuleMovement ModuleCategory = iota
	ModuleContainer
	ModuleInteraction
	ModulePresentation
)

func (c ModuleCategory) Label() string {
	switch c {
	case ModuleMovement:
		return "Movement"
	case ModuleContainer:
		return "Container"
	case ModuleInteraction:
		return "Interaction"
	case ModulePresentation:
		return "Presentation"
	}
	return "Module"
}

func (c ModuleCategory) Color() color.RGBA {
	switch c {
	case ModuleMovement:
		return color.RGBA{R: 90, G: 170, B: 255, A: 255}
	case ModuleContainer:
		return color.RGBA{R: 240, G: 190, B: 70, A: 255}
	case ModuleInteraction:
		return color.RGBA{R: 120, G: 220, B: 120, A: 255}
	case ModulePresentation:
		return color.RGBA{R: 220, G: 120, B: 220, A: 255}
	}
	return color.RGBA{R: 200, G: 200, B: 200, A: 255}
}

type Module struct {
	Name     string
	Category ModuleCategory
	Value    any
}

// Modules is the named registry of sibling modules on an entity.
type Modules struct {
	byName map[string]Module
}

func (m *Modules) Register(name string, category ModuleCategory, value any) {
	if m.byName == nil {
		m.byName = make(map[string]Module)
	}
	m.byName[name] = Module{Name: name, Category: category, Value: value}
}

// Lookup returns the module registered under name.
func (m *Modules) Lookup(name string) (Module, error) {
	if m != nil {
		if mod, ok := m.byName[name]; ok {
			return mod, nil
		}
	}
	return Module{}, fmt.Errorf("%w: %q", ErrModuleNotFound, name)
}

// All returns the registered modules sorted by name.
func (m *Modules) All() []Module {
	if m == nil {
		return nil
	}
	out := make([]Module, 0, len(m.byName))
	for _, mod := range m.byName {
		out = append(out, mod)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

var ModulesComponent = NewComponent[Modules]()
