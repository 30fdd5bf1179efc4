// Package element reads beam element files: geometry, per-case loads,
// load combinations, section and design parameters in one JSON document.
package element

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/alexiusacademia/gobeam/internal/combination"
	"github.com/alexiusacademia/gobeam/internal/design"
	"github.com/alexiusacademia/gobeam/internal/model"
	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/nzs"
)

// Presets are the built-in load combination sets by name
var Presets = map[string]func() []combination.LoadCombination{
	"nscp":            nscp.LoadCombinations,
	"nscp-simplified": nscp.SimplifiedCombinations,
	"asnzs1170":       nzs.LoadCombinations,
}

// PresetNames returns the preset names in sorted order
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns a copy of the named combination set
func Preset(name string) ([]combination.LoadCombination, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown combination preset %q (available: %v)", name, PresetNames())
	}
	return p(), nil
}

// Element is one beam with everything needed to analyze and design it.
// Units are SI: m, N, Pa.
type Element struct {
	Name string `json:"name"`

	model.BeamGeometry

	// Preset names a built-in combination set, used in addition to Combinations
	Preset       string                        `json:"preset,omitempty"`
	Combinations []combination.LoadCombination `json:"combinations,omitempty"`

	// Section names a library section; SectionProperties gives it inline
	Section           string                    `json:"section,omitempty"`
	SectionProperties *design.SectionProperties `json:"sectionProperties,omitempty"`

	Design design.DesignParameters `json:"design"`
}

// Resolver finds section properties by name
type Resolver interface {
	Resolve(name string) (*design.SectionProperties, error)
}

// Parse decodes an element document
func Parse(data []byte) (*Element, error) {
	var e Element
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("element: %w", err)
	}
	return &e, nil
}

// LoadFromFile reads an element from a JSON file
func LoadFromFile(path string) (*Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// LoadCombinations returns the preset followed by the explicit combinations
func (e *Element) LoadCombinations() ([]combination.LoadCombination, error) {
	var out []combination.LoadCombination
	if e.Preset != "" {
		p, err := Preset(e.Preset)
		if err != nil {
			return nil, err
		}
		out = append(out, p...)
	}
	return append(out, e.Combinations...), nil
}

// ResolveSection returns the inline section properties or looks the named
// section up. With neither, the error is UnresolvedSection.
func (e *Element) ResolveSection(lib Resolver) (*design.SectionProperties, error) {
	if e.SectionProperties != nil {
		return e.SectionProperties, nil
	}
	if e.Section == "" {
		return nil, model.Errorf(model.UnresolvedSection, "resolve", "element %q has no section", e.Name)
	}
	if lib == nil {
		return nil, model.Errorf(model.UnresolvedSection, "resolve", "section %q: no section library", e.Section)
	}
	return lib.Resolve(e.Section)
}

// Geometry returns the beam geometry with missing stiffness properties
// (E, I, A) taken from the section, when one is given
func (e *Element) Geometry(s *design.SectionProperties) model.BeamGeometry {
	g := e.BeamGeometry
	if s == nil {
		return g
	}
	if g.E == 0 {
		g.E = s.E
	}
	if g.I == 0 {
		g.I = s.Ix
	}
	if g.A == 0 {
		g.A = s.A
	}
	return g
}
