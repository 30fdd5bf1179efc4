package section

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/alexiusacademia/gobeam/internal/design"
	"github.com/alexiusacademia/gobeam/internal/model"
)

// Library is a set of named sections
type Library struct {
	sections map[string]*Section
}

// libraryFile is the on-disk layout of a section library
type libraryFile struct {
	Sections []*Section `json:"sections"`
}

// NewLibrary creates a library from validated sections. Names must be unique.
func NewLibrary(sections ...*Section) (*Library, error) {
	lib := &Library{sections: make(map[string]*Section, len(sections))}
	for _, s := range sections {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := lib.sections[s.Name]; dup {
			return nil, &ValidationError{msg: fmt.Sprintf("duplicate section %q", s.Name)}
		}
		lib.sections[s.Name] = s
	}
	return lib, nil
}

// ParseLibrary decodes a JSON section library
func ParseLibrary(data []byte) (*Library, error) {
	var f libraryFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("section library: %w", err)
	}
	return NewLibrary(f.Sections...)
}

// LoadFromFile loads a section library from a JSON file
func LoadFromFile(filepath string) (*Library, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return ParseLibrary(data)
}

// Names returns the section names in sorted order
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.sections))
	for name := range l.sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the section definition
func (l *Library) Get(name string) (*Section, bool) {
	if l == nil {
		return nil, false
	}
	s, ok := l.sections[name]
	return s, ok
}

// Resolve returns the design properties of a named section in SI units
func (l *Library) Resolve(name string) (*design.SectionProperties, error) {
	s, ok := l.Get(name)
	if !ok {
		return nil, model.Errorf(model.UnresolvedSection, "resolve", "section %q not found", name)
	}
	return s.DesignProperties(), nil
}

// DesignProperties converts the section to SI design properties:
// mm → m, MPa → Pa
func (s *Section) DesignProperties() *design.SectionProperties {
	const (
		mm  = 1e-3
		mm2 = mm * mm
		mm3 = mm2 * mm
		mm4 = mm2 * mm2
		mpa = 1e6
	)

	p := s.CalculateProperties()
	out := &design.SectionProperties{
		Name: s.Name,
		D:    p.Height * mm,
		B:    p.Width * mm,
		A:    p.Area * mm2,
		Ix:   p.Ix * mm4,
		Iy:   p.Iy * mm4,
		Zx:   p.Zx * mm3,
		Zy:   p.Zy * mm3,
		E:    s.E * mpa,
	}
	if len(s.Strengths) > 0 {
		out.Strengths = make(map[string]float64, len(s.Strengths))
		for k, v := range s.Strengths {
			out.Strengths[k] = v * mpa
		}
	}
	if p.TotalTensionSteel > 0 || p.EffectiveDepth > 0 {
		out.Rebar = &design.Rebar{
			As:        p.TotalTensionSteel * mm2,
			AsComp:    p.TotalCompressionSteel * mm2,
			Depth:     p.EffectiveDepth * mm,
			CompDepth: p.CompressionCover * mm,
		}
	}
	return out
}
