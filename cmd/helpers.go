package cmd

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/coderules"
	"github.com/alexiusacademia/gobeam/internal/design"
	"github.com/alexiusacademia/gobeam/internal/element"
	"github.com/alexiusacademia/gobeam/internal/logger"
	"github.com/alexiusacademia/gobeam/internal/section"
)

const rule = "───────────────────────────────────────────────────────────────"

// printHeader prints a boxed report title
func printHeader(title string) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("%*s\n", (63+len([]rune(title)))/2, title)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
}

// printSection prints a report section heading
func printSection(title string) {
	fmt.Println(strings.ToUpper(title) + ":")
	fmt.Println(rule)
}

// Display conversions from SI
func kN(n float64) float64   { return n / 1e3 }
func kNm(nm float64) float64 { return nm / 1e3 }
func mm(m float64) float64   { return m * 1e3 }
func gpa(pa float64) float64 { return pa / 1e9 }

// loadElement reads the element file
func loadElement(path string) (*element.Element, error) {
	e, err := element.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading element: %w", err)
	}
	logger.Debug("element loaded", "file", path, "name", e.Name,
		"supports", len(e.Supports), "loads", len(e.Loads))
	return e, nil
}

// loadLibrary reads the configured section library, nil when none is set
func loadLibrary() (*section.Library, error) {
	if cfg.Sections.File == "" {
		return nil, nil
	}
	lib, err := section.LoadFromFile(cfg.Sections.File)
	if err != nil {
		return nil, fmt.Errorf("loading sections: %w", err)
	}
	logger.Debug("section library loaded", "file", cfg.Sections.File, "sections", len(lib.Names()))
	return lib, nil
}

// resolveSection looks the element section up, tolerating a missing library
// when the element carries its properties inline
func resolveSection(e *element.Element) (*design.SectionProperties, error) {
	lib, err := loadLibrary()
	if err != nil {
		return nil, err
	}
	if lib == nil {
		return e.ResolveSection(nil)
	}
	return e.ResolveSection(lib)
}

// newRegistry returns the built-in code rules plus those of the rules file
func newRegistry() (*coderules.Registry, error) {
	r := coderules.NewRegistry()
	if cfg.Rules.File != "" {
		if err := r.LoadFile(cfg.Rules.File); err != nil {
			return nil, fmt.Errorf("loading rules: %w", err)
		}
		logger.Debug("rules file loaded", "file", cfg.Rules.File, "rules", len(r.Names()))
	}
	return r, nil
}
