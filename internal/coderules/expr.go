package coderules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/ext"
	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gobeam/internal/design"
)

// Definition is a set of capacity formulas written as CEL expressions.
//
// Expressions see these variables, all doubles keyed by name:
//
//	section  d, b, A, Ix, Iy, Zx, Zy, E
//	strength every material strength of the section (fb, fs, fc, fy…)
//	k        k1…k12, 1.0 unless given in the design parameters
//	param    phi, lay (restraint spacing), members, span
//	f        factors evaluated so far, in order
//
// and the ext.Math library (math.sqrt, math.least, math.greatest…).
type Definition struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Factors     []Factor `json:"factors,omitempty" yaml:"factors,omitempty"`
	Bending     string   `json:"bending" yaml:"bending"`
	Shear       string   `json:"shear" yaml:"shear"`
}

// Factor is a named intermediate expression
type Factor struct {
	Name string `json:"name" yaml:"name"`
	Expr string `json:"expr" yaml:"expr"`
}

// Expr is a compiled Definition. It is safe for concurrent use.
type Expr struct {
	def     Definition
	factors []cel.Program
	bending cel.Program
	shear   cel.Program
}

// costLimit bounds the evaluation cost of a single expression
const costLimit = 100000

func newEnv() (*cel.Env, error) {
	doubles := cel.MapType(cel.StringType, cel.DoubleType)
	return cel.NewEnv(
		cel.Variable("section", doubles),
		cel.Variable("strength", doubles),
		cel.Variable("k", doubles),
		cel.Variable("param", doubles),
		cel.Variable("f", doubles),
		ext.Math(),
	)
}

// Compile type checks and compiles every expression of def
func Compile(def Definition) (*Expr, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("rules definition must have a name")
	}
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	compile := func(what, src string) (cel.Program, error) {
		if strings.TrimSpace(src) == "" {
			return nil, fmt.Errorf("rules %q: %s expression is empty", def.Name, what)
		}
		ast, issues := env.Compile(src)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("rules %q: %s: compile error: %w", def.Name, what, issues.Err())
		}
		if t := ast.OutputType(); !t.IsExactType(cel.DoubleType) && !t.IsExactType(cel.DynType) {
			return nil, fmt.Errorf("rules %q: %s must evaluate to double, got %s", def.Name, what, t)
		}
		prog, err := env.Program(ast, cel.CostLimit(costLimit))
		if err != nil {
			return nil, fmt.Errorf("rules %q: %s: program creation error: %w", def.Name, what, err)
		}
		return prog, nil
	}

	e := &Expr{def: def}
	for _, f := range def.Factors {
		if f.Name == "" {
			return nil, fmt.Errorf("rules %q: factor without name", def.Name)
		}
		prog, err := compile("factor "+f.Name, f.Expr)
		if err != nil {
			return nil, err
		}
		e.factors = append(e.factors, prog)
	}
	if e.bending, err = compile("bending", def.Bending); err != nil {
		return nil, err
	}
	if e.shear, err = compile("shear", def.Shear); err != nil {
		return nil, err
	}
	return e, nil
}

// Name implements design.CodeRules
func (e *Expr) Name() string { return e.def.Name }

// Definition returns the source formulas
func (e *Expr) Definition() Definition { return e.def }

// Capacity implements design.CodeRules
func (e *Expr) Capacity(in design.CapacityInput) (design.Capacity, error) {
	vars := activation(in)
	f := vars["f"].(map[string]float64)

	for i, prog := range e.factors {
		v, err := evalDouble(prog, vars)
		if err != nil {
			return design.Capacity{}, fmt.Errorf("rules %q: factor %s: %w", e.def.Name, e.def.Factors[i].Name, err)
		}
		f[e.def.Factors[i].Name] = v
	}

	bending, err := evalDouble(e.bending, vars)
	if err != nil {
		return design.Capacity{}, fmt.Errorf("rules %q: bending: %w", e.def.Name, err)
	}
	shear, err := evalDouble(e.shear, vars)
	if err != nil {
		return design.Capacity{}, fmt.Errorf("rules %q: shear: %w", e.def.Name, err)
	}
	return design.Capacity{Bending: bending, Shear: shear, Factors: f}, nil
}

func activation(in design.CapacityInput) map[string]any {
	s, p := in.Section, in.Params

	k := make(map[string]float64, 12)
	for i := 1; i <= 12; i++ {
		name := fmt.Sprintf("k%d", i)
		k[name] = p.Factor(name)
	}
	for name, v := range p.K {
		k[name] = v
	}

	strength := make(map[string]float64, len(s.Strengths))
	for name, v := range s.Strengths {
		strength[name] = v
	}

	return map[string]any{
		"section": map[string]float64{
			"d": s.D, "b": s.B, "A": s.A,
			"Ix": s.Ix, "Iy": s.Iy, "Zx": s.Zx, "Zy": s.Zy, "E": s.E,
		},
		"strength": strength,
		"k":        k,
		"param": map[string]float64{
			"phi":     p.Phi,
			"lay":     p.RestraintSpacing,
			"members": float64(p.MemberCount),
			"span":    in.Span,
		},
		"f": make(map[string]float64),
	}
}

func evalDouble(prog cel.Program, vars map[string]any) (float64, error) {
	out, _, err := prog.Eval(vars)
	if err != nil {
		return 0, err
	}
	switch v := out.Value().(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("expression returned %s, want double", out.Type().TypeName())
}

// rulesFile is the on-disk layout of a rules file
type rulesFile struct {
	Rules []Definition `json:"rules" yaml:"rules"`
}

// LoadFile compiles every definition of a YAML or JSON rules file
func LoadFile(path string) ([]*Expr, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rules, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return rules, nil
}

// Parse compiles every definition of YAML or JSON rules data
func Parse(data []byte) ([]*Expr, error) {
	// JSON is valid YAML
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	return compileAll(f.Rules)
}

func compileAll(defs []Definition) ([]*Expr, error) {
	out := make([]*Expr, 0, len(defs))
	for _, def := range defs {
		e, err := Compile(def)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
