package cmd

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/combination"
	"github.com/alexiusacademia/gobeam/internal/element"
	"github.com/alexiusacademia/gobeam/internal/logger"
	"github.com/alexiusacademia/gobeam/internal/model"
)

var (
	analyzeFile        string
	analyzeCombination string
	analyzeCase        string
	analyzeTable       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a beam for its load combinations",
	Long: `Calculate support reactions and the shear, moment and deflection
diagrams of a beam defined in an element file.

Without options every load combination of the element is analyzed and
its extreme values are listed. Reaction combinations and combinations
whose loads are all zero are skipped.

Sign convention: forces and deflection upward positive, moment sagging
positive, reaction moments counter-clockwise positive.

Examples:
  gobeam analyze -f joist.json
  gobeam analyze -f joist.json --combination ULS-2 --table
  gobeam analyze -f joist.json --case Live`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Path to element JSON file [required]")
	analyzeCmd.Flags().StringVarP(&analyzeCombination, "combination", "c", "", "Analyze a single load combination")
	analyzeCmd.Flags().StringVar(&analyzeCase, "case", "", "Analyze a single unfactored load case (e.g. Dead, Live)")
	analyzeCmd.Flags().BoolVarP(&analyzeTable, "table", "t", false, "Print the sampled diagrams")
	analyzeCmd.MarkFlagRequired("file")
	analyzeCmd.MarkFlagsMutuallyExclusive("combination", "case")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	e, err := loadElement(analyzeFile)
	if err != nil {
		return err
	}
	g, err := stiffGeometry(e)
	if err != nil {
		return err
	}
	s := cfg.NewSolver()

	switch {
	case analyzeCase != "":
		loads := combination.CaseLoads(g.Loads, model.LoadCase(analyzeCase))
		if len(loads) == 0 {
			return fmt.Errorf("no loads of case %q", analyzeCase)
		}
		res, err := s.Solve(g.WithLoads(loads))
		if err != nil {
			return err
		}
		printHeader("BEAM ANALYSIS - LOAD CASE " + analyzeCase)
		printGeometry(e.Name, g)
		printResult(g, res)
		return nil

	case analyzeCombination != "":
		combos, err := e.LoadCombinations()
		if err != nil {
			return err
		}
		c, ok := findCombination(combos, analyzeCombination)
		if !ok {
			return fmt.Errorf("element has no combination %q", analyzeCombination)
		}
		loads, ok := combination.Combine(g.Loads, c)
		if !ok {
			return model.Errorf(model.UndefinedCombination, "analyze", "combination %q has nothing to analyze", c.Name)
		}
		res, err := s.Solve(g.WithLoads(loads))
		if err != nil {
			return err
		}
		printHeader("BEAM ANALYSIS - " + c.Name)
		printGeometry(e.Name, g)
		printFactors(c)
		printResult(g, res)
		return nil
	}

	combos, err := e.LoadCombinations()
	if err != nil {
		return err
	}
	if len(combos) == 0 {
		return fmt.Errorf("element %q has no load combinations; use --case to analyze a load case", e.Name)
	}

	printHeader("BEAM ANALYSIS - ALL COMBINATIONS")
	printGeometry(e.Name, g)

	printSection("Extreme values")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Combination\tV (kN)\tx (m)\tM (kN-m)\tx (m)\tδ (mm)\tx (m)\n")
	fmt.Fprintf(w, "  ───────────\t──────\t─────\t────────\t─────\t──────\t─────\n")
	for _, c := range combos {
		loads, ok := combination.Combine(g.Loads, c)
		if !ok || combination.IsZero(loads) {
			logger.Debug("combination skipped", "combination", c.Name, "type", c.Type)
			continue
		}
		res, err := s.Solve(g.WithLoads(loads))
		if err != nil {
			return fmt.Errorf("combination %q: %w", c.Name, err)
		}
		fmt.Fprintf(w, "  %s\t%.2f\t%.3f\t%.2f\t%.3f\t%.2f\t%.3f\n", c.Name,
			kN(res.MaxShear.Value), res.MaxShear.X,
			kNm(res.MaxBending.Value), res.MaxBending.X,
			mm(res.MaxDeflection.Value), res.MaxDeflection.X)
	}
	w.Flush()
	fmt.Println()
	return nil
}

// stiffGeometry completes E, I and A from the element section when the
// element does not give them
func stiffGeometry(e *element.Element) (model.BeamGeometry, error) {
	sec, err := resolveSection(e)
	if err != nil && !errors.Is(err, model.ErrUnresolvedSection) {
		return model.BeamGeometry{}, err
	}
	return e.Geometry(sec), nil
}

func findCombination(combos []combination.LoadCombination, name string) (combination.LoadCombination, bool) {
	for _, c := range combos {
		if c.Name == name {
			return c, true
		}
	}
	return combination.LoadCombination{}, false
}

func printGeometry(name string, g model.BeamGeometry) {
	printSection("Beam")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if name != "" {
		fmt.Fprintf(w, "  Element:\t%s\n", name)
	}
	fmt.Fprintf(w, "  Span:\t%.3f m\n", g.Span)
	fmt.Fprintf(w, "  E:\t%.2f GPa\n", gpa(g.E))
	fmt.Fprintf(w, "  I:\t%.4e m⁴\n", g.I)
	for _, s := range g.Supports {
		fmt.Fprintf(w, "  Support:\t%s at %.3f m\n", s.Fixity, s.Position)
	}
	fmt.Fprintf(w, "  Loads:\t%d\n", len(g.Loads))
	w.Flush()
	fmt.Println()
}

func printFactors(c combination.LoadCombination) {
	printSection("Load combination")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Name:\t%s\n", c.Name)
	if c.Description != "" {
		fmt.Fprintf(w, "  Description:\t%s\n", c.Description)
	}
	fmt.Fprintf(w, "  Type:\t%s\n", c.Type)
	for _, f := range c.Factors {
		fmt.Fprintf(w, "  %s:\t%.3g\n", f.LoadCase, f.Multiplier())
	}
	w.Flush()
	fmt.Println()
}

func printResult(g model.BeamGeometry, res *model.AnalysisResult) {
	printSection("Support reactions")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  x (m)\tFy (kN)\tMz (kN-m)\n")
	fmt.Fprintf(w, "  ─────\t───────\t─────────\n")
	xs := make([]float64, 0, len(res.Reactions))
	for x := range res.Reactions {
		xs = append(xs, x)
	}
	sort.Float64s(xs)
	for _, x := range xs {
		r := res.Reactions[x]
		fmt.Fprintf(w, "  %.3f\t%.3f\t%.3f\n", x, kN(r.Fy), kNm(r.Mz))
	}
	w.Flush()
	fmt.Println()

	printSection("Extreme values")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Max shear:\t%.3f kN\tat x = %.3f m\n", kN(res.MaxShear.Value), res.MaxShear.X)
	fmt.Fprintf(w, "  Max moment:\t%.3f kN-m\tat x = %.3f m\n", kNm(res.MaxBending.Value), res.MaxBending.X)
	fmt.Fprintf(w, "  Max deflection:\t%.3f mm\tat x = %.3f m\n", mm(res.MaxDeflection.Value), res.MaxDeflection.X)
	if d := res.MaxDeflection.Value; d != 0 {
		fmt.Fprintf(w, "  Span/deflection:\tL/%.0f\t\n", g.Span/abs(d))
	}
	w.Flush()
	fmt.Println()

	if !analyzeTable {
		return
	}
	printSection("Diagrams")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "x (m)\tV (kN)\tM (kN-m)\tδ (mm)\t\n")
	for i, x := range res.X {
		fmt.Fprintf(w, "%.3f\t%.3f\t%.3f\t%.3f\t\n", x, kN(res.Shear[i]), kNm(res.Moment[i]), mm(res.Deflection[i]))
	}
	w.Flush()
	fmt.Println()
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
