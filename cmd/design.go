package cmd

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/coderules"
	"github.com/alexiusacademia/gobeam/internal/config"
	"github.com/alexiusacademia/gobeam/internal/design"
	"github.com/alexiusacademia/gobeam/internal/logger"
)

var (
	designFile   string
	designStrict bool
)

var designCmd = &cobra.Command{
	Use:   "design",
	Short: "Check a beam against code capacity for every load combination",
	Long: `Check bending and shear utilization of a beam for each of its load
combinations and report the governing combination.

The code rules are taken from --rules, otherwise from the element's
"design.code", otherwise from the configuration (design.rules).
Built-in rules:
  nzs3603   NZS 3603 sawn timber (φ k1 k4 k5 k8)
  nscp2015  NSCP 2015 reinforced concrete, rectangular sections
Further rules can be defined as formulas in a rules file (--rules-file).

A combination passes when both utilizations are at most 1.0.
Reaction combinations report the support reaction they expose.

Examples:
  gobeam design -f joist.json --sections sections.json
  gobeam design -f girder.json --rules nscp2015
  gobeam design -f joist.json --rules-file rules.yaml --rules my-timber`,
	RunE: runDesign,
}

func init() {
	rootCmd.AddCommand(designCmd)

	designCmd.Flags().StringVarP(&designFile, "file", "f", "", "Path to element JSON file [required]")
	designCmd.Flags().String("rules", "", "Code rules to apply (see 'gobeam rules')")
	designCmd.Flags().Int("workers", 0, "Combinations checked concurrently (0 for all)")
	designCmd.Flags().Float64("tolerance", design.DefaultTolerance, "Accepted utilization above 1.0")
	designCmd.Flags().BoolVar(&designStrict, "strict", false, "Exit with an error when the beam fails")
	designCmd.MarkFlagRequired("file")

	for key, flag := range map[string]string{
		config.DesignRules:     "rules",
		config.DesignWorkers:   "workers",
		config.DesignTolerance: "tolerance",
	} {
		if err := settings().BindPFlag(key, designCmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func runDesign(cmd *cobra.Command, args []string) error {
	e, err := loadElement(designFile)
	if err != nil {
		return err
	}
	sec, err := resolveSection(e)
	if err != nil {
		return err
	}
	g := e.Geometry(sec)

	combos, err := e.LoadCombinations()
	if err != nil {
		return err
	}
	if len(combos) == 0 {
		return fmt.Errorf("element %q has no load combinations", e.Name)
	}

	name := cfg.Design.Rules
	if e.Design.Code != "" && !cmd.Flags().Changed("rules") {
		name = e.Design.Code
	}
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	rules, err := reg.Lookup(name)
	if err != nil {
		return err
	}

	checker := design.NewChecker(rules)
	checker.Solver = cfg.NewSolver()
	checker.Tolerance = cfg.Design.Tolerance
	checker.Workers = cfg.Design.Workers
	logger.Info("design started", "element", e.Name, "rules", rules.Name(),
		"section", sec.Name, "combinations", len(combos))

	outcomes, err := checker.CheckAll(context.Background(), g, e.Loads, combos, sec, e.Design)
	if err != nil {
		return err
	}

	printHeader("BEAM DESIGN - " + rules.Name())
	printGeometry(e.Name, g)
	printSectionProperties(sec)

	printSection("Load combinations")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Combination\tM* (kN-m)\tφMn (kN-m)\tV* (kN)\tφVn (kN)\tUtil.\tStatus\n")
	fmt.Fprintf(w, "  ───────────\t─────────\t──────────\t───────\t────────\t─────\t──────\n")
	gi := design.GoverningIndex(outcomes)
	checked := gi >= 0
	for i, o := range outcomes {
		switch {
		case o.Err != nil:
			fmt.Fprintf(w, "  %s\t\t\t\t\t\tERROR: %v\n", o.Combination.Name, o.Err)
		case o.Skipped:
			fmt.Fprintf(w, "  %s\t\t\t\t\t\tskipped (%s)\n", o.Combination.Name, o.Reason)
		case o.Result != nil:
			r := o.Result
			marker := ""
			if i == gi {
				marker = " ← GOVERNS"
			}
			fmt.Fprintf(w, "  %s\t%.2f\t%.2f\t%.2f\t%.2f\t%.3f\t%s%s\n", o.Combination.Name,
				kNm(r.MaxBending.Value), kNm(r.BendingCapacity),
				kN(r.MaxShear.Value), kN(r.ShearCapacity),
				r.MaxUtilization(), r.CapacityData.Status, marker)
		}
	}
	w.Flush()
	fmt.Println()

	printReactions(outcomes)

	passed := design.Passed(outcomes)
	printSection("Result")
	if checked {
		governing := outcomes[gi]
		r := governing.Result
		fmt.Printf("  Governing Combination: %s\n", governing.Combination.Name)
		fmt.Printf("  Bending utilization:   %.3f at x = %.3f m\n", r.CapacityData.Utilization.Bending, r.MaxBending.X)
		fmt.Printf("  Shear utilization:     %.3f at x = %.3f m\n", r.CapacityData.Utilization.Shear, r.MaxShear.X)
		fmt.Printf("  Max deflection:        %.2f mm (%s)\n", mm(r.MaxDeflection.Value), governing.Combination.Name)
		fmt.Println()
		if rules.Name() == (coderules.Concrete{}).Name() {
			printRequiredSteel(sec, r.MaxBending.Value)
		}
	} else {
		fmt.Println("  No combination was checked.")
	}

	status := "NOT CHECKED"
	switch {
	case passed:
		status = string(design.Pass)
	case checked || hasErrors(outcomes):
		status = string(design.Fail)
	}
	fmt.Printf("  ╔═══════════════════════════════════╗\n")
	fmt.Printf("  ║  DESIGN STATUS: %-18s║\n", status)
	fmt.Printf("  ╚═══════════════════════════════════╝\n")
	fmt.Println()

	if designStrict && !passed {
		if !checked {
			return fmt.Errorf("element %q: no combination was checked", e.Name)
		}
		return fmt.Errorf("element %q fails the design check", e.Name)
	}
	return nil
}

func hasErrors(outcomes []design.Outcome) bool {
	for _, o := range outcomes {
		if o.Err != nil {
			return true
		}
	}
	return false
}

func printSectionProperties(s *design.SectionProperties) {
	printSection("Section")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Name:\t%s\n", s.Name)
	fmt.Fprintf(w, "  b × d:\t%.0f × %.0f mm\n", mm(s.B), mm(s.D))
	fmt.Fprintf(w, "  A:\t%.0f mm²\n", s.A*1e6)
	fmt.Fprintf(w, "  Zx:\t%.4e mm³\n", s.Zx*1e9)
	for _, k := range []string{"fb", "fs", "fc", "fy"} {
		if v, ok := s.Strength(k); ok {
			fmt.Fprintf(w, "  %s:\t%.1f MPa\n", k, v/1e6)
		}
	}
	if s.Rebar != nil {
		fmt.Fprintf(w, "  As:\t%.0f mm²\n", s.Rebar.As*1e6)
		if s.Rebar.AsComp > 0 {
			fmt.Fprintf(w, "  As':\t%.0f mm²\n", s.Rebar.AsComp*1e6)
		}
	}
	w.Flush()
	fmt.Println()
}

func printReactions(outcomes []design.Outcome) {
	var found bool
	for _, o := range outcomes {
		if o.Reaction != nil {
			found = true
			break
		}
	}
	if !found {
		return
	}
	printSection("Reactions for load transfer")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Combination\tSupport (m)\tFy (kN)\tMz (kN-m)\n")
	for _, o := range outcomes {
		if o.Reaction == nil {
			continue
		}
		fmt.Fprintf(w, "  %s\t%.3f\t%.3f\t%.3f\n", o.Combination.Name, o.Combination.Support,
			kN(o.Reaction.Fy), kNm(o.Reaction.Mz))
	}
	w.Flush()
	fmt.Println()
}

// printRequiredSteel compares the provided tension steel with the steel
// needed for the governing moment
func printRequiredSteel(s *design.SectionProperties, moment float64) {
	b, err := coderules.Beam(s)
	if err != nil {
		logger.Warn("required steel skipped", "error", err)
		return
	}
	req, err := b.Required(kNm(math.Abs(moment)))
	if err != nil {
		logger.Warn("required steel skipped", "error", err)
		return
	}

	printSection("Reinforcement")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  As required:\t%.0f mm²\n", math.Max(req.As, req.AsMin))
	if req.Doubly {
		fmt.Fprintf(w, "  As' required:\t%.0f mm²\n", req.Asc)
	}
	fmt.Fprintf(w, "  As provided:\t%.0f mm²\n", s.Rebar.As*1e6)
	fmt.Fprintf(w, "  As min / max:\t%.0f / %.0f mm²\n", req.AsMin, req.AsMax)
	if req.Message != "" {
		fmt.Fprintf(w, "  Note:\t%s\n", req.Message)
	}
	w.Flush()
	fmt.Println()
}
