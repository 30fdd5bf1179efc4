package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/combination"
	"github.com/alexiusacademia/gobeam/internal/element"
	"github.com/alexiusacademia/gobeam/internal/model"
)

var (
	// Unfactored actions per load case (kN or kN-m)
	actionDead       float64
	actionLive       float64
	actionRoof       float64
	actionWind       float64
	actionEarthquake float64
	actionRain       float64
	actionSnow       float64

	// Options
	combineFile   string
	combinePreset string
	combineAll    bool
)

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Combine load cases with load combination factors",
	Long: `Combine independently labelled load cases into factored loads.

With --file, the loads of an element are combined for each of its load
combinations and the combined magnitudes are listed.

Without --file, unfactored actions (moment, shear or reaction) given per
load case are factored with a combination preset and the governing
combination is reported.

Load Cases:
  Dead, Live, Roof Live, Wind, Earthquake, Rain, Snow

Examples:
  # Combined loads of an element
  gobeam combine -f joist.json

  # Factored moment from unfactored moments
  gobeam combine --dead 50 --live 30

  # With wind, all combinations of AS/NZS 1170.0
  gobeam combine --dead 50 --live 30 --wind 20 --preset asnzs1170 --all`,
	RunE: runCombine,
}

func init() {
	rootCmd.AddCommand(combineCmd)

	combineCmd.Flags().Float64VarP(&actionDead, "dead", "d", 0, "Action due to dead load")
	combineCmd.Flags().Float64VarP(&actionLive, "live", "l", 0, "Action due to live load")
	combineCmd.Flags().Float64VarP(&actionRoof, "roof", "r", 0, "Action due to roof live load")
	combineCmd.Flags().Float64VarP(&actionWind, "wind", "w", 0, "Action due to wind load")
	combineCmd.Flags().Float64VarP(&actionEarthquake, "earthquake", "e", 0, "Action due to earthquake load")
	combineCmd.Flags().Float64VarP(&actionRain, "rain", "R", 0, "Action due to rain load")
	combineCmd.Flags().Float64VarP(&actionSnow, "snow", "s", 0, "Action due to snow load")

	combineCmd.Flags().StringVarP(&combineFile, "file", "f", "", "Element JSON file whose loads are combined")
	combineCmd.Flags().StringVarP(&combinePreset, "preset", "p", "nscp", "Combination preset ("+strings.Join(element.PresetNames(), ", ")+")")
	combineCmd.Flags().BoolVarP(&combineAll, "all", "a", false, "Show all load combination results")
}

func runCombine(cmd *cobra.Command, args []string) error {
	if combineFile != "" {
		return combineElement(combineFile)
	}

	actions := combination.Actions{}
	for lc, v := range map[model.LoadCase]float64{
		model.Dead:       actionDead,
		model.Live:       actionLive,
		model.RoofLive:   actionRoof,
		model.Wind:       actionWind,
		model.Earthquake: actionEarthquake,
		model.Rain:       actionRain,
		model.Snow:       actionSnow,
	} {
		if v != 0 {
			actions[lc] = v
		}
	}
	if len(actions) == 0 {
		return fmt.Errorf("provide at least one unfactored action or an element file (see 'gobeam combine --help')")
	}

	combos, err := element.Preset(combinePreset)
	if err != nil {
		return err
	}

	printHeader("FACTORED ACTION - " + strings.ToUpper(combinePreset))

	printSection("Unfactored actions")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, lc := range []model.LoadCase{model.Dead, model.Live, model.RoofLive, model.Wind, model.Earthquake, model.Rain, model.Snow} {
		if v, ok := actions[lc]; ok {
			fmt.Fprintf(w, "  %s:\t%.2f\n", lc, v)
		}
	}
	w.Flush()
	fmt.Println()

	value, governing, ok := combination.Governing(actions, combos)
	if !ok {
		return fmt.Errorf("preset %q has no ultimate or serviceability combinations", combinePreset)
	}

	if combineAll {
		printSection("Load combinations")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Name\tCombination\tType\tFactored\n")
		fmt.Fprintf(w, "  ────\t───────────\t────\t────────\n")
		for _, c := range combos {
			if !c.Defined() {
				continue
			}
			marker := ""
			if c.Name == governing.Name {
				marker = " ← GOVERNS"
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\t%.2f%s\n", c.Name, c.Description, c.Type, c.FactoredValue(actions), marker)
		}
		w.Flush()
		fmt.Println()
	}

	printSection("Result")
	fmt.Printf("  Governing Combination: %s (%s)\n", governing.Name, governing.Description)
	fmt.Println()
	fmt.Printf("  ╔═══════════════════════════════════╗\n")
	fmt.Printf("  ║  FACTORED ACTION = %.2f\n", value)
	fmt.Printf("  ╚═══════════════════════════════════╝\n")
	fmt.Println()
	return nil
}

// combineElement lists the combined loads of each element combination
func combineElement(path string) error {
	e, err := loadElement(path)
	if err != nil {
		return err
	}
	combos, err := e.LoadCombinations()
	if err != nil {
		return err
	}

	printHeader("COMBINED LOADS")
	if e.Name != "" {
		fmt.Printf("  Element: %s\n", e.Name)
	}
	fmt.Printf("  Load cases: %s\n\n", joinCases(combination.Cases(e.Loads)))

	for _, c := range combos {
		loads, ok := combination.Combine(e.Loads, c)
		if !ok {
			continue
		}
		printSection(c.Name)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Type\tPosition (m)\tMagnitude (kN, kN/m)\n")
		for _, l := range loads {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", l.Type, joinFloats(l.Position, 1), joinFloats(l.Magnitude, 1e-3))
		}
		w.Flush()
		if combination.IsZero(loads) {
			fmt.Println("  (all loads zero)")
		}
		fmt.Println()
	}
	return nil
}

func joinCases(cases []model.LoadCase) string {
	s := make([]string, len(cases))
	for i, c := range cases {
		s[i] = string(c)
	}
	return strings.Join(s, ", ")
}

func joinFloats(v []float64, scale float64) string {
	s := make([]string, len(v))
	for i, x := range v {
		s[i] = fmt.Sprintf("%.3f", x*scale)
	}
	return strings.Join(s, " → ")
}
