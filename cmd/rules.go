package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/coderules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available design code rules",
	Long: `List the built-in code rules and those defined in the rules file.

A rules file (YAML or JSON) defines capacities as CEL expressions:

rules:
  - name: my-timber
    description: NZS 3603 with k8 = 1
    factors:
      - name: phi
        expr: "param.phi > 0.0 ? param.phi : 0.8"
    bending: "f.phi * k.k1 * k.k4 * k.k5 * strength.fb * section.Zx"
    shear: "f.phi * k.k1 * k.k4 * k.k5 * strength.fs * 2.0 / 3.0 * section.A"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}

		printHeader("CODE RULES")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Name\tSource\tDescription\n")
		fmt.Fprintf(w, "  ────\t──────\t───────────\n")
		for _, name := range reg.Names() {
			rules, err := reg.Lookup(name)
			if err != nil {
				return err
			}
			source, desc := "built-in", ""
			switch r := rules.(type) {
			case *coderules.Expr:
				source, desc = "rules file", r.Definition().Description
			case coderules.Timber:
				desc = "NZS 3603 sawn timber"
			case coderules.Concrete:
				desc = "NSCP 2015 reinforced concrete"
			}
			marker := ""
			if name == cfg.Design.Rules {
				marker = " (default)"
			}
			fmt.Fprintf(w, "  %s%s\t%s\t%s\n", name, marker, source, desc)
		}
		w.Flush()
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
