package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/section"
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Browse the section library",
	Long: `List and inspect the sections of a section library.

The library is a JSON file given with --sections (or sections.file in
the configuration). Sections are rectangles (b, d) or polygons of
vertices, in mm and MPa.

Example library file:
{
  "sections": [
    {"name": "290x45 SG8", "material": "sawn timber", "b": 45, "d": 290,
     "E": 8000, "strengths": {"fb": 14, "fs": 3.8}},
    {"name": "T-Beam", "material": "reinforced concrete", "E": 24870,
     "strengths": {"fc": 28, "fy": 415},
     "vertices": [{"x": 0, "y": 0}, {"x": 300, "y": 0}, {"x": 300, "y": 400},
                  {"x": 600, "y": 400}, {"x": 600, "y": 500}, {"x": 0, "y": 500}],
     "reinforcement": [{"y": 65, "area": 1256.64, "description": "4-20mm"}]}
  ]
}`,
}

var sectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the sections of the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := requireLibrary()
		if err != nil {
			return err
		}

		printHeader("SECTION LIBRARY")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Name\tMaterial\tA (mm²)\tIx (mm⁴)\tZx (mm³)\n")
		fmt.Fprintf(w, "  ────\t────────\t───────\t────────\t────────\n")
		for _, name := range lib.Names() {
			s, _ := lib.Get(name)
			p := s.CalculateProperties()
			fmt.Fprintf(w, "  %s\t%s\t%.0f\t%.4e\t%.4e\n", s.Name, s.Material, p.Area, p.Ix, p.Zx)
		}
		w.Flush()
		fmt.Println()
		return nil
	},
}

var sectionShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show the properties of a section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := requireLibrary()
		if err != nil {
			return err
		}
		s, ok := lib.Get(args[0])
		if !ok {
			return fmt.Errorf("section %q not found (available: %v)", args[0], lib.Names())
		}
		p := s.CalculateProperties()

		printHeader("SECTION - " + s.Name)
		if s.Description != "" {
			fmt.Printf("  %s\n\n", s.Description)
		}

		printSection("Geometry")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Width:\t%.1f mm\n", p.Width)
		fmt.Fprintf(w, "  Height:\t%.1f mm\n", p.Height)
		fmt.Fprintf(w, "  Area:\t%.1f mm²\n", p.Area)
		fmt.Fprintf(w, "  Centroid:\t(%.1f, %.1f) mm\n", p.CentroidX, p.CentroidY)
		fmt.Fprintf(w, "  Ix:\t%.4e mm⁴\n", p.Ix)
		fmt.Fprintf(w, "  Iy:\t%.4e mm⁴\n", p.Iy)
		fmt.Fprintf(w, "  Zx:\t%.4e mm³\n", p.Zx)
		fmt.Fprintf(w, "  Zy:\t%.4e mm³\n", p.Zy)
		w.Flush()
		fmt.Println()

		printSection("Material")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		if s.Material != "" {
			fmt.Fprintf(w, "  Material:\t%s\n", s.Material)
		}
		fmt.Fprintf(w, "  E:\t%.0f MPa\n", s.E)
		names := make([]string, 0, len(s.Strengths))
		for name := range s.Strengths {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %s:\t%.2f MPa\n", name, s.Strengths[name])
		}
		w.Flush()
		fmt.Println()

		if len(s.Reinforcement) > 0 {
			printSection("Reinforcement")
			w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "  y (mm)\tArea (mm²)\tType\tBars\n")
			for _, l := range s.Reinforcement {
				fmt.Fprintf(w, "  %.1f\t%.1f\t%s\t%s\n", l.Y, l.Area, l.Type, l.Description)
			}
			fmt.Fprintf(w, "  Tension steel:\t%.1f mm²\t\t\n", p.TotalTensionSteel)
			fmt.Fprintf(w, "  Effective depth:\t%.1f mm\t\t\n", p.EffectiveDepth)
			fmt.Fprintf(w, "  Width at d:\t%.1f mm\t\t\n", s.WidthAtDepth(p.EffectiveDepth))
			if p.TotalCompressionSteel > 0 {
				fmt.Fprintf(w, "  Compression steel:\t%.1f mm²\t\t\n", p.TotalCompressionSteel)
				fmt.Fprintf(w, "  d':\t%.1f mm\t\t\n", p.CompressionCover)
			}
			w.Flush()
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sectionCmd)
	sectionCmd.AddCommand(sectionListCmd, sectionShowCmd)
}

func requireLibrary() (*section.Library, error) {
	lib, err := loadLibrary()
	if err != nil {
		return nil, err
	}
	if lib == nil {
		return nil, fmt.Errorf("no section library; use --sections or set sections.file")
	}
	return lib, nil
}
