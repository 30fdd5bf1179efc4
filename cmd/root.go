package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alexiusacademia/gobeam/internal/config"
	"github.com/alexiusacademia/gobeam/internal/logger"
	"github.com/alexiusacademia/gobeam/internal/version"
)

var (
	configFile string

	v   = config.New()
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gobeam",
	Short: "Beam analysis and design tool",
	Long: `gobeam - Go Beam Analysis and Design

A CLI tool for structural engineers to analyze straight beams and
check them against design code capacity.

This tool helps structural engineers perform:
  - Reactions, shear, moment and deflection of determinate and
    continuous beams (stiffness method)
  - Factored load combinations (NSCP 2015, AS/NZS 1170.0 or custom)
  - Bending and shear capacity checks per combination with the
    governing combination (NZS 3603 timber, NSCP 2015 concrete,
    or formulas supplied in a rules file)

Element files are JSON in SI units (m, N, Pa); results are printed
in kN, kN-m and mm.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(v, configFile); err != nil {
			return err
		}
		return logger.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gobeam v%-48s║\n", version.Version)
		fmt.Println("  ║   Go Beam Analysis and Design                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Commands:")
		fmt.Println("    • analyze   reactions and diagrams per load combination")
		fmt.Println("    • combine   combined loads, or factored actions from flags")
		fmt.Println("    • design    capacity check and governing combination")
		fmt.Println("    • section   section library")
		fmt.Println("    • rules     available design code rules")
		fmt.Println()
		fmt.Println("  Use 'gobeam --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Config file (default ./gobeam.yaml)")
	pf.String("log-level", "warn", "Log level (debug, info, warn, error)")
	pf.String("log-format", "text", "Log format (text, json)")
	pf.String("sections", "", "Section library JSON file")
	pf.String("rules-file", "", "Rules file with formula-based code rules (YAML or JSON)")
	pf.Int("subdivisions", 0, "Diagram stations per element (default from config)")

	bind(config.LogLevel, "log-level")
	bind(config.LogFormat, "log-format")
	bind(config.SectionsFile, "sections")
	bind(config.RulesFile, "rules-file")
	bind(config.SolverSubdivisions, "subdivisions")
}

// bind ties a setting to a persistent flag; the flag wins only when set
func bind(key, flag string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// settings exposes the viper instance to subcommands binding their own flags
func settings() *viper.Viper { return v }
