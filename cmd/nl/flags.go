package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/linkpy/neolang/internal/diagfmt"
	"github.com/linkpy/neolang/internal/project"
)

// settings merges the nearest manifest with the root command's persistent
// flags; explicit flags win.
type settings struct {
	MaxDiagnostics int
	UseColor       bool
	Quiet          bool
	Timings        bool
	Cache          bool
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	manifest, _, err := project.LoadNearest(".")
	if err != nil {
		return settings{}, err
	}

	flags := cmd.Root().PersistentFlags()
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return settings{}, err
	}
	if maxDiagnostics <= 0 {
		maxDiagnostics = manifest.Compiler.MaxDiagnostics
	}

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return settings{}, err
	}
	if colorFlag == "auto" && manifest.Compiler.Color != "" {
		colorFlag = manifest.Compiler.Color
	}

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return settings{}, err
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return settings{}, err
	}

	return settings{
		MaxDiagnostics: maxDiagnostics,
		UseColor:       colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr)),
		Quiet:          quiet,
		Timings:        timings,
		Cache:          manifest.Compiler.Cache,
	}, nil
}

func (s settings) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.UseColor,
		ShowNotes: true,
	}
}
