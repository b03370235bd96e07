package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/linkpy/neolang/internal/diagfmt"
	"github.com/linkpy/neolang/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.nl>",
	Short: "Parse an NL source file and output its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|tree)")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(args[0], cfg.MaxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.Len() > 0 && !cfg.Quiet {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, cfg.prettyOpts())
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	switch format {
	case "pretty":
		diagfmt.ASTPretty(os.Stdout, result.Stmts, result.FileSet)
	case "json":
		if err := diagfmt.ASTJSON(os.Stdout, result.Stmts); err != nil {
			return err
		}
	case "tree":
		diagfmt.ASTTree(os.Stdout, result.Stmts, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if result.Bag.HasErrors() {
		os.Exit(1)
	}
	return nil
}
