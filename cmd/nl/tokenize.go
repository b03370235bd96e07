package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/linkpy/neolang/internal/diagfmt"
	"github.com/linkpy/neolang/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.nl>",
	Short: "Tokenize an NL source file and dump the token stream",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(args[0], cfg.MaxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
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
		diagfmt.Tokens(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		if err := diagfmt.TokensJSON(os.Stdout, result.Tokens, result.FileSet); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if result.Bag.HasErrors() {
		os.Exit(1)
	}
	return nil
}
