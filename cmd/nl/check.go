package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/linkpy/neolang/internal/diagfmt"
	"github.com/linkpy/neolang/internal/driver"
	"github.com/linkpy/neolang/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.nl|directory>",
	Short: "Run the full pipeline and print the annotated AST",
	Long:  `Check tokenizes, parses, resolves and type-checks NL source; constants are evaluated at compile time. Exit code is nonzero when any error diagnostic was emitted.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|tree|sarif)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("ui", false, "show interactive progress for directory processing")
	checkCmd.Flags().Bool("no-cache", false, "ignore and do not update the disk cache")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	st, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if st.IsDir() {
		return runCheckDir(cmd, args[0], cfg)
	}
	return runCheckFile(cmd, args[0], cfg)
}

func runCheckFile(cmd *cobra.Command, path string, cfg settings) error {
	result, err := driver.Check(path, cfg.MaxDiagnostics)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
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
	case "sarif":
		result.Bag.Sort()
		if err := diagfmt.Sarif(os.Stdout, result.Bag, result.FileSet, diagfmt.SarifRunMeta{
			ToolName:    "nl",
			ToolVersion: version.Version,
		}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	printDumps(result)
	if cfg.Timings {
		result.Timings.Print(os.Stderr)
	}

	if result.Bag.HasErrors() {
		os.Exit(1)
	}
	return nil
}

// printDumps honors the #dump_ast / #dump_code statement flags.
func printDumps(result *driver.CheckResult) {
	if !result.OK {
		return
	}
	if dumped := result.DumpASTStmts(); len(dumped) > 0 {
		fmt.Println("--- dump_ast ---")
		diagfmt.ASTPretty(os.Stdout, dumped, result.FileSet)
	}
	for _, dump := range result.Dumps {
		fmt.Printf("--- dump_code %s ---\n", dump.Name)
		for i, in := range dump.Code {
			fmt.Printf("%4d  %s\n", i, in)
		}
	}
}
