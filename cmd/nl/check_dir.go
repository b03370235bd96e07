package main

import (
	"fmt"
	"os"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/linkpy/neolang/internal/diagfmt"
	"github.com/linkpy/neolang/internal/driver"
	"github.com/linkpy/neolang/internal/ui"
)

func runCheckDir(cmd *cobra.Command, dir string, cfg settings) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	files, err := driver.ListFiles(dir)
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "no .nl files under %s\n", dir)
		return nil
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	var cache *driver.DiskCache
	if cfg.Cache && !noCache {
		// cache is best-effort; without it everything is rechecked
		cache, _ = driver.OpenDiskCache("nl")
	}

	useUI, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return err
	}

	opts := driver.DirOptions{
		MaxDiagnostics: cfg.MaxDiagnostics,
		Jobs:           jobs,
		Cache:          cache,
	}

	var results []driver.DirResult
	if useUI && isTerminal(os.Stdout) {
		events := make(chan driver.Event, 64)
		opts.Events = events
		program := tea.NewProgram(ui.NewProgressModel("checking "+dir, files, events))

		checkErr := make(chan error, 1)
		go func() {
			var err error
			results, err = driver.CheckDir(cmd.Context(), files, opts)
			checkErr <- err
		}()
		if _, err := program.Run(); err != nil {
			return err
		}
		if err := <-checkErr; err != nil {
			return err
		}
	} else {
		if results, err = driver.CheckDir(cmd.Context(), files, opts); err != nil {
			return err
		}
	}

	failed := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
			failed++
		case r.Cached:
			// clean according to the cache
		case r.Result != nil:
			if r.Result.Bag.Len() > 0 && !cfg.Quiet {
				r.Result.Bag.Sort()
				diagfmt.Pretty(os.Stderr, r.Result.Bag, r.Result.FileSet, cfg.prettyOpts())
			}
			if !r.Result.OK {
				failed++
			}
		}
	}

	if !cfg.Quiet {
		fmt.Fprintf(os.Stderr, "checked %d files, %d failed\n", len(results), failed)
	}
	if failed > 0 {
		os.Exit(1)
	}
	return nil
}
