package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/linkpy/neolang/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Write a starter nl.toml manifest in the current directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func runInit(_ *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	name := filepath.Base(wd)
	if len(args) == 1 {
		name = args[0]
	}

	path := filepath.Join(wd, "nl.toml")
	if err := project.WriteStarter(path, name); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
