package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-adventure/internal/assets"
	"github.com/vovakirdan/tui-adventure/internal/hooks"
)

var hooksCmd = &cobra.Command{
	Use:   "hooks [dir]",
	Short: "List script hook kinds and the modules in a directory",
	Long: `Lists every hook kind a script module can use, then loads the modules in
dir (default: the built-in scripts) and reports which ones would run.
Modules that fail to load are reported on stderr.

Examples:
  adventure hooks
  adventure hooks ./scripts`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHooks,
}

func runHooks(_ *cobra.Command, args []string) error {
	fmt.Println("Hook kinds:")
	fmt.Println()

	kinds := hooks.Kinds()
	maxLen := 4
	for _, k := range kinds {
		maxLen = max(maxLen, len(k.Kind))
	}
	for _, k := range kinds {
		fmt.Printf("  %-*s  %s\n", maxLen, k.Kind, k.Summary)
	}

	var fsys fs.FS = assets.Builtin()
	dir, label := "scripts", "built-in scripts"
	if len(args) == 1 {
		fsys, dir, label = os.DirFS(args[0]), ".", args[0]
	}

	stderr := log.NewWithOptions(os.Stderr, log.Options{Prefix: "hooks"})
	loaded, err := hooks.LoadDir(fsys, dir, flagSeed, stderr)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Modules in %s:\n", label)
	fmt.Println()
	if len(loaded) == 0 {
		fmt.Println("  (none)")
		return nil
	}
	for _, h := range loaded {
		fmt.Printf("  %s\n", h.Name())
	}
	return nil
}
