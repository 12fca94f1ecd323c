package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/unbolt/internal/core"
	"github.com/vovakirdan/unbolt/internal/levels"
	"github.com/vovakirdan/unbolt/internal/scene"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check level files",
	Long: `Parse and validate level files. A level that stores a solution in
its metadata is also played, and must end in a win.

Examples:
  unbolt validate ./levels/mine.yaml
  unbolt validate ./levels/*.yaml --policy latest`,
	Args: cobra.MinimumNArgs(1),
	Run:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}
	opts, err := scene.OptionsFromConfig(cfg, newLogger())
	if err != nil {
		fatalf("%v", err)
	}
	p := newPrinter()

	failed := 0
	for _, path := range args {
		if err := validateFile(path, opts); err != nil {
			failed++
			fmt.Printf("%s  %s: %v\n", p.paint(core.ColorRed, "FAIL"), path, err)
			continue
		}
		fmt.Printf("%s  %s\n", p.paint(core.ColorGreen, "ok"), path)
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d files failed\n", failed, len(args))
		os.Exit(1)
	}
}

func validateFile(path string, opts scene.Options) error {
	lvl, err := levels.LoadFile(path)
	if err != nil {
		return err
	}

	solution := lvl.Metadata["solution"]
	if solution == "" {
		return nil
	}
	moves, err := scene.ParseMoves(solution)
	if err != nil {
		return fmt.Errorf("solution: %w", err)
	}

	sc, err := scene.New(lvl, opts)
	if err != nil {
		return err
	}
	defer sc.Close()

	res, err := sc.Run(moves)
	if err != nil {
		return fmt.Errorf("solution: %w", err)
	}
	if !res.Won {
		return fmt.Errorf("solution does not win after %d moves", res.Swaps)
	}
	return nil
}
