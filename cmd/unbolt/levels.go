package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/unbolt/internal/core"
	"github.com/vovakirdan/unbolt/internal/levels"
	"github.com/vovakirdan/unbolt/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long: `Shows the built-in levels and, when levels.dir is configured, the
levels found in that directory.`,
	Run: runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}
	p := newPrinter()

	builtin := registry.List()

	var user []levels.Level
	if cfg.Levels.Dir != "" {
		user, err = levels.NewLoader(cfg.Levels.Dir).LoadAll()
		if err != nil {
			newLogger().Warn("cannot load user levels", "dir", cfg.Levels.Dir, "err", err)
		}
	}

	if len(builtin) == 0 && len(user) == 0 {
		fmt.Println("No levels available.")
		return
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range builtin {
		maxIDLen = max(maxIDLen, len(l.ID))
	}
	for _, l := range user {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	p.header("Available levels:")
	fmt.Println()
	fmt.Printf("  %-*s  %-7s  %-5s  %-8s  %s\n", maxIDLen, "ID", "Details", "Bolts", "Policy", "Title")
	fmt.Printf("  %-*s  %-7s  %-5s  %-8s  %s\n", maxIDLen, "--", "-------", "-----", "------", "-----")

	for _, l := range builtin {
		fmt.Printf("  %-*s  %-7d  %-5d  %-8s  %s\n", maxIDLen, l.ID, l.Details, l.Bolts, l.Policy, l.Title)
	}
	for _, l := range user {
		fmt.Printf("  %-*s  %-7d  %-5d  %-8s  %s %s\n", maxIDLen, l.ID, len(l.Details), l.Bolts(), l.Policy.Label(), l.Name,
			p.paint(core.ColorGray, "("+l.FilePath+")"))
	}

	fmt.Println()
	fmt.Println("Run 'unbolt play <id>' to replay a level's solution.")
}
