package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/unbolt/internal/config"
	"github.com/vovakirdan/unbolt/internal/levels"
	"github.com/vovakirdan/unbolt/internal/registry"
	"github.com/vovakirdan/unbolt/internal/scene"
	"github.com/vovakirdan/unbolt/internal/storage"
)

var (
	flagMoves  string
	flagSettle int
	flagTrace  bool
	flagNoSave bool
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Replay moves against a level",
	Long: `Load a level and apply a list of moves. Each move takes the bolt out
of one fastener and puts it into an empty one, then lets the world settle.

<level> is a level ID (built-in or from levels.dir) or a path to a level
file. Without --moves the level's stored solution is used.

Examples:
  unbolt play intro
  unbolt play cross --moves "a1>s1,a2>s2" --trace
  unbolt play triple --policy first
  unbolt play ./levels/mine.yaml --settle 300`,
	Args:         cobra.ExactArgs(1),
	RunE:         runPlay,
	SilenceUsage: true,
}

func init() {
	playCmd.Flags().StringVarP(&flagMoves, "moves", "m", "", "Moves as bolt>slot pairs, comma separated")
	playCmd.Flags().IntVar(&flagSettle, "settle", -1, "Ticks simulated after each move (-1 = use config)")
	playCmd.Flags().BoolVarP(&flagTrace, "trace", "t", false, "Print the event trace")
	playCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagSettle >= 0 {
		cfg.Runtime.SettleTicks = flagSettle
	}
	logger := newLogger()

	lvl, err := resolveLevel(args[0], cfg)
	if err != nil {
		return fmt.Errorf("%w\nRun 'unbolt levels' to see available levels", err)
	}

	moveList := flagMoves
	if moveList == "" {
		moveList = lvl.Metadata["solution"]
	}
	moves, err := scene.ParseMoves(moveList)
	if err != nil {
		return err
	}

	opts, err := scene.OptionsFromConfig(cfg, logger)
	if err != nil {
		return err
	}
	res, runErr := replay(newPrinter(), lvl, moves, opts)
	if res.LevelID == "" {
		return runErr
	}

	if !flagNoSave {
		saveRun(logger, res)
	}
	return runErr
}

// replay plays moves on a fresh scene and prints the outcome. A zero
// Result means the scene could not be built.
func replay(p printer, lvl levels.Level, moves []scene.Move, opts scene.Options) (scene.Result, error) {
	sc, err := scene.New(lvl, opts)
	if err != nil {
		return scene.Result{}, err
	}
	defer sc.Close()

	res, runErr := sc.Run(moves)
	printResult(p, lvl, sc, res)
	return res, runErr
}

// resolveLevel finds a level by file path, built-in ID or configured
// levels directory, in that order.
func resolveLevel(arg string, cfg config.Config) (levels.Level, error) {
	if slices.Contains(levels.FormatExtensions(), strings.ToLower(filepath.Ext(arg))) {
		return levels.LoadFile(arg)
	}

	lvl, err := registry.Create(arg)
	if err == nil || !errors.Is(err, registry.ErrUnknownLevel) || cfg.Levels.Dir == "" {
		return lvl, err
	}
	return levels.NewLoader(cfg.Levels.Dir).LoadByID(arg)
}

func printResult(p printer, lvl levels.Level, sc *scene.Scene, res scene.Result) {
	p.header(fmt.Sprintf("%s (%s)", lvl.Name, lvl.ID))
	fmt.Printf("Policy: %s\n", res.Policy)
	fmt.Printf("Moves:  %s\n", scene.FormatMoves(res.Moves))
	fmt.Println()

	if flagTrace {
		fmt.Println("Trace:")
		for _, e := range sc.Trace() {
			p.trace(e)
		}
		fmt.Println()
	}

	fmt.Println("Details:")
	for _, d := range res.Details {
		p.detail(d)
	}
	fmt.Println()

	fmt.Printf("Result: %s  swaps=%d  destroyed=%d/%d  ticks=%d\n",
		p.outcome(res.Won), res.Swaps, res.Destroyed, len(res.Details), res.Ticks)
}

func saveRun(logger *log.Logger, res scene.Result) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		// The run already happened, losing the record is not fatal.
		logger.Warn("could not open runs database", "err", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRun(runRecord(res))
	if err != nil {
		logger.Warn("could not save run", "err", err)
		return
	}
	logger.Debug("run saved", "id", id)
}

// runRecord converts a scene result into a record ready to save.
func runRecord(res scene.Result) storage.RunRecord {
	return storage.RunRecord{
		LevelID:   res.LevelID,
		Policy:    res.Policy,
		Moves:     scene.FormatMoves(res.Moves),
		Won:       res.Won,
		Swaps:     res.Swaps,
		Destroyed: res.Destroyed,
		Ticks:     int64(res.Ticks),
	}
}
