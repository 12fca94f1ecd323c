// Package scene assembles a runnable puzzle from a level definition: the
// physics world, fasteners, details and the coordinator that links them.
package scene

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/unbolt/internal/config"
	"github.com/vovakirdan/unbolt/internal/core"
	"github.com/vovakirdan/unbolt/internal/event"
	"github.com/vovakirdan/unbolt/internal/levels"
	"github.com/vovakirdan/unbolt/internal/physics"
	"github.com/vovakirdan/unbolt/internal/puzzle"
)

// ErrUnknownFastener is returned when a click names no fastener.
var ErrUnknownFastener = errors.New("unknown fastener")

// Options configures scene construction.
type Options struct {
	Runtime       core.RuntimeConfig
	Physics       physics.Settings
	Policy        puzzle.Policy
	Notify        puzzle.NotifyMode
	DestroyBelowY float64
	Logger        *log.Logger
}

// DefaultOptions returns options matching the engine defaults.
func DefaultOptions() Options {
	return Options{
		Runtime:       core.DefaultConfig(),
		Physics:       physics.DefaultSettings(),
		Policy:        puzzle.DefaultPolicy(),
		Notify:        puzzle.NotifyOnUnfill,
		DestroyBelowY: puzzle.DefaultDestroyBelowY,
	}
}

// Scene is one loaded level. It is driven from a single goroutine.
type Scene struct {
	level   levels.Level
	runtime core.RuntimeConfig
	policy  puzzle.Policy

	world     *physics.World
	coord     *puzzle.Coordinator
	fasteners map[string]*puzzle.Fastener
	details   []*puzzle.Detail

	trace  []TraceEvent
	subs   event.Group
	logger *log.Logger
}

// New builds a scene. The level's own policy overrides are applied on
// top of opts.Policy.
func New(lvl levels.Level, opts Options) (*Scene, error) {
	if err := lvl.Validate(); err != nil {
		return nil, err
	}

	policy, err := lvl.Policy.Apply(opts.Policy)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", lvl.ID, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("level", lvl.ID)

	s := &Scene{
		level:     lvl,
		runtime:   opts.Runtime,
		policy:    policy,
		world:     physics.NewWorld(opts.Physics),
		coord:     puzzle.NewCoordinator(logger),
		fasteners: make(map[string]*puzzle.Fastener, len(lvl.Fasteners)),
		logger:    logger,
	}

	for _, f := range lvl.Fasteners {
		body := s.world.NewBody(f.Name, f.Pos, f.Size, physics.Static)
		s.fasteners[f.Name] = puzzle.NewFastener(puzzle.FastenerConfig{
			Name:        f.Name,
			Filled:      f.Filled,
			Body:        body,
			Coordinator: s.coord,
			Notify:      opts.Notify,
			Logger:      logger,
		})
	}

	// Details subscribe in level order, which fixes the order in which
	// they react to a shared fastener.
	for _, d := range lvl.Details {
		refs := make([]*puzzle.Fastener, 0, len(d.Fasteners))
		for _, name := range d.Fasteners {
			refs = append(refs, s.fasteners[name])
		}
		detail := puzzle.NewDetail(puzzle.DetailConfig{
			Name:          d.Name,
			Body:          s.world.NewBody(d.Name, d.Pos, d.Size, physics.Static),
			Fasteners:     refs,
			Policy:        policy,
			DestroyBelowY: opts.DestroyBelowY,
			Logger:        logger,
		})
		s.details = append(s.details, detail)
		s.coord.Register(detail)
		s.subs.Add(detail.Decisions().Subscribe(s.recordDecision))
	}

	s.subs.Add(s.coord.Selections().Subscribe(func(f *puzzle.Fastener) {
		s.record(TraceSelect, f.Name(), "")
	}))
	s.subs.Add(s.coord.Swapped().Subscribe(func(sw puzzle.Swap) {
		s.record(TraceSwap, sw.From.Name(), sw.To.Name())
	}))
	s.subs.Add(s.coord.Wins().Subscribe(func(moves int) {
		s.record(TraceWin, lvl.ID, fmt.Sprint(moves))
	}))

	logger.Debug("scene loaded",
		"fasteners", len(lvl.Fasteners),
		"details", len(lvl.Details),
		"policy", policy.String(),
	)
	return s, nil
}

func (s *Scene) Level() levels.Level              { return s.level }
func (s *Scene) Policy() puzzle.Policy            { return s.policy }
func (s *Scene) World() *physics.World            { return s.world }
func (s *Scene) Coordinator() *puzzle.Coordinator { return s.coord }
func (s *Scene) Details() []*puzzle.Detail        { return s.details }

// Fastener looks up a fastener by name.
func (s *Scene) Fastener(name string) (*puzzle.Fastener, bool) {
	f, ok := s.fasteners[name]
	return f, ok
}

// Click activates the named fastener.
func (s *Scene) Click(name string) error {
	f, ok := s.fasteners[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownFastener, name)
	}
	f.Activate()
	return nil
}

// Step advances physics by one tick and removes details that fell out of
// the world.
func (s *Scene) Step() {
	s.world.Step(s.runtime.Dt())
	for _, d := range s.details {
		d.CheckBounds()
	}
}

// Settle runs n ticks.
func (s *Scene) Settle(n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}

// Close releases all subscriptions held by the scene and its details.
func (s *Scene) Close() {
	for _, d := range s.details {
		d.Close()
	}
	s.subs.Close()
}

// OptionsFromConfig translates engine configuration into scene options.
func OptionsFromConfig(cfg config.Config, logger *log.Logger) (Options, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return Options{}, err
	}
	notify, err := cfg.NotifyMode()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Runtime:       cfg.RuntimeSettings(),
		Physics:       cfg.PhysicsSettings(),
		Policy:        policy,
		Notify:        notify,
		DestroyBelowY: cfg.Puzzle.DestroyBelowY,
		Logger:        logger,
	}, nil
}
