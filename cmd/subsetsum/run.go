package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/subsetsum/driver"
	"github.com/lixenwraith/subsetsum/genetic/tracking"
	"github.com/lixenwraith/subsetsum/monitor"
	"github.com/lixenwraith/subsetsum/parameter"
	"github.com/lixenwraith/subsetsum/persistence"
	"github.com/lixenwraith/subsetsum/report"
	"github.com/lixenwraith/subsetsum/status"
)

// newScreen is replaced in tests with a simulation screen
var newScreen = func() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

// withMonitor runs work while a live view renders registry
// Closing the view cancels work; finishing work closes the view
func withMonitor(ctx context.Context, registry *status.Registry, title string, work func(context.Context) error) error {
	screen, err := newScreen()
	if err != nil {
		return fmt.Errorf("monitor: %w", err)
	}
	defer screen.Fini()

	workCtx, cancelWork := context.WithCancel(ctx)
	defer cancelWork()
	viewCtx, cancelView := context.WithCancel(ctx)
	defer cancelView()

	var g errgroup.Group
	g.Go(func() error {
		defer cancelView()
		return work(workCtx)
	})
	g.Go(func() error {
		if err := monitor.New(screen, registry, title).Run(viewCtx); errors.Is(err, monitor.ErrQuit) {
			cancelWork()
		}
		return nil
	})
	return g.Wait()
}

// solveResult is the final state of one driven run
type solveResult struct {
	driver.Outcome
	ID      string
	Elapsed time.Duration
	Stats   tracking.MetricBundle
}

// drive runs one solver with progress output chosen by the app flags
// A cancelled run yields its last outcome together with the context error
func (a *app) drive(ctx context.Context, out io.Writer, title string, step driver.Stepper) (solveResult, error) {
	result := solveResult{ID: uuid.NewString()}
	registry := status.NewRegistry()
	collector := tracking.NewConvergenceCollector()
	d := &driver.Driver{
		Progress:  status.NewProgress(registry, title, result.ID),
		Collector: collector,
	}

	if !a.monitor && !a.quiet {
		printer := report.New(out)
		d.OnStep = func(o driver.Outcome) {
			if o.Generation%parameter.ProgressEvery == 0 || o.Completed {
				printer.Progress(o)
			}
		}
	}

	run := func(ctx context.Context) error {
		var err error
		result.Outcome, result.Elapsed, err = d.Run(ctx, step)
		return err
	}

	var err error
	if a.monitor {
		err = withMonitor(ctx, registry, "subsetsum "+title, run)
	} else {
		err = run(ctx)
	}

	result.Stats = collector.Finalize(nil)
	a.log.Info("run finished",
		zap.String("run", title),
		zap.String("run_id", result.ID),
		zap.Int("generations", result.Generation),
		zap.String("best_fitness", result.BestFitness.String()),
		zap.Float64("improvements", result.Stats[tracking.MetricImprovements]),
		zap.Duration("elapsed", result.Elapsed),
		zap.Error(err))
	return result, err
}

// save persists a finished run when --save is set
func (a *app) save(mode string, result solveResult, target decimal.Decimal) error {
	if a.savePath == "" {
		return nil
	}
	m := persistence.NewManager(a.savePath)
	name := mode + "-" + result.ID
	dto := persistence.FromOutcome(result.ID, mode, result.Outcome, target, result.Elapsed, result.Stats)
	if err := m.SaveRun(name, dto); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	a.log.Info("run saved", zap.String("path", m.FilePath(name)))
	return nil
}
