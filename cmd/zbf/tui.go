package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"

	"github.com/lowaak/zbf-timer/internal/trainer"
)

// runTUI wires model, manager, controller and view, then blocks until the user quits
func runTUI(cmd *cobra.Command) error {
	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()
	logger := a.logs.Logger

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	tviewApp := tview.NewApplication().SetScreen(screen)

	cues := trainer.MultiCueSink{trainer.CueSinkFunc(func(name trainer.CueName, _ float64, _ time.Duration) {
		logger.Printf("Cue: %s", name)
	})}
	if a.cfg.Audio.Enabled {
		cues = append(cues, trainer.NewScreenBeepCueSink(screen))
	}

	model := trainer.NewUIModel(a.catalog, logger, a.logs.UILines)
	defer model.Shutdown()

	workoutManager := trainer.NewWorkoutManager(trainer.NewWorkoutManagerArg{
		Sink:         model,
		Persistence:  a.persistence,
		Cues:         cues,
		Logger:       logger,
		TickInterval: a.cfg.Runner.TickInterval,
	})
	workoutManager.LoadPlans(a.persistence.Load(cmd.Context()))

	controller := trainer.NewUIController(trainer.NewUIControllerArg{
		Model:          model,
		WorkoutManager: workoutManager,
		Persistence:    a.persistence,
		ExportPath:     a.cfg.Export.Path,
		Logger:         logger,
	})
	defer controller.Shutdown()

	view := trainer.NewBaseUIView(trainer.NewBaseUIViewArg{
		UIViewImpl:   trainer.NewCursesUIView(logger, tviewApp, model),
		UIModel:      model,
		UIController: controller,
		Logger:       logger,
	})
	defer view.Shutdown()

	logger.Println("Main: Starting UI")
	if err := view.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	logger.Println("Main: UI stopped")
	return nil
}
