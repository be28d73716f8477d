package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/lowaak/zbf-timer/internal/trainer"
)

// bellCueSink rings the terminal bell on out
type bellCueSink struct {
	out io.Writer
}

func (b bellCueSink) Emit(trainer.CueName, float64, time.Duration) {
	_, _ = fmt.Fprint(b.out, "\a")
}

// transitionPrinter prints a line whenever the phase, round or move changes
type transitionPrinter struct {
	out  io.Writer
	last trainer.DisplayModel
}

func (p *transitionPrinter) Present(dm trainer.DisplayModel) {
	if dm.Kind != trainer.WorkoutKindHIIT {
		return
	}
	if dm.PhaseLabel == p.last.PhaseLabel && dm.ProgressLabel == p.last.ProgressLabel && dm.CurrentLabel == p.last.CurrentLabel {
		return
	}
	p.last = dm
	_, _ = fmt.Fprintf(p.out, "%-5s  round %-5s  %3ds  %s\n", dm.PhaseLabel, dm.ProgressLabel, dm.SecondsLeft, dm.CurrentLabel)
	for _, cue := range dm.UpcomingCues {
		_, _ = fmt.Fprintf(p.out, "       - %s\n", cue)
	}
}

func newHIITCmd() *cobra.Command {
	var work, rest, rounds int
	var quiet bool

	hiit := &cobra.Command{
		Use:   "hiit",
		Short: "Run the saved HIIT circuit without the UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.close()
			logger := a.logs.Logger
			out := cmd.OutOrStdout()

			plans := a.persistence.Load(cmd.Context())
			if len(plans.HIIT.Movements) == 0 {
				for _, ex := range a.catalog.ByType(trainer.ExerciseTypeHIIT) {
					plans.HIIT.Movements = append(plans.HIIT.Movements, ex.HIITMovement())
				}
				_, _ = fmt.Fprintf(out, "no saved HIIT moves, using all %d catalog moves\n", len(plans.HIIT.Movements))
			}
			if cmd.Flags().Changed("work") {
				plans.HIIT.WorkSeconds = work
			}
			if cmd.Flags().Changed("rest") {
				plans.HIIT.RestSeconds = rest
			}
			if cmd.Flags().Changed("rounds") {
				plans.HIIT.Rounds = rounds
			}

			var cues trainer.CueSink = trainer.NopCueSink{}
			if a.cfg.Audio.Enabled && !quiet {
				cues = bellCueSink{out: out}
			}

			// No persistence: flag overrides stay out of the saved plan
			workoutManager := trainer.NewWorkoutManager(trainer.NewWorkoutManagerArg{
				Sink:   &transitionPrinter{out: out},
				Cues:   cues,
				Logger: logger,
				Manual: true,
			})
			defer workoutManager.Shutdown()
			workoutManager.LoadPlans(plans)

			if err := workoutManager.StartHIIT(); err != nil {
				return err
			}
			settings := workoutManager.HIITState().Settings
			_, _ = fmt.Fprintf(out, "%d rounds of %v work / %v rest\n", settings.Rounds, settings.Work, settings.Rest)

			ticker := time.NewTicker(a.cfg.Runner.TickInterval)
			defer ticker.Stop()
			for workoutManager.Active() == trainer.WorkoutKindHIIT {
				select {
				case <-cmd.Context().Done():
					workoutManager.ResetHIIT()
					_, _ = fmt.Fprintln(out, "stopped")
					return nil
				case <-ticker.C:
					workoutManager.Tick(time.Now())
				}
			}
			return nil
		},
	}
	hiit.Flags().IntVar(&work, "work", trainer.DefaultHIITWorkSeconds, "work seconds per round")
	hiit.Flags().IntVar(&rest, "rest", trainer.DefaultHIITRestSeconds, "rest seconds per round")
	hiit.Flags().IntVar(&rounds, "rounds", trainer.DefaultHIITRounds, "number of rounds")
	hiit.Flags().BoolVar(&quiet, "quiet", false, "no terminal bell")
	return hiit
}
