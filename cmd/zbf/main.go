package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lowaak/zbf-timer/internal/config"
	"github.com/lowaak/zbf-timer/internal/logging"
	"github.com/lowaak/zbf-timer/internal/store"
	"github.com/lowaak/zbf-timer/internal/trainer"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "zbf",
		Short:         "Zero Barrier Fitness workout timer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd)
		},
	}
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(newHIITCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newClearCmd())
	root.AddCommand(newCatalogCmd())
	return root
}

// app holds the pieces every command shares
type app struct {
	cfg         config.Config
	logs        *logging.Logging
	store       *store.SQLiteStore
	catalog     *trainer.Catalog
	persistence *trainer.PlanPersistence
}

// openApp loads config, opens the log and the database. Call close when done.
func openApp(cmd *cobra.Command, logToStderr bool) (*app, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	opts := logging.Options{
		File:       cfg.LogPath(),
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}
	if logToStderr {
		opts.Extra = cmd.ErrOrStderr()
	}
	logs := logging.New(opts)
	logger := logs.Logger

	st, err := store.OpenSQLite(cmd.Context(), cfg.DBPath())
	if err != nil {
		_ = logs.Close()
		return nil, err
	}
	logger.Printf("Main: Data in %s", cfg.DBPath())

	catalog := trainer.LoadCatalog(cfg.Catalog.Path, logger)
	persistence := trainer.NewPlanPersistence(st, catalog, logger)
	persistence.SetDefaults(defaultPlans(cfg))

	return &app{
		cfg:         cfg,
		logs:        logs,
		store:       st,
		catalog:     catalog,
		persistence: persistence,
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logs.Logger.Printf("Main: Error closing store: %v", err)
	}
	_ = a.logs.Close()
}

// defaultPlans turns the configured defaults into fresh-install plans
func defaultPlans(cfg config.Config) trainer.SavedPlans {
	plans := trainer.DefaultSavedPlans()
	plans.HIIT.WorkSeconds = cfg.HIIT.Work
	plans.HIIT.RestSeconds = cfg.HIIT.Rest
	plans.HIIT.Rounds = cfg.HIIT.Rounds
	plans.Strength.TransitionRest = cfg.Strength.TransitionRest
	return plans
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write all saved data to a JSON backup",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.close()

			path := a.cfg.Export.Path
			if len(args) == 1 {
				path = args[0]
			}
			if err := a.persistence.Export(cmd.Context(), path); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", path)
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all saved data with a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.persistence.Import(cmd.Context(), args[0]); err != nil {
				return err
			}
			plans := a.persistence.Load(cmd.Context())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %s: %d HIIT moves, %d strength movements\n",
				args[0], len(plans.HIIT.Movements), len(plans.Strength.Movements))
			return nil
		},
	}
}

func newClearCmd() *cobra.Command {
	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all saved plans and settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear without --yes")
			}
			a, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.persistence.ClearAll(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "all data cleared")
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting everything")
	return clearCmd
}

func newCatalogCmd() *cobra.Command {
	var kind string
	catalog := &cobra.Command{
		Use:   "catalog",
		Short: "List the exercise catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			logs := logging.New(logging.Options{
				File:       cfg.LogPath(),
				MaxSizeMB:  cfg.Log.MaxSizeMB,
				MaxBackups: cfg.Log.MaxBackups,
				MaxAgeDays: cfg.Log.MaxAgeDays,
			})
			defer func() { _ = logs.Close() }()

			c := trainer.LoadCatalog(cfg.Catalog.Path, logs.Logger)
			exercises := c.All()
			if kind != "" {
				exercises = c.ByType(trainer.ExerciseType(kind))
			}
			for _, ex := range exercises {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", ex.Type, ex.ID, ex.Name)
			}
			return nil
		},
	}
	catalog.Flags().StringVar(&kind, "type", "", "only list this type: hiit|strength")
	return catalog
}
