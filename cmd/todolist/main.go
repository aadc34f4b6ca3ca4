package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todolist/internal/config"
	"github.com/sandeepkv93/todolist/internal/logging"
	"github.com/sandeepkv93/todolist/internal/storage"
	"github.com/sandeepkv93/todolist/internal/todo"
	"github.com/sandeepkv93/todolist/internal/update"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "todolist failed: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var flags config.Flags

	cmd := &cobra.Command{
		Use:           "todolist",
		Short:         "A persistent to-do list in the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return err
			}
			cfg = config.ApplyFlags(cfg, cmd, flags)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	config.RegisterFlags(cmd, &flags)
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, closer, err := logging.New(logging.Options{
		File:    cfg.LogFile,
		Level:   cfg.LogLevel,
		Verbose: cfg.Verbose,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := storage.Open(ctx, cfg.DBPath, storage.SchemaVersion)
	if err != nil {
		logger.Error("database failed to open", "path", cfg.DBPath, "err", err)
		return fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}
	defer store.Close()

	logger.Debug("database initialised", "path", cfg.DBPath, "version", storage.SchemaVersion)
	if store.Upgraded() {
		logger.Debug("object store created", "store", storage.StoreName)
	}

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	model := update.NewModel(ctx, todo.NewService(store, logger), update.Options{
		Logger: logger,
		Mouse:  cfg.Mouse,
	})
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		logger.Error("program exited", "err", err)
		return err
	}
	return nil
}
