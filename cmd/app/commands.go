package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/urfave/cli/v3"

	"github.com/starford/navboard/internal"
	"github.com/starford/navboard/internal/mcpserver"
	"github.com/starford/navboard/internal/printer"
	"github.com/starford/navboard/internal/storage"
	pkgconfig "github.com/starford/navboard/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

// quietLogger keeps one-shot commands from mixing JSON logs into their
// output.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func list(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	comp, err := internal.Build(cfg, quietLogger())
	if err != nil {
		return err
	}
	defer comp.Close()

	comp.Search.Apply(cmd.String("search"))
	cats := comp.Document.Categories()
	printer.New(cmd.Bool("id")).Page(cats, comp.Search.Evaluate(cats), comp.Prefs.LastCategory())
	return nil
}

func export(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	comp, err := internal.Build(cfg, quietLogger())
	if err != nil {
		return err
	}
	defer comp.Close()

	out, err := exportTarget(comp, cmd.String("out"))
	if err != nil {
		return err
	}

	exp, err := comp.Service.ExportCategory(ctx, cmd.String("category"))
	if err != nil {
		return err
	}
	data, err := exp.JSON()
	if err != nil {
		return err
	}
	if err := out.Write(exp.Filename(), data); err != nil {
		return err
	}
	_, _ = color.New(color.FgGreen).Fprintf(color.Output, "exported %d cards to %s\n", len(exp.Cards), exp.Filename())
	return nil
}

func exportTarget(comp *internal.Components, dir string) (storage.Provider, error) {
	if dir == "" {
		return comp.ExportStore()
	}
	dir, err := homedir.Expand(dir)
	if err != nil {
		return nil, err
	}
	return storage.NewFS(dir)
}

func mcp(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.App.LogLevel}))
	slog.SetDefault(logger)

	comp, err := internal.Build(cfg, logger)
	if err != nil {
		return err
	}
	defer comp.Close()

	exports, err := comp.ExportStore()
	if err != nil {
		return err
	}
	return mcpserver.New(comp.Service, comp.Tracker, exports).ServeStdio()
}
