package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:   "navboard",
		Usage:  "Personal bookmark navigation page with live search, scroll tracking and favicon resolution",
		Action: serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the navigation page API",
				Action: serve,
			},
			{
				Name:   "list",
				Usage:  "Print categories and cards",
				Action: list,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Only show cards matching a term"},
					&cli.BoolFlag{Name: "id", Usage: "Show card ids"},
				},
			},
			{
				Name:   "export",
				Usage:  "Export one category as JSON",
				Action: export,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Usage: "Category id", Required: true},
					&cli.StringFlag{Name: "out", Usage: "Output directory (defaults to content.export_dir)"},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve the bookmarks as an MCP server on stdio",
				Action: mcp,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
