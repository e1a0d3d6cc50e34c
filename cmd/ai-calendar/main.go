package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/51348761z/ai-calendar/internal/app"
	"github.com/51348761z/ai-calendar/internal/config"
	"github.com/51348761z/ai-calendar/internal/domain"
	"github.com/51348761z/ai-calendar/internal/ics"
	"github.com/51348761z/ai-calendar/internal/tray"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	cliApp := &cli.App{
		Name:           "ai-calendar",
		Usage:          "Local calendar service with ICS export and AI preparation advice.",
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			serveCommand(),
			exportCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		slog.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the calendar API server.",
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx)
		},
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level(cfg.LogLevel)}))
	suggester, err := app.BuildSuggester(cfg)
	if err != nil {
		return err
	}
	logger.Info("starting", "bind", cfg.BindAddress, "suggester", suggester.Name())
	tr := tray.New("AI Calendar", nil)
	application := app.New(cfg, nil, suggester, tr, logger)
	return application.Run(ctx)
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Serialize a JSON event list into an iCalendar file.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Value: "events.json", Usage: "JSON file holding the event list."},
			&cli.StringFlag{Name: "output", Value: ics.ExportFilename, Usage: "Destination .ics file."},
		},
		Action: func(c *cli.Context) error {
			return exportEvents(c.String("input"), c.String("output"))
		},
	}
}

func exportEvents(inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read events: %w", err)
	}
	var events []domain.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return fmt.Errorf("parse events: %w", err)
	}
	doc := ics.NewEncoder().Encode(events)
	if err := os.WriteFile(outputPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write ics: %w", err)
	}
	fmt.Printf("exported %d events to %s\n", len(events), outputPath)
	return nil
}

func level(v string) slog.Level {
	switch v {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
