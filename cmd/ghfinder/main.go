package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/naveenspark/ghfinder/internal/config"
	"github.com/naveenspark/ghfinder/internal/logger"
	"github.com/naveenspark/ghfinder/internal/tui"
	"github.com/naveenspark/ghfinder/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:      "ghfinder",
		Usage:     "Search GitHub accounts by login from the terminal",
		ArgsUsage: "[query]",
		Version:   version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
				Value: defaultConfigPath(),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			searchCommand(),
			userCommand(),
			openCommand(),
			loginCommand(),
			logoutCommand(),
			configCommand(),
			versionCommand(),
		},
	}
}

func defaultConfigPath() string {
	path, err := config.DefaultPath()
	if err != nil {
		return ""
	}
	return path
}

// env is everything a command needs after configuration is resolved.
type env struct {
	cfg    *config.Config
	log    *zap.SugaredLogger
	client *client.Client
}

func setup(c *cli.Command) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level
	if c.Bool("debug") {
		level = "debug"
	}
	log, err := logger.New(level, cfg.Logging.File)
	if err != nil {
		return nil, err
	}
	gh, err := client.New(cfg.API.BaseURL, cfg.API.Token,
		client.WithLogger(log),
		client.WithTimeout(cfg.API.Timeout),
		client.WithDetails(cfg.Search.Details),
	)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, client: gh}, nil
}

func (e *env) close() {
	_ = e.log.Sync() //nolint:errcheck // best-effort flush on exit
}

func runTUI(ctx context.Context, c *cli.Command) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	query := strings.Join(c.Args().Slice(), " ")
	e.log.Infow("starting tui", "version", version, "base_url", e.cfg.API.BaseURL, "authenticated", e.cfg.API.Token != "")

	app := tui.NewApp(e.client, tui.Options{
		Version:      version,
		Debounce:     e.cfg.Search.Debounce,
		InitialQuery: query,
		Log:          e.log,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
