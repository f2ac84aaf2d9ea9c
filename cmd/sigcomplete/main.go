// Package main is the entry point for sigcomplete.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v3"

	"github.com/dshills/sigcomplete/internal/app"
	"github.com/dshills/sigcomplete/internal/config"
	"github.com/dshills/sigcomplete/internal/config/watcher"
	"github.com/dshills/sigcomplete/internal/logger"
	"github.com/dshills/sigcomplete/internal/renderer/terminal"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:      "sigcomplete",
		Usage:     "Edit text with signal name completion",
		Version:   version,
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML or YAML configuration file",
				Sources: cli.EnvVars("SIGCOMPLETE_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("SIGCOMPLETE_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Write logs to this file",
			},
			&cli.StringSliceFlag{
				Name:  "script",
				Usage: "Lua completion provider script (repeatable)",
			},
			&cli.StringFlag{
				Name:  "trigger",
				Usage: "Character that opens signal completion",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the command-line settings that override the config file.
type options struct {
	ConfigPath string
	LogLevel   string
	Scripts    []string
	Trigger    string
}

func optionsFrom(cmd *cli.Command) options {
	return options{
		ConfigPath: cmd.String("config"),
		LogLevel:   cmd.String("log-level"),
		Scripts:    cmd.StringSlice("script"),
		Trigger:    cmd.String("trigger"),
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Trigger != "" {
		cfg.Completion.Trigger = opts.Trigger
	}
	cfg.Scripts = append(cfg.Scripts, opts.Scripts...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openLog(path, level string) (*logger.Logger, func(), error) {
	if path == "" {
		return logger.New(level, io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return logger.New(level, f), func() { _ = f.Close() }, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	opts := optionsFrom(cmd)

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	log, closeLog, err := openLog(cmd.String("log-file"), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	var text string
	if cmd.Args().Len() > 0 {
		data, err := os.ReadFile(cmd.Args().First())
		if err != nil {
			return fmt.Errorf("reading %s: %w", cmd.Args().First(), err)
		}
		text = string(data)
	}

	session, err := app.NewSession(cfg, app.WithLogger(log), app.WithText(text))
	if err != nil {
		return err
	}
	defer session.Close()

	th, err := cfg.BuildTheme()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	term := terminal.New(screen, session, terminal.WithLogger(log), terminal.WithTheme(th))

	if opts.ConfigPath != "" {
		w, err := watcher.New(opts.ConfigPath, func(string) { reload(term, session, opts, log) }, watcher.WithLogger(log))
		if err != nil {
			log.Warn().Str("path", opts.ConfigPath).Err(err).Msg("config watch disabled")
		} else {
			defer w.Close()
		}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("trigger", string(cfg.TriggerRune())).Int("scripts", len(cfg.Scripts)).Msg("sigcomplete started")
	return term.Run(ctx)
}

// reload runs on the watcher goroutine; the session is only touched on
// the terminal loop.
func reload(term *terminal.Terminal, session *app.Session, opts options, log *logger.Logger) {
	cfg, err := loadConfig(opts)
	if err != nil {
		log.Warn().Str("path", opts.ConfigPath).Err(err).Msg("config reload failed")
		return
	}
	th, err := cfg.BuildTheme()
	if err != nil {
		log.Warn().Err(err).Msg("theme reload failed")
		return
	}

	err = term.Post(func() {
		if err := session.ApplyConfig(cfg); err != nil {
			log.Warn().Err(err).Msg("config applied with errors")
		}
		term.SetTheme(th)
	})
	if err != nil {
		log.Debug().Err(err).Msg("config reload dropped")
	}
}
