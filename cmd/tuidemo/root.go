package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	tui "github.com/grindlemire/tuikit"
	"github.com/grindlemire/tuikit/internal/debug"
)

type flags struct {
	config   string
	fps      int
	debugLog string
	noMouse  bool
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:          "tuidemo",
		Short:        "Run the widget demo",
		Long:         "Runs a small scene of boxes, buttons and sliders. Press the quit key (Ctrl+c by default) to exit.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "path to a TOML config file")
	cmd.Flags().IntVar(&f.fps, "fps", 0, "target frame rate; overrides refresh_rate_ms")
	cmd.Flags().StringVar(&f.debugLog, "debug-log", "", "write a debug log to this file")
	cmd.Flags().BoolVar(&f.noMouse, "no-mouse", false, "disable mouse reporting")
	return cmd
}

func run(ctx context.Context, f flags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := tui.DefaultConfig()
	if f.config != "" {
		var err error
		if cfg, err = tui.LoadConfig(f.config); err != nil {
			return err
		}
	}

	logPath := cfg.LogFile
	if f.debugLog != "" {
		logPath = f.debugLog
	}
	if logPath != "" {
		if err := debug.Init(logPath); err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer debug.Close()
	}

	tty, err := tui.OpenTTY()
	if err != nil {
		return err
	}
	cols, rows, err := tty.Size()
	if err != nil {
		tty.Close()
		return fmt.Errorf("terminal size: %w", err)
	}

	canvas := tui.NewCanvas(tty, cols, rows)
	root := tui.NewRoot(canvas)
	defer root.Close()

	if _, err := buildScene(root, cfg); err != nil {
		tty.Close()
		return err
	}

	opts := []tui.SchedulerOption{tui.WithTerminal(tty), tui.WithConfig(cfg)}
	if f.fps > 0 {
		opts = append(opts, tui.WithFrameRate(f.fps))
	}
	if f.noMouse {
		opts = append(opts, tui.WithoutMouse())
	}
	sched, err := tui.NewScheduler(root, opts...)
	if err != nil {
		tty.Close()
		return err
	}
	debug.Log("tuidemo: %s, %dx%d, profile %s", sched, cols, rows, canvas.Profile())

	for _, err := range sched.Run(ctx) {
		if err != nil {
			return err
		}
	}
	return nil
}
