// Package cli provides the framefit command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"framefit/app"
	"framefit/hal"
	"framefit/internal/buildinfo"
	"framefit/internal/config"
	"framefit/internal/logging"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagKeys binds command-line flags to config keys.
var flagKeys = map[string]string{
	"width":     "canvas.width",
	"height":    "canvas.height",
	"smooth":    "canvas.smooth",
	"mode":      "canvas.mode",
	"headless":  "headless.enabled",
	"hz":        "headless.hz",
	"ticks":     "headless.ticks",
	"log-level": "logging.level",
}

// NewRootCmd creates the framefit command tree.
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		hud        bool
	)

	rootCmd := &cobra.Command{
		Use:           "framefit",
		Short:         "Letterboxed double-buffered drawing demo",
		Long:          `Opens a fixed-size canvas, draws a blinking eye into it and shows it letterboxed in a resizable window or headless.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := config.New(configPath)
			for flag, key := range flagKeys {
				if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return fmt.Errorf("bind --%s: %w", flag, err)
				}
			}
			return run(cmd, v, hud)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/framefit/framefit.toml)")

	f := rootCmd.Flags()
	f.Int("width", 800, "canvas width in pixels")
	f.Int("height", 450, "canvas height in pixels")
	f.Bool("smooth", true, "prefer high-quality rendering")
	f.String("mode", "fit", `fit/alignment flags, e.g. "fit|top|left" or "fit|debug"`)
	f.Bool("headless", false, "run without a window")
	f.Int("hz", 60, "paint rate in headless mode")
	f.Uint64("ticks", 0, "stop after N paints in headless mode (0 = run until interrupted)")
	f.String("log-level", "info", "trace, debug, info, warn, error or disabled")
	f.BoolVar(&hud, "hud", true, "draw the fps and poke counter")

	rootCmd.AddCommand(newFitCmd(), newVersionCmd())
	return rootCmd
}

func run(cmd *cobra.Command, v *viper.Viper, hud bool) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Logging.Level)
	logCfg.Format = cfg.Logging.Format
	log := logging.NewWithWriter(logCfg, cmd.ErrOrStderr())
	ctx := logging.WithComponent(logging.WithContext(cmd.Context(), log), "cli")
	clog := logging.FromContext(ctx)

	hcfg, err := halConfig(cfg, log)
	if err != nil {
		return err
	}
	newApp := app.New(app.Config{Logger: log, HUD: hud})

	clog.Info().Str("version", buildinfo.Short()).Bool("headless", cfg.Headless.Enabled).Msg("starting")
	if cfg.Headless.Enabled {
		err = hal.RunHeadless(ctx, hcfg, newApp, nil)
	} else {
		err = hal.RunWindow(ctx, hcfg, newApp)
	}

	switch {
	case err == nil:
	case errors.Is(err, app.ErrQuit), errors.Is(err, context.Canceled):
		clog.Info().Err(err).Msg("stopped")
		return nil
	}
	return err
}

func halConfig(cfg *config.Config, log zerolog.Logger) (hal.Config, error) {
	mode, err := cfg.Canvas.FitMode()
	if err != nil {
		return hal.Config{}, err
	}
	return hal.Config{
		Width:      cfg.Canvas.Width,
		Height:     cfg.Canvas.Height,
		Quality:    cfg.Canvas.Quality(),
		Mode:       mode,
		Background: cfg.Canvas.BackgroundColor(),
		Bars:       cfg.Canvas.BarColor(),
		Title:      cfg.Window.Title,
		Scale:      cfg.Window.Scale,
		Hz:         cfg.Headless.Hz,
		Ticks:      cfg.Headless.Ticks,
		Logger:     log,
	}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}

// Execute runs the root command until it returns or the process is
// interrupted, and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "framefit:", err)
		return 1
	}
	return 0
}
