package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shandysiswandi/gofindway/internal/app"
	"github.com/shandysiswandi/gofindway/internal/findway"
	"github.com/shandysiswandi/gofindway/internal/pkg/pkglog"
)

func Execute() {
	cmd := newRootCmd(newUsecaseFinder)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(newFinder finderFactory) *cobra.Command {
	var debug bool
	var configPath string

	cmd := &cobra.Command{
		Use:          "findway",
		Short:        "FindWay: Ryanair route finder with one-stop connections",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if debug {
				level = slog.LevelDebug
			}
			pkglog.InitLoggingTo(os.Stderr, level)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (optional; ./config/config.yaml when present)")

	cmd.AddCommand(findCmd(newFinder, &configPath))
	cmd.AddCommand(serveCmd(&configPath))
	return cmd
}

// cliConfigPath prefers the flag, then the local config file. An empty result
// means defaults and environment only.
func cliConfigPath(flag string) string {
	if flag != "" {
		return flag
	}
	if os.Getenv("LOCAL") == "true" || fileExists("./config/config.yaml") {
		return "./config/config.yaml"
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func newUsecaseFinder(ctx context.Context, configPath string) (finder, func(context.Context) error, error) {
	cfg, err := app.LoadConfig(cliConfigPath(configPath))
	if err != nil {
		return nil, nil, err
	}

	uc, closer, err := findway.NewUsecase(ctx, cfg)
	if err != nil {
		return nil, nil, errors.Join(err, cfg.Close())
	}

	return uc, func(ctx context.Context) error {
		return errors.Join(closer(ctx), cfg.Close())
	}, nil
}
