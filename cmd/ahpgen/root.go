package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	ahpgen "github.com/goliatone/go-ahpgen"
	"github.com/goliatone/go-ahpgen/internal/config"
	"github.com/goliatone/go-ahpgen/internal/logging"
	"github.com/goliatone/go-ahpgen/pkg/document"
	"github.com/goliatone/go-ahpgen/pkg/themes"
)

type app struct {
	cfg    config.Config
	logger *zap.Logger
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	logFormat  string
}

// execute runs the CLI and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, logger: zap.NewNop()}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		if path, ok := document.FailedPath(err); ok {
			a.logger.Error("command failed", zap.String("path", path), zap.Error(err))
		}
	}
	_ = a.logger.Sync()
	if err != nil {
		fmt.Fprintf(stderr, "ahpgen: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "ahpgen",
		Short: "Build pairwise comparison pages and rank alternatives with AHP",
		Long: `ahpgen fills the comparison template into the index page and writes the
result (the default command), serves the interactive decision helper over
HTTP, or ranks a stored session from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.render(cmd.Context(), a.cfg.Render)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.DefaultPath, "config file (YAML)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format (json, console)")

	root.AddCommand(newRenderCmd(a), newServeCmd(a), newRankCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}

	logger, err := logging.NewWithWriter(cfg.Log.Level, cfg.Log.Format, a.stderr)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

// themeStyle resolves the configured theme into the inline CSS rule. Unset
// names fall back to the built-in theme.
func (a *app) themeStyle() (string, error) {
	catalog, err := themes.NewCatalog(themes.WithTokens(themes.DefaultManifest(), a.cfg.Theme.Tokens))
	if err != nil {
		return "", err
	}
	return ahpgen.ThemeStyle(catalog, a.cfg.Theme.Name, a.cfg.Theme.Variant)
}
