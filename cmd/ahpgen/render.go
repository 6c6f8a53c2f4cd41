package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	ahpgen "github.com/goliatone/go-ahpgen"
	"github.com/goliatone/go-ahpgen/internal/config"
	"github.com/goliatone/go-ahpgen/pkg/compose"
	"github.com/goliatone/go-ahpgen/pkg/document"
)

func newRenderCmd(a *app) *cobra.Command {
	defaults := config.Defaults().Render
	var flagValues config.RenderConfig

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Substitute the choices into the templates and write the page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc := a.cfg.Render
			flags := cmd.Flags()
			if flags.Changed("comparison") {
				rc.Comparison = flagValues.Comparison
			}
			if flags.Changed("index") {
				rc.Index = flagValues.Index
			}
			if flags.Changed("output") {
				rc.Output = flagValues.Output
			}
			if flags.Changed("choice1") {
				rc.Choice1 = flagValues.Choice1
			}
			if flags.Changed("choice2") {
				rc.Choice2 = flagValues.Choice2
			}
			return a.render(cmd.Context(), rc)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&flagValues.Comparison, "comparison", defaults.Comparison, "comparison block template")
	flags.StringVar(&flagValues.Index, "index", defaults.Index, "index page template")
	flags.StringVar(&flagValues.Output, "output", defaults.Output, "output file")
	flags.StringVar(&flagValues.Choice1, "choice1", defaults.Choice1, "value for {CHOICE1}")
	flags.StringVar(&flagValues.Choice2, "choice2", defaults.Choice2, "value for {CHOICE2}")
	return cmd
}

func (a *app) render(ctx context.Context, rc config.RenderConfig) error {
	logger := a.logger.Named("render")

	opts := []compose.Option{
		compose.WithComparison(document.SourceFromFile(rc.Comparison)),
		compose.WithIndex(document.SourceFromFile(rc.Index)),
	}
	if a.cfg.Theme.Configured() {
		style, err := a.themeStyle()
		if err != nil {
			return err
		}
		opts = append(opts, compose.WithThemeStyle(style))
	}

	composer := ahpgen.NewComposer(opts...)
	result, err := composer.Generate(ctx, compose.Request{
		Choice1: rc.Choice1,
		Choice2: rc.Choice2,
		Output:  rc.Output,
	})
	if err != nil {
		return err
	}

	fields := []zap.Field{zap.String("path", result.Output), zap.Int("bytes", result.Bytes)}
	if len(result.Unresolved) > 0 {
		names := make([]string, len(result.Unresolved))
		for i, token := range result.Unresolved {
			names[i] = token.String()
		}
		fields = append(fields, zap.Strings("unresolved", names))
	}
	logger.Info("page written", fields...)
	return nil
}
