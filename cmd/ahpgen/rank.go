package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-ahpgen/internal/prompt"
	"github.com/goliatone/go-ahpgen/pkg/ahp"
	"github.com/goliatone/go-ahpgen/pkg/document"
	"github.com/goliatone/go-ahpgen/pkg/render"
	"github.com/goliatone/go-ahpgen/pkg/renderers"
	"github.com/goliatone/go-ahpgen/pkg/session"
)

type rankOptions struct {
	sessionPath string
	interactive bool
	save        bool
	format      string
	precision   int
	driver      prompt.Driver
}

func newRankCmd(a *app) *cobra.Command {
	var opts rankOptions

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank the alternatives of a session file",
		Long: `rank reads a JSON or YAML session file holding a setup and, unless
--interactive is given, the pairwise judgements, then prints the ranking.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.interactive && opts.driver == nil {
				opts.driver = prompt.NewSurveyDriver(a.stdout)
			}
			return a.rank(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.sessionPath, "session", "", "session file (.json, .yaml)")
	flags.BoolVar(&opts.interactive, "interactive", false, "collect the judgements in the terminal")
	flags.BoolVar(&opts.save, "save", false, "write collected judgements back to the session file")
	flags.StringVar(&opts.format, "format", "text", "output format (text, json, yaml, vanilla)")
	flags.IntVar(&opts.precision, "precision", render.DefaultPrecision, "decimals for scores and ratios")
	_ = cmd.MarkFlagRequired("session")
	return cmd
}

func (a *app) rank(ctx context.Context, opts rankOptions) error {
	logger := a.logger.Named("rank")

	doc, err := document.NewLoader().Load(ctx, document.SourceFromFile(opts.sessionPath))
	if err != nil {
		return err
	}
	format := session.FormatFromPath(opts.sessionPath)
	file, err := session.DecodeFile(doc.Bytes(), format)
	if err != nil {
		return err
	}

	if opts.interactive {
		responses, err := prompt.CollectResponses(ctx, opts.driver, file.Setup)
		if err != nil {
			return err
		}
		file.Responses = &responses
		if opts.save {
			data, err := session.EncodeFile(file, format)
			if err != nil {
				return err
			}
			if err := document.NewWriter().Write(ctx, opts.sessionPath, document.FromString(string(data))); err != nil {
				return err
			}
			logger.Info("session saved", zap.String("path", opts.sessionPath))
		}
	}
	if file.Responses == nil {
		return errors.New("session file has no responses; run with --interactive")
	}

	eval, err := session.Evaluate(file.Setup, *file.Responses)
	if err != nil {
		return err
	}
	if !eval.Consistent {
		logger.Warn("judgements exceed the consistency threshold",
			zap.Float64("criteria_ratio", eval.CriteriaRatio),
			zap.Float64("threshold", ahp.ConsistencyThreshold),
		)
	}

	registry, err := renderers.NewRegistry()
	if err != nil {
		return err
	}
	renderer, err := registry.Get(opts.format)
	if err != nil {
		return err
	}
	out, err := renderer.Render(ctx, eval, render.RenderOptions{Precision: opts.precision})
	if err != nil {
		return err
	}
	_, err = a.stdout.Write(out)
	return err
}
