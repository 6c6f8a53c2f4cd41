package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-ahpgen/internal/server"
	"github.com/goliatone/go-ahpgen/internal/store"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the decision helper over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc := a.cfg.Server
			if cmd.Flags().Changed("addr") {
				sc.Addr = addr
			}

			sessions, err := store.Open(a.cfg.Store.Driver, a.cfg.Store.DSN)
			if err != nil {
				return err
			}
			defer func() {
				if err := sessions.Close(); err != nil {
					a.logger.Warn("close store", zap.Error(err))
				}
			}()

			style, err := a.themeStyle()
			if err != nil {
				return err
			}

			opts := []server.Option{
				server.WithLogger(a.logger),
				server.WithStore(sessions),
				server.WithThemeStyle(style),
				server.WithDefaultChoices(a.cfg.Render.Choice1, a.cfg.Render.Choice2),
				server.WithShutdownTimeout(sc.ShutdownTimeout),
			}
			if sc.TemplatesDir != "" {
				opts = append(opts, server.WithTemplatesFS(os.DirFS(sc.TemplatesDir)))
			}
			if sc.StaticDir != "" {
				opts = append(opts, server.WithStaticFS(os.DirFS(sc.StaticDir)))
			}

			srv, err := server.New(opts...)
			if err != nil {
				return err
			}
			a.logger.Info("starting server",
				zap.String("addr", sc.Addr),
				zap.String("store", a.cfg.Store.Driver),
			)
			return srv.Run(cmd.Context(), sc.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "0.0.0.0:8080", "listen address")
	return cmd
}
