package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-transformer/internal/api"
)

func newServeCmd(c *cli) *cobra.Command {
	var addrFlag, staticFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.cfg.Addr = addrFlag
			}
			if cmd.Flags().Changed("static") {
				c.cfg.StaticDir = staticFlag
			}

			api.Version = version
			app := api.NewApp(api.NewHandler(c.cfg, c.log))

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			go func() {
				<-ctx.Done()
				c.log.Info("shutting down")
				_ = app.Shutdown()
			}()

			c.log.WithFields(logrus.Fields{
				"addr":   c.cfg.Addr,
				"static": c.cfg.StaticDir,
			}).Info("server listening")
			return app.Listen(c.cfg.Addr)
		},
	}

	cmd.Flags().StringVar(&addrFlag, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&staticFlag, "static", "", "Directory with the front-end build to serve at /")
	return cmd
}
