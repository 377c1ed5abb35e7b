package main

import (
	"github.com/gin-gonic/gin"
	"github.com/piwi3910/PlankLay/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout engine over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.config.ServeAddr
			}
			if !a.verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			return server.New(a.config, a.custom, a.logger).Run(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
