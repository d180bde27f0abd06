package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/skillnav/internal/shareserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve published pathways over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer rt.close()

		cfg := shareserver.DefaultConfig()
		if rt.cfg.Share.Listen != "" {
			cfg.Listen = rt.cfg.Share.Listen
		}
		if addr, _ := cmd.Flags().GetString("listen"); addr != "" {
			cfg.Listen = addr
		}
		if len(rt.cfg.Share.AllowedOrigins) > 0 {
			cfg.AllowedOrigins = rt.cfg.Share.AllowedOrigins
		}
		cfg.RatePerMinute = rt.cfg.Share.RatePerMinute

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		rt.logger.Info("starting share server", zap.String("listen", cfg.Listen), zap.Int("rate_per_minute", cfg.RatePerMinute))
		return shareserver.New(cfg, rt.store.SharedPathwayRepo(), rt.logger).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "Listen address (overrides share.listen)")
}

