package cmd

import (
	"github.com/spf13/cobra"

	appLog "gzctime/internal/log"
	"gzctime/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	var listen string
	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// --listen overrides the config file if provided.
			if listen != "" {
				a.cfg.Listen = listen
			}
			appLog.Info("effective config",
				"listen", a.cfg.Listen,
				"timezone", a.cfg.Timezone,
				"epoch", a.cfg.Epoch,
				"default_zone", a.cfg.DefaultZone,
				"clock_cron", a.cfg.ClockCron,
				"basic_auth", a.cfg.BasicAuth != nil,
			)
			s, err := web.NewServer(a.cfg)
			if err != nil {
				return err
			}
			return s.Run(cmd.Context())
		},
	}
	c.Flags().StringVar(&listen, "listen", "", "HTTP listen address (overrides config if set)")
	return c
}
