package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"gzctime/internal/clock"
	"gzctime/internal/gztime"
	"gzctime/internal/zone"
)

// location is the wall clock cron schedules follow.
func (a *app) location() *time.Location {
	if sys, ok := a.conv.Engine().Platform().(zone.System); ok && sys.Location != nil {
		return sys.Location
	}
	return time.Local
}

func newNextCmd(a *app) *cobra.Command {
	var (
		count  int
		from   string
		format string
	)
	c := &cobra.Command{
		Use:     "next CRON",
		Short:   "List upcoming activations of a cron schedule",
		Example: `  gzctime next '0 9 * * MON-FRI' --count 3 --zone local`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := gztime.Now()
			if from != "" {
				t, err := a.parseValue(from)
				if err != nil {
					return err
				}
				start = t
			}
			times, err := clock.Next(args[0], start, count, a.location())
			if err != nil {
				return err
			}
			for _, t := range times {
				if err := a.print(cmd, t, format, true); err != nil {
					return err
				}
			}
			return nil
		},
	}
	c.Flags().IntVarP(&count, "count", "n", 5, "number of activations")
	c.Flags().StringVar(&from, "from", "", "start instant (default now)")
	c.Flags().StringVarP(&format, "format", "f", "", "strftime format (default GZC)")
	return c
}

func newWatchCmd(a *app) *cobra.Command {
	var (
		spec   string
		format string
	)
	c := &cobra.Command{
		Use:   "watch",
		Short: "Print the time whenever a cron schedule fires",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if spec == "" {
				spec = a.cfg.ClockCron
			}
			ticker, err := clock.NewTicker(spec, a.location())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			ticker.Start(ctx)
			defer ticker.Stop()

			if err := a.print(cmd, gztime.Now(), format, false); err != nil {
				return err
			}
			for {
				select {
				case <-ctx.Done():
					return nil
				case t := <-ticker.C:
					if err := a.print(cmd, t, format, false); err != nil {
						printError("watch", err)
						return err
					}
				}
			}
		},
	}
	c.Flags().StringVar(&spec, "cron", "", "schedule (default clock_cron from config)")
	c.Flags().StringVarP(&format, "format", "f", "", "strftime format (default GZC)")
	return c
}
