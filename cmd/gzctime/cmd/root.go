package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gzctime/internal/config"
	"gzctime/internal/gztime"
	appLog "gzctime/internal/log"
	"gzctime/internal/zone"
)

// app holds what every command needs after the config is loaded.
type app struct {
	cfg  *config.Config
	conv *gztime.Converter
	req  zone.Request
}

// Execute runs the command line.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile  string
		logLevel string
		zoneFlag string
	)
	a := &app{}

	root := &cobra.Command{
		Use:   "gzctime",
		Short: "Geographic Zone Calendar time conversions",
		Long: `gzctime converts between unix seconds and calendars, keeping geographic
zones and daylight saving time apart, and reads and writes the GZC text form:

  calendar  YYYY-MM-DD#hh:mm:ss#{UTC|STD|DST}#±hh:mm
  duration  D<days>#hh:mm:ss

Zones (--zone): local, utc, asutc, ±hh:mm, STD±hh:mm, DST±hh:mm.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.DefaultConfig()
			if cfgFile != "" {
				loaded, err := config.Load(cfgFile)
				if err != nil {
					return fmt.Errorf("load config %s: %w", cfgFile, err)
				}
				cfg = loaded
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if zoneFlag != "" {
				cfg.DefaultZone = zoneFlag
			}

			lvl, err := appLog.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			appLog.SetLevel(lvl)

			e, err := cfg.Engine()
			if err != nil {
				return err
			}
			req, err := cfg.Request()
			if err != nil {
				return err
			}
			a.cfg, a.conv, a.req = cfg, gztime.NewConverter(e), req
			appLog.Debug("effective config",
				"timezone", cfg.Timezone,
				"epoch", cfg.Epoch,
				"default_zone", cfg.DefaultZone,
			)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (.yaml or .toml); created with defaults if missing")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	root.PersistentFlags().StringVarP(&zoneFlag, "zone", "z", "", "zone request for output (default from config: local)")

	root.AddCommand(
		newNowCmd(a),
		newConvertCmd(a),
		newParseCmd(a),
		newDiffCmd(a),
		newAddCmd(a),
		newNextCmd(a),
		newWatchCmd(a),
		newServeCmd(a),
		newICSCmd(a),
	)
	return root
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
}
