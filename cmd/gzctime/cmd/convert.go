package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"gzctime/internal/codec"
	"gzctime/internal/gztime"
)

// parseValue reads unix seconds or any GZC string.
func (a *app) parseValue(s string) (gztime.Time, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return gztime.Unix(n), nil
	}
	return a.conv.Parse(s)
}

// print writes t for the configured zone, as GZC or with a strftime format,
// optionally followed by the unix seconds.
func (a *app) print(cmd *cobra.Command, t gztime.Time, format string, withUnix bool) error {
	s, err := a.conv.Format(t, format, a.req)
	if err != nil {
		return err
	}
	if withUnix {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", s, t.Unix())
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), s)
	return nil
}

func newNowCmd(a *app) *cobra.Command {
	var format string
	var unix bool
	c := &cobra.Command{
		Use:   "now",
		Short: "Print the current time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.print(cmd, gztime.Now(), format, unix)
		},
	}
	c.Flags().StringVarP(&format, "format", "f", "", "strftime format (default GZC)")
	c.Flags().BoolVar(&unix, "unix", false, "also print unix seconds")
	return c
}

func newConvertCmd(a *app) *cobra.Command {
	var format string
	var unix bool
	c := &cobra.Command{
		Use:   "convert VALUE",
		Short: "Express unix seconds or a GZC string in another zone",
		Example: `  gzctime convert 1078880523 --zone +05:30
  gzctime convert '2004-03-10#01:02:03#UTC#+00:00' --zone DST+01:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.parseValue(args[0])
			if err != nil {
				return err
			}
			if codec.IsDuration(args[0]) {
				fmt.Fprintln(cmd.OutOrStdout(), t.DurationString())
				return nil
			}
			return a.print(cmd, t, format, unix)
		},
	}
	c.Flags().StringVarP(&format, "format", "f", "", "strftime format (default GZC)")
	c.Flags().BoolVar(&unix, "unix", false, "also print unix seconds")
	return c
}

func newParseCmd(a *app) *cobra.Command {
	var in, out string
	c := &cobra.Command{
		Use:   "parse TEXT",
		Short: "Read free-form text with a strptime format",
		Long: `Read TEXT with a strptime format (--in). Text without a numeric zone (%z)
is local time. Full-width digits are accepted.`,
		Example: `  gzctime parse '10.03.2004 02:02:03' --in '%d.%m.%Y %H:%M:%S'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.conv.ParseFormat(args[0], in)
			if err != nil {
				return err
			}
			return a.print(cmd, t, out, true)
		},
	}
	c.Flags().StringVar(&in, "in", "", "strptime format of TEXT (default GZC)")
	c.Flags().StringVarP(&out, "format", "f", "", "strftime output format (default GZC)")
	return c
}

func newDiffCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff FROM TO",
		Short: "Print TO-FROM as a GZC duration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := a.parseValue(args[0])
			if err != nil {
				return err
			}
			to, err := a.parseValue(args[1])
			if err != nil {
				return err
			}
			span := to.Sub(from)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", span.DurationString(), span.Unix())
			return nil
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	var format string
	c := &cobra.Command{
		Use:     "add VALUE DURATION",
		Short:   "Shift an instant by a GZC duration or seconds",
		Example: `  gzctime add '2023-01-01#00:00:00#UTC#+00:00' 'D95#00:42:22' --zone utc`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.parseValue(args[0])
			if err != nil {
				return err
			}
			d, err := a.parseValue(args[1])
			if err != nil {
				return err
			}
			return a.print(cmd, t.Add(d), format, false)
		},
	}
	c.Flags().StringVarP(&format, "format", "f", "", "strftime format (default GZC)")
	return c
}
