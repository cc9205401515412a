package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gzctime/internal/codec"
	"gzctime/internal/gztime"
	"gzctime/internal/ics"
	"gzctime/internal/model"
	"gzctime/internal/zone"
)

func newICSCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "ics",
		Short: "Exchange instants as iCalendar events",
	}
	c.AddCommand(newICSExportCmd(a), newICSImportCmd(a))
	return c
}

func newICSExportCmd(a *app) *cobra.Command {
	var (
		uid, summary, rule, out string
	)
	c := &cobra.Command{
		Use:   "export VALUE...",
		Short: "Write instants as a VCALENDAR",
		Long: `Write each VALUE (unix seconds or GZC string) as a VEVENT. The start is
stored in UTC and, in X-GZC-START, in the zone selected with --zone.`,
		Example: `  gzctime ics export 1078880523 --zone DST+01:00 --summary launch --rule 'FREQ=WEEKLY;COUNT=4'`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := make([]model.Entry, 0, len(args))
			for i, arg := range args {
				t, err := a.parseValue(arg)
				if err != nil {
					return err
				}
				c, err := a.conv.Calendar(t, a.req)
				if err != nil {
					return err
				}
				id := uid
				if id == "" {
					id = fmt.Sprintf("gzc-%d@gzctime", t.Unix())
				} else if len(args) > 1 {
					id = fmt.Sprintf("%d-%s", i, uid)
				}
				entries = append(entries, model.Entry{
					UID: id, Summary: summary, Rule: rule,
					Start: t, End: t, Zone: c.Zone,
				})
			}

			body, err := ics.Export(entries, ics.ExportOptions{
				ProductID: a.cfg.ICS.ProductID,
				Converter: a.conv,
			})
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			return os.WriteFile(out, []byte(body), 0o644)
		},
	}
	c.Flags().StringVar(&uid, "uid", "", "event UID (default derived from the instant)")
	c.Flags().StringVar(&summary, "summary", "", "event SUMMARY")
	c.Flags().StringVar(&rule, "rule", "", "RRULE value, e.g. FREQ=DAILY;COUNT=3")
	c.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return c
}

func newICSImportCmd(a *app) *cobra.Command {
	var from, to string
	c := &cobra.Command{
		Use:   "import FILE|URL",
		Short: "Read events from an ICS file or feed",
		Long: `Read the DTSTART of each VEVENT and print it as GZC in the zone it was
written in. With --to, recurring events are expanded between --from
(default now) and --to. Remote feeds are cached in ics.cache_dir.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := ics.Source{ID: args[0]}
			var entries []model.Entry
			var err error
			if strings.HasPrefix(args[0], "http://") || strings.HasPrefix(args[0], "https://") {
				src.URL = args[0]
				entries, err = ics.NewFetcher(a.cfg.ICS.CacheDir).Entries(cmd.Context(), src, a.conv)
			} else {
				var body []byte
				if body, err = os.ReadFile(args[0]); err == nil {
					entries, err = ics.Import(src, body, a.conv)
				}
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, e := range entries {
				c, err := a.conv.Calendar(e.Start, zone.For(e.Zone))
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", codec.EncodeCalendar(c), e.UID, e.Summary)
			}
			if to == "" {
				return nil
			}

			start := gztime.Now()
			if from != "" {
				if start, err = a.parseValue(from); err != nil {
					return err
				}
			}
			end, err := a.parseValue(to)
			if err != nil {
				return err
			}
			res, err := ics.ExpandAll(entries, ics.ExpandConfig{
				From:                   start,
				To:                     end,
				MaxOccurrencesPerEntry: a.cfg.ICS.MaxOccurrences,
				Mode:                   a.conv.Engine().Mode(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "# %d occurrences\n", len(res.Occurrences))
			for _, o := range res.Occurrences {
				fmt.Fprintf(w, "%s\t%s\t%s\n", codec.EncodeCalendar(o.Calendar), o.UID, o.Summary)
			}
			for _, uid := range res.Truncated {
				fmt.Fprintf(w, "# truncated: %s\n", uid)
			}
			return nil
		},
	}
	c.Flags().StringVar(&from, "from", "", "expansion start (default now)")
	c.Flags().StringVar(&to, "to", "", "expansion end; enables expansion")
	return c
}
