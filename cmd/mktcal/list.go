package main

import (
	"os"

	"github.com/spf13/cobra"

	"mktcal/internal/calendar"
	"mktcal/internal/termview"
)

var (
	listFilters  filterFlags
	listBarWidth int
	listWindow   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the filtered timeline in the terminal",
	Long: `Examples:
	mktcal list                                   # every event
	mktcal list --window                          # today ± window_days
	mktcal list -q sale -c Eblast -c Social       # name and category filters
	mktcal list --from 2024-06-01 --to 2024-08-31 # explicit date range`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return err
		}

		spec, err := listFilters.spec(cmd, session)
		if err != nil {
			return err
		}
		if listWindow && spec.Interval == nil {
			r := calendar.DefaultRange(nowIn(), conf.WindowDays)
			spec.Interval = &r
		}

		tl := session.Timeline(spec, conf.LabelMax)
		if warn := session.Warning(); warn != nil {
			cmd.PrintErrln(termview.DefaultTheme.Warn.Render("warning: " + warn.Error()))
		}
		return termview.Render(os.Stdout, tl, termview.Options{BarWidth: listBarWidth})
	},
}

func init() {
	listFilters.bind(listCmd)
	listCmd.Flags().IntVar(&listBarWidth, "width", termview.DefaultBarWidth, "Width of the bar area in columns")
	listCmd.Flags().BoolVar(&listWindow, "window", false, "Limit to today ± window_days when no --from/--to is given")
}
