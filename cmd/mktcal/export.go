package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mktcal/internal/ics"
	appLog "mktcal/internal/log"
)

var (
	exportFilters filterFlags
	exportOutput  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered events as an iCalendar file",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return err
		}
		spec, err := exportFilters.spec(cmd, session)
		if err != nil {
			return err
		}
		events := session.Filter(spec)

		if exportOutput == "" || exportOutput == "-" {
			return ics.Write(os.Stdout, events, time.Now())
		}
		if err := ics.WriteFile(exportOutput, events, time.Now()); err != nil {
			return fmt.Errorf("export %s: %w", exportOutput, err)
		}
		appLog.Info("ics exported", "path", exportOutput, "events", len(events))
		return nil
	},
}

func init() {
	exportFilters.bind(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
}
