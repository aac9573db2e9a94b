package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mktcal/internal/calendar"
	"mktcal/internal/config"
	appLog "mktcal/internal/log"
	"mktcal/internal/model"
	"mktcal/internal/store"
)

var (
	configPath string
	conf       *config.Config
)

var rootCmd = &cobra.Command{
	Use:          "mktcal",
	Short:        "Marketing event calendar dashboard",
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		c.ResolvePaths(configPath)
		appLog.SetLevel(appLog.ParseLevel(c.LogLevel))
		conf = c

		appLog.Debug("effective config",
			"config_path", configPath,
			"listen", conf.Listen,
			"events_file", conf.EventsFile,
			"categories_file", conf.CategoriesFile,
			"timezone", conf.Timezone,
			"window_days", conf.WindowDays,
			"reload", conf.Reload,
		)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to config file (created with defaults if missing)")
	rootCmd.AddCommand(serveCmd, listCmd, addCmd, exportCmd, snapshotCmd)
}

// openSession loads the configured files. A malformed events file is fatal.
func openSession() (*calendar.Session, error) {
	session, err := calendar.Open(store.NewCSVStore(conf.EventsFile, conf.CategoriesFile))
	if err != nil {
		var le *store.LoadError
		if errors.As(err, &le) {
			return nil, fmt.Errorf("cannot load calendar: %w", err)
		}
		return nil, err
	}
	return session, nil
}

func nowIn() time.Time {
	return time.Now().In(conf.Location())
}

// filterFlags are the filters shared by list and export.
type filterFlags struct {
	query      string
	categories []string
	from       string
	to         string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "Case-insensitive substring of the event name")
	cmd.Flags().StringSliceVarP(&f.categories, "category", "c", nil, "Categories to include (repeatable; default all present)")
	cmd.Flags().StringVar(&f.from, "from", "", "Start of date range (needs --to)")
	cmd.Flags().StringVar(&f.to, "to", "", "End of date range (needs --from)")
}

func (f *filterFlags) spec(cmd *cobra.Command, session *calendar.Session) (calendar.FilterSpec, error) {
	spec := calendar.FilterSpec{Query: strings.TrimSpace(f.query)}

	if cmd.Flags().Changed("category") {
		spec.Categories = calendar.NewCategorySet(f.categories...)
	} else {
		spec.Categories = calendar.NewCategorySet(session.Categories()...)
	}

	if f.from != "" && f.to != "" {
		from, to := calendar.ParseDate(f.from), calendar.ParseDate(f.to)
		switch {
		case !from.Valid:
			return spec, fmt.Errorf("invalid --from date %q", f.from)
		case !to.Valid:
			return spec, fmt.Errorf("invalid --to date %q", f.to)
		case to.Before(from):
			return spec, fmt.Errorf("--from %s is after --to %s", from, to)
		}
		spec.Interval = &model.DateRange{From: from, To: to}
	} else if f.from != "" || f.to != "" {
		appLog.Warn("date range ignored: both --from and --to are required")
	}
	return spec, nil
}
