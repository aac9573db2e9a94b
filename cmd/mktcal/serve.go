package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	appLog "mktcal/internal/log"
	"mktcal/internal/schedule"
	"mktcal/internal/web"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveListen != "" {
			conf.Listen = serveListen
		}

		session, err := openSession()
		if err != nil {
			appLog.Error("refusing to start", err, "events_file", conf.EventsFile)
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		appLog.Info("mktcal starting", "version", version, "listen", conf.Listen, "events", session.Table().Len())

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return schedule.Run(ctx, conf.Reload, conf.Location(), session)
		})
		g.Go(func() error {
			return web.StartServer(ctx, conf, session)
		})
		err = g.Wait()
		appLog.Info("mktcal exiting")
		return err
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "HTTP listen address (overrides config if set)")
}
