package main

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"mktcal/internal/capture"
	appLog "mktcal/internal/log"
)

var snapshotOpts struct {
	url     string
	output  string
	width   int
	height  int
	timeout time.Duration
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save a PNG of a running dashboard using headless Chromium",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := snapshotOpts.url
		if target == "" {
			target = "http://" + conf.Listen + "/"
		}
		u, err := url.Parse(target)
		if err != nil {
			return fmt.Errorf("invalid --url: %w", err)
		}
		if conf.BasicAuth != nil && u.User == nil {
			u.User = url.UserPassword(conf.BasicAuth.Username, conf.BasicAuth.Password)
		}

		err = capture.DashboardPNG(cmd.Context(), capture.Options{
			URL:        u.String(),
			OutputPath: snapshotOpts.output,
			Width:      snapshotOpts.width,
			Height:     snapshotOpts.height,
			Timeout:    snapshotOpts.timeout,
		})
		if err != nil {
			return err
		}
		appLog.Info("snapshot saved", "path", snapshotOpts.output, "url", u.Redacted())
		return nil
	},
}

func init() {
	f := snapshotCmd.Flags()
	f.StringVar(&snapshotOpts.url, "url", "", "Dashboard URL (default http://<listen>/)")
	f.StringVarP(&snapshotOpts.output, "output", "o", "calendar.png", "PNG output path")
	f.IntVar(&snapshotOpts.width, "width", capture.DefaultWidth, "Viewport width in pixels")
	f.IntVar(&snapshotOpts.height, "height", capture.DefaultHeight, "Viewport height in pixels")
	f.DurationVar(&snapshotOpts.timeout, "timeout", capture.DefaultTimeoutSec*time.Second, "Capture timeout")
}
