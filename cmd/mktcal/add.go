package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mktcal/internal/calendar"
	"mktcal/internal/web"
)

var addReq struct {
	name     string
	category string
	start    string
	end      string
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an event to the calendar file",
	Long: `Examples:
	mktcal add --name "Spring Gala" --category "Member Engage" --start 2024-04-12
	mktcal add --name "Summer Sale" --category Eblast --start 2024-06-01 --end 2024-06-03`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sub := calendar.Submission{Name: addReq.name, Category: addReq.category}
		if addReq.start != "" {
			if sub.Start = calendar.ParseDate(addReq.start); !sub.Start.Valid {
				return fmt.Errorf("invalid --start date %q", addReq.start)
			}
		}
		if addReq.end != "" {
			if sub.End = calendar.ParseDate(addReq.end); !sub.End.Valid {
				return fmt.Errorf("invalid --end date %q", addReq.end)
			}
		}

		session, err := openSession()
		if err != nil {
			return err
		}

		out, err := session.Submit(sub)
		if err != nil {
			return fmt.Errorf("event not saved: %w", err)
		}
		if !out.Accepted() {
			return errors.New("submission rejected: " + out.Reason)
		}

		cmd.Println(web.SuccessMessage)
		if conf.BriefURL != "" {
			cmd.Println(conf.BriefURL)
		}
		return nil
	},
}

func init() {
	f := addCmd.Flags()
	f.StringVar(&addReq.name, "name", "", "Event name")
	f.StringVar(&addReq.category, "category", "", "Category (must be an allowed category)")
	f.StringVar(&addReq.start, "start", "", "Start date")
	f.StringVar(&addReq.end, "end", "", "End date (defaults to the start date)")
}
