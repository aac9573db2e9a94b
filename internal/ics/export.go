package ics

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "mktcal/internal/log"
	"mktcal/internal/model"
)

const (
	ProductID    = "-//mktcal//Marketing Calendar//EN"
	CalendarName = "Marketing Calendar"
	uidDomain    = "mktcal"
)

// Build converts events into an iCalendar document of all-day events.
// Events without a start date cannot be placed on a calendar and are
// skipped. DTEND is exclusive, so it is the day after the last day.
func Build(events []model.Event, now time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetXWRCalName(CalendarName)

	skipped := 0
	for _, e := range events {
		if !e.Start.Valid {
			skipped++
			continue
		}
		end := e.End
		if !end.Valid || end.Before(e.Start) {
			end = e.Start
		}

		ve := cal.AddEvent(eventUID(e))
		ve.SetDtStampTime(now.UTC())
		ve.SetAllDayStartAt(e.Start.Time)
		ve.SetAllDayEndAt(end.AddDays(1).Time)
		ve.SetSummary(e.Name)
		if e.Category != "" {
			ve.SetProperty(ical.ComponentPropertyCategories, e.Category)
			ve.SetDescription("Category: " + e.Category)
		}
	}

	if skipped > 0 {
		appLog.Debug("ics export skipped undated events", "count", skipped)
	}
	return cal
}

// Write serializes events to w.
func Write(w io.Writer, events []model.Event, now time.Time) error {
	_, err := io.WriteString(w, Build(events, now).Serialize())
	return err
}

// WriteFile writes events to path. A failed flush or close is returned, so
// a nil error means the file is complete on disk.
func WriteFile(path string, events []model.Event, now time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, events, now); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// eventUID is stable across exports so calendar clients update events
// instead of duplicating them.
func eventUID(e model.Event) string {
	h := sha256.New()
	h.Write([]byte(strings.Join([]string{e.Name, e.Category, e.Start.String(), e.End.String()}, "\x1f")))
	return hex.EncodeToString(h.Sum(nil))[:24] + "@" + uidDomain
}
