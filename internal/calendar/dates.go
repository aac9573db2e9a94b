package calendar

import (
	"strings"
	"time"

	"mktcal/internal/model"
)

// dateLayouts are tried in order. Month-first forms come before day-first
// ones because the calendar files are exported from US-locale sheets.
var dateLayouts = []string{
	model.DateLayout,
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"01/02/2006",
	"1/2/2006",
	"1/2/06",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	time.RFC3339,
	"Jan 2, 2006",
	"January 2, 2006",
	"Mon, Jan 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"02-Jan-2006",
	"20060102",
}

// ParseDate reads a calendar date from a CSV cell. Anything it cannot read
// is reported as a null date, never as an error.
func ParseDate(s string) model.NullDate {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.NullDate{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.DateOf(t)
		}
	}
	return model.NullDate{}
}
