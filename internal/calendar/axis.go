package calendar

import (
	"github.com/teambition/rrule-go"

	appLog "mktcal/internal/log"
	"mktcal/internal/model"
)

// Ranges longer than this get monthly instead of weekly gridlines.
const weeklyTickLimitDays = 26 * 7

// AxisTicks returns gridline dates inside r: every Monday, or the first of
// every month for long ranges. Reversed or null ranges yield none.
func AxisTicks(r model.DateRange) []model.NullDate {
	if !r.From.Valid || !r.To.Valid || r.To.Before(r.From) {
		return nil
	}

	opt := rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rrule.MO},
		Dtstart:   r.From.Time,
		Until:     r.To.Time,
	}
	if r.To.Time.Sub(r.From.Time).Hours()/24 > weeklyTickLimitDays {
		opt = rrule.ROption{
			Freq:       rrule.MONTHLY,
			Bymonthday: []int{1},
			Dtstart:    r.From.Time,
			Until:      r.To.Time,
		}
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		appLog.Error("axis ticks: invalid rule", err, "from", r.From, "to", r.To)
		return nil
	}

	times := rule.All()
	ticks := make([]model.NullDate, 0, len(times))
	for _, t := range times {
		ticks = append(ticks, model.DateOf(t))
	}
	return ticks
}
