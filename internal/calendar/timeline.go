package calendar

import (
	"sort"

	"mktcal/internal/model"
)

const (
	DefaultLabelMax  = 30
	SingleDayMarker  = "⬢"
	NoEventsMessage  = "No events found matching the selected filters."
	labelEllipsis    = "..."
	minChartHeight   = 400
	rowHeightPerSpan = 40
)

// Span is one event as the timeline draws it.
type Span struct {
	Label     string         `json:"label"`
	Name      string         `json:"name"`
	Start     model.NullDate `json:"start"`
	End       model.NullDate `json:"end"`
	Category  string         `json:"category"`
	Color     string         `json:"color"`
	SingleDay bool           `json:"single_day"`
	Marker    string         `json:"marker,omitempty"`
}

// Timeline is the display-ready projection of a filtered event set.
type Timeline struct {
	Spans  []Span          `json:"spans"`
	Legend []CategoryColor `json:"legend"`

	// Range is the date window the chart covers: the filter interval when
	// one was applied, else the extent of the spans.
	Range *model.DateRange `json:"range,omitempty"`

	// Ticks are axis gridline dates inside Range.
	Ticks []model.NullDate `json:"ticks,omitempty"`

	// Height is a chart sizing hint in pixels.
	Height int `json:"height"`

	// Empty signals "nothing to draw"; Message is the text to show instead.
	Empty   bool   `json:"empty"`
	Message string `json:"message,omitempty"`
}

// ProjectOptions tunes the projection.
type ProjectOptions struct {
	// LabelMax is the label length in runes; <= 0 means DefaultLabelMax.
	LabelMax int

	// Interval is the filter interval, used as the chart range if set.
	Interval *model.DateRange
}

// Project turns filtered events into spans ordered by start date (events
// without a start date last, ties in input order).
func Project(events []model.Event, opts ProjectOptions) Timeline {
	if len(events) == 0 {
		return Timeline{
			Spans:   []Span{},
			Legend:  []CategoryColor{},
			Height:  minChartHeight,
			Empty:   true,
			Message: NoEventsMessage,
		}
	}

	labelMax := opts.LabelMax
	if labelMax <= 0 {
		labelMax = DefaultLabelMax
	}

	spans := make([]Span, 0, len(events))
	legend := make([]CategoryColor, 0)
	seen := make(map[string]bool)
	for _, e := range events {
		s := Span{
			Label:     TruncateLabel(e.Name, labelMax),
			Name:      e.Name,
			Start:     e.Start,
			End:       e.End,
			Category:  e.Category,
			Color:     e.Color,
			SingleDay: e.SingleDay,
		}
		if s.Color == "" {
			s.Color = ColorFor(e.Category)
		}
		if s.SingleDay {
			s.Marker = SingleDayMarker
		}
		spans = append(spans, s)

		if !seen[e.Category] {
			seen[e.Category] = true
			legend = append(legend, CategoryColor{Category: e.Category, Color: s.Color})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		a, b := spans[i].Start, spans[j].Start
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Before(b)
	})

	tl := Timeline{
		Spans:  spans,
		Legend: legend,
		Height: max(minChartHeight, rowHeightPerSpan*len(spans)),
	}

	tl.Range = opts.Interval
	if tl.Range == nil {
		tl.Range = extent(spans)
	}
	if tl.Range != nil {
		tl.Ticks = AxisTicks(*tl.Range)
	}
	return tl
}

// TruncateLabel shortens name to limit runes, appending "..." when cut.
func TruncateLabel(name string, limit int) string {
	r := []rune(name)
	if len(r) <= limit {
		return name
	}
	return string(r[:limit]) + labelEllipsis
}

func extent(spans []Span) *model.DateRange {
	var r model.DateRange
	for _, s := range spans {
		if !s.Start.Valid {
			continue
		}
		if !r.From.Valid || s.Start.Before(r.From) {
			r.From = s.Start
		}
		end := s.End
		if !end.Valid {
			end = s.Start
		}
		if !r.To.Valid || end.After(r.To) {
			r.To = end
		}
	}
	if !r.From.Valid {
		return nil
	}
	return &r
}
