package termview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mktcal/internal/calendar"
	"mktcal/internal/model"
)

const (
	DefaultBarWidth = 48
	labelWidth      = 34
	barChar         = "█"
)

// Theme holds the styles used for terminal output.
type Theme struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Axis  lipgloss.Style
	Hint  lipgloss.Style
	Warn  lipgloss.Style
}

var DefaultTheme = Theme{
	Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#005899")),
	Label: lipgloss.NewStyle().Width(labelWidth),
	Axis:  lipgloss.NewStyle().Faint(true),
	Hint:  lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#27AAE1")),
	Warn:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F58226")),
}

// Options controls terminal rendering.
type Options struct {
	Title    string
	BarWidth int
	Theme    *Theme
}

// Render draws tl as a text gantt chart: one row per span with a colored
// bar placed on the chart range, followed by the legend.
func Render(w io.Writer, tl calendar.Timeline, opts Options) error {
	th := DefaultTheme
	if opts.Theme != nil {
		th = *opts.Theme
	}
	width := opts.BarWidth
	if width <= 0 {
		width = DefaultBarWidth
	}

	var b strings.Builder
	title := opts.Title
	if title == "" {
		title = "Marketing Calendar"
	}
	if tl.Range != nil {
		title = fmt.Sprintf("%s (%s to %s)", title, tl.Range.From, tl.Range.To)
	}
	b.WriteString(th.Title.Render(title))
	b.WriteString("\n")

	if tl.Empty {
		b.WriteString(th.Warn.Render(tl.Message))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	for _, s := range tl.Spans {
		b.WriteString(th.Label.Render(s.Label))
		b.WriteString(" ")
		b.WriteString(bar(s, tl.Range, width))
		b.WriteString(" ")
		b.WriteString(th.Axis.Render(spanDates(s)))
		b.WriteString("\n")
	}

	legend := make([]string, 0, len(tl.Legend))
	for _, l := range tl.Legend {
		name := l.Category
		if name == "" {
			name = "(none)"
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color)).Render(barChar)
		legend = append(legend, swatch+" "+name)
	}
	b.WriteString(th.Hint.Render(fmt.Sprintf("%d events", len(tl.Spans))))
	b.WriteString("  ")
	b.WriteString(strings.Join(legend, "  "))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// bar places s on a track of width columns covering r.
func bar(s calendar.Span, r *model.DateRange, width int) string {
	track := []rune(strings.Repeat(" ", width))
	if r == nil || !s.Start.Valid || !r.From.Valid || !r.To.Valid {
		return string(track)
	}

	end := s.End
	if !end.Valid {
		end = s.Start
	}
	if end.Before(r.From) || s.Start.After(r.To) {
		return string(track)
	}

	total := daysBetween(r.From, r.To) + 1
	from := max(0, daysBetween(r.From, s.Start)*width/total)
	to := min(width, (daysBetween(r.From, end)+1)*width/total)
	if to <= from {
		to = min(width, from+1)
	}
	from = min(from, width-1)

	fill := barChar
	if s.SingleDay {
		fill = calendar.SingleDayMarker
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color))

	return string(track[:from]) + style.Render(strings.Repeat(fill, to-from)) + string(track[to:])
}

func daysBetween(a, b model.NullDate) int {
	return int(b.Time.Sub(a.Time).Hours() / 24)
}

func spanDates(s calendar.Span) string {
	switch {
	case !s.Start.Valid:
		return "undated"
	case s.SingleDay || s.Start.Equal(s.End):
		return s.Start.String()
	default:
		return s.Start.String() + " → " + s.End.String()
	}
}
