package termview

import (
	"bytes"
	"strings"
	"testing"

	"mktcal/internal/calendar"
	"mktcal/internal/model"
)

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, calendar.Project(nil, calendar.ProjectOptions{}), Options{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), calendar.NoEventsMessage) {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRenderSpans(t *testing.T) {
	events := []model.Event{
		{Name: "Summer Sale", Category: "Social", Color: "#EFC337", Start: model.NewDate(2024, 6, 1), End: model.NewDate(2024, 6, 3)},
		{Name: "Gala", Category: "Other", Color: "#D3D3D3", Start: model.NewDate(2024, 6, 10), End: model.NewDate(2024, 6, 10), SingleDay: true},
	}
	interval := &model.DateRange{From: model.NewDate(2024, 6, 1), To: model.NewDate(2024, 6, 30)}
	tl := calendar.Project(events, calendar.ProjectOptions{Interval: interval})

	var buf bytes.Buffer
	if err := Render(&buf, tl, Options{Title: "Test", BarWidth: 30}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Test (2024-06-01 to 2024-06-30)",
		"Summer Sale",
		"2024-06-01 → 2024-06-03",
		"Gala",
		calendar.SingleDayMarker,
		"2 events",
		"Social",
		"Other",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBarPlacement(t *testing.T) {
	r := &model.DateRange{From: model.NewDate(2024, 6, 1), To: model.NewDate(2024, 6, 10)}
	cases := []struct {
		name string
		span calendar.Span
		want string
	}{
		{"first day", calendar.Span{Start: model.NewDate(2024, 6, 1), End: model.NewDate(2024, 6, 2)}, "██        "},
		{"tail", calendar.Span{Start: model.NewDate(2024, 6, 9), End: model.NewDate(2024, 6, 20)}, "        ██"},
		{"outside", calendar.Span{Start: model.NewDate(2024, 7, 1), End: model.NewDate(2024, 7, 2)}, "          "},
		{"undated", calendar.Span{}, "          "},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := bar(c.span, r, 10); got != c.want {
				t.Errorf("bar = %q, want %q", got, c.want)
			}
		})
	}
}
