package ics

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"mktcal/internal/model"
)

func event(name, category string, start, end model.NullDate) model.Event {
	return model.Event{Name: name, Category: category, Start: start, End: end}
}

func TestWrite(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	events := []model.Event{
		event("Summer Sale", "Social", model.NewDate(2024, 6, 1), model.NewDate(2024, 6, 3)),
		event("Gala", "Other", model.NewDate(2024, 8, 1), model.NewDate(2024, 8, 1)),
		event("Undated", "Other", model.NullDate{}, model.NullDate{}),
	}

	var buf bytes.Buffer
	if err := Write(&buf, events, now); err != nil {
		t.Fatalf("Write: %v", err)
	}
	body := buf.String()

	for _, field := range []string{
		"BEGIN:VCALENDAR",
		"PRODID:" + ProductID,
		"X-WR-CALNAME:" + CalendarName,
		"SUMMARY:Summer Sale",
		"CATEGORIES:Social",
		"END:VCALENDAR",
	} {
		if !strings.Contains(body, field) {
			t.Errorf("ICS output missing %q", field)
		}
	}
	if strings.Contains(body, "Undated") {
		t.Error("undated event should be skipped")
	}
	if n := strings.Count(body, "BEGIN:VEVENT"); n != 2 {
		t.Errorf("VEVENT count = %d, want 2", n)
	}

	cal, err := ical.ParseCalendar(strings.NewReader(body))
	if err != nil {
		t.Fatalf("output does not parse: %v", err)
	}
	got := map[string][2]string{}
	for _, ve := range cal.Events() {
		summary := ve.GetProperty(ical.ComponentPropertySummary).Value
		got[summary] = [2]string{
			ve.GetProperty(ical.ComponentPropertyDtStart).Value,
			ve.GetProperty(ical.ComponentPropertyDtEnd).Value,
		}
	}
	if got["Summer Sale"] != [2]string{"20240601", "20240604"} {
		t.Errorf("Summer Sale dates = %v", got["Summer Sale"])
	}
	if got["Gala"] != [2]string{"20240801", "20240802"} {
		t.Errorf("Gala dates = %v", got["Gala"])
	}
}

func TestEventUIDStable(t *testing.T) {
	a := event("Gala", "Other", model.NewDate(2024, 8, 1), model.NewDate(2024, 8, 1))
	b := a
	c := event("Gala", "Social", model.NewDate(2024, 8, 1), model.NewDate(2024, 8, 1))
	if eventUID(a) != eventUID(b) {
		t.Error("same event produced different UIDs")
	}
	if eventUID(a) == eventUID(c) {
		t.Error("different events share a UID")
	}
	if !strings.HasSuffix(eventUID(a), "@"+uidDomain) {
		t.Errorf("UID = %s", eventUID(a))
	}
}

func TestWriteFile(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	events := []model.Event{
		event("Summer Sale", "Social", model.NewDate(2024, 6, 1), model.NewDate(2024, 6, 3)),
	}

	path := filepath.Join(t.TempDir(), "calendar.ics")
	if err := WriteFile(path, events, now); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, events, now); err != nil {
		t.Fatal(err)
	}
	if string(data) != buf.String() {
		t.Errorf("file content differs from Write output:\n%s", data)
	}

	missing := filepath.Join(t.TempDir(), "no-such-dir", "calendar.ics")
	if err := WriteFile(missing, events, now); err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
}
