package calendar

import (
	"strings"

	"mktcal/internal/model"
)

// CategorySet is the set of categories a filter lets through.
type CategorySet map[string]struct{}

func NewCategorySet(categories ...string) CategorySet {
	s := make(CategorySet, len(categories))
	for _, c := range categories {
		s[c] = struct{}{}
	}
	return s
}

func (s CategorySet) Has(category string) bool {
	_, ok := s[category]
	return ok
}

// FilterSpec is built from UI state for a single render.
type FilterSpec struct {
	// Query is matched case-insensitively against the event name. Empty
	// disables the text filter.
	Query string

	// Categories must contain an event's category for it to pass. An empty
	// or nil set lets nothing through.
	Categories CategorySet

	// Interval, when set, keeps events whose start date lies inside it
	// (inclusive). Events without a start date are dropped.
	Interval *model.DateRange
}

// Filter returns the events of t matching every predicate of spec, in
// table order.
func Filter(t *model.Table, spec FilterSpec) []model.Event {
	if t == nil {
		return nil
	}
	query := strings.ToLower(strings.TrimSpace(spec.Query))

	out := make([]model.Event, 0, len(t.Events))
	for _, e := range t.Events {
		if query != "" && !strings.Contains(strings.ToLower(e.Name), query) {
			continue
		}
		if !spec.Categories.Has(e.Category) {
			continue
		}
		if spec.Interval != nil && !spec.Interval.Contains(e.Start) {
			continue
		}
		out = append(out, e)
	}
	return out
}
