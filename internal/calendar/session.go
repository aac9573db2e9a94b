package calendar

import (
	"errors"
	"sort"
	"sync"
	"time"

	appLog "mktcal/internal/log"
	"mktcal/internal/model"
)

// ErrNotLoaded is returned when a session is used before a successful load.
var ErrNotLoaded = errors.New("calendar: events not loaded")

// Store is the backing storage a Session reads from and writes to.
type Store interface {
	LoadEvents() (*model.Table, error)
	LoadCategories() ([]string, error)
	SaveEvents(*model.Table) error
}

// Session holds the canonical table and allowed categories for one running
// dashboard. Readers get an immutable snapshot; Submit and Reload swap in a
// new table instead of editing the current one.
type Session struct {
	store Store

	mu       sync.RWMutex
	table    *model.Table
	allowed  []string
	warning  error
	loadedAt time.Time
}

// NewSession returns an empty session; call Reload before use.
func NewSession(store Store) *Session {
	return &Session{store: store}
}

// Open creates a session and loads it. A *store.LoadError is returned as is.
func Open(store Store) (*Session, error) {
	s := NewSession(store)
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads both files. If the events file cannot be loaded the
// previous table is kept and the error returned. Category problems are
// recorded as a warning and never fail the reload.
func (s *Session) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked()
}

func (s *Session) reloadLocked() error {
	raw, err := s.store.LoadEvents()
	if err != nil {
		appLog.Error("events load failed", err)
		return err
	}

	allowed, warn := s.store.LoadCategories()
	if warn != nil {
		appLog.Warn("categories fallback", "reason", warn.Error(), "categories", len(allowed))
	}

	s.table = Normalize(raw)
	s.allowed = allowed
	s.warning = warn
	s.loadedAt = time.Now()

	appLog.Info("session loaded", "events", len(s.table.Events), "allowed_categories", len(allowed))
	return nil
}

// Table returns the current canonical table. Callers must not modify it.
func (s *Session) Table() *model.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// AllowedCategories returns the categories a submission may use.
func (s *Session) AllowedCategories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.allowed...)
}

// Warning returns the category-load warning of the last reload, if any.
func (s *Session) Warning() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.warning
}

func (s *Session) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Categories returns the distinct non-empty categories present in the
// data, sorted.
func (s *Session) Categories() []string {
	t := s.Table()
	if t == nil {
		return nil
	}
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, e := range t.Events {
		if e.Category == "" || seen[e.Category] {
			continue
		}
		seen[e.Category] = true
		out = append(out, e.Category)
	}
	sort.Strings(out)
	return out
}

// Bounds returns the earliest and latest start dates, or nil when no event
// has a start date.
func (s *Session) Bounds() *model.DateRange {
	t := s.Table()
	if t == nil {
		return nil
	}
	var r model.DateRange
	for _, e := range t.Events {
		if !e.Start.Valid {
			continue
		}
		if !r.From.Valid || e.Start.Before(r.From) {
			r.From = e.Start
		}
		if !r.To.Valid || e.Start.After(r.To) {
			r.To = e.Start
		}
	}
	if !r.From.Valid {
		return nil
	}
	return &r
}

// Filter applies spec to the current table.
func (s *Session) Filter(spec FilterSpec) []model.Event {
	return Filter(s.Table(), spec)
}

// Timeline filters and projects in one pass.
func (s *Session) Timeline(spec FilterSpec, labelMax int) Timeline {
	return Project(s.Filter(spec), ProjectOptions{LabelMax: labelMax, Interval: spec.Interval})
}

// Submit validates sub and, when it passes, appends it and rewrites the
// events file. Rejections come back as an Outcome with a nil error. A
// persistence failure returns the store's error and leaves the session
// exactly as it was.
func (s *Session) Submit(sub Submission) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table == nil {
		return Outcome{}, ErrNotLoaded
	}

	out := Validate(sub, s.allowed)
	if !out.Accepted() {
		appLog.Info("submission rejected", "reason", out.Reason, "name", sub.Name, "category", sub.Category)
		return out, nil
	}

	next := s.table.Clone()
	ev := newEvent(next, sub)
	next.Events = append(next.Events, ev)

	if err := s.store.SaveEvents(next); err != nil {
		appLog.Error("submission not persisted", err, "name", ev.Name)
		return Outcome{}, err
	}
	s.table = next
	appLog.Info("submission accepted", "name", ev.Name, "category", ev.Category, "start", ev.Start, "end", ev.End)

	if err := s.reloadLocked(); err != nil {
		appLog.Error("reload after submission failed; keeping in-memory table", err)
	}

	out.Event = &ev
	return out, nil
}

// DefaultRange is today ± days, the window the dashboard opens with.
func DefaultRange(today time.Time, days int) model.DateRange {
	d := model.DateOf(today)
	return model.DateRange{From: d.AddDays(-days), To: d.AddDays(days)}
}
