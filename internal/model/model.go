package model

// Column names of the events file. The pipeline needs these four; any
// other column is carried along untouched in Event.Cells.
const (
	ColName     = "Event Name"
	ColCategory = "Category"
	ColStart    = "Date"
	ColEnd      = "End Date"
)

// RequiredColumns lists the events-file columns that must be present.
var RequiredColumns = []string{ColName, ColCategory, ColStart, ColEnd}

// Event is one row of the canonical table.
type Event struct {
	// Cells is the row exactly as read (or as it will be written), aligned
	// with Table.Header. Derived fields below are computed from it.
	Cells []string

	Name     string
	Category string

	Start NullDate
	End   NullDate

	SingleDay bool
	Color     string
}

// Table is the in-memory event store together with the file layout it was
// read from, so that a rewrite reproduces the same shape.
type Table struct {
	Header    []string
	Delimiter rune
	BOM       bool
	CRLF      bool

	Events []Event
}

// Column returns the index of the named header column, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no slices with t.
func (t *Table) Clone() *Table {
	out := &Table{
		Header:    append([]string(nil), t.Header...),
		Delimiter: t.Delimiter,
		BOM:       t.BOM,
		CRLF:      t.CRLF,
		Events:    make([]Event, len(t.Events)),
	}
	for i, e := range t.Events {
		e.Cells = append([]string(nil), e.Cells...)
		out.Events[i] = e
	}
	return out
}

// Len reports the number of events; a nil table has none.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Events)
}
