package calendar

import (
	"mktcal/internal/model"
)

// Normalize derives the canonical fields of every row from its raw cells:
// parsed dates, end date defaulted to the start date, the single-day flag
// and the category color. The input table is not modified.
//
// Only Cells are read, so normalizing an already canonical table gives the
// same result.
func Normalize(t *model.Table) *model.Table {
	out := t.Clone()
	cols := columnsOf(out)
	for i := range out.Events {
		normalizeEvent(&out.Events[i], cols)
	}
	return out
}

type columns struct {
	name, category, start, end int
}

func columnsOf(t *model.Table) columns {
	return columns{
		name:     t.Column(model.ColName),
		category: t.Column(model.ColCategory),
		start:    t.Column(model.ColStart),
		end:      t.Column(model.ColEnd),
	}
}

func cell(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}

func normalizeEvent(e *model.Event, c columns) {
	e.Name = cell(e.Cells, c.name)
	e.Category = cell(e.Cells, c.category)

	e.Start = ParseDate(cell(e.Cells, c.start))
	e.End = ParseDate(cell(e.Cells, c.end))
	if !e.End.Valid {
		e.End = e.Start
	}

	e.SingleDay = e.Start.Valid && e.End.Valid && e.Start.Equal(e.End)
	e.Color = ColorFor(e.Category)
}
