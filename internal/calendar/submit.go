package calendar

import (
	"slices"
	"strings"

	"mktcal/internal/model"
)

// Status is the terminal state of a submission attempt.
type Status string

const (
	Accepted Status = "accepted"
	Rejected Status = "rejected"
)

// Rejection reasons, in the order the checks run.
const (
	ReasonMissingName     = "missing name"
	ReasonMissingStart    = "missing start date"
	ReasonEndBeforeStart  = "end before start"
	ReasonInvalidCategory = "invalid category"
)

// Submission is a proposed new event. A null End means "same as Start".
type Submission struct {
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Start    model.NullDate `json:"start_date"`
	End      model.NullDate `json:"end_date"`
}

// Outcome reports what happened to a submission. Event is set when the
// submission was accepted.
type Outcome struct {
	Status Status       `json:"status"`
	Reason string       `json:"reason,omitempty"`
	Event  *model.Event `json:"-"`
}

func (o Outcome) Accepted() bool { return o.Status == Accepted }

func reject(reason string) Outcome {
	return Outcome{Status: Rejected, Reason: reason}
}

// Validate runs the submission checks; the first failing one decides the
// reason. It does not touch any state.
func Validate(sub Submission, allowed []string) Outcome {
	if strings.TrimSpace(sub.Name) == "" {
		return reject(ReasonMissingName)
	}
	if !sub.Start.Valid {
		return reject(ReasonMissingStart)
	}
	end := sub.End
	if !end.Valid {
		end = sub.Start
	}
	if end.Before(sub.Start) {
		return reject(ReasonEndBeforeStart)
	}
	if !slices.Contains(allowed, sub.Category) {
		return reject(ReasonInvalidCategory)
	}
	return Outcome{Status: Accepted}
}

// newEvent builds the row for an accepted submission, aligned with t's
// header. Columns other than the four known ones are left blank.
func newEvent(t *model.Table, sub Submission) model.Event {
	end := sub.End
	if !end.Valid {
		end = sub.Start
	}

	cols := columnsOf(t)
	cells := make([]string, len(t.Header))
	set := func(i int, v string) {
		if i >= 0 && i < len(cells) {
			cells[i] = v
		}
	}
	set(cols.name, strings.TrimSpace(sub.Name))
	set(cols.category, sub.Category)
	set(cols.start, sub.Start.String())
	set(cols.end, end.String())

	e := model.Event{Cells: cells}
	normalizeEvent(&e, cols)
	return e
}
