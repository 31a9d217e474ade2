package timelog

import (
	timelogerrors "go-worklog/internal/timelog/errors"
)

// Status is the derived attendance state for one employee-day. It is never
// persisted; the journal is the single source of truth.
type Status string

const (
	StatusNotCheckedIn Status = "NOT_CHECKED_IN"
	StatusCheckedIn    Status = "CHECKED_IN"
	StatusOnBreak      Status = "ON_BREAK"
	StatusCheckedOut   Status = "CHECKED_OUT"
)

// Action is an attendance command issued by the employee.
type Action string

const (
	ActionCheckIn    Action = "check-in"
	ActionBreakStart Action = "break-start"
	ActionBreakEnd   Action = "break-end"
	ActionCheckOut   Action = "check-out"
)

// Journal event kinds, one per action.
const (
	KindCheckIn    = "CHECK_IN"
	KindBreakStart = "BREAK_START"
	KindBreakEnd   = "BREAK_END"
	KindCheckOut   = "CHECK_OUT"
)

var actionKinds = map[Action]string{
	ActionCheckIn:    KindCheckIn,
	ActionBreakStart: KindBreakStart,
	ActionBreakEnd:   KindBreakEnd,
	ActionCheckOut:   KindCheckOut,
}

var kindActions = map[string]Action{
	KindCheckIn:    ActionCheckIn,
	KindBreakStart: ActionBreakStart,
	KindBreakEnd:   ActionBreakEnd,
	KindCheckOut:   ActionCheckOut,
}

// transitions is the full table of legal (status, action) pairs. Anything
// absent here is rejected; a checked-out day is sealed.
var transitions = map[Status]map[Action]Status{
	StatusNotCheckedIn: {
		ActionCheckIn: StatusCheckedIn,
	},
	StatusCheckedIn: {
		ActionBreakStart: StatusOnBreak,
		ActionCheckOut:   StatusCheckedOut,
	},
	StatusOnBreak: {
		ActionBreakEnd: StatusCheckedIn,
	},
}

func (a Action) Kind() string {
	return actionKinds[a]
}

// DeriveStatus computes the attendance status from a day's ordered event
// sequence. It is a pure function of the journal: an empty day is
// NOT_CHECKED_IN, otherwise only the last event matters.
func DeriveStatus(events []TimeEvent) Status {
	if len(events) == 0 {
		return StatusNotCheckedIn
	}

	switch events[len(events)-1].Kind {
	case KindCheckIn, KindBreakEnd:
		return StatusCheckedIn
	case KindBreakStart:
		return StatusOnBreak
	case KindCheckOut:
		return StatusCheckedOut
	default:
		return StatusNotCheckedIn
	}
}

// NextStatus gates an action against the transition table. A checked-out
// day reports ErrDayClosed, every other illegal pairing
// ErrInvalidTransition; neither appends anything, so callers may safely
// retry after re-reading the status.
func NextStatus(current Status, action Action) (Status, error) {
	if current == StatusCheckedOut {
		return current, timelogerrors.ErrDayClosed
	}

	next, ok := transitions[current][action]
	if !ok {
		return current, timelogerrors.ErrInvalidTransition
	}
	return next, nil
}
