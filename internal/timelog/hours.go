package timelog

import (
	"time"

	timelogerrors "go-worklog/internal/timelog/errors"
)

// WorkedHours is the aggregated working duration for one employee-day.
// Provisional means the day has no check-out yet and the open interval was
// closed against "now"; such a figure is for display only and must never
// be persisted. Clamped reports that at least one interval was
// non-positive (clock skew) and was counted as zero.
type WorkedHours struct {
	Total       time.Duration
	Provisional bool
	Clamped     bool
}

// ComputeWorked walks the ordered event sequence pairing the day's
// check-in/check-out bracket and deducting every break pair. The state
// machine guard makes a malformed sequence unreachable through normal
// writes; if one is observed anyway the journal is inconsistent and
// ErrMalformedSequence is returned.
func ComputeWorked(events []TimeEvent, now time.Time) (WorkedHours, error) {
	result := WorkedHours{}

	status := StatusNotCheckedIn
	var openStart time.Time

	for _, e := range events {
		action, ok := kindActions[e.Kind]
		if !ok {
			return WorkedHours{}, timelogerrors.ErrMalformedSequence
		}

		next, err := NextStatus(status, action)
		if err != nil {
			return WorkedHours{}, timelogerrors.ErrMalformedSequence
		}

		switch e.Kind {
		case KindCheckIn, KindBreakEnd:
			openStart = e.RecordedAt
		case KindBreakStart, KindCheckOut:
			result.add(e.RecordedAt.Sub(openStart))
		}

		status = next
	}

	switch status {
	case StatusCheckedIn:
		// Day still open: close the running interval against now.
		result.add(now.Sub(openStart))
		result.Provisional = true
	case StatusNotCheckedIn, StatusOnBreak:
		result.Provisional = true
	}

	return result, nil
}

func (w *WorkedHours) add(d time.Duration) {
	if d <= 0 {
		w.Clamped = true
		return
	}
	w.Total += d
}
