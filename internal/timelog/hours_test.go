package timelog_test

import (
	"testing"
	"time"

	"go-worklog/internal/timelog"
	timelogerrors "go-worklog/internal/timelog/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type entry struct {
	kind string
	at   time.Time
}

func timedEvents(day time.Time, entries ...entry) []timelog.TimeEvent {
	events := make([]timelog.TimeEvent, len(entries))
	for i, e := range entries {
		events[i] = timelog.TimeEvent{
			ID:         uuid.New(),
			EmployeeID: uuid.New(),
			WorkDate:   day,
			Kind:       e.kind,
			RecordedAt: e.at,
		}
	}
	return events
}

func TestComputeWorked(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time {
		return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
	}

	t.Run("closed day with one break", func(t *testing.T) {
		events := timedEvents(day,
			entry{timelog.KindCheckIn, at(9, 0)},
			entry{timelog.KindBreakStart, at(12, 0)},
			entry{timelog.KindBreakEnd, at(12, 30)},
			entry{timelog.KindCheckOut, at(17, 0)},
		)

		worked, err := timelog.ComputeWorked(events, at(23, 0))

		assert.NoError(t, err)
		assert.Equal(t, 7*time.Hour+30*time.Minute, worked.Total)
		assert.False(t, worked.Provisional)
		assert.False(t, worked.Clamped)
		assert.Equal(t, 7.5, timelog.RoundHours(worked.Total))
	})

	t.Run("open day is provisional against now", func(t *testing.T) {
		events := timedEvents(day,
			entry{timelog.KindCheckIn, at(9, 0)},
		)

		worked, err := timelog.ComputeWorked(events, at(11, 0))

		assert.NoError(t, err)
		assert.Equal(t, 2*time.Hour, worked.Total)
		assert.True(t, worked.Provisional)
	})

	t.Run("on break excludes the running break", func(t *testing.T) {
		events := timedEvents(day,
			entry{timelog.KindCheckIn, at(9, 0)},
			entry{timelog.KindBreakStart, at(12, 0)},
		)

		worked, err := timelog.ComputeWorked(events, at(14, 0))

		assert.NoError(t, err)
		assert.Equal(t, 3*time.Hour, worked.Total)
		assert.True(t, worked.Provisional)
	})

	t.Run("empty day is zero and provisional", func(t *testing.T) {
		worked, err := timelog.ComputeWorked(nil, at(10, 0))

		assert.NoError(t, err)
		assert.Equal(t, time.Duration(0), worked.Total)
		assert.True(t, worked.Provisional)
	})

	t.Run("negative interval is clamped to zero", func(t *testing.T) {
		// Recorded timestamps out of order (clock skew): the interval
		// counts as zero instead of going negative.
		events := timedEvents(day,
			entry{timelog.KindCheckIn, at(10, 0)},
			entry{timelog.KindBreakStart, at(9, 0)},
			entry{timelog.KindBreakEnd, at(9, 30)},
			entry{timelog.KindCheckOut, at(13, 30)},
		)

		worked, err := timelog.ComputeWorked(events, at(23, 0))

		assert.NoError(t, err)
		assert.True(t, worked.Clamped)
		assert.Equal(t, 4*time.Hour, worked.Total)
	})

	t.Run("malformed sequence is an internal fault", func(t *testing.T) {
		cases := [][]timelog.TimeEvent{
			timedEvents(day, entry{timelog.KindBreakEnd, at(9, 0)}),
			timedEvents(day,
				entry{timelog.KindCheckIn, at(9, 0)},
				entry{timelog.KindCheckIn, at(10, 0)},
			),
			timedEvents(day,
				entry{timelog.KindCheckIn, at(9, 0)},
				entry{timelog.KindBreakStart, at(10, 0)},
				entry{timelog.KindCheckOut, at(11, 0)},
			),
			timedEvents(day, entry{"UNKNOWN", at(9, 0)}),
		}
		for _, events := range cases {
			_, err := timelog.ComputeWorked(events, at(23, 0))
			assert.ErrorIs(t, err, timelogerrors.ErrMalformedSequence)
		}
	})
}
