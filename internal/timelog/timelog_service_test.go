package timelog_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-worklog/internal/timelog"
	timelogerrors "go-worklog/internal/timelog/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeTimelogRepository struct {
	withTxFn     func(tx *sql.Tx) timelog.Repository
	lockDayFn    func(ctx context.Context, employeeID string, day time.Time) error
	appendFn     func(ctx context.Context, e *timelog.TimeEvent) error
	listForDayFn func(ctx context.Context, employeeID string, day time.Time) ([]timelog.TimeEvent, error)
}

func (f *fakeTimelogRepository) WithTx(tx *sql.Tx) timelog.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeTimelogRepository) LockDay(ctx context.Context, employeeID string, day time.Time) error {
	if f.lockDayFn != nil {
		return f.lockDayFn(ctx, employeeID, day)
	}
	return nil
}

func (f *fakeTimelogRepository) Append(ctx context.Context, e *timelog.TimeEvent) error {
	if f.appendFn != nil {
		return f.appendFn(ctx, e)
	}
	return nil
}

func (f *fakeTimelogRepository) ListForDay(ctx context.Context, employeeID string, day time.Time) ([]timelog.TimeEvent, error) {
	if f.listForDayFn != nil {
		return f.listForDayFn(ctx, employeeID, day)
	}
	return nil, nil
}

type timelogServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service timelog.Service
	repo    *fakeTimelogRepository
}

func setupTimelogServiceTest(t *testing.T) *timelogServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeTimelogRepository{}
	svc := timelog.NewService(db, repo)

	return &timelogServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestTimelogService_RequestAction(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("check-in on empty day succeeds", func(t *testing.T) {
		deps := setupTimelogServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		var locked bool
		deps.repo.lockDayFn = func(ctx context.Context, eid string, day time.Time) error {
			assert.Equal(t, employeeID, eid)
			locked = true
			return nil
		}
		deps.repo.listForDayFn = func(ctx context.Context, eid string, day time.Time) ([]timelog.TimeEvent, error) {
			assert.True(t, locked, "journal must be read under the day lock")
			return nil, nil
		}
		deps.repo.appendFn = func(ctx context.Context, e *timelog.TimeEvent) error {
			assert.Equal(t, timelog.KindCheckIn, e.Kind)
			assert.Equal(t, uuid.MustParse(employeeID), e.EmployeeID)
			assert.NotEqual(t, uuid.Nil, e.ID)
			return nil
		}

		resp, err := deps.service.RequestAction(ctx, employeeID, timelog.ActionCheckIn)

		assert.NoError(t, err)
		assert.Equal(t, string(timelog.StatusCheckedIn), resp.Status)
		assert.Equal(t, timelog.KindCheckIn, resp.Event.Kind)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("break-start before check-in is rejected without append", func(t *testing.T) {
		deps := setupTimelogServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.listForDayFn = func(ctx context.Context, eid string, day time.Time) ([]timelog.TimeEvent, error) {
			return nil, nil
		}
		deps.repo.appendFn = func(ctx context.Context, e *timelog.TimeEvent) error {
			t.Fatal("rejected action must not append an event")
			return nil
		}

		_, err := deps.service.RequestAction(ctx, employeeID, timelog.ActionBreakStart)

		assert.ErrorIs(t, err, timelogerrors.ErrInvalidTransition)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("any action after check-out reports day closed", func(t *testing.T) {
		deps := setupTimelogServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.listForDayFn = func(ctx context.Context, eid string, day time.Time) ([]timelog.TimeEvent, error) {
			return eventsOf(
				timelog.KindCheckIn,
				timelog.KindCheckOut,
			), nil
		}

		_, err := deps.service.RequestAction(ctx, employeeID, timelog.ActionCheckIn)

		assert.ErrorIs(t, err, timelogerrors.ErrDayClosed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid employee id", func(t *testing.T) {
		deps := setupTimelogServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.RequestAction(ctx, "not-a-uuid", timelog.ActionCheckIn)

		assert.ErrorIs(t, err, timelogerrors.ErrInvalidEmployeeID)
	})
}

func TestTimelogService_CurrentStatus(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("derives status from today's journal", func(t *testing.T) {
		deps := setupTimelogServiceTest(t)
		defer deps.db.Close()

		deps.repo.listForDayFn = func(ctx context.Context, eid string, day time.Time) ([]timelog.TimeEvent, error) {
			assert.Equal(t, employeeID, eid)
			return eventsOf(timelog.KindCheckIn, timelog.KindBreakStart), nil
		}

		resp, err := deps.service.CurrentStatus(ctx, employeeID)

		assert.NoError(t, err)
		assert.Equal(t, string(timelog.StatusOnBreak), resp.Status)
		assert.Equal(t, employeeID, resp.EmployeeID)
	})

	t.Run("invalid employee id", func(t *testing.T) {
		deps := setupTimelogServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.CurrentStatus(ctx, "nope")

		assert.ErrorIs(t, err, timelogerrors.ErrInvalidEmployeeID)
	})
}

func TestTimelogService_DayDetail(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("aggregates hours for a closed day", func(t *testing.T) {
		deps := setupTimelogServiceTest(t)
		defer deps.db.Close()

		day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		at := func(h, m int) time.Time {
			return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
		}
		deps.repo.listForDayFn = func(ctx context.Context, eid string, d time.Time) ([]timelog.TimeEvent, error) {
			assert.Equal(t, day, d)
			return timedEvents(day,
				entry{timelog.KindCheckIn, at(9, 0)},
				entry{timelog.KindBreakStart, at(12, 0)},
				entry{timelog.KindBreakEnd, at(12, 30)},
				entry{timelog.KindCheckOut, at(17, 0)},
			), nil
		}

		resp, err := deps.service.DayDetail(ctx, employeeID, "2026-03-02")

		assert.NoError(t, err)
		assert.Equal(t, 7.5, resp.HoursWorked)
		assert.Equal(t, string(timelog.StatusCheckedOut), resp.Status)
		assert.False(t, resp.Provisional)
		assert.Len(t, resp.Events, 4)
	})

	t.Run("invalid date format", func(t *testing.T) {
		deps := setupTimelogServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.DayDetail(ctx, employeeID, "02-03-2026")

		assert.ErrorIs(t, err, timelogerrors.ErrInvalidDateFormat)
	})
}
