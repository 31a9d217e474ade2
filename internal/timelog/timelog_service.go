package timelog

import (
	"context"
	"database/sql"
	"math"
	"time"

	timelogerrors "go-worklog/internal/timelog/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=timelog_service.go -destination=mock/timelog_service_mock.go -package=mock
type Service interface {
	RequestAction(ctx context.Context, employeeID string, action Action) (ActionResponse, error)
	CurrentStatus(ctx context.Context, employeeID string) (StatusResponse, error)
	TodayLogs(ctx context.Context, employeeID string) (DayDetailResponse, error)
	DayDetail(ctx context.Context, employeeID, date string) (DayDetailResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	logger      *zap.Logger
	statusGroup singleflight.Group
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("timelog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timelog.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// RequestAction validates the action against the day's derived status and,
// if legal, appends the matching journal event. Read, validation and
// append run in one transaction under the per-(employee, day) advisory
// lock, so concurrent callers cannot both observe the same status.
func (s *service) RequestAction(ctx context.Context, employeeID string, action Action) (ActionResponse, error) {
	s.logger.Debug("attendance action requested",
		zap.String("employee_id", employeeID),
		zap.String("action", string(action)),
	)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return ActionResponse{}, timelogerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("attendance action begin tx failed", zap.Error(err))
		return ActionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	if err := qtx.LockDay(ctx, employeeID, today); err != nil {
		s.logger.Error("attendance action lock day failed", zap.Error(err))
		return ActionResponse{}, err
	}

	events, err := qtx.ListForDay(ctx, employeeID, today)
	if err != nil {
		s.logger.Error("attendance action list events failed", zap.Error(err))
		return ActionResponse{}, err
	}

	current := DeriveStatus(events)
	next, err := NextStatus(current, action)
	if err != nil {
		s.logger.Warn("attendance action rejected",
			zap.String("employee_id", employeeID),
			zap.String("action", string(action)),
			zap.String("current_status", string(current)),
		)
		return ActionResponse{}, err
	}

	e := &TimeEvent{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		WorkDate:   today,
		Kind:       action.Kind(),
		RecordedAt: now,
	}
	if err := qtx.Append(ctx, e); err != nil {
		s.logger.Error("attendance action append failed", zap.Error(err))
		return ActionResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("attendance action commit failed", zap.Error(err))
		return ActionResponse{}, err
	}

	s.logger.Info("attendance action accepted",
		zap.String("employee_id", employeeID),
		zap.String("action", string(action)),
		zap.String("status", string(next)),
	)

	return ActionResponse{
		EmployeeID: employeeID,
		WorkDate:   today.Format(dateLayout),
		Status:     string(next),
		Event:      mapEventToResponse(*e),
	}, nil
}

// CurrentStatus derives today's status from the journal. Concurrent reads
// for the same employee collapse into a single journal query.
func (s *service) CurrentStatus(ctx context.Context, employeeID string) (StatusResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return StatusResponse{}, timelogerrors.ErrInvalidEmployeeID
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	v, err, _ := s.statusGroup.Do(employeeID, func() (any, error) {
		events, err := s.repo.ListForDay(ctx, employeeID, today)
		if err != nil {
			return nil, err
		}
		return DeriveStatus(events), nil
	})
	if err != nil {
		return StatusResponse{}, err
	}

	return StatusResponse{
		EmployeeID: employeeID,
		WorkDate:   today.Format(dateLayout),
		Status:     string(v.(Status)),
	}, nil
}

func (s *service) TodayLogs(ctx context.Context, employeeID string) (DayDetailResponse, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	return s.dayDetail(ctx, employeeID, today)
}

func (s *service) DayDetail(ctx context.Context, employeeID, date string) (DayDetailResponse, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return DayDetailResponse{}, timelogerrors.ErrInvalidDateFormat
	}
	return s.dayDetail(ctx, employeeID, day)
}

func (s *service) dayDetail(ctx context.Context, employeeID string, day time.Time) (DayDetailResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return DayDetailResponse{}, timelogerrors.ErrInvalidEmployeeID
	}

	events, err := s.repo.ListForDay(ctx, employeeID, day)
	if err != nil {
		return DayDetailResponse{}, err
	}

	worked, err := ComputeWorked(events, time.Now().UTC())
	if err != nil {
		// The state machine guard should make this unreachable; an
		// inconsistent journal is an internal fault, not a user error.
		s.logger.Error("malformed attendance sequence in journal",
			zap.String("employee_id", employeeID),
			zap.String("work_date", day.Format(dateLayout)),
			zap.Int("event_count", len(events)),
		)
		return DayDetailResponse{}, err
	}

	resp := DayDetailResponse{
		EmployeeID:  employeeID,
		WorkDate:    day.Format(dateLayout),
		Status:      string(DeriveStatus(events)),
		Events:      make([]TimeEventResponse, len(events)),
		HoursWorked: RoundHours(worked.Total),
		Provisional: worked.Provisional,
		Clamped:     worked.Clamped,
	}
	for i, e := range events {
		resp.Events[i] = mapEventToResponse(e)
	}
	return resp, nil
}

// RoundHours converts a duration to fractional hours with two decimals.
func RoundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}

func mapEventToResponse(e TimeEvent) TimeEventResponse {
	return TimeEventResponse{
		ID:         e.ID.String(),
		EmployeeID: e.EmployeeID.String(),
		WorkDate:   e.WorkDate.Format(dateLayout),
		Kind:       e.Kind,
		RecordedAt: e.RecordedAt.Format(time.RFC3339),
	}
}
