package logsheet

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-worklog/internal/bootstrap"
	"go-worklog/internal/events"
	logsheeterrors "go-worklog/internal/logsheet/errors"
	"go-worklog/internal/messaging/kafka"
	"go-worklog/internal/shared/apperror"
	"go-worklog/internal/shared/contextutil"
	"go-worklog/internal/timelog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const logsheetUniqueConstraint = "uq_logsheets_employee_date"

//go:generate mockgen -source=logsheet_service.go -destination=mock/logsheet_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID string, req SubmitLogsheetRequest) (LogsheetResponse, error)
	SubmissionStatus(ctx context.Context, employeeID string) (SubmissionStatusResponse, error)
	ListPending(ctx context.Context) ([]LogsheetResponse, error)
	Detail(ctx context.Context, requesterID, logsheetID string, isManager bool) (LogsheetResponse, error)
	Decide(ctx context.Context, managerID, logsheetID string, req DecisionRequest) (LogsheetResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	journal timelog.Repository
	outbox  kafka.OutboxRepository
	audit   bootstrap.AuditLogger
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	journal timelog.Repository,
	outbox kafka.OutboxRepository,
	audit bootstrap.AuditLogger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("logsheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("logsheet.service")
	}
	return &service{db: db, repo: repo, journal: journal, outbox: outbox, audit: audit, logger: l}
}

// Submit creates today's PENDING logsheet. It runs under the same
// per-(employee, day) advisory lock as attendance actions, so the status
// check and the insert cannot race a concurrent check-out or a second
// submission.
func (s *service) Submit(ctx context.Context, employeeID string, req SubmitLogsheetRequest) (LogsheetResponse, error) {
	s.logger.Debug("submit logsheet requested",
		zap.String("employee_id", employeeID),
		zap.String("jira_key", req.JiraKey),
	)

	jiraKey := strings.TrimSpace(req.JiraKey)
	if jiraKey == "" {
		return LogsheetResponse{}, logsheeterrors.ErrJiraKeyRequired
	}

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LogsheetResponse{}, logsheeterrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit logsheet begin tx failed", zap.Error(err))
		return LogsheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	jqtx := s.journal.WithTx(tx)

	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	if err := jqtx.LockDay(ctx, employeeID, today); err != nil {
		s.logger.Error("submit logsheet lock day failed", zap.Error(err))
		return LogsheetResponse{}, err
	}

	dayEvents, err := jqtx.ListForDay(ctx, employeeID, today)
	if err != nil {
		s.logger.Error("submit logsheet list events failed", zap.Error(err))
		return LogsheetResponse{}, err
	}

	if status := timelog.DeriveStatus(dayEvents); status != timelog.StatusCheckedOut {
		s.logger.Warn("submit logsheet rejected, day not closed",
			zap.String("employee_id", employeeID),
			zap.String("current_status", string(status)),
		)
		return LogsheetResponse{}, logsheeterrors.ErrDayNotClosed
	}

	_, err = qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err == nil {
		return LogsheetResponse{}, logsheeterrors.ErrAlreadySubmitted
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("submit logsheet lookup failed", zap.Error(err))
		return LogsheetResponse{}, err
	}

	worked, err := timelog.ComputeWorked(dayEvents, now)
	if err != nil {
		s.logger.Error("malformed attendance sequence on submit",
			zap.String("employee_id", employeeID),
			zap.Int("event_count", len(dayEvents)),
		)
		return LogsheetResponse{}, err
	}

	l := &Logsheet{
		ID:          uuid.New(),
		EmployeeID:  employeeUUID,
		WorkDate:    today,
		JiraKey:     jiraKey,
		HoursWorked: timelog.RoundHours(worked.Total),
		Status:      StatusPending,
		SubmittedAt: now,
	}

	if err := qtx.Create(ctx, l); err != nil {
		if isUniqueLogsheetViolation(err) {
			return LogsheetResponse{}, logsheeterrors.ErrAlreadySubmitted
		}
		s.logger.Error("submit logsheet persist failed", zap.Error(err))
		return LogsheetResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("submit logsheet commit failed", zap.Error(err))
		return LogsheetResponse{}, err
	}

	s.logger.Info("logsheet submitted",
		zap.String("logsheet_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Float64("hours_worked", l.HoursWorked),
	)

	return mapToResponse(*l), nil
}

func (s *service) SubmissionStatus(ctx context.Context, employeeID string) (SubmissionStatusResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return SubmissionStatusResponse{}, logsheeterrors.ErrInvalidEmployeeID
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	resp := SubmissionStatusResponse{WorkDate: today.Format(dateLayout)}

	_, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, nil
		}
		return SubmissionStatusResponse{}, err
	}

	resp.HasSubmitted = true
	return resp, nil
}

func (s *service) ListPending(ctx context.Context) ([]LogsheetResponse, error) {
	rows, err := s.repo.FindAllPending(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]LogsheetResponse, len(rows))
	for i, l := range rows {
		resp[i] = mapToResponse(l)
	}
	return resp, nil
}

// Detail returns one logsheet. Employees may only read their own;
// managers may read any.
func (s *service) Detail(ctx context.Context, requesterID, logsheetID string, isManager bool) (LogsheetResponse, error) {
	if _, err := uuid.Parse(logsheetID); err != nil {
		return LogsheetResponse{}, logsheeterrors.ErrInvalidLogsheetID
	}

	l, err := s.repo.FindByID(ctx, logsheetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LogsheetResponse{}, logsheeterrors.ErrLogsheetNotFound
		}
		return LogsheetResponse{}, err
	}

	if !isManager && l.EmployeeID.String() != requesterID {
		return LogsheetResponse{}, apperror.ErrForbidden
	}

	return mapToResponse(*l), nil
}

// Decide applies a manager's approval or rejection exactly once. The
// compare-and-set in the repository guarantees a single winner under
// concurrent decisions; losers and duplicate retries get ErrAlreadyDecided
// and the logsheet is left untouched.
func (s *service) Decide(ctx context.Context, managerID, logsheetID string, req DecisionRequest) (LogsheetResponse, error) {
	s.logger.Debug("logsheet decision requested",
		zap.String("logsheet_id", logsheetID),
		zap.String("manager_id", managerID),
		zap.String("action", req.Action),
	)

	managerUUID, err := uuid.Parse(managerID)
	if err != nil {
		return LogsheetResponse{}, logsheeterrors.ErrInvalidManagerID
	}
	if _, err := uuid.Parse(logsheetID); err != nil {
		return LogsheetResponse{}, logsheeterrors.ErrInvalidLogsheetID
	}

	var status string
	var credit float64
	switch req.Action {
	case "approve":
		if req.WorkDayCredit == nil || (*req.WorkDayCredit != 0.5 && *req.WorkDayCredit != 1.0) {
			return LogsheetResponse{}, logsheeterrors.ErrInvalidCredit
		}
		status = StatusApproved
		credit = *req.WorkDayCredit
	case "reject":
		// Any credit supplied on a rejection is ignored.
		status = StatusRejected
		credit = 0
	default:
		return LogsheetResponse{}, logsheeterrors.ErrInvalidDecision
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("logsheet decision begin tx failed", zap.Error(err))
		return LogsheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()

	updated, err := qtx.ApplyDecision(ctx, logsheetID, status, credit, managerUUID, now)
	if err != nil {
		s.logger.Error("logsheet decision persist failed",
			zap.String("logsheet_id", logsheetID),
			zap.Error(err),
		)
		return LogsheetResponse{}, err
	}
	if updated == nil {
		_, err := s.repo.FindByID(ctx, logsheetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return LogsheetResponse{}, logsheeterrors.ErrLogsheetNotFound
			}
			return LogsheetResponse{}, err
		}
		s.logger.Warn("logsheet decision on already decided logsheet",
			zap.String("logsheet_id", logsheetID),
			zap.String("manager_id", managerID),
		)
		return LogsheetResponse{}, logsheeterrors.ErrAlreadyDecided
	}

	payload, err := json.Marshal(events.LogsheetDecidedEvent{
		EventType:     "logsheet_decided",
		LogsheetID:    updated.ID.String(),
		EmployeeID:    updated.EmployeeID.String(),
		WorkDate:      updated.WorkDate.Format(dateLayout),
		Status:        updated.Status,
		WorkDayCredit: updated.WorkDayCredit,
		DecidedBy:     managerID,
		OccurredAt:    now,
	})
	if err != nil {
		return LogsheetResponse{}, err
	}

	oqtx := s.outbox.WithTx(tx)
	if err := oqtx.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "logsheet",
		AggregateID:   updated.ID.String(),
		EventType:     "logsheet_decided",
		Topic:         events.LogsheetDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("logsheet decision outbox failed",
			zap.String("logsheet_id", logsheetID),
			zap.Error(err),
		)
		return LogsheetResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("logsheet decision commit failed",
			zap.String("logsheet_id", logsheetID),
			zap.Error(err),
		)
		return LogsheetResponse{}, err
	}

	if s.audit != nil {
		s.audit.Log(ctx, bootstrap.AuditLog{
			Action:  "LOGSHEET_DECIDED",
			Message: "Logsheet " + req.Action + "d by manager",
			Meta: map[string]any{
				"logsheet_id":     updated.ID.String(),
				"employee_id":     updated.EmployeeID.String(),
				"manager_id":      managerID,
				"status":          updated.Status,
				"work_day_credit": updated.WorkDayCredit,
			},
		})
	}

	s.logger.Info("logsheet decided",
		zap.String("logsheet_id", updated.ID.String()),
		zap.String("status", updated.Status),
		zap.Float64("work_day_credit", updated.WorkDayCredit),
	)

	return mapToResponse(*updated), nil
}

func isUniqueLogsheetViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == logsheetUniqueConstraint
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, logsheetUniqueConstraint)
}

func mapToResponse(l Logsheet) LogsheetResponse {
	resp := LogsheetResponse{
		ID:            l.ID.String(),
		EmployeeID:    l.EmployeeID.String(),
		WorkDate:      l.WorkDate.Format(dateLayout),
		JiraKey:       l.JiraKey,
		HoursWorked:   l.HoursWorked,
		Status:        l.Status,
		WorkDayCredit: l.WorkDayCredit,
		SubmittedAt:   l.SubmittedAt.Format(time.RFC3339),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
	}
	if l.DecidedBy != nil {
		v := l.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}
