package credit

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	crediterrors "go-worklog/internal/credit/errors"
	"go-worklog/internal/events"
	"go-worklog/internal/logsheet"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

//go:generate mockgen -source=credit_service.go -destination=mock/credit_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, event events.LogsheetDecidedEvent) error
	Balance(ctx context.Context, employeeID string) (BalanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("credit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("credit.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Apply folds one decision event into the ledger. Rejections carry no
// credit and are skipped; a replayed approval hits the credit_entries
// primary key and is skipped too, so the ledger is incremented at most
// once per logsheet.
func (s *service) Apply(ctx context.Context, event events.LogsheetDecidedEvent) error {
	if event.Status != logsheet.StatusApproved {
		s.logger.Debug("skipping non-approved decision event",
			zap.String("logsheet_id", event.LogsheetID),
			zap.String("status", event.Status),
		)
		return nil
	}

	logsheetUUID, err := uuid.Parse(event.LogsheetID)
	if err != nil {
		return crediterrors.ErrInvalidLogsheetID
	}
	employeeUUID, err := uuid.Parse(event.EmployeeID)
	if err != nil {
		return crediterrors.ErrInvalidEmployeeID
	}
	workDate, err := time.Parse(dateLayout, event.WorkDate)
	if err != nil {
		return err
	}
	decidedBy, _ := uuid.Parse(event.DecidedBy)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	entry := &CreditEntry{
		LogsheetID:    logsheetUUID,
		EmployeeID:    employeeUUID,
		WorkDate:      workDate,
		WorkDayCredit: event.WorkDayCredit,
		DecidedBy:     decidedBy,
		CreatedAt:     time.Now().UTC(),
	}
	if err := qtx.InsertEntry(ctx, entry); err != nil {
		if isDuplicateEntry(err) {
			s.logger.Warn("credit already applied for logsheet, skipping",
				zap.String("logsheet_id", event.LogsheetID),
				zap.String("employee_id", event.EmployeeID),
			)
			return nil
		}
		return err
	}

	total, err := qtx.IncrementLedger(ctx, event.EmployeeID, event.WorkDayCredit)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("work day credit applied",
		zap.String("logsheet_id", event.LogsheetID),
		zap.String("employee_id", event.EmployeeID),
		zap.Float64("work_day_credit", event.WorkDayCredit),
		zap.Float64("total_credit", total),
	)
	return nil
}

func (s *service) Balance(ctx context.Context, employeeID string) (BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return BalanceResponse{}, crediterrors.ErrInvalidEmployeeID
	}

	ledger, err := s.repo.GetLedger(ctx, employeeID)
	if err != nil {
		s.logger.Error("ledger lookup failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return BalanceResponse{}, err
	}
	if ledger == nil {
		return BalanceResponse{EmployeeID: employeeID, TotalCredit: 0}, nil
	}

	return BalanceResponse{
		EmployeeID:  employeeID,
		TotalCredit: ledger.TotalCredit,
		UpdatedAt:   ledger.UpdatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func isDuplicateEntry(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}
