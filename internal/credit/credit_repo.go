package credit

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=credit_repo.go -destination=mock/credit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	InsertEntry(ctx context.Context, entry *CreditEntry) error
	IncrementLedger(ctx context.Context, employeeID string, delta float64) (float64, error)
	GetLedger(ctx context.Context, employeeID string) (*CreditLedger, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) InsertEntry(ctx context.Context, entry *CreditEntry) error {
	if r.tx != nil {
		query := `
			INSERT INTO credit_entries (logsheet_id, employee_id, work_date, work_day_credit, decided_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		_, err := r.tx.ExecContext(ctx, query,
			entry.LogsheetID, entry.EmployeeID, entry.WorkDate.Format(dateLayout),
			entry.WorkDayCredit, entry.DecidedBy, entry.CreatedAt)
		return err
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

const incrementLedgerQuery = `
INSERT INTO credit_ledgers (employee_id, total_credit, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (employee_id) DO UPDATE
SET total_credit = credit_ledgers.total_credit + $2, updated_at = now()
RETURNING total_credit
`

// IncrementLedger is an atomic upsert-and-add, safe under concurrent
// consumers for the same employee.
func (r *repository) IncrementLedger(ctx context.Context, employeeID string, delta float64) (float64, error) {
	var total float64
	if r.tx != nil {
		err := r.tx.QueryRowContext(ctx, incrementLedgerQuery, employeeID, delta).Scan(&total)
		return total, err
	}
	err := r.db.WithContext(ctx).Raw(incrementLedgerQuery, employeeID, delta).Scan(&total).Error
	return total, err
}

func (r *repository) GetLedger(ctx context.Context, employeeID string) (*CreditLedger, error) {
	var ledger CreditLedger
	err := r.db.WithContext(ctx).
		First(&ledger, "employee_id = ?", employeeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ledger, nil
}
