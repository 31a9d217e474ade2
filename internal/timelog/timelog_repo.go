package timelog

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=timelog_repo.go -destination=mock/timelog_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	LockDay(ctx context.Context, employeeID string, day time.Time) error
	Append(ctx context.Context, e *TimeEvent) error
	ListForDay(ctx context.Context, employeeID string, day time.Time) ([]TimeEvent, error)
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

// LockDay takes a transaction-scoped advisory lock on the (employee, day)
// key. The whole read-validate-append step runs under this lock, so two
// concurrent actions for the same day serialize; the lock releases at
// commit or rollback.
func (r *repository) LockDay(ctx context.Context, employeeID string, day time.Time) error {
	key := employeeID + ":" + day.Format(dateLayout)
	query := `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, query, key)
		return err
	}
	return r.db.WithContext(ctx).Exec(`SELECT pg_advisory_xact_lock(hashtextextended(?, 0))`, key).Error
}

func (r *repository) Append(ctx context.Context, e *TimeEvent) error {
	if r.tx != nil {
		query := `
			INSERT INTO time_events (id, employee_id, work_date, kind, recorded_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		_, err := r.tx.ExecContext(ctx, query,
			e.ID, e.EmployeeID, e.WorkDate.Format(dateLayout), e.Kind, e.RecordedAt)
		return err
	}
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) ListForDay(ctx context.Context, employeeID string, day time.Time) ([]TimeEvent, error) {
	var rows []TimeEvent
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("work_date = ?", day.Format(dateLayout)).
		Order("recorded_at ASC").
		Find(&rows).Error
	return rows, err
}
