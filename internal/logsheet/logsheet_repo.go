package logsheet

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=logsheet_repo.go -destination=mock/logsheet_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Logsheet) error
	FindByID(ctx context.Context, id string) (*Logsheet, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Logsheet, error)
	FindAllPending(ctx context.Context) ([]Logsheet, error)
	ApplyDecision(ctx context.Context, id, status string, credit float64, decidedBy uuid.UUID, decidedAt time.Time) (*Logsheet, error)
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

func (r *repository) Create(ctx context.Context, l *Logsheet) error {
	if r.tx != nil {
		query := `
			INSERT INTO logsheets (
				id, employee_id, work_date, jira_key, hours_worked, status, work_day_credit, submitted_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		_, err := r.tx.ExecContext(ctx, query,
			l.ID, l.EmployeeID, l.WorkDate.Format(dateLayout),
			l.JiraKey, l.HoursWorked, l.Status, l.WorkDayCredit, l.SubmittedAt)
		return err
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Logsheet, error) {
	var l Logsheet
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("id = ?", id).
		First(&l).Error
	return &l, err
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Logsheet, error) {
	var l Logsheet
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("work_date = ?", date.Format(dateLayout)).
		First(&l).Error
	return &l, err
}

func (r *repository) FindAllPending(ctx context.Context) ([]Logsheet, error) {
	var rows []Logsheet
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("status = ?", StatusPending).
		Order("submitted_at ASC").
		Find(&rows).Error
	return rows, err
}

const applyDecisionQuery = `
UPDATE logsheets
SET status = $2, work_day_credit = $3, decided_by = $4, decided_at = $5
WHERE id = $1 AND status = 'PENDING'
RETURNING id, employee_id, work_date, jira_key, hours_worked, status, work_day_credit, decided_by, submitted_at, decided_at
`

// ApplyDecision is the compare-and-set commit point of the approval
// workflow: the update only matches a PENDING row, so two racing managers
// produce exactly one winner. A nil result (no error) means the row was
// missing or already decided; the caller distinguishes the two.
func (r *repository) ApplyDecision(ctx context.Context, id, status string, credit float64, decidedBy uuid.UUID, decidedAt time.Time) (*Logsheet, error) {
	var row *sql.Row
	if r.tx != nil {
		row = r.tx.QueryRowContext(ctx, applyDecisionQuery, id, status, credit, decidedBy, decidedAt)
	} else {
		row = r.db.WithContext(ctx).Raw(applyDecisionQuery, id, status, credit, decidedBy, decidedAt).Row()
	}

	var l Logsheet
	var decidedByVal uuid.NullUUID
	var decidedAtVal sql.NullTime
	err := row.Scan(
		&l.ID,
		&l.EmployeeID,
		&l.WorkDate,
		&l.JiraKey,
		&l.HoursWorked,
		&l.Status,
		&l.WorkDayCredit,
		&decidedByVal,
		&l.SubmittedAt,
		&decidedAtVal,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if decidedByVal.Valid {
		l.DecidedBy = &decidedByVal.UUID
	}
	if decidedAtVal.Valid {
		l.DecidedAt = &decidedAtVal.Time
	}
	return &l, nil
}
