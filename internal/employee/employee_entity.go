package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName  string    `gorm:"column:full_name;type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex"`
	IsManager bool      `gorm:"column:is_manager;not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Employee) TableName() string {
	return "employees"
}
