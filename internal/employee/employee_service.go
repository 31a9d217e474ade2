package employee

import (
	"context"
	"errors"

	employeeerrors "go-worklog/internal/employee/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Profile(ctx context.Context, employeeID string) (ProfileResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Profile(ctx context.Context, employeeID string) (ProfileResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return ProfileResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("profile lookup failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return ProfileResponse{}, err
	}

	return ProfileResponse{
		ID:        e.ID.String(),
		FullName:  e.FullName,
		Email:     e.Email,
		IsManager: e.IsManager,
	}, nil
}
