package rbac

import (
	"go-worklog/internal/domain"

	"github.com/casbin/casbin/v2"
)

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

// NewService loads the static role policy. There are exactly two roles:
// every authenticated caller is an employee, and managers additionally
// review logsheets and drill into other employees' days.
func NewService(enforcer *casbin.Enforcer) (Service, error) {
	policies := [][]string{
		{RoleEmployee, "employee", "read"},
		{RoleEmployee, "timelog", "create"},
		{RoleEmployee, "timelog", "read"},
		{RoleEmployee, "logsheet", "create"},
		{RoleEmployee, "logsheet", "read"},
		{RoleEmployee, "credit", "read"},
		{RoleManager, "timelog", "read-all"},
		{RoleManager, "logsheet", "read-all"},
		{RoleManager, "logsheet", "decide"},
		{RoleManager, "credit", "read-all"},
	}
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	// Managers inherit all employee permissions.
	if _, err := enforcer.AddGroupingPolicy(RoleManager, RoleEmployee); err != nil {
		return nil, err
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	return s.enforcer.Enforce(req.Role, req.Resource, req.Action)
}
