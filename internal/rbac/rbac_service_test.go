package rbac_test

import (
	"testing"

	"go-worklog/internal/domain"
	"go-worklog/internal/rbac"
	"go-worklog/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func setupRBAC(t *testing.T) rbac.Service {
	t.Helper()

	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	svc, err := rbac.NewService(enforcer)
	assert.NoError(t, err)
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := setupRBAC(t)

	check := func(role, resource, action string) bool {
		allowed, err := svc.Enforce(domain.EnforceRequest{
			Role:     role,
			Resource: resource,
			Action:   action,
		})
		assert.NoError(t, err)
		return allowed
	}

	t.Run("employee permissions", func(t *testing.T) {
		assert.True(t, check(rbac.RoleEmployee, "timelog", "create"))
		assert.True(t, check(rbac.RoleEmployee, "timelog", "read"))
		assert.True(t, check(rbac.RoleEmployee, "logsheet", "create"))
		assert.True(t, check(rbac.RoleEmployee, "credit", "read"))
	})

	t.Run("employee cannot review", func(t *testing.T) {
		assert.False(t, check(rbac.RoleEmployee, "logsheet", "decide"))
		assert.False(t, check(rbac.RoleEmployee, "logsheet", "read-all"))
		assert.False(t, check(rbac.RoleEmployee, "timelog", "read-all"))
	})

	t.Run("manager inherits employee permissions", func(t *testing.T) {
		assert.True(t, check(rbac.RoleManager, "timelog", "create"))
		assert.True(t, check(rbac.RoleManager, "logsheet", "create"))
		assert.True(t, check(rbac.RoleManager, "logsheet", "decide"))
		assert.True(t, check(rbac.RoleManager, "logsheet", "read-all"))
	})

	t.Run("unknown role is denied", func(t *testing.T) {
		assert.False(t, check("intern", "timelog", "create"))
	})
}
