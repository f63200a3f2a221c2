package scope_test

import (
	"testing"

	"swmanager/internal/apperror"
	"swmanager/internal/model"
	"swmanager/internal/scope"
	"swmanager/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRouter_Resolve(t *testing.T) {
	admin := &gorm.DB{}
	manager := &gorm.DB{}
	supervisor := &gorm.DB{}
	root := &gorm.DB{}

	router := scope.NewRouter(scope.Config{Root: root, Admin: admin, Manager: manager, Supervisor: supervisor})

	tests := []struct {
		role model.Role
		want *gorm.DB
	}{
		{model.RoleAdmin, admin},
		{model.RoleManager, manager},
		{model.RoleSupervisor, supervisor},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			db, err := router.Resolve(tt.role)
			require.NoError(t, err)
			assert.Same(t, tt.want, db)
		})
	}

	assert.Same(t, root, router.Root())
}

func TestRouter_ResolveUnconfigured(t *testing.T) {
	router := scope.NewRouter(scope.Config{Root: &gorm.DB{}, Admin: &gorm.DB{}})

	t.Run("role without pool", func(t *testing.T) {
		_, err := router.Resolve(model.RoleSupervisor)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := router.Resolve(model.Role("root"))
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrConflict)
		assert.Contains(t, err.Error(), "root")
	})
}

func TestRouter_CloseSharedPoolOnce(t *testing.T) {
	db := testutil.NewDB(t)
	router := scope.NewRouter(scope.Config{Root: db, Admin: db, Manager: db})

	assert.NoError(t, router.Close())
}
