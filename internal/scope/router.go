package scope

import (
	"errors"
	"fmt"

	"swmanager/internal/apperror"
	"swmanager/internal/config"
	"swmanager/internal/database"
	"swmanager/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Config holds one connection pool per credential scope. A nil pool means the scope is not configured.
type Config struct {
	Root       *gorm.DB
	Admin      *gorm.DB
	Manager    *gorm.DB
	Supervisor *gorm.DB
}

// Router maps an authenticated role to the pool whose database grants match that role
type Router struct {
	cfg Config
}

func NewRouter(cfg Config) *Router {
	return &Router{cfg: cfg}
}

// Root returns the authentication scope. It is never handed to role handlers.
func (r *Router) Root() *gorm.DB {
	return r.cfg.Root
}

// Resolve returns the pool for role, or a Conflict when the role has no configured scope
func (r *Router) Resolve(role model.Role) (*gorm.DB, error) {
	var db *gorm.DB
	switch role {
	case model.RoleAdmin:
		db = r.cfg.Admin
	case model.RoleManager:
		db = r.cfg.Manager
	case model.RoleSupervisor:
		db = r.cfg.Supervisor
	}
	if db == nil {
		return nil, apperror.Conflict(fmt.Sprintf("No database scope configured for role: %s", role), nil)
	}
	return db, nil
}

// Close releases every pool. Pools shared between scopes are closed once.
func (r *Router) Close() error {
	seen := make(map[*gorm.DB]bool)
	var errs []error
	for _, db := range []*gorm.DB{r.cfg.Root, r.cfg.Admin, r.cfg.Manager, r.cfg.Supervisor} {
		if db == nil || seen[db] {
			continue
		}
		seen[db] = true
		if err := database.Close(db); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open connects the four scopes from their DSNs. Role scopes with an empty DSN stay unconfigured.
func Open(cfg config.DatabaseConfig) (*Router, error) {
	opts := database.Options{
		Echo:            cfg.Echo,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}

	var scopes Config
	targets := []struct {
		name string
		dsn  string
		dst  **gorm.DB
	}{
		{"root", cfg.RootURL, &scopes.Root},
		{"admin", cfg.AdminURL, &scopes.Admin},
		{"manager", cfg.ManagerURL, &scopes.Manager},
		{"supervisor", cfg.SupervisorURL, &scopes.Supervisor},
	}

	for _, t := range targets {
		if t.dsn == "" {
			zap.L().Warn("database scope not configured", zap.String("scope", t.name))
			continue
		}
		db, err := database.NewConnection(t.dsn, opts)
		if err != nil {
			_ = NewRouter(scopes).Close()
			return nil, fmt.Errorf("connect %s scope: %w", t.name, err)
		}
		*t.dst = db
		zap.L().Info("database scope connected", zap.String("scope", t.name))
	}

	return NewRouter(scopes), nil
}
