package database

import (
	"fmt"
	"time"

	"swmanager/internal/model"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options tune a connection pool
type Options struct {
	Echo            bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// GormConfig is shared by every pool: transactions are opened explicitly per request,
// and driver errors are translated so repositories can match on gorm sentinels.
func GormConfig(echo bool) *gorm.Config {
	level := logger.Warn
	if echo {
		level = logger.Info
	}
	return &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// NewConnection opens a PostgreSQL pool, checks it with a ping and applies pool limits
func NewConnection(dsn string, opts Options) (*gorm.DB, error) {
	return Open(postgres.Open(dsn), opts)
}

// Open is NewConnection for an arbitrary dialector
func Open(dialector gorm.Dialector, opts Options) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, GormConfig(opts.Echo))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	return db, nil
}

// Models lists every table in dependency order
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.AuditLog{},
		&model.Department{},
		&model.Computer{},
		&model.ComputerAssignment{},
		&model.SoftwareType{},
		&model.Software{},
		&model.Vendor{},
		&model.License{},
		&model.Installation{},
	}
}

// Migrate creates or updates the schema, including ON DELETE CASCADE foreign keys.
// It must run on a scope with DDL rights.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	zap.L().Info("schema migrated", zap.Int("tables", len(Models())))
	return nil
}

// Close releases the pool behind db
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
