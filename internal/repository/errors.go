package repository

import (
	"errors"

	"swmanager/internal/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned by lookups when no row matches
var ErrNotFound = errors.New("record not found")

const (
	pgInsufficientPrivilege = "42501"
	pgIntegrityClass        = "23"
)

const (
	msgInsufficientPermissions = "Insufficient permissions"
	msgWriteError              = "DB writing error"
	msgDeleteError             = "DB deleting error"
	msgReadError               = "DB reading error"
)

func isIntegrityViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && len(pgErr.Code) == 5 && pgErr.Code[:2] == pgIntegrityClass
}

func isPermissionDenied(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgInsufficientPrivilege
}

// translateWriteError maps a failed insert or update to a Conflict
func translateWriteError(entity string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case isIntegrityViolation(err):
		zap.L().Warn("integrity violation", zap.String("entity", entity), zap.Error(err))
		return apperror.Conflict(entity+" already exists", err)
	case isPermissionDenied(err):
		zap.L().Warn("permission denied", zap.String("entity", entity), zap.Error(err))
		return apperror.Conflict(msgInsufficientPermissions, err)
	default:
		zap.L().Error("write failed", zap.String("entity", entity), zap.Error(err))
		return apperror.Conflict(msgWriteError, err)
	}
}

func translateDeleteError(entity string, err error) error {
	if err == nil {
		return nil
	}
	if isPermissionDenied(err) {
		zap.L().Warn("permission denied", zap.String("entity", entity), zap.Error(err))
		return apperror.Conflict(msgInsufficientPermissions, err)
	}
	zap.L().Error("delete failed", zap.String("entity", entity), zap.Error(err))
	return apperror.Conflict(msgDeleteError, err)
}

// translateReadError keeps ErrNotFound distinct so controllers can name the missing entity
func translateReadError(entity string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if isPermissionDenied(err) {
		zap.L().Warn("permission denied", zap.String("entity", entity), zap.Error(err))
		return apperror.Conflict(msgInsufficientPermissions, err)
	}
	zap.L().Error("read failed", zap.String("entity", entity), zap.Error(err))
	return apperror.Conflict(msgReadError, err)
}
