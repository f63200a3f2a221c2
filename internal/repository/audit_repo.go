package repository

import (
	"context"

	"swmanager/internal/model"
)

const entityAuditLog = "Audit log"

type AuditLogRepository interface {
	Log(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error)
}

type auditLogRepository struct{}

func NewAuditLogRepository() AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Log(ctx context.Context, entry *model.AuditLog) error {
	return translateWriteError(entityAuditLog, GetDB(ctx).Create(entry).Error)
}

// List returns the newest entries first with the acting user preloaded
func (r *auditLogRepository) List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	var logs []model.AuditLog
	var total int64

	db := GetDB(ctx)
	if err := db.Model(&model.AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, translateReadError(entityAuditLog, err)
	}

	offset := (page - 1) * limit
	if err := db.Preload("User").
		Order("action_time desc, log_id desc").
		Offset(offset).Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, 0, translateReadError(entityAuditLog, err)
	}
	return logs, total, nil
}
