package model

import "time"

// AuditLog records who did what, written in the same transaction as the action itself
type AuditLog struct {
	LogID      int64     `gorm:"column:log_id;primaryKey;autoIncrement" json:"log_id"`
	UserID     int64     `gorm:"column:user_id;not null;index" json:"user_id"`
	User       *User     `gorm:"-:migration;foreignKey:UserID;references:UserID" json:"-"`
	Action     string    `gorm:"type:varchar(255);not null" json:"action"`
	ActionTime time.Time `gorm:"column:action_time;not null;autoCreateTime;index" json:"action_time"`
}

func (AuditLog) TableName() string { return "audit_logs" }
