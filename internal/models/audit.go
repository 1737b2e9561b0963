package models

import "time"

// AuditLog is an append-only record of an action taken by a user against an
// entity. Written best-effort by the order workflows; never read back by them.
type AuditLog struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Timestamp  time.Time `json:"timestamp" gorm:"index"`
	UserID     string    `json:"user_id" gorm:"type:varchar(36);index"`
	EntityName string    `json:"entity_name" gorm:"type:varchar(50)"`
	EntityID   string    `json:"entity_id" gorm:"type:varchar(36)"`
	Action     string    `json:"action" gorm:"type:varchar(255)"`
}
