package repositories

import (
	"belanja/internal/models"
)

// AuditLogRepository defines the interface for the append-only audit trail.
// Entries are never updated or deleted.
type AuditLogRepository interface {
	Create(entry *models.AuditLog) error
	GetByEntity(entityName, entityID string) ([]models.AuditLog, error)
}
