package repositories

import (
	"fmt"

	"belanja/internal/models"

	"gorm.io/gorm"
)

// GORMAuditLogRepository is a GORM implementation of AuditLogRepository.
type GORMAuditLogRepository struct {
	db *gorm.DB
}

// NewGORMAuditLogRepository creates a new instance of GORMAuditLogRepository.
func NewGORMAuditLogRepository(db *gorm.DB) *GORMAuditLogRepository {
	return &GORMAuditLogRepository{
		db: db,
	}
}

// Create appends an audit log entry.
func (r *GORMAuditLogRepository) Create(entry *models.AuditLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}
	return nil
}

// GetByEntity retrieves the audit trail for one entity, oldest first.
func (r *GORMAuditLogRepository) GetByEntity(entityName, entityID string) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := r.db.Where("entity_name = ? AND entity_id = ?", entityName, entityID).
		Order("timestamp asc").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get audit trail for %s %s: %w", entityName, entityID, err)
	}
	return entries, nil
}
