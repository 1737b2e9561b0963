package repositories

import (
	"belanja/internal/models"
)

// MockAuditLogRepository is an in-memory implementation of AuditLogRepository.
type MockAuditLogRepository struct {
	src stateSource
}

// Create appends an audit log entry.
func (r *MockAuditLogRepository) Create(entry *models.AuditLog) error {
	st, done := r.src.acquire()
	defer done()

	entry.ID = uint(len(st.auditLogs) + 1)
	st.auditLogs = append(st.auditLogs, *entry)
	return nil
}

// GetByEntity returns the audit trail for one entity, oldest first.
func (r *MockAuditLogRepository) GetByEntity(entityName, entityID string) ([]models.AuditLog, error) {
	st, done := r.src.acquire()
	defer done()

	var entries []models.AuditLog
	for _, e := range st.auditLogs {
		if e.EntityName == entityName && e.EntityID == entityID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}
