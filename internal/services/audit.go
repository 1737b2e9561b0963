package services

import (
	"encoding/json"
	"log"
	"time"

	"belanja/internal/models"
	"belanja/internal/repositories"
	"belanja/pkg/rabbitmq"
)

// AuditRecorder appends entries to the audit trail: a database row plus a
// message on the audit queue. Both writes are best-effort; a failed audit
// must never unwind the business operation that triggered it, so Record
// returns nothing and only logs failures.
type AuditRecorder struct {
	auditRepo repositories.AuditLogRepository
	publisher rabbitmq.Publisher // may be nil when messaging is disabled
}

// NewAuditRecorder creates a new AuditRecorder.
func NewAuditRecorder(auditRepo repositories.AuditLogRepository, publisher rabbitmq.Publisher) *AuditRecorder {
	return &AuditRecorder{
		auditRepo: auditRepo,
		publisher: publisher,
	}
}

// Record appends an audit entry for an action taken by a user on an entity.
func (a *AuditRecorder) Record(userID, entityName, entityID, action string) {
	entry := models.AuditLog{
		Timestamp:  time.Now(),
		UserID:     userID,
		EntityName: entityName,
		EntityID:   entityID,
		Action:     action,
	}

	if err := a.auditRepo.Create(&entry); err != nil {
		log.Printf("Warning: failed to store audit entry for %s %s: %v", entityName, entityID, err)
	}

	if a.publisher == nil {
		return
	}
	body, err := json.Marshal(entry)
	if err != nil {
		log.Printf("Warning: failed to marshal audit entry for %s %s: %v", entityName, entityID, err)
		return
	}
	if err := a.publisher.Publish(rabbitmq.AuditLogQueue, body); err != nil {
		log.Printf("Warning: failed to publish audit entry for %s %s: %v", entityName, entityID, err)
	}
}
