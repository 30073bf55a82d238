package services

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"alphafusion/internal/logger"
	"alphafusion/internal/models"
)

// AuditEntry describes one bucket mutation to record.
type AuditEntry struct {
	BucketID     string
	Action       models.AuditAction
	ResourceType string
	ResourceID   string
	IPAddress    string
	Changes      map[string]any
}

type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log writes entry. Failures are logged and swallowed: the mutation being
// audited has already succeeded.
func (s *auditService) Log(ctx context.Context, entry AuditEntry) {
	log := logger.Named("audit").With(
		"bucket_id", entry.BucketID,
		"action", entry.Action,
		"resource_type", entry.ResourceType,
		"resource_id", entry.ResourceID,
	)

	row := &models.AuditLog{
		BucketID:     entry.BucketID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		IPAddress:    entry.IPAddress,
	}
	if entry.Changes != nil {
		data, err := json.Marshal(entry.Changes)
		if err != nil {
			log.Errorw("failed to marshal audit changes", "error", err)
			data = []byte("{}")
		}
		row.Changes = string(data)
	}

	// The request context may already be cancelled once the response is out.
	if err := s.db.WithContext(context.WithoutCancel(ctx)).Create(row).Error; err != nil {
		log.Errorw("failed to create audit log entry", "error", err)
	}
}
