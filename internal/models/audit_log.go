package models

// AuditAction names a bucket mutation.
type AuditAction string

const (
	AuditCreateSession AuditAction = "CREATE_SESSION"
	AuditAddHolding    AuditAction = "ADD_HOLDING"
	AuditRemoveHolding AuditAction = "REMOVE_HOLDING"
)

// AuditLog records who changed which bucket, and how. Changes holds the
// request fields as a JSON object.
type AuditLog struct {
	Base
	BucketID     string      `gorm:"type:uuid;not null;index" json:"bucket_id"`
	Action       AuditAction `gorm:"not null" json:"action"`
	ResourceType string      `gorm:"not null" json:"resource_type"`
	ResourceID   string      `json:"resource_id"`
	IPAddress    string      `json:"ip_address"`
	Changes      string      `json:"changes,omitempty"`
}
