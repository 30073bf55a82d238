package services

import (
	"context"
	"testing"

	"alphafusion/internal/models"
	"alphafusion/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)
	bucket := testutil.CreateTestBucket(t, db)

	ctx := context.Background()
	svc.Log(ctx, AuditEntry{
		BucketID: bucket.ID, Action: models.AuditAddHolding, ResourceType: "holding", ResourceID: "h-1",
		IPAddress: "127.0.0.1", Changes: map[string]any{"symbol": "TCS", "quantity": 10},
	})

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	svc.Log(cancelled, AuditEntry{
		BucketID: bucket.ID, Action: models.AuditRemoveHolding, ResourceType: "holding", ResourceID: "h-1",
		IPAddress: "127.0.0.1",
	})

	var entries []models.AuditLog
	db.Where("bucket_id = ?", bucket.ID).Order("created_at ASC").Order("id ASC").Find(&entries)
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	if entries[0].Action != models.AuditAddHolding || entries[0].Changes != `{"quantity":10,"symbol":"TCS"}` {
		t.Errorf("unexpected first entry %+v", entries[0])
	}
	if entries[1].Changes != "" {
		t.Errorf("expected no changes recorded, got %q", entries[1].Changes)
	}
}
