package auditlog

import (
	"time"

	"gorm.io/datatypes"
)

// Audited actions
const (
	ActionUserSynced      = "USER_SYNCED"
	ActionEventCreated    = "EVENT_CREATED"
	ActionEventUpdated    = "EVENT_UPDATED"
	ActionRSVPConfirmed   = "RSVP_CONFIRMED"
	ActionRSVPCancelled   = "RSVP_CANCELLED"
	ActionReviewSubmitted = "REVIEW_SUBMITTED"
)

// AuditLog represents the audit_logs table
type AuditLog struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint          `gorm:"index" json:"user_id"`  // nullable (e.g. sync before the row exists)
	EventID   *uint          `gorm:"index" json:"event_id"` // nullable (user-level actions)
	Action    string         `gorm:"size:100;not null;index" json:"action"`
	Details   datatypes.JSON `json:"details"` // freeform JSON details
	IPAddress string         `gorm:"size:45" json:"ip_address"`
	Status    string         `gorm:"size:20;not null;index" json:"status"` // success/failure
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName overrides table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}
