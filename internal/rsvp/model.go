package rsvp

import (
	"time"

	"github.com/barriolink/community-events-backend/internal/user"
)

// Attendance states. A row never leaves the table once created; cancellation
// flips the status so the history stays intact.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// ============================
// 🔷 GORM Attendance Model — one row per (user, event)
type Attendance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_attendances_user_event" json:"userId"`
	EventID   uint      `gorm:"not null;index;uniqueIndex:idx_attendances_user_event" json:"eventId"`
	Status    string    `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	User *user.User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName overrides table name for Attendance
func (Attendance) TableName() string {
	return "attendances"
}
