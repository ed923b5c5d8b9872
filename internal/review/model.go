package review

import (
	"time"

	"github.com/barriolink/community-events-backend/internal/user"
)

// Rating bounds, validated before anything reaches the database
const (
	MinRating = 1
	MaxRating = 5
)

// ============================
// 🔷 GORM Review Model — one row per (user, event), upsert on resubmission
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reviews_user_event" json:"userId"`
	EventID   uint      `gorm:"not null;index;uniqueIndex:idx_reviews_user_event" json:"eventId"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   *string   `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	User *user.User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Stats are derived on every read; nothing is cached or decayed.
type Stats struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// ============================
// 🟡 Submit Review Request
type SubmitReviewRequest struct {
	Rating  int     `json:"rating" binding:"required"`
	Comment *string `json:"comment,omitempty"`
}
