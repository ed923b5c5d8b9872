package user

import (
	"time"
)

// ============================
// 🔷 GORM User Model
//
// Rows are created on first successful identity verification and updated on
// later verifications; they are never deleted in the normal flow.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FirebaseUID string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"firebaseUid"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	DisplayName *string   `gorm:"type:varchar(255)" json:"displayName"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Summary is the nested shape embedded in event and review payloads.
type Summary struct {
	ID          uint    `json:"id"`
	Email       string  `json:"email,omitempty"`
	DisplayName *string `json:"displayName"`
}

// Summarize trims a row down to what other resources embed.
func (u *User) Summarize() Summary {
	return Summary{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName}
}
