package event

import (
	"time"

	"github.com/barriolink/community-events-backend/internal/rsvp"
	"github.com/barriolink/community-events-backend/internal/review"
	"github.com/barriolink/community-events-backend/internal/user"
)

// ============================
// 🔷 GORM Event Model
//
// OrganizerID is set at creation and never changes afterwards.
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	EventDate   time.Time `gorm:"not null;index" json:"date"`
	Location    string    `gorm:"type:text;not null" json:"location"`
	OrganizerID uint      `gorm:"not null;index" json:"organizerId"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Organizer *user.User `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`

	// List annotations, filled per request
	AttendanceCount int64 `gorm:"-" json:"attendanceCount"`
	ReviewCount     int64 `gorm:"-" json:"reviewCount"`
}

// Detail is the full event view: the row plus its attendance and review
// lists with attendee/reviewer summaries.
type Detail struct {
	Event
	Attendances []rsvp.Attendance `json:"attendances"`
	Reviews     []review.Review   `json:"reviews"`
}

// AttendanceWithEvent pairs one RSVP row with its event for the history view.
type AttendanceWithEvent struct {
	rsvp.Attendance
	Event Event `json:"event"`
}

// MyEventsResponse is the caller's event history: events they organize and
// events they responded to.
type MyEventsResponse struct {
	Organized []Event               `json:"organized"`
	Attended  []AttendanceWithEvent `json:"attended"`
}

// ============================
// 🟡 Create Event Request
type CreateEventRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date" binding:"required"` // RFC 3339 or "2006-01-02"
	Location    string  `json:"location" binding:"required"`
}

// ============================
// 🟠 Update Event Request — all fields optional, only provided ones change
type UpdateEventRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	Location    *string `json:"location,omitempty"`
}
