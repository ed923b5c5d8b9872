package rsvp

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	UpsertConfirmed(ctx context.Context, userID, eventID uint) (*Attendance, error)
	Save(ctx context.Context, a *Attendance) error
	FindByUserAndEvent(ctx context.Context, userID, eventID uint) (*Attendance, error)
	ListByEvent(ctx context.Context, eventID uint) ([]Attendance, error)
	ListByUser(ctx context.Context, userID uint) ([]Attendance, error)
	CountByEvent(ctx context.Context, eventID uint) (int64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// ===========================
// ✅ UpsertConfirmed creates a confirmed row or flips an existing one back to
// confirmed. Atomic at the database via the (user_id, event_id) unique index,
// so concurrent calls for the same pair collapse to one row.
func (r *repository) UpsertConfirmed(ctx context.Context, userID, eventID uint) (*Attendance, error) {
	a := Attendance{
		UserID:  userID,
		EventID: eventID,
		Status:  StatusConfirmed,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "event_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"status": StatusConfirmed}),
		}).
		Create(&a).Error
	if err != nil {
		return nil, err
	}

	// Re-read so the caller sees the surviving row, not the insert attempt
	return r.FindByUserAndEvent(ctx, userID, eventID)
}

// Save persists a status transition on an existing row
func (r *repository) Save(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// FindByUserAndEvent fetches the single row for a (user, event) pair
func (r *repository) FindByUserAndEvent(ctx context.Context, userID, eventID uint) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByEvent returns all rows for an event with attendee summaries
func (r *repository) ListByEvent(ctx context.Context, eventID uint) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// ListByUser returns a user's RSVP history, most recent action first
func (r *repository) ListByUser(ctx context.Context, userID uint) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// CountByEvent counts all attendance rows for an event
func (r *repository) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
