package event

import (
	"context"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Event
func (r *Repository) CreateEvent(ctx context.Context, e *Event) error {
	return r.DB.WithContext(ctx).Create(e).Error
}

// ===========================
// 🔍 Get Event By ID with organizer summary
func (r *Repository) GetEventByID(ctx context.Context, id uint) (*Event, error) {
	var e Event
	err := r.DB.WithContext(ctx).
		Preload("Organizer").
		First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ===========================
// ❓ Exists reports whether an event row is present.
// Satisfies rsvp.EventChecker and review.EventChecker.
func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&Event{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// ===========================
// 📄 List All Events ordered by date ascending
func (r *Repository) ListEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	err := r.DB.WithContext(ctx).
		Preload("Organizer").
		Order("event_date ASC").
		Find(&events).Error
	return events, err
}

// ===========================
// 🗂 List Events organized by one user, newest date first
func (r *Repository) ListEventsByOrganizer(ctx context.Context, organizerID uint) ([]Event, error) {
	var events []Event
	err := r.DB.WithContext(ctx).
		Where("organizer_id = ?", organizerID).
		Order("event_date DESC").
		Find(&events).Error
	return events, err
}

// ===========================
// 📦 List Events by primary keys (RSVP history join)
func (r *Repository) ListEventsByIDs(ctx context.Context, ids []uint) ([]Event, error) {
	if len(ids) == 0 {
		return []Event{}, nil
	}
	var events []Event
	err := r.DB.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&events).Error
	return events, err
}

// ===========================
// 🛠 Update Event
func (r *Repository) UpdateEvent(ctx context.Context, e *Event) error {
	return r.DB.WithContext(ctx).Save(e).Error
}
