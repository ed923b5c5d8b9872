package review

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Upsert(ctx context.Context, rv *Review) (*Review, error)
	FindByUserAndEvent(ctx context.Context, userID, eventID uint) (*Review, error)
	ListByEvent(ctx context.Context, eventID uint) ([]Review, error)
	StatsByEvent(ctx context.Context, eventID uint) (*Stats, error)
	CountByEvent(ctx context.Context, eventID uint) (int64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// ===========================
// ⭐ Upsert writes the caller's review, replacing rating and comment when a
// row for the (user, event) pair already exists. One row per pair keeps
// repeat submissions from inflating the average.
func (r *repository) Upsert(ctx context.Context, rv *Review) (*Review, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "event_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "comment"}),
		}).
		Create(rv).Error
	if err != nil {
		return nil, err
	}

	return r.FindByUserAndEvent(ctx, rv.UserID, rv.EventID)
}

// FindByUserAndEvent fetches the single row for a (user, event) pair
func (r *repository) FindByUserAndEvent(ctx context.Context, userID, eventID uint) (*Review, error) {
	var rv Review
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&rv).Error
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// ListByEvent returns all reviews for an event with reviewer summaries
func (r *repository) ListByEvent(ctx context.Context, eventID uint) ([]Review, error) {
	var rows []Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// StatsByEvent computes the arithmetic mean and count in one query.
// AVG over zero rows is NULL, so COALESCE keeps the zero-review case at 0.
func (r *repository) StatsByEvent(ctx context.Context, eventID uint) (*Stats, error) {
	var stats Stats
	err := r.db.WithContext(ctx).
		Model(&Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("event_id = ?", eventID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// CountByEvent counts review rows for an event
func (r *repository) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Review{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
