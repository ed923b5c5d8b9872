package review

import (
	"context"

	"github.com/barriolink/community-events-backend/internal/apperrors"
	"github.com/barriolink/community-events-backend/internal/auditlog"
	"github.com/barriolink/community-events-backend/utils"
)

// EventChecker is the slice of the event repository this package needs,
// satisfied by event.Repository.
type EventChecker interface {
	Exists(ctx context.Context, eventID uint) (bool, error)
}

// EventReviews is what ListForEvent returns: the rows plus derived stats.
type EventReviews struct {
	Reviews []Review `json:"reviews"`
	Stats   Stats    `json:"stats"`
}

type Service interface {
	Submit(ctx context.Context, userID, eventID uint, rating int, comment *string, ip string) (*Review, error)
	ListForEvent(ctx context.Context, eventID uint) (*EventReviews, error)
}

type service struct {
	repo     Repository
	events   EventChecker
	auditSvc auditlog.Service
}

func NewService(repo Repository, events EventChecker, auditSvc auditlog.Service) Service {
	return &service{repo: repo, events: events, auditSvc: auditSvc}
}

// ===========================
// ⭐ Submit validates and upserts the caller's review. A second submission
// for the same event replaces the previous rating and comment.
func (s *service) Submit(ctx context.Context, userID, eventID uint, rating int, comment *string, ip string) (*Review, error) {
	if rating < MinRating || rating > MaxRating {
		_ = s.auditSvc.LogAction(ctx, &userID, &eventID, auditlog.ActionReviewSubmitted,
			map[string]interface{}{"rating": rating, "error": "rating out of range"}, ip, "failure")
		return nil, apperrors.Validationf("rating must be between %d and %d", MinRating, MaxRating)
	}

	if err := s.requireEvent(ctx, eventID); err != nil {
		_ = s.auditSvc.LogAction(ctx, &userID, &eventID, auditlog.ActionReviewSubmitted,
			map[string]interface{}{"error": "event not found"}, ip, "failure")
		return nil, err
	}

	rv, err := s.repo.Upsert(ctx, &Review{
		UserID:  userID,
		EventID: eventID,
		Rating:  rating,
		Comment: comment,
	})
	if err != nil {
		_ = s.auditSvc.LogAction(ctx, &userID, &eventID, auditlog.ActionReviewSubmitted,
			map[string]interface{}{"error": err.Error()}, ip, "failure")
		return nil, err
	}

	_ = s.auditSvc.LogAction(ctx, &userID, &eventID, auditlog.ActionReviewSubmitted,
		map[string]interface{}{"review_id": rv.ID, "rating": rating}, ip, "success")

	utils.PublishActivity(ctx, auditlog.ActionReviewSubmitted, map[string]interface{}{
		"user_id":  userID,
		"event_id": eventID,
		"rating":   rating,
	})

	return rv, nil
}

// ===========================
// 📊 ListForEvent returns the reviews with reviewer summaries and the
// derived average/count. Zero reviews means average 0, count 0.
func (s *service) ListForEvent(ctx context.Context, eventID uint) (*EventReviews, error) {
	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.StatsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if reviews == nil {
		reviews = []Review{}
	}

	return &EventReviews{Reviews: reviews, Stats: *stats}, nil
}

func (s *service) requireEvent(ctx context.Context, eventID uint) error {
	exists, err := s.events.Exists(ctx, eventID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFoundf("event %d", eventID)
	}
	return nil
}
