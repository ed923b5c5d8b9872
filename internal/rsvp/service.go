package rsvp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/barriolink/community-events-backend/internal/apperrors"
	"github.com/barriolink/community-events-backend/internal/auditlog"
	"github.com/barriolink/community-events-backend/utils"
)

// EventChecker is the slice of the event repository this package needs.
// Satisfied by event.Repository; declared here to keep the dependency
// pointing one way (event imports rsvp, not the reverse).
type EventChecker interface {
	Exists(ctx context.Context, eventID uint) (bool, error)
}

type Service interface {
	SetAttending(ctx context.Context, userID, eventID uint, ip string) (*Attendance, error)
	Cancel(ctx context.Context, userID, eventID uint, ip string) (*Attendance, error)
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
// ✅ SetAttending confirms the caller's RSVP.
//
// State machine per (user, event): absent→confirmed on first call,
// cancelled→confirmed on re-confirm, confirmed→confirmed is a no-op.
// Idempotent: two calls leave exactly one confirmed row.
func (s *service) SetAttending(ctx context.Context, userID, eventID uint, ip string) (*Attendance, error) {
	if err := s.requireEvent(ctx, eventID); err != nil {
		_ = s.auditSvc.LogAction(ctx, &userID, &eventID, auditlog.ActionRSVPConfirmed,
			map[string]interface{}{"error": "event not found"}, ip, "failure")
		return nil, err
	}

	a, err := s.repo.UpsertConfirmed(ctx, userID, eventID)
	if err != nil {
		_ = s.auditSvc.LogAction(ctx, &userID, &eventID, auditlog.ActionRSVPConfirmed,
			map[string]interface{}{"error": err.Error()}, ip, "failure")
		return nil, err
	}

	_ = s.auditSvc.LogAction(ctx, &userID, &eventID, auditlog.ActionRSVPConfirmed,
		map[string]interface{}{"attendance_id": a.ID}, ip, "success")

	utils.PublishActivity(ctx, auditlog.ActionRSVPConfirmed, map[string]interface{}{
		"user_id":  userID,
		"event_id": eventID,
	})

	return a, nil
}

// ===========================
// ❌ Cancel flips an existing RSVP to cancelled. The row must exist: a user
// who never RSVP'd gets NotFound, and the row itself is preserved as history.
func (s *service) Cancel(ctx context.Context, userID, eventID uint, ip string) (*Attendance, error) {
	if err := s.requireEvent(ctx, eventID); err != nil {
		_ = s.auditSvc.LogAction(ctx, &userID, &eventID, auditlog.ActionRSVPCancelled,
			map[string]interface{}{"error": "event not found"}, ip, "failure")
		return nil, err
	}

	a, err := s.repo.FindByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		_ = s.auditSvc.LogAction(ctx, &userID, &eventID, auditlog.ActionRSVPCancelled,
			map[string]interface{}{"error": "no attendance to cancel"}, ip, "failure")
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("attendance for event %d", eventID)
		}
		return nil, err
	}

	a.Status = StatusCancelled
	if err := s.repo.Save(ctx, a); err != nil {
		_ = s.auditSvc.LogAction(ctx, &userID, &eventID, auditlog.ActionRSVPCancelled,
			map[string]interface{}{"error": err.Error()}, ip, "failure")
		return nil, err
	}

	_ = s.auditSvc.LogAction(ctx, &userID, &eventID, auditlog.ActionRSVPCancelled,
		map[string]interface{}{"attendance_id": a.ID}, ip, "success")

	utils.PublishActivity(ctx, auditlog.ActionRSVPCancelled, map[string]interface{}{
		"user_id":  userID,
		"event_id": eventID,
	})

	return a, nil
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
