package event

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/barriolink/community-events-backend/internal/apperrors"
	"github.com/barriolink/community-events-backend/internal/auditlog"
	"github.com/barriolink/community-events-backend/internal/rsvp"
	"github.com/barriolink/community-events-backend/internal/review"
	"github.com/barriolink/community-events-backend/utils"
)

// AttendanceSource is the slice of the rsvp repository the event views need.
type AttendanceSource interface {
	ListByEvent(ctx context.Context, eventID uint) ([]rsvp.Attendance, error)
	ListByUser(ctx context.Context, userID uint) ([]rsvp.Attendance, error)
	CountByEvent(ctx context.Context, eventID uint) (int64, error)
}

// ReviewSource is the slice of the review repository the event views need.
type ReviewSource interface {
	ListByEvent(ctx context.Context, eventID uint) ([]review.Review, error)
	CountByEvent(ctx context.Context, eventID uint) (int64, error)
}

// Service wraps business logic for community events
type Service struct {
	Repo        *Repository
	Attendances AttendanceSource
	Reviews     ReviewSource
	AuditSvc    auditlog.Service
}

func NewService(r *Repository, attendances AttendanceSource, reviews ReviewSource, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:        r,
		Attendances: attendances,
		Reviews:     reviews,
		AuditSvc:    auditSvc,
	}
}

// ===========================
// 🎯 Create Event — the caller becomes the organizer
func (s *Service) CreateEvent(ctx context.Context, organizerID uint, req *CreateEventRequest, ip string) (*Event, error) {
	eventDate, err := parseEventDate(req.Date)
	if err != nil {
		_ = s.AuditSvc.LogAction(ctx, &organizerID, nil, auditlog.ActionEventCreated,
			map[string]interface{}{"title": req.Title, "error": "invalid date format", "date": req.Date}, ip, "failure")
		return nil, err
	}

	e := &Event{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   eventDate,
		Location:    req.Location,
		OrganizerID: organizerID,
	}

	if err := s.Repo.CreateEvent(ctx, e); err != nil {
		_ = s.AuditSvc.LogAction(ctx, &organizerID, nil, auditlog.ActionEventCreated,
			map[string]interface{}{"title": req.Title, "error": err.Error()}, ip, "failure")
		return nil, err
	}

	_ = s.AuditSvc.LogAction(ctx, &organizerID, &e.ID, auditlog.ActionEventCreated,
		map[string]interface{}{
			"event_id": e.ID,
			"title":    e.Title,
			"date":     e.EventDate.Format(time.RFC3339),
			"location": e.Location,
		}, ip, "success")

	utils.PublishActivity(ctx, auditlog.ActionEventCreated, map[string]interface{}{
		"event_id":     e.ID,
		"organizer_id": organizerID,
		"title":        e.Title,
	})

	return e, nil
}

// ===========================
// 🔍 Get Event by ID with organizer, attendance and review lists
func (s *Service) GetEventByID(ctx context.Context, id uint) (*Detail, error) {
	e, err := s.Repo.GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("event %d", id)
		}
		return nil, err
	}

	attendances, err := s.Attendances.ListByEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.Reviews.ListByEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	// Empty arrays, not nulls, in the detail payload
	if attendances == nil {
		attendances = []rsvp.Attendance{}
	}
	if reviews == nil {
		reviews = []review.Review{}
	}

	return &Detail{Event: *e, Attendances: attendances, Reviews: reviews}, nil
}

// ===========================
// 📄 List Events ordered by date ascending, annotated with counts
func (s *Service) ListEvents(ctx context.Context) ([]Event, error) {
	events, err := s.Repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	for i := range events {
		if count, err := s.Attendances.CountByEvent(ctx, events[i].ID); err == nil {
			events[i].AttendanceCount = count
		}
		if count, err := s.Reviews.CountByEvent(ctx, events[i].ID); err == nil {
			events[i].ReviewCount = count
		}
	}

	return events, nil
}

// ===========================
// 🛠 Update Event — organizer only, and only while the event is upcoming.
// Both rules are enforced here; the mobile client hiding the edit UI is not
// a substitute.
func (s *Service) UpdateEvent(ctx context.Context, id, editorID uint, req *UpdateEventRequest, ip string) (*Event, error) {
	e, err := s.Repo.GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.AuditSvc.LogAction(ctx, &editorID, &id, auditlog.ActionEventUpdated,
				map[string]interface{}{"error": "event not found"}, ip, "failure")
			return nil, apperrors.NotFoundf("event %d", id)
		}
		return nil, err
	}

	if e.OrganizerID != editorID {
		_ = s.AuditSvc.LogAction(ctx, &editorID, &id, auditlog.ActionEventUpdated,
			map[string]interface{}{"error": "not the organizer", "organizer_id": e.OrganizerID}, ip, "failure")
		return nil, apperrors.Forbiddenf("only the organizer may edit event %d", id)
	}

	if !e.EventDate.After(time.Now()) {
		_ = s.AuditSvc.LogAction(ctx, &editorID, &id, auditlog.ActionEventUpdated,
			map[string]interface{}{"error": "event already happened"}, ip, "failure")
		return nil, apperrors.Validationf("past events cannot be edited")
	}

	changes := make(map[string]interface{})
	if req.Title != nil {
		changes["title"] = map[string]string{"from": e.Title, "to": *req.Title}
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = req.Description
		changes["description"] = "updated"
	}
	if req.Date != nil {
		eventDate, err := parseEventDate(*req.Date)
		if err != nil {
			_ = s.AuditSvc.LogAction(ctx, &editorID, &id, auditlog.ActionEventUpdated,
				map[string]interface{}{"error": "invalid date format", "date": *req.Date}, ip, "failure")
			return nil, err
		}
		changes["date"] = map[string]string{"from": e.EventDate.Format(time.RFC3339), "to": eventDate.Format(time.RFC3339)}
		e.EventDate = eventDate
	}
	if req.Location != nil {
		changes["location"] = map[string]string{"from": e.Location, "to": *req.Location}
		e.Location = *req.Location
	}

	if err := s.Repo.UpdateEvent(ctx, e); err != nil {
		_ = s.AuditSvc.LogAction(ctx, &editorID, &id, auditlog.ActionEventUpdated,
			map[string]interface{}{"error": err.Error()}, ip, "failure")
		return nil, err
	}

	_ = s.AuditSvc.LogAction(ctx, &editorID, &id, auditlog.ActionEventUpdated,
		map[string]interface{}{"event_id": e.ID, "changes": changes}, ip, "success")

	utils.PublishActivity(ctx, auditlog.ActionEventUpdated, map[string]interface{}{
		"event_id":     e.ID,
		"organizer_id": editorID,
	})

	return e, nil
}

// ===========================
// 📜 MyEvents returns the caller's event history: organized events by date
// descending, attended events by RSVP creation time descending.
func (s *Service) MyEvents(ctx context.Context, userID uint) (*MyEventsResponse, error) {
	organized, err := s.Repo.ListEventsByOrganizer(ctx, userID)
	if err != nil {
		return nil, err
	}

	attendances, err := s.Attendances.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(attendances))
	for _, a := range attendances {
		ids = append(ids, a.EventID)
	}

	events, err := s.Repo.ListEventsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	attended := make([]AttendanceWithEvent, 0, len(attendances))
	for _, a := range attendances {
		attended = append(attended, AttendanceWithEvent{Attendance: a, Event: byID[a.EventID]})
	}

	if organized == nil {
		organized = []Event{}
	}

	return &MyEventsResponse{Organized: organized, Attended: attended}, nil
}

// parseEventDate accepts the client's RFC 3339 timestamps plus the bare
// date forms older builds of the mobile app sent.
func parseEventDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.Validationf("invalid date format, use RFC 3339 (e.g. 2026-09-12T19:00:00Z)")
}
