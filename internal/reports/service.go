package reports

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/barriolink/community-events-backend/internal/apperrors"
	"github.com/barriolink/community-events-backend/internal/event"
	"github.com/barriolink/community-events-backend/internal/review"
	"github.com/barriolink/community-events-backend/internal/rsvp"
)

// Service assembles report data for a single event. Only the organizer may
// pull a report for their event.
type Service struct {
	Events      *event.Repository
	Attendances rsvp.Repository
	Reviews     review.Repository
	Exporter    Exporter
}

func NewService(events *event.Repository, attendances rsvp.Repository, reviews review.Repository, exporter Exporter) *Service {
	return &Service{
		Events:      events,
		Attendances: attendances,
		Reviews:     reviews,
		Exporter:    exporter,
	}
}

// BuildEventReport gathers attendances and reviews for the event and renders
// them in the requested format.
func (s *Service) BuildEventReport(ctx context.Context, eventID, requesterID uint, format string) ([]byte, string, string, error) {
	e, err := s.Events.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", apperrors.NotFoundf("event %d", eventID)
		}
		return nil, "", "", err
	}
	if e.OrganizerID != requesterID {
		return nil, "", "", apperrors.Forbiddenf("only the organizer can export this report")
	}

	attendances, err := s.Attendances.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, "", "", err
	}
	reviews, err := s.Reviews.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, "", "", err
	}
	stats, err := s.Reviews.StatsByEvent(ctx, eventID)
	if err != nil {
		return nil, "", "", err
	}

	data := EventReportData{
		EventID:       e.ID,
		Title:         e.Title,
		EventDate:     e.EventDate,
		Location:      e.Location,
		AverageRating: stats.Average,
		ReviewCount:   stats.Count,
	}

	for _, a := range attendances {
		row := AttendanceReportRow{
			UserID:      a.UserID,
			Status:      a.Status,
			RespondedAt: a.UpdatedAt,
		}
		if a.User != nil {
			row.Email = a.User.Email
			if a.User.DisplayName != nil {
				row.DisplayName = *a.User.DisplayName
			}
		}
		data.Attendances = append(data.Attendances, row)
	}

	for _, r := range reviews {
		row := ReviewReportRow{
			Rating:      r.Rating,
			SubmittedAt: r.CreatedAt,
		}
		if r.Comment != nil {
			row.Comment = *r.Comment
		}
		if r.User != nil {
			if r.User.DisplayName != nil {
				row.Reviewer = *r.User.DisplayName
			} else {
				row.Reviewer = r.User.Email
			}
		}
		data.Reviews = append(data.Reviews, row)
	}

	return s.Exporter.Export(format, data)
}
