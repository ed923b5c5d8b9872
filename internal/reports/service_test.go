package reports

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/barriolink/community-events-backend/internal/apperrors"
	"github.com/barriolink/community-events-backend/internal/event"
	"github.com/barriolink/community-events-backend/internal/review"
	"github.com/barriolink/community-events-backend/internal/rsvp"
	"github.com/barriolink/community-events-backend/internal/user"
)

func setupReportService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&user.User{}, &event.Event{}, &rsvp.Attendance{}, &review.Review{},
	))

	svc := NewService(event.NewRepository(db), rsvp.NewRepository(db), review.NewRepository(db), NewExporter())
	return svc, db
}

func TestBuildEventReportOrganizerOnly(t *testing.T) {
	svc, db := setupReportService(t)
	ctx := context.Background()

	organizer := &user.User{FirebaseUID: "uid-1", Email: "org@example.com"}
	require.NoError(t, db.Create(organizer).Error)
	stranger := &user.User{FirebaseUID: "uid-2", Email: "other@example.com"}
	require.NoError(t, db.Create(stranger).Error)

	e := &event.Event{
		Title:       "Cleanup",
		EventDate:   time.Now().Add(24 * time.Hour),
		Location:    "Park",
		OrganizerID: organizer.ID,
	}
	require.NoError(t, db.Create(e).Error)

	_, _, _, err := svc.BuildEventReport(ctx, e.ID, stranger.ID, FormatCSV)
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	payload, _, contentType, err := svc.BuildEventReport(ctx, e.ID, organizer.ID, FormatCSV)
	require.NoError(t, err)
	require.Equal(t, "text/csv", contentType)
	require.Contains(t, string(payload), "Cleanup")
}

func TestBuildEventReportUnknownEvent(t *testing.T) {
	svc, db := setupReportService(t)

	caller := &user.User{FirebaseUID: "uid-1", Email: "org@example.com"}
	require.NoError(t, db.Create(caller).Error)

	_, _, _, err := svc.BuildEventReport(context.Background(), 42, caller.ID, FormatCSV)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBuildEventReportIncludesAttendeesAndReviews(t *testing.T) {
	svc, db := setupReportService(t)
	ctx := context.Background()

	name := "Maria"
	organizer := &user.User{FirebaseUID: "uid-1", Email: "org@example.com"}
	require.NoError(t, db.Create(organizer).Error)
	attendee := &user.User{FirebaseUID: "uid-2", Email: "maria@example.com", DisplayName: &name}
	require.NoError(t, db.Create(attendee).Error)

	e := &event.Event{
		Title:       "Cleanup",
		EventDate:   time.Now().Add(-24 * time.Hour),
		Location:    "Park",
		OrganizerID: organizer.ID,
	}
	require.NoError(t, db.Create(e).Error)

	require.NoError(t, db.Create(&rsvp.Attendance{
		UserID: attendee.ID, EventID: e.ID, Status: rsvp.StatusConfirmed,
	}).Error)

	comment := "Great event"
	require.NoError(t, db.Create(&review.Review{
		UserID: attendee.ID, EventID: e.ID, Rating: 5, Comment: &comment,
	}).Error)

	payload, _, _, err := svc.BuildEventReport(ctx, e.ID, organizer.ID, FormatCSV)
	require.NoError(t, err)

	body := string(payload)
	require.Contains(t, body, "maria@example.com")
	require.Contains(t, body, "Maria")
	require.Contains(t, body, "Great event")
}
