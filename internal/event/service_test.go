package event

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/barriolink/community-events-backend/internal/apperrors"
	"github.com/barriolink/community-events-backend/internal/auditlog"
	"github.com/barriolink/community-events-backend/internal/review"
	"github.com/barriolink/community-events-backend/internal/rsvp"
	"github.com/barriolink/community-events-backend/internal/user"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&user.User{}, &Event{}, &rsvp.Attendance{}, &review.Review{}, &auditlog.AuditLog{},
	))

	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	svc := NewService(NewRepository(db), rsvp.NewRepository(db), review.NewRepository(db), auditSvc)
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, uid, email string) *user.User {
	t.Helper()
	u := &user.User{FirebaseUID: uid, Email: email}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestCreateEventParsesDateFormats(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	organizer := seedUser(t, db, "uid-1", "org@example.com")

	for _, date := range []string{"2026-09-12T19:00:00Z", "2026-09-12T19:00", "2026-09-12"} {
		e, err := svc.CreateEvent(ctx, organizer.ID, &CreateEventRequest{
			Title:    "Community cleanup",
			Date:     date,
			Location: "Central Park",
		}, "127.0.0.1")
		require.NoError(t, err, "date %q should be accepted", date)
		require.NotZero(t, e.ID)
		require.Equal(t, organizer.ID, e.OrganizerID)
	}
}

func TestCreateEventRejectsBadDate(t *testing.T) {
	svc, db := setupService(t)
	organizer := seedUser(t, db, "uid-1", "org@example.com")

	_, err := svc.CreateEvent(context.Background(), organizer.ID, &CreateEventRequest{
		Title:    "Community cleanup",
		Date:     "next tuesday",
		Location: "Central Park",
	}, "127.0.0.1")
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestListEventsOrderedByDateWithCounts(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	organizer := seedUser(t, db, "uid-1", "org@example.com")
	attendee := seedUser(t, db, "uid-2", "att@example.com")

	later, err := svc.CreateEvent(ctx, organizer.ID, &CreateEventRequest{
		Title: "Later", Date: "2026-12-01T10:00:00Z", Location: "B",
	}, "127.0.0.1")
	require.NoError(t, err)
	sooner, err := svc.CreateEvent(ctx, organizer.ID, &CreateEventRequest{
		Title: "Sooner", Date: "2026-09-01T10:00:00Z", Location: "A",
	}, "127.0.0.1")
	require.NoError(t, err)

	require.NoError(t, db.Create(&rsvp.Attendance{
		UserID: attendee.ID, EventID: sooner.ID, Status: rsvp.StatusConfirmed,
	}).Error)

	events, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, sooner.ID, events[0].ID)
	require.Equal(t, later.ID, events[1].ID)
	require.EqualValues(t, 1, events[0].AttendanceCount)
	require.EqualValues(t, 0, events[0].ReviewCount)
}

func TestGetEventByIDReturnsDetailWithEmptyLists(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	organizer := seedUser(t, db, "uid-1", "org@example.com")

	e, err := svc.CreateEvent(ctx, organizer.ID, &CreateEventRequest{
		Title: "Picnic", Date: "2026-09-01T10:00:00Z", Location: "Park",
	}, "127.0.0.1")
	require.NoError(t, err)

	detail, err := svc.GetEventByID(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, e.ID, detail.ID)
	require.NotNil(t, detail.Organizer)
	require.Equal(t, organizer.ID, detail.Organizer.ID)
	require.NotNil(t, detail.Attendances)
	require.Empty(t, detail.Attendances)
	require.NotNil(t, detail.Reviews)
	require.Empty(t, detail.Reviews)
}

func TestGetEventByIDUnknown(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.GetEventByID(context.Background(), 42)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateEventOrganizerOnly(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	organizer := seedUser(t, db, "uid-1", "org@example.com")
	stranger := seedUser(t, db, "uid-2", "other@example.com")

	e, err := svc.CreateEvent(ctx, organizer.ID, &CreateEventRequest{
		Title: "Picnic", Date: "2026-09-01T10:00:00Z", Location: "Park",
	}, "127.0.0.1")
	require.NoError(t, err)

	newTitle := "Hijacked"
	_, err = svc.UpdateEvent(ctx, e.ID, stranger.ID, &UpdateEventRequest{Title: &newTitle}, "127.0.0.1")
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestUpdateEventRejectsPastEvents(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	organizer := seedUser(t, db, "uid-1", "org@example.com")

	past := &Event{
		Title:       "Already happened",
		EventDate:   time.Now().Add(-48 * time.Hour),
		Location:    "Park",
		OrganizerID: organizer.ID,
	}
	require.NoError(t, db.Create(past).Error)

	newTitle := "Rewritten history"
	_, err := svc.UpdateEvent(ctx, past.ID, organizer.ID, &UpdateEventRequest{Title: &newTitle}, "127.0.0.1")
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpdateEventAppliesPartialChanges(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	organizer := seedUser(t, db, "uid-1", "org@example.com")

	e, err := svc.CreateEvent(ctx, organizer.ID, &CreateEventRequest{
		Title: "Picnic", Date: "2026-09-01T10:00:00Z", Location: "Park",
	}, "127.0.0.1")
	require.NoError(t, err)

	newLocation := "Riverside"
	updated, err := svc.UpdateEvent(ctx, e.ID, organizer.ID, &UpdateEventRequest{Location: &newLocation}, "127.0.0.1")
	require.NoError(t, err)
	require.Equal(t, "Riverside", updated.Location)
	require.Equal(t, "Picnic", updated.Title)
}

func TestUpdateEventUnknown(t *testing.T) {
	svc, db := setupService(t)
	organizer := seedUser(t, db, "uid-1", "org@example.com")

	newTitle := "Ghost"
	_, err := svc.UpdateEvent(context.Background(), 42, organizer.ID, &UpdateEventRequest{Title: &newTitle}, "127.0.0.1")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMyEventsSplitsOrganizedAndAttended(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	organizer := seedUser(t, db, "uid-1", "org@example.com")
	attendee := seedUser(t, db, "uid-2", "att@example.com")

	mine, err := svc.CreateEvent(ctx, organizer.ID, &CreateEventRequest{
		Title: "Mine", Date: "2026-09-01T10:00:00Z", Location: "A",
	}, "127.0.0.1")
	require.NoError(t, err)
	theirs, err := svc.CreateEvent(ctx, attendee.ID, &CreateEventRequest{
		Title: "Theirs", Date: "2026-10-01T10:00:00Z", Location: "B",
	}, "127.0.0.1")
	require.NoError(t, err)

	require.NoError(t, db.Create(&rsvp.Attendance{
		UserID: organizer.ID, EventID: theirs.ID, Status: rsvp.StatusConfirmed,
	}).Error)

	history, err := svc.MyEvents(ctx, organizer.ID)
	require.NoError(t, err)
	require.Len(t, history.Organized, 1)
	require.Equal(t, mine.ID, history.Organized[0].ID)
	require.Len(t, history.Attended, 1)
	require.Equal(t, theirs.ID, history.Attended[0].Event.ID)
	require.Equal(t, rsvp.StatusConfirmed, history.Attended[0].Status)
}
