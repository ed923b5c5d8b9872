package rsvp

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/barriolink/community-events-backend/internal/apperrors"
	"github.com/barriolink/community-events-backend/internal/auditlog"
	"github.com/barriolink/community-events-backend/internal/user"
)

type stubEventChecker struct {
	known map[uint]bool
}

func (s *stubEventChecker) Exists(_ context.Context, eventID uint) (bool, error) {
	return s.known[eventID], nil
}

func setupService(t *testing.T) (Service, Repository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}, &Attendance{}, &auditlog.AuditLog{}))

	repo := NewRepository(db)
	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	events := &stubEventChecker{known: map[uint]bool{1: true, 2: true}}
	return NewService(repo, events, auditSvc), repo, db
}

func TestSetAttendingCreatesConfirmedRow(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	a, err := svc.SetAttending(ctx, 10, 1, "127.0.0.1")
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, a.Status)
	require.EqualValues(t, 10, a.UserID)
	require.EqualValues(t, 1, a.EventID)
}

func TestSetAttendingIsIdempotent(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()

	first, err := svc.SetAttending(ctx, 10, 1, "127.0.0.1")
	require.NoError(t, err)

	second, err := svc.SetAttending(ctx, 10, 1, "127.0.0.1")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, StatusConfirmed, second.Status)

	count, err := repo.CountByEvent(ctx, 1)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestSetAttendingUnknownEvent(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.SetAttending(context.Background(), 10, 99, "127.0.0.1")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCancelFlipsStatusAndKeepsRow(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.SetAttending(ctx, 10, 1, "127.0.0.1")
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, 10, 1, "127.0.0.1")
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, cancelled.Status)

	// The row stays, history intact
	row, err := repo.FindByUserAndEvent(ctx, 10, 1)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, row.Status)
}

func TestCancelWithoutRSVP(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.Cancel(context.Background(), 10, 1, "127.0.0.1")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReconfirmAfterCancel(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.SetAttending(ctx, 10, 1, "127.0.0.1")
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, 10, 1, "127.0.0.1")
	require.NoError(t, err)

	again, err := svc.SetAttending(ctx, 10, 1, "127.0.0.1")
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, again.Status)

	count, err := repo.CountByEvent(ctx, 1)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
