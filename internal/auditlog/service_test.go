package auditlog

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&AuditLog{}))

	return NewService(NewRepository(db)), db
}

func TestLogActionStoresDetailsAsJSON(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	userID := uint(10)
	eventID := uint(7)
	err := svc.LogAction(ctx, &userID, &eventID, ActionEventCreated,
		map[string]interface{}{"title": "Cleanup"}, "127.0.0.1", "success")
	require.NoError(t, err)

	var entry AuditLog
	require.NoError(t, db.First(&entry).Error)
	require.Equal(t, ActionEventCreated, entry.Action)
	require.Equal(t, "success", entry.Status)
	require.Contains(t, string(entry.Details), "Cleanup")
}

func TestLogActionWithNilDetails(t *testing.T) {
	svc, db := setupService(t)

	err := svc.LogAction(context.Background(), nil, nil, ActionUserSynced, nil, "", "failure")
	require.NoError(t, err)

	var entry AuditLog
	require.NoError(t, db.First(&entry).Error)
	require.Nil(t, entry.UserID)
	require.Equal(t, "{}", string(entry.Details))
}

func TestGetUserActivityFiltersAndClampsLimit(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	mine := uint(10)
	other := uint(11)
	for i := 0; i < 5; i++ {
		require.NoError(t, svc.LogAction(ctx, &mine, nil, ActionRSVPConfirmed, nil, "", "success"))
	}
	require.NoError(t, svc.LogAction(ctx, &other, nil, ActionRSVPConfirmed, nil, "", "success"))

	entries, err := svc.GetUserActivity(ctx, mine, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Out-of-range limits fall back to the default
	entries, err = svc.GetUserActivity(ctx, mine, -1)
	require.NoError(t, err)
	require.Len(t, entries, 5)

	entries, err = svc.GetUserActivity(ctx, other, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
