package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyensartoro/property-management-system-backend/internal/dtos"
	"github.com/nguyensartoro/property-management-system-backend/internal/models"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

func (f *svcFixture) maintenanceRequest() dtos.CreateMaintenanceEventRequest {
	return dtos.CreateMaintenanceEventRequest{
		RoomID: f.roomID,
		Title:  "Broken heater",
	}
}

func TestCreateMaintenanceEventDefaultsPending(t *testing.T) {
	f := newSvcFixture(t, false)

	event, err := f.maintenance.CreateMaintenanceEvent(context.Background(), f.owner, f.maintenanceRequest())
	require.NoError(t, err)

	assert.Equal(t, models.MaintenanceStatusPending, event.Status)
	assert.False(t, event.ReportedDate.IsZero())
	// A PENDING event does not touch the room.
	assert.Equal(t, models.RoomStatusAvailable, f.room(t).Status)
}

func TestCreateMaintenanceEventInProgressClaimsRoom(t *testing.T) {
	f := newSvcFixture(t, false)

	req := f.maintenanceRequest()
	req.Status = utils.Ptr(models.MaintenanceStatusInProgress)

	_, err := f.maintenance.CreateMaintenanceEvent(context.Background(), f.owner, req)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusMaintenance, f.room(t).Status)
}

// Starting work puts the room into MAINTENANCE; completing it hands the
// room back.
func TestMaintenanceStatusDrivesRoomStatus(t *testing.T) {
	f := newSvcFixture(t, false)
	ctx := context.Background()

	event, err := f.maintenance.CreateMaintenanceEvent(ctx, f.owner, f.maintenanceRequest())
	require.NoError(t, err)

	_, err = f.maintenance.UpdateMaintenanceEvent(ctx, f.owner, event.ID, dtos.UpdateMaintenanceEventRequest{
		Status: utils.Ptr(models.MaintenanceStatusInProgress),
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusMaintenance, f.room(t).Status)

	completed, err := f.maintenance.UpdateMaintenanceEvent(ctx, f.owner, event.ID, dtos.UpdateMaintenanceEventRequest{
		Status: utils.Ptr(models.MaintenanceStatusCompleted),
	})
	require.NoError(t, err)

	assert.NotNil(t, completed.CompletedDate)
	assert.Equal(t, models.RoomStatusAvailable, f.room(t).Status)
}

// Work starting claims the room even when it is OCCUPIED.
func TestMaintenanceClaimsOccupiedRoom(t *testing.T) {
	f := newSvcFixture(t, false)
	ctx := context.Background()

	_, err := f.contracts.CreateContract(ctx, f.owner, f.createRequest())
	require.NoError(t, err)
	require.Equal(t, models.RoomStatusOccupied, f.room(t).Status)

	req := f.maintenanceRequest()
	req.Status = utils.Ptr(models.MaintenanceStatusInProgress)
	_, err = f.maintenance.CreateMaintenanceEvent(ctx, f.owner, req)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusMaintenance, f.room(t).Status)
}

// With two events in progress, the room stays in MAINTENANCE until the
// last one finishes.
func TestRoomHeldUntilLastEventFinishes(t *testing.T) {
	f := newSvcFixture(t, false)
	ctx := context.Background()

	req := f.maintenanceRequest()
	req.Status = utils.Ptr(models.MaintenanceStatusInProgress)

	first, err := f.maintenance.CreateMaintenanceEvent(ctx, f.owner, req)
	require.NoError(t, err)
	second, err := f.maintenance.CreateMaintenanceEvent(ctx, f.owner, req)
	require.NoError(t, err)

	_, err = f.maintenance.UpdateMaintenanceEvent(ctx, f.owner, first.ID, dtos.UpdateMaintenanceEventRequest{
		Status: utils.Ptr(models.MaintenanceStatusCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusMaintenance, f.room(t).Status)

	_, err = f.maintenance.UpdateMaintenanceEvent(ctx, f.owner, second.ID, dtos.UpdateMaintenanceEventRequest{
		Status: utils.Ptr(models.MaintenanceStatusCancelled),
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusAvailable, f.room(t).Status)
}

func TestDeleteInProgressMaintenanceEventConflicts(t *testing.T) {
	f := newSvcFixture(t, false)
	ctx := context.Background()

	req := f.maintenanceRequest()
	req.Status = utils.Ptr(models.MaintenanceStatusInProgress)
	event, err := f.maintenance.CreateMaintenanceEvent(ctx, f.owner, req)
	require.NoError(t, err)

	err = f.maintenance.DeleteMaintenanceEvent(ctx, f.owner, event.ID)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.ErrCodeConflict))
	assert.NotEmpty(t, f.store.maintenance.byID)
}

func TestDeletePendingMaintenanceEvent(t *testing.T) {
	f := newSvcFixture(t, false)
	ctx := context.Background()

	event, err := f.maintenance.CreateMaintenanceEvent(ctx, f.owner, f.maintenanceRequest())
	require.NoError(t, err)

	require.NoError(t, f.maintenance.DeleteMaintenanceEvent(ctx, f.owner, event.ID))
	assert.Empty(t, f.store.maintenance.byID)
}

// The tenant occupying the room can report a problem; a stranger cannot.
func TestMaintenanceReportingAccess(t *testing.T) {
	f := newSvcFixture(t, false)
	ctx := context.Background()

	_, err := f.maintenance.CreateMaintenanceEvent(ctx, f.tenant, f.maintenanceRequest())
	require.NoError(t, err)

	_, err = f.maintenance.CreateMaintenanceEvent(ctx, f.stranger, f.maintenanceRequest())
	assert.True(t, utils.IsCode(err, utils.ErrCodeAuthorizationDenied))
}
