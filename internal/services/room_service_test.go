package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyensartoro/property-management-system-backend/internal/dtos"
	"github.com/nguyensartoro/property-management-system-backend/internal/models"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

func TestCreateRoomStartsAvailable(t *testing.T) {
	f := newSvcFixture(t, false)

	room, err := f.rooms.CreateRoom(context.Background(), f.owner, dtos.CreateRoomRequest{
		PropertyID: f.propertyID,
		Number:     "202",
		Floor:      2,
		Price:      650,
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoomStatusAvailable, room.Status)
	assert.Equal(t, "202", room.Number)
}

func TestCreateRoomUnknownPropertyNotFound(t *testing.T) {
	f := newSvcFixture(t, false)

	_, err := f.rooms.CreateRoom(context.Background(), f.admin, dtos.CreateRoomRequest{
		PropertyID: uuid.New(),
		Number:     "202",
		Price:      650,
	})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.ErrCodeNotFound))
}

func TestUpdateRoomPatchesDetailsOnly(t *testing.T) {
	f := newSvcFixture(t, false)

	before := f.room(t).Status
	room, err := f.rooms.UpdateRoom(context.Background(), f.owner, f.roomID, dtos.UpdateRoomRequest{
		Number: utils.Ptr("101B"),
		Price:  utils.Ptr(550.0),
	})
	require.NoError(t, err)

	assert.Equal(t, "101B", room.Number)
	assert.Equal(t, 550.0, room.Price)
	assert.Equal(t, before, room.Status)
}

func TestUpdateRoomDeniedForStranger(t *testing.T) {
	f := newSvcFixture(t, false)

	_, err := f.rooms.UpdateRoom(context.Background(), f.stranger, f.roomID, dtos.UpdateRoomRequest{
		Number: utils.Ptr("101B"),
	})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.ErrCodeAuthorizationDenied))
}

func TestDeleteRoomWithActiveContractConflicts(t *testing.T) {
	f := newSvcFixture(t, false)
	f.seedActiveContract(f.roomID, f.renterID)

	err := f.rooms.DeleteRoom(context.Background(), f.owner, f.roomID)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.ErrCodeConflict))
}

func TestDeleteRoomWithoutContracts(t *testing.T) {
	f := newSvcFixture(t, false)

	err := f.rooms.DeleteRoom(context.Background(), f.owner, f.roomID)
	require.NoError(t, err)
	assert.Nil(t, f.store.rooms.byID[f.roomID])
}
