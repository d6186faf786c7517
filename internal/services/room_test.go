package services

import (
	"testing"

	"vibelink-backend/internal/errs"
	"vibelink-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndFetchRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	users := seedUsers(t, db, "ava")

	room, err := svc.CreateRoom(users[0].ID, "Friday Hangout")
	require.NoError(t, err)
	assert.Len(t, room.Code, 6)
	assert.Equal(t, models.RoomStatusActive, room.Status)

	byCode, err := svc.GetRoomByCode(room.Code)
	require.NoError(t, err)
	assert.Equal(t, room.ID, byCode.ID)

	_, err = svc.GetRoom(999)
	assert.ErrorIs(t, err, errs.ErrRoomNotFound)
	_, err = svc.GetRoomByCode("000000")
	assert.ErrorIs(t, err, errs.ErrRoomNotFound)
}

func TestCloseRoomCancelsSessions(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	sessions := NewSessionService(db)
	users := seedUsers(t, db, "ava", "ben")

	room, err := svc.CreateRoom(users[0].ID, "Friday Hangout")
	require.NoError(t, err)

	running, err := sessions.Create(CreateSessionInput{
		RoomID:         &room.ID,
		ParticipantIDs: participantIDs(users),
	})
	require.NoError(t, err)
	_, err = sessions.AdvanceRound(running.ID)
	require.NoError(t, err)

	// Only the owner may close.
	err = svc.CloseRoom(room.ID, users[1].ID)
	assert.ErrorIs(t, err, errs.ErrRoomNotFound)

	require.NoError(t, svc.CloseRoom(room.ID, users[0].ID))

	closed, err := svc.GetRoom(room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusClosed, closed.Status)

	// The closed room's code no longer resolves.
	_, err = svc.GetRoomByCode(room.Code)
	assert.ErrorIs(t, err, errs.ErrRoomNotFound)

	session, err := sessions.Get(running.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusCancelled, session.Status)
	assert.NotNil(t, session.EndedAt)
}

func TestListActiveRooms(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	users := seedUsers(t, db, "ava")

	open, err := svc.CreateRoom(users[0].ID, "Open")
	require.NoError(t, err)
	gone, err := svc.CreateRoom(users[0].ID, "Gone")
	require.NoError(t, err)
	require.NoError(t, svc.CloseRoom(gone.ID, users[0].ID))

	rooms, err := svc.ListActiveRooms(10)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, open.ID, rooms[0].ID)
}

func TestUpdateProfilePartial(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	users := seedUsers(t, db, "ava")

	bio := "chaotic good"
	updated, err := svc.UpdateProfile(users[0].ID, UpdateProfileInput{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "chaotic good", updated.Bio)
	assert.Equal(t, "ava", updated.DisplayName)

	// No fields supplied: nothing changes.
	same, err := svc.UpdateProfile(users[0].ID, UpdateProfileInput{})
	require.NoError(t, err)
	assert.Equal(t, "chaotic good", same.Bio)

	_, err = svc.UpdateProfile(999, UpdateProfileInput{})
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}
