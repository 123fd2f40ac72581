package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhihungchen/FittedIn/internal/apperr"
	"github.com/zhihungchen/FittedIn/internal/model"
)

func TestSendRequest(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	conn, err := env.connections.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, conn.RequesterID)
	assert.Equal(t, bob.ID, conn.ReceiverID)
	assert.Equal(t, model.ConnectionStatusPending, conn.Status)

	// The receiver gets notified.
	notifications, err := env.notifications.List(bob.ID, false, 0, 0)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, model.NotificationConnectionRequest, notifications[0].Type)
	assert.Equal(t, alice.ID, notifications[0].ActorID)
}

func TestSendRequestToSelf(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, err := env.connections.SendRequest(alice.ID, alice.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidOperation, apperr.KindOf(err))
}

func TestSendRequestUnknownReceiver(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, err := env.connections.SendRequest(alice.ID, "missing-user")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSendRequestDuplicate(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	_, err := env.connections.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	// Same direction again.
	_, err = env.connections.SendRequest(alice.ID, bob.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestReciprocalRequestAutoAccepts(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	sent, err := env.connections.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	// Bob requesting back accepts the existing request instead of
	// creating a second row for the pair.
	conn, err := env.connections.SendRequest(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, sent.ID, conn.ID)
	assert.Equal(t, model.ConnectionStatusAccepted, conn.Status)

	for _, userID := range []string{alice.ID, bob.ID} {
		views, err := env.connections.Connections(userID)
		require.NoError(t, err)
		assert.Len(t, views, 1)
	}
}

func TestAcceptOnlyReceiver(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	conn, err := env.connections.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = env.connections.Accept(conn.ID, alice.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	accepted, err := env.connections.Accept(conn.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ConnectionStatusAccepted, accepted.Status)

	// Both participants get an activity entry for the new connection.
	for _, userID := range []string{alice.ID, bob.ID} {
		count, err := env.activities.CountByType(userID, model.ActivityConnectionAccepted)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	}
}

func TestAcceptNonPending(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	conn := env.connect(t, alice, bob)

	_, err := env.connections.Accept(conn.ID, bob.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidOperation, apperr.KindOf(err))
}

func TestReject(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	conn, err := env.connections.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = env.connections.Reject(conn.ID, alice.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	rejected, err := env.connections.Reject(conn.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ConnectionStatusRejected, rejected.Status)

	// The rejected row still occupies the pair, so re-requesting conflicts.
	_, err = env.connections.SendRequest(alice.ID, bob.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestBlockByEitherParticipant(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	conn := env.connect(t, alice, bob)

	_, err := env.connections.Block(conn.ID, carol.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	blocked, err := env.connections.Block(conn.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ConnectionStatusBlocked, blocked.Status)

	_, err = env.connections.Block(conn.ID, bob.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidOperation, apperr.KindOf(err))
}

func TestRemove(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	conn := env.connect(t, alice, bob)

	require.NoError(t, env.connections.Remove(conn.ID, bob.ID))

	err := env.connections.Remove(conn.ID, bob.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// The pair is free again after removal.
	_, err = env.connections.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
}

func TestPendingListsIncomingOnly(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	_, err := env.connections.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = env.connections.SendRequest(bob.ID, carol.ID)
	require.NoError(t, err)

	pending, err := env.connections.Pending(bob.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.NotNil(t, pending[0].User)
	assert.Equal(t, alice.ID, pending[0].User.ID)
	assert.Empty(t, pending[0].User.Email)

	// Outgoing requests do not show up as pending for the requester.
	pending, err = env.connections.Pending(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
