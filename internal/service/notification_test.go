package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhihungchen/FittedIn/internal/apperr"
	"github.com/zhihungchen/FittedIn/internal/model"
)

func TestNotificationLifecycle(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	// Two requests generate two notifications for Alice.
	_, err := env.connections.SendRequest(bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = env.connections.SendRequest(carol.ID, alice.ID)
	require.NoError(t, err)

	count, err := env.notifications.UnreadCount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	all, err := env.notifications.List(alice.ID, false, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.False(t, all[0].Read)

	require.NoError(t, env.notifications.MarkRead(alice.ID, all[0].ID))

	unread, err := env.notifications.List(alice.ID, true, 0, 0)
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	require.NoError(t, env.notifications.MarkAllRead(alice.ID))

	count, err = env.notifications.UnreadCount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	_, err := env.connections.SendRequest(bob.ID, alice.ID)
	require.NoError(t, err)

	all, err := env.notifications.List(alice.ID, false, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)

	// Another user cannot mark someone else's notification.
	err = env.notifications.MarkRead(bob.ID, all[0].ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestActivityHistory(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	goal, err := env.goals.Create(alice.ID, newGoalInput())
	require.NoError(t, err)
	_, err = env.goals.ApplyProgress(goal.ID, alice.ID, 10, "")
	require.NoError(t, err)
	require.NoError(t, env.goals.Delete(alice.ID, goal.ID))

	history, err := env.activities.History(alice.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)

	types := map[string]int{}
	for _, a := range history {
		types[a.Type]++
		assert.Equal(t, alice.ID, a.UserID)
	}
	assert.Equal(t, 1, types[model.ActivityGoalCreated])
	assert.Equal(t, 1, types[model.ActivityGoalProgress])
	assert.Equal(t, 1, types[model.ActivityGoalDeleted])

	// Paging.
	page, err := env.activities.History(alice.ID, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)
}
