package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhihungchen/FittedIn/internal/apperr"
	"github.com/zhihungchen/FittedIn/internal/model"
)

func TestFeedAssembly(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	dave := env.createUser(t, "dave")

	env.connect(t, alice, bob)

	// Carol's request stays pending, Dave is a stranger.
	_, err := env.connections.SendRequest(carol.ID, alice.ID)
	require.NoError(t, err)

	for _, author := range []*model.User{alice, bob, carol, dave} {
		_, err := env.posts.Create(author.ID, author.DisplayName+" trained today", "")
		require.NoError(t, err)
	}

	feed, err := env.feed.Feed(alice.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	authors := map[string]bool{}
	for _, post := range feed {
		authors[post.UserID] = true
		require.NotNil(t, post.User)
		assert.NotEmpty(t, post.User.DisplayName)
	}
	assert.True(t, authors[alice.ID])
	assert.True(t, authors[bob.ID])
	assert.False(t, authors[carol.ID])
	assert.False(t, authors[dave.ID])
}

func TestFeedUnknownViewer(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.feed.Feed("missing-user", 0, 0)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestFeedRejectsNegativePaging(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, err := env.feed.Feed(alice.ID, -1, 0)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = env.feed.Feed(alice.ID, 0, -1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestFeedPagination(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	for i := 0; i < 7; i++ {
		_, err := env.posts.Create(alice.ID, fmt.Sprintf("session %d", i), "")
		require.NoError(t, err)
	}

	seen := map[string]bool{}
	for offset := 0; offset < 7; offset += 3 {
		page, err := env.feed.Feed(alice.ID, 3, offset)
		require.NoError(t, err)
		for _, post := range page {
			assert.False(t, seen[post.ID], "post %s appeared twice", post.ID)
			seen[post.ID] = true
		}
	}
	assert.Len(t, seen, 7)

	// Newest first.
	page, err := env.feed.Feed(alice.ID, 1, 0)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "session 6", page[0].Content)
}

func TestFeedLimitCapped(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	for i := 0; i < 55; i++ {
		_, err := env.posts.Create(alice.ID, fmt.Sprintf("session %d", i), "")
		require.NoError(t, err)
	}

	feed, err := env.feed.Feed(alice.ID, 1000, 0)
	require.NoError(t, err)
	assert.Len(t, feed, defaultPageSize)
}

func TestFeedEngagementAnnotations(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	env.connect(t, alice, bob)

	post, err := env.posts.Create(bob.ID, "tempo run", "")
	require.NoError(t, err)

	require.NoError(t, env.posts.Like(post.ID, alice.ID))
	require.NoError(t, env.posts.Like(post.ID, bob.ID))
	_, err = env.posts.Comment(post.ID, alice.ID, "strong")
	require.NoError(t, err)

	feed, err := env.feed.Feed(alice.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, feed, 1)

	view := feed[0]
	assert.Equal(t, 2, view.LikeCount)
	assert.Equal(t, 1, view.CommentCount)
	assert.True(t, view.IsLiked)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "strong", view.Comments[0].Content)

	// The like flag is per viewer.
	require.NoError(t, env.posts.Unlike(post.ID, alice.ID))
	feed, err = env.feed.Feed(alice.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.False(t, feed[0].IsLiked)
	assert.Equal(t, 1, feed[0].LikeCount)
}

func TestFeedCommentPreviewBounded(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	post, err := env.posts.Create(alice.ID, "long ride", "")
	require.NoError(t, err)

	for i := 0; i < commentPreviewLimit+2; i++ {
		_, err := env.posts.Comment(post.ID, alice.ID, fmt.Sprintf("split %d", i))
		require.NoError(t, err)
	}

	feed, err := env.feed.Feed(alice.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, feed, 1)

	view := feed[0]
	assert.Equal(t, commentPreviewLimit+2, view.CommentCount)
	require.Len(t, view.Comments, commentPreviewLimit)
	// Preview carries the most recent comments.
	assert.Equal(t, fmt.Sprintf("split %d", commentPreviewLimit+1), view.Comments[0].Content)
}

func TestFeedEmptyForNewUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	feed, err := env.feed.Feed(alice.ID, 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, feed)
	assert.Empty(t, feed)
}

func TestUserPosts(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	post, err := env.posts.Create(bob.ID, "leg day", "")
	require.NoError(t, err)
	require.NoError(t, env.posts.Like(post.ID, alice.ID))

	posts, err := env.feed.UserPosts(bob.ID, alice.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.True(t, posts[0].IsLiked)

	_, err = env.feed.UserPosts("missing-user", alice.ID, 0, 0)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
