package forum

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddUser(t *testing.T) {
	s := NewStore()

	alice, err := s.AddUser("alice")
	require.NoError(t, err)
	assert.Equal(t, 1, alice.ID)
	assert.Equal(t, "alice", alice.Username)
	assert.Regexp(t, regexp.MustCompile(`^#[0-9A-F]{6}$`), alice.AvatarColor)
	assert.False(t, alice.MemberSince.IsZero())

	t.Run("DuplicateRejected", func(t *testing.T) {
		_, err := s.AddUser("alice")
		require.ErrorIs(t, err, ErrUsernameTaken)
		assert.Equal(t, 1, s.UserCount())
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		upper, err := s.AddUser("Alice")
		require.NoError(t, err)
		assert.Equal(t, 2, upper.ID)
	})

	t.Run("Lookups", func(t *testing.T) {
		got, ok := s.FindUserByUsername("alice")
		require.True(t, ok)
		assert.Equal(t, alice, got)

		got, ok = s.FindUserByID(alice.ID)
		require.True(t, ok)
		assert.Equal(t, alice, got)

		_, ok = s.FindUserByUsername("nobody")
		assert.False(t, ok)
		_, ok = s.FindUserByID(99)
		assert.False(t, ok)
	})
}

func TestListPostsNewestFirst(t *testing.T) {
	s := NewStore()
	alice, err := s.AddUser("alice")
	require.NoError(t, err)

	first := s.AddPost("first", "a", alice)
	second := s.AddPost("second", "b", alice)
	third := s.AddPost("third", "c", alice)

	got := s.ListPostsNewestFirst()
	require.Len(t, got, 3)
	assert.Equal(t, third.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
	assert.Equal(t, first.ID, got[2].ID)

	// Listing must not disturb the stored order.
	again := s.ListPostsNewestFirst()
	assert.Equal(t, got, again)

	byUser := s.ListPostsByUsername("alice")
	require.Len(t, byUser, 3)
	assert.Equal(t, first.ID, byUser[0].ID)
	assert.Equal(t, third.ID, byUser[2].ID)

	assert.Empty(t, s.ListPostsByUsername("bob"))
}

func TestIncrementLikes(t *testing.T) {
	s := NewStore()
	alice, err := s.AddUser("alice")
	require.NoError(t, err)
	post := s.AddPost("hi", "world", alice)

	t.Run("SelfLikeRejected", func(t *testing.T) {
		_, err := s.IncrementLikes(post.ID, "alice")
		require.ErrorIs(t, err, ErrForbidden)
		assert.Equal(t, 0, s.ListPostsNewestFirst()[0].Likes)
	})

	t.Run("OtherUserIncrements", func(t *testing.T) {
		likes, err := s.IncrementLikes(post.ID, "bob")
		require.NoError(t, err)
		assert.Equal(t, 1, likes)

		likes, err = s.IncrementLikes(post.ID, "bob")
		require.NoError(t, err)
		assert.Equal(t, 2, likes)
	})

	t.Run("AnonymousIncrements", func(t *testing.T) {
		likes, err := s.IncrementLikes(post.ID, "")
		require.NoError(t, err)
		assert.Equal(t, 3, likes)
	})

	t.Run("UnknownPost", func(t *testing.T) {
		_, err := s.IncrementLikes(999, "bob")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeletePost(t *testing.T) {
	s := NewStore()
	alice, err := s.AddUser("alice")
	require.NoError(t, err)
	post := s.AddPost("hi", "world", alice)

	t.Run("NonAuthorForbidden", func(t *testing.T) {
		err := s.DeletePost(post.ID, "bob")
		require.ErrorIs(t, err, ErrForbidden)
		assert.Len(t, s.ListPostsNewestFirst(), 1)
	})

	t.Run("UnknownPostForbidden", func(t *testing.T) {
		err := s.DeletePost(999, "alice")
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("AuthorDeletes", func(t *testing.T) {
		err := s.DeletePost(post.ID, "alice")
		require.NoError(t, err)
		assert.Empty(t, s.ListPostsNewestFirst())
	})
}

func TestPostIDsNeverReused(t *testing.T) {
	s := NewStore()
	alice, err := s.AddUser("alice")
	require.NoError(t, err)

	first := s.AddPost("one", "x", alice)
	require.NoError(t, s.DeletePost(first.ID, "alice"))

	second := s.AddPost("two", "y", alice)
	assert.Greater(t, second.ID, first.ID)
}
