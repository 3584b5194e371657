// forum/store.go
package forum

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrNotFound      = errors.New("post not found")
	ErrForbidden     = errors.New("forbidden")
)

// Store is the sole owner of the user and post collections. All state lives
// in process memory and is gone on restart. The mutex serializes every
// access so handlers running on concurrent goroutines see the same
// one-at-a-time semantics the data rules assume.
type Store struct {
	mu         sync.RWMutex
	nextUserID int
	nextPostID int
	users      []User
	posts      []Post
}

// NewStore creates an empty store. Ids are handed out by monotonic
// counters, never derived from collection length, so a deleted post's id is
// never reissued.
func NewStore() *Store {
	return &Store{
		nextUserID: 1,
		nextPostID: 1,
	}
}

// FindUserByUsername is an exact, case-sensitive lookup.
func (s *Store) FindUserByUsername(username string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUserLocked(username)
}

func (s *Store) findUserLocked(username string) (User, bool) {
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return User{}, false
}

func (s *Store) FindUserByID(id int) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// AddUser registers a username, assigning the next id, a random avatar
// color and the creation time. The uniqueness check and the insert happen
// under one lock.
func (s *Store) AddUser(username string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.findUserLocked(username); exists {
		return User{}, fmt.Errorf("add user %q: %w", username, ErrUsernameTaken)
	}

	user := User{
		ID:          s.nextUserID,
		Username:    username,
		AvatarColor: randomColor(),
		MemberSince: time.Now().UTC(),
	}
	s.nextUserID++
	s.users = append(s.users, user)
	return user, nil
}

func (s *Store) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Users returns a copy of all users in registration order.
func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]User(nil), s.users...)
}

// AddPost creates a post for the authoring user, denormalizing the username
// into the post itself.
func (s *Store) AddPost(title, content string, author User) Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := Post{
		ID:        s.nextPostID,
		Title:     title,
		Content:   content,
		Username:  author.Username,
		Timestamp: time.Now().UTC(),
		Likes:     0,
	}
	s.nextPostID++
	s.posts = append(s.posts, post)
	return post
}

// ListPostsNewestFirst returns a reversed copy of the post collection. The
// stored insertion order is untouched.
func (s *Store) ListPostsNewestFirst() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Post, 0, len(s.posts))
	for i := len(s.posts) - 1; i >= 0; i-- {
		result = append(result, s.posts[i])
	}
	return result
}

// ListPostsByUsername returns the user's posts in insertion order.
func (s *Store) ListPostsByUsername(username string) []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Post
	for _, p := range s.posts {
		if p.Username == username {
			result = append(result, p)
		}
	}
	return result
}

// DeletePost removes the post only when it exists and the requester is its
// author; anything else is ErrForbidden and leaves the collection alone.
func (s *Store) DeletePost(id int, requestingUsername string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.posts {
		if p.ID == id && p.Username == requestingUsername {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete post %d: %w", id, ErrForbidden)
}

// IncrementLikes bumps the like counter and returns the new count. Self
// likes are rejected without mutation; an anonymous requester (empty
// username) may like anything.
func (s *Store) IncrementLikes(id int, requestingUsername string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID != id {
			continue
		}
		if s.posts[i].Username == requestingUsername {
			return 0, fmt.Errorf("like post %d: %w", id, ErrForbidden)
		}
		s.posts[i].Likes++
		return s.posts[i].Likes, nil
	}
	return 0, fmt.Errorf("like post %d: %w", id, ErrNotFound)
}

func randomColor() string {
	return fmt.Sprintf("#%06X", rand.IntN(0x1000000))
}
