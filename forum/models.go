// forum/models.go
package forum

import (
	"time"
)

// User is created once at registration and never mutated afterwards. There
// is no profile editing and no credential; identity is the username alone.
type User struct {
	ID          int       `json:"id"`
	Username    string    `json:"username"`
	AvatarColor string    `json:"avatarColor"`
	MemberSince time.Time `json:"memberSince"`
}

// Post links to its author by username, a denormalized copy rather than a
// pointer into the user collection.
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
	Likes     int       `json:"likes"`
}
