// forum/session.go
package forum

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
)

// Session keys. The session holds at most a user id and a logged-in flag;
// everything else about the user is resolved through the store per request.
const (
	sessionKeyUserID   = "userID"
	sessionKeyLoggedIn = "loggedIn"
)

// NewSessionManager builds the cookie-backed session layer. The cookie
// carries no Secure flag, matching the original deployment behavior.
func NewSessionManager(lifetime time.Duration) *scs.SessionManager {
	s := scs.New()
	s.Lifetime = lifetime
	s.Cookie.Secure = false
	return s
}

// CurrentUser resolves the session's user id through the store. A stale id,
// like one left over from before a restart wiped the store, resolves to
// nothing rather than an error.
func (h *Handlers) CurrentUser(ctx context.Context) (User, bool) {
	id := h.Session.GetInt(ctx, sessionKeyUserID)
	if id == 0 {
		return User{}, false
	}
	return h.store.FindUserByID(id)
}

// requireAuth guards routes that only make sense with an identity: profile
// viewing and post deletion. Posting and liking stay outside the guard and
// handle the anonymous case themselves.
func (h *Handlers) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Session.GetInt(r.Context(), sessionKeyUserID) == 0 {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// signIn marks the session as belonging to the user, rotating the token
// first so a pre-login cookie is not carried into the authenticated state.
func (h *Handlers) signIn(ctx context.Context, user User) error {
	if err := h.Session.RenewToken(ctx); err != nil {
		return err
	}
	h.Session.Put(ctx, sessionKeyUserID, user.ID)
	h.Session.Put(ctx, sessionKeyLoggedIn, true)
	return nil
}
