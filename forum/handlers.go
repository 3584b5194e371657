// forum/handlers.go
package forum

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	appName       = "The Forum"
	copyrightYear = 2024
)

// viewData is the payload handed to every template.
type viewData struct {
	AppName       string
	CopyrightYear int
	LoggedIn      bool
	User          User
	Posts         []Post
	Users         []User
	RegisterError string
	LoginError    string
}

type likeResponse struct {
	Success bool `json:"success"`
	Likes   int  `json:"likes,omitempty"`
}

type Handlers struct {
	store      *Store
	templates  *template.Template
	log        zerolog.Logger
	avatarSize int
	Session    *scs.SessionManager
}

func NewHandlers(store *Store, cfg Config, log zerolog.Logger) (*Handlers, error) {
	tpl, err := template.New("").Funcs(template.FuncMap{
		"toLowerCase": strings.ToLower,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	avatarSize := cfg.AvatarSize
	if avatarSize <= 0 {
		avatarSize = DefaultAvatarSize
	}
	return &Handlers{
		store:      store,
		templates:  tpl,
		log:        log,
		avatarSize: avatarSize,
		Session:    NewSessionManager(cfg.SessionLifetime),
	}, nil
}

// Router wires the full HTTP surface. Profile and delete sit behind the
// auth guard; posting and liking do not.
func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.logRequests)
	r.HandleFunc("/", h.home).Methods(http.MethodGet)
	r.HandleFunc("/register", h.showRegister).Methods(http.MethodGet)
	r.HandleFunc("/login", h.showLogin).Methods(http.MethodGet)
	r.HandleFunc("/error", h.showError).Methods(http.MethodGet)
	r.HandleFunc("/posts", h.createPost).Methods(http.MethodPost)
	r.HandleFunc("/like/{id:[0-9]+}", h.likePost).Methods(http.MethodPost)
	r.Handle("/profile", h.requireAuth(http.HandlerFunc(h.profile))).Methods(http.MethodGet)
	r.HandleFunc("/avatar/{username}", h.avatar).Methods(http.MethodGet)
	r.HandleFunc("/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/login", h.login).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.logout).Methods(http.MethodGet)
	r.Handle("/delete/{id:[0-9]+}", h.requireAuth(http.HandlerFunc(h.deletePost))).Methods(http.MethodPost)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("public"))))
	return r
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, name string, data viewData) {
	data.AppName = appName
	data.CopyrightYear = copyrightYear
	if user, ok := h.CurrentUser(r.Context()); ok {
		data.User = user
		data.LoggedIn = true
	}
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.log.Error().Err(err).Str("template", name).Msg("error executing template")
	}
}

func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "home.html", viewData{
		Posts: h.store.ListPostsNewestFirst(),
		Users: h.store.Users(),
	})
}

func (h *Handlers) showRegister(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login_register.html", viewData{
		RegisterError: r.URL.Query().Get("error"),
	})
}

func (h *Handlers) showLogin(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login_register.html", viewData{
		LoginError: r.URL.Query().Get("error"),
	})
}

func (h *Handlers) showError(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "error.html", viewData{})
}

// createPost is not wrapped in requireAuth; an anonymous poster is simply
// sent to the login page.
func (h *Handlers) createPost(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	h.store.AddPost(r.FormValue("title"), r.FormValue("content"), user)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) likePost(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var requester string
	if user, ok := h.CurrentUser(r.Context()); ok {
		requester = user.Username
	}

	likes, err := h.store.IncrementLikes(id, requester)
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		json.NewEncoder(w).Encode(likeResponse{Success: false})
		return
	}
	json.NewEncoder(w).Encode(likeResponse{Success: true, Likes: likes})
}

func (h *Handlers) profile(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	h.render(w, r, "profile.html", viewData{
		Posts: h.store.ListPostsByUsername(user.Username),
	})
}

func (h *Handlers) avatar(w http.ResponseWriter, r *http.Request) {
	user, ok := h.store.FindUserByUsername(mux.Vars(r)["username"])
	if !ok {
		http.NotFound(w, r)
		return
	}
	img, err := GenerateAvatar(user, h.avatarSize, h.avatarSize)
	if err != nil {
		h.log.Error().Err(err).Str("username", user.Username).Msg("error generating avatar")
		http.Error(w, "Failed to generate avatar", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(img)
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	user, err := h.store.AddUser(username)
	if err != nil {
		http.Redirect(w, r, "/register?error="+url.QueryEscape("Username already exists"), http.StatusFound)
		return
	}
	if err := h.signIn(r.Context(), user); err != nil {
		h.log.Error().Err(err).Msg("error updating session")
		http.Redirect(w, r, "/error", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// login authenticates by username existence alone; there is no credential.
func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	user, ok := h.store.FindUserByUsername(r.FormValue("username"))
	if !ok {
		http.Redirect(w, r, "/login?error="+url.QueryEscape("Invalid username"), http.StatusFound)
		return
	}
	if err := h.signIn(r.Context(), user); err != nil {
		h.log.Error().Err(err).Msg("error updating session")
		http.Redirect(w, r, "/error", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// logout logs and swallows destruction errors; the redirect happens either
// way.
func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Session.Destroy(r.Context()); err != nil {
		h.log.Error().Err(err).Msg("error destroying session")
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) deletePost(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	user, ok := h.CurrentUser(r.Context())
	if !ok {
		w.WriteHeader(http.StatusForbidden)
		return
	}
	if err := h.store.DeletePost(id, user.Username); err != nil {
		w.WriteHeader(http.StatusForbidden)
		return
	}
	w.WriteHeader(http.StatusOK)
}
