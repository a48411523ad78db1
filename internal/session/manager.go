package session

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"staffpanel/internal/entity"
)

const (
	cookieName = "staff_session"

	userKey         = "user"
	flashSuccessKey = "_flash_success"
	flashErrorKey   = "_flash_error"
)

// Lifetime is the sliding inactivity window of a session.
const Lifetime = time.Hour

// Flash is a one-shot note carried across a redirect. Reading it clears it.
type Flash struct {
	Success string
	Error   string
}

// Manager is the session-lookup capability handed to handlers and middleware.
type Manager struct {
	store  *Store
	logger *zap.Logger
}

func NewManager(secret []byte, logger *zap.Logger) *Manager {
	return &Manager{
		store:  NewStore(secret, Lifetime),
		logger: logger,
	}
}

func (m *Manager) Close() {
	m.store.Close()
}

func (m *Manager) session(r *http.Request) *sessions.Session {
	s, _ := m.store.Get(r, cookieName)
	return s
}

// CurrentUser returns the authenticated identity, if any.
func (m *Manager) CurrentUser(r *http.Request) (entity.SessionUser, bool) {
	user, ok := m.session(r).Values[userKey].(entity.SessionUser)
	return user, ok
}

// SignIn stores the identity projection in the session.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, user entity.SessionUser) error {
	s := m.session(r)
	s.Values[userKey] = user
	return s.Save(r, w)
}

// SignOut destroys the session outright rather than clearing the identity.
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) error {
	s := m.session(r)
	s.Options.MaxAge = -1
	return s.Save(r, w)
}

func (m *Manager) SetSuccess(w http.ResponseWriter, r *http.Request, message string) {
	m.setFlash(w, r, flashSuccessKey, message)
}

func (m *Manager) SetError(w http.ResponseWriter, r *http.Request, message string) {
	m.setFlash(w, r, flashErrorKey, message)
}

func (m *Manager) setFlash(w http.ResponseWriter, r *http.Request, key, message string) {
	s := m.session(r)
	s.AddFlash(message, key)
	if err := s.Save(r, w); err != nil {
		m.logger.Warn("save flash", zap.Error(err))
	}
}

// PopFlash reads and clears any pending flash. Clearing happens regardless of
// whether the caller displays it.
func (m *Manager) PopFlash(w http.ResponseWriter, r *http.Request) Flash {
	s := m.session(r)

	var flash Flash
	if msgs := s.Flashes(flashSuccessKey); len(msgs) > 0 {
		flash.Success, _ = msgs[len(msgs)-1].(string)
	}
	if msgs := s.Flashes(flashErrorKey); len(msgs) > 0 {
		flash.Error, _ = msgs[len(msgs)-1].(string)
	}

	if err := s.Save(r, w); err != nil {
		m.logger.Warn("clear flash", zap.Error(err))
	}
	return flash
}
