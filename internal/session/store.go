package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const sweepInterval = 5 * time.Minute

// Store keeps session state in process memory, keyed by session ID. The
// cookie carries only the securecookie-encoded ID, never the values. Expiry
// is sliding: loading a live session pushes it out by the full TTL.
type Store struct {
	codec   *securecookie.SecureCookie
	options *sessions.Options
	ttl     time.Duration

	mu      sync.Mutex
	entries map[string]*entry
	done    chan struct{}
}

type entry struct {
	values    map[interface{}]interface{}
	expiresAt time.Time
}

func NewStore(secret []byte, ttl time.Duration) *Store {
	s := &Store{
		codec: securecookie.New(secret, nil),
		options: &sessions.Options{
			Path:     "/",
			MaxAge:   int(ttl / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
		ttl:     ttl,
		entries: make(map[string]*entry),
		done:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Close stops the expiry sweeper.
func (s *Store) Close() {
	close(s.done)
}

func (s *Store) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

func (s *Store) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.options
	session.Options = &opts
	session.IsNew = true

	cookie, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}

	var id string
	if err := s.codec.Decode(name, cookie.Value, &id); err != nil {
		return session, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || time.Now().After(e.expiresAt) {
		delete(s.entries, id)
		return session, nil
	}

	e.expiresAt = time.Now().Add(s.ttl)
	session.ID = id
	session.IsNew = false
	for k, v := range e.values {
		session.Values[k] = v
	}
	return session, nil
}

func (s *Store) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		s.mu.Lock()
		delete(s.entries, session.ID)
		s.mu.Unlock()
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	values := make(map[interface{}]interface{}, len(session.Values))
	for k, v := range session.Values {
		values[k] = v
	}

	s.mu.Lock()
	s.entries[session.ID] = &entry{
		values:    values,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	encoded, err := s.codec.Encode(session.Name(), session.ID)
	if err != nil {
		return err
	}

	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, e := range s.entries {
				if now.After(e.expiresAt) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
