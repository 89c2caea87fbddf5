package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

// Store wraps a gorilla cookie store under a fixed session name, so
// callers never pass the name around.
type Store struct {
	name    string
	cookies sessions.Store
}

func NewCookieStore(name string, keypairs ...[]byte) *Store {
	return &Store{
		name:    name,
		cookies: sessions.NewCookieStore(keypairs...),
	}
}

func (s *Store) New(r *http.Request) (*sessions.Session, error) {
	return s.cookies.New(r, s.name)
}

// Get returns the session of the request, or a fresh one if the request
// carries no valid session cookie.
func (s *Store) Get(r *http.Request) (*sessions.Session, error) {
	return s.cookies.Get(r, s.name)
}

func (s *Store) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	return s.cookies.Save(r, w, session)
}
