// Package session keeps the opaque bearer token for the backend API.
package session

import "github.com/medireach/storefront/internal/storage"

const tokenKey = "mr_token"

type Store struct {
	kv storage.KV
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Token returns the saved bearer token, or empty if no session exists.
func (s *Store) Token() (string, error) {
	token, ok, err := s.kv.Get(tokenKey)
	if err != nil || !ok {
		return "", err
	}
	return token, nil
}

func (s *Store) SetToken(token string) error {
	return s.kv.Set(tokenKey, token)
}

// Clear drops the session. Called on logout and on any 401 from the backend.
func (s *Store) Clear() error {
	return s.kv.Delete(tokenKey)
}
