// Package session persists the remembered user between runs.
//
// Exactly one record is kept, under RecordKey. Every read and write of that
// record goes through Store so the sanitization rules live in one place.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/skillnav/internal/pathway"
	"github.com/abhisek/skillnav/internal/store"
)

// RecordKey is the fixed key of the durable session record.
const RecordKey = "skillNavigatorUser"

// User is the remembered user together with their saved pathways.
type User struct {
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Password      string            `json:"password,omitempty"`
	SavedPathways []pathway.Pathway `json:"savedPathways"`
}

// HasSaved reports whether a pathway with id is in the saved list.
func (u *User) HasSaved(id string) bool {
	for _, p := range u.SavedPathways {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Store loads and persists the session record.
type Store struct {
	kv     store.KVRepo
	logger *zap.Logger
}

// NewStore creates a session store over kv.
func NewStore(kv store.KVRepo, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, logger: logger}
}

// Load returns the remembered user, or nil when there is none. A record
// that is not a JSON object or has no email is logged, cleared and treated
// as absent. Storage failures are returned.
func (s *Store) Load(ctx context.Context) (*User, error) {
	raw, ok, err := s.kv.Get(ctx, RecordKey)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, nil
	}

	u, reason := decode(raw)
	if u == nil {
		s.logger.Warn("discarding malformed session record", zap.String("reason", reason))
		if err := s.kv.Delete(ctx, RecordKey); err != nil {
			s.logger.Warn("clear malformed session record", zap.Error(err))
		}
		return nil, nil
	}
	return u, nil
}

// Persist overwrites the session record with u.
func (s *Store) Persist(ctx context.Context, u *User) error {
	if u.SavedPathways == nil {
		u.SavedPathways = []pathway.Pathway{}
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Put(ctx, RecordKey, string(raw)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Clear removes the session record.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, RecordKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// decode applies the sanitization rules. It returns nil and a reason when
// the record cannot be used.
func decode(raw string) (*User, string) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil || fields == nil {
		return nil, "not a JSON object"
	}

	var email string
	if err := json.Unmarshal(fields["email"], &email); err != nil || email == "" {
		return nil, "missing email"
	}

	u := &User{Email: email, SavedPathways: []pathway.Pathway{}}

	var name string
	if json.Unmarshal(fields["name"], &name) == nil {
		u.Name = name
	}

	var password string
	if json.Unmarshal(fields["password"], &password) == nil {
		u.Password = password
	}

	var items []json.RawMessage
	if json.Unmarshal(fields["savedPathways"], &items) == nil {
		for _, item := range items {
			var p pathway.Pathway
			if json.Unmarshal(item, &p) == nil {
				u.SavedPathways = append(u.SavedPathways, p)
			}
		}
	}

	return u, ""
}
