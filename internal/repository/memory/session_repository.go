package memory

import (
	"time"

	"sahby-assistant-be/pkg/store"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Sessions expire after a day of inactivity; the store re-bootstraps the
	// active thread on the next command, so expiry is harmless.
	c := cache.New(24*time.Hour, 1*time.Hour)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.UserID.String(), session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(userID uuid.UUID) (*store.Session, bool) {
	if x, found := r.cache.Get(userID.String()); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(userID uuid.UUID) {
	r.cache.Delete(userID.String())
}
