package memory

import (
	"testing"

	"sahby-assistant-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	repo := NewSessionRepository()
	userId := uuid.New()

	_, found := repo.Get(userId)
	assert.False(t, found)

	sess := store.NewSession(userId)
	sess.Draft = "hello"
	sess.ActiveThreadID = uuid.New()
	repo.Save(sess)

	got, found := repo.Get(userId)
	require.True(t, found)
	assert.Equal(t, sess.Draft, got.Draft)
	assert.Equal(t, sess.ActiveThreadID, got.ActiveThreadID)

	repo.Delete(userId)
	_, found = repo.Get(userId)
	assert.False(t, found)
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	repo := NewSessionRepository()
	a, b := uuid.New(), uuid.New()

	sa := store.NewSession(a)
	sa.Draft = "a"
	repo.Save(sa)

	sb := store.NewSession(b)
	sb.Draft = "b"
	repo.Save(sb)

	got, found := repo.Get(a)
	require.True(t, found)
	assert.Equal(t, "a", got.Draft)

	got, found = repo.Get(b)
	require.True(t, found)
	assert.Equal(t, "b", got.Draft)
}
