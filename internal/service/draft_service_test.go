package service

import (
	"context"
	"testing"

	"sahby-assistant-be/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftSaveGetDiscard(t *testing.T) {
	factory := newFakeFactory()
	svc := NewDraftService(factory)
	threadId := uuid.New()

	saved, err := svc.Save(context.Background(), &dto.UpsertDraftRequest{ThreadId: threadId, Body: "see you at the pickup point"})
	require.NoError(t, err)
	assert.Equal(t, "see you at the pickup point", saved.Body)

	got, err := svc.Get(context.Background(), threadId)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, saved.Body, got.Body)

	// Saving again replaces, not appends.
	_, err = svc.Save(context.Background(), &dto.UpsertDraftRequest{ThreadId: threadId, Body: "changed my mind"})
	require.NoError(t, err)
	got, err = svc.Get(context.Background(), threadId)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "changed my mind", got.Body)

	require.NoError(t, svc.Discard(context.Background(), threadId))
	got, err = svc.Get(context.Background(), threadId)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDraftGetUnknownThreadReturnsNil(t *testing.T) {
	svc := NewDraftService(newFakeFactory())

	got, err := svc.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}
