package memory

import (
	"context"
	"testing"
	"time"

	"ai-docdraft-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestSessionRepositoryRoundTrip(t *testing.T) {
	repo := NewSessionRepository(1 * time.Hour)
	ctx := context.Background()

	session := store.NewSession("s1")
	session.State = store.StateCollectingInfo
	session.TemplateID = "tpl-1"
	session.CollectValue("party_a", "Acme Corp")

	assert.NoError(t, repo.Save(ctx, session))

	got, found, err := repo.Get(ctx, "s1")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, store.StateCollectingInfo, got.State)
	assert.Equal(t, "Acme Corp", got.CollectedValues["party_a"])
}

func TestSessionRepositoryMissing(t *testing.T) {
	repo := NewSessionRepository(1 * time.Hour)

	got, found, err := repo.Get(context.Background(), "nope")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestSessionRepositoryDelete(t *testing.T) {
	repo := NewSessionRepository(1 * time.Hour)
	ctx := context.Background()

	assert.NoError(t, repo.Save(ctx, store.NewSession("s1")))
	assert.NoError(t, repo.Delete(ctx, "s1"))

	_, found, err := repo.Get(ctx, "s1")
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestSessionRepositoryEviction(t *testing.T) {
	repo := NewSessionRepository(20 * time.Millisecond)
	ctx := context.Background()

	assert.NoError(t, repo.Save(ctx, store.NewSession("s1")))
	time.Sleep(50 * time.Millisecond)

	_, found, err := repo.Get(ctx, "s1")
	assert.NoError(t, err)
	assert.False(t, found, "idle session should be evicted after the TTL")
}
