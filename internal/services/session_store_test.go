package services

import (
	"context"
	"testing"
	"time"

	"github.com/promotora-credito/app-cadastro/internal/logging"
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSessionStore_RoundTrip(t *testing.T) {
	cache := newMemoryCache()
	store := NewRedisSessionStore(cache, time.Hour, logging.Logger)
	ctx := context.Background()

	session := &models.WizardSession{
		ID:        "s1",
		FormKey:   models.FormKeyCliente,
		Mode:      models.WizardModeCreate,
		Order:     models.DefaultSectionOrder,
		ActiveTab: 2,
		State:     models.FormState{"nome": "Maria"},
		Locked:    []string{"dados_bancarios.0.banco"},
	}
	require.NoError(t, store.Save(ctx, session))
	assert.Equal(t, time.Hour, cache.ttls["wizard:session:s1"])

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.ActiveTab)
	assert.Equal(t, "Maria", loaded.State["nome"])
	assert.True(t, loaded.IsLocked("dados_bancarios.0.banco"))
}

func TestRedisSessionStore_Missing(t *testing.T) {
	store := NewRedisSessionStore(newMemoryCache(), time.Hour, logging.Logger)

	_, err := store.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestRedisSessionStore_CorruptPayload(t *testing.T) {
	cache := newMemoryCache()
	cache.data["wizard:session:bad"] = "{not json"
	store := NewRedisSessionStore(cache, time.Hour, logging.Logger)

	_, err := store.Load(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrSessionNotFound)
}

func TestRedisSessionStore_DeleteDropsGenerations(t *testing.T) {
	cache := newMemoryCache()
	store := NewRedisSessionStore(cache, time.Hour, logging.Logger)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &models.WizardSession{ID: "s1"}))
	cache.Incr(ctx, generationKey("s1", models.OptionListConvenios))
	cache.Incr(ctx, generationKey("s2", models.OptionListConvenios))

	require.NoError(t, store.Delete(ctx, "s1"))
	assert.False(t, cache.has("wizard:session:s1"))
	assert.False(t, cache.has(generationKey("s1", models.OptionListConvenios)))
	assert.True(t, cache.has(generationKey("s2", models.OptionListConvenios)))
}
