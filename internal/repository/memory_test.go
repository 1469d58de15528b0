package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faylbot/internal/models"
)

func TestMemoryStateRoundTrip(t *testing.T) {
	repo := NewMemoryStateRepository()
	ctx := context.Background()

	require.NoError(t, repo.SetState(ctx, &models.UserState{
		UserID:      1,
		CurrentStep: models.StepStatsUser,
	}))

	got, err := repo.GetState(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StepStatsUser, got.CurrentStep)

	require.NoError(t, repo.DeleteState(ctx, 1))

	got, err = repo.GetState(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryRateLimit(t *testing.T) {
	repo := NewMemoryStateRepository()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ok, err := repo.CheckRateLimit(ctx, 2, 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := repo.CheckRateLimit(ctx, 2, 5, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// other users are unaffected
	ok, err = repo.CheckRateLimit(ctx, 3, 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
