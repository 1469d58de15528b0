package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faylbot/internal/models"
	"faylbot/internal/repository"
)

func newStateService(limit int) *StateService {
	logger := zerolog.New(io.Discard)
	return NewStateService(repository.NewMemoryStateRepository(), limit, time.Minute, &logger)
}

func TestSetStepAndGetState(t *testing.T) {
	svc := newStateService(10)
	ctx := context.Background()

	require.NoError(t, svc.SetStep(ctx, 1, models.StepUploadFile, map[string]interface{}{"file_code": "42"}))

	state, err := svc.GetState(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, models.StepUploadFile, state.CurrentStep)
	assert.Equal(t, "42", state.GetString("file_code"))
}

func TestSetStepReplacesData(t *testing.T) {
	svc := newStateService(10)
	ctx := context.Background()

	require.NoError(t, svc.SetStep(ctx, 1, models.StepStatsUser, map[string]interface{}{"old": "x"}))
	require.NoError(t, svc.SetStep(ctx, 1, models.StepStatsStart, map[string]interface{}{"stats_user": int64(5)}))

	state, err := svc.GetState(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StepStatsStart, state.CurrentStep)
	assert.Empty(t, state.GetString("old"))
	assert.EqualValues(t, 5, state.GetInt64("stats_user"))
}

func TestClearState(t *testing.T) {
	svc := newStateService(10)
	ctx := context.Background()

	require.NoError(t, svc.SetStep(ctx, 1, models.StepChannelAdd, nil))
	require.NoError(t, svc.ClearState(ctx, 1))

	state, err := svc.GetState(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestCheckRateLimit(t *testing.T) {
	svc := newStateService(2)
	ctx := context.Background()

	ok, err := svc.CheckRateLimit(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CheckRateLimit(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CheckRateLimit(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
