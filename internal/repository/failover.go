package repository

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"faylbot/internal/domain"
	"faylbot/internal/models"
)

const recoveryProbeInterval = time.Minute

// FailoverStateRepository prefers the primary store and falls back to the
// secondary while the primary is down. After a failure it stops hitting the
// primary and probes it at most once per recoveryProbeInterval.
type FailoverStateRepository struct {
	primary   domain.StateRepository
	secondary domain.StateRepository
	logger    *zerolog.Logger

	isDown      atomic.Bool
	lastProbeNS atomic.Int64
}

func NewFailoverStateRepository(primary, secondary domain.StateRepository, logger *zerolog.Logger) *FailoverStateRepository {
	return &FailoverStateRepository{primary: primary, secondary: secondary, logger: logger}
}

// active picks the store to use, probing the primary when the recovery
// window has elapsed.
func (r *FailoverStateRepository) active(ctx context.Context) domain.StateRepository {
	if !r.isDown.Load() {
		return r.primary
	}

	now := time.Now().UnixNano()
	last := r.lastProbeNS.Load()
	if now-last < int64(recoveryProbeInterval) {
		return r.secondary
	}
	if !r.lastProbeNS.CompareAndSwap(last, now) {
		return r.secondary
	}

	if err := r.primary.Ping(ctx); err != nil {
		return r.secondary
	}

	r.isDown.Store(false)
	r.logger.Info().Msg("primary state store recovered")
	return r.primary
}

func (r *FailoverStateRepository) markDown(err error) {
	if r.isDown.CompareAndSwap(false, true) {
		r.lastProbeNS.Store(time.Now().UnixNano())
		r.logger.Warn().Err(err).Msg("primary state store down, failing over to memory")
	}
}

func (r *FailoverStateRepository) GetState(ctx context.Context, userID int64) (*models.UserState, error) {
	store := r.active(ctx)
	state, err := store.GetState(ctx, userID)
	if err != nil && store == r.primary {
		r.markDown(err)
		return r.secondary.GetState(ctx, userID)
	}
	return state, err
}

func (r *FailoverStateRepository) SetState(ctx context.Context, state *models.UserState) error {
	store := r.active(ctx)
	err := store.SetState(ctx, state)
	if err != nil && store == r.primary {
		r.markDown(err)
		return r.secondary.SetState(ctx, state)
	}
	return err
}

func (r *FailoverStateRepository) DeleteState(ctx context.Context, userID int64) error {
	store := r.active(ctx)
	err := store.DeleteState(ctx, userID)
	if err != nil && store == r.primary {
		r.markDown(err)
		return r.secondary.DeleteState(ctx, userID)
	}
	return err
}

func (r *FailoverStateRepository) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	store := r.active(ctx)
	ok, err := store.CheckRateLimit(ctx, userID, limit, window)
	if err != nil && store == r.primary {
		r.markDown(err)
		return r.secondary.CheckRateLimit(ctx, userID, limit, window)
	}
	return ok, err
}

func (r *FailoverStateRepository) Ping(ctx context.Context) error {
	if err := r.primary.Ping(ctx); err != nil {
		return r.secondary.Ping(ctx)
	}
	return nil
}
