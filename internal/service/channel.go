package service

import (
	"context"

	"github.com/rs/zerolog"
)

type ChannelService struct {
	store  Store
	logger *zerolog.Logger
}

func NewChannelService(store Store, logger *zerolog.Logger) *ChannelService {
	return &ChannelService{store: store, logger: logger}
}

func (s *ChannelService) AddChannel(ctx context.Context, handle string) error {
	return s.store.AddChannel(ctx, handle)
}

func (s *ChannelService) RemoveChannel(ctx context.Context, handle string) error {
	return s.store.RemoveChannel(ctx, handle)
}

func (s *ChannelService) ListChannels(ctx context.Context) ([]string, error) {
	return s.store.GetChannels(ctx)
}
