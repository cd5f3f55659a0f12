package service

import (
	"context"
	"time"

	"recipebook/internal/repository"
)

// JanitorService periodically clears expired reset tokens. Correctness
// does not depend on it: ConsumeResetToken checks expiry itself, this
// just keeps stale tokens out of the users table.
type JanitorService struct {
	users repository.Users
}

func NewJanitorService(users repository.Users) *JanitorService {
	return &JanitorService{users: users}
}

var _ Janitor = (*JanitorService)(nil)

// Run ticks at the given interval until ctx is canceled.
func (s *JanitorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			// a failed sweep is retried on the next tick
			_, _ = s.users.PurgeExpiredResetTokens(ctx, now)
		}
	}
}
