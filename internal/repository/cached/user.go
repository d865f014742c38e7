package cached

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cache"
	"golang.org/x/sync/singleflight"
)

// UserRepository is a read-through cache in front of another UserRepository.
// Only GetByID is cached; UpdateWorkSchedule invalidates the entry so the next
// attendance event sees the new schedule.
type UserRepository struct {
	user.UserRepository
	cache cache.Cache[user.User]
	sf    singleflight.Group
}

func NewUserRepository(next user.UserRepository, c cache.Cache[user.User]) *UserRepository {
	return &UserRepository{
		UserRepository: next,
		cache:          c,
	}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	u, err := r.cache.Get(ctx, id)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		slog.Warn("user cache read failed", "user_id", id, "error", err)
	}

	v, err, _ := r.sf.Do(id, func() (interface{}, error) {
		u, err := r.UserRepository.GetByID(ctx, id)
		if err != nil {
			return user.User{}, err
		}
		if err := r.cache.Set(ctx, id, u); err != nil {
			slog.Warn("user cache write failed", "user_id", id, "error", err)
		}
		return u, nil
	})
	if err != nil {
		return user.User{}, err
	}
	return v.(user.User), nil
}

func (r *UserRepository) UpdateWorkSchedule(ctx context.Context, id string, scheduleID *string) (user.User, error) {
	u, err := r.UserRepository.UpdateWorkSchedule(ctx, id, scheduleID)
	if err != nil {
		return user.User{}, err
	}
	r.Invalidate(ctx, id)
	return u, nil
}

// Invalidate drops the cached entry for id.
func (r *UserRepository) Invalidate(ctx context.Context, id string) {
	r.sf.Forget(id)
	if err := r.cache.Delete(ctx, id); err != nil {
		slog.Warn("user cache invalidation failed", "user_id", id, "error", err)
	}
}
