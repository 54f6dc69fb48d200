package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-management/internal/core/domain"
	"github.com/taskforge/task-management/internal/core/ports"
)

// UserService serves the directory views through the read-through cache.
// The repository stays the source of truth; cached copies live at most one
// TTL and are retired early when a user write invalidates them.
type UserService struct {
	repo   ports.UserRepository
	cache  ports.Cache
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, cache ports.Cache, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, logger: logger}
}

// Detail returns a single user, read through the cache.
func (s *UserService) Detail(ctx context.Context, userID string) (*domain.User, error) {
	raw, err := s.cache.GetOrLoad(ctx, ports.CacheKeyUserPrefix+userID, func(ctx context.Context) ([]byte, error) {
		user, err := s.repo.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(user)
	})
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decode cached user: %w", err)
	}
	return &user, nil
}

// List returns the directory view for actor: an Admin sees every user, a
// Manager only their own reports. Each view has its own cache key so the
// scoping survives caching.
func (s *UserService) List(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	key := ports.CacheKeyAllUsers
	managerID := ""
	if actor.Role == domain.RoleManager {
		key = ports.CacheKeyTeamPrefix + actor.ID
		managerID = actor.ID
	}

	raw, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]byte, error) {
		users, err := s.repo.List(ctx, managerID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(users)
	})
	if err != nil {
		return nil, err
	}

	var users []*domain.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("decode cached user list: %w", err)
	}
	return users, nil
}
