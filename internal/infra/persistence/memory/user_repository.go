// Package memory keeps users in process memory. It backs tests and the
// single-process "memory" store driver.
package memory

import (
	"context"
	"sync"
	"time"

	"bathroom/internal/domain/entity"
	domainerrors "bathroom/internal/domain/errors"
	"bathroom/internal/domain/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*entity.User
	byID    map[uuid.UUID]*entity.User
	now     func() time.Time
}

// NewUserRepository returns an empty in-memory repository.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		byEmail: make(map[string]*entity.User),
		byID:    make(map[uuid.UUID]*entity.User),
		now:     time.Now,
	}
}

// Create checks and inserts under one write lock.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := repository.CheckStorable(user); err != nil {
		return err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return domainerrors.ErrUserCreationFailed.WrapMessage("failed to generate user id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
	}

	now := r.now().UTC()
	stored := cloneUser(user)
	stored.ID = id
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.byEmail[stored.Email] = stored
	r.byID[stored.ID] = stored

	user.ID = stored.ID
	user.CreatedAt = stored.CreatedAt
	user.UpdatedAt = stored.UpdatedAt

	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string, includeSecret bool) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	stored, ok := r.byEmail[entity.NormalizeEmail(email)]
	r.mu.RUnlock()

	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return project(stored, includeSecret), nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	stored, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return project(stored, false), nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	_, ok := r.byEmail[entity.NormalizeEmail(email)]
	r.mu.RUnlock()

	return ok, nil
}

// project returns a copy the caller may mutate freely.
func project(stored *entity.User, includeSecret bool) *entity.User {
	user := cloneUser(stored)
	if !includeSecret {
		user.PasswordHash = ""
	}

	return user
}

func cloneUser(user *entity.User) *entity.User {
	cloned := *user
	cloned.HomeLocation = user.HomeLocation.Clone()

	return &cloned
}
