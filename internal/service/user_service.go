package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	apperrors "libraryapi/internal/errors"
	"libraryapi/internal/model"
	"libraryapi/internal/repository"
)

// UserInput carries the writable user fields; all are required.
type UserInput struct {
	Name     *string `json:"name" validate:"required"`
	Email    *string `json:"email" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

// UserService exposes domain operations.
type UserService interface {
	CreateUser(ctx context.Context, in UserInput) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id uint, in UserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	repo     repository.UserRepository
	cache    Cache
	validate *validator.Validate
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache Cache) UserService {
	return &userService{repo: repo, cache: cache, validate: newValidator()}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) CreateUser(ctx context.Context, in UserInput) (*model.User, error) {
	if err := validateInput(s.validate, in); err != nil {
		return nil, err
	}
	user := &model.User{Name: *in.Name, Email: *in.Email, Password: *in.Password}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, translateUserWriteError("create user", err)
	}
	return user, nil
}

// GetUser serves from the cache when possible. Cached users carry no
// password, so callers that write back must use findUser.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), user)
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint, in UserInput) (*model.User, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateInput(s.validate, in); err != nil {
		return nil, err
	}

	user.Name = *in.Name
	user.Email = *in.Email
	user.Password = *in.Password
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, translateUserWriteError(fmt.Sprintf("update user %d", id), err)
	}
	s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.findUser(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateUserWriteError(fmt.Sprintf("delete user %d", id), err)
	}
	s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

func (s *userService) findUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return user, nil
}

func translateUserWriteError(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrEmailTaken
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.ErrReferenced
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
