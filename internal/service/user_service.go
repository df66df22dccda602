package service

import (
	"context"

	"blogly/internal/models"
	"blogly/internal/observability"
	"blogly/internal/repository"
)

type UserService struct {
	repo    repository.UserRepository
	metrics *observability.Metrics
}

// UserInput carries the user form fields.
type UserInput struct {
	UserName  string
	FirstName string
	LastName  string
	Email     string
	ImageURL  string
}

func NewUserService(repo repository.UserRepository, metrics *observability.Metrics) *UserService {
	return &UserService{repo: repo, metrics: metrics}
}

func (in UserInput) apply(u *models.User) error {
	var err error
	if u.UserName, err = requiredText("User name", in.UserName, maxNameLen); err != nil {
		return err
	}
	if u.FirstName, err = requiredText("First name", in.FirstName, maxNameLen); err != nil {
		return err
	}
	if u.LastName, err = requiredText("Last name", in.LastName, maxNameLen); err != nil {
		return err
	}
	if u.Email, err = optionalText("Email", in.Email, maxEmailLen); err != nil {
		return err
	}
	if u.ImageURL, err = optionalText("Image URL", in.ImageURL, maxImageURLLen); err != nil {
		return err
	}
	return nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, models.NewNotFoundError("User", id)
	}
	return s.repo.GetByID(ctx, id)
}

// GetUserWithPosts returns the user and its posts, newest first.
func (s *UserService) GetUserWithPosts(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, models.NewNotFoundError("User", id)
	}
	return s.repo.GetByIDWithPosts(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	user := &models.User{}
	if err := in.apply(user); err != nil {
		return nil, err
	}
	err := s.repo.Create(ctx, user)
	s.metrics.RecordMutation("user", "create", err)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint, in UserInput) (*models.User, error) {
	if id == 0 {
		return nil, models.NewNotFoundError("User", id)
	}
	user := &models.User{ID: id}
	if err := in.apply(user); err != nil {
		return nil, err
	}
	err := s.repo.Update(ctx, user)
	s.metrics.RecordMutation("user", "update", err)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if id == 0 {
		return models.NewNotFoundError("User", id)
	}
	err := s.repo.Delete(ctx, id)
	s.metrics.RecordMutation("user", "delete", err)
	return err
}
