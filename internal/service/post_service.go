package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"blogly/internal/models"
	"blogly/internal/observability"
	"blogly/internal/repository"
)

type PostService struct {
	repo    repository.PostRepository
	metrics *observability.Metrics
	now     func() time.Time
}

// PostInput carries the post form fields.
type PostInput struct {
	Title   string
	Content string
}

func NewPostService(repo repository.PostRepository, metrics *observability.Metrics) *PostService {
	return &PostService{
		repo:    repo,
		metrics: metrics,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used to stamp new posts.
func (s *PostService) WithClock(now func() time.Time) *PostService {
	s.now = now
	return s
}

func (in PostInput) apply(p *models.Post) error {
	var err error
	if p.Title, err = requiredText("Title", in.Title, maxTitleLen); err != nil {
		return err
	}
	if utf8.RuneCountInString(in.Content) > maxContentLen {
		return models.NewValidationError(fmt.Sprintf("Content too long (max %d characters)", maxContentLen))
	}
	p.Content = in.Content
	return nil
}

// ListRecentPosts returns up to limit posts, newest first.
func (s *PostService) ListRecentPosts(ctx context.Context, limit int) ([]models.Post, error) {
	return s.repo.ListRecent(ctx, limit)
}

func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.repo.List(ctx)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	if id == 0 {
		return nil, models.NewNotFoundError("Post", id)
	}
	return s.repo.GetByID(ctx, id)
}

// CreatePost creates a post owned by userID, stamped with the service clock.
func (s *PostService) CreatePost(ctx context.Context, userID uint, in PostInput) (*models.Post, error) {
	if userID == 0 {
		return nil, models.NewNotFoundError("User", userID)
	}
	post := &models.Post{UserID: userID}
	if err := in.apply(post); err != nil {
		return nil, err
	}
	post.CreatedAt = s.now()

	err := s.repo.Create(ctx, post)
	s.metrics.RecordMutation("post", "create", err)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost changes title and content. Owner and creation time never change.
func (s *PostService) UpdatePost(ctx context.Context, id uint, in PostInput) (*models.Post, error) {
	if id == 0 {
		return nil, models.NewNotFoundError("Post", id)
	}
	post := &models.Post{ID: id}
	if err := in.apply(post); err != nil {
		return nil, err
	}
	err := s.repo.Update(ctx, post)
	s.metrics.RecordMutation("post", "update", err)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost deletes the post and returns the id of the user who owned it.
func (s *PostService) DeletePost(ctx context.Context, id uint) (uint, error) {
	if id == 0 {
		return 0, models.NewNotFoundError("Post", id)
	}
	ownerID, err := s.repo.Delete(ctx, id)
	s.metrics.RecordMutation("post", "delete", err)
	if err != nil {
		return 0, err
	}
	return ownerID, nil
}
