package service

import (
	"context"

	"blogly/internal/models"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getByIDWithPostsFn func(context.Context, uint) (*models.User, error)
	listFn             func(context.Context) ([]models.User, error)
	createFn           func(context.Context, *models.User) error
	updateFn           func(context.Context, *models.User) error
	deleteFn           func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithPosts(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDWithPostsFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) {
	return s.listFn(ctx)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:          func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByIDWithPostsFn: func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		listFn:             func(_ context.Context) ([]models.User, error) { return nil, nil },
		createFn:           func(_ context.Context, u *models.User) error { u.ID = 1; return nil },
		updateFn:           func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:           func(_ context.Context, _ uint) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.Post, error)
	listRecentFn func(context.Context, int) ([]models.Post, error)
	listFn       func(context.Context) ([]models.Post, error)
	createFn     func(context.Context, *models.Post) error
	updateFn     func(context.Context, *models.Post) error
	deleteFn     func(context.Context, uint) (uint, error)
}

func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ListRecent(ctx context.Context, limit int) ([]models.Post, error) {
	return s.listRecentFn(ctx, limit)
}
func (s *postRepoStub) List(ctx context.Context) ([]models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) (uint, error) {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		getByIDFn:    func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listRecentFn: func(_ context.Context, _ int) ([]models.Post, error) { return nil, nil },
		listFn:       func(_ context.Context) ([]models.Post, error) { return nil, nil },
		createFn:     func(_ context.Context, p *models.Post) error { p.ID = 1; return nil },
		updateFn:     func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) (uint, error) { return 1, nil },
	}
}

// tagRepoStub is a stub for repository.TagRepository.
type tagRepoStub struct {
	getByIDFn func(context.Context, uint) (*models.Tag, error)
	listFn    func(context.Context) ([]models.Tag, error)
	createFn  func(context.Context, *models.Tag, []uint) error
	updateFn  func(context.Context, *models.Tag, []uint) error
	deleteFn  func(context.Context, uint) error
}

func (s *tagRepoStub) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tagRepoStub) List(ctx context.Context) ([]models.Tag, error) {
	return s.listFn(ctx)
}
func (s *tagRepoStub) Create(ctx context.Context, tag *models.Tag, postIDs []uint) error {
	return s.createFn(ctx, tag, postIDs)
}
func (s *tagRepoStub) Update(ctx context.Context, tag *models.Tag, postIDs []uint) error {
	return s.updateFn(ctx, tag, postIDs)
}
func (s *tagRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopTagRepo() *tagRepoStub {
	return &tagRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Tag, error) { return &models.Tag{ID: id}, nil },
		listFn:    func(_ context.Context) ([]models.Tag, error) { return nil, nil },
		createFn:  func(_ context.Context, t *models.Tag, _ []uint) error { t.ID = 1; return nil },
		updateFn:  func(_ context.Context, _ *models.Tag, _ []uint) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
	}
}
