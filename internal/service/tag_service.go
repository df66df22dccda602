package service

import (
	"context"

	"blogly/internal/models"
	"blogly/internal/observability"
	"blogly/internal/repository"
)

type TagService struct {
	repo    repository.TagRepository
	metrics *observability.Metrics
}

// TagInput carries the tag form: a name and the ids of the posts to link.
type TagInput struct {
	Name    string
	PostIDs []uint
}

func NewTagService(repo repository.TagRepository, metrics *observability.Metrics) *TagService {
	return &TagService{repo: repo, metrics: metrics}
}

func (s *TagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.repo.List(ctx)
}

func (s *TagService) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	if id == 0 {
		return nil, models.NewNotFoundError("Tag", id)
	}
	return s.repo.GetByID(ctx, id)
}

// CreateTag creates the tag and links it to the existing posts among in.PostIDs.
func (s *TagService) CreateTag(ctx context.Context, in TagInput) (*models.Tag, error) {
	name, err := requiredText("Tag name", in.Name, maxTagNameLen)
	if err != nil {
		return nil, err
	}
	tag := &models.Tag{Name: name}
	err = s.repo.Create(ctx, tag, in.PostIDs)
	s.metrics.RecordMutation("tag", "create", err)
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// UpdateTag renames the tag and replaces its post set.
func (s *TagService) UpdateTag(ctx context.Context, id uint, in TagInput) (*models.Tag, error) {
	if id == 0 {
		return nil, models.NewNotFoundError("Tag", id)
	}
	name, err := requiredText("Tag name", in.Name, maxTagNameLen)
	if err != nil {
		return nil, err
	}
	tag := &models.Tag{ID: id, Name: name}
	err = s.repo.Update(ctx, tag, in.PostIDs)
	s.metrics.RecordMutation("tag", "update", err)
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) DeleteTag(ctx context.Context, id uint) error {
	if id == 0 {
		return models.NewNotFoundError("Tag", id)
	}
	err := s.repo.Delete(ctx, id)
	s.metrics.RecordMutation("tag", "delete", err)
	return err
}
