package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"blogly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost_StampsClock(t *testing.T) {
	fixed := time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC)
	repo := noopPostRepo()
	var saved *models.Post
	repo.createFn = func(_ context.Context, p *models.Post) error {
		saved = p
		return nil
	}
	svc := NewPostService(repo, nil).WithClock(func() time.Time { return fixed })

	post, err := svc.CreatePost(context.Background(), 7, PostInput{Title: " Hello ", Content: "  body  "})
	require.NoError(t, err)
	assert.Equal(t, uint(7), saved.UserID)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, "  body  ", post.Content)
	assert.True(t, fixed.Equal(post.CreatedAt))
}

func TestPostService_CreatePost_Validation(t *testing.T) {
	tests := []struct {
		name    string
		userID  uint
		in      PostInput
		status  int
		wantErr string
	}{
		{"blank title", 1, PostInput{Title: "  "}, 400, "Title is required"},
		{"long title", 1, PostInput{Title: strings.Repeat("t", maxTitleLen+1)}, 400, "Title too long"},
		{"long content", 1, PostInput{Title: "ok", Content: strings.Repeat("c", maxContentLen+1)}, 400, "Content too long"},
		{"zero user", 0, PostInput{Title: "ok"}, 404, "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPostService(noopPostRepo(), nil)
			_, err := svc.CreatePost(context.Background(), tt.userID, tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.status, models.StatusCode(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPostService_CreatePost_EmptyContentAllowed(t *testing.T) {
	svc := NewPostService(noopPostRepo(), nil)
	_, err := svc.CreatePost(context.Background(), 1, PostInput{Title: "t", Content: ""})
	assert.NoError(t, err)
}

func TestPostService_CreatePost_ContentLimitCountsRunes(t *testing.T) {
	svc := NewPostService(noopPostRepo(), nil)

	// Each "é" is two bytes, so this is over the limit in bytes but not in runes.
	atLimit := strings.Repeat("é", maxContentLen)
	_, err := svc.CreatePost(context.Background(), 1, PostInput{Title: "t", Content: atLimit})
	assert.NoError(t, err)

	_, err = svc.CreatePost(context.Background(), 1, PostInput{Title: "t", Content: atLimit + "é"})
	require.Error(t, err)
	assert.Equal(t, 400, models.StatusCode(err))
}

func TestPostService_CreatePost_UnknownUser(t *testing.T) {
	repo := noopPostRepo()
	repo.createFn = func(_ context.Context, p *models.Post) error {
		return models.NewNotFoundError("User", p.UserID)
	}
	svc := NewPostService(repo, nil)

	_, err := svc.CreatePost(context.Background(), 99, PostInput{Title: "t"})
	assert.True(t, models.IsNotFound(err))
}

func TestPostService_UpdatePost_DoesNotTouchOwner(t *testing.T) {
	repo := noopPostRepo()
	var saved *models.Post
	repo.updateFn = func(_ context.Context, p *models.Post) error {
		saved = p
		return nil
	}
	svc := NewPostService(repo, nil)

	_, err := svc.UpdatePost(context.Background(), 4, PostInput{Title: "new", Content: "c"})
	require.NoError(t, err)
	assert.Equal(t, uint(4), saved.ID)
	assert.Zero(t, saved.UserID)
	assert.True(t, saved.CreatedAt.IsZero())
}

func TestPostService_DeletePost_ReturnsOwner(t *testing.T) {
	repo := noopPostRepo()
	repo.deleteFn = func(_ context.Context, _ uint) (uint, error) { return 12, nil }
	svc := NewPostService(repo, nil)

	owner, err := svc.DeletePost(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, uint(12), owner)

	_, err = svc.DeletePost(context.Background(), 0)
	assert.True(t, models.IsNotFound(err))
}

func TestPostService_ListRecentPosts_PassesLimit(t *testing.T) {
	repo := noopPostRepo()
	var gotLimit int
	repo.listRecentFn = func(_ context.Context, limit int) ([]models.Post, error) {
		gotLimit = limit
		return []models.Post{{ID: 1}}, nil
	}
	svc := NewPostService(repo, nil)

	posts, err := svc.ListRecentPosts(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, 5, gotLimit)
}
