package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"blogly/internal/config"
	"blogly/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, config.UserDeleteCascade)
	ctx := context.Background()

	want := &models.User{
		UserName:  "ada",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		ImageURL:  "",
	}
	require.NoError(t, repo.Create(ctx, want))
	require.NotZero(t, want.ID)

	got, err := repo.GetByID(ctx, want.ID)
	require.NoError(t, err)

	ignore := cmpopts.IgnoreFields(models.User{}, "CreatedAt", "UpdatedAt", "Posts")
	if diff := cmp.Diff(*want, *got, ignore); diff != "" {
		t.Errorf("user round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, config.UserDeleteCascade)

	_, err := repo.GetByID(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestUserRepository_GetByIDWithPosts_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, config.UserDeleteCascade)
	u := seedUser(t, db, "writer")
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	seedPost(t, db, u.ID, "first", base)
	seedPost(t, db, u.ID, "third", base.Add(2*time.Hour))
	seedPost(t, db, u.ID, "second", base.Add(time.Hour))

	got, err := repo.GetByIDWithPosts(context.Background(), u.ID)
	require.NoError(t, err)

	var titles []string
	for _, p := range got.Posts {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"third", "second", "first"}, titles)
}

func TestUserRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, config.UserDeleteCascade)
	seedUser(t, db, "b")
	seedUser(t, db, "a")

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "b", users[0].UserName)
}

func TestUserRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, config.UserDeleteCascade)
	ctx := context.Background()
	u := seedUser(t, db, "old")

	update := &models.User{ID: u.ID, UserName: "new", FirstName: "N", LastName: "W", Email: "", ImageURL: "https://img.example/x.png"}
	require.NoError(t, repo.Update(ctx, update))
	assert.Equal(t, "new", update.UserName)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.UserName)
	assert.Equal(t, "https://img.example/x.png", got.ImageURL)

	err = repo.Update(ctx, &models.User{ID: 999, UserName: "x"})
	assert.True(t, models.IsNotFound(err))
}

func TestUserRepository_DeleteCascade(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, config.UserDeleteCascade)
	ctx := context.Background()

	u := seedUser(t, db, "gone")
	other := seedUser(t, db, "stays")
	p := seedPost(t, db, u.ID, "doomed", time.Now().UTC())
	keep := seedPost(t, db, other.ID, "kept", time.Now().UTC())
	tag := &models.Tag{Name: "go"}
	require.NoError(t, db.Omit("Posts").Create(tag).Error)
	require.NoError(t, db.Create(&[]models.PostTag{{PostID: p.ID, TagID: tag.ID}, {PostID: keep.ID, TagID: tag.ID}}).Error)

	require.NoError(t, repo.Delete(ctx, u.ID))

	_, err := repo.GetByID(ctx, u.ID)
	assert.True(t, models.IsNotFound(err))
	assert.Equal(t, int64(1), countRows(t, db, &models.Post{}))
	assert.Equal(t, int64(1), countRows(t, db, &models.Tag{}))
	assert.Equal(t, []uint{keep.ID}, tagPostIDs(t, db, tag.ID))

	assert.True(t, models.IsNotFound(repo.Delete(ctx, u.ID)))
}

func TestUserRepository_DeleteRestrict(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, config.UserDeleteRestrict)
	ctx := context.Background()

	owner := seedUser(t, db, "owner")
	seedPost(t, db, owner.ID, "mine", time.Now().UTC())

	err := repo.Delete(ctx, owner.ID)
	require.Error(t, err)
	assert.Equal(t, 409, models.StatusCode(err))
	assert.Equal(t, int64(1), countRows(t, db, &models.User{}))
	assert.Equal(t, int64(1), countRows(t, db, &models.Post{}))

	empty := seedUser(t, db, "empty")
	require.NoError(t, repo.Delete(ctx, empty.ID))
}

func TestUserRepository_GetByID_Query(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db, config.UserDeleteCascade)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
		WithArgs(7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "first_name", "last_name"}).AddRow(7, "ada", "Ada", "Lovelace"))

	u, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "ada", u.UserName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DeleteRestrict_LocksUserRow(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db, config.UserDeleteRestrict)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2 FOR UPDATE`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_name"}).AddRow(3, "owner"))
	mock.ExpectQuery(`SELECT .* FROM "posts" WHERE user_id = \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 3)
	require.Error(t, err)
	assert.Equal(t, 409, models.StatusCode(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_RollsBackOnUniqueViolation(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db, config.UserDeleteCascade)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.User{UserName: "dup", FirstName: "D", LastName: "U"})
	require.Error(t, err)
	assert.Equal(t, 409, models.StatusCode(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
