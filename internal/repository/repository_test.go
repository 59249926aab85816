package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"libraryapi/internal/db"
	"libraryapi/internal/model"
)

func tempDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := db.Open("file:" + filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=1")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gormDB
}

func strPtr(s string) *string { return &s }

func TestBookRepository_CreateFindList(t *testing.T) {
	repo := NewBookRepository(tempDB(t))
	ctx := context.Background()

	for _, title := range []string{"Dune", "Emma", "Ulysses"} {
		require.NoError(t, repo.Create(ctx, &model.Book{Title: title, Author: "someone"}))
	}

	books, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Ulysses", books[2].Title)

	found, err := repo.FindByID(ctx, books[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Emma", found.Title)
}

func TestBookRepository_UpdateWritesNulls(t *testing.T) {
	repo := NewBookRepository(tempDB(t))
	ctx := context.Background()

	available := true
	book := &model.Book{Title: "Dune", Author: "Herbert", ISBN: strPtr("9780441013593"), Available: &available}
	require.NoError(t, repo.Create(ctx, book))

	book.ISBN = nil
	book.Available = nil
	require.NoError(t, repo.Update(ctx, book))

	stored, err := repo.FindByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ISBN)
	assert.Nil(t, stored.Available)
}

func TestBookRepository_DeleteThenFind(t *testing.T) {
	repo := NewBookRepository(tempDB(t))
	ctx := context.Background()

	book := &model.Book{Title: "Dune", Author: "Herbert"}
	require.NoError(t, repo.Create(ctx, book))
	require.NoError(t, repo.Delete(ctx, book.ID))

	_, err := repo.FindByID(ctx, book.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBookRepository_DeleteReferencedBook(t *testing.T) {
	gormDB := tempDB(t)
	repo := NewBookRepository(gormDB)
	ctx := context.Background()

	book := &model.Book{Title: "Dune", Author: "Herbert"}
	require.NoError(t, repo.Create(ctx, book))
	require.NoError(t, gormDB.Create(&model.Transaction{BookID: &book.ID}).Error)

	err := repo.Delete(ctx, book.ID)
	assert.ErrorIs(t, err, gorm.ErrForeignKeyViolated)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(tempDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Name: "Ann", Email: "ann@example.com", Password: "pw"}))
	err := repo.Create(ctx, &model.User{Name: "Other Ann", Email: "ann@example.com", Password: "pw"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ann", users[0].Name)
}

func TestUserRepository_UpdateAndDelete(t *testing.T) {
	repo := NewUserRepository(tempDB(t))
	ctx := context.Background()

	user := &model.User{Name: "Ann", Email: "ann@example.com", Password: "pw"}
	require.NoError(t, repo.Create(ctx, user))

	user.Name = "Anne"
	require.NoError(t, repo.Update(ctx, user))

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anne", stored.Name)

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err = repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
