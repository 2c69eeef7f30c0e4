// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-readsync/internal/logger"
	"github.com/MKhiriev/go-readsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

// newTestRepository opens a throwaway on-disk sqlite database with the full
// migration set applied.
func newTestRepository(t *testing.T) CacheRepository {
	t.Helper()

	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewCacheRepository(db, logger.Nop())
}

func testArticle(id string, updatedAt int64) models.Article {
	return models.Article{
		ID:        id,
		Title:     "title-" + id,
		UpdatedAt: updatedAt,
		Size:      42,
		ETag:      `"etag-` + id + `"`,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Articles
// ─────────────────────────────────────────────────────────────────────────────

func TestCacheRepository_SaveAndGetArticle(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	article := testArticle("a", 100)
	article.Favorite = true
	article.SharedWith = []string{"alice@example.com", "bob@example.com"}
	article.ShareStatus = "pending"

	require.NoError(t, repo.SaveArticles(ctx, article))

	got, err := repo.GetArticle(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, article, got)
}

func TestCacheRepository_SaveArticles_UpsertsById(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveArticles(ctx, testArticle("a", 100)))

	updated := testArticle("a", 200)
	updated.Title = "renamed"
	require.NoError(t, repo.SaveArticles(ctx, updated))

	got, err := repo.GetArticle(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.EqualValues(t, 200, got.UpdatedAt)

	all, err := repo.GetAllArticles(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "upsert must not duplicate the row")
}

func TestCacheRepository_GetArticle_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetArticle(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrArticleNotFound)
}

func TestCacheRepository_GetAllArticles_Ordering(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveArticles(ctx,
		testArticle("b", 100),
		testArticle("a", 100),
		testArticle("c", 300),
	))

	all, err := repo.GetAllArticles(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(all))
	for _, a := range all {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids, "newest first, id ascending on ties")
}

func TestCacheRepository_ReplaceArticles(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveArticles(ctx, testArticle("a", 100), testArticle("b", 200)))
	require.NoError(t, repo.SaveBody(ctx, "a", []byte("body-a")))
	require.NoError(t, repo.SaveBody(ctx, "b", []byte("body-b")))

	require.NoError(t, repo.ReplaceArticles(ctx, []models.Article{testArticle("b", 200), testArticle("c", 300)}))

	all, err := repo.GetAllArticles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, "b", all[1].ID)

	// Body of the replaced-away article must be pruned, the survivor kept.
	_, err = repo.GetBody(ctx, "a")
	require.ErrorIs(t, err, ErrBodyNotFound)
	body, err := repo.GetBody(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []byte("body-b"), body)
}

func TestCacheRepository_DeleteArticle(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveArticles(ctx, testArticle("a", 100)))
	require.NoError(t, repo.SaveBody(ctx, "a", []byte("body-a")))

	require.NoError(t, repo.DeleteArticle(ctx, "a"))

	_, err := repo.GetArticle(ctx, "a")
	require.ErrorIs(t, err, ErrArticleNotFound)
	_, err = repo.GetBody(ctx, "a")
	require.ErrorIs(t, err, ErrBodyNotFound)

	// Deleting an absent id is a no-op, not an error.
	require.NoError(t, repo.DeleteArticle(ctx, "ghost"))
}

// ─────────────────────────────────────────────────────────────────────────────
// Bodies
// ─────────────────────────────────────────────────────────────────────────────

func TestCacheRepository_Bodies(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveBody(ctx, "a", []byte("first")))
	require.NoError(t, repo.SaveBody(ctx, "b", []byte("second")))
	require.NoError(t, repo.SaveBody(ctx, "a", []byte("first-v2")))

	body, err := repo.GetBody(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("first-v2"), body, "saving again must overwrite")

	ids, err := repo.BodyIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	_, err = repo.GetBody(ctx, "ghost")
	require.ErrorIs(t, err, ErrBodyNotFound)
}

// DeleteBody drops only the content blob: the article row survives so the
// body can be re-downloaded later.
func TestCacheRepository_DeleteBody_KeepsMetadata(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveArticles(ctx, testArticle("a", 100)))
	require.NoError(t, repo.SaveBody(ctx, "a", []byte("stale")))

	require.NoError(t, repo.DeleteBody(ctx, "a"))

	_, err := repo.GetBody(ctx, "a")
	require.ErrorIs(t, err, ErrBodyNotFound)

	_, err = repo.GetArticle(ctx, "a")
	require.NoError(t, err, "article metadata must survive body invalidation")

	// Deleting an absent id is a no-op.
	require.NoError(t, repo.DeleteBody(ctx, "ghost"))
}

// ─────────────────────────────────────────────────────────────────────────────
// Settings
// ─────────────────────────────────────────────────────────────────────────────

func TestCacheRepository_Settings(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.GetSetting(ctx, models.SettingChangeFeedCursor)
	require.ErrorIs(t, err, ErrSettingNotFound)

	require.NoError(t, repo.SetSetting(ctx, models.SettingChangeFeedCursor, "cursor-1"))
	require.NoError(t, repo.SetSetting(ctx, models.SettingChangeFeedCursor, "cursor-2"))

	value, err := repo.GetSetting(ctx, models.SettingChangeFeedCursor)
	require.NoError(t, err)
	assert.Equal(t, "cursor-2", value, "setting again must overwrite")

	require.NoError(t, repo.DeleteSetting(ctx, models.SettingChangeFeedCursor))
	_, err = repo.GetSetting(ctx, models.SettingChangeFeedCursor)
	require.ErrorIs(t, err, ErrSettingNotFound)

	// Deleting an absent key is a no-op.
	require.NoError(t, repo.DeleteSetting(ctx, "ghost"))
}

func TestCacheRepository_Clear(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveArticles(ctx, testArticle("a", 100)))
	require.NoError(t, repo.SaveBody(ctx, "a", []byte("body")))
	require.NoError(t, repo.SetSetting(ctx, models.SettingChangeFeedCursor, "cursor"))

	require.NoError(t, repo.Clear(ctx))

	all, err := repo.GetAllArticles(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = repo.GetBody(ctx, "a")
	require.ErrorIs(t, err, ErrBodyNotFound)
	_, err = repo.GetSetting(ctx, models.SettingChangeFeedCursor)
	require.ErrorIs(t, err, ErrSettingNotFound)
}

// ─────────────────────────────────────────────────────────────────────────────
// Error paths (sqlmock)
// ─────────────────────────────────────────────────────────────────────────────

func newMockRepository(t *testing.T) (CacheRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewCacheRepository(&DB{DB: db}, logger.Nop()), mock
}

func TestCacheRepository_SaveArticles_ExecError(t *testing.T) {
	repo, mock := newMockRepository(t)

	dbErr := errors.New("disk I/O error")
	mock.ExpectExec("INSERT INTO articles").WillReturnError(dbErr)

	err := repo.SaveArticles(context.Background(), testArticle("a", 100))
	require.ErrorIs(t, err, dbErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepository_GetAllArticles_QueryError(t *testing.T) {
	repo, mock := newMockRepository(t)

	dbErr := errors.New("database is locked")
	mock.ExpectQuery("SELECT id, title, favorite").WillReturnError(dbErr)

	_, err := repo.GetAllArticles(context.Background())
	require.ErrorIs(t, err, dbErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepository_ReplaceArticles_RollsBackOnInsertError(t *testing.T) {
	repo, mock := newMockRepository(t)

	dbErr := errors.New("constraint failed")
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM articles").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO articles").WillReturnError(dbErr)
	mock.ExpectRollback()

	err := repo.ReplaceArticles(context.Background(), []models.Article{testArticle("a", 100)})
	require.ErrorIs(t, err, dbErr)
	require.NoError(t, mock.ExpectationsWereMet())
}
