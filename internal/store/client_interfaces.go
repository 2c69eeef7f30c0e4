package store

import (
	"context"

	"github.com/MKhiriev/go-readsync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/cache_repository_mock.go -package=mock

// CacheRepository is the local article cache: metadata table, body blob
// table, and a scalar settings table (change-feed cursor, last sync time).
// It is the UI's source of truth between syncs and is mutated only by the
// sync coordinator (single-writer discipline).
type CacheRepository interface {
	// SaveArticles upserts article metadata by id.
	SaveArticles(ctx context.Context, articles ...models.Article) error

	// ReplaceArticles swaps the entire metadata table for articles in one
	// transaction (full-mode reconciliation). Bodies of articles that no
	// longer exist are dropped with their metadata.
	ReplaceArticles(ctx context.Context, articles []models.Article) error

	// GetArticle returns one article by id, or [ErrArticleNotFound].
	GetArticle(ctx context.Context, id string) (models.Article, error)

	// GetAllArticles returns the cached list ordered by UpdatedAt descending
	// (id ascending on ties).
	GetAllArticles(ctx context.Context) ([]models.Article, error)

	// DeleteArticle removes article metadata and its cached body. Deleting
	// an absent id is a no-op.
	DeleteArticle(ctx context.Context, id string) error

	// SaveBody stores the downloaded article content blob.
	SaveBody(ctx context.Context, id string, body []byte) error

	// GetBody returns the cached content blob, or [ErrBodyNotFound].
	GetBody(ctx context.Context, id string) ([]byte, error)

	// DeleteBody drops the cached content blob while keeping the article
	// metadata (stale-content invalidation). Deleting an absent id is a no-op.
	DeleteBody(ctx context.Context, id string) error

	// BodyIDs returns the ids that have a cached content blob.
	BodyIDs(ctx context.Context) ([]string, error)

	// GetSetting returns a scalar setting value, or [ErrSettingNotFound].
	GetSetting(ctx context.Context, key string) (string, error)

	// SetSetting upserts a scalar setting value.
	SetSetting(ctx context.Context, key, value string) error

	// DeleteSetting removes a setting. Deleting an absent key is a no-op.
	DeleteSetting(ctx context.Context, key string) error

	// Clear wipes articles, bodies, and settings (sign-out / cache reset).
	Clear(ctx context.Context) error
}
