package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-readsync/internal/logger"
	"github.com/MKhiriev/go-readsync/models"
)

var articleColumns = []string{"id", "title", "favorite", "shared_with", "share_status", "updated_at", "size", "etag"}

type cacheRepository struct {
	*DB
	logger *logger.Logger
}

// NewCacheRepository constructs the sqlite-backed [CacheRepository].
func NewCacheRepository(db *DB, logger *logger.Logger) CacheRepository {
	return &cacheRepository{
		DB:     db,
		logger: logger,
	}
}

func (c *cacheRepository) SaveArticles(ctx context.Context, articles ...models.Article) error {
	log := logger.FromContext(ctx)

	for _, article := range articles {
		sharedWith, err := encodeSharedWith(article.SharedWith)
		if err != nil {
			return fmt.Errorf("failed to encode shared_with (id=%s): %w", article.ID, err)
		}

		query, args, err := sq.Insert("articles").
			Columns(articleColumns...).
			Values(article.ID, article.Title, article.Favorite, sharedWith, article.ShareStatus, article.UpdatedAt, article.Size, article.ETag).
			Suffix(`ON CONFLICT(id) DO UPDATE SET
				title        = excluded.title,
				favorite     = excluded.favorite,
				shared_with  = excluded.shared_with,
				share_status = excluded.share_status,
				updated_at   = excluded.updated_at,
				size         = excluded.size,
				etag         = excluded.etag`).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build article upsert: %w", err)
		}

		if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "cacheRepository.SaveArticles").
				Str("id", article.ID).
				Msg("failed to execute upsert for article")
			return fmt.Errorf("failed to save article (id=%s): %w", article.ID, err)
		}
	}

	return nil
}

func (c *cacheRepository) ReplaceArticles(ctx context.Context, articles []models.Article) error {
	log := logger.FromContext(ctx)

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin replace transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, "DELETE FROM articles"); err != nil {
		log.Err(err).
			Str("func", "cacheRepository.ReplaceArticles").
			Msg("failed to clear articles table")
		return fmt.Errorf("failed to clear articles table: %w", err)
	}

	for _, article := range articles {
		sharedWith, encErr := encodeSharedWith(article.SharedWith)
		if encErr != nil {
			return fmt.Errorf("failed to encode shared_with (id=%s): %w", article.ID, encErr)
		}

		query, args, buildErr := sq.Insert("articles").
			Columns(articleColumns...).
			Values(article.ID, article.Title, article.Favorite, sharedWith, article.ShareStatus, article.UpdatedAt, article.Size, article.ETag).
			ToSql()
		if buildErr != nil {
			return fmt.Errorf("failed to build article insert: %w", buildErr)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "cacheRepository.ReplaceArticles").
				Str("id", article.ID).
				Msg("failed to insert article during replace")
			return fmt.Errorf("failed to insert article (id=%s): %w", article.ID, err)
		}
	}

	// Bodies of articles that did not survive the replace are dead weight.
	if _, err = tx.ExecContext(ctx,
		"DELETE FROM article_bodies WHERE article_id NOT IN (SELECT id FROM articles)"); err != nil {
		log.Err(err).
			Str("func", "cacheRepository.ReplaceArticles").
			Msg("failed to prune orphaned article bodies")
		return fmt.Errorf("failed to prune orphaned article bodies: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit replace transaction: %w", err)
	}

	return nil
}

func (c *cacheRepository) GetArticle(ctx context.Context, id string) (models.Article, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select(articleColumns...).
		From("articles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Article{}, fmt.Errorf("failed to build article query: %w", err)
	}

	article, err := scanArticle(c.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Article{}, ErrArticleNotFound
		}
		log.Err(err).
			Str("func", "cacheRepository.GetArticle").
			Str("id", id).
			Msg("failed to scan article row")
		return models.Article{}, fmt.Errorf("failed to get article (id=%s): %w", id, err)
	}

	return article, nil
}

func (c *cacheRepository) GetAllArticles(ctx context.Context) ([]models.Article, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select(articleColumns...).
		From("articles").
		OrderBy("updated_at DESC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build articles query: %w", err)
	}

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.GetAllArticles").
			Msg("failed to execute query for all articles")
		return nil, fmt.Errorf("failed to query all articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		article, scanErr := scanArticle(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "cacheRepository.GetAllArticles").
				Msg("failed to scan article row")
			return nil, fmt.Errorf("failed to scan article row: %w", scanErr)
		}
		articles = append(articles, article)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "cacheRepository.GetAllArticles").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating article rows: %w", rowsErr)
	}

	return articles, nil
}

func (c *cacheRepository) DeleteArticle(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	for _, table := range []string{"article_bodies", "articles"} {
		column := "id"
		if table == "article_bodies" {
			column = "article_id"
		}

		query, args, err := sq.Delete(table).Where(sq.Eq{column: id}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build article delete: %w", err)
		}

		if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "cacheRepository.DeleteArticle").
				Str("id", id).
				Str("table", table).
				Msg("failed to execute delete for article")
			return fmt.Errorf("failed to delete article (id=%s): %w", id, err)
		}
	}

	return nil
}

func (c *cacheRepository) SaveBody(ctx context.Context, id string, body []byte) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.Insert("article_bodies").
		Columns("article_id", "body", "saved_at").
		Values(id, body, time.Now().UnixMilli()).
		Suffix("ON CONFLICT(article_id) DO UPDATE SET body = excluded.body, saved_at = excluded.saved_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build body upsert: %w", err)
	}

	if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "cacheRepository.SaveBody").
			Str("id", id).
			Msg("failed to execute upsert for article body")
		return fmt.Errorf("failed to save article body (id=%s): %w", id, err)
	}

	return nil
}

func (c *cacheRepository) GetBody(ctx context.Context, id string) ([]byte, error) {
	query, args, err := sq.Select("body").
		From("article_bodies").
		Where(sq.Eq{"article_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build body query: %w", err)
	}

	var body []byte
	if err = c.DB.QueryRowContext(ctx, query, args...).Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBodyNotFound
		}
		return nil, fmt.Errorf("failed to get article body (id=%s): %w", id, err)
	}

	return body, nil
}

func (c *cacheRepository) DeleteBody(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.Delete("article_bodies").Where(sq.Eq{"article_id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build body delete: %w", err)
	}

	if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "cacheRepository.DeleteBody").
			Str("id", id).
			Msg("failed to execute delete for article body")
		return fmt.Errorf("failed to delete article body (id=%s): %w", id, err)
	}

	return nil
}

func (c *cacheRepository) BodyIDs(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select("article_id").
		From("article_bodies").
		OrderBy("article_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build body ids query: %w", err)
	}

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.BodyIDs").
			Msg("failed to execute query for cached body ids")
		return nil, fmt.Errorf("failed to query cached body ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, fmt.Errorf("failed to scan body id row: %w", scanErr)
		}
		ids = append(ids, id)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating body id rows: %w", rowsErr)
	}

	return ids, nil
}

func (c *cacheRepository) GetSetting(ctx context.Context, key string) (string, error) {
	query, args, err := sq.Select("value").
		From("settings").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build setting query: %w", err)
	}

	var value string
	if err = c.DB.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrSettingNotFound
		}
		return "", fmt.Errorf("failed to get setting (key=%s): %w", key, err)
	}

	return value, nil
}

func (c *cacheRepository) SetSetting(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.Insert("settings").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build setting upsert: %w", err)
	}

	if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "cacheRepository.SetSetting").
			Str("key", key).
			Msg("failed to execute upsert for setting")
		return fmt.Errorf("failed to set setting (key=%s): %w", key, err)
	}

	return nil
}

func (c *cacheRepository) DeleteSetting(ctx context.Context, key string) error {
	query, args, err := sq.Delete("settings").Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build setting delete: %w", err)
	}

	if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete setting (key=%s): %w", key, err)
	}

	return nil
}

func (c *cacheRepository) Clear(ctx context.Context) error {
	log := logger.FromContext(ctx)

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin clear transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"article_bodies", "articles", "settings"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			log.Err(err).
				Str("func", "cacheRepository.Clear").
				Str("table", table).
				Msg("failed to clear table")
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear transaction: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (models.Article, error) {
	var article models.Article
	var sharedWith string

	err := row.Scan(
		&article.ID,
		&article.Title,
		&article.Favorite,
		&sharedWith,
		&article.ShareStatus,
		&article.UpdatedAt,
		&article.Size,
		&article.ETag,
	)
	if err != nil {
		return models.Article{}, err
	}

	if article.SharedWith, err = decodeSharedWith(sharedWith); err != nil {
		return models.Article{}, err
	}

	return article, nil
}

func encodeSharedWith(sharedWith []string) (string, error) {
	if len(sharedWith) == 0 {
		return "[]", nil
	}

	payload, err := json.Marshal(sharedWith)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

func decodeSharedWith(raw string) ([]string, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}

	var sharedWith []string
	if err := json.Unmarshal([]byte(raw), &sharedWith); err != nil {
		return nil, err
	}
	return sharedWith, nil
}
