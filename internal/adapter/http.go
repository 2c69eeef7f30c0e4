package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/go-readsync/internal/config"
	"github.com/MKhiriev/go-readsync/internal/logger"
	"github.com/MKhiriev/go-readsync/models"
	"github.com/go-resty/resty/v2"
)

type httpDriveClient struct {
	client *resty.Client
	tokens TokenProvider

	folderPath          string
	downloadConcurrency int

	logger *logger.Logger
}

// NewHTTPDriveClient constructs an HTTP/REST implementation of [DriveClient].
// It normalises and validates the base URL from adapterCfg.BaseURL and
// configures the underlying resty client with the resolved base URL and
// request timeout.
//
// Returns an error if adapterCfg.BaseURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPDriveClient(adapterCfg config.Adapter, appCfg config.App, tokens TokenProvider, logger *logger.Logger) (DriveClient, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	concurrency := adapterCfg.DownloadConcurrency
	if concurrency <= 0 {
		concurrency = 6
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpDriveClient{
		client:              client,
		tokens:              tokens,
		folderPath:          appCfg.FolderPath,
		downloadConcurrency: concurrency,
		logger:              logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// FetchIndexSnapshot implements [DriveClient]. Every failure mode — request
// error, non-2xx status, undecodable body, unknown snapshot version — yields
// (nil, nil): the snapshot is only a cold-start shortcut and its absence must
// never surface as an error.
func (h *httpDriveClient) FetchIndexSnapshot(ctx context.Context) (*models.IndexSnapshot, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, nil
	}

	resp, err := req.
		SetQueryParam("path", h.folderPath).
		Get("/drive/index")
	if err != nil {
		h.logger.Debug().Err(err).Msg("index snapshot request failed, falling back to change feed")
		return nil, nil
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Err(err).Msg("index snapshot unavailable, falling back to change feed")
		return nil, nil
	}

	var snapshot models.IndexSnapshot
	if err = json.Unmarshal(resp.Body(), &snapshot); err != nil {
		h.logger.Debug().Err(err).Msg("index snapshot undecodable, falling back to change feed")
		return nil, nil
	}
	if snapshot.Version != models.IndexSnapshotVersion {
		h.logger.Debug().
			Int("version", snapshot.Version).
			Msg("index snapshot version mismatch, falling back to change feed")
		return nil, nil
	}

	return &snapshot, nil
}

// UploadIndexSnapshot implements [DriveClient]. It PUTs the snapshot JSON to
// the index document in the drive folder.
func (h *httpDriveClient) UploadIndexSnapshot(ctx context.Context, snapshot models.IndexSnapshot) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetQueryParam("path", h.folderPath).
		SetBody(snapshot).
		Put("/drive/index")
	if err != nil {
		return fmt.Errorf("%w: upload index snapshot: %v", ErrTransport, err)
	}

	return mapHTTPError(resp)
}

// PageChangeFeed implements [DriveClient]. It GETs /drive/delta and follows
// NextLink pages until a page carries a terminal DeltaCursor. All entries
// from the walk are returned together with that cursor.
func (h *httpDriveClient) PageChangeFeed(ctx context.Context, cursor string) ([]models.ChangeEntry, string, error) {
	var entries []models.ChangeEntry
	nextLink := ""

	for {
		req, err := h.authedRequest(ctx)
		if err != nil {
			return nil, "", err
		}

		var resp *resty.Response
		if nextLink != "" {
			// NextLink is served by the drive as an absolute URL.
			resp, err = req.Get(nextLink)
		} else {
			req.SetQueryParam("path", h.folderPath)
			if cursor != "" {
				req.SetQueryParam("cursor", cursor)
			}
			resp, err = req.Get("/drive/delta")
		}
		if err != nil {
			return nil, "", fmt.Errorf("%w: change feed request: %v", ErrTransport, err)
		}
		if err = mapHTTPError(resp); err != nil {
			if errors.Is(err, ErrNotFound) && cursor == "" && nextLink == "" {
				// Folder does not exist yet: nothing to sync.
				return nil, "", nil
			}
			return nil, "", err
		}

		var page models.ChangePage
		if err = json.Unmarshal(resp.Body(), &page); err != nil {
			return nil, "", fmt.Errorf("decode change feed page: %w", err)
		}

		entries = append(entries, page.Entries...)

		if page.DeltaCursor != "" {
			return entries, page.DeltaCursor, nil
		}
		if page.NextLink == "" {
			return nil, "", fmt.Errorf("change feed page carries neither next link nor delta cursor")
		}
		nextLink = page.NextLink
	}
}

// DownloadArticleBatch implements [DriveClient]. Downloads run with bounded
// concurrency; a failed download is counted and skipped so the rest of the
// batch still lands. Result order follows ids.
func (h *httpDriveClient) DownloadArticleBatch(ctx context.Context, ids []string) ([]models.Article, int) {
	results := make([]*models.Article, len(ids))
	var failures int32

	sem := make(chan struct{}, h.downloadConcurrency)
	var wg sync.WaitGroup

	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			article, err := h.getArticle(ctx, id)
			if err != nil {
				atomic.AddInt32(&failures, 1)
				h.logger.Warn().Err(err).Str("id", id).Msg("article metadata download failed")
				return
			}
			results[i] = &article
		}(i, id)
	}
	wg.Wait()

	articles := make([]models.Article, 0, len(ids))
	for _, a := range results {
		if a != nil {
			articles = append(articles, *a)
		}
	}

	return articles, int(failures)
}

// UploadArticle implements [DriveClient]. The write is conditional on
// article.ETag. On a precondition conflict the current remote version is
// fetched, merge is applied (nil merge keeps local fields and adopts the
// remote ETag), and the write is retried exactly once.
func (h *httpDriveClient) UploadArticle(ctx context.Context, article models.Article, merge MergeFunc) error {
	err := h.putArticle(ctx, article)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrPreconditionFailed) {
		return fmt.Errorf("upload article %s: %w", article.ID, err)
	}

	remote, err := h.getArticle(ctx, article.ID)
	if err != nil {
		// A 404 here means the article was deleted remotely while the local
		// edit was in flight; re-creating it would resurrect a deleted
		// record, so the conflict is surfaced instead.
		return fmt.Errorf("refresh conflicting article %s: %w", article.ID, err)
	}

	if merge == nil {
		merge = LocalWinsMerge
	}
	merged := merge(article, remote)
	merged.ID = article.ID
	merged.ETag = remote.ETag

	if err = h.putArticle(ctx, merged); err != nil {
		return fmt.Errorf("upload merged article %s: %w", article.ID, err)
	}
	return nil
}

// DeleteArticle implements [DriveClient]. It removes the article item (the
// drive deletes attached content blobs with it). An already-gone article is
// success.
func (h *httpDriveClient) DeleteArticle(ctx context.Context, id string) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Delete("/drive/items/" + url.PathEscape(id))
	if err != nil {
		return fmt.Errorf("%w: delete request: %v", ErrTransport, err)
	}

	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// DownloadContent implements [DriveClient]. contentURL comes from a change
// feed entry and is absolute, so it bypasses the configured base URL.
func (h *httpDriveClient) DownloadContent(ctx context.Context, contentURL string) ([]byte, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := req.Get(contentURL)
	if err != nil {
		return nil, fmt.Errorf("%w: content download: %v", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

func (h *httpDriveClient) getArticle(ctx context.Context, id string) (models.Article, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.Article{}, err
	}

	resp, err := req.Get("/drive/items/" + url.PathEscape(id))
	if err != nil {
		return models.Article{}, fmt.Errorf("%w: download request: %v", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Article{}, err
	}

	var article models.Article
	if err = json.Unmarshal(resp.Body(), &article); err != nil {
		return models.Article{}, fmt.Errorf("decode article response: %w", err)
	}
	if etag := resp.Header().Get("ETag"); etag != "" {
		article.ETag = etag
	}

	return article, nil
}

func (h *httpDriveClient) putArticle(ctx context.Context, article models.Article) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	req.
		SetHeader("Content-Type", "application/json").
		SetBody(article)
	if article.ETag != "" {
		req.SetHeader("If-Match", article.ETag)
	}

	resp, err := req.Put("/drive/items/" + url.PathEscape(article.ID))
	if err != nil {
		return fmt.Errorf("%w: upload request: %v", ErrTransport, err)
	}

	return mapHTTPError(resp)
}

func (h *httpDriveClient) authedRequest(ctx context.Context) (*resty.Request, error) {
	token, err := h.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire bearer token: %w", err)
	}

	req := h.client.R().SetContext(ctx)
	if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req, nil
}

// LocalWinsMerge is the default conflict resolution: the local edit is kept
// wholesale. The caller forces the remote ETag onto the result before
// retrying, so the retry targets the version that produced the conflict.
func LocalWinsMerge(local, _ models.Article) models.Article {
	return local.Clone()
}
