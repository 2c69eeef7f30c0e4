// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with the remote drive folder that backs the article cache.
//
// The primary abstraction is [DriveClient], which decouples the sync
// coordinator from the drive wire API. The package ships an HTTP/REST
// implementation ([NewHTTPDriveClient]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrCursorExpired] for 410, [ErrPreconditionFailed]
// for 412). [Retryable] classifies an error as transient.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-readsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/drive_client_mock.go -package=mock

// MergeFunc resolves a write conflict between the local article and the
// current remote version. It returns the article that should be written.
// A nil MergeFunc means "local wins": local fields are kept and only the
// remote concurrency token is adopted.
type MergeFunc func(local, remote models.Article) models.Article

// TokenProvider supplies the bearer token attached to every drive request.
// Token acquisition, caching, and refresh are external concerns; the adapter
// consumes the provider opaquely on each request.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// DriveClient defines transport-agnostic communication with the remote drive
// folder. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type DriveClient interface {
	// FetchIndexSnapshot retrieves the precomputed full article listing
	// stored in the drive folder. It is strictly a fast-path optimization:
	// a missing document, a parse failure, or a snapshot version this client
	// does not understand all yield (nil, nil), never an error.
	FetchIndexSnapshot(ctx context.Context) (*models.IndexSnapshot, error)

	// UploadIndexSnapshot writes a regenerated index snapshot back to the
	// drive folder. Callers invoke it fire-and-forget after a successful
	// sync; failures only cost the next cold start its fast path.
	UploadIndexSnapshot(ctx context.Context, snapshot models.IndexSnapshot) error

	// PageChangeFeed walks the change feed starting from cursor (empty
	// cursor enumerates the full folder) and follows server pagination
	// links until a terminal delta cursor is returned. It returns all
	// collected entries plus the new cursor.
	//
	// Returns [ErrCursorExpired] (wrapped) when the server rejects the
	// cursor as expired; the caller must discard it and restart from a full
	// enumeration. A missing folder is not an error: it yields no entries
	// and an empty cursor ("nothing to sync yet").
	PageChangeFeed(ctx context.Context, cursor string) ([]models.ChangeEntry, string, error)

	// DownloadArticleBatch fetches full article metadata for ids in
	// bounded-concurrency batches. Partial failure is expected and reported
	// as a count, not an error: callers must not persist a change-feed
	// cursor unless the failure count is zero.
	DownloadArticleBatch(ctx context.Context, ids []string) ([]models.Article, int)

	// UploadArticle writes article metadata back to the drive with a
	// conditional request keyed on article.ETag. On a precondition-failed
	// response it re-downloads the current remote version, applies merge
	// (nil means local wins), and retries exactly once. Returns
	// [ErrPreconditionFailed] (wrapped) only if the retry also conflicts.
	UploadArticle(ctx context.Context, article models.Article, merge MergeFunc) error

	// DeleteArticle removes the article metadata and any content blobs from
	// the drive folder. An already-deleted article (404) is success.
	DeleteArticle(ctx context.Context, id string) error

	// DownloadContent fetches the article body from its direct-download URL.
	DownloadContent(ctx context.Context, contentURL string) ([]byte, error)
}
