// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-readsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// Reconciler defines the pure merge logic that turns a batch of remote
// changes into new cache state. Implementations hold no state and perform no
// I/O; they operate only on data already fetched.
type Reconciler interface {
	// Reconcile merges batch into current and returns the new cache state.
	// Full mode replaces the entire state with the batch contents;
	// incremental mode applies upserts and deletes onto current, leaving
	// unmentioned articles untouched. When one id appears as both an upsert
	// and a delete within a batch, the delete wins. The operation is
	// idempotent: replaying the same batch converges to the same state.
	// Output is sorted by UpdatedAt descending, ID ascending on ties.
	Reconcile(current []models.Article, batch models.ChangeBatch) []models.Article

	// SplitBootstrap partitions change-feed entries observed right after an
	// index snapshot was applied: ids the snapshot already covers are not
	// re-downloaded, ids it does not cover are, and tombstones are always
	// honored. An id that is both tombstoned and upserted is only deleted.
	SplitBootstrap(snapshot []models.Article, entries []models.ChangeEntry) (downloadIDs, deleteIDs []string)
}

// Broadcaster is the optional side-channel informing sibling client instances
// about local activity. Delivery is best-effort; losing a message costs
// nothing but staleness until the sibling's next refresh.
type Broadcaster interface {
	Publish(ctx context.Context, msg models.NotifyMessage) error
}

// Coordinator orchestrates synchronization between the local article cache
// and the remote drive folder, and owns the outbound write queue for local
// mutations. At most one sync pass is in flight at any time.
type Coordinator interface {
	// RequestSync runs one sync pass: show cached articles, decide full vs.
	// incremental, fetch remote changes, reconcile, persist, and rebuild the
	// remote index snapshot in the background. A call made while a sync is
	// already in flight is a silent no-op. Read errors are absorbed when
	// cached data exists (a sync-error event is emitted instead); an error is
	// returned only when the cache is empty and nothing could be shown.
	RequestSync(ctx context.Context) error

	// ForceFullSync discards the persisted change-feed cursor and runs a sync
	// pass, forcing a full reconciliation. Offered to the user after a
	// divergence signal.
	ForceFullSync(ctx context.Context) error

	// RefreshFromCache reloads articles from the local cache and emits them
	// to subscribers without touching the network. Used by siblings reacting
	// to cross-instance notifications.
	RefreshFromCache(ctx context.Context) error

	// Mutate applies fn to the article with the given id optimistically:
	// the in-memory list and local cache reflect the change immediately, and
	// the remote write is queued with retry and rollback-on-permanent-failure.
	Mutate(ctx context.Context, id string, fn func(*models.Article)) error

	// Remove deletes the article optimistically from memory and local cache
	// and queues the remote delete; a permanently failed delete re-inserts
	// the prior snapshot.
	Remove(ctx context.Context, id string) error

	// Body returns the article content, downloading and caching it on first
	// access.
	Body(ctx context.Context, id string) ([]byte, error)

	// Articles returns a copy of the current in-memory article list.
	Articles() []models.Article

	// CachedIDs returns the set of article ids whose content is cached
	// locally.
	CachedIDs() map[string]bool

	// Subscribe registers a handler for coordinator events and returns its
	// unsubscribe function. A panicking handler never prevents delivery to
	// the remaining handlers.
	Subscribe(handler func(models.Event)) (unsubscribe func())

	// Wait blocks until all background tasks spawned by the coordinator
	// (index snapshot rebuilds) have finished.
	Wait()

	// Close drains the write queue and releases the coordinator's resources.
	Close()
}

// SyncJob is a background worker that periodically requests a sync pass.
type SyncJob interface {
	// Start launches the background sync goroutine. It syncs every interval,
	// defaulting to 5 minutes if interval is zero or negative. Any previously
	// running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
