// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-readsync/internal/adapter"
	"github.com/MKhiriev/go-readsync/internal/config"
	"github.com/MKhiriev/go-readsync/internal/logger"
	"github.com/MKhiriev/go-readsync/internal/store"
	"github.com/MKhiriev/go-readsync/models"
)

// coordinator is the concrete implementation of Coordinator. All mutable
// state lives on the struct; the local cache, the in-memory article list,
// and the write queue follow a single-writer discipline guarded by mu and
// the FIFO queue worker.
type coordinator struct {
	cache    store.CacheRepository
	drive    adapter.DriveClient
	planner  Reconciler
	notifier Broadcaster
	bus      *eventBus
	queue    *writeQueue
	logger   *logger.Logger

	staleCursorAfter time.Duration
	divergenceAfter  time.Duration

	mu        sync.RWMutex
	articles  []models.Article
	cachedIDs map[string]bool

	syncing    atomic.Bool
	background sync.WaitGroup

	now func() time.Time
}

// NewCoordinator wires the sync coordinator. notifier may be nil when
// cross-instance notification is disabled.
func NewCoordinator(
	cache store.CacheRepository,
	drive adapter.DriveClient,
	notifier Broadcaster,
	syncCfg config.Sync,
	logger *logger.Logger,
) Coordinator {
	return &coordinator{
		cache:            cache,
		drive:            drive,
		planner:          NewReconciler(),
		notifier:         notifier,
		bus:              newEventBus(logger),
		queue:            newWriteQueue(syncCfg.RetryBudget, syncCfg.RetryBackoff, logger),
		logger:           logger,
		staleCursorAfter: syncCfg.StaleCursorAfter,
		divergenceAfter:  syncCfg.DivergenceAfter,
		cachedIDs:        make(map[string]bool),
		now:              time.Now,
	}
}

// RequestSync implements Coordinator.
func (c *coordinator) RequestSync(ctx context.Context) error {
	// Single-flight: a sync already running will produce an equal-or-fresher
	// result, so a concurrent request is dropped, never queued.
	if !c.syncing.CompareAndSwap(false, true) {
		return nil
	}
	defer c.syncing.Store(false)

	ctx = c.logger.WithContext(ctx)
	c.bus.publish(models.Event{Kind: models.EventSyncStart})

	cachedCount := c.showCached(ctx)

	cursor, lastSync := c.syncCheckpoint(ctx)

	if cursor == "" && !lastSync.IsZero() && c.now().Sub(lastSync) > c.divergenceAfter {
		// No checkpoint and a long-stale cache: persistent storage may have
		// been evicted under us. Let the caller offer a manual full refresh.
		c.bus.publish(models.Event{Kind: models.EventDivergence})
	}

	if cursor != "" && !lastSync.IsZero() && c.now().Sub(lastSync) > c.staleCursorAfter {
		c.logger.Info().
			Time("last_sync", lastSync).
			Msg("change-feed cursor is stale, forcing full reconciliation")
		c.discardCursor(ctx)
		cursor = ""
	}

	result, err := c.syncPass(ctx, cursor)
	if err != nil {
		c.logger.Error().Err(err).Msg("sync pass failed")
		c.bus.publish(models.Event{Kind: models.EventSyncError, Err: err})
		c.bus.publish(models.Event{Kind: models.EventSyncEnd})
		if cachedCount == 0 {
			return fmt.Errorf("%w: %v", ErrEmptyCache, err)
		}
		// Cached data stays visible; the error was surfaced as an event.
		return nil
	}

	c.logger.Info().
		Str("mode", result.Mode.String()).
		Int("upserts", result.Upserts).
		Int("deletes", result.Deletes).
		Int("download_failed", result.DownloadFailed).
		Bool("cursor_persisted", result.CursorPersisted).
		Dur("duration", result.Duration).
		Msg("sync pass completed")

	c.bus.publish(models.Event{Kind: models.EventSyncEnd})

	if c.notifier != nil {
		if err = c.notifier.Publish(ctx, models.NotifyMessage{Kind: models.NotifySyncComplete}); err != nil {
			c.logger.Warn().Err(err).Msg("failed to broadcast sync completion")
		}
	}

	c.background.Add(1)
	go c.rebuildIndexSnapshot(c.Articles())

	return nil
}

// ForceFullSync implements Coordinator.
func (c *coordinator) ForceFullSync(ctx context.Context) error {
	c.discardCursor(c.logger.WithContext(ctx))
	return c.RequestSync(ctx)
}

// RefreshFromCache implements Coordinator.
func (c *coordinator) RefreshFromCache(ctx context.Context) error {
	articles, err := c.cache.GetAllArticles(ctx)
	if err != nil {
		return fmt.Errorf("refresh articles from cache: %w", err)
	}

	bodyIDs, err := c.cache.BodyIDs(ctx)
	if err != nil {
		return fmt.Errorf("refresh cached body ids: %w", err)
	}

	cached := make(map[string]bool, len(bodyIDs))
	for _, id := range bodyIDs {
		cached[id] = true
	}

	c.mu.Lock()
	c.articles = articles
	c.cachedIDs = cached
	c.mu.Unlock()

	c.publishArticles()
	return nil
}

// Mutate implements Coordinator.
func (c *coordinator) Mutate(ctx context.Context, id string, fn func(*models.Article)) error {
	ctx = c.logger.WithContext(ctx)

	c.mu.Lock()
	idx := c.indexOfLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Errorf("mutate article (id=%s): %w", id, store.ErrArticleNotFound)
	}

	before := c.articles[idx].Clone()
	updated := before.Clone()
	fn(&updated)
	updated.ID = before.ID
	updated.UpdatedAt = c.now().UnixMilli()
	c.articles[idx] = updated
	c.mu.Unlock()

	// Optimistic local apply: cache and subscribers see the change before any
	// network call is made.
	if err := c.cache.SaveArticles(ctx, updated); err != nil {
		c.upsertInMemory(before)
		return fmt.Errorf("save mutated article (id=%s): %w", id, err)
	}

	c.bus.publish(models.Event{Kind: models.EventArticleMutated, ArticleID: id, Action: "update"})
	c.publishArticles()
	c.broadcastMutation(ctx, id, "update")

	err := c.queue.enqueue(pendingWrite{
		articleID: id,
		action:    "update",
		execute: func(ctx context.Context) error {
			return c.drive.UploadArticle(ctx, updated, nil)
		},
		rollback: func(ctx context.Context) {
			c.revertMutation(ctx, before, "update")
		},
	})
	if err != nil {
		// The optimistic apply is already visible; a write that never reaches
		// the queue must be reverted here, not left to diverge.
		c.revertMutation(ctx, before, "update")
		return fmt.Errorf("queue remote update (id=%s): %w", id, err)
	}

	return nil
}

// Remove implements Coordinator.
func (c *coordinator) Remove(ctx context.Context, id string) error {
	ctx = c.logger.WithContext(ctx)

	c.mu.Lock()
	idx := c.indexOfLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Errorf("remove article (id=%s): %w", id, store.ErrArticleNotFound)
	}

	before := c.articles[idx].Clone()
	c.articles = append(c.articles[:idx], c.articles[idx+1:]...)
	delete(c.cachedIDs, id)
	c.mu.Unlock()

	if err := c.cache.DeleteArticle(ctx, id); err != nil {
		c.upsertInMemory(before)
		return fmt.Errorf("delete article from cache (id=%s): %w", id, err)
	}

	c.bus.publish(models.Event{Kind: models.EventArticleMutated, ArticleID: id, Action: "delete"})
	c.publishArticles()
	c.broadcastMutation(ctx, id, "delete")

	err := c.queue.enqueue(pendingWrite{
		articleID: id,
		action:    "delete",
		execute: func(ctx context.Context) error {
			return c.drive.DeleteArticle(ctx, id)
		},
		rollback: func(ctx context.Context) {
			c.revertMutation(ctx, before, "delete")
		},
	})
	if err != nil {
		c.revertMutation(ctx, before, "delete")
		return fmt.Errorf("queue remote delete (id=%s): %w", id, err)
	}

	return nil
}

// Body implements Coordinator.
func (c *coordinator) Body(ctx context.Context, id string) ([]byte, error) {
	ctx = c.logger.WithContext(ctx)

	body, err := c.cache.GetBody(ctx, id)
	if err == nil {
		return body, nil
	}
	if !errors.Is(err, store.ErrBodyNotFound) {
		return nil, fmt.Errorf("read cached body (id=%s): %w", id, err)
	}

	c.mu.RLock()
	idx := c.indexOfLocked(id)
	var contentURL string
	if idx >= 0 {
		contentURL = c.articles[idx].ContentURL
	}
	c.mu.RUnlock()

	if idx < 0 {
		return nil, fmt.Errorf("download body (id=%s): %w", id, store.ErrArticleNotFound)
	}
	if contentURL == "" {
		return nil, fmt.Errorf("download body (id=%s): %w", id, ErrNoContentURL)
	}

	body, err = c.drive.DownloadContent(ctx, contentURL)
	if err != nil {
		return nil, fmt.Errorf("download body (id=%s): %w", id, err)
	}

	if err = c.cache.SaveBody(ctx, id, body); err != nil {
		// The caller still gets the content; only the cache fast path is lost.
		c.logger.Warn().Err(err).Str("id", id).Msg("failed to cache downloaded body")
		return body, nil
	}

	c.mu.Lock()
	c.cachedIDs[id] = true
	c.mu.Unlock()

	return body, nil
}

// Articles implements Coordinator.
func (c *coordinator) Articles() []models.Article {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Article(nil), c.articles...)
}

// CachedIDs implements Coordinator.
func (c *coordinator) CachedIDs() map[string]bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make(map[string]bool, len(c.cachedIDs))
	for id, ok := range c.cachedIDs {
		ids[id] = ok
	}
	return ids
}

// Subscribe implements Coordinator.
func (c *coordinator) Subscribe(handler func(models.Event)) (unsubscribe func()) {
	return c.bus.subscribe(handler)
}

// Wait implements Coordinator.
func (c *coordinator) Wait() {
	c.background.Wait()
}

// Close implements Coordinator.
func (c *coordinator) Close() {
	c.queue.close()
	c.background.Wait()
}

// ── sync pass internals ──────────────────────────────────────────────────────

// syncPass fetches remote changes starting from cursor, reconciles them into
// the cache, and persists the results. An empty cursor triggers the cold
// path: index snapshot first, full enumeration as fallback.
func (c *coordinator) syncPass(ctx context.Context, cursor string) (models.SyncResult, error) {
	start := c.now()

	if cursor != "" {
		return c.incrementalSync(ctx, cursor, start)
	}

	snapshot, err := c.drive.FetchIndexSnapshot(ctx)
	if err != nil {
		// Contractually (nil, nil) on failure; guard anyway.
		c.logger.Warn().Err(err).Msg("index snapshot fetch failed, falling back to full enumeration")
		snapshot = nil
	}
	if snapshot != nil {
		return c.bootstrapSync(ctx, snapshot, start)
	}

	return c.fullSync(ctx, start)
}

// fullSync enumerates the entire remote folder and replaces the cache.
func (c *coordinator) fullSync(ctx context.Context, start time.Time) (models.SyncResult, error) {
	entries, newCursor, err := c.drive.PageChangeFeed(ctx, "")
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("enumerate remote folder: %w", err)
	}

	downloadIDs, deleteIDs := c.planner.SplitBootstrap(nil, entries)
	articles, failed := c.drive.DownloadArticleBatch(ctx, downloadIDs)

	// A full replace is only safe when the fetched set is complete. With any
	// download failure the batch is merged incrementally instead, so articles
	// whose re-download failed transiently keep their cached entries; the
	// withheld cursor re-enumerates them on the next pass.
	mode := models.SyncFull
	if failed > 0 {
		mode = models.SyncIncremental
	}

	batch := models.ChangeBatch{Mode: mode, Upserts: articles, Deletes: deleteIDs}
	return c.commit(ctx, batch, newCursor, failed, start)
}

// bootstrapSync applies the index snapshot as an authoritative full replace,
// then walks the change feed to pick up anything newer than the snapshot and
// to obtain a fresh cursor. Ids the snapshot already covers are not
// re-downloaded.
func (c *coordinator) bootstrapSync(ctx context.Context, snapshot *models.IndexSnapshot, start time.Time) (models.SyncResult, error) {
	merged := c.planner.Reconcile(nil, models.ChangeBatch{Mode: models.SyncFull, Upserts: snapshot.Articles})
	if err := c.cache.ReplaceArticles(ctx, merged); err != nil {
		return models.SyncResult{}, fmt.Errorf("persist index snapshot: %w", err)
	}

	c.mu.Lock()
	c.articles = merged
	c.mu.Unlock()
	c.publishArticles()

	entries, newCursor, err := c.drive.PageChangeFeed(ctx, "")
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("walk change feed after snapshot: %w", err)
	}

	downloadIDs, deleteIDs := c.planner.SplitBootstrap(merged, entries)
	articles, failed := c.drive.DownloadArticleBatch(ctx, downloadIDs)

	batch := models.ChangeBatch{Mode: models.SyncIncremental, Upserts: articles, Deletes: deleteIDs}
	return c.commit(ctx, batch, newCursor, failed, start)
}

// incrementalSync consumes the change feed from cursor onward. An expired
// cursor is discarded and the pass restarts from the cold path.
func (c *coordinator) incrementalSync(ctx context.Context, cursor string, start time.Time) (models.SyncResult, error) {
	entries, newCursor, err := c.drive.PageChangeFeed(ctx, cursor)
	if err != nil {
		if errors.Is(err, adapter.ErrCursorExpired) {
			c.logger.Info().Msg("change-feed cursor expired, restarting from full sync")
			c.discardCursor(ctx)
			return c.syncPass(ctx, "")
		}
		return models.SyncResult{}, fmt.Errorf("page change feed: %w", err)
	}

	downloadIDs, deleteIDs := c.planner.SplitBootstrap(nil, entries)
	articles, failed := c.drive.DownloadArticleBatch(ctx, downloadIDs)

	batch := models.ChangeBatch{Mode: models.SyncIncremental, Upserts: articles, Deletes: deleteIDs}
	return c.commit(ctx, batch, newCursor, failed, start)
}

// commit merges batch into the current state, persists the result, and
// advances the checkpoint. The cursor is written strictly after the merge is
// durable and only when every metadata download succeeded; a partially
// downloaded page must be re-consumed on the next sync, never skipped.
func (c *coordinator) commit(ctx context.Context, batch models.ChangeBatch, newCursor string, downloadFailed int, start time.Time) (models.SyncResult, error) {
	current := c.Articles()
	merged := c.planner.Reconcile(current, batch)

	if err := c.persistBatch(ctx, batch, merged); err != nil {
		return models.SyncResult{}, err
	}

	staleBodies := c.invalidateRegeneratedBodies(ctx, current, batch.Upserts)

	if err := c.cache.SetSetting(ctx, models.SettingLastSyncTime, strconv.FormatInt(c.now().UnixMilli(), 10)); err != nil {
		return models.SyncResult{}, fmt.Errorf("persist last sync time: %w", err)
	}

	cursorPersisted := false
	if downloadFailed == 0 && newCursor != "" {
		if err := c.cache.SetSetting(ctx, models.SettingChangeFeedCursor, newCursor); err != nil {
			return models.SyncResult{}, fmt.Errorf("persist change-feed cursor: %w", err)
		}
		cursorPersisted = true
	}

	c.mu.Lock()
	c.articles = merged
	for _, id := range batch.Deletes {
		delete(c.cachedIDs, id)
	}
	for _, id := range staleBodies {
		delete(c.cachedIDs, id)
	}
	c.mu.Unlock()
	c.publishArticles()

	return models.SyncResult{
		Mode:            batch.Mode,
		Upserts:         len(batch.Upserts),
		Deletes:         len(batch.Deletes),
		DownloadFailed:  downloadFailed,
		CursorPersisted: cursorPersisted,
		Duration:        c.now().Sub(start),
	}, nil
}

// invalidateRegeneratedBodies drops cached bodies for upserted articles whose
// remote size differs from the cached copy. A size change with unchanged id
// means the remote content was regenerated; the stored body must not outlive
// the metadata that described it. Returns the ids whose body was dropped.
func (c *coordinator) invalidateRegeneratedBodies(ctx context.Context, current []models.Article, upserts []models.Article) []string {
	prior := make(map[string]models.Article, len(current))
	for _, article := range current {
		prior[article.ID] = article
	}
	cached := c.CachedIDs()

	var stale []string
	for _, up := range upserts {
		was, ok := prior[up.ID]
		if !ok || was.Size == up.Size || !cached[up.ID] {
			continue
		}
		if err := c.cache.DeleteBody(ctx, up.ID); err != nil {
			// The id stays in cachedIDs: the old body is still served until
			// the next sync retries the invalidation.
			c.logger.Warn().Err(err).Str("id", up.ID).Msg("failed to drop regenerated article body")
			continue
		}
		stale = append(stale, up.ID)
	}

	return stale
}

// persistBatch makes the merge durable. Full mode swaps the whole table;
// incremental mode touches only the rows the batch mentions.
func (c *coordinator) persistBatch(ctx context.Context, batch models.ChangeBatch, merged []models.Article) error {
	if batch.Mode == models.SyncFull {
		if err := c.cache.ReplaceArticles(ctx, merged); err != nil {
			return fmt.Errorf("persist full reconciliation: %w", err)
		}
		return nil
	}

	deleted := make(map[string]bool, len(batch.Deletes))
	for _, id := range batch.Deletes {
		deleted[id] = true
	}

	upserts := make([]models.Article, 0, len(batch.Upserts))
	for _, article := range batch.Upserts {
		if !deleted[article.ID] {
			upserts = append(upserts, article)
		}
	}

	if len(upserts) > 0 {
		if err := c.cache.SaveArticles(ctx, upserts...); err != nil {
			return fmt.Errorf("persist upserted articles: %w", err)
		}
	}
	for _, id := range batch.Deletes {
		if err := c.cache.DeleteArticle(ctx, id); err != nil {
			return fmt.Errorf("persist article deletion (id=%s): %w", id, err)
		}
	}

	return nil
}

// rebuildIndexSnapshot regenerates the remote index snapshot so the next
// cold start can skip per-article requests. Failures only cost that fast
// path, so they are logged and dropped.
func (c *coordinator) rebuildIndexSnapshot(articles []models.Article) {
	defer c.background.Done()

	ctx := c.logger.WithContext(context.Background())
	snapshot := models.IndexSnapshot{
		Version:     models.IndexSnapshotVersion,
		GeneratedAt: c.now().UnixMilli(),
		Articles:    articles,
	}

	if err := c.drive.UploadIndexSnapshot(ctx, snapshot); err != nil {
		c.logger.Warn().Err(err).Msg("index snapshot rebuild failed")
	}
}

// ── helpers ──────────────────────────────────────────────────────────────────

// showCached surfaces whatever the local cache holds before any network
// traffic, and reports how many articles were shown. Cache read failures are
// logged, not fatal: the sync pass may still repopulate everything.
func (c *coordinator) showCached(ctx context.Context) int {
	if err := c.RefreshFromCache(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("failed to show cached articles before sync")
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.articles)
}

// syncCheckpoint reads the persisted change-feed cursor and last sync time.
// Absent settings mean a first run: empty cursor, zero time.
func (c *coordinator) syncCheckpoint(ctx context.Context) (cursor string, lastSync time.Time) {
	cursor, err := c.cache.GetSetting(ctx, models.SettingChangeFeedCursor)
	if err != nil && !errors.Is(err, store.ErrSettingNotFound) {
		c.logger.Warn().Err(err).Msg("failed to read change-feed cursor")
	}

	raw, err := c.cache.GetSetting(ctx, models.SettingLastSyncTime)
	if err != nil {
		if !errors.Is(err, store.ErrSettingNotFound) {
			c.logger.Warn().Err(err).Msg("failed to read last sync time")
		}
		return cursor, time.Time{}
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.logger.Warn().Err(err).Str("value", raw).Msg("malformed last sync time in settings")
		return cursor, time.Time{}
	}

	return cursor, time.UnixMilli(ms)
}

func (c *coordinator) discardCursor(ctx context.Context) {
	if err := c.cache.DeleteSetting(ctx, models.SettingChangeFeedCursor); err != nil {
		c.logger.Warn().Err(err).Msg("failed to discard change-feed cursor")
	}
}

// revertMutation restores the pre-mutation snapshot in the local cache and
// the in-memory list after a permanent remote write failure, and tells
// subscribers which article was reverted.
func (c *coordinator) revertMutation(ctx context.Context, before models.Article, action string) {
	if err := c.cache.SaveArticles(ctx, before); err != nil {
		c.logger.Error().Err(err).Str("id", before.ID).Msg("failed to restore article snapshot in cache")
	}

	c.upsertInMemory(before)

	c.bus.publish(models.Event{Kind: models.EventMutationReverted, ArticleID: before.ID, Action: action})
	c.publishArticles()
}

// upsertInMemory puts article back into the in-memory list, replacing by id
// or re-inserting at its sorted position.
func (c *coordinator) upsertInMemory(article models.Article) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx := c.indexOfLocked(article.ID); idx >= 0 {
		c.articles[idx] = article
		return
	}

	at := len(c.articles)
	for i, existing := range c.articles {
		if article.UpdatedAt > existing.UpdatedAt ||
			(article.UpdatedAt == existing.UpdatedAt && article.ID < existing.ID) {
			at = i
			break
		}
	}
	c.articles = append(c.articles[:at], append([]models.Article{article}, c.articles[at:]...)...)
}

// indexOfLocked returns the position of id in the article list, or -1.
// Callers must hold mu.
func (c *coordinator) indexOfLocked(id string) int {
	for i := range c.articles {
		if c.articles[i].ID == id {
			return i
		}
	}
	return -1
}

// publishArticles emits the current article list to subscribers.
func (c *coordinator) publishArticles() {
	c.bus.publish(models.Event{Kind: models.EventArticles, Articles: c.Articles()})
}

// broadcastMutation informs sibling instances about a local mutation so they
// can refresh from their cache.
func (c *coordinator) broadcastMutation(ctx context.Context, id, action string) {
	if c.notifier == nil {
		return
	}
	msg := models.NotifyMessage{Kind: models.NotifyRecordMutated, RecordID: id, Action: action}
	if err := c.notifier.Publish(ctx, msg); err != nil {
		c.logger.Warn().Err(err).Str("id", id).Msg("failed to broadcast record mutation")
	}
}
