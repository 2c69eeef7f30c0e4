// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sort"

	"github.com/MKhiriev/go-readsync/models"
)

// reconciler is the concrete implementation of Reconciler.
// It performs purely in-memory merges of cache state and change batches;
// no storage layer or logger is required because the operation is stateless
// and produces no side effects.
type reconciler struct{}

// NewReconciler constructs a Reconciler ready for use.
// Because Reconcile and SplitBootstrap are stateless, in-memory operations,
// no dependencies (storage, config, logger) are needed.
func NewReconciler() Reconciler {
	return &reconciler{}
}

// Reconcile implements Reconciler.
//
// Full mode discards current entirely: the batch is authoritative and
// complete, so the new state is exactly its upserts minus its deletes.
// Incremental mode builds an O(1) index of current, replaces or inserts each
// upsert by id, then removes each deleted id; articles not mentioned by the
// batch are left untouched.
//
// Deletes are applied after upserts in both modes, which is what makes the
// delete-wins tie-break hold: an id present on both lists ends up absent.
// Re-upserting an identical article or deleting an absent id is a no-op, so
// replaying a batch converges to the same state.
func (r *reconciler) Reconcile(current []models.Article, batch models.ChangeBatch) []models.Article {
	index := make(map[string]models.Article)

	if batch.Mode == models.SyncIncremental {
		for _, article := range current {
			index[article.ID] = article
		}
	}

	for _, article := range batch.Upserts {
		index[article.ID] = article
	}

	for _, id := range batch.Deletes {
		delete(index, id)
	}

	merged := make([]models.Article, 0, len(index))
	for _, article := range index {
		merged = append(merged, article)
	}

	// Stable UI order: newest first, id breaks ties deterministically.
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].UpdatedAt != merged[j].UpdatedAt {
			return merged[i].UpdatedAt > merged[j].UpdatedAt
		}
		return merged[i].ID < merged[j].ID
	})

	return merged
}

// SplitBootstrap implements Reconciler.
//
// After an index snapshot has been applied, the follow-up change-feed walk
// exists to pick up anything newer than the snapshot and to obtain a fresh
// cursor. Entries whose ids the snapshot already supplied carry no new
// metadata and are skipped; entries it does not cover must be downloaded.
// Tombstones always win: a tombstoned id is deleted even if the feed also
// carries an upsert for it.
func (r *reconciler) SplitBootstrap(snapshot []models.Article, entries []models.ChangeEntry) (downloadIDs, deleteIDs []string) {
	covered := make(map[string]bool, len(snapshot))
	for _, article := range snapshot {
		covered[article.ID] = true
	}

	tombstoned := make(map[string]bool)
	for _, entry := range entries {
		if entry.Tombstone {
			tombstoned[entry.ID] = true
		}
	}

	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if seen[entry.ID] {
			continue
		}
		seen[entry.ID] = true

		switch {
		case tombstoned[entry.ID]:
			deleteIDs = append(deleteIDs, entry.ID)
		case entry.IsUpsert() && !covered[entry.ID]:
			downloadIDs = append(downloadIDs, entry.ID)
		}
	}

	return downloadIDs, deleteIDs
}
