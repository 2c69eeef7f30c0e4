package models

// ChangeEntry is one raw entry from the remote change feed. An entry is
// either an upsert candidate (carries a readable content URL) or a tombstone
// (deletion marker); entries with neither are folder noise and are skipped.
type ChangeEntry struct {
	ID         string `json:"id"`
	Tombstone  bool   `json:"deleted"`
	ContentURL string `json:"content_url,omitempty"`
	ETag       string `json:"etag,omitempty"`
	Size       int64  `json:"size"`
	UpdatedAt  int64  `json:"updated_at"`
}

// IsUpsert reports whether the entry is an upsert candidate.
func (e ChangeEntry) IsUpsert() bool {
	return !e.Tombstone && e.ContentURL != ""
}

// ChangePage is one page of the change feed. Exactly one of NextLink and
// DeltaCursor is set: NextLink continues paging, DeltaCursor is terminal and
// becomes the persisted checkpoint.
type ChangePage struct {
	Entries     []ChangeEntry `json:"entries"`
	NextLink    string        `json:"next_link,omitempty"`
	DeltaCursor string        `json:"delta_cursor,omitempty"`
}

// SyncMode selects how a ChangeBatch is merged into the cache.
type SyncMode int

const (
	// SyncFull replaces the entire cache with the batch contents.
	SyncFull SyncMode = iota
	// SyncIncremental applies upserts and deletes onto the existing cache.
	SyncIncremental
)

func (m SyncMode) String() string {
	if m == SyncFull {
		return "full"
	}
	return "incremental"
}

// ChangeBatch is the reconciler input: remote changes already fetched and
// classified, ready to be merged into the cache.
type ChangeBatch struct {
	Mode    SyncMode
	Upserts []Article
	Deletes []string
}
