package models

import "time"

// Settings keys persisted in the local cache settings table.
const (
	SettingChangeFeedCursor = "change_feed_cursor"
	SettingLastSyncTime     = "last_sync_time"
)

// SyncResult summarizes one completed sync pass.
type SyncResult struct {
	Mode            SyncMode
	Upserts         int
	Deletes         int
	DownloadFailed  int
	CursorPersisted bool
	Duration        time.Duration
}
