package models

// Cross-instance message vocabulary. Delivery is best-effort: siblings react
// by refreshing from the local cache only, never by starting a remote sync.
const (
	NotifySyncComplete    = "sync-complete"
	NotifyRecordMutated   = "record-mutated"
	NotifySettingsUpdated = "settings-updated"
	NotifySessionChanged  = "session-changed"
)

// NotifyMessage is one fan-out message between sibling client instances.
type NotifyMessage struct {
	// Instance is the sender's instance ID; receivers drop their own messages.
	Instance string `json:"instance"`
	Kind     string `json:"kind"`
	RecordID string `json:"record_id,omitempty"`
	Action   string `json:"action,omitempty"`
	SentAt   int64  `json:"sent_at"`
}
