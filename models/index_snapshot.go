package models

// IndexSnapshotVersion is the only snapshot layout this client understands.
// Any other version is treated as an absent snapshot, never as an error.
const IndexSnapshotVersion = 1

// IndexSnapshot is the precomputed full listing of article metadata stored
// remotely as a single JSON document. It shortcuts the cold-start case (no
// change-feed cursor) to one request instead of one request per article.
type IndexSnapshot struct {
	Version     int       `json:"version"`
	GeneratedAt int64     `json:"generated_at"`
	Articles    []Article `json:"articles"`
}
