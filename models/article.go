package models

// Article is one synchronized unit of the reading list. The local cache and
// the remote drive folder each hold a copy; the two are reconciled as whole
// records, never merged field-by-field (except through an explicit MergeFunc
// on a write conflict).
type Article struct {
	// ID is the immutable remote item identifier.
	ID string `json:"id"`

	// Title is the display title of the article.
	Title string `json:"title"`

	// Favorite marks the article as starred by the user.
	Favorite bool `json:"favorite"`

	// SharedWith lists recipients the article has been shared with.
	SharedWith []string `json:"shared_with,omitempty"`

	// ShareStatus is the opaque share-state value kept for the sharing flow.
	ShareStatus string `json:"share_status,omitempty"`

	// UpdatedAt is the last modification time in epoch milliseconds.
	UpdatedAt int64 `json:"updated_at"`

	// Size is the remote content size in bytes. A size change with unchanged
	// metadata signals that the remote content was regenerated.
	Size int64 `json:"size"`

	// ETag is the optimistic-concurrency token round-tripped from the last
	// read. Conditional writes send it as a precondition.
	ETag string `json:"etag,omitempty"`

	// ContentURL is the direct-download URL for the article body. Transient:
	// populated from change-feed entries, never persisted.
	ContentURL string `json:"content_url,omitempty"`
}

// Clone returns a deep copy of the article. SharedWith is the only reference
// field.
func (a Article) Clone() Article {
	c := a
	if a.SharedWith != nil {
		c.SharedWith = append([]string(nil), a.SharedWith...)
	}
	return c
}
