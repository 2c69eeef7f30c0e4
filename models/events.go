package models

// EventKind identifies a coordinator event delivered to subscribers.
type EventKind string

const (
	// EventArticles carries the current article list (emitted on refresh,
	// after reconciliation, and after every optimistic mutation).
	EventArticles EventKind = "articles"
	// EventSyncStart marks the beginning of a sync pass.
	EventSyncStart EventKind = "sync-start"
	// EventSyncEnd marks a completed sync pass (successful or absorbed).
	EventSyncEnd EventKind = "sync-end"
	// EventSyncError carries a non-blocking sync error; cached data stays
	// visible.
	EventSyncError EventKind = "sync-error"
	// EventDivergence signals that the local cache may have drifted from the
	// remote store and a manual full refresh should be offered.
	EventDivergence EventKind = "divergence"
	// EventArticleMutated marks an optimistic local mutation of one article.
	EventArticleMutated EventKind = "article-mutated"
	// EventMutationReverted marks a rolled-back mutation after a permanent
	// remote write failure.
	EventMutationReverted EventKind = "mutation-reverted"
)

// Event is one coordinator notification. Fields beyond Kind are populated
// depending on the kind.
type Event struct {
	Kind      EventKind
	Articles  []Article
	ArticleID string
	Action    string
	Err       error
}
