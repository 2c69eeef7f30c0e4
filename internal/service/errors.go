package service

import "errors"

var (
	// ErrEmptyCache is returned by RequestSync when the remote fetch failed
	// and the local cache holds nothing to fall back on.
	ErrEmptyCache = errors.New("sync failed and local cache is empty")

	// ErrNoContentURL is returned by Body when the article content is not
	// cached and no download URL is known for it yet.
	ErrNoContentURL = errors.New("no content url known for article")

	// ErrQueueClosed is returned when a mutation is requested after the write
	// queue has been shut down.
	ErrQueueClosed = errors.New("write queue is closed")

	// ErrQueueFull is returned when the write queue buffer is exhausted, e.g.
	// during a long remote outage with the worker parked in backoff.
	ErrQueueFull = errors.New("write queue is full")
)
