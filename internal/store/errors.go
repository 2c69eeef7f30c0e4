package store

import "errors"

var (
	// ErrArticleNotFound is returned when an article id is absent from the
	// metadata table.
	ErrArticleNotFound = errors.New("article not found in local cache")
	// ErrBodyNotFound is returned when no content blob is cached for an id.
	ErrBodyNotFound = errors.New("article body not found in local cache")
	// ErrSettingNotFound is returned when a settings key has never been set.
	ErrSettingNotFound = errors.New("setting not found in local cache")
)
