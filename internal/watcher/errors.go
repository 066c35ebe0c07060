package watcher

import "errors"

var (
	// ErrScrapeFailed means no usable batch was obtained; state is untouched.
	ErrScrapeFailed = errors.New("scrape failed")
	// ErrPersistFailed means the identity set could not be written.
	ErrPersistFailed = errors.New("persist failed")
)
