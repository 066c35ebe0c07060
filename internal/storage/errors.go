package storage

import "errors"

// ErrEmptyBatch is returned by SaveBatch when there is nothing to write.
var ErrEmptyBatch = errors.New("empty batch")
