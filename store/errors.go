package store

import "errors"

// ErrUnknownBackend indicates an unsupported store.backend value
var ErrUnknownBackend = errors.New("unknown store backend")
