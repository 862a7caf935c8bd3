package service

import "errors"

var (
	// ErrUnknownFamily indicates a family name with no registered service
	ErrUnknownFamily = errors.New("unknown resource family")
	// ErrStale is returned for a tracked request superseded by a newer one
	ErrStale = errors.New("request superseded by a newer request")
)
