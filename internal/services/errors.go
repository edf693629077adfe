package services

import "errors"

// Analytics service errors
var (
	// Snapshot errors
	ErrNoSnapshot    = errors.New("no snapshot loaded: refresh required")
	ErrSnapshotEmpty = errors.New("snapshot holds no transaction records")

	// Request errors
	ErrInvalidMetric = errors.New("invalid metric")
	ErrInvalidWindow = errors.New("invalid month window")

	// General errors
	ErrInvalidInput       = errors.New("invalid input")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)
