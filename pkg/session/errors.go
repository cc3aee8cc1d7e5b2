package session

import "errors"

var (
	ErrSnapshotNotFound = errors.New("session snapshot not found")
	ErrInvalidSnapshot  = errors.New("invalid session snapshot")
	ErrInvalidKind      = errors.New("invalid identity kind")
)
