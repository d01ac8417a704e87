package event

import "errors"

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidPriority = errors.New("invalid priority")
)
