package analytics

import "errors"

// ErrInvalidWindow means the year/month pair does not form a calendar month.
var ErrInvalidWindow = errors.New("invalid year/month window")
