package event

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id uint) (*Event, error)
	Save(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id uint) error

	// List returns events matching the filter ordered by event_date ascending,
	// then start_time ascending with nulls first, then id.
	List(ctx context.Context, filter ListFilter) ([]Event, error)

	// Upcoming returns non-cancelled events with event_date in [from, to],
	// same ordering as List.
	Upcoming(ctx context.Context, from, to time.Time) ([]Event, error)

	ListParticipants(ctx context.Context, eventID uint) ([]Participant, error)
	AddMembers(ctx context.Context, eventID uint, memberIDs []uint) error
	ReplaceMembers(ctx context.Context, eventID uint, memberIDs []uint) error

	// FilterExistingMembers drops ids that do not reference a member row.
	FilterExistingMembers(ctx context.Context, memberIDs []uint) ([]uint, error)

	// CreatorUsername returns nil when the user row is gone.
	CreatorUsername(ctx context.Context, userID uint) (*string, error)
}
