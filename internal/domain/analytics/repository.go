package analytics

import "context"

// Repository provides the read-only aggregates the reports are built from.
// Implementations must omit empty groups rather than zero-filling them, and
// return failures as-is: the service never substitutes partial results.
type Repository interface {
	CountEvents(ctx context.Context, w Window) (int64, error)
	CountCompletedEvents(ctx context.Context, w Window) (int64, error)

	// CountParticipations counts participation rows: a member attending
	// three events in the window counts three times.
	CountParticipations(ctx context.Context, w Window) (int64, error)

	// CountUniqueParticipants counts distinct members across the window.
	CountUniqueParticipants(ctx context.Context, w Window) (int64, error)

	StatusCounts(ctx context.Context, w Window) ([]StatusCount, error)
	PriorityCounts(ctx context.Context, w Window) ([]PriorityCount, error)

	// DailyCounts is ordered by date ascending.
	DailyCounts(ctx context.Context, w Window) ([]DailyCount, error)

	// EventStats is ordered by event_date descending, ties by start_time
	// ascending with nulls first, then id.
	EventStats(ctx context.Context, w Window) ([]EventStat, error)

	// MemberStats is ordered by event_count descending, ties by member id.
	MemberStats(ctx context.Context, w Window) ([]MemberStat, error)

	// DepartmentStats excludes members without a department.
	DepartmentStats(ctx context.Context, w Window) ([]DepartmentStat, error)
}
