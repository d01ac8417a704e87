package analytics

import "time"

// Window is the half-open date range [Start, End) scoping every report query.
type Window struct {
	Start time.Time
	End   time.Time
}

// Row types returned by the repository, before report shaping.

type StatusCount struct {
	Status string
	Count  int64
}

type PriorityCount struct {
	Priority string
	Count    int64
}

type DailyCount struct {
	Date  time.Time
	Count int64
}

type EventStat struct {
	ID               uint
	Title            string
	EventDate        time.Time
	StartTime        *string
	Status           string
	Priority         string
	ParticipantCount int64
	CreatorName      *string
}

type MemberStat struct {
	MemberID   uint
	Name       string
	Department *string
	EventCount int64
}

type DepartmentStat struct {
	Department  string
	MemberCount int64
	EventCount  int64
}

// Report shapes, serialized as-is by the API layer.

type Period struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type OverviewMetrics struct {
	TotalEvents             int64   `json:"total_events"`
	CompletedEvents         int64   `json:"completed_events"`
	CompletionRate          float64 `json:"completion_rate"`
	TotalParticipants       int64   `json:"total_participants"`
	UniqueParticipants      int64   `json:"unique_participants"`
	AvgParticipantsPerEvent float64 `json:"avg_participants_per_event"`
}

type StatusBucket struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
	Label  string `json:"label"`
}

type PriorityBucket struct {
	Priority string `json:"priority"`
	Count    int64  `json:"count"`
	Label    string `json:"label"`
}

type DailyPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type OverviewReport struct {
	Period               Period           `json:"period"`
	Overview             OverviewMetrics  `json:"overview"`
	StatusDistribution   []StatusBucket   `json:"status_distribution"`
	PriorityDistribution []PriorityBucket `json:"priority_distribution"`
	DailyTrend           []DailyPoint     `json:"daily_trend"`
}

type EventRow struct {
	ID               uint    `json:"id"`
	Title            string  `json:"title"`
	EventDate        string  `json:"event_date"`
	StartTime        *string `json:"start_time"`
	Status           string  `json:"status"`
	Priority         string  `json:"priority"`
	ParticipantCount int64   `json:"participant_count"`
	CreatorName      *string `json:"creator_name"`
}

type EventsReport struct {
	Events    []EventRow `json:"events"`
	TopEvents []EventRow `json:"top_events"`
	Total     int        `json:"total"`
}

type MemberRow struct {
	MemberID   uint    `json:"member_id"`
	Name       string  `json:"name"`
	Department *string `json:"department"`
	EventCount int64   `json:"event_count"`
}

type DepartmentRow struct {
	Department         string  `json:"department"`
	MemberCount        int64   `json:"member_count"`
	EventCount         int64   `json:"event_count"`
	AvgEventsPerMember float64 `json:"avg_events_per_member"`
}

type MembersReport struct {
	MemberParticipation     []MemberRow     `json:"member_participation"`
	DepartmentParticipation []DepartmentRow `json:"department_participation"`
	TopParticipants         []MemberRow     `json:"top_participants"`
}
