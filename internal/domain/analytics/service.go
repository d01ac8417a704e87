package analytics

import (
	"context"
	"math"
	"sort"
	"time"
)

const topEventsCount = 5
const topParticipantsCount = 10

// Service computes the three monthly reports. Every call recomputes from live
// data: there is no cache, so concurrent calls need no coordination.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Overview aggregates the month's event totals, participation counts,
// status/priority distributions and the daily trend.
func (s *Service) Overview(ctx context.Context, year, month int) (*OverviewReport, error) {
	window, year, month, err := s.resolveWindow(year, month)
	if err != nil {
		return nil, err
	}

	totalEvents, err := s.repo.CountEvents(ctx, window)
	if err != nil {
		return nil, err
	}
	completedEvents, err := s.repo.CountCompletedEvents(ctx, window)
	if err != nil {
		return nil, err
	}
	totalParticipants, err := s.repo.CountParticipations(ctx, window)
	if err != nil {
		return nil, err
	}
	uniqueParticipants, err := s.repo.CountUniqueParticipants(ctx, window)
	if err != nil {
		return nil, err
	}
	statusCounts, err := s.repo.StatusCounts(ctx, window)
	if err != nil {
		return nil, err
	}
	priorityCounts, err := s.repo.PriorityCounts(ctx, window)
	if err != nil {
		return nil, err
	}
	dailyCounts, err := s.repo.DailyCounts(ctx, window)
	if err != nil {
		return nil, err
	}

	completionRate := 0.0
	avgParticipants := 0.0
	if totalEvents > 0 {
		completionRate = round1(float64(completedEvents) / float64(totalEvents) * 100)
		avgParticipants = round1(float64(totalParticipants) / float64(totalEvents))
	}

	statuses := make([]StatusBucket, 0, len(statusCounts))
	for _, row := range statusCounts {
		statuses = append(statuses, StatusBucket{
			Status: row.Status,
			Count:  row.Count,
			Label:  StatusLabel(row.Status),
		})
	}

	priorities := make([]PriorityBucket, 0, len(priorityCounts))
	for _, row := range priorityCounts {
		priorities = append(priorities, PriorityBucket{
			Priority: row.Priority,
			Count:    row.Count,
			Label:    PriorityLabel(row.Priority),
		})
	}

	trend := make([]DailyPoint, 0, len(dailyCounts))
	for _, row := range dailyCounts {
		trend = append(trend, DailyPoint{
			Date:  row.Date.Format("2006-01-02"),
			Count: row.Count,
		})
	}

	return &OverviewReport{
		Period: periodFor(window, year, month),
		Overview: OverviewMetrics{
			TotalEvents:             totalEvents,
			CompletedEvents:         completedEvents,
			CompletionRate:          completionRate,
			TotalParticipants:       totalParticipants,
			UniqueParticipants:      uniqueParticipants,
			AvgParticipantsPerEvent: avgParticipants,
		},
		StatusDistribution:   statuses,
		PriorityDistribution: priorities,
		DailyTrend:           trend,
	}, nil
}

// Events lists the month's events newest-first with participant counts, plus
// the five best-attended ones. The top list is a stable re-sort of the full
// list, so ties keep their newest-first order.
func (s *Service) Events(ctx context.Context, year, month int) (*EventsReport, error) {
	window, _, _, err := s.resolveWindow(year, month)
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.EventStats(ctx, window)
	if err != nil {
		return nil, err
	}

	events := make([]EventRow, 0, len(stats))
	for _, row := range stats {
		events = append(events, EventRow{
			ID:               row.ID,
			Title:            row.Title,
			EventDate:        row.EventDate.Format("2006-01-02"),
			StartTime:        shortTime(row.StartTime),
			Status:           row.Status,
			Priority:         row.Priority,
			ParticipantCount: row.ParticipantCount,
			CreatorName:      row.CreatorName,
		})
	}

	top := make([]EventRow, len(events))
	copy(top, events)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].ParticipantCount > top[j].ParticipantCount
	})
	if len(top) > topEventsCount {
		top = top[:topEventsCount]
	}

	return &EventsReport{Events: events, TopEvents: top, Total: len(events)}, nil
}

// Members reports per-member and per-department participation. Top
// participants are the first ten of the member list, order untouched.
func (s *Service) Members(ctx context.Context, year, month int) (*MembersReport, error) {
	window, _, _, err := s.resolveWindow(year, month)
	if err != nil {
		return nil, err
	}

	memberStats, err := s.repo.MemberStats(ctx, window)
	if err != nil {
		return nil, err
	}
	departmentStats, err := s.repo.DepartmentStats(ctx, window)
	if err != nil {
		return nil, err
	}

	members := make([]MemberRow, 0, len(memberStats))
	for _, row := range memberStats {
		members = append(members, MemberRow{
			MemberID:   row.MemberID,
			Name:       row.Name,
			Department: row.Department,
			EventCount: row.EventCount,
		})
	}

	departments := make([]DepartmentRow, 0, len(departmentStats))
	for _, row := range departmentStats {
		avg := 0.0
		if row.MemberCount > 0 {
			avg = round1(float64(row.EventCount) / float64(row.MemberCount))
		}
		departments = append(departments, DepartmentRow{
			Department:         row.Department,
			MemberCount:        row.MemberCount,
			EventCount:         row.EventCount,
			AvgEventsPerMember: avg,
		})
	}

	top := members
	if len(top) > topParticipantsCount {
		top = top[:topParticipantsCount]
	}
	topCopy := make([]MemberRow, len(top))
	copy(topCopy, top)

	return &MembersReport{
		MemberParticipation:     members,
		DepartmentParticipation: departments,
		TopParticipants:         topCopy,
	}, nil
}

// resolveWindow applies current-date defaults, then validates.
func (s *Service) resolveWindow(year, month int) (Window, int, int, error) {
	if year == 0 || month == 0 {
		today := s.now()
		if year == 0 {
			year = today.Year()
		}
		if month == 0 {
			month = int(today.Month())
		}
	}

	window, err := MonthWindow(year, month)
	if err != nil {
		return Window{}, 0, 0, err
	}
	return window, year, month, nil
}

func periodFor(window Window, year, month int) Period {
	return Period{
		Year:      year,
		Month:     month,
		StartDate: window.Start.Format("2006-01-02"),
		EndDate:   window.End.AddDate(0, 0, -1).Format("2006-01-02"),
	}
}

// round1 rounds half away from zero to one decimal.
func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

// shortTime trims "HH:MM:SS" down to "HH:MM" for the event report.
func shortTime(value *string) *string {
	if value == nil || len(*value) < 5 {
		return value
	}
	trimmed := (*value)[:5]
	return &trimmed
}
