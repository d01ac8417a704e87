package analytics

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeAnalyticsRepo struct {
	totalEvents        int64
	completedEvents    int64
	totalParticipants  int64
	uniqueParticipants int64
	statusCounts       []StatusCount
	priorityCounts     []PriorityCount
	dailyCounts        []DailyCount
	eventStats         []EventStat
	memberStats        []MemberStat
	departmentStats    []DepartmentStat

	err        error
	lastWindow Window
}

func (f *fakeAnalyticsRepo) CountEvents(ctx context.Context, w Window) (int64, error) {
	f.lastWindow = w
	return f.totalEvents, f.err
}

func (f *fakeAnalyticsRepo) CountCompletedEvents(ctx context.Context, w Window) (int64, error) {
	return f.completedEvents, f.err
}

func (f *fakeAnalyticsRepo) CountParticipations(ctx context.Context, w Window) (int64, error) {
	return f.totalParticipants, f.err
}

func (f *fakeAnalyticsRepo) CountUniqueParticipants(ctx context.Context, w Window) (int64, error) {
	return f.uniqueParticipants, f.err
}

func (f *fakeAnalyticsRepo) StatusCounts(ctx context.Context, w Window) ([]StatusCount, error) {
	return f.statusCounts, f.err
}

func (f *fakeAnalyticsRepo) PriorityCounts(ctx context.Context, w Window) ([]PriorityCount, error) {
	return f.priorityCounts, f.err
}

func (f *fakeAnalyticsRepo) DailyCounts(ctx context.Context, w Window) ([]DailyCount, error) {
	return f.dailyCounts, f.err
}

func (f *fakeAnalyticsRepo) EventStats(ctx context.Context, w Window) ([]EventStat, error) {
	f.lastWindow = w
	return f.eventStats, f.err
}

func (f *fakeAnalyticsRepo) MemberStats(ctx context.Context, w Window) ([]MemberStat, error) {
	f.lastWindow = w
	return f.memberStats, f.err
}

func (f *fakeAnalyticsRepo) DepartmentStats(ctx context.Context, w Window) ([]DepartmentStat, error) {
	return f.departmentStats, f.err
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func TestOverviewEmptyMonth(t *testing.T) {
	svc := NewService(&fakeAnalyticsRepo{})

	report, err := svc.Overview(context.Background(), 2026, 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if report.Overview.TotalEvents != 0 {
		t.Fatalf("expected 0 events, got %d", report.Overview.TotalEvents)
	}
	if report.Overview.CompletionRate != 0 {
		t.Fatalf("expected completion rate 0, got %v", report.Overview.CompletionRate)
	}
	if report.Overview.AvgParticipantsPerEvent != 0 {
		t.Fatalf("expected avg participants 0, got %v", report.Overview.AvgParticipantsPerEvent)
	}
	if len(report.StatusDistribution) != 0 {
		t.Fatalf("expected empty status distribution, got %d", len(report.StatusDistribution))
	}
	if report.StatusDistribution == nil || report.PriorityDistribution == nil || report.DailyTrend == nil {
		t.Fatal("expected empty slices, got nil")
	}
}

func TestOverviewMetrics(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		totalEvents:        3,
		completedEvents:    1,
		totalParticipants:  7,
		uniqueParticipants: 4,
		statusCounts: []StatusCount{
			{Status: "completed", Count: 2},
			{Status: "pending", Count: 1},
		},
		priorityCounts: []PriorityCount{
			{Priority: "high", Count: 3},
		},
		dailyCounts: []DailyCount{
			{Date: date(2026, 3, 2), Count: 2},
			{Date: date(2026, 3, 15), Count: 1},
		},
	}
	svc := NewService(repo)

	report, err := svc.Overview(context.Background(), 2026, 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// 1/3 = 33.333... rounds to 33.3
	if report.Overview.CompletionRate != 33.3 {
		t.Fatalf("expected completion rate 33.3, got %v", report.Overview.CompletionRate)
	}
	// 7/3 = 2.333... rounds to 2.3
	if report.Overview.AvgParticipantsPerEvent != 2.3 {
		t.Fatalf("expected avg participants 2.3, got %v", report.Overview.AvgParticipantsPerEvent)
	}
	if report.Overview.TotalParticipants != 7 || report.Overview.UniqueParticipants != 4 {
		t.Fatalf("unexpected participant counts: %+v", report.Overview)
	}

	if report.Period.StartDate != "2026-03-01" || report.Period.EndDate != "2026-03-31" {
		t.Fatalf("unexpected period: %+v", report.Period)
	}

	if report.StatusDistribution[0].Label != "已完成" {
		t.Fatalf("expected label 已完成, got %s", report.StatusDistribution[0].Label)
	}
	if report.PriorityDistribution[0].Label != "高" {
		t.Fatalf("expected label 高, got %s", report.PriorityDistribution[0].Label)
	}

	// Days without events stay absent.
	if len(report.DailyTrend) != 2 {
		t.Fatalf("expected 2 trend points, got %d", len(report.DailyTrend))
	}
	if report.DailyTrend[0].Date != "2026-03-02" || report.DailyTrend[0].Count != 2 {
		t.Fatalf("unexpected trend point: %+v", report.DailyTrend[0])
	}
}

func TestOverviewLabelFallback(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		totalEvents:  1,
		statusCounts: []StatusCount{{Status: "archived", Count: 1}},
	}
	svc := NewService(repo)

	report, err := svc.Overview(context.Background(), 2026, 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.StatusDistribution[0].Label != "archived" {
		t.Fatalf("expected raw value fallback, got %s", report.StatusDistribution[0].Label)
	}
}

func TestOverviewDecemberWindow(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	svc := NewService(repo)

	report, err := svc.Overview(context.Background(), 2026, 12)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !repo.lastWindow.Start.Equal(date(2026, 12, 1)) {
		t.Fatalf("expected window start 2026-12-01, got %v", repo.lastWindow.Start)
	}
	if !repo.lastWindow.End.Equal(date(2027, 1, 1)) {
		t.Fatalf("expected window end 2027-01-01, got %v", repo.lastWindow.End)
	}
	if report.Period.EndDate != "2026-12-31" {
		t.Fatalf("expected period end 2026-12-31, got %s", report.Period.EndDate)
	}
}

func TestOverviewInvalidMonth(t *testing.T) {
	svc := NewService(&fakeAnalyticsRepo{})

	if _, err := svc.Overview(context.Background(), 2026, 13); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
	if _, err := svc.Overview(context.Background(), -5, 6); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
}

func TestOverviewDefaultsToCurrentMonth(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	svc := NewService(repo)
	svc.now = func() time.Time { return date(2026, 8, 30) }

	report, err := svc.Overview(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.Period.Year != 2026 || report.Period.Month != 8 {
		t.Fatalf("expected period 2026-08, got %+v", report.Period)
	}
	if !repo.lastWindow.Start.Equal(date(2026, 8, 1)) {
		t.Fatalf("expected window start 2026-08-01, got %v", repo.lastWindow.Start)
	}
}

func TestOverviewRepoError(t *testing.T) {
	repoErr := errors.New("connection lost")
	svc := NewService(&fakeAnalyticsRepo{err: repoErr})

	if _, err := svc.Overview(context.Background(), 2026, 3); !errors.Is(err, repoErr) {
		t.Fatalf("expected repo error to propagate, got %v", err)
	}
}

func TestEventsTopFive(t *testing.T) {
	start := "09:00"
	repo := &fakeAnalyticsRepo{
		eventStats: []EventStat{
			{ID: 1, Title: "A", EventDate: date(2026, 3, 20), ParticipantCount: 2, Status: "completed", Priority: "high"},
			{ID: 2, Title: "B", EventDate: date(2026, 3, 10), ParticipantCount: 0, Status: "pending", Priority: "low"},
			{ID: 3, Title: "C", EventDate: date(2026, 3, 5), StartTime: &start, ParticipantCount: 1, Status: "cancelled", Priority: "medium"},
		},
	}
	svc := NewService(repo)

	report, err := svc.Events(context.Background(), 2026, 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if report.Total != 3 || len(report.Events) != 3 {
		t.Fatalf("expected 3 events, got total=%d len=%d", report.Total, len(report.Events))
	}

	// Full list keeps repository order, top re-sorts by participants.
	if report.Events[0].ID != 1 || report.Events[1].ID != 2 || report.Events[2].ID != 3 {
		t.Fatalf("unexpected event order: %+v", report.Events)
	}
	if report.TopEvents[0].ID != 1 || report.TopEvents[1].ID != 3 || report.TopEvents[2].ID != 2 {
		t.Fatalf("unexpected top order: %+v", report.TopEvents)
	}

	// Cancelled events still count.
	if report.TopEvents[1].Status != "cancelled" {
		t.Fatalf("expected cancelled event in top list, got %s", report.TopEvents[1].Status)
	}
}

func TestEventsTopTiesKeepListOrder(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		eventStats: []EventStat{
			{ID: 1, Title: "newest", EventDate: date(2026, 3, 30), ParticipantCount: 2},
			{ID: 2, Title: "older", EventDate: date(2026, 3, 10), ParticipantCount: 2},
			{ID: 3, Title: "oldest", EventDate: date(2026, 3, 1), ParticipantCount: 5},
		},
	}
	svc := NewService(repo)

	report, err := svc.Events(context.Background(), 2026, 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if report.TopEvents[0].ID != 3 {
		t.Fatalf("expected event 3 first, got %d", report.TopEvents[0].ID)
	}
	// Tied events keep their newest-first relative order.
	if report.TopEvents[1].ID != 1 || report.TopEvents[2].ID != 2 {
		t.Fatalf("unexpected tie order: %+v", report.TopEvents)
	}
}

func TestEventsTopTruncatedToFive(t *testing.T) {
	stats := make([]EventStat, 8)
	for i := range stats {
		stats[i] = EventStat{ID: uint(i + 1), EventDate: date(2026, 3, 28-i), ParticipantCount: int64(i)}
	}
	svc := NewService(&fakeAnalyticsRepo{eventStats: stats})

	report, err := svc.Events(context.Background(), 2026, 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(report.Events) != 8 {
		t.Fatalf("expected full list untouched, got %d", len(report.Events))
	}
	if len(report.TopEvents) != 5 {
		t.Fatalf("expected 5 top events, got %d", len(report.TopEvents))
	}
	if report.TopEvents[0].ID != 8 {
		t.Fatalf("expected best-attended event first, got %d", report.TopEvents[0].ID)
	}
}

func TestEventsStartTimeTrimmed(t *testing.T) {
	start := "09:30:00"
	repo := &fakeAnalyticsRepo{
		eventStats: []EventStat{{ID: 1, EventDate: date(2026, 3, 1), StartTime: &start}},
	}
	svc := NewService(repo)

	report, err := svc.Events(context.Background(), 2026, 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.Events[0].StartTime == nil || *report.Events[0].StartTime != "09:30" {
		t.Fatalf("expected trimmed start time, got %v", report.Events[0].StartTime)
	}
}

func TestMembersReport(t *testing.T) {
	engineering := "Engineering"
	repo := &fakeAnalyticsRepo{
		memberStats: []MemberStat{
			{MemberID: 1, Name: "Zhang", Department: &engineering, EventCount: 4},
			{MemberID: 2, Name: "Li", EventCount: 2},
		},
		departmentStats: []DepartmentStat{
			{Department: "Engineering", MemberCount: 2, EventCount: 4},
		},
	}
	svc := NewService(repo)

	report, err := svc.Members(context.Background(), 2026, 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(report.MemberParticipation) != 2 {
		t.Fatalf("expected 2 members, got %d", len(report.MemberParticipation))
	}
	if report.MemberParticipation[1].Department != nil {
		t.Fatal("expected nil department to pass through")
	}
	if report.DepartmentParticipation[0].AvgEventsPerMember != 2.0 {
		t.Fatalf("expected avg 2.0, got %v", report.DepartmentParticipation[0].AvgEventsPerMember)
	}
	if len(report.TopParticipants) != 2 {
		t.Fatalf("expected 2 top participants, got %d", len(report.TopParticipants))
	}
	if report.TopParticipants[0].MemberID != 1 {
		t.Fatalf("expected member 1 first, got %d", report.TopParticipants[0].MemberID)
	}
}

func TestMembersTopTenPrefix(t *testing.T) {
	stats := make([]MemberStat, 14)
	for i := range stats {
		stats[i] = MemberStat{MemberID: uint(i + 1), EventCount: int64(20 - i)}
	}
	svc := NewService(&fakeAnalyticsRepo{memberStats: stats})

	report, err := svc.Members(context.Background(), 2026, 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(report.MemberParticipation) != 14 {
		t.Fatalf("expected full member list, got %d", len(report.MemberParticipation))
	}
	if len(report.TopParticipants) != 10 {
		t.Fatalf("expected 10 top participants, got %d", len(report.TopParticipants))
	}
	for i, row := range report.TopParticipants {
		if row.MemberID != report.MemberParticipation[i].MemberID {
			t.Fatalf("top list must be a prefix of the member list, mismatch at %d", i)
		}
	}
}

func TestMembersEmptyMonth(t *testing.T) {
	svc := NewService(&fakeAnalyticsRepo{})

	report, err := svc.Members(context.Background(), 2026, 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.MemberParticipation == nil || report.DepartmentParticipation == nil || report.TopParticipants == nil {
		t.Fatal("expected empty slices, got nil")
	}
	if len(report.MemberParticipation) != 0 {
		t.Fatalf("expected no members, got %d", len(report.MemberParticipation))
	}
}

func TestRound1HalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{2.25, 2.3},
		{2.35, 2.4},
		{33.333, 33.3},
		{66.666, 66.7},
		{0, 0},
	}
	for _, tc := range cases {
		if got := round1(tc.in); got != tc.want {
			t.Fatalf("round1(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
