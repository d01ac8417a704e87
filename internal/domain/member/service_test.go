package member

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeMemberRepo struct {
	records     map[uint]*Member
	eventCounts map[uint]int64
	nextID      uint
	lastFilter  ListFilter
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{
		records:     make(map[uint]*Member),
		eventCounts: make(map[uint]int64),
		nextID:      1,
	}
}

func (f *fakeMemberRepo) Create(ctx context.Context, record *Member) error {
	record.ID = f.nextID
	f.nextID++
	stored := *record
	f.records[record.ID] = &stored
	return nil
}

func (f *fakeMemberRepo) GetByID(ctx context.Context, id uint) (*Member, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, ErrMemberNotFound
	}
	result := *record
	return &result, nil
}

func (f *fakeMemberRepo) Save(ctx context.Context, record *Member) error {
	stored := *record
	f.records[record.ID] = &stored
	return nil
}

func (f *fakeMemberRepo) Delete(ctx context.Context, id uint) error {
	delete(f.records, id)
	return nil
}

func (f *fakeMemberRepo) List(ctx context.Context, filter ListFilter) ([]Member, int64, error) {
	f.lastFilter = filter
	var matched []Member
	for _, record := range f.records {
		if filter.IsActive != nil && record.IsActive != *filter.IsActive {
			continue
		}
		if filter.Search != "" && !strings.Contains(record.Name, filter.Search) {
			continue
		}
		matched = append(matched, *record)
	}
	total := int64(len(matched))
	offset := (filter.Page - 1) * filter.PerPage
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + filter.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeMemberRepo) CountByActive(ctx context.Context, active bool) (int64, error) {
	var count int64
	for _, record := range f.records {
		if record.IsActive == active {
			count++
		}
	}
	return count, nil
}

func (f *fakeMemberRepo) DepartmentCounts(ctx context.Context) ([]DepartmentCount, error) {
	counts := make(map[string]int64)
	for _, record := range f.records {
		if !record.IsActive || record.Department == nil {
			continue
		}
		counts[*record.Department]++
	}
	var result []DepartmentCount
	for name, count := range counts {
		result = append(result, DepartmentCount{Name: name, Count: count})
	}
	return result, nil
}

func (f *fakeMemberRepo) CountEvents(ctx context.Context, memberID uint) (int64, error) {
	return f.eventCounts[memberID], nil
}

func TestCreateMemberRequiresName(t *testing.T) {
	svc := NewService(newFakeMemberRepo())

	if _, err := svc.Create(context.Background(), CreateMemberInput{Name: "  "}); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestCreateMemberDefaultsActive(t *testing.T) {
	svc := NewService(newFakeMemberRepo())

	record, err := svc.Create(context.Background(), CreateMemberInput{Name: "Zhang"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !record.IsActive {
		t.Fatal("expected new member to be active")
	}
}

func TestGetMemberIncludesEventCount(t *testing.T) {
	repo := newFakeMemberRepo()
	svc := NewService(repo)

	record, err := svc.Create(context.Background(), CreateMemberInput{Name: "Zhang"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	repo.eventCounts[record.ID] = 3

	detail, err := svc.Get(context.Background(), record.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if detail.EventCount != 3 {
		t.Fatalf("expected event count 3, got %d", detail.EventCount)
	}
}

func TestUpdateMemberPartial(t *testing.T) {
	repo := newFakeMemberRepo()
	svc := NewService(repo)

	dept := "Engineering"
	record, err := svc.Create(context.Background(), CreateMemberInput{Name: "Zhang", Department: &dept})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	inactive := false
	updated, err := svc.Update(context.Background(), record.ID, UpdateMemberInput{IsActive: &inactive})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.IsActive {
		t.Fatal("expected member deactivated")
	}
	if updated.Department == nil || *updated.Department != "Engineering" {
		t.Fatal("untouched fields must survive a partial update")
	}
}

func TestDeleteMissingMember(t *testing.T) {
	svc := NewService(newFakeMemberRepo())

	if err := svc.Delete(context.Background(), 42); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestListNormalizesPagination(t *testing.T) {
	repo := newFakeMemberRepo()
	svc := NewService(repo)

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(context.Background(), CreateMemberInput{Name: "Zhang"}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	result, err := svc.List(context.Background(), ListFilter{Page: 0, PerPage: 0})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.lastFilter.Page != 1 || repo.lastFilter.PerPage != 50 {
		t.Fatalf("expected page 1 per_page 50, got %+v", repo.lastFilter)
	}
	if result.Total != 3 || result.Pages != 1 || result.CurrentPage != 1 {
		t.Fatalf("unexpected list result: %+v", result)
	}

	if _, err := svc.List(context.Background(), ListFilter{PerPage: 10000}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.lastFilter.PerPage != 200 {
		t.Fatalf("expected per_page capped at 200, got %d", repo.lastFilter.PerPage)
	}
}

func TestListPagesRoundUp(t *testing.T) {
	repo := newFakeMemberRepo()
	svc := NewService(repo)

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(context.Background(), CreateMemberInput{Name: "Zhang"}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	result, err := svc.List(context.Background(), ListFilter{PerPage: 2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Pages != 3 {
		t.Fatalf("expected 3 pages, got %d", result.Pages)
	}
}

func TestStatsSplitsActiveInactive(t *testing.T) {
	repo := newFakeMemberRepo()
	svc := NewService(repo)

	dept := "Engineering"
	if _, err := svc.Create(context.Background(), CreateMemberInput{Name: "Zhang", Department: &dept}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	inactive := false
	if _, err := svc.Create(context.Background(), CreateMemberInput{Name: "Li", IsActive: &inactive}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stats.TotalMembers != 1 || stats.InactiveMembers != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if len(stats.Departments) != 1 || stats.Departments[0].Name != "Engineering" {
		t.Fatalf("unexpected departments: %+v", stats.Departments)
	}
}

func TestStatsEmptyDepartments(t *testing.T) {
	svc := NewService(newFakeMemberRepo())

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stats.Departments == nil {
		t.Fatal("expected empty department slice, got nil")
	}
}
