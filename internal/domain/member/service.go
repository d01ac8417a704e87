package member

import (
	"context"
	"fmt"
	"strings"
)

const (
	defaultPerPage = 50
	maxPerPage     = 200
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, input CreateMemberInput) (*Member, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	record := Member{
		Name:       name,
		Phone:      input.Phone,
		Email:      input.Email,
		Department: input.Department,
		Position:   input.Position,
		IsActive:   true,
	}
	if input.IsActive != nil {
		record.IsActive = *input.IsActive
	}

	if err := s.repo.Create(ctx, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*MemberDetail, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountEvents(ctx, id)
	if err != nil {
		return nil, err
	}

	return &MemberDetail{Member: *record, EventCount: count}, nil
}

func (s *Service) Update(ctx context.Context, id uint, input UpdateMemberInput) (*Member, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("name is required")
		}
		record.Name = name
	}
	if input.Phone != nil {
		record.Phone = input.Phone
	}
	if input.Email != nil {
		record.Email = input.Email
	}
	if input.Department != nil {
		record.Department = input.Department
	}
	if input.Position != nil {
		record.Position = input.Position
	}
	if input.IsActive != nil {
		record.IsActive = *input.IsActive
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = defaultPerPage
	}
	if filter.PerPage > maxPerPage {
		filter.PerPage = maxPerPage
	}
	filter.Search = strings.TrimSpace(filter.Search)

	members, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	pages := int(total) / filter.PerPage
	if int(total)%filter.PerPage != 0 {
		pages++
	}

	return &ListResult{
		Members:     members,
		Total:       total,
		Pages:       pages,
		CurrentPage: filter.Page,
	}, nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	active, err := s.repo.CountByActive(ctx, true)
	if err != nil {
		return nil, err
	}

	inactive, err := s.repo.CountByActive(ctx, false)
	if err != nil {
		return nil, err
	}

	departments, err := s.repo.DepartmentCounts(ctx)
	if err != nil {
		return nil, err
	}
	if departments == nil {
		departments = []DepartmentCount{}
	}

	return &Stats{
		TotalMembers:    active,
		InactiveMembers: inactive,
		Departments:     departments,
	}, nil
}
