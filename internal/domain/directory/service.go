package directory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	depts DepartmentRepository
	staff StaffRepository
}

func NewService(depts DepartmentRepository, staff StaffRepository) *Service {
	return &Service{depts: depts, staff: staff}
}

// -- Department --

func (s *Service) CreateDepartment(ctx context.Context, d *Department) error {
	if d.Name == "" {
		return fmt.Errorf("department name is required")
	}
	if d.Status == "" {
		d.Status = "Active"
	}
	return s.depts.Create(ctx, d)
}

func (s *Service) GetDepartment(ctx context.Context, id uuid.UUID) (*Department, error) {
	return s.depts.GetByID(ctx, id)
}

func (s *Service) UpdateDepartment(ctx context.Context, d *Department) error {
	if d.Name == "" {
		return fmt.Errorf("department name is required")
	}
	return s.depts.Update(ctx, d)
}

func (s *Service) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	return s.depts.Delete(ctx, id)
}

func (s *Service) ListDepartments(ctx context.Context, limit, offset int) ([]*Department, int, error) {
	return s.depts.List(ctx, limit, offset)
}

func (s *Service) SearchDepartments(ctx context.Context, params map[string]string, limit, offset int) ([]*Department, int, error) {
	return s.depts.Search(ctx, params, limit, offset)
}

// -- Staff --

func (s *Service) CreateStaff(ctx context.Context, m *Staff) error {
	if m.FirstName == "" || m.LastName == "" {
		return fmt.Errorf("staff first and last name are required")
	}
	if m.RoleTitle == "" {
		return fmt.Errorf("staff role title is required")
	}
	if m.Status == "" {
		m.Status = "Active"
	}
	return s.staff.Create(ctx, m)
}

func (s *Service) GetStaff(ctx context.Context, id uuid.UUID) (*Staff, error) {
	return s.staff.GetByID(ctx, id)
}

func (s *Service) UpdateStaff(ctx context.Context, m *Staff) error {
	return s.staff.Update(ctx, m)
}

func (s *Service) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	return s.staff.Delete(ctx, id)
}

func (s *Service) ListStaff(ctx context.Context, limit, offset int) ([]*Staff, int, error) {
	return s.staff.List(ctx, limit, offset)
}

func (s *Service) ListStaffByDepartment(ctx context.Context, departmentID uuid.UUID, limit, offset int) ([]*Staff, int, error) {
	return s.staff.ListByDepartment(ctx, departmentID, limit, offset)
}
