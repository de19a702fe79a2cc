package directory

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

type mockDeptRepo struct {
	depts map[uuid.UUID]*Department
}

func newMockDeptRepo() *mockDeptRepo {
	return &mockDeptRepo{depts: make(map[uuid.UUID]*Department)}
}

func (m *mockDeptRepo) Create(_ context.Context, d *Department) error {
	d.ID = uuid.New()
	m.depts[d.ID] = d
	return nil
}

func (m *mockDeptRepo) GetByID(_ context.Context, id uuid.UUID) (*Department, error) {
	d, ok := m.depts[id]
	if !ok {
		return nil, errNotFound
	}
	return d, nil
}

func (m *mockDeptRepo) Update(_ context.Context, d *Department) error {
	if _, ok := m.depts[d.ID]; !ok {
		return errNotFound
	}
	m.depts[d.ID] = d
	return nil
}

func (m *mockDeptRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.depts, id)
	return nil
}

func (m *mockDeptRepo) List(_ context.Context, limit, offset int) ([]*Department, int, error) {
	var out []*Department
	for _, d := range m.depts {
		out = append(out, d)
	}
	return out, len(out), nil
}

func (m *mockDeptRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Department, int, error) {
	var out []*Department
	for _, d := range m.depts {
		if status, ok := params["status"]; ok && d.Status != status {
			continue
		}
		out = append(out, d)
	}
	return out, len(out), nil
}

type mockStaffRepo struct {
	members map[uuid.UUID]*Staff
}

func newMockStaffRepo() *mockStaffRepo {
	return &mockStaffRepo{members: make(map[uuid.UUID]*Staff)}
}

func (m *mockStaffRepo) Create(_ context.Context, s *Staff) error {
	s.ID = uuid.New()
	m.members[s.ID] = s
	return nil
}

func (m *mockStaffRepo) GetByID(_ context.Context, id uuid.UUID) (*Staff, error) {
	s, ok := m.members[id]
	if !ok {
		return nil, errNotFound
	}
	return s, nil
}

func (m *mockStaffRepo) Update(_ context.Context, s *Staff) error {
	if _, ok := m.members[s.ID]; !ok {
		return errNotFound
	}
	m.members[s.ID] = s
	return nil
}

func (m *mockStaffRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.members, id)
	return nil
}

func (m *mockStaffRepo) List(_ context.Context, limit, offset int) ([]*Staff, int, error) {
	var out []*Staff
	for _, s := range m.members {
		out = append(out, s)
	}
	return out, len(out), nil
}

func (m *mockStaffRepo) ListByDepartment(_ context.Context, departmentID uuid.UUID, limit, offset int) ([]*Staff, int, error) {
	var out []*Staff
	for _, s := range m.members {
		if s.DepartmentID != nil && *s.DepartmentID == departmentID {
			out = append(out, s)
		}
	}
	return out, len(out), nil
}

var errNotFound = errNotFoundType{}

type errNotFoundType struct{}

func (errNotFoundType) Error() string { return "not found" }

func newTestService() (*Service, *mockDeptRepo, *mockStaffRepo) {
	depts := newMockDeptRepo()
	staff := newMockStaffRepo()
	return NewService(depts, staff), depts, staff
}

func TestCreateDepartmentRequiresName(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.CreateDepartment(context.Background(), &Department{})
	if err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestCreateDepartmentDefaultsStatus(t *testing.T) {
	svc, _, _ := newTestService()

	d := &Department{Name: "Cardiology"}
	if err := svc.CreateDepartment(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Status != "Active" {
		t.Errorf("expected status Active, got %q", d.Status)
	}
	if d.ID == uuid.Nil {
		t.Error("expected ID to be assigned")
	}
}

func TestCreateDepartmentKeepsExplicitStatus(t *testing.T) {
	svc, _, _ := newTestService()

	d := &Department{Name: "Radiology", Status: "Inactive"}
	if err := svc.CreateDepartment(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Status != "Inactive" {
		t.Errorf("expected status Inactive, got %q", d.Status)
	}
}

func TestUpdateDepartmentRequiresName(t *testing.T) {
	svc, repo, _ := newTestService()

	d := &Department{Name: "Cardiology"}
	if err := svc.CreateDepartment(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d.Name = ""
	if err := svc.UpdateDepartment(context.Background(), d); err == nil {
		t.Fatal("expected error for missing name")
	}
	if repo.depts[d.ID].Name == "" {
		t.Error("repo record should not have been cleared")
	}
}

func TestCreateStaffValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name  string
		staff Staff
	}{
		{"missing first name", Staff{LastName: "Okafor", RoleTitle: "Nurse"}},
		{"missing last name", Staff{FirstName: "Ada", RoleTitle: "Nurse"}},
		{"missing role title", Staff{FirstName: "Ada", LastName: "Okafor"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.CreateStaff(ctx, &tc.staff); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateStaffDefaultsStatus(t *testing.T) {
	svc, _, _ := newTestService()

	s := &Staff{FirstName: "Ada", LastName: "Okafor", RoleTitle: "Nurse"}
	if err := svc.CreateStaff(context.Background(), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status != "Active" {
		t.Errorf("expected status Active, got %q", s.Status)
	}
}

func TestListStaffByDepartment(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	deptID := uuid.New()
	otherID := uuid.New()

	for _, s := range []*Staff{
		{FirstName: "Ada", LastName: "Okafor", RoleTitle: "Nurse", DepartmentID: &deptID},
		{FirstName: "Ben", LastName: "Carter", RoleTitle: "Technician", DepartmentID: &deptID},
		{FirstName: "Cleo", LastName: "Mensah", RoleTitle: "Clerk", DepartmentID: &otherID},
	} {
		if err := svc.CreateStaff(ctx, s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	members, total, err := svc.ListStaffByDepartment(ctx, deptID, 50, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(members) != 2 {
		t.Errorf("expected 2 members, got total=%d len=%d", total, len(members))
	}
}
