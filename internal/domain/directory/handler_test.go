package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *mockDeptRepo, *mockStaffRepo) {
	svc, depts, staff := newTestService()
	return NewHandler(svc), depts, staff
}

func TestCreateDepartmentHandler(t *testing.T) {
	h, repo, _ := newTestHandler()
	e := echo.New()

	body := `{"name":"Cardiology","description":"Heart care"}`
	req := httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateDepartment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(repo.depts) != 1 {
		t.Fatalf("expected 1 department in repo, got %d", len(repo.depts))
	}

	var got Department
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if got.Name != "Cardiology" || got.Status != "Active" {
		t.Errorf("unexpected department: %+v", got)
	}
}

func TestCreateDepartmentHandlerRejectsMissingName(t *testing.T) {
	h, _, _ := newTestHandler()
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateDepartment(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestGetDepartmentHandlerNotFound(t *testing.T) {
	h, _, _ := newTestHandler()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/departments/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.GetDepartment(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
}

func TestGetDepartmentHandlerInvalidID(t *testing.T) {
	h, _, _ := newTestHandler()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/departments/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.GetDepartment(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestListDepartmentsHandlerWithStatusFilter(t *testing.T) {
	h, repo, _ := newTestHandler()
	e := echo.New()

	for _, d := range []*Department{
		{Name: "Cardiology", Status: "Active"},
		{Name: "Archive", Status: "Inactive"},
	} {
		if err := repo.Create(context.Background(), d); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/departments?status=Active", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListDepartments(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("expected total 1, got %d", resp.Total)
	}
}

func TestUpdateDepartmentHandler(t *testing.T) {
	h, repo, _ := newTestHandler()
	e := echo.New()

	d := &Department{Name: "Cardiology", Status: "Active"}
	if err := repo.Create(context.Background(), d); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	body := `{"name":"Cardiology","status":"Inactive"}`
	req := httptest.NewRequest(http.MethodPut, "/departments/"+d.ID.String(), strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(d.ID.String())

	if err := h.UpdateDepartment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if repo.depts[d.ID].Status != "Inactive" {
		t.Errorf("expected status Inactive, got %q", repo.depts[d.ID].Status)
	}
}

func TestDeleteStaffHandler(t *testing.T) {
	h, _, staff := newTestHandler()
	e := echo.New()

	s := &Staff{FirstName: "Ada", LastName: "Okafor", RoleTitle: "Nurse", Status: "Active"}
	if err := staff.Create(context.Background(), s); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/staff/"+s.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(s.ID.String())

	if err := h.DeleteStaff(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(staff.members) != 0 {
		t.Error("staff member should have been deleted")
	}
}

func TestListStaffHandlerByDepartment(t *testing.T) {
	h, _, staff := newTestHandler()
	e := echo.New()

	deptID := uuid.New()
	for _, s := range []*Staff{
		{FirstName: "Ada", LastName: "Okafor", RoleTitle: "Nurse", Status: "Active", DepartmentID: &deptID},
		{FirstName: "Ben", LastName: "Carter", RoleTitle: "Clerk", Status: "Active"},
	} {
		if err := staff.Create(context.Background(), s); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/staff?department_id="+deptID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListStaff(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("expected total 1, got %d", resp.Total)
	}
}
