package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/bitswalk/staffdb/src/common/errors"
	"github.com/bitswalk/staffdb/src/staffd/api"
	"github.com/bitswalk/staffdb/src/staffd/db"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	store  *db.Store
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := db.Open(db.Config{})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.CreateTables(); err != nil {
		t.Fatalf("failed to create tables: %v", err)
	}

	router := gin.New()
	api.New(api.Config{Store: store}).RegisterRoutes(router)

	return &testServer{store: store, router: router}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, target *apperrors.Error) apperrors.Response {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, w.Code, w.Body.String())
	}
	var resp apperrors.Response
	decode(t, w, &resp)
	if want := target.ToResponse().Error; resp.Error != want {
		t.Fatalf("expected error %q, got %q", want, resp.Error)
	}
	return resp
}

type departmentBody struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

type employeeBody struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	JobTitle     string `json:"job_title"`
	DepartmentID int64  `json:"department_id"`
}

func (s *testServer) createDepartment(t *testing.T, name, location string) departmentBody {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"name": name, "location": location})
	w := s.do(t, http.MethodPost, "/v1/departments", string(body))
	if w.Code != http.StatusCreated {
		t.Fatalf("create department: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var d departmentBody
	decode(t, w, &d)
	return d
}

func (s *testServer) createEmployee(t *testing.T, name, jobTitle string, departmentID int64) employeeBody {
	t.Helper()
	body, _ := json.Marshal(map[string]any{"name": name, "job_title": jobTitle, "department_id": departmentID})
	w := s.do(t, http.MethodPost, "/v1/employees", string(body))
	if w.Code != http.StatusCreated {
		t.Fatalf("create employee: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var e employeeBody
	decode(t, w, &e)
	return e
}

// =============================================================================
// System Endpoint Tests
// =============================================================================

func TestRoot(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var info map[string]any
	decode(t, w, &info)
	if info["name"] != "staffd" {
		t.Fatalf("expected name staffd, got %v", info["name"])
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	if w := s.do(t, http.MethodGet, "/v1/health", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200 while store is open, got %d", w.Code)
	}

	s.store.Close()

	w := s.do(t, http.MethodGet, "/v1/health", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 after close, got %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/v1/version", "")
	if w.Header().Get(api.RequestIDHeader) == "" {
		t.Fatal("expected a generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/version", nil)
	req.Header.Set(api.RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if got := w.Header().Get(api.RequestIDHeader); got != "abc-123" {
		t.Fatalf("expected request id to be echoed, got %q", got)
	}
}

// =============================================================================
// Department Endpoint Tests
// =============================================================================

func TestDepartments_CRUD(t *testing.T) {
	s := newTestServer(t)

	d := s.createDepartment(t, "Engineering", "Building A")
	if d.ID != 1 || d.Name != "Engineering" || d.Location != "Building A" {
		t.Fatalf("unexpected department: %+v", d)
	}

	w := s.do(t, http.MethodGet, "/v1/departments/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}

	w = s.do(t, http.MethodGet, "/v1/departments/by-name/Engineering", "")
	if w.Code != http.StatusOK {
		t.Fatalf("find by name: expected 200, got %d", w.Code)
	}

	w = s.do(t, http.MethodPut, "/v1/departments/1", `{"location": "Building B"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated departmentBody
	decode(t, w, &updated)
	if updated.Name != "Engineering" || updated.Location != "Building B" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	w = s.do(t, http.MethodGet, "/v1/departments", "")
	var list struct {
		Count       int              `json:"count"`
		Departments []departmentBody `json:"departments"`
	}
	decode(t, w, &list)
	if list.Count != 1 || list.Departments[0].Location != "Building B" {
		t.Fatalf("unexpected list: %+v", list)
	}

	if w := s.do(t, http.MethodDelete, "/v1/departments/1", ""); w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}

	w = s.do(t, http.MethodGet, "/v1/departments/1", "")
	expectError(t, w, http.StatusNotFound, apperrors.ErrDepartmentNotFound)
}

func TestDepartments_Validation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/departments", `{"name": 42, "location": "Building A"}`)
	resp := expectError(t, w, http.StatusBadRequest, apperrors.ErrInvalidType)
	if resp.Message != "Name must be a string" || resp.Field != "name" {
		t.Fatalf("unexpected error body: %+v", resp)
	}

	w = s.do(t, http.MethodPost, "/v1/departments", `{"name": "   ", "location": "Building A"}`)
	expectError(t, w, http.StatusBadRequest, apperrors.ErrEmptyValue)

	w = s.do(t, http.MethodPost, "/v1/departments", `{"name": "Sales"}`)
	expectError(t, w, http.StatusBadRequest, apperrors.ErrInvalidType)

	w = s.do(t, http.MethodPost, "/v1/departments", `not json`)
	expectError(t, w, http.StatusBadRequest, apperrors.ErrInvalidJSON)

	w = s.do(t, http.MethodGet, "/v1/departments/abc", "")
	expectError(t, w, http.StatusBadRequest, apperrors.ErrInvalidID)

	w = s.do(t, http.MethodGet, "/v1/departments/by-name/Nobody", "")
	expectError(t, w, http.StatusNotFound, apperrors.ErrDepartmentNotFound)
}

func TestDepartments_RejectedUpdateChangesNothing(t *testing.T) {
	s := newTestServer(t)
	s.createDepartment(t, "Engineering", "Building A")

	w := s.do(t, http.MethodPut, "/v1/departments/1", `{"name": "Research", "location": ""}`)
	expectError(t, w, http.StatusBadRequest, apperrors.ErrEmptyValue)

	w = s.do(t, http.MethodGet, "/v1/departments/1", "")
	var d departmentBody
	decode(t, w, &d)
	if d.Name != "Engineering" || d.Location != "Building A" {
		t.Fatalf("expected department unchanged, got %+v", d)
	}
}

func TestDepartments_Employees(t *testing.T) {
	s := newTestServer(t)
	d := s.createDepartment(t, "Engineering", "Building A")
	s.createEmployee(t, "Bob", "Manager", d.ID)
	s.createEmployee(t, "Alice", "Engineer", d.ID)

	type employeesBody struct {
		Source    string         `json:"source"`
		Count     int            `json:"count"`
		Employees []employeeBody `json:"employees"`
	}

	for _, source := range []string{"", "?source=memory", "?source=storage"} {
		w := s.do(t, http.MethodGet, "/v1/departments/1/employees"+source, "")
		if w.Code != http.StatusOK {
			t.Fatalf("%q: expected 200, got %d", source, w.Code)
		}
		var body employeesBody
		decode(t, w, &body)
		if body.Count != 2 || body.Employees[0].Name != "Bob" || body.Employees[1].Name != "Alice" {
			t.Fatalf("%q: unexpected employees: %+v", source, body)
		}
	}

	w := s.do(t, http.MethodGet, "/v1/departments/1/employees?source=cache", "")
	expectError(t, w, http.StatusBadRequest, apperrors.ErrInvalidType)
}

// =============================================================================
// Employee Endpoint Tests
// =============================================================================

func TestEmployees_CRUD(t *testing.T) {
	s := newTestServer(t)
	engineering := s.createDepartment(t, "Engineering", "Building A")
	sales := s.createDepartment(t, "Sales", "Building B")

	e := s.createEmployee(t, "Alice", "Engineer", engineering.ID)
	if e.ID != 1 || e.DepartmentID != engineering.ID {
		t.Fatalf("unexpected employee: %+v", e)
	}

	w := s.do(t, http.MethodGet, "/v1/employees/by-name/Alice", "")
	if w.Code != http.StatusOK {
		t.Fatalf("find by name: expected 200, got %d", w.Code)
	}

	w = s.do(t, http.MethodPut, "/v1/employees/1", `{"job_title": "Lead", "department_id": 2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated employeeBody
	decode(t, w, &updated)
	if updated.JobTitle != "Lead" || updated.DepartmentID != sales.ID {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if w := s.do(t, http.MethodDelete, "/v1/employees/1", ""); w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}

	w = s.do(t, http.MethodGet, "/v1/employees", "")
	var list struct {
		Count int `json:"count"`
	}
	decode(t, w, &list)
	if list.Count != 0 {
		t.Fatalf("expected no employees, got %d", list.Count)
	}
}

func TestEmployees_ReferentialIntegrity(t *testing.T) {
	s := newTestServer(t)
	s.createDepartment(t, "Engineering", "Building A")

	w := s.do(t, http.MethodPost, "/v1/employees", `{"name": "Alice", "job_title": "Engineer", "department_id": 999}`)
	resp := expectError(t, w, http.StatusUnprocessableEntity, apperrors.ErrReferentialIntegrity)
	if resp.Message != "Department ID does not exist" {
		t.Fatalf("unexpected message %q", resp.Message)
	}

	s.createEmployee(t, "Alice", "Engineer", 1)

	w = s.do(t, http.MethodPut, "/v1/employees/1", `{"name": "Alicia", "department_id": 999}`)
	expectError(t, w, http.StatusUnprocessableEntity, apperrors.ErrReferentialIntegrity)

	w = s.do(t, http.MethodGet, "/v1/employees/1", "")
	var e employeeBody
	decode(t, w, &e)
	if e.Name != "Alice" || e.DepartmentID != 1 {
		t.Fatalf("expected employee unchanged, got %+v", e)
	}
}

func TestEmployees_DepartmentIDType(t *testing.T) {
	s := newTestServer(t)
	s.createDepartment(t, "Engineering", "Building A")

	w := s.do(t, http.MethodPost, "/v1/employees", `{"name": "Alice", "job_title": "Engineer", "department_id": "1"}`)
	resp := expectError(t, w, http.StatusBadRequest, apperrors.ErrInvalidType)
	if resp.Message != "Department ID must be an integer" {
		t.Fatalf("unexpected message %q", resp.Message)
	}

	w = s.do(t, http.MethodPost, "/v1/employees", `{"name": "Alice", "job_title": "Engineer", "department_id": 1.5}`)
	expectError(t, w, http.StatusBadRequest, apperrors.ErrInvalidType)

	w = s.do(t, http.MethodPost, "/v1/employees", `{"name": "Alice", "job_title": "Engineer", "department_id": 1, "salary": 10}`)
	expectError(t, w, http.StatusBadRequest, apperrors.ErrUnknownField)
}

func TestEmployees_SurviveDepartmentDelete(t *testing.T) {
	s := newTestServer(t)
	s.createDepartment(t, "Engineering", "Building A")
	s.createEmployee(t, "Alice", "Engineer", 1)

	if w := s.do(t, http.MethodDelete, "/v1/departments/1", ""); w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}

	w := s.do(t, http.MethodGet, "/v1/employees/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected orphaned employee to load, got %d", w.Code)
	}
	var e employeeBody
	decode(t, w, &e)
	if e.DepartmentID != 1 {
		t.Fatalf("expected department_id to be kept, got %d", e.DepartmentID)
	}
}

// =============================================================================
// Admin Endpoint Tests
// =============================================================================

func TestAdmin_Tables(t *testing.T) {
	s := newTestServer(t)
	s.createDepartment(t, "Engineering", "Building A")

	if w := s.do(t, http.MethodDelete, "/v1/admin/tables", ""); w.Code != http.StatusOK {
		t.Fatalf("drop: expected 200, got %d", w.Code)
	}

	w := s.do(t, http.MethodGet, "/v1/departments", "")
	expectError(t, w, http.StatusInternalServerError, apperrors.ErrDatabaseQuery)

	if w := s.do(t, http.MethodPost, "/v1/admin/tables", ""); w.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d", w.Code)
	}

	d := s.createDepartment(t, "Sales", "Building B")
	if d.ID != 1 {
		t.Fatalf("expected ids to restart after drop, got %d", d.ID)
	}
}
