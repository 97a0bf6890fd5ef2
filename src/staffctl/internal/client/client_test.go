package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// =============================================================================
// APIError Tests
// =============================================================================

func TestAPIError_Error_WithCode(t *testing.T) {
	err := &APIError{StatusCode: 400, ErrorCode: "validation.invalid_type", Message: "Name must be a string", Field: "name"}
	s := err.Error()
	for _, want := range []string{"validation.invalid_type", "Name must be a string", "HTTP 400", "field: name"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %q in %q", want, s)
		}
	}
}

func TestAPIError_Error_Hints(t *testing.T) {
	tests := []struct {
		status int
		hint   string
	}{
		{http.StatusNotFound, "not found"},
		{http.StatusUnprocessableEntity, "department must exist"},
		{http.StatusServiceUnavailable, "staffctl health"},
	}
	for _, tt := range tests {
		err := &APIError{StatusCode: tt.status, Message: "x"}
		if !strings.Contains(err.Error(), tt.hint) {
			t.Errorf("status %d: expected hint %q in %q", tt.status, tt.hint, err.Error())
		}
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(&APIError{StatusCode: http.StatusNotFound}) {
		t.Error("expected 404 to be not found")
	}
	if IsNotFound(&APIError{StatusCode: http.StatusBadRequest}) {
		t.Error("expected 400 not to be not found")
	}
	if IsNotFound(io.EOF) {
		t.Error("expected plain errors not to be not found")
	}
}

// =============================================================================
// Request Tests
// =============================================================================

func TestClient_CreateDepartment(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/departments" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected JSON content type")
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Errorf("expected a request id")
		}
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["name"] != "Engineering" || body["location"] != "Building A" {
			t.Errorf("unexpected body %v", body)
		}
		writeJSON(w, http.StatusCreated, Department{ID: 1, Name: "Engineering", Location: "Building A"})
	})

	d, err := c.CreateDepartment(context.Background(), &CreateDepartmentRequest{Name: "Engineering", Location: "Building A"})
	if err != nil {
		t.Fatalf("CreateDepartment failed: %v", err)
	}
	if d.ID != 1 {
		t.Errorf("expected id 1, got %d", d.ID)
	}
}

func TestClient_UpdateEmployee_SendsOnlySetFields(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/v1/employees/3" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if len(body) != 1 || body["department_id"] != float64(2) {
			t.Errorf("expected only department_id, got %v", body)
		}
		writeJSON(w, http.StatusOK, Employee{ID: 3, Name: "Alice", JobTitle: "Engineer", DepartmentID: 2})
	})

	dept := int64(2)
	e, err := c.UpdateEmployee(context.Background(), 3, &UpdateEmployeeRequest{DepartmentID: &dept})
	if err != nil {
		t.Fatalf("UpdateEmployee failed: %v", err)
	}
	if e.DepartmentID != 2 {
		t.Errorf("expected department 2, got %d", e.DepartmentID)
	}
}

func TestClient_FindDepartment_EscapesName(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/v1/departments/by-name/R&D%2FLabs" {
			t.Errorf("unexpected path %q", r.URL.EscapedPath())
		}
		writeJSON(w, http.StatusOK, Department{ID: 4, Name: "R&D/Labs"})
	})

	d, err := c.FindDepartment(context.Background(), "R&D/Labs")
	if err != nil {
		t.Fatalf("FindDepartment failed: %v", err)
	}
	if d.Name != "R&D/Labs" {
		t.Errorf("unexpected name %q", d.Name)
	}
}

func TestClient_DepartmentEmployees_Source(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("source"); got != "storage" {
			t.Errorf("expected source=storage, got %q", got)
		}
		writeJSON(w, http.StatusOK, DepartmentEmployeesResponse{
			DepartmentID: 1,
			Source:       "storage",
			Count:        1,
			Employees:    []Employee{{ID: 1, Name: "Alice", JobTitle: "Engineer", DepartmentID: 1}},
		})
	})

	resp, err := c.DepartmentEmployees(context.Background(), 1, "storage")
	if err != nil {
		t.Fatalf("DepartmentEmployees failed: %v", err)
	}
	if resp.Count != 1 || resp.Employees[0].Name != "Alice" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestClient_DeleteEmployee_NoContent(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.DeleteEmployee(context.Background(), 1); err != nil {
		t.Fatalf("DeleteEmployee failed: %v", err)
	}
}

// =============================================================================
// Error Handling Tests
// =============================================================================

func TestClient_StructuredError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "employee.referential_integrity",
			Message: "Department ID does not exist",
			Field:   "department_id",
		})
	})

	_, err := c.CreateEmployee(context.Background(), &CreateEmployeeRequest{Name: "Alice", JobTitle: "Engineer", DepartmentID: 9})
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T (%v)", err, err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity || apiErr.ErrorCode != "employee.referential_integrity" || apiErr.Field != "department_id" {
		t.Errorf("unexpected error %+v", apiErr)
	}
}

func TestClient_UnstructuredError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy"})
	})

	_, err := c.Health(context.Background())
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusServiceUnavailable || !strings.Contains(apiErr.Message, "unhealthy") {
		t.Errorf("unexpected error %+v", apiErr)
	}
}

func TestClient_ConnectionRefused(t *testing.T) {
	c := New("http://127.0.0.1:1")
	if _, err := c.Version(context.Background()); err == nil {
		t.Fatal("expected an error for an unreachable server")
	}
}
