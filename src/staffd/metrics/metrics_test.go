package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("failed to read metrics: %v", err)
	}
	return string(body)
}

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())
	router.GET("/v1/departments/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/departments/17", nil))

	out := scrape(t)
	want := `staffd_http_requests_total{method="GET",path="/v1/departments/:id",status="204"}`
	if !strings.Contains(out, want) {
		t.Fatalf("expected %s in scrape output", want)
	}
	if strings.Contains(out, "/v1/departments/17") {
		t.Fatal("raw path should not be used as a label")
	}
}

func TestRecordHelpers(t *testing.T) {
	RecordEntityOperation(EntityDepartment, "create")
	RecordValidationFailure(EntityEmployee, "empty_value")
	RecordBackup("create", nil)
	RecordBackup("restore", errors.New("boom"))

	out := scrape(t)
	for _, want := range []string{
		`staffd_entity_operations_total{entity="department",operation="create"}`,
		`staffd_validation_failures_total{code="empty_value",entity="employee"}`,
		`staffd_backups_total{operation="create",result="success"}`,
		`staffd_backups_total{operation="restore",result="failure"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in scrape output", want)
		}
	}
}
