package base

import (
	"net/http"
	"time"

	"github.com/bitswalk/staffdb/src/common/version"
	"github.com/bitswalk/staffdb/src/staffd/db"
	"github.com/gin-gonic/gin"
)

var VersionInfo = version.New()

// SetVersionInfo sets the version info for the base package
func SetVersionInfo(v *version.Info) {
	if v != nil {
		VersionInfo = v
	}
}

// NewHandler creates a new base handler
func NewHandler(database *db.Database) *Handler {
	return &Handler{database: database}
}

// HandleRoot returns API discovery information
//
// @Summary      API discovery
// @Description  Returns the service name, version and top-level endpoints
// @Tags         System
// @Produce      json
// @Success      200  {object}  APIInfo
// @Router       / [get]
func (h *Handler) HandleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, APIInfo{
		Name:        "staffd",
		Description: "Department and employee records API",
		Version:     VersionInfo.Version,
		APIVersions: []string{"v1"},
		Endpoints: APIInfoEndpoints{
			Health:      "/v1/health",
			Version:     "/v1/version",
			Departments: "/v1/departments",
			Employees:   "/v1/employees",
			Metrics:     "/metrics",
			Docs:        "/swagger/index.html",
		},
	})
}

// HandleHealth reports whether the store is reachable
//
// @Summary      Health check
// @Description  Pings the relational store; 503 when it is unavailable
// @Tags         System
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /v1/health [get]
func (h *Handler) HandleHealth(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Database:  "ok",
		Driver:    h.database.Driver(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.database.Ping(); err != nil {
		response.Status = "unhealthy"
		response.Database = err.Error()
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

// HandleVersion returns version and build information for the server
//
// @Summary      Version
// @Description  Returns build metadata
// @Tags         System
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /v1/version [get]
func (h *Handler) HandleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Version:        VersionInfo.Version,
		ReleaseVersion: VersionInfo.ReleaseVersion,
		BuildDate:      VersionInfo.BuildDate,
		GitCommit:      VersionInfo.GitCommit,
		GoVersion:      version.GoVersion(),
	})
}
