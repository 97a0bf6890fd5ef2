package base

import "github.com/bitswalk/staffdb/src/staffd/db"

// Handler handles base HTTP requests (root, health, version)
type Handler struct {
	database *db.Database
}

// APIInfo represents the root API discovery response
type APIInfo struct {
	Name        string           `json:"name" example:"staffd"`
	Description string           `json:"description" example:"Department and employee records API"`
	Version     string           `json:"version" example:"1.0.0"`
	APIVersions []string         `json:"api_versions" example:"v1"`
	Endpoints   APIInfoEndpoints `json:"endpoints"`
}

// APIInfoEndpoints contains the available API endpoints
type APIInfoEndpoints struct {
	Health      string `json:"health" example:"/v1/health"`
	Version     string `json:"version" example:"/v1/version"`
	Departments string `json:"departments" example:"/v1/departments"`
	Employees   string `json:"employees" example:"/v1/employees"`
	Metrics     string `json:"metrics" example:"/metrics"`
	Docs        string `json:"docs" example:"/swagger/index.html"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Database  string `json:"database" example:"ok"`
	Driver    string `json:"driver" example:"sqlite3"`
	Timestamp string `json:"timestamp" example:"2024-01-15T10:30:00Z"`
}

// VersionResponse represents the version information response
type VersionResponse struct {
	Version        string `json:"version" example:"staffdb v1.0.0-4f9f297"`
	ReleaseVersion string `json:"release_version" example:"1.0.0"`
	BuildDate      string `json:"build_date" example:"2024-01-15T10:30:00Z"`
	GitCommit      string `json:"git_commit" example:"4f9f297"`
	GoVersion      string `json:"go_version" example:"go1.24"`
}
