// Package api wires the staffd HTTP handlers.
package api

import (
	"github.com/bitswalk/staffdb/src/common/logs"
	"github.com/bitswalk/staffdb/src/common/version"
	"github.com/bitswalk/staffdb/src/staffd/api/admin"
	"github.com/bitswalk/staffdb/src/staffd/api/base"
	"github.com/bitswalk/staffdb/src/staffd/api/common"
	"github.com/bitswalk/staffdb/src/staffd/api/departments"
	"github.com/bitswalk/staffdb/src/staffd/api/employees"
)

var log = logs.NewDefault()

// SetLogger sets the logger for the api package and subpackages
func SetLogger(l *logs.Logger) {
	if l != nil {
		log = l
	}
	common.SetLogger(l)
	departments.SetLogger(l)
	employees.SetLogger(l)
	admin.SetLogger(l)
}

// SetVersionInfo sets the version info for the api package and subpackages
func SetVersionInfo(v *version.Info) {
	base.SetVersionInfo(v)
}

// New creates a new API instance with all subpackage handlers
func New(cfg Config) *API {
	if cfg.VersionInfo != nil {
		SetVersionInfo(cfg.VersionInfo)
	}

	return &API{
		Base: base.NewHandler(cfg.Store.Database()),

		Departments: departments.NewHandler(departments.Config{
			Departments: cfg.Store.Departments,
			Employees:   cfg.Store.Employees,
		}),

		Employees: employees.NewHandler(employees.Config{
			Employees: cfg.Store.Employees,
		}),

		Admin: admin.NewHandler(cfg.Store),
	}
}
