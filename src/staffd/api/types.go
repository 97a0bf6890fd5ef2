package api

import (
	"sync"

	"github.com/bitswalk/staffdb/src/common/version"
	"github.com/bitswalk/staffdb/src/staffd/api/admin"
	"github.com/bitswalk/staffdb/src/staffd/api/base"
	"github.com/bitswalk/staffdb/src/staffd/api/common"
	"github.com/bitswalk/staffdb/src/staffd/api/departments"
	"github.com/bitswalk/staffdb/src/staffd/api/employees"
	"github.com/bitswalk/staffdb/src/staffd/db"
)

// ErrorResponse is an alias to common.ErrorResponse
type ErrorResponse = common.ErrorResponse

// API holds all handler instances and dependencies
type API struct {
	// Subpackage handlers
	Base        *base.Handler
	Departments *departments.Handler
	Employees   *employees.Handler
	Admin       *admin.Handler

	// storeMu serializes every request that touches the store
	storeMu sync.Mutex
}

// Config contains API configuration options
type Config struct {
	Store       *db.Store
	VersionInfo *version.Info
}
