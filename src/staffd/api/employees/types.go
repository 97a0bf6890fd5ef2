package employees

import "github.com/bitswalk/staffdb/src/staffd/db"

// Handler handles employee HTTP requests
type Handler struct {
	employees *db.EmployeeRepository
}

// Config contains configuration options for the Handler
type Config struct {
	Employees *db.EmployeeRepository
}

// EmployeeResponse documents the JSON shape of an employee
type EmployeeResponse struct {
	ID           int64  `json:"id" example:"1"`
	Name         string `json:"name" example:"Alice"`
	JobTitle     string `json:"job_title" example:"Engineer"`
	DepartmentID int64  `json:"department_id" example:"1"`
}

// EmployeeRequest is the body accepted by create and update. Update applies
// only the fields present.
type EmployeeRequest struct {
	Name         string `json:"name" example:"Alice"`
	JobTitle     string `json:"job_title" example:"Engineer"`
	DepartmentID int64  `json:"department_id" example:"1"`
}

// EmployeeListResponse represents the response for listing employees
type EmployeeListResponse struct {
	Count     int            `json:"count"`
	Employees []*db.Employee `json:"employees" swaggertype:"array,object"`
}
