package departments

import "github.com/bitswalk/staffdb/src/staffd/db"

// Handler handles department HTTP requests
type Handler struct {
	departments *db.DepartmentRepository
	employees   *db.EmployeeRepository
}

// Config contains configuration options for the Handler
type Config struct {
	Departments *db.DepartmentRepository
	Employees   *db.EmployeeRepository
}

// DepartmentResponse documents the JSON shape of a department
type DepartmentResponse struct {
	ID       int64  `json:"id" example:"1"`
	Name     string `json:"name" example:"Engineering"`
	Location string `json:"location" example:"Building A"`
}

// DepartmentRequest is the body accepted by create and update. Update
// applies only the fields present.
type DepartmentRequest struct {
	Name     string `json:"name" example:"Engineering"`
	Location string `json:"location" example:"Building A"`
}

// DepartmentListResponse represents the response for listing departments
type DepartmentListResponse struct {
	Count       int              `json:"count"`
	Departments []*db.Department `json:"departments" swaggertype:"array,object"`
}

// EmployeeListResponse represents the employees of one department
type EmployeeListResponse struct {
	DepartmentID int64          `json:"department_id"`
	Source       string         `json:"source" example:"memory"`
	Count        int            `json:"count"`
	Employees    []*db.Employee `json:"employees" swaggertype:"array,object"`
}
