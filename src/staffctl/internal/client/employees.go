package client

import (
	"context"
	"fmt"
)

// Employee represents an employee resource
type Employee struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	JobTitle     string `json:"job_title"`
	DepartmentID int64  `json:"department_id"`
}

// EmployeeListResponse represents a list of employees
type EmployeeListResponse struct {
	Count     int        `json:"count"`
	Employees []Employee `json:"employees"`
}

// CreateEmployeeRequest represents the request to create an employee
type CreateEmployeeRequest struct {
	Name         string `json:"name"`
	JobTitle     string `json:"job_title"`
	DepartmentID int64  `json:"department_id"`
}

// UpdateEmployeeRequest changes only the fields that are set
type UpdateEmployeeRequest struct {
	Name         *string `json:"name,omitempty"`
	JobTitle     *string `json:"job_title,omitempty"`
	DepartmentID *int64  `json:"department_id,omitempty"`
}

// ListEmployees returns all employees
func (c *Client) ListEmployees(ctx context.Context) (*EmployeeListResponse, error) {
	var resp EmployeeListResponse
	if err := c.Get(ctx, "/v1/employees", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetEmployee returns an employee by id
func (c *Client) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	var resp Employee
	if err := c.Get(ctx, fmt.Sprintf("/v1/employees/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FindEmployee returns the first employee with the given name
func (c *Client) FindEmployee(ctx context.Context, name string) (*Employee, error) {
	var resp Employee
	if err := c.Get(ctx, "/v1/employees/by-name/"+pathName(name), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateEmployee creates a new employee
func (c *Client) CreateEmployee(ctx context.Context, req *CreateEmployeeRequest) (*Employee, error) {
	var resp Employee
	if err := c.Post(ctx, "/v1/employees", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateEmployee updates an employee
func (c *Client) UpdateEmployee(ctx context.Context, id int64, req *UpdateEmployeeRequest) (*Employee, error) {
	var resp Employee
	if err := c.Put(ctx, fmt.Sprintf("/v1/employees/%d", id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteEmployee deletes an employee
func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/v1/employees/%d", id), nil)
}
