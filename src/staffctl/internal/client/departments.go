package client

import (
	"context"
	"fmt"
)

// Department represents a department resource
type Department struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// DepartmentListResponse represents a list of departments
type DepartmentListResponse struct {
	Count       int          `json:"count"`
	Departments []Department `json:"departments"`
}

// DepartmentEmployeesResponse represents the employees of one department
type DepartmentEmployeesResponse struct {
	DepartmentID int64      `json:"department_id"`
	Source       string     `json:"source"`
	Count        int        `json:"count"`
	Employees    []Employee `json:"employees"`
}

// CreateDepartmentRequest represents the request to create a department
type CreateDepartmentRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// UpdateDepartmentRequest changes only the fields that are set
type UpdateDepartmentRequest struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
}

// ListDepartments returns all departments
func (c *Client) ListDepartments(ctx context.Context) (*DepartmentListResponse, error) {
	var resp DepartmentListResponse
	if err := c.Get(ctx, "/v1/departments", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetDepartment returns a department by id
func (c *Client) GetDepartment(ctx context.Context, id int64) (*Department, error) {
	var resp Department
	if err := c.Get(ctx, fmt.Sprintf("/v1/departments/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FindDepartment returns the first department with the given name
func (c *Client) FindDepartment(ctx context.Context, name string) (*Department, error) {
	var resp Department
	if err := c.Get(ctx, "/v1/departments/by-name/"+pathName(name), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateDepartment creates a new department
func (c *Client) CreateDepartment(ctx context.Context, req *CreateDepartmentRequest) (*Department, error) {
	var resp Department
	if err := c.Post(ctx, "/v1/departments", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateDepartment updates a department
func (c *Client) UpdateDepartment(ctx context.Context, id int64, req *UpdateDepartmentRequest) (*Department, error) {
	var resp Department
	if err := c.Put(ctx, fmt.Sprintf("/v1/departments/%d", id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteDepartment deletes a department. Its employees are kept.
func (c *Client) DeleteDepartment(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/v1/departments/%d", id), nil)
}

// DepartmentEmployees lists a department's employees. source is "memory"
// (employees loaded by the server) or "storage".
func (c *Client) DepartmentEmployees(ctx context.Context, id int64, source string) (*DepartmentEmployeesResponse, error) {
	path := fmt.Sprintf("/v1/departments/%d/employees", id)
	if source != "" {
		path += "?source=" + source
	}

	var resp DepartmentEmployeesResponse
	if err := c.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
