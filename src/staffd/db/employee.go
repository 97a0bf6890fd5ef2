package db

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/bitswalk/staffdb/src/common/errors"
)

var employeeFields = []string{FieldName, FieldJobTitle, FieldDepartmentID}

// Employee is a worker mapped to a row of the employees table. Its
// department_id must always name an existing department.
type Employee struct {
	id           int64
	name         string
	jobTitle     string
	departmentID int64
	state        EntityState
	repo         *EmployeeRepository
}

// ID returns the row id, 0 while unsaved
func (e *Employee) ID() int64 { return e.id }

// Name returns the employee name
func (e *Employee) Name() string { return e.name }

// JobTitle returns the employee job title
func (e *Employee) JobTitle() string { return e.jobTitle }

// DepartmentID returns the id of the employee's department
func (e *Employee) DepartmentID() int64 { return e.departmentID }

// State returns the lifecycle state
func (e *Employee) State() EntityState { return e.state }

// SetName sets the name, rejecting blank values
func (e *Employee) SetName(name string) error {
	if err := requireText(FieldName, "Name", name); err != nil {
		return err
	}
	e.name = name
	return nil
}

// SetJobTitle sets the job title, rejecting blank values
func (e *Employee) SetJobTitle(jobTitle string) error {
	if err := requireText(FieldJobTitle, "Job title", jobTitle); err != nil {
		return err
	}
	e.jobTitle = jobTitle
	return nil
}

// SetDepartmentID points the employee at a department. The department must
// be loaded or present in storage, otherwise ErrReferentialIntegrity is returned.
func (e *Employee) SetDepartmentID(departmentID int64) error {
	exists, err := e.repo.departments.Exists(departmentID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrReferentialIntegrity.WithField(FieldDepartmentID)
	}
	e.departmentID = departmentID
	return nil
}

// Assign sets a field from an untyped value, as decoded from JSON or
// command-line input.
func (e *Employee) Assign(field string, value any) error {
	switch field {
	case FieldName:
		s, err := textValue(field, "Name", value)
		if err != nil {
			return err
		}
		return e.SetName(s)
	case FieldJobTitle:
		s, err := textValue(field, "Job title", value)
		if err != nil {
			return err
		}
		return e.SetJobTitle(s)
	case FieldDepartmentID:
		id, err := integerValue(field, "Department ID", value)
		if err != nil {
			return err
		}
		return e.SetDepartmentID(id)
	default:
		return apperrors.ErrUnknownField.WithMessagef("Employee has no field %q", field).WithField(field)
	}
}

// AssignAll applies every field in fields, or none of them if any is rejected
func (e *Employee) AssignAll(fields map[string]any) error {
	staged := *e
	for _, f := range fieldOrder(fields, employeeFields, false) {
		if err := staged.Assign(f, fields[f]); err != nil {
			return err
		}
	}
	e.name, e.jobTitle, e.departmentID = staged.name, staged.jobTitle, staged.departmentID
	return nil
}

// Department returns the employee's department, or nil if it has been deleted
func (e *Employee) Department() (*Department, error) {
	return e.repo.departments.FindByID(e.departmentID)
}

// UpdateFields applies fields and writes them to the existing row. The
// instance keeps its previous values if a field is rejected or the write fails.
func (e *Employee) UpdateFields(fields map[string]any) error {
	staged := *e
	if err := staged.AssignAll(fields); err != nil {
		return err
	}
	if err := e.repo.update(&staged); err != nil {
		return err
	}
	e.name, e.jobTitle, e.departmentID = staged.name, staged.jobTitle, staged.departmentID
	return nil
}

// Save inserts the employee, assigns its id and registers it in the identity map
func (e *Employee) Save() error {
	return e.repo.save(e)
}

// Update writes the current field values to the existing row
func (e *Employee) Update() error {
	return e.repo.update(e)
}

// Delete removes the row, evicts the instance and clears its id
func (e *Employee) Delete() error {
	return e.repo.delete(e)
}

func (e *Employee) String() string {
	return fmt.Sprintf("<Employee %s: %s, %s, Department ID: %d>", idString(e.id), e.name, e.jobTitle, e.departmentID)
}

// MarshalJSON renders the employee's fields
func (e *Employee) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID           int64  `json:"id"`
		Name         string `json:"name"`
		JobTitle     string `json:"job_title"`
		DepartmentID int64  `json:"department_id"`
	}{e.id, e.name, e.jobTitle, e.departmentID})
}
