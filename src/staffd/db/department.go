package db

import (
	"encoding/json"
	"fmt"
	"sort"

	apperrors "github.com/bitswalk/staffdb/src/common/errors"
)

var departmentFields = []string{FieldName, FieldLocation}

// Department is an organizational unit mapped to a row of the departments table.
// Instances are created through a DepartmentRepository.
type Department struct {
	id       int64
	name     string
	location string
	state    EntityState
	repo     *DepartmentRepository
}

// ID returns the row id, 0 while unsaved
func (d *Department) ID() int64 { return d.id }

// Name returns the department name
func (d *Department) Name() string { return d.name }

// Location returns the department location
func (d *Department) Location() string { return d.location }

// State returns the lifecycle state
func (d *Department) State() EntityState { return d.state }

// SetName sets the name, rejecting blank values
func (d *Department) SetName(name string) error {
	if err := requireText(FieldName, "Name", name); err != nil {
		return err
	}
	d.name = name
	return nil
}

// SetLocation sets the location, rejecting blank values
func (d *Department) SetLocation(location string) error {
	if err := requireText(FieldLocation, "Location", location); err != nil {
		return err
	}
	d.location = location
	return nil
}

// Assign sets a field from an untyped value, as decoded from JSON or
// command-line input.
func (d *Department) Assign(field string, value any) error {
	switch field {
	case FieldName:
		s, err := textValue(field, "Name", value)
		if err != nil {
			return err
		}
		return d.SetName(s)
	case FieldLocation:
		s, err := textValue(field, "Location", value)
		if err != nil {
			return err
		}
		return d.SetLocation(s)
	default:
		return apperrors.ErrUnknownField.WithMessagef("Department has no field %q", field).WithField(field)
	}
}

// AssignAll applies every field in fields, or none of them if any is rejected
func (d *Department) AssignAll(fields map[string]any) error {
	staged := *d
	for _, f := range fieldOrder(fields, departmentFields, false) {
		if err := staged.Assign(f, fields[f]); err != nil {
			return err
		}
	}
	d.name, d.location = staged.name, staged.location
	return nil
}

// UpdateFields applies fields and writes them to the existing row. The
// instance keeps its previous values if a field is rejected or the write fails.
func (d *Department) UpdateFields(fields map[string]any) error {
	staged := *d
	if err := staged.AssignAll(fields); err != nil {
		return err
	}
	if err := d.repo.update(&staged); err != nil {
		return err
	}
	d.name, d.location = staged.name, staged.location
	return nil
}

// Save inserts the department, assigns its id and registers it in the identity map
func (d *Department) Save() error {
	return d.repo.save(d)
}

// Update writes the current field values to the existing row
func (d *Department) Update() error {
	return d.repo.update(d)
}

// Delete removes the row, evicts the instance and clears its id.
// Employees referencing the department are left untouched.
func (d *Department) Delete() error {
	return d.repo.delete(d)
}

// Employees returns the loaded employees whose department_id matches this
// department, ordered by id. Employees that exist only in storage are not
// included; use EmployeeRepository.FindByDepartment for those.
func (d *Department) Employees() []*Employee {
	if d.repo == nil || d.repo.employees == nil || d.id == 0 {
		return []*Employee{}
	}

	result := []*Employee{}
	for _, e := range d.repo.employees.identity {
		if e.departmentID == d.id {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].id < result[j].id })
	return result
}

func (d *Department) String() string {
	return fmt.Sprintf("<Department %s: %s, %s>", idString(d.id), d.name, d.location)
}

// MarshalJSON renders the department's fields
func (d *Department) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Location string `json:"location"`
	}{d.id, d.name, d.location})
}
