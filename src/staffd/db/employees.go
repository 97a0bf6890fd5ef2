package db

import (
	"database/sql"
	"fmt"

	apperrors "github.com/bitswalk/staffdb/src/common/errors"
)

// EmployeeRepository handles employee database operations and owns the
// employee identity map. Department references are checked against the
// department repository it was built with.
type EmployeeRepository struct {
	db          *Database
	identity    map[int64]*Employee
	departments *DepartmentRepository
}

// NewEmployeeRepository creates a new EmployeeRepository and links it to
// departments so Department.Employees can see loaded employees.
func NewEmployeeRepository(db *Database, departments *DepartmentRepository) *EmployeeRepository {
	r := &EmployeeRepository{
		db:          db,
		identity:    make(map[int64]*Employee),
		departments: departments,
	}
	departments.employees = r
	return r
}

// CreateTable creates the employees table if it does not exist
func (r *EmployeeRepository) CreateTable() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	if _, err := sqlDB.Exec(employeesDDL); err != nil {
		return fmt.Errorf("failed to create employees table: %w", classify(err))
	}
	return nil
}

// DropTable drops the employees table if present and clears the identity map
func (r *EmployeeRepository) DropTable() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	if _, err := sqlDB.Exec("DROP TABLE IF EXISTS employees"); err != nil {
		return fmt.Errorf("failed to drop employees table: %w", classify(err))
	}
	r.detach()
	return nil
}

// New returns a validated, unsaved employee. The department reference is
// checked immediately.
func (r *EmployeeRepository) New(name, jobTitle string, departmentID int64) (*Employee, error) {
	e := &Employee{repo: r}
	if err := e.SetName(name); err != nil {
		return nil, err
	}
	if err := e.SetJobTitle(jobTitle); err != nil {
		return nil, err
	}
	if err := e.SetDepartmentID(departmentID); err != nil {
		return nil, err
	}
	return e, nil
}

// NewFromMap returns a validated, unsaved employee from untyped input.
// Missing fields are rejected as having the wrong type.
func (r *EmployeeRepository) NewFromMap(fields map[string]any) (*Employee, error) {
	e := &Employee{repo: r}
	for _, f := range fieldOrder(fields, employeeFields, true) {
		if err := e.Assign(f, fields[f]); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Create validates and saves a new employee
func (r *EmployeeRepository) Create(name, jobTitle string, departmentID int64) (*Employee, error) {
	e, err := r.New(name, jobTitle, departmentID)
	if err != nil {
		return nil, err
	}
	if err := e.Save(); err != nil {
		return nil, err
	}
	return e, nil
}

// FindByID returns the employee with the given id, or nil if there is none
func (r *EmployeeRepository) FindByID(id int64) (*Employee, error) {
	sqlDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var row employeeRow
	err = sqlDB.QueryRow(`
		SELECT id, name, job_title, department_id FROM employees WHERE id = ?
	`, id).Scan(&row.id, &row.name, &row.jobTitle, &row.departmentID)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", classify(err))
	}

	return r.fromRow(row), nil
}

// FindByName returns the first employee (lowest id) with the given name,
// or nil if there is none
func (r *EmployeeRepository) FindByName(name string) (*Employee, error) {
	sqlDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var row employeeRow
	err = sqlDB.QueryRow(`
		SELECT id, name, job_title, department_id FROM employees WHERE name = ? ORDER BY id LIMIT 1
	`, name).Scan(&row.id, &row.name, &row.jobTitle, &row.departmentID)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find employee by name: %w", classify(err))
	}

	return r.fromRow(row), nil
}

// GetAll returns every employee ordered by id
func (r *EmployeeRepository) GetAll() ([]*Employee, error) {
	return r.list(`SELECT id, name, job_title, department_id FROM employees ORDER BY id`)
}

// FindByDepartment reads every employee of a department from storage,
// loading them into the identity map
func (r *EmployeeRepository) FindByDepartment(departmentID int64) ([]*Employee, error) {
	return r.list(`
		SELECT id, name, job_title, department_id FROM employees
		WHERE department_id = ? ORDER BY id
	`, departmentID)
}

// Loaded returns the in-memory instance for id without touching storage
func (r *EmployeeRepository) Loaded(id int64) (*Employee, bool) {
	e, ok := r.identity[id]
	return e, ok
}

// list drains the result set before hydrating entities; the store has a
// single connection and hydration must not hold it.
func (r *EmployeeRepository) list(query string, args ...any) ([]*Employee, error) {
	sqlDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	rows, err := sqlDB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", classify(err))
	}
	defer rows.Close()

	var scanned []employeeRow
	for rows.Next() {
		var row employeeRow
		if err := rows.Scan(&row.id, &row.name, &row.jobTitle, &row.departmentID); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", classify(err))
		}
		scanned = append(scanned, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", classify(err))
	}

	employees := make([]*Employee, 0, len(scanned))
	for _, row := range scanned {
		employees = append(employees, r.fromRow(row))
	}
	return employees, nil
}

// reset forgets every loaded employee
func (r *EmployeeRepository) reset() {
	r.detach()
}

// detach marks every loaded employee deleted and empties the identity map.
// Row ids are reused once the table is dropped or replaced, so instances
// still held by callers must not keep writing to them.
func (r *EmployeeRepository) detach() {
	for _, e := range r.identity {
		e.id = 0
		e.state = StateDeleted
	}
	r.identity = make(map[int64]*Employee)
}

type employeeRow struct {
	id           int64
	name         sql.NullString
	jobTitle     sql.NullString
	departmentID sql.NullInt64
}

// fromRow returns the cached instance for the row's id or hydrates a new one.
// Stored rows are trusted: the department reference is not re-checked, so an
// employee whose department was deleted can still be loaded.
func (r *EmployeeRepository) fromRow(row employeeRow) *Employee {
	if e, ok := r.identity[row.id]; ok {
		return e
	}
	e := &Employee{
		id:           row.id,
		name:         row.name.String,
		jobTitle:     row.jobTitle.String,
		departmentID: row.departmentID.Int64,
		state:        StatePersisted,
		repo:         r,
	}
	r.identity[e.id] = e
	return e
}

func (r *EmployeeRepository) save(e *Employee) error {
	if e.state == StatePersisted {
		return apperrors.ErrAlreadyPersisted.WithMessagef("Employee %d has already been saved", e.id)
	}

	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}

	result, err := sqlDB.Exec(`
		INSERT INTO employees (name, job_title, department_id) VALUES (?, ?, ?)
	`, e.name, e.jobTitle, e.departmentID)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", classify(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read employee id: %w", classify(err))
	}

	e.id = id
	e.state = StatePersisted
	r.identity[id] = e

	log.Debug("Employee saved", "id", id, "name", e.name, "department_id", e.departmentID)
	return nil
}

func (r *EmployeeRepository) update(e *Employee) error {
	if e.state != StatePersisted {
		return apperrors.ErrNotPersisted.WithMessage("Employee has not been saved")
	}

	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}

	result, err := sqlDB.Exec(`
		UPDATE employees SET name = ?, job_title = ?, department_id = ? WHERE id = ?
	`, e.name, e.jobTitle, e.departmentID, e.id)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", classify(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", classify(err))
	}
	if affected == 0 {
		return apperrors.ErrEmployeeNotFound.WithMessagef("Employee %d not found", e.id)
	}

	log.Debug("Employee updated", "id", e.id)
	return nil
}

func (r *EmployeeRepository) delete(e *Employee) error {
	switch e.state {
	case StateNew:
		return apperrors.ErrNotPersisted.WithMessage("Employee has not been saved")
	case StateDeleted:
		return nil
	}

	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}

	if _, err := sqlDB.Exec(`DELETE FROM employees WHERE id = ?`, e.id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", classify(err))
	}

	log.Debug("Employee deleted", "id", e.id)

	if r.identity[e.id] == e {
		delete(r.identity, e.id)
	}
	e.id = 0
	e.state = StateDeleted
	return nil
}
