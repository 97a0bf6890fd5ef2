package db

import (
	"database/sql"
	"fmt"

	apperrors "github.com/bitswalk/staffdb/src/common/errors"
)

// DepartmentRepository handles department database operations and owns the
// department identity map: at most one *Department per persisted row.
type DepartmentRepository struct {
	db        *Database
	identity  map[int64]*Department
	employees *EmployeeRepository
}

// NewDepartmentRepository creates a new DepartmentRepository
func NewDepartmentRepository(db *Database) *DepartmentRepository {
	return &DepartmentRepository{
		db:       db,
		identity: make(map[int64]*Department),
	}
}

// CreateTable creates the departments table if it does not exist
func (r *DepartmentRepository) CreateTable() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	if _, err := sqlDB.Exec(departmentsDDL); err != nil {
		return fmt.Errorf("failed to create departments table: %w", classify(err))
	}
	return nil
}

// DropTable drops the departments table if present and clears the identity map
func (r *DepartmentRepository) DropTable() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	if _, err := sqlDB.Exec("DROP TABLE IF EXISTS departments"); err != nil {
		return fmt.Errorf("failed to drop departments table: %w", classify(err))
	}
	r.detach()
	return nil
}

// New returns a validated, unsaved department
func (r *DepartmentRepository) New(name, location string) (*Department, error) {
	d := &Department{repo: r}
	if err := d.SetName(name); err != nil {
		return nil, err
	}
	if err := d.SetLocation(location); err != nil {
		return nil, err
	}
	return d, nil
}

// NewFromMap returns a validated, unsaved department from untyped input.
// Missing fields are rejected as having the wrong type.
func (r *DepartmentRepository) NewFromMap(fields map[string]any) (*Department, error) {
	d := &Department{repo: r}
	for _, f := range fieldOrder(fields, departmentFields, true) {
		if err := d.Assign(f, fields[f]); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Create validates and saves a new department
func (r *DepartmentRepository) Create(name, location string) (*Department, error) {
	d, err := r.New(name, location)
	if err != nil {
		return nil, err
	}
	if err := d.Save(); err != nil {
		return nil, err
	}
	return d, nil
}

// FindByID returns the department with the given id, or nil if there is none
func (r *DepartmentRepository) FindByID(id int64) (*Department, error) {
	sqlDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var row departmentRow
	err = sqlDB.QueryRow(`
		SELECT id, name, location FROM departments WHERE id = ?
	`, id).Scan(&row.id, &row.name, &row.location)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get department: %w", classify(err))
	}

	return r.fromRow(row), nil
}

// FindByName returns the first department (lowest id) with the given name,
// or nil if there is none
func (r *DepartmentRepository) FindByName(name string) (*Department, error) {
	sqlDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var row departmentRow
	err = sqlDB.QueryRow(`
		SELECT id, name, location FROM departments WHERE name = ? ORDER BY id LIMIT 1
	`, name).Scan(&row.id, &row.name, &row.location)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find department by name: %w", classify(err))
	}

	return r.fromRow(row), nil
}

// GetAll returns every department ordered by id
func (r *DepartmentRepository) GetAll() ([]*Department, error) {
	sqlDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	rows, err := sqlDB.Query(`SELECT id, name, location FROM departments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", classify(err))
	}
	defer rows.Close()

	var scanned []departmentRow
	for rows.Next() {
		var row departmentRow
		if err := rows.Scan(&row.id, &row.name, &row.location); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", classify(err))
		}
		scanned = append(scanned, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", classify(err))
	}

	departments := make([]*Department, 0, len(scanned))
	for _, row := range scanned {
		departments = append(departments, r.fromRow(row))
	}
	return departments, nil
}

// Loaded returns the in-memory instance for id without touching storage
func (r *DepartmentRepository) Loaded(id int64) (*Department, bool) {
	d, ok := r.identity[id]
	return d, ok
}

// Exists reports whether a department with id is loaded or stored
func (r *DepartmentRepository) Exists(id int64) (bool, error) {
	if _, ok := r.identity[id]; ok {
		return true, nil
	}

	sqlDB, err := r.db.DB()
	if err != nil {
		return false, err
	}

	var found int64
	err = sqlDB.QueryRow(`SELECT id FROM departments WHERE id = ?`, id).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check department existence: %w", classify(err))
	}
	return true, nil
}

// reset forgets every loaded department
func (r *DepartmentRepository) reset() {
	r.detach()
}

// detach marks every loaded department deleted and empties the identity map.
// Row ids are reused once the table is dropped or replaced, so instances
// still held by callers must not keep writing to them.
func (r *DepartmentRepository) detach() {
	for _, d := range r.identity {
		d.id = 0
		d.state = StateDeleted
	}
	r.identity = make(map[int64]*Department)
}

type departmentRow struct {
	id       int64
	name     sql.NullString
	location sql.NullString
}

// fromRow returns the cached instance for the row's id or hydrates a new one.
// Cached instances keep their in-memory field values.
func (r *DepartmentRepository) fromRow(row departmentRow) *Department {
	if d, ok := r.identity[row.id]; ok {
		return d
	}
	d := &Department{
		id:       row.id,
		name:     row.name.String,
		location: row.location.String,
		state:    StatePersisted,
		repo:     r,
	}
	r.identity[d.id] = d
	return d
}

func (r *DepartmentRepository) save(d *Department) error {
	if d.state == StatePersisted {
		return apperrors.ErrAlreadyPersisted.WithMessagef("Department %d has already been saved", d.id)
	}

	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}

	result, err := sqlDB.Exec(`
		INSERT INTO departments (name, location) VALUES (?, ?)
	`, d.name, d.location)
	if err != nil {
		return fmt.Errorf("failed to create department: %w", classify(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read department id: %w", classify(err))
	}

	d.id = id
	d.state = StatePersisted
	r.identity[id] = d

	log.Debug("Department saved", "id", id, "name", d.name)
	return nil
}

func (r *DepartmentRepository) update(d *Department) error {
	if d.state != StatePersisted {
		return apperrors.ErrNotPersisted.WithMessage("Department has not been saved")
	}

	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}

	result, err := sqlDB.Exec(`
		UPDATE departments SET name = ?, location = ? WHERE id = ?
	`, d.name, d.location, d.id)
	if err != nil {
		return fmt.Errorf("failed to update department: %w", classify(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update department: %w", classify(err))
	}
	if affected == 0 {
		return apperrors.ErrDepartmentNotFound.WithMessagef("Department %d not found", d.id)
	}

	log.Debug("Department updated", "id", d.id)
	return nil
}

func (r *DepartmentRepository) delete(d *Department) error {
	switch d.state {
	case StateNew:
		return apperrors.ErrNotPersisted.WithMessage("Department has not been saved")
	case StateDeleted:
		return nil
	}

	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}

	if _, err := sqlDB.Exec(`DELETE FROM departments WHERE id = ?`, d.id); err != nil {
		return fmt.Errorf("failed to delete department: %w", classify(err))
	}

	log.Debug("Department deleted", "id", d.id)

	if r.identity[d.id] == d {
		delete(r.identity, d.id)
	}
	d.id = 0
	d.state = StateDeleted
	return nil
}
