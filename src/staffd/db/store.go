package db

import "fmt"

// Store owns the database handle and both repositories. The identity maps
// live exactly as long as the Store.
type Store struct {
	db          *Database
	Departments *DepartmentRepository
	Employees   *EmployeeRepository
}

// NewStore wires the department and employee repositories onto database
func NewStore(database *Database) *Store {
	departments := NewDepartmentRepository(database)
	return &Store{
		db:          database,
		Departments: departments,
		Employees:   NewEmployeeRepository(database, departments),
	}
}

// Open creates the database from cfg and returns a Store over it
func Open(cfg Config) (*Store, error) {
	database, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return NewStore(database), nil
}

// Database returns the underlying handle
func (s *Store) Database() *Database {
	return s.db
}

// CreateTables creates both tables if missing
func (s *Store) CreateTables() error {
	if err := s.Departments.CreateTable(); err != nil {
		return err
	}
	return s.Employees.CreateTable()
}

// DropTables drops both tables and clears both identity maps
func (s *Store) DropTables() error {
	if err := s.Employees.DropTable(); err != nil {
		return err
	}
	return s.Departments.DropTable()
}

// Restore replaces the store contents with the snapshot at path. Loaded
// instances are forgotten since their rows may no longer match.
func (s *Store) Restore(path string) error {
	if err := s.db.RestoreFrom(path); err != nil {
		return fmt.Errorf("failed to restore store: %w", err)
	}
	s.Departments.reset()
	s.Employees.reset()
	return nil
}

// Close persists and closes the database
func (s *Store) Close() error {
	return s.db.Shutdown()
}
