package errors

import "net/http"

// Common error codes used across domains
const (
	CodeNotFound       Code = "not_found"
	CodeAlreadyExists  Code = "already_exists"
	CodeInvalidRequest Code = "invalid_request"
	CodeConflict       Code = "conflict"
	CodeInternal       Code = "internal_error"
	CodeUnavailable    Code = "unavailable"
)

// ============================================================================
// Validation Errors
// ============================================================================

var (
	// ErrInvalidType is returned when a field is assigned a value of the wrong type
	ErrInvalidType = New(DomainValidation, "invalid_type", http.StatusBadRequest,
		"Value has the wrong type")

	// ErrEmptyValue is returned when a string field is blank after trimming whitespace
	ErrEmptyValue = New(DomainValidation, "empty_value", http.StatusBadRequest,
		"Value cannot be empty")

	// ErrUnknownField is returned when an assignment names a field the entity does not have
	ErrUnknownField = New(DomainValidation, "unknown_field", http.StatusBadRequest,
		"Unknown field")

	// ErrInvalidJSON is returned when a request body cannot be decoded
	ErrInvalidJSON = New(DomainValidation, "invalid_json", http.StatusBadRequest,
		"Invalid JSON")

	// ErrInvalidID is returned when a path identifier is not a positive integer
	ErrInvalidID = New(DomainValidation, "invalid_id", http.StatusBadRequest,
		"Invalid identifier")
)

// ============================================================================
// Entity Lifecycle Errors
// ============================================================================

var (
	// ErrNotPersisted is returned by Update and Delete on an entity that has no row
	ErrNotPersisted = New(DomainEntity, "not_persisted", http.StatusConflict,
		"Entity has not been saved")

	// ErrAlreadyPersisted is returned by Save on an entity that already has a row
	ErrAlreadyPersisted = New(DomainEntity, "already_persisted", http.StatusConflict,
		"Entity has already been saved")
)

// ============================================================================
// Department Errors
// ============================================================================

var (
	// ErrDepartmentNotFound is returned when a department row cannot be found
	ErrDepartmentNotFound = New(DomainDepartment, CodeNotFound, http.StatusNotFound,
		"Department not found")
)

// ============================================================================
// Employee Errors
// ============================================================================

var (
	// ErrEmployeeNotFound is returned when an employee row cannot be found
	ErrEmployeeNotFound = New(DomainEmployee, CodeNotFound, http.StatusNotFound,
		"Employee not found")

	// ErrReferentialIntegrity is returned when an employee references a missing department
	ErrReferentialIntegrity = New(DomainEmployee, "referential_integrity", http.StatusUnprocessableEntity,
		"Department ID does not exist")
)

// ============================================================================
// Storage Errors
// ============================================================================

var (
	// ErrStorageUnavailable is returned when the relational store cannot be reached
	ErrStorageUnavailable = New(DomainStorage, CodeUnavailable, http.StatusServiceUnavailable,
		"Storage backend unavailable")

	// ErrObjectNotFound is returned when a backup object is missing from object storage
	ErrObjectNotFound = New(DomainStorage, CodeNotFound, http.StatusNotFound,
		"Object not found in storage")
)

// ============================================================================
// Database Errors
// ============================================================================

var (
	// ErrDatabaseQuery is returned when a database statement fails
	ErrDatabaseQuery = New(DomainDatabase, "query_failed", http.StatusInternalServerError,
		"Database query failed")
)

// ============================================================================
// Backup Errors
// ============================================================================

var (
	// ErrBackupFailed is returned when a snapshot cannot be produced or uploaded
	ErrBackupFailed = New(DomainBackup, "backup_failed", http.StatusInternalServerError,
		"Backup failed")

	// ErrRestoreFailed is returned when a snapshot cannot be downloaded or loaded
	ErrRestoreFailed = New(DomainBackup, "restore_failed", http.StatusInternalServerError,
		"Restore failed")
)

// ============================================================================
// Internal Errors
// ============================================================================

var (
	// ErrInternal is a generic internal server error
	ErrInternal = New(DomainInternal, CodeInternal, http.StatusInternalServerError,
		"Internal server error")
)
