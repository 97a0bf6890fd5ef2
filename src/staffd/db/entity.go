package db

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	apperrors "github.com/bitswalk/staffdb/src/common/errors"
)

// EntityState tracks where an entity is in its lifecycle
type EntityState int

const (
	// StateNew is an entity that has never been saved
	StateNew EntityState = iota
	// StatePersisted is an entity backed by a row and held in its identity map
	StatePersisted
	// StateDeleted is an entity whose row was removed; it may be saved again
	StateDeleted
)

func (s EntityState) String() string {
	switch s {
	case StateNew:
		return "new"
	case StatePersisted:
		return "persisted"
	case StateDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Field names accepted by Assign
const (
	FieldName         = "name"
	FieldLocation     = "location"
	FieldJobTitle     = "job_title"
	FieldDepartmentID = "department_id"
)

// fieldOrder returns the keys to assign, known fields first in declaration
// order, then unknown keys sorted so the error is deterministic. With
// required set, every known field is included whether present or not.
func fieldOrder(fields map[string]any, known []string, required bool) []string {
	order := make([]string, 0, len(fields)+len(known))
	isKnown := make(map[string]bool, len(known))
	for _, f := range known {
		isKnown[f] = true
		if _, ok := fields[f]; ok || required {
			order = append(order, f)
		}
	}

	var unknown []string
	for f := range fields {
		if !isKnown[f] {
			unknown = append(unknown, f)
		}
	}
	sort.Strings(unknown)
	return append(order, unknown...)
}

// requireText rejects values that are blank after trimming whitespace.
// The original value is kept as-is.
func requireText(field, label, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.ErrEmptyValue.WithMessagef("%s cannot be empty", label).WithField(field)
	}
	return nil
}

// textValue extracts a string from an untyped value
func textValue(field, label string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", apperrors.ErrInvalidType.WithMessagef("%s must be a string", label).WithField(field)
	}
	return s, nil
}

// integerValue extracts an int64 from an untyped value. JSON numbers decoded
// with UseNumber arrive as json.Number; plain decoding gives float64, which is
// accepted only when integral and within int64 range.
func integerValue(field, label string, value any) (int64, error) {
	invalid := apperrors.ErrInvalidType.WithMessagef("%s must be an integer", label).WithField(field)

	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, invalid
		}
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, invalid
		}
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || v >= 1<<63 || v < math.MinInt64 {
			return 0, invalid
		}
		return int64(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, invalid
		}
		return n, nil
	default:
		return 0, invalid
	}
}

// idString renders an id for String, "new" while unsaved
func idString(id int64) string {
	if id == 0 {
		return "new"
	}
	return strconv.FormatInt(id, 10)
}
