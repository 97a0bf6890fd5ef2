// Package common holds response helpers shared by the staffd API handlers.
package common

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/bitswalk/staffdb/src/common/errors"
	"github.com/bitswalk/staffdb/src/common/logs"
	"github.com/bitswalk/staffdb/src/staffd/metrics"
	"github.com/gin-gonic/gin"
)

var log = logs.NewDefault()

// SetLogger sets the logger for the common package
func SetLogger(l *logs.Logger) {
	if l != nil {
		log = l
	}
}

// ErrorResponse is the body of every error reply
type ErrorResponse = errors.Response

// Error writes err with the HTTP status of its structured error, or 500.
// Validation failures are counted against entity.
func Error(c *gin.Context, entity string, err error) {
	status := errors.GetHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
	}
	if entity != "" && (errors.GetDomain(err) == errors.DomainValidation || errors.Is(err, errors.ErrReferentialIntegrity)) {
		metrics.RecordValidationFailure(entity, string(errors.GetCode(err)))
	}
	c.JSON(status, errors.NewResponse(err))
}

// ParseID reads a positive integer path parameter
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		BadRequest(c, errors.ErrInvalidID.WithMessagef("Invalid %s: %q", name, c.Param(name)))
		return 0, false
	}
	return id, true
}

// BindFields decodes a JSON object body. Numbers are kept as json.Number so
// integer fields are not silently truncated.
func BindFields(c *gin.Context) (map[string]any, bool) {
	var fields map[string]any

	decoder := json.NewDecoder(c.Request.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&fields); err != nil || fields == nil {
		BadRequest(c, errors.ErrInvalidJSON.WithMessage("Request body must be a JSON object"))
		return nil, false
	}
	return fields, true
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, err *errors.Error) {
	c.JSON(http.StatusBadRequest, err.ToResponse())
}

// NotFound sends a 404 Not Found response
func NotFound(c *gin.Context, err *errors.Error) {
	c.JSON(http.StatusNotFound, err.ToResponse())
}

// ServiceUnavailable sends a 503 Service Unavailable response
func ServiceUnavailable(c *gin.Context, err *errors.Error) {
	c.JSON(http.StatusServiceUnavailable, err.ToResponse())
}

// InternalError sends a 500 Internal Server Error response
func InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, errors.ErrInternal.WithMessage(message).ToResponse())
}
