package errors

// Response represents a standard error response for HTTP APIs
type Response struct {
	// Error contains the error code (domain.code format)
	Error string `json:"error"`

	// Message contains a human-readable error message
	Message string `json:"message"`

	// Field names the offending entity field for validation errors
	Field string `json:"field,omitempty"`
}

// ToResponse converts an Error to an HTTP response structure
func (e *Error) ToResponse() Response {
	return Response{
		Error:   string(e.Domain) + "." + string(e.Code),
		Message: e.Message,
		Field:   e.Field,
	}
}

// NewResponse creates a new error response from an error.
// Errors anywhere in the chain that are *Error keep their domain and code;
// anything else becomes a generic internal error.
func NewResponse(err error) Response {
	var e *Error
	if As(err, &e) {
		return e.ToResponse()
	}

	return Response{
		Error:   string(DomainInternal) + "." + string(CodeInternal),
		Message: "Internal server error",
	}
}
