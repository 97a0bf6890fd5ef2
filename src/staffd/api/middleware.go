package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

// requestID echoes the caller's request id or assigns a new one
func (a *API) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// serialized runs one store-touching handler at a time. Repositories and
// the entities they hand out are not safe for concurrent use.
func (a *API) serialized() gin.HandlerFunc {
	return func(c *gin.Context) {
		a.storeMu.Lock()
		defer a.storeMu.Unlock()
		c.Next()
	}
}
