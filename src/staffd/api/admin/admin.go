// Package admin serves schema management endpoints.
package admin

import (
	"net/http"

	"github.com/bitswalk/staffdb/src/common/logs"
	"github.com/bitswalk/staffdb/src/staffd/api/common"
	"github.com/bitswalk/staffdb/src/staffd/db"
	"github.com/gin-gonic/gin"
)

var log = logs.NewDefault()

// SetLogger sets the logger for the admin package
func SetLogger(l *logs.Logger) {
	if l != nil {
		log = l
	}
}

// Handler handles schema management requests
type Handler struct {
	store *db.Store
}

// TablesResponse acknowledges a schema change
type TablesResponse struct {
	Status string   `json:"status" example:"created"`
	Tables []string `json:"tables"`
}

// NewHandler creates a new admin handler
func NewHandler(store *db.Store) *Handler {
	return &Handler{store: store}
}

// HandleCreateTables creates the departments and employees tables if missing
//
// @Summary      Create tables
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  TablesResponse
// @Failure      503  {object}  common.ErrorResponse
// @Router       /v1/admin/tables [post]
func (h *Handler) HandleCreateTables(c *gin.Context) {
	if err := h.store.CreateTables(); err != nil {
		common.Error(c, "", err)
		return
	}

	log.Info("Tables created")
	c.JSON(http.StatusOK, TablesResponse{Status: "created", Tables: []string{"departments", "employees"}})
}

// HandleDropTables drops both tables and forgets every loaded entity
//
// @Summary      Drop tables
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  TablesResponse
// @Failure      503  {object}  common.ErrorResponse
// @Router       /v1/admin/tables [delete]
func (h *Handler) HandleDropTables(c *gin.Context) {
	if err := h.store.DropTables(); err != nil {
		common.Error(c, "", err)
		return
	}

	log.Warn("Tables dropped")
	c.JSON(http.StatusOK, TablesResponse{Status: "dropped", Tables: []string{"employees", "departments"}})
}
