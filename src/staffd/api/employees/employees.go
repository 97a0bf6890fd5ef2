package employees

import (
	"net/http"

	"github.com/bitswalk/staffdb/src/common/errors"
	"github.com/bitswalk/staffdb/src/common/logs"
	"github.com/bitswalk/staffdb/src/staffd/api/common"
	"github.com/bitswalk/staffdb/src/staffd/db"
	"github.com/bitswalk/staffdb/src/staffd/metrics"
	"github.com/gin-gonic/gin"
)

var log = logs.NewDefault()

// SetLogger sets the logger for the employees package
func SetLogger(l *logs.Logger) {
	if l != nil {
		log = l
	}
}

// NewHandler creates a new employees handler
func NewHandler(cfg Config) *Handler {
	return &Handler{
		employees: cfg.Employees,
	}
}

// HandleList returns every employee
//
// @Summary      List employees
// @Tags         Employees
// @Produce      json
// @Success      200  {object}  EmployeeListResponse
// @Failure      500  {object}  common.ErrorResponse
// @Router       /v1/employees [get]
func (h *Handler) HandleList(c *gin.Context) {
	employees, err := h.employees.GetAll()
	if err != nil {
		common.Error(c, "", err)
		return
	}

	c.JSON(http.StatusOK, EmployeeListResponse{
		Count:     len(employees),
		Employees: employees,
	})
}

// HandleGet returns an employee by id
//
// @Summary      Get employee
// @Tags         Employees
// @Produce      json
// @Param        id   path      int  true  "Employee ID"
// @Success      200  {object}  EmployeeResponse
// @Failure      400  {object}  common.ErrorResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /v1/employees/{id} [get]
func (h *Handler) HandleGet(c *gin.Context) {
	e, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, e)
}

// HandleFindByName returns the first employee with the given name
//
// @Summary      Find employee by name
// @Tags         Employees
// @Produce      json
// @Param        name  path      string  true  "Employee name"
// @Success      200   {object}  EmployeeResponse
// @Failure      404   {object}  common.ErrorResponse
// @Router       /v1/employees/by-name/{name} [get]
func (h *Handler) HandleFindByName(c *gin.Context) {
	name := c.Param("name")

	e, err := h.employees.FindByName(name)
	if err != nil {
		common.Error(c, "", err)
		return
	}
	if e == nil {
		common.NotFound(c, errors.ErrEmployeeNotFound.WithMessagef("Employee %q not found", name))
		return
	}

	c.JSON(http.StatusOK, e)
}

// HandleCreate validates and saves a new employee. The department must exist.
//
// @Summary      Create employee
// @Tags         Employees
// @Accept       json
// @Produce      json
// @Param        request  body      EmployeeRequest  true  "Employee fields"
// @Success      201      {object}  EmployeeResponse
// @Failure      400      {object}  common.ErrorResponse
// @Failure      422      {object}  common.ErrorResponse
// @Router       /v1/employees [post]
func (h *Handler) HandleCreate(c *gin.Context) {
	fields, ok := common.BindFields(c)
	if !ok {
		return
	}

	e, err := h.employees.NewFromMap(fields)
	if err != nil {
		common.Error(c, metrics.EntityEmployee, err)
		return
	}
	if err := e.Save(); err != nil {
		common.Error(c, metrics.EntityEmployee, err)
		return
	}

	metrics.RecordEntityOperation(metrics.EntityEmployee, "create")
	log.Info("Employee created", "id", e.ID(), "name", e.Name(), "department_id", e.DepartmentID())

	c.JSON(http.StatusCreated, e)
}

// HandleUpdate applies the given fields to an employee and writes it back.
// Nothing is changed when any field is rejected or the write fails.
//
// @Summary      Update employee
// @Tags         Employees
// @Accept       json
// @Produce      json
// @Param        id       path      int              true  "Employee ID"
// @Param        request  body      EmployeeRequest  true  "Fields to change"
// @Success      200      {object}  EmployeeResponse
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Failure      422      {object}  common.ErrorResponse
// @Router       /v1/employees/{id} [put]
func (h *Handler) HandleUpdate(c *gin.Context) {
	e, ok := h.lookup(c)
	if !ok {
		return
	}

	fields, ok := common.BindFields(c)
	if !ok {
		return
	}

	if err := e.UpdateFields(fields); err != nil {
		common.Error(c, metrics.EntityEmployee, err)
		return
	}

	metrics.RecordEntityOperation(metrics.EntityEmployee, "update")
	log.Info("Employee updated", "id", e.ID())

	c.JSON(http.StatusOK, e)
}

// HandleDelete removes an employee
//
// @Summary      Delete employee
// @Tags         Employees
// @Param        id   path  int  true  "Employee ID"
// @Success      204
// @Failure      404  {object}  common.ErrorResponse
// @Router       /v1/employees/{id} [delete]
func (h *Handler) HandleDelete(c *gin.Context) {
	e, ok := h.lookup(c)
	if !ok {
		return
	}

	id := e.ID()
	if err := e.Delete(); err != nil {
		common.Error(c, "", err)
		return
	}

	metrics.RecordEntityOperation(metrics.EntityEmployee, "delete")
	log.Info("Employee deleted", "id", id)

	c.Status(http.StatusNoContent)
}

func (h *Handler) lookup(c *gin.Context) (*db.Employee, bool) {
	id, ok := common.ParseID(c, "id")
	if !ok {
		return nil, false
	}

	e, err := h.employees.FindByID(id)
	if err != nil {
		common.Error(c, "", err)
		return nil, false
	}
	if e == nil {
		common.NotFound(c, errors.ErrEmployeeNotFound.WithMessagef("Employee %d not found", id))
		return nil, false
	}
	return e, true
}
