package departments

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

// SetLogger sets the logger for the departments package
func SetLogger(l *logs.Logger) {
	if l != nil {
		log = l
	}
}

// Employee listing sources
const (
	SourceMemory  = "memory"
	SourceStorage = "storage"
)

// NewHandler creates a new departments handler
func NewHandler(cfg Config) *Handler {
	return &Handler{
		departments: cfg.Departments,
		employees:   cfg.Employees,
	}
}

// HandleList returns every department
//
// @Summary      List departments
// @Description  Returns every stored department ordered by id
// @Tags         Departments
// @Produce      json
// @Success      200  {object}  DepartmentListResponse
// @Failure      500  {object}  common.ErrorResponse
// @Failure      503  {object}  common.ErrorResponse
// @Router       /v1/departments [get]
func (h *Handler) HandleList(c *gin.Context) {
	departments, err := h.departments.GetAll()
	if err != nil {
		common.Error(c, "", err)
		return
	}

	c.JSON(http.StatusOK, DepartmentListResponse{
		Count:       len(departments),
		Departments: departments,
	})
}

// HandleGet returns a department by id
//
// @Summary      Get department
// @Tags         Departments
// @Produce      json
// @Param        id   path      int  true  "Department ID"
// @Success      200  {object}  DepartmentResponse
// @Failure      400  {object}  common.ErrorResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /v1/departments/{id} [get]
func (h *Handler) HandleGet(c *gin.Context) {
	d, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, d)
}

// HandleFindByName returns the first department with the given name
//
// @Summary      Find department by name
// @Tags         Departments
// @Produce      json
// @Param        name  path      string  true  "Department name"
// @Success      200   {object}  DepartmentResponse
// @Failure      404   {object}  common.ErrorResponse
// @Router       /v1/departments/by-name/{name} [get]
func (h *Handler) HandleFindByName(c *gin.Context) {
	name := c.Param("name")

	d, err := h.departments.FindByName(name)
	if err != nil {
		common.Error(c, "", err)
		return
	}
	if d == nil {
		common.NotFound(c, errors.ErrDepartmentNotFound.WithMessagef("Department %q not found", name))
		return
	}

	c.JSON(http.StatusOK, d)
}

// HandleCreate validates and saves a new department
//
// @Summary      Create department
// @Tags         Departments
// @Accept       json
// @Produce      json
// @Param        request  body      DepartmentRequest  true  "Department fields"
// @Success      201      {object}  DepartmentResponse
// @Failure      400      {object}  common.ErrorResponse
// @Router       /v1/departments [post]
func (h *Handler) HandleCreate(c *gin.Context) {
	fields, ok := common.BindFields(c)
	if !ok {
		return
	}

	d, err := h.departments.NewFromMap(fields)
	if err != nil {
		common.Error(c, metrics.EntityDepartment, err)
		return
	}
	if err := d.Save(); err != nil {
		common.Error(c, metrics.EntityDepartment, err)
		return
	}

	metrics.RecordEntityOperation(metrics.EntityDepartment, "create")
	log.Info("Department created", "id", d.ID(), "name", d.Name())

	c.JSON(http.StatusCreated, d)
}

// HandleUpdate applies the given fields to a department and writes it back.
// Nothing is changed when any field is rejected or the write fails.
//
// @Summary      Update department
// @Tags         Departments
// @Accept       json
// @Produce      json
// @Param        id       path      int                true  "Department ID"
// @Param        request  body      DepartmentRequest  true  "Fields to change"
// @Success      200      {object}  DepartmentResponse
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Router       /v1/departments/{id} [put]
func (h *Handler) HandleUpdate(c *gin.Context) {
	d, ok := h.lookup(c)
	if !ok {
		return
	}

	fields, ok := common.BindFields(c)
	if !ok {
		return
	}

	if err := d.UpdateFields(fields); err != nil {
		common.Error(c, metrics.EntityDepartment, err)
		return
	}

	metrics.RecordEntityOperation(metrics.EntityDepartment, "update")
	log.Info("Department updated", "id", d.ID())

	c.JSON(http.StatusOK, d)
}

// HandleDelete removes a department. Its employees are left in place.
//
// @Summary      Delete department
// @Tags         Departments
// @Param        id   path  int  true  "Department ID"
// @Success      204
// @Failure      404  {object}  common.ErrorResponse
// @Router       /v1/departments/{id} [delete]
func (h *Handler) HandleDelete(c *gin.Context) {
	d, ok := h.lookup(c)
	if !ok {
		return
	}

	id := d.ID()
	if err := d.Delete(); err != nil {
		common.Error(c, "", err)
		return
	}

	metrics.RecordEntityOperation(metrics.EntityDepartment, "delete")
	log.Info("Department deleted", "id", id)

	c.Status(http.StatusNoContent)
}

// HandleEmployees lists the employees of a department. The memory source
// only sees employees already loaded by this server; storage reads them
// from the database.
//
// @Summary      List department employees
// @Tags         Departments
// @Produce      json
// @Param        id      path      int     true   "Department ID"
// @Param        source  query     string  false  "memory or storage"  default(memory)
// @Success      200     {object}  EmployeeListResponse
// @Failure      400     {object}  common.ErrorResponse
// @Failure      404     {object}  common.ErrorResponse
// @Router       /v1/departments/{id}/employees [get]
func (h *Handler) HandleEmployees(c *gin.Context) {
	d, ok := h.lookup(c)
	if !ok {
		return
	}

	source := c.DefaultQuery("source", SourceMemory)

	var employees []*db.Employee
	switch source {
	case SourceMemory:
		employees = d.Employees()
	case SourceStorage:
		var err error
		employees, err = h.employees.FindByDepartment(d.ID())
		if err != nil {
			common.Error(c, "", err)
			return
		}
	default:
		common.BadRequest(c, errors.ErrInvalidType.WithMessagef("source must be %q or %q", SourceMemory, SourceStorage).WithField("source"))
		return
	}

	if employees == nil {
		employees = []*db.Employee{}
	}

	c.JSON(http.StatusOK, EmployeeListResponse{
		DepartmentID: d.ID(),
		Source:       source,
		Count:        len(employees),
		Employees:    employees,
	})
}

// lookup resolves the :id parameter, writing the error response itself
func (h *Handler) lookup(c *gin.Context) (*db.Department, bool) {
	id, ok := common.ParseID(c, "id")
	if !ok {
		return nil, false
	}

	d, err := h.departments.FindByID(id)
	if err != nil {
		common.Error(c, "", err)
		return nil, false
	}
	if d == nil {
		common.NotFound(c, errors.ErrDepartmentNotFound.WithMessagef("Department %d not found", id))
		return nil, false
	}
	return d, true
}
