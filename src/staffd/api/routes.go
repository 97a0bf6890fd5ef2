package api

import "github.com/gin-gonic/gin"

// RegisterRoutes configures all API routes on the given router
func (a *API) RegisterRoutes(router *gin.Engine) {
	router.Use(a.requestID())

	// Root endpoint - API discovery
	router.GET("/", a.Base.HandleRoot)

	v1 := router.Group("/v1")
	{
		v1.GET("/version", a.Base.HandleVersion)

		// Everything below reads or writes the store
		store := v1.Group("")
		store.Use(a.serialized())
		{
			store.GET("/health", a.Base.HandleHealth)

			departments := store.Group("/departments")
			{
				departments.GET("", a.Departments.HandleList)
				departments.POST("", a.Departments.HandleCreate)
				departments.GET("/by-name/:name", a.Departments.HandleFindByName)
				departments.GET("/:id", a.Departments.HandleGet)
				departments.PUT("/:id", a.Departments.HandleUpdate)
				departments.DELETE("/:id", a.Departments.HandleDelete)
				departments.GET("/:id/employees", a.Departments.HandleEmployees)
			}

			employees := store.Group("/employees")
			{
				employees.GET("", a.Employees.HandleList)
				employees.POST("", a.Employees.HandleCreate)
				employees.GET("/by-name/:name", a.Employees.HandleFindByName)
				employees.GET("/:id", a.Employees.HandleGet)
				employees.PUT("/:id", a.Employees.HandleUpdate)
				employees.DELETE("/:id", a.Employees.HandleDelete)
			}

			admin := store.Group("/admin")
			{
				admin.POST("/tables", a.Admin.HandleCreateTables)
				admin.DELETE("/tables", a.Admin.HandleDropTables)
			}
		}
	}

	log.Debug("API routes registered")
}
