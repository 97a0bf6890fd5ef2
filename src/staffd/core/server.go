package core

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitswalk/staffdb/src/staffd/api"
	"github.com/bitswalk/staffdb/src/staffd/db"
	_ "github.com/bitswalk/staffdb/src/staffd/docs"
	"github.com/bitswalk/staffdb/src/staffd/metrics"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Server holds the HTTP server instance and configuration
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	store      *db.Store
	api        *api.API
	address    string
}

// NewServer creates a new Server instance
func NewServer(cfg *Config, store *db.Store) *Server {
	// Set Gin mode based on log level
	if viper.GetString("log.level") == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Names in /by-name/:name may contain encoded slashes
	router.UseRawPath = true

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add CORS middleware
	router.Use(corsMiddleware())

	// Add metrics and logging middleware
	router.Use(metrics.Middleware())
	router.Use(ginLogger())

	// Create API instance with all dependencies
	api.SetLogger(log)
	apiInstance := api.New(api.Config{
		Store:       store,
		VersionInfo: VersionInfo,
	})

	// Register all routes
	apiInstance.RegisterRoutes(router)

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &Server{
		router:  router,
		store:   store,
		api:     apiInstance,
		address: cfg.Address(),
	}
}

// Handler returns the router, for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM or a listener error
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:         s.address,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors coming from the listener
	errChan := make(chan error, 1)

	go func() {
		log.Info("Starting staffd server", "address", s.address)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("Received signal, shutting down", "signal", sig)
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// corsMiddleware returns a gin middleware for handling CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			c.Header("Access-Control-Expose-Headers", "X-Request-ID")
		}

		// Handle preflight requests
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// ginLogger returns a gin middleware for logging requests
func ginLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		// Process request
		c.Next()

		if query != "" {
			path = path + "?" + query
		}

		log.Debug("HTTP request",
			"status", c.Writer.Status(),
			"method", c.Request.Method,
			"path", path,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString("request_id"),
		)
	}
}

// openStore loads the configuration and opens the store it describes
func openStore() (*Config, *db.Store, error) {
	cfg, err := LoadConfig(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}

	db.SetLogger(log)
	log.Info("Initializing database",
		"driver", cfg.Database.Driver,
		"persist_path", cfg.Database.Path,
		"load_on_start", cfg.Database.LoadOnStart,
	)

	store, err := db.Open(cfg.DB())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := store.CreateTables(); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cfg, store, nil
}

// closeStore persists and closes the store, keeping the first error
func closeStore(store *db.Store, err error) error {
	log.Info("Persisting database to disk")
	if dbErr := store.Close(); dbErr != nil {
		log.Error("Failed to persist database", "error", dbErr)
		if err == nil {
			err = dbErr
		}
	} else {
		log.Info("Database persisted successfully")
	}
	return err
}

// runServer is called by the root command to start the server
func runServer() error {
	log.Info("staffd starting",
		"version", VersionInfo.Version,
		"build_date", VersionInfo.BuildDate,
		"log_output", log.Output(),
	)

	cfg, store, err := openStore()
	if err != nil {
		return err
	}

	server := NewServer(cfg, store)

	// Run server (blocks until shutdown signal)
	err = server.Run()

	return closeStore(store, err)
}
