package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thoughtforge/thoughtforge/app/cfg"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, schedulerKey string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-Scheduler-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, schedulerKey)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler, schedulerKey string) {
	// Basis material
	r.POST("/basis", handler.CreateBasisEntry)
	r.GET("/basis", handler.ListBasisEntries)

	// Job queue. Enqueueing is guarded when a scheduler key is configured,
	// so only the platform scheduler can inject work.
	r.POST("/jobs", schedulerAuthMiddleware(schedulerKey), handler.CreateJob)
	r.POST("/jobs/claim", handler.ClaimJob)
	r.POST("/jobs/:id/complete", handler.CompleteJob)
	r.POST("/jobs/:id/fail", handler.FailJob)

	// Thoughts
	r.POST("/thoughts", handler.CreateThought)
	r.GET("/thoughts", handler.ListThoughts)

	// Worker orchestration
	r.POST("/workers/personal-thought/run-once", handler.RunWorkerOnce)

	// Health endpoint
	r.GET("/health", handler.GetHealth)

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "ThoughtForge",
			"version":     cfg.GetVersion(),
			"description": "Content pipeline backend: basis material, job queue and draft thoughts",
			"endpoints": map[string]string{
				"basis":    "/basis",
				"jobs":     "/jobs",
				"claim":    "/jobs/claim (POST)",
				"thoughts": "/thoughts",
				"worker":   "/workers/personal-thought/run-once (POST)",
				"health":   "/health",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// schedulerAuthMiddleware guards job enqueueing. With no key configured the
// endpoint is open, matching local development.
func schedulerAuthMiddleware(schedulerKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if schedulerKey == "" {
			c.Next()
			return
		}

		if c.GetHeader("X-Scheduler-Key") != schedulerKey {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		c.Next()
	}
}
