package api

import "github.com/gin-gonic/gin"

// HealthHandler provides liveness and readiness endpoints for the service.
//
// Responsibilities:
//   - /healthz: Basic liveness probe (always returns 200 OK).
//   - /readyz: Readiness probe (depends on the table provider's backing store).
type HealthHandler struct {
	ping func() error // Backing-store check; nil when the provider has no live dependency (CSV mode)
}

// NewHealthHandler constructs a HealthHandler with the provided ping function.
//
// Parameters:
//   - ping (func() error): A function used to check if the backing store is
//     reachable. Typically db.Ping from *sql.DB in warehouse mode; nil in
//     CSV mode, where the snapshot is already in memory.
//
// Returns:
//   - *HealthHandler: A new handler instance.
func NewHealthHandler(ping func() error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// Register mounts the health and readiness endpoints into the provided Gin router.
//
// Routes:
//   - GET /healthz: Always returns 200 OK.
//   - GET /readyz: Returns 200 OK if the backing store is reachable (or there
//     is none), 503 otherwise.
//
// Parameters:
//   - r (*gin.Engine): The Gin router to register routes on.
func (h *HealthHandler) Register(r *gin.Engine) {
	// Liveness probe (just checks if the service is up)
	// @Summary      Liveness probe
	// @Description  Always returns OK if the service is running
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Readiness probe (checks the backing store when there is one)
	// @Summary      Readiness probe
	// @Description  Returns ready if the service dependencies are reachable
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Failure      503  {object}  map[string]string
	// @Router       /readyz [get]
	r.GET("/readyz", func(c *gin.Context) {
		if h.ping != nil && h.ping() != nil {
			c.JSON(503, gin.H{"status": "degraded"})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})
}
