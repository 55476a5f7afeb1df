package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/erp_ledger/internal/platform/config"
)

// getHome godoc
// @Summary Show the status of server.
// @Description Reports the service name and the configured storage driver.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "erp-ledger",
			"storage": cfg.StorageDriver,
		})
	}
}

// registerHomeRoutes registers the unauthenticated status routes.
func registerHomeRoutes(r *gin.Engine, cfg *config.Config) {
	r.GET("/", getHome(cfg))
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
}
