// Package controllers file: controllers/health.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-bet-tips/logger"
)

// Health answers load-balancer health checks.
func Health(c *gin.Context) {
	logger.Debug.Println("Health: health check requested")
	c.String(http.StatusOK, "OK")
}
