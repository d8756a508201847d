package handlers

import (
	"net/http"

	"tourbook/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles GET /health with the last health snapshot.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code, label := http.StatusOK, "ok"
	if !status.Healthy {
		code, label = http.StatusServiceUnavailable, "degraded"
	}
	c.JSON(code, gin.H{
		"status":    label,
		"services":  status.Services,
		"checkedAt": status.CheckedAt,
	})
}
