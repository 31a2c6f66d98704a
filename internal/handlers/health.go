package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promotora-credito/app-cadastro/internal/services"
)

// HealthChecker reports dependency health
type HealthChecker interface {
	Check(ctx context.Context) services.HealthReport
}

// HealthCheck godoc
// @Summary Verificar saúde da API
// @Description Verifica MongoDB e Redis. Sem MongoDB a API segue com os campos padrão (degraded); sem Redis não há sessões.
// @Tags health
// @Produce json
// @Success 200 {object} services.HealthReport "healthy ou degraded"
// @Failure 503 {object} services.HealthReport "unhealthy"
// @Router /health [get]
func HealthCheck(checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := checker.Check(c.Request.Context())
		status := http.StatusOK
		if report.Status == "unhealthy" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, report)
	}
}
