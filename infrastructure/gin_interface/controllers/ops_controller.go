package controllers

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/reet-571099/Team6-272Project/application/ports/outbound"
)

// OpsController exposes liveness and readiness probes for a pipeline service.
type OpsController interface {
	Healthz(c *gin.Context)
	Readyz(c *gin.Context)
	MarkReady()
	RegisterRoutes(g *gin.Engine)
}

type opsController struct {
	logger outbound.LoggerPort
	ready  atomic.Bool
}

func NewOpsController(logger outbound.LoggerPort) OpsController {
	return &opsController{
		logger: logger,
	}
}

func (o *opsController) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (o *opsController) Readyz(c *gin.Context) {
	if !o.ready.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// MarkReady flips the readiness probe once the consumer loop is running.
func (o *opsController) MarkReady() {
	o.ready.Store(true)
}

func (o *opsController) RegisterRoutes(g *gin.Engine) {
	g.GET("/healthz", o.Healthz)
	g.GET("/readyz", o.Readyz)
}
