package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	webhookHandler "voice-agent-server/internal/webhook/handler"
)

const serviceVersion = "0.1.0"

type API struct {
	router         *gin.RouterGroup
	webhookHandler webhookHandler.Handler
}

func New(router *gin.RouterGroup, webhookHandler webhookHandler.Handler) API {
	return API{
		router:         router,
		webhookHandler: webhookHandler,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	a.router.POST("/webhook", a.webhookHandler.HandleWebhook)
}

func (a *API) Health() {
	a.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   "Andrew Voice Agent Webhook Server",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"version":   serviceVersion,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}
