package handler

import (
	"crypto/subtle"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"voice-agent-server/internal/apierrors"
	"voice-agent-server/internal/observability"
	"voice-agent-server/internal/webhook/processor"
)

// Handler exposes the Vapi webhook endpoint.
type Handler struct {
	processor     *processor.WebhookProcessor
	webhookSecret string
	logger        *observability.Logger
}

func New(webhookProcessor *processor.WebhookProcessor, webhookSecret string, logger *observability.Logger) Handler {
	return Handler{
		processor:     webhookProcessor,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// HandleWebhook receives all Vapi call events. The body is read raw rather
// than bound to a struct: the payload shape varies by event type and the
// processor tolerates whatever arrives.
func (h *Handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", "failed to read request body")
		return
	}

	// Shared-secret check only applies when a secret is configured.
	if h.webhookSecret != "" {
		provided := c.GetHeader("x-vapi-secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(h.webhookSecret)) != 1 {
			apierrors.Unauthorized(c, "invalid webhook secret")
			return
		}
	}

	response, err := h.processor.Dispatch(ctx, payload)
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
