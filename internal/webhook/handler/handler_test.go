package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"voice-agent-server/internal/analysis"
	"voice-agent-server/internal/clients/vapi"
	"voice-agent-server/internal/observability"
	"voice-agent-server/internal/webhook/processor"
)

func newTestRouter(webhookSecret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := observability.NewLogger()
	webhookProcessor := processor.New(
		analysis.New("", logger),
		vapi.NewClient("", "http://localhost:0", logger),
		logger,
	)
	h := New(webhookProcessor, webhookSecret, logger)

	router := gin.New()
	router.POST("/webhook", h.HandleWebhook)
	return router
}

func postWebhook(router *gin.Engine, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHandleWebhook_AcknowledgesStatusUpdate(t *testing.T) {
	router := newTestRouter("")

	recorder := postWebhook(router, `{"message": {"type": "status-update", "status": "ringing"}}`, nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "received", gjson.Get(recorder.Body.String(), "status").String())
}

func TestHandleWebhook_FunctionCall(t *testing.T) {
	router := newTestRouter("")

	body := `{"message": {"type": "function-call", "functionCall": {"name": "check_credit_card_eligibility", "parameters": {"annual_income": 60000}}}}`
	recorder := postWebhook(router, body, nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, gjson.Get(recorder.Body.String(), "result").String(), "eligible")
}

func TestHandleWebhook_SecretRequired(t *testing.T) {
	router := newTestRouter("top-secret")
	body := `{"message": {"type": "status-update"}}`

	tests := []struct {
		name     string
		headers  map[string]string
		wantCode int
	}{
		{"missing secret", nil, http.StatusUnauthorized},
		{"wrong secret", map[string]string{"x-vapi-secret": "nope"}, http.StatusUnauthorized},
		{"correct secret", map[string]string{"x-vapi-secret": "top-secret"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postWebhook(router, body, tt.headers)
			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}

func TestHandleWebhook_NoSecretConfiguredSkipsCheck(t *testing.T) {
	router := newTestRouter("")

	recorder := postWebhook(router, `{"message": {"type": "status-update"}}`, map[string]string{"x-vapi-secret": "anything"})

	assert.Equal(t, http.StatusOK, recorder.Code)
}
