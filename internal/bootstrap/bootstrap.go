package bootstrap

import (
	"voice-agent-server/internal/analysis"
	"voice-agent-server/internal/clients/vapi"
	"voice-agent-server/internal/config"
	"voice-agent-server/internal/observability"
	webhookHandler "voice-agent-server/internal/webhook/handler"
	webhookProcessor "voice-agent-server/internal/webhook/processor"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	Logger *observability.Logger

	VapiClient *vapi.Client
	Analyzer   *analysis.Processor

	WebhookHandler webhookHandler.Handler
}

// Initialize sets up all application dependencies
func Initialize(cfg *config.Config, logger *observability.Logger) *Dependencies {
	vapiClient := vapi.NewClient(cfg.Services.VapiAPIKey, cfg.Services.VapiBaseURL, logger)
	analyzer := analysis.New(cfg.Services.OpenAIAPIKey, logger)

	processor := webhookProcessor.New(analyzer, vapiClient, logger)

	return &Dependencies{
		Logger:         logger,
		VapiClient:     vapiClient,
		Analyzer:       analyzer,
		WebhookHandler: webhookHandler.New(processor, cfg.Services.WebhookSecret, logger),
	}
}
