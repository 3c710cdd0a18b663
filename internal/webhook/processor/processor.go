package processor

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"voice-agent-server/internal/analysis"
	"voice-agent-server/internal/callreport"
	"voice-agent-server/internal/clients/vapi"
	"voice-agent-server/internal/eligibility"
	"voice-agent-server/internal/observability"
)

// Recognized event-type tags on inbound Vapi webhooks.
const (
	EventFunctionCall    = "function-call"
	EventStatusUpdate    = "status-update"
	EventEndOfCallReport = "end-of-call-report"
	EventTranscript      = "transcript"
)

const unknownFunctionReply = "I'm sorry, I couldn't process that request. Let me help you another way."

// WebhookProcessor routes inbound Vapi events and runs the end-of-call
// analysis pipeline. All state is request-scoped; the processor itself only
// carries its collaborators.
type WebhookProcessor struct {
	analyzer   *analysis.Processor
	vapiClient *vapi.Client
	logger     *observability.Logger
}

func New(analyzer *analysis.Processor, vapiClient *vapi.Client, logger *observability.Logger) *WebhookProcessor {
	return &WebhookProcessor{
		analyzer:   analyzer,
		vapiClient: vapiClient,
		logger:     logger,
	}
}

// AckResponse acknowledges events that need no further processing.
type AckResponse struct {
	Status string `json:"status"`
}

// FunctionCallResponse carries the result string the platform speaks aloud.
type FunctionCallResponse struct {
	Result string `json:"result"`
}

// CallEndResponse carries the full analysis back to the platform along with
// whether the metadata publish succeeded.
type CallEndResponse struct {
	Status              string                 `json:"status"`
	Analysis            map[string]interface{} `json:"analysis"`
	VapiMetadataUpdated bool                   `json:"vapi_metadata_updated"`
}

// Dispatch routes one webhook payload by its message.type tag. Unrecognized
// tags are acknowledged without action. Any panic below this point is
// converted to an error here, so the handler surfaces exactly one generic
// server error for unexpected failures.
func (p *WebhookProcessor) Dispatch(ctx context.Context, payload []byte) (response interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("webhook dispatch failed: %+v", r)
		}
	}()

	messageType := gjson.GetBytes(payload, "message.type").String()
	ctx = observability.WithFields(ctx, observability.Field{Key: "message_type", Value: messageType})

	switch messageType {
	case EventFunctionCall:
		return p.handleFunctionCall(ctx, payload), nil

	case EventEndOfCallReport:
		return p.handleCallEnd(ctx, payload), nil

	case EventTranscript:
		ctx = observability.WithFields(ctx,
			observability.Field{Key: "role", Value: gjson.GetBytes(payload, "message.role").String()},
			observability.Field{Key: "transcript", Value: gjson.GetBytes(payload, "message.transcript").String()},
		)
		p.logger.Info(ctx, "Transcript received")
		return AckResponse{Status: "received"}, nil

	case EventStatusUpdate:
		ctx = observability.WithFields(ctx,
			observability.Field{Key: "call_status", Value: gjson.GetBytes(payload, "message.status").String()},
		)
		p.logger.Info(ctx, "Call status update")
		return AckResponse{Status: "received"}, nil

	default:
		p.logger.Info(ctx, "Unhandled message type")
		return AckResponse{Status: "received"}, nil
	}
}

// handleFunctionCall executes the tool the assistant requested and returns
// its result for voice delivery. Only the eligibility check is implemented;
// any other name gets a generic apology so the assistant can recover
// conversationally.
func (p *WebhookProcessor) handleFunctionCall(ctx context.Context, payload []byte) FunctionCallResponse {
	functionCall := gjson.GetBytes(payload, "message.functionCall")
	name := functionCall.Get("name").String()
	params := functionCall.Get("parameters")

	ctx = observability.WithFields(ctx, observability.Field{Key: "function_name", Value: name})

	if name != eligibility.ToolName {
		p.logger.Warn(ctx, "Unknown function requested")
		return FunctionCallResponse{Result: unknownFunctionReply}
	}

	annualIncome := params.Get("annual_income").Float()
	var hasExistingCredit *bool
	if credit := params.Get("has_existing_credit"); credit.IsBool() {
		v := credit.Bool()
		hasExistingCredit = &v
	}

	result := eligibility.Check(annualIncome, hasExistingCredit)
	ctx = observability.WithFields(ctx, observability.Field{Key: "eligibility_status", Value: string(result.Status)})
	p.logger.Info(ctx, "Eligibility check completed")

	return FunctionCallResponse{Result: eligibility.FormatVoiceResponse(result)}
}

// handleCallEnd runs the analysis pipeline for one completed call: extract
// the transcript and tool trace, analyze, assemble the result, and publish
// it to Vapi best-effort. Every stage degrades instead of failing, so a
// result is always produced.
func (p *WebhookProcessor) handleCallEnd(ctx context.Context, payload []byte) CallEndResponse {
	metrics := callreport.ExtractCallMetrics(payload)
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "call_id", Value: metrics.CallID},
		observability.Field{Key: "duration_seconds", Value: metrics.DurationSeconds},
		observability.Field{Key: "cost", Value: metrics.Cost},
	)
	p.logger.Info(ctx, "Call ended")

	transcript := callreport.ExtractTranscript(payload)
	outcome := callreport.ExtractEligibilityOutcome(payload)

	analysisRecord, skipReason := p.analyzer.Analyze(ctx, transcript)

	result := callreport.BuildResult(metrics, analysisRecord, outcome, skipReason)
	metadata := callreport.FlattenForMetadata(result)

	updated := p.vapiClient.UpdateCallMetadata(ctx, metrics.CallID, metadata)
	if !updated {
		p.logger.Warn(ctx, "Call metadata was not published")
	}

	return CallEndResponse{
		Status:              "received",
		Analysis:            metadata,
		VapiMetadataUpdated: updated,
	}
}
