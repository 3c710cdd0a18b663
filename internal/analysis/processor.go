package analysis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"voice-agent-server/internal/callreport"
	"voice-agent-server/internal/observability"
)

const (
	analysisModel       = openai.ChatModelGPT4o
	analysisTemperature = 0.3
	analysisMaxTokens   = 500
	analysisTimeout     = 30 * time.Second

	// Transcripts shorter than this carry no signal worth an API call.
	minTranscriptLength = 50
)

// Skip reasons surfaced as the result's analysis_error when the analyzer
// never ran.
const (
	SkipReasonNoAPIKey        = "transcript analysis skipped: OPENAI_API_KEY not configured"
	SkipReasonTranscriptShort = "transcript too short for meaningful analysis"
)

// Processor analyzes call transcripts with a single chat-completion call.
type Processor struct {
	apiKey        string
	logger        *observability.Logger
	clientOptions []option.RequestOption
}

// New creates a transcript analysis processor. Extra client options are
// appended after the API key, which lets tests point the client at a local
// server.
func New(apiKey string, logger *observability.Logger, clientOptions ...option.RequestOption) *Processor {
	return &Processor{
		apiKey:        apiKey,
		logger:        logger,
		clientOptions: clientOptions,
	}
}

// Analyze extracts structured metrics from a call transcript.
//
// Returns (nil, reason) when analysis was skipped before the API call: no
// API key configured, or the transcript is too short. Every other path
// returns a record with an empty reason: the parsed analysis on success, the
// fallback record on any call or parse failure. Analyze never returns an
// error; the call-end pipeline must complete regardless.
func (p *Processor) Analyze(ctx context.Context, transcript string) (*callreport.TranscriptAnalysis, string) {
	if p.apiKey == "" {
		p.logger.Warn(ctx, "OPENAI_API_KEY not set, skipping transcript analysis")
		return nil, SkipReasonNoAPIKey
	}
	if len(strings.TrimSpace(transcript)) < minTranscriptLength {
		p.logger.Warn(ctx, "Transcript too short for meaningful analysis")
		return nil, SkipReasonTranscriptShort
	}

	ctx, cancel := context.WithTimeout(ctx, analysisTimeout)
	defer cancel()

	options := append([]option.RequestOption{option.WithAPIKey(p.apiKey)}, p.clientOptions...)
	client := openai.NewClient(options...)

	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: analysisModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(analysisPrompt + transcript),
		},
		Temperature: openai.Float(analysisTemperature),
		MaxTokens:   openai.Int(analysisMaxTokens),
	})
	if err != nil {
		p.logger.Error(ctx, "Transcript analysis call failed", err)
		return Fallback(), ""
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		p.logger.Warn(ctx, "Empty response from OpenAI")
		return Fallback(), ""
	}

	analysis, err := parseReply(completion.Choices[0].Message.Content)
	if err != nil {
		p.logger.Error(ctx, "Failed to parse analysis reply", err)
		return Fallback(), ""
	}

	return analysis, ""
}

// parseReply decodes the model's JSON reply into a TranscriptAnalysis,
// tolerating a surrounding markdown code fence. Unknown enum values fail the
// decode via the strict enum unmarshalers.
func parseReply(reply string) (*callreport.TranscriptAnalysis, error) {
	reply = stripCodeFence(reply)

	var analysis callreport.TranscriptAnalysis
	if err := json.Unmarshal([]byte(reply), &analysis); err != nil {
		return nil, err
	}

	analysis.Normalize()
	if err := analysis.Validate(); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// stripCodeFence removes a surrounding markdown code block, which models
// sometimes emit despite the JSON-only instruction.
func stripCodeFence(reply string) string {
	reply = strings.TrimSpace(reply)
	if strings.HasPrefix(reply, "```") {
		if _, rest, found := strings.Cut(reply, "\n"); found {
			reply = rest
		}
	}
	if strings.HasSuffix(reply, "```") {
		if idx := strings.LastIndex(reply, "```"); idx >= 0 {
			reply = reply[:idx]
		}
	}
	return strings.TrimSpace(reply)
}

// Fallback is the deterministic neutral record returned when analysis ran
// but could not produce a usable result.
func Fallback() *callreport.TranscriptAnalysis {
	return &callreport.TranscriptAnalysis{
		ConversionStatus:      callreport.ConversionUnknown,
		ConversionConfidence:  0.0,
		SatisfactionLevel:     callreport.SatisfactionNeutral,
		SatisfactionScore:     3,
		SatisfactionReasoning: "Analysis could not be performed",
		KeyObjections:         []string{},
		PositiveSignals:       []string{},
		LanguageDetected:      "en",
	}
}
