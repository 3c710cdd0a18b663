package analysis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-agent-server/internal/callreport"
	"voice-agent-server/internal/observability"
)

const sampleTranscript = "bot: Hi, this is Andrew from Bull Bank. How can I help you today?\n" +
	"user: I'd like to apply for the travel credit card please."

// fakeCompletionServer returns an httptest server that answers every chat
// completion request with the given assistant message content.
func fakeCompletionServer(t *testing.T, content string, requests *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			requests.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]interface{}{
						"role":    "assistant",
						"content": content,
					},
				},
			},
		})
		require.NoError(t, err)
	}))
}

func newTestProcessor(apiKey string, serverURL string) *Processor {
	logger := observability.NewLogger()
	if serverURL == "" {
		return New(apiKey, logger)
	}
	return New(apiKey, logger, option.WithBaseURL(serverURL+"/"), option.WithMaxRetries(0))
}

func TestAnalyze_NoAPIKeySkips(t *testing.T) {
	p := newTestProcessor("", "")

	record, reason := p.Analyze(context.Background(), sampleTranscript)

	assert.Nil(t, record)
	assert.Equal(t, SkipReasonNoAPIKey, reason)
}

func TestAnalyze_ShortTranscriptSkipsWithoutAPICall(t *testing.T) {
	var requests atomic.Int64
	server := fakeCompletionServer(t, "{}", &requests)
	defer server.Close()

	p := newTestProcessor("test-key", server.URL)

	record, reason := p.Analyze(context.Background(), "too short")

	assert.Nil(t, record)
	assert.Equal(t, SkipReasonTranscriptShort, reason)
	assert.Equal(t, int64(0), requests.Load())
}

func TestAnalyze_ParsesFencedReply(t *testing.T) {
	reply := "```json\n" + `{
		"conversion_status": "converted",
		"conversion_confidence": 0.85,
		"satisfaction_level": "very_satisfied",
		"satisfaction_score": 5,
		"satisfaction_reasoning": "Customer thanked the agent and applied",
		"key_objections": [],
		"positive_signals": ["asked about rewards program"],
		"language_detected": "en"
	}` + "\n```"

	server := fakeCompletionServer(t, reply, nil)
	defer server.Close()

	p := newTestProcessor("test-key", server.URL)

	record, reason := p.Analyze(context.Background(), sampleTranscript)

	require.NotNil(t, record)
	assert.Empty(t, reason)
	assert.Equal(t, callreport.ConversionConverted, record.ConversionStatus)
	assert.Equal(t, 0.85, record.ConversionConfidence)
	assert.Equal(t, callreport.SatisfactionVerySatisfied, record.SatisfactionLevel)
	assert.Equal(t, 5, record.SatisfactionScore)
	assert.Equal(t, []string{"asked about rewards program"}, record.PositiveSignals)
}

func TestAnalyze_UnparseableReplyFallsBack(t *testing.T) {
	server := fakeCompletionServer(t, "I'm sorry, I can't help with that.", nil)
	defer server.Close()

	p := newTestProcessor("test-key", server.URL)

	record, reason := p.Analyze(context.Background(), sampleTranscript)

	assert.Empty(t, reason)
	assert.Equal(t, Fallback(), record)
}

func TestAnalyze_UnknownEnumFallsBack(t *testing.T) {
	reply := `{
		"conversion_status": "maybe",
		"satisfaction_level": "neutral",
		"satisfaction_score": 3,
		"language_detected": "en"
	}`
	server := fakeCompletionServer(t, reply, nil)
	defer server.Close()

	p := newTestProcessor("test-key", server.URL)

	record, _ := p.Analyze(context.Background(), sampleTranscript)

	assert.Equal(t, Fallback(), record)
}

func TestAnalyze_ServerErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "boom"}}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	p := newTestProcessor("test-key", server.URL)

	record, reason := p.Analyze(context.Background(), sampleTranscript)

	assert.Empty(t, reason)
	assert.Equal(t, Fallback(), record)
}

func TestParseReply_DefaultsForOmittedFields(t *testing.T) {
	record, err := parseReply(`{"satisfaction_reasoning": "fine"}`)

	require.NoError(t, err)
	assert.Equal(t, callreport.ConversionUnknown, record.ConversionStatus)
	assert.Equal(t, callreport.SatisfactionNeutral, record.SatisfactionLevel)
	assert.Equal(t, 3, record.SatisfactionScore)
	assert.Equal(t, "en", record.LanguageDetected)
	assert.Equal(t, []string{}, record.KeyObjections)
	assert.Equal(t, []string{}, record.PositiveSignals)
}

func TestParseReply_OutOfRangeScoreFails(t *testing.T) {
	_, err := parseReply(`{"satisfaction_score": 9}`)
	assert.Error(t, err)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}  ", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.reply))
		})
	}
}

func TestFallback_IsDocumentedRecord(t *testing.T) {
	record := Fallback()

	assert.Equal(t, callreport.ConversionUnknown, record.ConversionStatus)
	assert.Equal(t, 0.0, record.ConversionConfidence)
	assert.Equal(t, callreport.SatisfactionNeutral, record.SatisfactionLevel)
	assert.Equal(t, 3, record.SatisfactionScore)
	assert.Equal(t, "Analysis could not be performed", record.SatisfactionReasoning)
	assert.Empty(t, record.KeyObjections)
	assert.Empty(t, record.PositiveSignals)
	assert.Equal(t, "en", record.LanguageDetected)
}
