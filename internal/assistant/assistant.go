// Package assistant holds the complete Vapi configuration for the Andrew
// voice assistant: voice, model, transcriber, call behavior, and the
// eligibility tool registration. The provisioning command serializes these
// maps directly into the Vapi assistant payload.
package assistant

import "voice-agent-server/internal/eligibility"

// Name is the display name of the assistant resource on Vapi.
const Name = "Andrew - Bull Bank Representative"

// VoiceConfig uses ElevenLabs' "Adam" voice; the multilingual model keeps
// Spanish pronunciation usable.
var VoiceConfig = map[string]interface{}{
	"provider":        "11labs",
	"voiceId":         "pNInz6obpgDQGcFmaJgB",
	"stability":       0.5,
	"similarityBoost": 0.75,
	"model":           "eleven_multilingual_v2",
}

// ModelConfig is the conversational LLM configuration, including the
// eligibility tool the model may invoke mid-call.
var ModelConfig = map[string]interface{}{
	"provider":    "openai",
	"model":       "gpt-4o",
	"temperature": 0.7,
	"maxTokens":   500,
	"messages": []map[string]interface{}{
		{
			"role":    "system",
			"content": SystemPrompt,
		},
	},
	"tools": []map[string]interface{}{
		eligibility.ToolDefinition,
	},
}

// TranscriberConfig auto-detects English and Spanish.
var TranscriberConfig = map[string]interface{}{
	"provider": "deepgram",
	"model":    "nova-2",
	"language": "multi",
}

// Definition returns the complete assistant payload for create/update calls.
func Definition(serverURL string, serverSecret string) map[string]interface{} {
	definition := map[string]interface{}{
		"name":             Name,
		"voice":            VoiceConfig,
		"model":            ModelConfig,
		"firstMessage":     FirstMessage,
		"firstMessageMode": "assistant-speaks-first",
		"transcriber":      TranscriberConfig,

		// Call behavior settings
		"silenceTimeoutSeconds": 30,
		"maxDurationSeconds":    600,
		"endCallMessage":        "Thank you for calling Bull Bank. Have a great day!",
		"endCallPhrases":        []string{"goodbye", "bye", "that's all", "I'm done"},

		"metadata": map[string]interface{}{
			"agent_type": "credit_card_sales",
			"bank":       "Bull Bank",
			"product":    "Bank-travel Credit Card",
		},
	}

	if serverURL != "" {
		server := map[string]interface{}{"url": serverURL}
		if serverSecret != "" {
			server["secret"] = serverSecret
		}
		definition["server"] = server
	}

	return definition
}

// StructuredOutputDefinition is the call-analysis structured output created
// on Vapi and attached to the assistant, mirroring the fields the webhook
// pipeline extracts so both surfaces agree in the dashboard.
var StructuredOutputDefinition = map[string]interface{}{
	"name":        "Bull Bank Call Analysis",
	"type":        "ai",
	"description": "Extract conversion status, customer satisfaction, eligibility outcome, and key insights from Bull Bank credit card sales calls.",
	"schema": map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"conversionStatus": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"converted", "interested", "not_interested", "unknown"},
				"description": "Whether the customer agreed to apply for the credit card. 'converted' = explicitly agreed to apply, 'interested' = showed interest but didn't commit, 'not_interested' = declined, 'unknown' = cannot determine",
			},
			"conversionConfidence": map[string]interface{}{
				"type":        "number",
				"minimum":     0,
				"maximum":     1,
				"description": "Confidence score for the conversion status assessment (0.0 to 1.0)",
			},
			"satisfactionLevel": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"very_satisfied", "satisfied", "neutral", "dissatisfied", "very_dissatisfied"},
				"description": "Overall customer satisfaction based on tone, engagement, and responses during the call",
			},
			"satisfactionScore": map[string]interface{}{
				"type":        "integer",
				"minimum":     1,
				"maximum":     5,
				"description": "Satisfaction score on a 1-5 scale (1=very dissatisfied, 5=very satisfied)",
			},
			"satisfactionReasoning": map[string]interface{}{
				"type":        "string",
				"description": "Brief 1-2 sentence explanation for the satisfaction assessment",
			},
			"keyObjections": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "List of specific customer concerns or objections raised (e.g., 'annual fee too high', 'interest rate concerns')",
			},
			"positiveSignals": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "List of interest indicators and positive engagement signals (e.g., 'asked about rewards', 'inquired about credit limit')",
			},
			"eligibilityChecked": map[string]interface{}{
				"type":        "boolean",
				"description": "Whether eligibility was discussed or checked during the call",
			},
			"eligibilityStatus": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"eligible", "review_required", "not_eligible", "not_checked"},
				"description": "Result of eligibility assessment if discussed",
			},
			"customerIncome": map[string]interface{}{
				"type":        "number",
				"description": "Customer's reported annual income if mentioned during the call",
			},
			"hasExistingCredit": map[string]interface{}{
				"type":        "boolean",
				"description": "Whether the customer mentioned having existing credit history",
			},
			"languageUsed": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"english", "spanish", "mixed"},
				"description": "Primary language used in the conversation",
			},
			"callSummary": map[string]interface{}{
				"type":        "string",
				"description": "Brief 2-3 sentence summary of the call outcome, key points discussed, and any follow-up needed",
			},
		},
		"required": []string{
			"conversionStatus",
			"satisfactionLevel",
			"satisfactionScore",
			"eligibilityChecked",
			"languageUsed",
			"callSummary",
		},
	},
}
