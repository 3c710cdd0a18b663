package callreport

import (
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"voice-agent-server/internal/eligibility"
)

// The end-of-call report carries the conversation trace under
// message.artifact.messages; older payloads only carry a flat transcript.
const (
	turnsPath          = "message.artifact.messages"
	flatTranscriptPath = "message.transcript"
)

// ExtractTranscript builds a flat "role: content" transcript from the call
// trace. Falls back to the flat transcript field when no turns are present,
// and returns an empty string when neither exists. Total over any payload:
// malformed or missing fields never cause an error.
func ExtractTranscript(payload []byte) string {
	turns := gjson.GetBytes(payload, turnsPath)

	var lines []string
	if turns.IsArray() {
		turns.ForEach(func(_, turn gjson.Result) bool {
			role := turn.Get("role").String()
			content := turn.Get("message").String()
			if content == "" {
				content = turn.Get("content").String()
			}
			if role != "" && content != "" {
				lines = append(lines, role+": "+content)
			}
			return true
		})
	}
	if len(lines) > 0 {
		return strings.Join(lines, "\n")
	}

	return gjson.GetBytes(payload, flatTranscriptPath).String()
}

// ExtractEligibilityOutcome scans the call trace for invocations of the
// eligibility tool and reconstructs the outcome. Tool-call arguments may be a
// JSON string or an already-parsed object; unparseable arguments leave the
// income and credit fields unset. The status is inferred from tool result
// text by keyword, checked in priority order since "eligible" is a substring
// of "not eligible".
func ExtractEligibilityOutcome(payload []byte) EligibilityOutcome {
	outcome := EligibilityOutcome{Status: OutcomeNotChecked}

	turns := gjson.GetBytes(payload, turnsPath)
	if !turns.IsArray() {
		return outcome
	}

	turns.ForEach(func(_, turn gjson.Result) bool {
		turn.Get("toolCalls").ForEach(func(_, call gjson.Result) bool {
			if call.Get("function.name").String() != eligibility.ToolName {
				return true
			}
			outcome.WasChecked = true
			recordArguments(call.Get("function.arguments"), &outcome)
			return true
		})

		if turn.Get("role").String() == "tool_call_result" &&
			turn.Get("name").String() == eligibility.ToolName {
			outcome.WasChecked = true
			if status, ok := inferStatus(turn.Get("result").String()); ok {
				outcome.Status = status
			}
		}
		return true
	})

	return outcome
}

// recordArguments copies annual_income and has_existing_credit out of the
// tool-call arguments, tolerating both encodings and silently ignoring
// anything unparseable.
func recordArguments(args gjson.Result, outcome *EligibilityOutcome) {
	if args.Type == gjson.String {
		inner := args.String()
		if !gjson.Valid(inner) {
			return
		}
		args = gjson.Parse(inner)
	}
	if !args.IsObject() {
		return
	}

	if income := args.Get("annual_income"); income.Exists() {
		v := income.Float()
		outcome.AnnualIncome = &v
	}
	if credit := args.Get("has_existing_credit"); credit.IsBool() {
		v := credit.Bool()
		outcome.HasExistingCredit = &v
	}
}

// inferStatus maps tool result text onto an eligibility status by
// case-insensitive substring match.
func inferStatus(result string) (OutcomeStatus, bool) {
	// Underscored wire values ("not_eligible") match their spoken forms.
	lowered := strings.ReplaceAll(strings.ToLower(result), "_", " ")
	switch {
	case strings.Contains(lowered, "not eligible"):
		return OutcomeNotEligible, true
	case strings.Contains(lowered, "review"):
		return OutcomeReviewRequired, true
	case strings.Contains(lowered, "eligible"):
		return OutcomeEligible, true
	}
	return "", false
}

// ExtractCallMetrics reads the call metrics directly off the payload. The
// call ID defaults to "unknown", which the metadata publisher treats as a
// sentinel and refuses to publish against.
func ExtractCallMetrics(payload []byte) CallMetrics {
	metrics := CallMetrics{CallID: "unknown"}

	if id := gjson.GetBytes(payload, "message.call.id"); id.String() != "" {
		metrics.CallID = id.String()
	}
	metrics.DurationSeconds = gjson.GetBytes(payload, "message.durationSeconds").Float()
	metrics.Cost = gjson.GetBytes(payload, "message.cost").Float()
	metrics.EndedReason = gjson.GetBytes(payload, "message.endedReason").String()
	metrics.StartedAt = parseTimestamp(gjson.GetBytes(payload, "message.startedAt").String())
	metrics.EndedAt = parseTimestamp(gjson.GetBytes(payload, "message.endedAt").String())

	return metrics
}

func parseTimestamp(value string) *time.Time {
	if value == "" {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	return &ts
}
