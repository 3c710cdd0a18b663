package callreport

import (
	"encoding/json"
	"fmt"
	"time"
)

// ConversionStatus indicates whether the customer agreed to apply.
type ConversionStatus string

const (
	ConversionConverted     ConversionStatus = "converted"
	ConversionInterested    ConversionStatus = "interested"
	ConversionNotInterested ConversionStatus = "not_interested"
	ConversionUnknown       ConversionStatus = "unknown"
)

// UnmarshalJSON rejects any value outside the closed set. The analyzer relies
// on this to fail the parse on unknown wire values and fall back.
func (s *ConversionStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch ConversionStatus(raw) {
	case ConversionConverted, ConversionInterested, ConversionNotInterested, ConversionUnknown:
		*s = ConversionStatus(raw)
		return nil
	}
	return fmt.Errorf("unknown conversion status %q", raw)
}

// SatisfactionLevel is the customer satisfaction assessment from the transcript.
type SatisfactionLevel string

const (
	SatisfactionVerySatisfied    SatisfactionLevel = "very_satisfied"
	SatisfactionSatisfied        SatisfactionLevel = "satisfied"
	SatisfactionNeutral          SatisfactionLevel = "neutral"
	SatisfactionDissatisfied     SatisfactionLevel = "dissatisfied"
	SatisfactionVeryDissatisfied SatisfactionLevel = "very_dissatisfied"
)

func (s *SatisfactionLevel) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch SatisfactionLevel(raw) {
	case SatisfactionVerySatisfied, SatisfactionSatisfied, SatisfactionNeutral,
		SatisfactionDissatisfied, SatisfactionVeryDissatisfied:
		*s = SatisfactionLevel(raw)
		return nil
	}
	return fmt.Errorf("unknown satisfaction level %q", raw)
}

// TranscriptAnalysis holds LLM-analyzed metrics from a call transcript.
type TranscriptAnalysis struct {
	ConversionStatus      ConversionStatus  `json:"conversion_status"`
	ConversionConfidence  float64           `json:"conversion_confidence"`
	SatisfactionLevel     SatisfactionLevel `json:"satisfaction_level"`
	SatisfactionScore     int               `json:"satisfaction_score"`
	SatisfactionReasoning string            `json:"satisfaction_reasoning"`
	KeyObjections         []string          `json:"key_objections"`
	PositiveSignals       []string          `json:"positive_signals"`
	LanguageDetected      string            `json:"language_detected"`
}

// Normalize fills defaults for fields the LLM reply omitted.
func (a *TranscriptAnalysis) Normalize() {
	if a.ConversionStatus == "" {
		a.ConversionStatus = ConversionUnknown
	}
	if a.SatisfactionLevel == "" {
		a.SatisfactionLevel = SatisfactionNeutral
	}
	if a.SatisfactionScore == 0 {
		a.SatisfactionScore = 3
	}
	if a.KeyObjections == nil {
		a.KeyObjections = []string{}
	}
	if a.PositiveSignals == nil {
		a.PositiveSignals = []string{}
	}
	if a.LanguageDetected == "" {
		a.LanguageDetected = "en"
	}
}

// Validate checks the numeric fields are within their documented ranges.
func (a *TranscriptAnalysis) Validate() error {
	if a.ConversionConfidence < 0 || a.ConversionConfidence > 1 {
		return fmt.Errorf("conversion confidence %v out of range [0,1]", a.ConversionConfidence)
	}
	if a.SatisfactionScore < 1 || a.SatisfactionScore > 5 {
		return fmt.Errorf("satisfaction score %d out of range [1,5]", a.SatisfactionScore)
	}
	return nil
}

// CallMetrics holds basic call metrics from the end-of-call report.
type CallMetrics struct {
	CallID          string     `json:"call_id"`
	DurationSeconds float64    `json:"duration_seconds"`
	Cost            float64    `json:"cost"`
	EndedReason     string     `json:"ended_reason,omitempty"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
}

// OutcomeStatus is the eligibility status recorded from the call trace.
type OutcomeStatus string

const (
	OutcomeEligible       OutcomeStatus = "eligible"
	OutcomeReviewRequired OutcomeStatus = "review_required"
	OutcomeNotEligible    OutcomeStatus = "not_eligible"
	OutcomeNotChecked     OutcomeStatus = "not_checked"
)

// EligibilityOutcome records whether and how eligibility was checked during
// the call, reconstructed from the tool-call trace.
type EligibilityOutcome struct {
	WasChecked        bool          `json:"was_checked"`
	Status            OutcomeStatus `json:"status"`
	AnnualIncome      *float64      `json:"annual_income,omitempty"`
	HasExistingCredit *bool         `json:"has_existing_credit,omitempty"`
}

// CallAnalysisResult is the complete structured output for one call.
//
// AnalysisError is set exactly when TranscriptAnalysis is nil, i.e. when the
// analyzer was skipped; a failed analysis still yields the fallback record.
type CallAnalysisResult struct {
	CallMetrics        CallMetrics         `json:"call_metrics"`
	TranscriptAnalysis *TranscriptAnalysis `json:"transcript_analysis,omitempty"`
	EligibilityOutcome EligibilityOutcome  `json:"eligibility_outcome"`
	AnalysisError      string              `json:"analysis_error,omitempty"`
	AnalyzedAt         time.Time           `json:"analyzed_at"`
}
