package callreport

import "time"

// metadataVersion tags the flattened record so dashboard consumers can tell
// which layout they are looking at.
const metadataVersion = "1.0"

// BuildResult aggregates the per-call records into one analysis result.
// analysisErr is non-empty only when the analyzer was skipped.
func BuildResult(metrics CallMetrics, analysis *TranscriptAnalysis, outcome EligibilityOutcome, analysisErr string) CallAnalysisResult {
	return CallAnalysisResult{
		CallMetrics:        metrics,
		TranscriptAnalysis: analysis,
		EligibilityOutcome: outcome,
		AnalysisError:      analysisErr,
		AnalyzedAt:         time.Now().UTC(),
	}
}

// FlattenForMetadata flattens the result into the single-level map the Vapi
// dashboard displays under a call's metadata. Fields from absent optional
// sub-records are omitted entirely rather than written as nulls.
func FlattenForMetadata(result CallAnalysisResult) map[string]interface{} {
	metadata := map[string]interface{}{
		"analysis_version": metadataVersion,
		"duration_seconds": result.CallMetrics.DurationSeconds,
		"call_cost":        result.CallMetrics.Cost,
	}

	if result.CallMetrics.EndedReason != "" {
		metadata["ended_reason"] = result.CallMetrics.EndedReason
	}

	if analysis := result.TranscriptAnalysis; analysis != nil {
		metadata["conversion_status"] = string(analysis.ConversionStatus)
		metadata["conversion_confidence"] = analysis.ConversionConfidence
		metadata["satisfaction_level"] = string(analysis.SatisfactionLevel)
		metadata["satisfaction_score"] = analysis.SatisfactionScore
		metadata["satisfaction_reasoning"] = analysis.SatisfactionReasoning
		metadata["key_objections"] = analysis.KeyObjections
		metadata["positive_signals"] = analysis.PositiveSignals
		metadata["language_detected"] = analysis.LanguageDetected
	}

	metadata["eligibility_checked"] = result.EligibilityOutcome.WasChecked
	if result.EligibilityOutcome.Status != OutcomeNotChecked {
		metadata["eligibility_status"] = string(result.EligibilityOutcome.Status)
	}
	if result.EligibilityOutcome.AnnualIncome != nil {
		metadata["customer_income"] = *result.EligibilityOutcome.AnnualIncome
	}
	if result.EligibilityOutcome.HasExistingCredit != nil {
		metadata["has_existing_credit"] = *result.EligibilityOutcome.HasExistingCredit
	}

	if result.AnalysisError != "" {
		metadata["analysis_error"] = result.AnalysisError
	}

	metadata["analyzed_at"] = result.AnalyzedAt.Format(time.RFC3339)

	return metadata
}
