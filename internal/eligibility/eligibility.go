package eligibility

// Status is the outcome of a credit card eligibility check.
type Status string

const (
	StatusEligible       Status = "eligible"
	StatusReviewRequired Status = "review_required"
	StatusNotEligible    Status = "not_eligible"
)

// Minimum income threshold for automatic approval
const minIncomeThreshold = 25000

// ToolName is the function name the assistant invokes to run an eligibility check.
const ToolName = "check_credit_card_eligibility"

// Result of an eligibility check. Inputs are echoed back unchanged so the
// caller can attach them to the call record.
type Result struct {
	Status            Status   `json:"status"`
	Message           string   `json:"message"`
	RecommendedAction string   `json:"recommended_action"`
	AnnualIncome      float64  `json:"annual_income"`
	HasExistingCredit *bool    `json:"has_existing_credit,omitempty"`
}

// Check evaluates credit card eligibility for the Bank-travel card.
//
// Rules, first match wins:
//   - income >= $25,000 -> eligible
//   - income < $25,000 but has existing credit -> review required
//   - income < $25,000, no or unknown credit history -> not eligible
//
// Any numeric income is accepted, including zero or negative values, which
// simply fall below the threshold. hasExistingCredit is tri-state: nil means
// the customer's credit history is unknown.
func Check(annualIncome float64, hasExistingCredit *bool) Result {
	if annualIncome >= minIncomeThreshold {
		return Result{
			Status:            StatusEligible,
			Message:           "Great news! Based on the information provided, you appear to be eligible for the Bank-travel credit card.",
			RecommendedAction: "You can proceed with the application. Would you like me to help you get started?",
			AnnualIncome:      annualIncome,
			HasExistingCredit: hasExistingCredit,
		}
	}

	if hasExistingCredit != nil && *hasExistingCredit {
		return Result{
			Status:            StatusReviewRequired,
			Message:           "Based on your income and credit history, your application would need a quick review by our team.",
			RecommendedAction: "I can submit your application for review. Our team typically responds within 1-2 business days. Would you like to proceed?",
			AnnualIncome:      annualIncome,
			HasExistingCredit: hasExistingCredit,
		}
	}

	return Result{
		Status:            StatusNotEligible,
		Message:           "Unfortunately, based on the information provided, you don't currently qualify for this credit card.",
		RecommendedAction: "I'd recommend our Starter Credit Card, which is designed to help build credit history. Can I transfer you to a human representative who can tell you more about that option?",
		AnnualIncome:      annualIncome,
		HasExistingCredit: hasExistingCredit,
	}
}

// FormatVoiceResponse renders the result as a natural language sentence
// suitable for the assistant to speak aloud.
func FormatVoiceResponse(result Result) string {
	return result.Message + " " + result.RecommendedAction
}
