package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(v bool) *bool { return &v }

func TestCheck_StatusRules(t *testing.T) {
	tests := []struct {
		name              string
		annualIncome      float64
		hasExistingCredit *bool
		want              Status
	}{
		{
			name:         "high income is eligible",
			annualIncome: 50000,
			want:         StatusEligible,
		},
		{
			name:         "exact threshold is eligible",
			annualIncome: 25000,
			want:         StatusEligible,
		},
		{
			name:              "high income eligible regardless of credit history",
			annualIncome:      100000,
			hasExistingCredit: boolPtr(false),
			want:              StatusEligible,
		},
		{
			name:              "below threshold with credit requires review",
			annualIncome:      20000,
			hasExistingCredit: boolPtr(true),
			want:              StatusReviewRequired,
		},
		{
			name:              "below threshold without credit is not eligible",
			annualIncome:      15000,
			hasExistingCredit: boolPtr(false),
			want:              StatusNotEligible,
		},
		{
			name:         "below threshold with unknown credit is not eligible",
			annualIncome: 15000,
			want:         StatusNotEligible,
		},
		{
			name:              "zero income without credit is not eligible",
			annualIncome:      0,
			hasExistingCredit: boolPtr(false),
			want:              StatusNotEligible,
		},
		{
			name:         "negative income treated as below threshold",
			annualIncome: -5000,
			want:         StatusNotEligible,
		},
		{
			name:              "negative income with credit requires review",
			annualIncome:      -5000,
			hasExistingCredit: boolPtr(true),
			want:              StatusReviewRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Check(tt.annualIncome, tt.hasExistingCredit)
			assert.Equal(t, tt.want, result.Status)
		})
	}
}

func TestCheck_EchoesInputsAndPopulatesFields(t *testing.T) {
	hasCredit := boolPtr(true)
	result := Check(30000, hasCredit)

	assert.NotEmpty(t, result.Message)
	assert.NotEmpty(t, result.RecommendedAction)
	assert.Equal(t, float64(30000), result.AnnualIncome)
	assert.Equal(t, hasCredit, result.HasExistingCredit)
}

func TestCheck_Deterministic(t *testing.T) {
	first := Check(20000, boolPtr(true))
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Check(20000, boolPtr(true)))
	}
}

func TestFormatVoiceResponse_ContainsMessageAndAction(t *testing.T) {
	for _, income := range []float64{50000, 20000, 15000} {
		result := Check(income, boolPtr(income == 20000))
		response := FormatVoiceResponse(result)

		assert.Contains(t, response, result.Message)
		assert.Contains(t, response, result.RecommendedAction)
	}
}

func TestFormatVoiceResponse_ReviewMentionsTimeframe(t *testing.T) {
	result := Check(20000, boolPtr(true))
	response := FormatVoiceResponse(result)

	assert.Contains(t, response, "review")
	assert.Contains(t, response, "1-2 business days")
}
