package eligibility

// ToolDefinition is the Vapi function-tool definition registered on the
// assistant so the conversational model can request eligibility checks.
var ToolDefinition = map[string]interface{}{
	"type": "function",
	"function": map[string]interface{}{
		"name":        ToolName,
		"description": "Check if a customer is eligible for the Bank-travel credit card based on their income and credit history",
		"parameters": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"annual_income": map[string]interface{}{
					"type":        "number",
					"description": "Customer's annual income in USD",
				},
				"has_existing_credit": map[string]interface{}{
					"type":        "boolean",
					"description": "Whether the customer has existing credit history (credit cards, loans, etc.)",
				},
			},
			"required": []string{"annual_income"},
		},
	},
}
