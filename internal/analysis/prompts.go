package analysis

const systemPrompt = "You are an expert at analyzing customer service call transcripts. Always respond with valid JSON only."

const analysisPrompt = `Analyze this customer service call transcript from a bank credit card offer call.

Extract the following information:

1. **Conversion Status**: Did the customer agree to apply for the credit card?
   - "converted": Customer explicitly agreed to apply or proceed
   - "interested": Customer showed interest but didn't commit
   - "not_interested": Customer declined or showed no interest
   - "unknown": Cannot determine from transcript

2. **Conversion Confidence**: How confident are you in this assessment? (0.0 to 1.0)

3. **Satisfaction Level**: How satisfied did the customer seem?
   - "very_satisfied": Expressed gratitude, enthusiasm
   - "satisfied": Positive, engaged
   - "neutral": Neither positive nor negative
   - "dissatisfied": Expressed frustration or concerns
   - "very_dissatisfied": Angry, complained, or was hostile

4. **Satisfaction Score**: Rate satisfaction 1-5 (1=very dissatisfied, 5=very satisfied)

5. **Satisfaction Reasoning**: Brief explanation (1-2 sentences) for satisfaction assessment

6. **Key Objections**: List specific concerns the customer raised (e.g., "annual fee too high", "interest rate concerns")

7. **Positive Signals**: List indicators of interest (e.g., "asked about rewards program", "inquired about credit limit")

8. **Language Detected**: Primary language used ("en" for English, "es" for Spanish)

Respond with ONLY valid JSON in this exact format:
{
    "conversion_status": "converted|interested|not_interested|unknown",
    "conversion_confidence": 0.0,
    "satisfaction_level": "very_satisfied|satisfied|neutral|dissatisfied|very_dissatisfied",
    "satisfaction_score": 3,
    "satisfaction_reasoning": "Brief explanation here",
    "key_objections": ["objection 1", "objection 2"],
    "positive_signals": ["signal 1", "signal 2"],
    "language_detected": "en"
}

TRANSCRIPT:
`
