package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"voice-agent-server/internal/assistant"
	"voice-agent-server/internal/clients/vapi"
	"voice-agent-server/internal/observability"
)

const defaultBaseURL = "https://api.vapi.ai"

func main() {
	// Load environment variables before flag defaults read them
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: failed to load env.local: %v", err)
		}
	}

	action := flag.String("action", "", "one of: create, update, outputs, list-calls")
	assistantID := flag.String("assistant-id", os.Getenv("VAPI_ASSISTANT_ID"), "assistant ID for update/outputs")
	serverURL := flag.String("server-url", os.Getenv("WEBHOOK_URL"), "webhook server URL registered on the assistant")
	limit := flag.Int("limit", 10, "number of calls to list")
	flag.Parse()

	apiKey := os.Getenv("VAPI_API_KEY")
	if apiKey == "" {
		log.Fatal("VAPI_API_KEY is required")
	}
	baseURL := os.Getenv("VAPI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	logger := observability.NewLogger()
	client := vapi.NewClient(apiKey, baseURL, logger)
	ctx := context.Background()

	definition := assistant.Definition(*serverURL, os.Getenv("WEBHOOK_SECRET"))

	switch *action {
	case "create":
		id, err := client.CreateAssistant(ctx, definition)
		if err != nil {
			log.Fatalf("create assistant: %v", err)
		}
		fmt.Printf("Assistant created: %s\n", id)
		fmt.Println("Save this assistant ID as VAPI_ASSISTANT_ID for future updates.")

	case "update":
		if *assistantID == "" {
			log.Fatal("update requires -assistant-id or VAPI_ASSISTANT_ID")
		}
		if err := client.UpdateAssistant(ctx, *assistantID, definition); err != nil {
			log.Fatalf("update assistant: %v", err)
		}
		fmt.Printf("Assistant updated: %s\n", *assistantID)

	case "outputs":
		if *assistantID == "" {
			log.Fatal("outputs requires -assistant-id or VAPI_ASSISTANT_ID")
		}
		outputID, err := ensureStructuredOutput(ctx, client)
		if err != nil {
			log.Fatalf("structured output: %v", err)
		}
		if err := client.AttachStructuredOutput(ctx, *assistantID, outputID); err != nil {
			log.Fatalf("attach structured output: %v", err)
		}
		fmt.Printf("Structured output %s attached to assistant %s\n", outputID, *assistantID)

	case "list-calls":
		calls, err := client.ListCalls(ctx, *limit)
		if err != nil {
			log.Fatalf("list calls: %v", err)
		}
		for _, call := range calls {
			fmt.Printf("%s  %-12s  %6.0fs  $%.4f  %s\n",
				call.ID, call.Status, call.DurationSeconds, call.Cost, call.EndedReason)
			if status, ok := call.Metadata["conversion_status"]; ok {
				fmt.Printf("    conversion: %v, satisfaction: %v\n",
					status, call.Metadata["satisfaction_level"])
			}
		}

	default:
		flag.Usage()
		os.Exit(2)
	}
}

// ensureStructuredOutput creates the call-analysis structured output, or
// updates it in place when one with the same name already exists.
func ensureStructuredOutput(ctx context.Context, client *vapi.Client) (string, error) {
	name, _ := assistant.StructuredOutputDefinition["name"].(string)

	existing, err := client.ListStructuredOutputs(ctx)
	if err != nil {
		return "", err
	}
	for _, output := range existing {
		if output.Name == name {
			if err := client.UpdateStructuredOutput(ctx, output.ID, assistant.StructuredOutputDefinition); err != nil {
				return "", err
			}
			return output.ID, nil
		}
	}

	return client.CreateStructuredOutput(ctx, assistant.StructuredOutputDefinition)
}
