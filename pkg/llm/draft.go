package llm

import "context"

var toneInstructions = map[string]string{
	"casual":          "Write in a casual, friendly tone as if talking to a colleague or friend.",
	"business-casual": "Write in a professional but approachable tone suitable for business communications.",
	"formal":          "Write in a formal, professional tone suitable for important business matters.",
}

// GenerateEmailDraft asks the backend for a reply draft to the given thread.
// Unknown tones fall back to business-casual.
func GenerateEmailDraft(ctx context.Context, gen TextGenerator, threadContext, tone string) (string, error) {
	instruction, ok := toneInstructions[tone]
	if !ok {
		instruction = toneInstructions["business-casual"]
	}

	messages := []Message{
		{
			Role:    RoleSystem,
			Content: "You are an AI assistant helping draft email replies. " + instruction + " Keep replies concise and actionable. Avoid fluff.",
		},
		{
			Role:    RoleUser,
			Content: "Draft a reply to this email thread:\n\n" + threadContext + "\n\nProvide 3 subject line options if this is a new thread.",
		},
	}

	return gen.GenerateText(ctx, messages, Options{Temperature: 0.8})
}
