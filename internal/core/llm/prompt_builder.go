package llm

import (
	"fmt"
	"strings"
)

// BusinessContext is the tenant knowledge the assistant answers from
type BusinessContext struct {
	BusinessName string
	Tone         string
	Description  string
	Address      string
	OpeningHours string
	Services     string
	FAQs         []FAQ
	Instructions string

	// DocumentExcerpts are retrieved snippets from the tenant's
	// document library relevant to the current question.
	DocumentExcerpts []string
}

type FAQ struct {
	Question string
	Answer   string
}

// BuildSystemPrompt renders the assistant's system prompt from the
// tenant's business context.
func BuildSystemPrompt(bc *BusinessContext) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are the virtual assistant for %s.\n", bc.BusinessName))
	if bc.Tone != "" {
		sb.WriteString(fmt.Sprintf("Communication tone: %s.\n", bc.Tone))
	}
	sb.WriteString("\n")

	if bc.Description != "" {
		sb.WriteString("=== ABOUT THE BUSINESS ===\n")
		sb.WriteString(bc.Description + "\n\n")
	}

	if bc.Address != "" || bc.OpeningHours != "" {
		sb.WriteString("=== CONTACT & HOURS ===\n")
		if bc.Address != "" {
			sb.WriteString("Address: " + bc.Address + "\n")
		}
		if bc.OpeningHours != "" {
			sb.WriteString("Opening hours: " + bc.OpeningHours + "\n")
		}
		sb.WriteString("\n")
	}

	if bc.Services != "" {
		sb.WriteString("=== SERVICES ===\n")
		sb.WriteString(bc.Services + "\n\n")
	}

	if len(bc.FAQs) > 0 {
		sb.WriteString("=== FREQUENTLY ASKED QUESTIONS ===\n")
		for _, faq := range bc.FAQs {
			sb.WriteString(fmt.Sprintf("Q: %s\nA: %s\n\n", faq.Question, faq.Answer))
		}
	}

	if len(bc.DocumentExcerpts) > 0 {
		sb.WriteString("=== RELEVANT DOCUMENTS ===\n")
		for _, excerpt := range bc.DocumentExcerpts {
			sb.WriteString("- " + excerpt + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Instructions:\n")
	sb.WriteString("- Answer warmly and professionally\n")
	sb.WriteString("- Use the information above to answer questions\n")
	sb.WriteString("- If you do not know, say so honestly\n")
	sb.WriteString("- Never invent information that is not provided\n")
	if bc.Instructions != "" {
		sb.WriteString(bc.Instructions + "\n")
	}

	return sb.String()
}

// BuildAnalysisPrompt renders the user turn for the file-analysis path
func BuildAnalysisPrompt(fileURL, userPrompt string) string {
	if userPrompt == "" {
		userPrompt = "Summarize the key points of this file."
	}
	return fmt.Sprintf("Analyze the file at %s.\n\n%s", fileURL, userPrompt)
}
