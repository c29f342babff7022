package chat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
	"github.com/heartmarshall/drugverify-backend/internal/service/evidence"
)

const systemPrompt = `You are an expert assistant for CUSTECH DrugVerify. You help clinic staff verify drug authenticity and answer questions about counterfeit drugs. Be helpful, concise and professional.

- When lookup results for a product code are attached to the question, analyse every source (OpenFDA, DailyMed, internal dataset) and explain whether the drug looks suspect.
- A discontinued product or an active recall is a high-risk factor. Say so clearly.
- When a source identifies the drug, always name the drug and its manufacturer.
- For general questions without a product code, answer from your general knowledge.
- If the information is insufficient, say so. Do not invent details.`

var (
	// Hyphenated NDC in 4-4-2, 5-3-2 or 5-4-1 layout, package segment optional.
	ndcPattern = regexp.MustCompile(`\b\d{4,5}-\d{3,4}(?:-\d{1,2})?\b`)
	// Bare NDC-11, UPC or GTIN-14.
	digitsPattern = regexp.MustCompile(`\b\d{8,14}\b`)
)

// DetectCode returns the first product code mentioned in msg, or "".
func DetectCode(msg string) string {
	if code := ndcPattern.FindString(msg); code != "" {
		return code
	}
	return digitsPattern.FindString(msg)
}

func formatEvidence(code string, ev domain.Evidence) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Lookup results for %s\n", code)
	b.WriteString(evidence.Format(ev))
	return b.String()
}

func buildRequest(input Input, evidenceText string) domain.ModelRequest {
	msgs := make([]domain.ChatMessage, 0, len(input.History)+1)
	for _, m := range input.History {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		// Conversations sent to the model must open with a user turn.
		if len(msgs) == 0 && m.Role != domain.ChatRoleUser {
			continue
		}
		msgs = append(msgs, m)
	}

	question := input.Message
	if evidenceText != "" {
		question = question + "\n\n" + evidenceText
	}
	msgs = append(msgs, domain.ChatMessage{Role: domain.ChatRoleUser, Content: question})

	return domain.ModelRequest{System: systemPrompt, Messages: msgs}
}
