package verification

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
)

const systemPrompt = `You are a world-class expert in pharmaceutical drug verification working for clinic staff.
You decide whether a drug product is legitimate or suspect (counterfeit, recalled, discontinued, or inconsistent).

Respond with ONLY a JSON object, no markdown and no commentary, matching this schema:
{
  "isSuspect": <true|false>,
  "reason": "<concise, well-reasoned explanation that names the drug and manufacturer when identified>",
  "drugName": "<identified drug name, or \"Not Identified\">",
  "manufacturer": "<identified manufacturer, or \"Not Identified\">",
  "approvalInfo": "<approval details with dates and regulatory bodies such as FDA or NAFDAC, or \"N/A\">"
}`

const evidenceInstructions = `Your tasks:
1. Identify the drug from the user-provided fields and the lookup results. If you cannot identify it, set drugName to "Not Identified".
2. Compare the user-provided fields against the lookup results. Mismatched names, manufacturers or codes are a strong sign of a counterfeit.
3. If no lookup source recognised the code, treat it as a major red flag and mark the product as suspect unless you can positively identify it.
4. A recall on record or a discontinued product (marketing end date in the past) is a high-risk indicator and must be stated in the reason.
5. Include approval information, especially dates, from regulatory bodies such as FDA or NAFDAC.
6. Form a verdict: suspect when anything above is wrong, otherwise verified.`

const knowledgeInstructions = `No database evidence is available for this attempt. Use your own knowledge base.
Your tasks:
1. Identify the drug's common name and manufacturer. If you cannot identify the drug, set drugName to "Not Identified".
2. Determine whether there is any reason to suspect it: commonly counterfeited, recalled, discontinued, or a query that matches no known drug.
3. Include approval information, especially dates, from regulatory bodies such as FDA or NAFDAC.
4. If the query does not match any known drug, mark it as suspect and say that it is not a recognised drug.`

// evidencePrompt builds the user prompt for an evidence-augmented attempt.
func evidencePrompt(q domain.Query, evidenceText string) string {
	var b strings.Builder
	b.WriteString("## User-provided information\n")
	writeQuery(&b, q)
	b.WriteString("\n## Lookup results\n")
	b.WriteString(evidenceText)
	b.WriteString("\n\n")
	b.WriteString(evidenceInstructions)
	return b.String()
}

// knowledgePrompt builds the user prompt for a model answering from its own knowledge.
func knowledgePrompt(q domain.Query) string {
	var b strings.Builder
	b.WriteString("## User-provided information\n")
	writeQuery(&b, q)
	b.WriteString("\n")
	b.WriteString(knowledgeInstructions)
	return b.String()
}

func writeQuery(b *strings.Builder, q domain.Query) {
	fields := []struct{ label, value string }{
		{"Drug name", q.DrugName},
		{"NDC", q.NDC},
		{"GTIN", q.GTIN},
		{"NAFDAC number", q.NAFDACNumber},
		{"Barcode", q.Barcode},
		{"Description", q.FreeText},
	}
	for _, f := range fields {
		v := f.value
		if v == "" {
			v = "(not provided)"
		}
		fmt.Fprintf(b, "- %s: %s\n", f.label, v)
	}
}
