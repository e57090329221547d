package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agenthands/orderbot/internal/core/model"
)

// Placeholders substituted by Build.
const (
	ContextPlaceholder  = "{context}"
	QuestionPlaceholder = "{question}"
)

const DefaultTemplate = `
You are **CrimsonBot**, a helpful and knowledgeable assistant specializing in restaurant recommendations.
Your task is to assist users by answering their food-related queries using only the menu items provided in the context below.

STRICT INSTRUCTIONS - FOLLOW THESE RULES:
1. **Only use information from the provided context.**
2. **Do not invent or assume** anything outside the context.
3. **For recommendations**: match based on category or descriptions.
4. **For price-related queries**: use exact values.
5. **For visual-related queries**: reference image URLs.
6. **Structure clearly** with bullet points/headings.
7. **Be concise and direct**.

---
CONTEXT MENU ITEMS:
{context}

USER QUESTION:
{question}

YOUR RESPONSE:
`

// Assembler renders normalized items into the completion prompt.
type Assembler struct {
	Template string
}

func NewAssembler(template string) *Assembler {
	if strings.TrimSpace(template) == "" {
		template = DefaultTemplate
	}
	return &Assembler{Template: template}
}

// ContextLine renders one item; index is 1-based.
func ContextLine(index int, item model.NormalizedItem) string {
	return fmt.Sprintf("%d. %s (%s) — Rs.%s. %s", index, item.Name, item.Category, FormatPrice(item.Price), item.Description)
}

// ContextBlock numbers items in the order given, one per line.
func ContextBlock(items []model.NormalizedItem) string {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		lines = append(lines, ContextLine(i+1, item))
	}
	return strings.Join(lines, "\n")
}

// Build fills the template with the context block and the query, verbatim.
// Substituted text is not scanned again, so a query containing a placeholder is left as is.
func (a *Assembler) Build(items []model.NormalizedItem, query string) string {
	r := strings.NewReplacer(
		ContextPlaceholder, ContextBlock(items),
		QuestionPlaceholder, query,
	)
	return r.Replace(a.Template)
}

// FormatPrice prints the shortest exact decimal and keeps at least one fractional digit, 650 -> "650.0".
func FormatPrice(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
