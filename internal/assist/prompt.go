package assist

import (
	"fmt"
	"strings"

	"github.com/abhisek/prism/internal/lists"
	"github.com/abhisek/prism/internal/skive"
)

const systemPrompt = `You help HR teams describe professional roles for simulation design.
Answer with JSON only. Every statement must be specific and measurable: name a count, a percentage, a deadline or a service level.
Do not repeat the profession, department or role name inside the statements.`

type roleContext struct {
	Profession string
	Department string
	Role       string
}

func (rc roleContext) block() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Profession: %s\n", rc.Profession)
	fmt.Fprintf(&b, "Department: %s\n", rc.Department)
	fmt.Fprintf(&b, "Role: %s\n", rc.Role)
	return b.String()
}

// tokens are the lowercased, non-empty names that must not appear in items.
func (rc roleContext) tokens() []string {
	var out []string
	for _, s := range []string{rc.Profession, rc.Department, rc.Role} {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func listPrompt(kind lists.Kind, rc roleContext) string {
	var b strings.Builder
	switch kind {
	case lists.KRAs:
		b.WriteString("Generate 6-8 SMART KRAs as JSON {\"items\": [\"...\"]}.\n")
	default:
		b.WriteString("Generate 8-10 SMART day-to-day activities as JSON {\"items\": [\"...\"]}.\n")
	}
	b.WriteString(rc.block())
	b.WriteString("Be specific, measurable, relevant to the role context.")
	return b.String()
}

func objectivePrompt(p skive.Path, rc roleContext) string {
	var b strings.Builder
	b.WriteString("Generate SMART simulation objectives for a specific SKIVE sub-competency.\n\n")
	b.WriteString(rc.block())
	fmt.Fprintf(&b, "Path: %s\n\n", p)
	b.WriteString("Respond ONLY with a JSON object: {\"basic\": \"...\", \"intermediate\": \"...\", \"advanced\": \"...\"}.")
	return b.String()
}
