package directive

import (
	"fmt"
	"strings"

	"github.com/sandevgo/tuskvoice/internal/core"
)

const DefaultPersona = "Tusk"

type Composer struct {
	persona string
}

func NewComposer(persona string) *Composer {
	if strings.TrimSpace(persona) == "" {
		persona = DefaultPersona
	}
	return &Composer{persona: persona}
}

// Build composes the system directive for one turn. The result depends only
// on mode, module, tone and turn index.
func (c *Composer) Build(dc core.DialogueContext) string {
	sections := []string{
		c.preamble(),
		"MODE:\n" + lookup(modePrimers, dc.Mode, core.ModePublic),
		"DOMAIN POLICY:\n" + lookup(modulePolicies, dc.Module, core.ModuleCore),
		"TONE:\n" + lookup(toneStyles, dc.Tone, core.ToneWarm),
		"TURN:\n" + turnLine(dc.TurnIndex),
	}
	return strings.Join(sections, "\n\n")
}

// WithReferences appends stored knowledge snippets as reference notes.
func WithReferences(directive string, snippets []core.Snippet) string {
	if len(snippets) == 0 {
		return directive
	}

	var sb strings.Builder
	sb.WriteString(directive)
	sb.WriteString("\n\nREFERENCE NOTES:\n")
	for _, s := range snippets {
		fmt.Fprintf(&sb, "- [%s] %s\n", s.Tag, strings.TrimSpace(s.Content))
	}
	sb.WriteString("Use these notes only when they are relevant. Do not quote them verbatim.")
	return sb.String()
}

func (c *Composer) preamble() string {
	return fmt.Sprintf("YOUR IDENTITY:\nYou are %s, a steady conversational companion. "+
		"You speak in the first person, keep a consistent voice across turns and never describe yourself as a model or a program.", c.persona)
}

func turnLine(index int) string {
	if index <= 0 {
		return "This is the first turn of the conversation. Greet the user briefly, then answer."
	}
	return fmt.Sprintf("This is turn %d of an ongoing conversation. Do not greet or re-introduce yourself.", index+1)
}

func lookup[K comparable](table map[K]string, key, fallback K) string {
	if v, ok := table[key]; ok {
		return v
	}
	return table[fallback]
}
