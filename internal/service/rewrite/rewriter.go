package rewrite

import (
	"fmt"
	"strings"

	"github.com/sandevgo/tuskvoice/internal/core"
)

// Stage is one named step of the rewrite fold. Apply must be total.
type Stage struct {
	Name  string
	Apply func(text string, dc core.DialogueContext) string
}

// DefaultPersona names the voice whose legacy sign-off is stripped when no
// persona is configured.
const DefaultPersona = "Tusk"

type Rewriter struct {
	stages  []Stage
	footers []string
}

type Option func(*Rewriter)

// WithPersona sets the persona whose legacy sign-off line is removed.
func WithPersona(name string) Option {
	return func(r *Rewriter) {
		if name = strings.TrimSpace(name); name != "" {
			r.footers = footerMarkers(name)
		}
	}
}

// WithStyleProfiler enables the persona style hook between the module rules
// and the robotic phrasing stage.
func WithStyleProfiler(p core.StyleProfiler) Option {
	return func(r *Rewriter) {
		if p == nil {
			return
		}
		r.stages = insertAfter(r.stages, "module_rules", Stage{
			Name: "persona_style",
			Apply: func(text string, dc core.DialogueContext) string {
				profile := p.Profile(dc.UserID, dc.LastUserText)
				return p.ApplyStyle(text, profile, dc.Module, dc.Mode, dc.Tone)
			},
		})
	}
}

func New(opts ...Option) *Rewriter {
	r := &Rewriter{footers: footerMarkers(DefaultPersona)}
	r.stages = []Stage{
		{Name: "disclaimers", Apply: stripDisclaimers},
		{Name: "debug_footers", Apply: r.stripDebugFooters},
		{Name: "openers", Apply: tightenOpener},
		{Name: "module_rules", Apply: applyModuleRules},
		{Name: "robotic_phrasing", Apply: softenRobotic},
		{Name: "structure", Apply: enforceStructure},
		{Name: "warmth", Apply: injectWarmth},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rewrite folds every stage over raw. A stage that blanks the text is
// skipped; if the final text is still blank the trimmed raw text is returned.
func (r *Rewriter) Rewrite(raw string, dc core.DialogueContext) string {
	text := raw
	for _, s := range r.stages {
		out := s.Apply(text, dc)
		if strings.TrimSpace(out) == "" {
			continue
		}
		text = out
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return strings.TrimSpace(raw)
	}
	return text
}

func (r *Rewriter) Stages() []string {
	names := make([]string, len(r.stages))
	for i, s := range r.stages {
		names[i] = s.Name
	}
	return names
}

func insertAfter(stages []Stage, name string, s Stage) []Stage {
	for i, existing := range stages {
		if existing.Name == name {
			out := make([]Stage, 0, len(stages)+1)
			out = append(out, stages[:i+1]...)
			out = append(out, s)
			return append(out, stages[i+1:]...)
		}
	}
	return append(stages, s)
}

func stripDisclaimers(text string, _ core.DialogueContext) string {
	out, changed := applyRules(text, disclaimerRules)
	if !changed {
		return text
	}
	return tidy(out)
}

func (r *Rewriter) stripDebugFooters(text string, _ core.DialogueContext) string {
	out := text
	for _, marker := range r.footers {
		out = strings.ReplaceAll(out, marker, "")
	}
	if out == text {
		return text
	}
	return strings.TrimRight(out, " \t\r\n")
}

// tightenOpener drops a generic first line such as "Sure," when more text
// follows. Only the first line is considered.
func tightenOpener(text string, _ core.DialogueContext) string {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	first, rest, found := strings.Cut(trimmed, "\n")
	if !found || strings.TrimSpace(rest) == "" || !isGenericOpener(first) {
		return text
	}
	return strings.TrimLeft(rest, "\r\n")
}

func isGenericOpener(line string) bool {
	head := strings.ToLower(strings.TrimSpace(line))
	for _, opener := range genericOpeners {
		if strings.HasPrefix(head, opener) {
			return true
		}
	}
	return false
}

func applyModuleRules(text string, dc core.DialogueContext) string {
	out, moduleChanged := applyRules(text, moduleRules[dc.Module])
	out, hedgeChanged := applyRules(out, hedgeRules)
	if !moduleChanged && !hedgeChanged {
		return text
	}
	return tidy(out)
}

func softenRobotic(text string, _ core.DialogueContext) string {
	out, _ := applyRules(text, roboticRules)
	return out
}

// enforceStructure reshapes long answers into result/why/next-step sections.
func enforceStructure(text string, _ core.DialogueContext) string {
	trimmed := strings.TrimSpace(text)
	if runeLen(trimmed) < shortFormLimit || strings.Contains(trimmed, resultHeading) {
		return text
	}

	lines := nonEmptyLines(trimmed)
	result, why := lines[0], ""
	if len(lines) > 1 {
		why = lines[1]
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n%s\n\n%s\n%s",
		resultHeading, result,
		whyHeading, why,
		nextHeading, nextStepPrompt,
	)
}

func injectWarmth(text string, dc core.DialogueContext) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || runeLen(trimmed) >= shortFormLimit || strings.Contains(trimmed, resultHeading) {
		return text
	}

	lower := strings.ToLower(trimmed)
	for _, marker := range warmthMarkers {
		if strings.Contains(lower, marker) {
			return text
		}
	}

	opener := fullOpener
	if runeLen(strings.TrimSpace(dc.LastUserText)) <= terseInputLimit {
		opener = terseOpener
	}
	return opener + " " + trimmed
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
