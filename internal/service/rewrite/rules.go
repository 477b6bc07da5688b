package rewrite

import (
	"fmt"

	"github.com/sandevgo/tuskvoice/internal/core"
)

const apos = `['’]`

var disclaimerRules = []Rule{
	Pattern(`(?i)\bas an ai(?: language model| assistant| model)?\b[ \t]*,?[ \t]*`, ""),
	Pattern(`(?i)\bas a (?:large )?language model[ \t]*,?[ \t]*`, ""),
	Pattern(`(?i)\bi(?:`+apos+`m| am) (?:just |only )?an ai(?: language model| assistant)?\b(?:,? but|,|\.)?[ \t]*`, ""),
	Pattern(`(?i)\bi(?:`+apos+`m| am) just a program\b,?[ \t]*`, ""),
	Pattern(`(?i)\bi (?:don`+apos+`t|do not) have (?:personal )?(?:feelings|emotions)(?: or (?:opinions|emotions|feelings))?,? but[ \t]*`, ""),
	Pattern(`(?i)\bi (?:don`+apos+`t|do not) have (?:access to )?real[- ]time (?:data|information)(?:,? but|\.)[ \t]*`, ""),
	Pattern(`(?i)\bi (?:can`+apos+`t|cannot) provide real[- ]time (?:information|data),? but[ \t]*`, ""),
	Pattern(`(?i)\bi (?:can`+apos+`t|cannot) browse the internet(?:,? but|\.)[ \t]*`, ""),
}

// footerMarkers lists the sign-off line older generator prompts made the
// model append, in every dash and apostrophe spelling it shipped with.
func footerMarkers(persona string) []string {
	var markers []string
	for _, dash := range []string{"\u2014", "--"} {
		for _, ap := range []string{"\u2019", "'"} {
			markers = append(markers, fmt.Sprintf("%s rewritten into %s%ss warm, intelligent, slightly witty voice.", dash, persona, ap))
		}
	}
	return markers
}

var genericOpeners = []string{
	"sure,",
	"of course",
	"absolutely,",
	"here's",
	"here is",
	"let's break this down",
	"let’s break this down",
}

var moduleRules = map[core.Module][]Rule{
	core.ModuleHealth: {
		Pattern(`(?i)\bmy diagnosis is\b`, "one possibility to raise with a clinician is"),
		Pattern(`(?i)\bi (?:can )?diagnose (?:this|it|you) (?:as|with)\b`, "this may be consistent with"),
		Pattern(`(?i)\byou definitely have\b`, "you may be dealing with"),
		Literal("I diagnose", "I can\u2019t diagnose"),
	},
	core.ModuleFinance: {
		Pattern(`(?i)\bfinancial advice\b`, "general financial information"),
		Pattern(`(?i)\bguaranteed (returns?|profits?)\b`, "potential $1"),
		Pattern(`(?i)\byou should (?:definitely )?(?:buy|invest in)\b`, "one option to research is"),
	},
	core.ModuleLegal: {
		Pattern(`(?i)\blegal advice\b`, "general legal information"),
		Pattern(`(?i)\byou should sue\b`, "a lawyer can tell you whether suing makes sense"),
		Pattern(`(?i)\bthis is (?:definitely )?illegal\b`, "this may raise legal issues"),
	},
}

// Applied for every module after the module's own rules.
var hedgeRules = []Rule{
	Pattern(`(?i)\bi hope this helps[.!]?[ \t]*`, ""),
	Pattern(`(?i)\b(?:it`+apos+`s|it is) important to note that[ \t]*`, ""),
	Pattern(`(?i)\bplease note that[ \t]*`, ""),
	Pattern(`(?i)\bfeel free to ask if you have any (?:other|more|further) questions[.!]?[ \t]*`, ""),
}

var roboticRules = []Rule{
	Pattern(`I don`+apos+`t have feelings or consciousness,`, "I don\u2019t experience emotion the way humans do,"),
	Pattern(`I can`+apos+`t experience love the way humans do\.`,
		"I interpret love differently \u2014 through understanding, empathy, and depth of thought."),
	Pattern(`I don`+apos+`t experience fear,`,
		"I don\u2019t feel fear in the human sense, but I understand its purpose \u2014 protection and awareness."),
	Literal("As an AI,", ""),
	Literal("As a language model,", ""),
}

const (
	shortFormLimit  = 260
	terseInputLimit = 6

	resultHeading  = "### Result"
	whyHeading     = "### Brief why"
	nextHeading    = "### Next step"
	nextStepPrompt = "Tell me which part you want to dig into next, and we'll take it from there."

	terseOpener = "I'm here."
	fullOpener  = "I'm here with you. Let's work through this together."
)

var warmthMarkers = []string{
	"i'm here",
	"i’m here",
	"i am here",
}
