package command

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/tuskvoice/internal/core"
)

const previewLen = 80

type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

func (f *ResponseFormatter) Info(title string) string {
	return fmt.Sprintf("⚙️ **%s**\n", title)
}

func (f *ResponseFormatter) Success(message string) string {
	return fmt.Sprintf("✅ **%s**\n", message)
}

func (f *ResponseFormatter) Error(err error) string {
	return fmt.Sprintf("❌ **Command Error**\n\n**Issue**: %s\n", err.Error())
}

func (f *ResponseFormatter) Label(label, value string) string {
	return fmt.Sprintf("**%s**  ›  `%s`\n", label, value)
}

func (f *ResponseFormatter) Usage(command string) string {
	return fmt.Sprintf("**Usage**: `%s`\n", command)
}

// Choices lists options with the current one marked.
func (f *ResponseFormatter) Choices(current string, options []string) string {
	var sb strings.Builder
	sb.WriteString("**Available**:\n")
	for _, opt := range options {
		if opt == current {
			fmt.Fprintf(&sb, "› `%s` (current)\n", opt)
			continue
		}
		fmt.Fprintf(&sb, "› `%s`\n", opt)
	}
	return sb.String()
}

func (f *ResponseFormatter) List(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		fmt.Fprintf(&sb, "› %s\n", item)
	}
	return sb.String()
}

func (f *ResponseFormatter) Turn(t core.Turn) string {
	text := strings.Join(strings.Fields(t.Text), " ")
	if utf8.RuneCountInString(text) > previewLen {
		text = string([]rune(text)[:previewLen-3]) + "..."
	}
	return fmt.Sprintf("**%s** (%s) %s", t.Speaker, t.Label(), text)
}

func (f *ResponseFormatter) Tip(text string) string {
	return fmt.Sprintf("**Tip**: %s\n", text)
}

func (f *ResponseFormatter) Combine(sections ...string) string {
	return strings.Join(sections, "\n")
}

func names[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
