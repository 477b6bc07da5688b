package knowledge

import (
	"strings"
	"unicode"

	"github.com/sandevgo/tuskvoice/pkg/tokens"
)

// DefaultMaxTokens keeps a note small enough that three of them fit in a
// directive next to the persona sections.
const DefaultMaxTokens = 120

type Chunker struct {
	MaxTokens int
	count     func(string) int
}

func NewChunker(maxTokens int) *Chunker {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Chunker{MaxTokens: maxTokens, count: tokens.Count}
}

// Split packs whole sentences into notes of at most MaxTokens. Paragraph
// breaks always start a new note; a sentence longer than the limit is cut
// at word boundaries.
func (c *Chunker) Split(text string) []string {
	var notes []string
	for _, para := range splitParagraphs(text) {
		notes = append(notes, c.pack(splitSentences(para))...)
	}
	return notes
}

func (c *Chunker) pack(sentences []string) []string {
	var (
		notes   []string
		current []string
		size    int
	)
	flush := func() {
		if len(current) > 0 {
			notes = append(notes, strings.Join(current, " "))
			current, size = nil, 0
		}
	}

	for _, s := range sentences {
		n := c.count(s)
		if n > c.MaxTokens {
			flush()
			notes = append(notes, c.cutWords(s)...)
			continue
		}
		if size+n > c.MaxTokens {
			flush()
		}
		current = append(current, s)
		size += n
	}
	flush()
	return notes
}

func (c *Chunker) cutWords(sentence string) []string {
	var (
		notes []string
		words []string
	)
	for _, w := range strings.Fields(sentence) {
		if len(words) > 0 && c.count(strings.Join(append(words, w), " ")) > c.MaxTokens {
			notes = append(notes, strings.Join(words, " "))
			words = nil
		}
		words = append(words, w)
	}
	if len(words) > 0 {
		notes = append(notes, strings.Join(words, " "))
	}
	return notes
}

func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		// soft wraps
		p = strings.Join(strings.Fields(p), " ")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

var sentenceEnders = map[rune]bool{
	'.': true, '!': true, '?': true,
	'。': true, '！': true, '？': true, '…': true,
}

func splitSentences(para string) []string {
	var (
		sentences []string
		current   strings.Builder
	)
	runes := []rune(para)
	for i, r := range runes {
		current.WriteRune(r)
		if !sentenceEnders[r] {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) && !isCJK(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}
