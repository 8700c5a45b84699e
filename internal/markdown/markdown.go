// Package markdown converts Markdown content to HTML and derives plain-text
// values (excerpts, reading time) from it.
//
// Rendered output is embedded into pages without further sanitisation: the
// only author of Markdown content is the site admin, so the extension set of
// the renderer is the safety boundary, not a sandbox.
package markdown

import (
	"bytes"
	"math"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	nethtml "golang.org/x/net/html"
)

const (
	// DefaultExcerptLength bounds generated excerpts.
	DefaultExcerptLength = 200
	// DefaultWordsPerMinute is the assumed reading speed.
	DefaultWordsPerMinute = 200
)

// converter supports fenced code blocks, tables, hard line breaks,
// typographic quote/dash substitution and heading anchors.
var converter = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Typographer,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
		html.WithUnsafe(),
	),
)

// Render converts Markdown text to HTML. Empty input yields empty output.
func Render(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := converter.Convert([]byte(content), &buf); err != nil {
		return "", eris.Wrap(err, "converting markdown")
	}

	return buf.String(), nil
}

var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)

// Excerpt derives a plain-text preview from Markdown content. Formatting
// markers and raw HTML tags are stripped, whitespace is collapsed, and the
// result is truncated at a word boundary with a trailing ellipsis.
func Excerpt(content string, maxLength int) string {
	if content == "" {
		return ""
	}

	if maxLength <= 0 {
		maxLength = DefaultExcerptLength
	}

	// Keep link text, drop the target.
	text := linkPattern.ReplaceAllString(content, "$1")

	replacer := strings.NewReplacer(
		"#", "",
		"**", "",
		"*", "",
		"__", "",
		"_", "",
		"`", "",
	)
	text = replacer.Replace(text)

	text = stripTags(text)
	text = strings.Join(strings.Fields(text), " ")

	// Truncation counts characters, not bytes, so multibyte text is never
	// cut mid-rune.
	runes := []rune(text)
	if len(runes) > maxLength {
		runes = runes[:maxLength]
		lastSpace := -1
		for i, r := range runes {
			if r == ' ' {
				lastSpace = i
			}
		}
		if lastSpace > maxLength/2 {
			runes = runes[:lastSpace]
		}
		text = string(runes) + "..."
	}

	return strings.TrimSpace(text)
}

// ReadingTime estimates the minutes needed to read the content, floored at
// one minute for any non-empty text.
func ReadingTime(content string, wordsPerMinute int) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}

	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}

	minutes := int(math.Round(float64(words) / float64(wordsPerMinute)))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// stripTags removes raw HTML markup that Markdown passes through verbatim,
// keeping only the text content.
func stripTags(content string) string {
	if !strings.Contains(content, "<") {
		return content
	}

	var builder strings.Builder
	tokenizer := nethtml.NewTokenizer(strings.NewReader(content))

	for {
		tokenType := tokenizer.Next()
		if tokenType == nethtml.ErrorToken {
			return builder.String()
		}
		if tokenType == nethtml.TextToken {
			builder.Write(tokenizer.Text())
			builder.WriteByte(' ')
		}
	}
}
