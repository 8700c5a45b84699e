package markdown

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRenderEmptyInput(t *testing.T) {
	t.Parallel()

	out, err := Render("")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty output for empty input, got %q", out)
	}

	out, err = Render("   \n\t")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty output for blank input, got %q", out)
	}
}

func TestRenderHeading(t *testing.T) {
	t.Parallel()

	out, err := Render("# Title\n\nbody")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	if !strings.Contains(out, "<h1") || !strings.Contains(out, "Title") {
		t.Fatalf("expected heading element wrapping Title, got %q", out)
	}

	if !strings.Contains(out, "<p>body</p>") {
		t.Fatalf("expected paragraph for body, got %q", out)
	}
}

func TestRenderHeadingAnchor(t *testing.T) {
	t.Parallel()

	out, err := Render("## Section Name")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	if !strings.Contains(out, `id="section-name"`) {
		t.Fatalf("expected heading anchor id, got %q", out)
	}
}

func TestRenderFencedCodeAndTable(t *testing.T) {
	t.Parallel()

	out, err := Render("```go\nfmt.Println(\"hi\")\n```")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(out, "<pre><code") {
		t.Fatalf("expected fenced code block, got %q", out)
	}

	out, err = Render("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(out, "<table>") {
		t.Fatalf("expected table element, got %q", out)
	}
}

func TestRenderHardLineBreaks(t *testing.T) {
	t.Parallel()

	out, err := Render("first line\nsecond line")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	if !strings.Contains(out, "<br") {
		t.Fatalf("expected hard line break, got %q", out)
	}
}

func TestExcerptStripsFormatting(t *testing.T) {
	t.Parallel()

	got := Excerpt("# Title\n\nSome **bold** text with a [link](https://example.com).", DefaultExcerptLength)
	want := "Title Some bold text with a link."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExcerptStripsRawHTML(t *testing.T) {
	t.Parallel()

	got := Excerpt("Intro <em>emphasis</em> and <a href=\"/x\">anchor</a> text", DefaultExcerptLength)
	if strings.Contains(got, "<") || strings.Contains(got, ">") {
		t.Fatalf("expected tags stripped, got %q", got)
	}
	for _, word := range []string{"Intro", "emphasis", "anchor", "text"} {
		if !strings.Contains(got, word) {
			t.Fatalf("expected %q preserved in %q", word, got)
		}
	}
}

func TestExcerptTruncatesAtWordBoundary(t *testing.T) {
	t.Parallel()

	got := Excerpt(strings.Repeat("a", 500), 200)
	if len(got) > 203 {
		t.Fatalf("expected excerpt length <= 203, got %d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncation marker, got %q", got)
	}

	long := strings.Repeat("word ", 100)
	got = Excerpt(long, 200)
	if len(got) > 203 {
		t.Fatalf("expected excerpt length <= 203, got %d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncation marker, got %q", got)
	}
	if strings.HasSuffix(strings.TrimSuffix(got, "..."), "wor") {
		t.Fatalf("expected truncation at a word boundary, got %q", got)
	}
}

func TestExcerptTruncatesMultibyteTextByCharacter(t *testing.T) {
	t.Parallel()

	got := Excerpt(strings.Repeat("日", 300), 200)
	if !utf8.ValidString(got) {
		t.Fatalf("expected valid UTF-8, got %q", got)
	}
	if count := utf8.RuneCountInString(got); count > 203 {
		t.Fatalf("expected at most 203 characters, got %d", count)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncation marker, got %q", got)
	}
	if got != strings.Repeat("日", 200)+"..." {
		t.Fatalf("expected 200 characters kept before the marker, got %q", got)
	}

	accented := strings.Repeat("héllo wörld ", 40)
	got = Excerpt(accented, 200)
	if !utf8.ValidString(got) {
		t.Fatalf("expected valid UTF-8, got %q", got)
	}
	if count := utf8.RuneCountInString(got); count > 203 {
		t.Fatalf("expected at most 203 characters, got %d", count)
	}
	if trimmed := strings.TrimSuffix(got, "..."); strings.HasSuffix(trimmed, "wö") {
		t.Fatalf("expected truncation at a word boundary, got %q", got)
	}
}

func TestExcerptShortInputUntouched(t *testing.T) {
	t.Parallel()

	got := Excerpt("short text", 200)
	if got != "short text" {
		t.Fatalf("expected input returned unchanged, got %q", got)
	}
}

func TestReadingTime(t *testing.T) {
	t.Parallel()

	if got := ReadingTime("", DefaultWordsPerMinute); got != 0 {
		t.Fatalf("expected 0 minutes for empty content, got %d", got)
	}

	if got := ReadingTime("a few words only", DefaultWordsPerMinute); got != 1 {
		t.Fatalf("expected floor of 1 minute, got %d", got)
	}

	longText := strings.Repeat("word ", 1000)
	if got := ReadingTime(longText, DefaultWordsPerMinute); got != 5 {
		t.Fatalf("expected 5 minutes for 1000 words, got %d", got)
	}

	if got := ReadingTime(strings.Repeat("word ", 450), 200); got != 2 {
		t.Fatalf("expected rounding to 2 minutes, got %d", got)
	}
}
