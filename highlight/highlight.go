// Package highlight renders fenced code blocks to HTML with syntax coloring
// and per-line emphasis. Tokenization is delegated to Chroma; the line
// emphasis decision comes from a Selector parsed out of the fence's meta
// string.
package highlight

import (
	"fmt"
	"html"
	"io"
	"strings"
	"sync"

	chroma "github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter turns code block source into HTML, one <span class="line"> per
// source line. Lines selected by the block's meta annotation additionally
// carry the "hl" class; the matching style rule is emitted by WriteCSS.
type Highlighter struct {
	// Style used for syntax highlighting. Defaults to styles.Fallback.
	Style *chroma.Style

	// UseClasses emits class attributes instead of inline style attributes,
	// assuming the page links the WriteCSS output.
	UseClasses bool

	once      sync.Once
	formatter *chromahtml.Formatter
}

// New returns a class-based Highlighter using the named Chroma style.
// An unknown style name falls back to the default style.
func New(styleName string) *Highlighter {
	return &Highlighter{
		Style:      styles.Get(styleName),
		UseClasses: true,
	}
}

func (h *Highlighter) init() {
	h.once.Do(func() {
		if h.Style == nil {
			h.Style = styles.Fallback
		}
		h.formatter = chromahtml.New(
			chromahtml.PreventSurroundingPre(true),
			chromahtml.WithClasses(h.UseClasses),
		)
	})
}

// Block renders source as a highlighted code block. lang is the code fence
// language tag (an unknown or empty tag gets plain-text tokenization) and
// meta is the raw annotation following it, from which the line selector is
// built. A block never fails the page render: if tokenization errors out the
// source is emitted HTML-escaped, with the same per-line spans so line
// emphasis still applies.
func (h *Highlighter) Block(lang, meta, source string) string {
	h.init()

	sel := ParseMeta(meta)
	var b strings.Builder
	b.WriteString(`<pre class="chroma"><code`)
	if lang != "" {
		fmt.Fprintf(&b, ` class="language-%s"`, html.EscapeString(lang))
	}
	b.WriteString(">")

	lines, err := lexLines(lang, source)
	if err != nil {
		h.writePlain(&b, source, sel)
	} else {
		for i, line := range lines {
			h.openLine(&b, sel.Match(i))
			// strings.Builder never returns a write error.
			_ = h.formatter.Format(&b, h.Style, chroma.Literator(line...))
			b.WriteString("</span>")
		}
	}

	b.WriteString("</code></pre>")
	return b.String()
}

// lexLines tokenizes source and splits the token stream back into lines, so
// the renderer can wrap each line individually.
func lexLines(lang, source string) ([][]chroma.Token, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	tokens, err := chroma.Tokenise(chroma.Coalesce(lexer), nil, source)
	if err != nil {
		return nil, err
	}
	return chroma.SplitTokensIntoLines(tokens), nil
}

func (h *Highlighter) openLine(b *strings.Builder, emphasized bool) {
	if emphasized {
		b.WriteString(`<span class="line hl">`)
	} else {
		b.WriteString(`<span class="line">`)
	}
}

// writePlain is the degraded path when tokenization fails.
func (h *Highlighter) writePlain(b *strings.Builder, source string, sel Selector) {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		h.openLine(b, sel.Match(i))
		b.WriteString(html.EscapeString(line))
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
		b.WriteString("</span>")
	}
}

// WriteCSS writes the style sheet for class-based rendering: the Chroma token
// classes followed by the line emphasis rules. It is a no-op for the token
// classes when the highlighter uses inline styles, but the line rules are
// always written.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	h.init()

	if h.UseClasses {
		if err := h.formatter.WriteCSS(w, h.Style); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, lineCSS)
	return err
}

// lineCSS styles the per-line spans. Emphasized lines get a background tint
// and a left accent border, with a negative margin so the tint bleeds into
// the <pre> padding.
const lineCSS = `
.chroma .line { display: block; }
.chroma .line.hl {
  background-color: rgba(96, 165, 250, 0.12);
  border-left: 2px solid rgb(96, 165, 250);
  margin: 0 -1rem;
  padding: 0 1rem 0 calc(1rem - 2px);
}
`
