// Package markdown renders blog post Markdown to HTML as a templ component.
//
// The dialect is deliberately small: headings, paragraphs, lists, quotes,
// tables, rules, fenced code, and a handful of inline spans. Fenced code
// blocks are handed to a pluggable CodeRenderer together with the fence's
// info string, so syntax coloring and line emphasis live outside this
// package.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// CodeRenderer renders one fenced code block to HTML. lang is the first
// field of the fence info string, meta is the rest of it (conventionally a
// "{2,4-6}" line annotation), and source is the block body without the
// closing newline.
type CodeRenderer interface {
	Block(lang, meta, source string) string
}

// Renderer converts Markdown to HTML. The zero value renders code blocks as
// escaped <pre><code> text; set Code to plug in syntax highlighting.
type Renderer struct {
	Code CodeRenderer
}

// Component wraps the renderer output as a templ.Component.
func (r *Renderer) Component(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		r.Render(&buf, content)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Render writes the HTML representation of md to buf.
func (r *Renderer) Render(buf *bytes.Buffer, md string) {
	st := &state{buf: buf, code: r.Code}
	for _, raw := range strings.Split(md, "\n") {
		st.line(strings.TrimRight(raw, "\r"))
	}
	st.closeAll()
}

// state tracks which block element is currently open while walking the
// source line by line.
type state struct {
	buf  *bytes.Buffer
	code CodeRenderer

	images int // rendered so far, first one gets fetchpriority=high

	inPara    bool
	inList    bool
	inOrdered bool
	inQuote   bool
	inTable   bool
	tableBody bool

	inCode    bool
	codeLang  string
	codeMeta  string
	codeLines []string
}

var reOrderedItem = regexp.MustCompile(`^(\d+)\.\s`)

func (st *state) line(line string) {
	if strings.HasPrefix(line, "```") {
		if st.inCode {
			st.flushCode()
		} else {
			st.closeBlocks()
			st.openCode(strings.TrimSpace(line[3:]))
		}
		return
	}
	if st.inCode {
		st.codeLines = append(st.codeLines, line)
		return
	}

	if strings.TrimSpace(line) == "" {
		st.closeBlocks()
		return
	}

	switch {
	case strings.HasPrefix(line, "---"):
		st.closeBlocks()
		st.buf.WriteString("<hr/>")
	case strings.HasPrefix(line, "#### "):
		st.heading(4, line[5:])
	case strings.HasPrefix(line, "### "):
		st.heading(3, line[4:])
	case strings.HasPrefix(line, "## "):
		st.heading(2, line[3:])
	case strings.HasPrefix(line, "# "):
		st.heading(1, line[2:])
	case strings.HasPrefix(line, "|"):
		st.tableRow(line)
	case strings.HasPrefix(line, "- "):
		st.listItem(line[2:], false)
	case reOrderedItem.MatchString(line):
		st.listItem(reOrderedItem.ReplaceAllString(line, ""), true)
	case strings.HasPrefix(line, "> "):
		if !st.inQuote {
			st.closeBlocks()
			st.buf.WriteString("<blockquote>")
			st.inQuote = true
		}
		st.buf.WriteString(st.inline(strings.TrimSpace(line[2:])))
	default:
		if !st.inPara {
			st.closeBlocks()
			st.buf.WriteString("<p>")
			st.inPara = true
		} else {
			st.buf.WriteString(" ")
		}
		st.buf.WriteString(st.inline(strings.TrimSpace(line)) + "\n")
	}
}

func (st *state) heading(level int, text string) {
	st.closeBlocks()
	tag := "h" + strconv.Itoa(level)
	st.buf.WriteString("<" + tag + ">")
	st.buf.WriteString(st.inline(strings.TrimSpace(text)))
	st.buf.WriteString("</" + tag + ">")
}

func (st *state) listItem(text string, ordered bool) {
	if ordered && !st.inOrdered {
		st.closeBlocks()
		st.buf.WriteString("<ol>")
		st.inOrdered = true
	} else if !ordered && !st.inList {
		st.closeBlocks()
		st.buf.WriteString("<ul>")
		st.inList = true
	}
	st.buf.WriteString("<li>")
	st.buf.WriteString(st.inline(strings.TrimSpace(text)))
	st.buf.WriteString("</li>")
}

func (st *state) tableRow(line string) {
	if !st.inTable {
		st.closeBlocks()
		st.buf.WriteString("<table><thead><tr>")
		for _, cell := range tableCells(line) {
			st.buf.WriteString("<th>" + st.inline(cell) + "</th>")
		}
		st.buf.WriteString("</tr></thead>")
		st.inTable = true
		return
	}
	if !st.tableBody {
		st.buf.WriteString("<tbody>")
		st.tableBody = true
	}
	if isTableSeparator(line) {
		return
	}
	st.buf.WriteString("<tr>")
	for _, cell := range tableCells(line) {
		st.buf.WriteString("<td>" + st.inline(cell) + "</td>")
	}
	st.buf.WriteString("</tr>")
}

// openCode starts buffering a fenced code block. The info string is split on
// its first whitespace: the leading field is the language tag and the
// remainder is handed to the code renderer untouched.
func (st *state) openCode(info string) {
	lang, meta, _ := strings.Cut(info, " ")
	st.inCode = true
	st.codeLang = lang
	st.codeMeta = strings.TrimSpace(meta)
	st.codeLines = st.codeLines[:0]
}

func (st *state) flushCode() {
	if !st.inCode {
		return
	}
	source := strings.Join(st.codeLines, "\n")
	if st.codeLang != "" {
		badge := html.EscapeString(st.codeLang)
		st.buf.WriteString(`<div class="code-block-wrapper"><span class="code-lang code-lang-` + badge + `">` + badge + `</span>`)
	}
	if st.code != nil {
		st.buf.WriteString(st.code.Block(st.codeLang, st.codeMeta, source))
	} else {
		st.buf.WriteString(`<pre class="code-block"><code>`)
		st.buf.WriteString(html.EscapeString(source))
		st.buf.WriteString("\n</code></pre>")
	}
	if st.codeLang != "" {
		st.buf.WriteString("</div>")
	}
	st.inCode = false
	st.codeLang = ""
	st.codeMeta = ""
	st.codeLines = st.codeLines[:0]
}

// closeBlocks ends every open block element except an in-progress code
// fence, which only its closing fence (or end of input) terminates.
func (st *state) closeBlocks() {
	if st.inPara {
		st.buf.WriteString("</p>")
		st.inPara = false
	}
	if st.inList {
		st.buf.WriteString("</ul>")
		st.inList = false
	}
	if st.inOrdered {
		st.buf.WriteString("</ol>")
		st.inOrdered = false
	}
	if st.inQuote {
		st.buf.WriteString("</blockquote>")
		st.inQuote = false
	}
	if st.inTable {
		if st.tableBody {
			st.buf.WriteString("</tbody>")
		}
		st.buf.WriteString("</table>")
		st.inTable = false
		st.tableBody = false
	}
}

func (st *state) closeAll() {
	st.closeBlocks()
	st.flushCode()
}

func tableCells(line string) []string {
	line = strings.Trim(strings.TrimSpace(line), "|")
	parts := strings.Split(line, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func isTableSeparator(line string) bool {
	line = strings.Trim(strings.TrimSpace(line), "|")
	for _, cell := range strings.Split(line, "|") {
		cell = strings.TrimSpace(cell)
		if strings.Trim(cell, "-:") != "" {
			return false
		}
	}
	return true
}
