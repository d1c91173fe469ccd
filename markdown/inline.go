package markdown

import (
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBoldAlt    = regexp.MustCompile(`__(.+?)__`)
	reItalic     = regexp.MustCompile(`\*([^*]+)\*`)
	reItalicAlt  = regexp.MustCompile(`_([^_]+)_`)
	reStrike     = regexp.MustCompile(`~~(.+?)~~`)
	reInlineCode = regexp.MustCompile("`([^`]+)`")
	reLink       = regexp.MustCompile(`\[(.*?)\]\((.*?)\)(\^)?`)
	// ![alt](url){style} or ![alt](url){style|width|height}
	reImage = regexp.MustCompile(`\!\[(.*?)\]\((.*?)\)\{([^|}]*?)(?:\|(\d+)\|(\d+))?\}`)
)

// inline applies span-level formatting (images, links, code, emphasis) to s.
func (st *state) inline(s string) string {
	out := html.EscapeString(s)
	out = reImage.ReplaceAllStringFunc(out, st.image)
	out = reLink.ReplaceAllStringFunc(out, renderLink)

	// Inline code is replaced by placeholders first so the emphasis regexes
	// never reformat content between backticks.
	var codeSpans []string
	out = reInlineCode.ReplaceAllStringFunc(out, func(m string) string {
		match := reInlineCode.FindStringSubmatch(m)
		placeholder := "\x00IC" + strconv.Itoa(len(codeSpans)) + "\x00"
		codeSpans = append(codeSpans, "<code>"+match[1]+"</code>")
		return placeholder
	})

	// Emphasis only applies outside HTML tags so hrefs are not corrupted.
	out = outsideTags(out, func(seg string) string {
		seg = reBold.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reBoldAlt.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reItalic.ReplaceAllString(seg, "<em>$1</em>")
		seg = reItalicAlt.ReplaceAllString(seg, "<em>$1</em>")
		seg = reStrike.ReplaceAllString(seg, "<del>$1</del>")
		return seg
	})

	for i, code := range codeSpans {
		out = strings.Replace(out, "\x00IC"+strconv.Itoa(i)+"\x00", code, 1)
	}
	return out
}

func (st *state) image(m string) string {
	match := reImage.FindStringSubmatch(m)
	if len(match) < 4 {
		return m
	}
	src := safeURL(match[2])
	if src == "" {
		return match[1]
	}
	width, height := "1024", "768"
	if len(match) >= 6 && match[4] != "" && match[5] != "" {
		width, height = match[4], match[5]
	}

	st.images++
	loadAttr := `loading="eager"`
	if st.images == 1 {
		loadAttr = `fetchpriority="high"`
	}
	return `<img ` + loadAttr + ` width="` + width + `" height="` + height +
		`" alt="` + match[1] + `" src="` + src + `" style="` + match[3] + `" decoding="async"/>`
}

func renderLink(m string) string {
	match := reLink.FindStringSubmatch(m)
	if len(match) < 3 {
		return m
	}
	href := safeURL(match[2])
	if href == "" {
		return match[1]
	}
	attrs := `class="post-link"`
	if len(match) >= 4 && match[3] == "^" {
		attrs += ` target="_blank" rel="noopener noreferrer"`
	}
	return `<a href="` + href + `" ` + attrs + `>` + match[1] + `</a>`
}

// outsideTags applies fn only to text segments outside HTML tags.
func outsideTags(s string, fn func(string) string) string {
	var b strings.Builder
	for len(s) > 0 {
		lt := strings.Index(s, "<")
		if lt < 0 {
			b.WriteString(fn(s))
			break
		}
		if lt > 0 {
			b.WriteString(fn(s[:lt]))
		}
		gt := strings.Index(s[lt:], ">")
		if gt < 0 {
			b.WriteString(s[lt:])
			break
		}
		b.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return b.String()
}

// safeURL validates a URL for use in an HTML attribute. Relative paths and
// fragments pass through; absolute URLs must carry an allowed scheme.
func safeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}
