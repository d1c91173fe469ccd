package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlighter_Block(t *testing.T) {
	t.Parallel()

	h := New("github-dark")
	out := h.Block("go", "{1}", "a := 1\nb := 2\nc := 3")

	assert.True(t, strings.HasPrefix(out, `<pre class="chroma"><code class="language-go">`), "got %q", out)
	assert.True(t, strings.HasSuffix(out, "</code></pre>"), "got %q", out)
	assert.Equal(t, 1, strings.Count(out, `<span class="line hl">`), "exactly the first line is emphasized")
	assert.Equal(t, 3, strings.Count(out, `<span class="line`), "one span per source line")
}

func TestHighlighter_BlockNoAnnotation(t *testing.T) {
	t.Parallel()

	h := New("github-dark")
	out := h.Block("go", "", "x := 1\ny := 2")

	assert.Equal(t, 0, strings.Count(out, `"line hl"`))
	assert.Equal(t, 2, strings.Count(out, `<span class="line`))
}

func TestHighlighter_BlockUnknownLanguage(t *testing.T) {
	t.Parallel()

	h := New("github-dark")
	out := h.Block("nosuchlanguage", "{2}", "first\nsecond")

	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
	assert.Equal(t, 1, strings.Count(out, `<span class="line hl">`))
}

func TestHighlighter_BlockEscapesSource(t *testing.T) {
	t.Parallel()

	h := New("github-dark")
	out := h.Block("", "", "<script>alert(1)</script>")

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestHighlighter_WriteCSS(t *testing.T) {
	t.Parallel()

	h := New("github-dark")
	var b strings.Builder
	require.NoError(t, h.WriteCSS(&b))

	css := b.String()
	assert.Contains(t, css, ".chroma .line.hl", "line emphasis rule present")
	assert.Contains(t, css, ".chroma", "chroma token classes present")
}

func TestHighlighter_WritePlainKeepsLineCount(t *testing.T) {
	t.Parallel()

	h := New("")
	var b strings.Builder
	h.init()
	h.writePlain(&b, "one\ntwo\nthree", ParseMeta("{1,3}"))

	out := b.String()
	assert.Equal(t, 3, strings.Count(out, `<span class="line`))
	assert.Equal(t, 2, strings.Count(out, `<span class="line hl">`))
}
