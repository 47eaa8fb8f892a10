package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func render(t *testing.T, src string) string {
	t.Helper()
	out, err := New().Render(src)
	require.NoError(t, err)
	return out
}

func TestRenderHeading(t *testing.T) {
	out := render(t, "# Hi")
	require.Contains(t, out, "<h1")
	require.Contains(t, out, ">Hi</h1>")
}

func TestRenderGFM(t *testing.T) {
	out := render(t, "| a | b |\n|---|---|\n| 1 | 2 |\n\n~~gone~~\n\n- [x] done\n")
	require.Contains(t, out, "<table>")
	require.Contains(t, out, "<del>gone</del>")
	require.Contains(t, out, `type="checkbox"`)
}

func TestRenderStripsScript(t *testing.T) {
	cases := []string{
		"<script>alert(1)</script>",
		"hello <img src=x onerror=alert(1)>",
		"[click](javascript:alert(1))",
		"<a href=\"javascript:alert(1)\">x</a>",
	}
	for _, src := range cases {
		out := strings.ToLower(render(t, src))
		require.NotContains(t, out, "<script", src)
		require.NotContains(t, out, "onerror", src)
		require.NotContains(t, out, "javascript:", src)
	}
}

func TestRenderKeepsCodeLanguage(t *testing.T) {
	out := render(t, "```go\nfmt.Println(1)\n```")
	require.Contains(t, out, `class="language-go"`)
}
