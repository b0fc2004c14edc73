package dto

import (
	"html"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func nestedEscape(s string, depth int) string {
	for i := 0; i < depth; i++ {
		s = html.EscapeString(s)
	}
	return s
}

func TestCleanText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "  Go developer ", "Go developer"},
		{"ampersand and angle text", "C++ & <Go>", "C++ & <Go>"},
		{"non-tag brackets", "x <y> z", "x <y> z"},
		{"script dropped", "My CV <script>alert(1)</script>", "My CV"},
		{"tags stripped", "<b>Nguyen</b>", "Nguyen"},
		{"entities inside markup decoded once", "<p>Go &amp; Rust</p>", "Go & Rust"},
		{"entities without markup kept", "Go &amp; Rust", "Go &amp; Rust"},
		{"comment", "a<!-- hidden -->b", "ab"},
		{"attributes", `<img src=x onerror="alert(1)">photo`, "photo"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cleanText(tc.in))
		})
	}
}

func TestCleanText_Idempotent(t *testing.T) {
	inputs := []string{
		"C++ & <Go>",
		"<b>a</b> &lt;i&gt;",
		nestedEscape("<b>x</b>", 10),
		"<b>" + nestedEscape("<i>x</i>", 12) + "</b>",
		strings.Repeat("<div>", 20) + "deep" + strings.Repeat("</div>", 20),
		"<scr<script>ipt>alert(1)</script>",
	}
	for _, in := range inputs {
		once := cleanText(in)
		assert.Equal(t, once, cleanText(once), "input %q", in)
	}
}

func TestNormalize_IdempotentWithNestedEscapes(t *testing.T) {
	v := ResumeValues{
		Title:   nestedEscape("<b>CV</b>", 10),
		Summary: "<p>" + nestedEscape("<script>x</script>", 9) + "</p>",
		Skills:  []string{"C++ & <Go>"},
	}

	once := v.Normalize()
	assert.Equal(t, once, once.Normalize())
	assert.Equal(t, []string{"C++ & <Go>"}, once.Skills)
}
