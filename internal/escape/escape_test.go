package escape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cbrandt/noteweave/internal/escape"
)

func TestHTMLText_EscapesEachSpecialCharacterExactlyOnce(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text unchanged", in: "hello world", want: "hello world"},
		{name: "ampersand", in: "a & b", want: "a &amp; b"},
		{name: "angle brackets", in: "<script>", want: "&lt;script&gt;"},
		{name: "quotes", in: `say "hi" it's fine`, want: "say &#34;hi&#34; it&#39;s fine"},
		{
			name: "xss payload",
			in:   `<img src=x onerror="alert('xss')">`,
			want: "&lt;img src=x onerror=&#34;alert(&#39;xss&#39;)&#34;&gt;",
		},
		{
			name: "already-escaped text is escaped again, not recognized",
			in:   "&amp;",
			want: "&amp;amp;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escape.HTMLText(tt.in))
		})
	}
}

func TestSanitizeAttrURL_TableDriven(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{name: "plain relative path", in: "notes/alpha.html", want: "notes/alpha.html", ok: true},
		{name: "empty string rejected", in: "", ok: false},
		{name: "traversal rejected", in: "../../etc/passwd", ok: false},
		{name: "leading slash rejected", in: "/etc/passwd", ok: false},
		{name: "javascript scheme rejected", in: "javascript:alert(1)", ok: false},
		{name: "data scheme rejected", in: "data:text/html,<script>", ok: false},
		{
			name: "space percent-encoded",
			in:   "my notes/a b.html",
			want: "my%20notes/a%20b.html",
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := escape.SanitizeAttrURL(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
