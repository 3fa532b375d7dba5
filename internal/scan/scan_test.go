package scan

import (
	"slices"
	"testing"
)

func TestLinks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "inline link",
			text: "see [Example](https://example.com/page) for more",
			want: []string{"https://example.com/page"},
		},
		{
			name: "autolink",
			text: "visit <https://example.org>",
			want: []string{"https://example.org"},
		},
		{
			name: "bare url",
			text: "bare https://go.dev/doc here",
			want: []string{"https://go.dev/doc"},
		},
		{
			name: "document order with duplicates",
			text: "# Links\n\n- [a](https://a.example/)\n- https://b.example/x\n- [again](https://a.example/)\n",
			want: []string{"https://a.example/", "https://b.example/x", "https://a.example/"},
		},
		{
			name: "url as link text and destination",
			text: "[https://example.com](https://example.com)",
			want: []string{"https://example.com", "https://example.com"},
		},
		{
			name: "link text url precedes destination",
			text: "[https://a.example.com](https://b.example.com)",
			want: []string{"https://a.example.com", "https://b.example.com"},
		},
		{
			name: "hosts without a dotted suffix",
			text: "see http://localhost:8080/x and http://127.0.0.1:3000/y",
			want: []string{"http://localhost:8080/x", "http://127.0.0.1:3000/y"},
		},
		{
			name: "intranet host",
			text: "wiki at https://intranet/wiki.",
			want: []string{"https://intranet/wiki"},
		},
		{
			name: "fenced code block",
			text: "```sh\ncurl https://api.example.com/v1\n```\n",
			want: []string{"https://api.example.com/v1"},
		},
		{
			name: "indented code block",
			text: "text\n\n    https://indented.example.com/x\n",
			want: []string{"https://indented.example.com/x"},
		},
		{
			name: "inline html",
			text: `a <a href="https://html.example.com/page">link</a> here`,
			want: []string{"https://html.example.com/page"},
		},
		{
			name: "html block",
			text: "<div>\n<a href=\"https://block.example.com/\">x</a>\n</div>\n",
			want: []string{"https://block.example.com/"},
		},
		{
			name: "image destination",
			text: "![logo](https://cdn.example.com/logo.png)",
			want: []string{"https://cdn.example.com/logo.png"},
		},
		{
			name: "relative links skipped",
			text: "[note](other-note.md) and [anchor](#top)",
			want: nil,
		},
		{
			name: "email skipped",
			text: "write to someone@example.com",
			want: nil,
		},
		{
			name: "code span",
			text: "`https://example.com/in-code`",
			want: []string{"https://example.com/in-code"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(Links(tt.text))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Links() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLinksRestartable(t *testing.T) {
	seq := Links("[a](https://a.example/) https://b.example/")

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) {
		t.Errorf("second range = %q, want %q", second, first)
	}
	if len(first) != 2 {
		t.Errorf("got %d links, want 2", len(first))
	}
}

func TestLinksEarlyStop(t *testing.T) {
	var got []string
	for u := range Links("https://a.example/ https://b.example/ https://c.example/") {
		got = append(got, u)
		if len(got) == 2 {
			break
		}
	}
	if len(got) != 2 {
		t.Errorf("got %d links, want 2", len(got))
	}
}

func TestIsAbsolute(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"https://example.com", true},
		{"http://127.0.0.1:8080/x", true},
		{"example.com", false},
		{"/abs/path", false},
		{"mailto:a@example.com", false},
		{"%zz", false},
	}

	for _, tt := range tests {
		if got := IsAbsolute(tt.raw); got != tt.want {
			t.Errorf("IsAbsolute(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
