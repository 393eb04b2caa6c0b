package staging

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestParseFragment(t *testing.T) {
	t.Parallel()

	root, err := ParseFragment("<h1>Title</h1><p>Body</p>")
	if err != nil {
		t.Fatalf("ParseFragment() error = %v", err)
	}
	got := render(t, root)
	want := "<div><h1>Title</h1><p>Body</p></div>"
	if got != want {
		t.Errorf("ParseFragment() = %q, want %q", got, want)
	}
}

func TestCloneSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markup   string
		opts     CloneOptions
		contains []string
		absent   []string
	}{
		{
			name:     "plain markup is copied",
			markup:   `<p class="lead">Hello <a href="https://example.com">link</a></p>`,
			contains: []string{`<p class="lead">Hello <a href="https://example.com">link</a></p>`},
		},
		{
			name:   "scripts dropped without javascript",
			markup: `<p>a</p><script>document.title = "x"</script>`,
			absent: []string{"<script>"},
		},
		{
			name:     "scripts kept with javascript",
			markup:   `<p>a</p><script>document.title = "x"</script>`,
			opts:     CloneOptions{JavaScriptEnabled: true},
			contains: []string{`<script>document.title = "x"</script>`},
		},
		{
			name:     "textarea value becomes content",
			markup:   `<textarea value="typed">initial</textarea>`,
			contains: []string{"<textarea>typed</textarea>"},
			absent:   []string{"initial"},
		},
		{
			name:     "select value marks option",
			markup:   `<select value="b"><option value="a" selected>A</option><option value="b">B</option></select>`,
			contains: []string{`<option value="a">A</option>`, `<option value="b" selected="selected">B</option>`},
		},
		{
			name:     "select value matches option text",
			markup:   `<select value="Two"><option>One</option><option>Two</option></select>`,
			contains: []string{`<option selected="selected">Two</option>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := ParseFragment(tt.markup)
			if err != nil {
				t.Fatalf("ParseFragment() error = %v", err)
			}
			got := render(t, CloneSource(src, tt.opts))
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("clone %q missing %q", got, s)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(got, s) {
					t.Errorf("clone %q should not contain %q", got, s)
				}
			}
		})
	}
}

func TestCloneSource_LeavesSourceUntouched(t *testing.T) {
	t.Parallel()

	markup := `<select value="b"><option value="a" selected>A</option><option value="b">B</option></select><textarea value="v">t</textarea><script>x()</script>`
	src, err := ParseFragment(markup)
	if err != nil {
		t.Fatalf("ParseFragment() error = %v", err)
	}
	before := render(t, src)

	clone := CloneSource(src, CloneOptions{})
	clone.FirstChild.Attr = nil

	if after := render(t, src); after != before {
		t.Errorf("source changed:\nbefore %q\nafter  %q", before, after)
	}
}

func TestCloneSource_Nil(t *testing.T) {
	t.Parallel()

	if got := CloneSource(nil, CloneOptions{}); got != nil {
		t.Errorf("CloneSource(nil) = %v, want nil", got)
	}
}
