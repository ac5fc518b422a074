package logbook_test

import (
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"golang.org/x/net/html"

	"impractical.co/logbook"
)

var fixedNow = time.Date(2024, time.May, 6, 7, 8, 9, 0, time.UTC)

func newTestBlog(t *testing.T, modify ...func(*logbook.BlogConfig)) *logbook.Blog {
	t.Helper()
	cfg := logbook.BlogConfig{
		Title:     "Test Blog",
		BaseURL:   "https://example.com",
		Author:    "Jane Doe",
		AuthorURI: "https://example.com/about",
		Now: func() time.Time {
			return fixedNow
		},
	}
	for _, mod := range modify {
		mod(&cfg)
	}
	blog, err := logbook.NewBlog(cfg)
	if err != nil {
		t.Fatalf("error creating blog: %s", err)
	}
	return blog
}

// templatesWith returns the default templates, with the contents of any
// files in overrides replaced.
func templatesWith(t *testing.T, overrides map[string]string) fstest.MapFS {
	t.Helper()
	result := fstest.MapFS{}
	defaults := logbook.DefaultTemplates()
	paths, err := fs.Glob(defaults, "*.tmpl")
	if err != nil {
		t.Fatalf("error listing default templates: %s", err)
	}
	for _, path := range paths {
		contents, err := fs.ReadFile(defaults, path)
		if err != nil {
			t.Fatalf("error reading %q: %s", path, err)
		}
		result[path] = &fstest.MapFile{Data: contents, Mode: 0444}
	}
	for path, contents := range overrides {
		result[path] = &fstest.MapFile{Data: []byte(contents), Mode: 0444}
	}
	return result
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func parseHTML(t *testing.T, doc string) *html.Node {
	t.Helper()
	node, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("error parsing HTML: %s\n%s", err, doc)
	}
	return node
}

func findAll(node *html.Node, match func(*html.Node) bool) []*html.Node {
	var results []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			results = append(results, n)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return results
}

func element(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

func elementWithClass(tag, class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != tag {
			return false
		}
		for _, field := range strings.Fields(attr(n, "class")) {
			if field == class {
				return true
			}
		}
		return false
	}
}

func attr(node *html.Node, key string) string {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(node *html.Node) string {
	var buf strings.Builder
	for _, n := range findAll(node, func(n *html.Node) bool { return n.Type == html.TextNode }) {
		buf.WriteString(n.Data)
	}
	return strings.TrimSpace(buf.String())
}

func texts(nodes []*html.Node) []string {
	results := make([]string, 0, len(nodes))
	for _, node := range nodes {
		results = append(results, text(node))
	}
	return results
}
