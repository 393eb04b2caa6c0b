package mdsource

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativePaths walks n and turns relative img[src], a[href] and
// link[href] values into absolute file:// URLs resolved against dir.
// Anchors, URLs with a scheme, absolute paths and paths escaping dir are
// left alone. An empty dir is a no-op.
func RewriteRelativePaths(n *html.Node, dir string) error {
	if dir == "" || n == nil {
		return nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	rewriteNode(n, abs)
	return nil
}

func rewriteNode(n *html.Node, dir string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", dir)
		case atom.A, atom.Link:
			rewriteAttr(n, "href", dir)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, dir)
	}
}

func rewriteAttr(n *html.Node, key, dir string) {
	for i, attr := range n.Attr {
		if attr.Key != key || !isRelativePath(attr.Val) {
			continue
		}
		abs := filepath.Join(dir, filepath.FromSlash(attr.Val))
		if !isPathUnderDir(abs, dir) {
			continue
		}
		n.Attr[i].Val = pathToFileURL(abs)
	}
}

func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}
	if u, err := url.Parse(path); err == nil && u.Scheme != "" {
		// Covers http, https, file, data and mailto. A Windows drive
		// letter also parses as a scheme and is absolute anyway.
		return false
	}
	return !filepath.IsAbs(path)
}

// isPathUnderDir reports whether absPath stays inside dir.
func isPathUnderDir(absPath, dir string) bool {
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(absPath)+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL, including
// Windows paths.
func pathToFileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
