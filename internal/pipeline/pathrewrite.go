package pipeline

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrInvalidBase indicates a base that is neither an http(s) URL nor a
// usable directory path.
var ErrInvalidBase = errors.New("invalid base for relative URLs")

// RewriteRelativeURLs resolves relative img[src] and a[href] values.
//
// An http or https base is resolved with URL reference rules, so a base that
// names a directory must end with "/". Any other base is a local directory
// and paths become file:// URLs; paths escaping that directory are left
// as written. An empty base returns the HTML unchanged.
//
// Anchors, absolute paths, data URIs and URLs with a scheme are never
// rewritten, nor are srcset, media sources or CSS url() references.
func RewriteRelativeURLs(htmlContent, base string) (string, error) {
	if base == "" {
		return htmlContent, nil
	}

	resolve, err := resolverFor(base)
	if err != nil {
		return "", err
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}
	rewriteNode(doc, resolve)
	return renderHTML(doc, isFragment)
}

func resolverFor(base string) (func(string) (string, bool), error) {
	if u, err := url.Parse(base); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		if u.Host == "" {
			return nil, fmt.Errorf("%w: %q has no host", ErrInvalidBase, base)
		}
		return func(ref string) (string, bool) {
			r, err := url.Parse(ref)
			if err != nil {
				return "", false
			}
			return u.ResolveReference(r).String(), true
		}, nil
	}

	dir, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase, err)
	}
	return func(ref string) (string, bool) {
		absPath := filepath.Join(dir, ref)
		if !isPathUnderDir(absPath, dir) {
			return "", false
		}
		return pathToFileURL(absPath), true
	}, nil
}

// parseHTML parses a full document or, failing the doctype/html prefix,
// a body fragment.
func parseHTML(content string) (*html.Node, bool, error) {
	lower := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders only the children of a fragment container so no
// <html><body> wrapper is added.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder
	if !isFragment {
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func rewriteNode(n *html.Node, resolve func(string) (string, bool)) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", resolve)
		case atom.A:
			rewriteAttr(n, "href", resolve)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, resolve)
	}
}

func rewriteAttr(n *html.Node, attrName string, resolve func(string) (string, bool)) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativePath(attr.Val) {
			continue
		}
		if v, ok := resolve(attr.Val); ok {
			n.Attr[i].Val = v
		}
	}
}

// isRelativePath reports whether path should be resolved against a base.
func isRelativePath(path string) bool {
	switch {
	case path == "",
		strings.HasPrefix(path, "#"),
		strings.HasPrefix(path, "//"),
		strings.HasPrefix(path, "/"),
		filepath.IsAbs(path):
		return false
	}
	if u, err := url.Parse(path); err != nil || u.Scheme != "" {
		return false
	}
	return true
}

// isPathUnderDir checks that absPath is dir or lies below it.
func isPathUnderDir(absPath, dir string) bool {
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(absPath)+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}
