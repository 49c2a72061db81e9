// Package redmark renders documents written in the redmark Markdown dialect.
//
// A redmark document is an optional metadata header followed by a body of
// line-oriented blocks: headings, paragraphs, lists, blockquotes, fenced code,
// display math and pipe tables. Inline spans cover bold, italic, code, math,
// links and images.
//
// The pure helpers expose each stage on its own:
//
//	doc := redmark.ParseDocument(raw)
//	blocks := redmark.ParseBlocks(doc.Body)
//	items := redmark.ExtractTOC(doc.Body)
//
// A Renderer runs the whole pipeline and produces an HTML page:
//
//	r, err := redmark.NewRenderer(redmark.WithTheme("night"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := r.Render(ctx, redmark.Input{
//	    Markdown: raw,
//	    FileName: "hello-world.md",
//	    TOC:      &redmark.TOC{Title: "Contents"},
//	    Header:   true,
//	})
//
// Code is highlighted with chroma and math is handed to KaTeX in the browser.
// Both collaborators can be replaced with WithHighlighter and WithTypesetter.
// A collaborator failure never fails a render; the affected content falls
// back to its escaped source.
//
// A Renderer is safe for concurrent use by multiple goroutines.
package redmark
