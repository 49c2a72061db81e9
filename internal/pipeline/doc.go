// Package pipeline assembles rendered redmark fragments into pages.
//
// Stages, in the order the renderer applies them:
//   - line ending normalization of the raw source
//   - post header injection from the header template
//   - numbered table of contents injection after the header
//   - relative URL rewriting against a base URL or directory
//   - page wrapping from the page template
//   - CSS injection into the page head
//
// Every stage works on strings and is independent of the parsers, so the
// same stages can be reused for fragments produced by other renderers.
package pipeline
