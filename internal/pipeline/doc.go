// Package pipeline turns a post's markdown body into an HTML fragment.
//
// Stages:
//   - preprocessing (line ending normalization, blank line compression)
//   - markdown to HTML via goldmark (GFM, footnotes, ==mark== spans, heading
//     ids, chroma syntax highlighting)
//   - root-level table wrapping
//
// Color remapping is not done here; it runs on the whole rendered page in
// postprocess.Middleware.
package pipeline
