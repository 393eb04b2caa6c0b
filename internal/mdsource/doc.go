// Package mdsource turns files on disk into HTML fragments ready for staging.
//
// Markdown files are converted with Goldmark (GFM, footnotes and Chroma
// highlighting with CSS classes). HTML files contribute their body content
// and the stylesheets declared in their head. In both cases relative image
// and link paths are rewritten to file:// URLs so the fragment renders the
// same once it is detached from its directory.
//
// Two Markdown directives are recognized outside code blocks:
//   - ==text== becomes <mark>text</mark>
//   - a line holding only \pagebreak or <!-- pagebreak --> becomes a
//     page-break marker that starts the following content on a new page
package mdsource
