// Package staging prepares the off-screen container that the rendering
// engine lays out and rasterizes.
//
// The container is a fixed-width block, as wide as the printable area of a
// page, that hosts a clone of the source fragment. Elements carrying the
// html2pdf__page-break class are padded so that the content following them
// starts exactly on the next page boundary once the tall raster is sliced.
// Before that, elements with ScrollTopAttr or ScrollLeftAttr are scrolled to
// the recorded offsets.
package staging
