// Package raster captures a staged container as a bitmap and collects the
// hyperlink regions laid out inside it.
package raster
