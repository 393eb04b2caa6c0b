// Package geometry resolves paper formats into page dimensions and converts
// lengths between the three coordinate systems used during pagination:
// CSS pixels (layout), points (PDF) and the configured page unit.
//
// A page unit is defined by its conversion factor k, the number of points in
// one unit. Converting a CSS pixel length to page units multiplies by
// 72/96/k; converting back multiplies by k/72*96.
package geometry
