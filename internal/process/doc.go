// Package process cleans up the browser processes a converter started.
package process
