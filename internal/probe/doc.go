// Package probe formats plane coordinates and iterate values under the
// cursor for display.
package probe
