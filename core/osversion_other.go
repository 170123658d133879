//go:build !darwin && !linux && !windows

package core

// osVersion is unavailable here; version-constrained rules simply never
// match.
func osVersion() string {
	return ""
}
