//go:build windows
// +build windows

package elevation

import (
	"golang.org/x/sys/windows"
)

// IsElevated reports whether the process token carries the elevation flag.
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
