//go:build !windows
// +build !windows

package elevation

import "os"

func IsElevated() bool {
	return os.Geteuid() == 0
}
