// Package elevation answers a single question: does the current process run
// with administrative rights. The tool refuses to query the driver inventory
// without them, since driverquery returns incomplete data for standard users.
package elevation

// PrivilegeError indicates the process lacks administrative rights. It is not
// recoverable within the run; the user must restart from an elevated prompt.
type PrivilegeError struct{}

func (e *PrivilegeError) Error() string {
	return "administrative privileges are required; re-run this tool from an elevated prompt"
}

// Check returns a PrivilegeError when the current process is not elevated.
func Check() error {
	if IsElevated() {
		return nil
	}
	return &PrivilegeError{}
}
