//go:build !windows && !darwin

package lcu

// NewProcessLister returns nil: the client does not run natively here, so
// process inspection always reports not found.
func NewProcessLister() ProcessLister {
	return nil
}
