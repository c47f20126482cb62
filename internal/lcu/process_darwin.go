//go:build darwin

package lcu

// NewProcessLister lists full argument vectors with ps and keeps the lines
// mentioning a client executable.
func NewProcessLister() ProcessLister {
	return execLister{
		command: "ps",
		args:    func([]string) []string { return []string{"-A", "-ww", "-o", "args="} },
		match:   lineMentionsAny,
	}
}
