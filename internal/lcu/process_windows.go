//go:build windows

package lcu

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
)

// NewProcessLister queries Win32_Process through PowerShell.
func NewProcessLister() ProcessLister {
	return execLister{
		command: "powershell",
		args: func(names []string) []string {
			filters := make([]string, 0, len(names))
			for _, name := range names {
				filters = append(filters, fmt.Sprintf("Name = '%s'", strings.ReplaceAll(name, "'", "''")))
			}
			script := fmt.Sprintf(
				`Get-CimInstance Win32_Process -Filter "%s" | Select-Object -ExpandProperty CommandLine`,
				strings.Join(filters, " OR "),
			)
			return []string{"-NoProfile", "-NonInteractive", "-Command", script}
		},
		run: runHidden,
	}
}

func runHidden(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
	return cmd.Output()
}
