package lcu

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ConnectionInfo is what an authenticated request needs. It is built fresh on
// every discovery; the client may restart with a new port and password at any
// time, so callers must not hold on to it.
type ConnectionInfo struct {
	Port     uint16
	Password string
}

// Locator finds a running client instance. It keeps no state between calls
// and is safe for concurrent use.
type Locator struct {
	lockfiles    []string
	processNames []string
	processes    ProcessLister
}

// LocatorOptions configures a Locator. Empty fields use platform defaults.
type LocatorOptions struct {
	Lockfiles    []string
	ProcessNames []string
	// Processes overrides process inspection. Leave nil for the platform lister.
	Processes ProcessLister
	// DisableProcessScan skips process inspection entirely.
	DisableProcessScan bool
}

// NewLocator builds a Locator from opts.
func NewLocator(opts LocatorOptions) *Locator {
	l := &Locator{
		lockfiles:    opts.Lockfiles,
		processNames: opts.ProcessNames,
		processes:    opts.Processes,
	}
	if len(l.lockfiles) == 0 {
		l.lockfiles = DefaultLockfilePaths()
	}
	if len(l.processNames) == 0 {
		l.processNames = DefaultProcessNames
	}
	if opts.DisableProcessScan {
		l.processes = nil
	} else if l.processes == nil {
		l.processes = NewProcessLister()
	}
	return l
}

// Lockfiles returns the candidate paths in the order they are tried.
func (l *Locator) Lockfiles() []string {
	return append([]string(nil), l.lockfiles...)
}

// probe is one discovery source. A non-nil error means "skip".
type probe struct {
	source string
	run    func(ctx context.Context) (ConnectionInfo, error)
}

const processSource = "process scan"

var errProcessScanUnavailable = errors.New("process inspection unavailable on this platform")

func (l *Locator) probes() []probe {
	probes := make([]probe, 0, len(l.lockfiles)+1)
	for _, path := range l.lockfiles {
		probes = append(probes, probe{
			source: path,
			run: func(context.Context) (ConnectionInfo, error) {
				lf, err := ReadLockfile(path)
				if err != nil {
					return ConnectionInfo{}, err
				}
				return lf.ConnectionInfo(), nil
			},
		})
	}
	probes = append(probes, probe{source: processSource, run: l.scanProcesses})
	return probes
}

// Discover returns the first connection found, trying the lockfiles in order
// and then the process list. The error is a *NotFoundError naming every
// source that was tried.
func (l *Locator) Discover(ctx context.Context) (ConnectionInfo, error) {
	var attempts []Attempt
	for _, p := range l.probes() {
		info, err := p.run(ctx)
		if err == nil {
			return info, nil
		}
		attempts = append(attempts, Attempt{Source: p.source, Reason: skipReason(err)})
	}
	return ConnectionInfo{}, &NotFoundError{Attempts: attempts}
}

func (l *Locator) scanProcesses(ctx context.Context) (ConnectionInfo, error) {
	if l.processes == nil {
		return ConnectionInfo{}, errProcessScanUnavailable
	}
	lines, err := l.processes.CommandLines(ctx, l.processNames)
	if err != nil {
		return ConnectionInfo{}, err
	}
	for _, line := range lines {
		if info, ok := ParseCommandLine(line); ok {
			return info, nil
		}
	}
	if len(lines) == 0 {
		return ConnectionInfo{}, fmt.Errorf("no %s process running", strings.Join(l.processNames, "/"))
	}
	return ConnectionInfo{}, fmt.Errorf("%d matching process(es) without %s and %s", len(lines), appPortFlag, authTokenFlag)
}

func skipReason(err error) string {
	var pe *ParseError
	if errors.As(err, &pe) {
		if pe.Err != nil && errors.Is(pe.Err, os.ErrNotExist) {
			return "not found"
		}
		return pe.Reason
	}
	return err.Error()
}

// DebugInfo reports on every source without stopping at the first success.
// It never fails; problems are written inline, one line per source.
func (l *Locator) DebugInfo(ctx context.Context) string {
	var b strings.Builder
	for i, path := range l.lockfiles {
		fmt.Fprintf(&b, "lockfile[%d] %s: ", i, path)
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(&b, "exists=false (%s)\n", skipReason(&ParseError{Reason: "unreadable", Err: err}))
			continue
		}
		b.WriteString("exists=true ")
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(&b, "read error: %v\n", err)
			continue
		}
		name, _, _ := strings.Cut(strings.TrimSpace(string(data)), ":")
		fmt.Fprintf(&b, "name=%q ", name)
		lf, err := ParseLockfile(string(data))
		switch {
		case err != nil:
			fmt.Fprintf(&b, "parse=failed (%s)\n", skipReason(err))
		case IsHostProcess(lf.Name):
			fmt.Fprintf(&b, "parse=ok port=%d rejected=host process\n", lf.Port)
		default:
			fmt.Fprintf(&b, "parse=ok port=%d\n", lf.Port)
		}
	}

	b.WriteString(processSource + ": ")
	info, err := l.scanProcesses(ctx)
	if err != nil {
		fmt.Fprintf(&b, "not found (%v)\n", err)
	} else {
		fmt.Fprintf(&b, "found port=%d\n", info.Port)
	}
	return b.String()
}
