package lcu

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Lockfile is the parsed contents of a client lockfile.
// Format: name:pid:port:password:protocol
type Lockfile struct {
	Name     string
	PID      int
	Port     uint16
	Password string
	Protocol string
}

// ConnectionInfo returns the port and credential needed for one request.
func (l Lockfile) ConnectionInfo() ConnectionInfo {
	return ConnectionInfo{Port: l.Port, Password: l.Password}
}

const lockfileFields = 5

// ParseLockfile parses a single lockfile line. Fields past the fifth are ignored.
func ParseLockfile(contents string) (Lockfile, error) {
	parts := strings.Split(strings.TrimSpace(contents), ":")
	if len(parts) < lockfileFields {
		return Lockfile{}, &ParseError{Reason: fmt.Sprintf("expected %d fields, got %d", lockfileFields, len(parts))}
	}
	port, err := strconv.ParseUint(parts[2], 10, 16)
	if err != nil {
		return Lockfile{}, &ParseError{Reason: fmt.Sprintf("invalid port %q", parts[2]), Err: err}
	}
	// Only name, port and password matter for connecting.
	pid, _ := strconv.Atoi(parts[1])
	return Lockfile{
		Name:     parts[0],
		PID:      pid,
		Port:     uint16(port),
		Password: parts[3],
		Protocol: parts[4],
	}, nil
}

// IsHostProcess reports whether name belongs to the launcher/host process
// rather than the game client. Names mentioning "riot" (which covers
// "riotclient") are hosts unless they also mention "league", so a client
// embedded in the host still passes.
func IsHostProcess(name string) bool {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "league") {
		return false
	}
	return strings.Contains(lower, "riot")
}

// ReadLockfile reads and validates the lockfile at path.
func ReadLockfile(path string) (Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lockfile{}, &ParseError{Path: path, Reason: "unreadable", Err: err}
	}
	lf, err := ParseLockfile(string(data))
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return Lockfile{}, err
	}
	if IsHostProcess(lf.Name) {
		return Lockfile{}, &ParseError{Path: path, Reason: fmt.Sprintf("%q is a host process, not the game client", lf.Name)}
	}
	return lf, nil
}
