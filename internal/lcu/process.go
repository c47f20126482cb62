package lcu

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultProcessNames are the executables that expose the client API.
var DefaultProcessNames = []string{"LeagueClientUx.exe", "LeagueClientUx", "LeagueClient.exe"}

const (
	appPortFlag   = "--app-port="
	authTokenFlag = "--remoting-auth-token="
)

// ProcessLister returns the command lines of running processes whose
// executable matches one of names. Platforms without process enumeration
// have no ProcessLister (see NewProcessLister).
type ProcessLister interface {
	CommandLines(ctx context.Context, names []string) ([]string, error)
}

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// execLister shells out to a platform utility and filters its output lines.
type execLister struct {
	command string
	args    func(names []string) []string
	match   func(line string, names []string) bool
	run     runFunc
}

func (l execLister) CommandLines(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	run := l.run
	if run == nil {
		run = runCommand
	}
	out, err := run(ctx, l.command, l.args(names)...)
	if err != nil {
		return nil, fmt.Errorf("list processes via %s: %w", l.command, err)
	}

	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if l.match != nil && !l.match(line, names) {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read process list: %w", err)
	}
	return lines, nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// ParseCommandLine extracts the port and auth token from a client command
// line. Both flags must be present.
func ParseCommandLine(line string) (ConnectionInfo, bool) {
	portValue, ok := flagValue(line, appPortFlag)
	if !ok {
		return ConnectionInfo{}, false
	}
	token, ok := flagValue(line, authTokenFlag)
	if !ok || token == "" {
		return ConnectionInfo{}, false
	}
	port, err := strconv.ParseUint(portValue, 10, 16)
	if err != nil {
		return ConnectionInfo{}, false
	}
	return ConnectionInfo{Port: uint16(port), Password: token}, true
}

// flagValue returns the value following prefix. Values end at whitespace or a
// double quote; a value that itself starts with a quote runs to the closing one.
func flagValue(line, prefix string) (string, bool) {
	idx := strings.Index(line, prefix)
	if idx < 0 {
		return "", false
	}
	rest := line[idx+len(prefix):]
	if strings.HasPrefix(rest, `"`) {
		rest = rest[1:]
		end := strings.IndexByte(rest, '"')
		if end < 0 {
			return rest, true
		}
		return rest[:end], true
	}
	end := strings.IndexAny(rest, " \t\"")
	if end < 0 {
		return rest, true
	}
	return rest[:end], true
}

func lineMentionsAny(line string, names []string) bool {
	for _, name := range names {
		if strings.Contains(line, name) {
			return true
		}
	}
	return false
}
