package lcu

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLockfile_WellFormed(t *testing.T) {
	cases := []struct {
		name     string
		line     string
		port     uint16
		password string
	}{
		{"basic", "LeagueClient:1234:54321:s3cr3t:https", 54321, "s3cr3t"},
		{"trailing newline", "LeagueClient:1234:443:pw:https\n", 443, "pw"},
		{"extra fields ignored", "LeagueClient:1:65535:pw:https:extra:more", 65535, "pw"},
		{"non numeric pid", "LeagueClient:abc:8080:pw:https", 8080, "pw"},
		{"empty password", "LeagueClient:1:1:::", 1, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lf, err := ParseLockfile(tc.line)
			require.NoError(t, err)
			assert.Equal(t, tc.port, lf.Port)
			assert.Equal(t, tc.password, lf.Password)
			assert.Equal(t, ConnectionInfo{Port: tc.port, Password: tc.password}, lf.ConnectionInfo())
		})
	}
}

func TestParseLockfile_TooFewFields(t *testing.T) {
	for _, line := range []string{"", "a", "a:b", "a:1:2:3", "LeagueClient:1:2:pw"} {
		_, err := ParseLockfile(line)
		var pe *ParseError
		require.Error(t, err, "line %q", line)
		assert.True(t, errors.As(err, &pe), "line %q: want *ParseError, got %T", line, err)
	}
}

func TestParseLockfile_BadPort(t *testing.T) {
	for _, port := range []string{"", "http", "-1", "65536", "99999999"} {
		_, err := ParseLockfile("LeagueClient:1:" + port + ":pw:https")
		var pe *ParseError
		require.Error(t, err, "port %q", port)
		assert.True(t, errors.As(err, &pe))
	}
}

// The riot/league rule is a heuristic; these cases pin the current boundary.
func TestIsHostProcess(t *testing.T) {
	cases := map[string]bool{
		"RiotClientServices": true,
		"Riot Client":        true,
		"riotclient":         true,
		"LeagueClientUx":     false,
		"LeagueClient":       false,
		"RiotLeagueClient":   false, // known ambiguity: mentions both
		"":                   false,
	}
	for name, want := range cases {
		assert.Equal(t, want, IsHostProcess(name), "IsHostProcess(%q)", name)
	}
}

func TestReadLockfile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good")
	require.NoError(t, os.WriteFile(good, []byte("LeagueClientUx:42:2999:pw:https"), 0o600))
	lf, err := ReadLockfile(good)
	require.NoError(t, err)
	assert.Equal(t, "LeagueClientUx", lf.Name)
	assert.Equal(t, 42, lf.PID)
	assert.Equal(t, uint16(2999), lf.Port)

	host := filepath.Join(dir, "host")
	require.NoError(t, os.WriteFile(host, []byte("RiotClientServices:42:2999:pw:https"), 0o600))
	_, err = ReadLockfile(host)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, host, pe.Path)

	bad := filepath.Join(dir, "bad")
	require.NoError(t, os.WriteFile(bad, []byte("LeagueClientUx:42"), 0o600))
	_, err = ReadLockfile(bad)
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, bad, pe.Path)

	_, err = ReadLockfile(filepath.Join(dir, "missing"))
	require.True(t, errors.As(err, &pe))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
