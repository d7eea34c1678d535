package paths

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withCWD(t *testing.T, dir string) {
	t.Helper()
	orig := getwd
	getwd = func() (string, error) { return dir, nil }
	t.Cleanup(func() { getwd = orig })
}

func TestDefaults(t *testing.T) {
	withCWD(t, "/work")

	got, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/work/.mockstore", got)

	got, err = DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, "/work/.mockstore-db", got)
}

func TestDefaultsPropagateGetwdError(t *testing.T) {
	orig := getwd
	getwd = func() (string, error) { return "", errors.New("no cwd") }
	t.Cleanup(func() { getwd = orig })

	_, err := DefaultConfigDir()
	require.Error(t, err)
	_, err = ResolveDataDir("", "")
	require.Error(t, err)
}

func TestResolveConfigDir(t *testing.T) {
	withCWD(t, "/work")

	tests := []struct {
		name string
		flag string
		env  string
		want string
	}{
		{name: "flag wins", flag: "/from/flag", env: "/from/env", want: "/from/flag"},
		{name: "env when no flag", env: "/from/env", want: "/from/env"},
		{name: "default when nothing set", want: "/work/.mockstore"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.env)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	withCWD(t, "/work")

	tests := []struct {
		name   string
		flag   string
		config string
		env    string
		want   string
	}{
		{name: "flag wins", flag: "/from/flag", config: "/from/config", env: "/from/env", want: "/from/flag"},
		{name: "config beats env", config: "/from/config", env: "/from/env", want: "/from/config"},
		{name: "env when no flag or config", env: "/from/env", want: "/from/env"},
		{name: "default when nothing set", want: "/work/.mockstore-db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.env)
			got, err := ResolveDataDir(tt.flag, tt.config)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveRelativeFlagIsAbsolute(t *testing.T) {
	got, err := ResolveDataDir("relative/data", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "data", filepath.Base(got))
}
