package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsh2dsh/imgtag"
)

const testConfig = `
protocols = ["https"]
domains = ["upload.wikimedia.org"]
max_dimension = 1000
`

func clearConfigEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"XDG_CONFIG_HOME",
		"IMGTAG_PROTOCOLS",
		"IMGTAG_DOMAINS",
		"IMGTAG_SANITIZE_DOMAIN",
		"IMGTAG_SANITIZE_SRC",
	} {
		t.Setenv(key, "")
	}
}

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	clearConfigEnv(t)

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", writeConfigFile(t, testConfig)}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRenderCmd(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name: "valid",
			args: []string{
				"render", "https://upload.wikimedia.org/a.png",
				"alt=Example", "width=5000", "onclick=x",
			},
			expected: `<img src="https://upload.wikimedia.org/a.png" alt="Example" width="1000" />`,
		},
		{
			name:     "disallowed protocol",
			args:     []string{"render", "http://upload.wikimedia.org/a.png"},
			expected: `<span class="error">Error: Invalid or disallowed image URL protocol</span>`,
		},
		{
			name:     "no args",
			args:     []string{"render"},
			expected: `<span class="error">Error: img tag requires src attribute</span>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runCLI(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected+"\n", stdout)
		})
	}
}

func TestTagCmd(t *testing.T) {
	const markup = `<img src="https://upload.wikimedia.org/a.png" onerror="x" alt="A &amp; B">`
	const expected = `<img src="https://upload.wikimedia.org/a.png" alt="A &amp; B" />` + "\n"

	stdout, _, err := runCLI(t, "", "tag", markup)
	require.NoError(t, err)
	assert.Equal(t, expected, stdout)

	stdout, _, err = runCLI(t, markup, "tag")
	require.NoError(t, err)
	assert.Equal(t, expected, stdout)
}

func TestTagCmd_invalid(t *testing.T) {
	_, _, err := runCLI(t, "", "tag", `<script src="https://upload.wikimedia.org/a.png">`)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, exitInvalidInput, ErrorExitCode(err))

	_, _, err = runCLI(t, "", "tag", "plain text")
	require.ErrorIs(t, err, imgtag.ErrNoTag)
	assert.Equal(t, exitInvalidInput, ErrorExitCode(err))
}

func TestValidateCmd(t *testing.T) {
	stdout, stderr, err := runCLI(t, "", "validate",
		"https://user@Upload.Wikimedia.org/a.png#top",
		"https://example.com/a.png")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "1 of 2 URLs rejected")
	assert.Equal(t, "https://Upload.Wikimedia.org/a.png\n", stdout)
	assert.Contains(t, stderr, "disallowed domain")
}

func TestUsedCmd(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Example.png", "Logo.svg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Folder.png"), 0o755))

	stdout, _, err := runCLI(t, "", "used", "--media-dir", dir,
		"File:Example.png", "Image:Logo.svg", "Missing.png", "Folder.png",
		"File:../Example.png", "example.png", "file:Example.png")
	require.NoError(t, err)
	assert.Equal(t, "File:Example.png\nFile:Logo.svg\n", stdout)
}

func TestUsedCmd_badDir(t *testing.T) {
	_, _, err := runCLI(t, "", "used", "--media-dir",
		filepath.Join(t.TempDir(), "missing"), "File:Example.png")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRootCmd_badConfig(t *testing.T) {
	clearConfigEnv(t)
	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--config", writeConfigFile(t, "foo = 1"), "render", "x"})

	err := cmd.Execute()
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorContains(t, err, "unknown key(s): foo")
	assert.Equal(t, exitInvalidInput, ErrorExitCode(err))
	assert.True(t, strings.HasPrefix(FormatError(err), "Error [invalid-input]"))
}

func TestRootCmd_configSyntax(t *testing.T) {
	clearConfigEnv(t)
	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--config", writeConfigFile(t, "domains = ["), "render", "x"})

	err := cmd.Execute()
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, exitInvalidInput, ErrorExitCode(err))
}

func TestRootCmd_logLevel(t *testing.T) {
	_, stderr, err := runCLI(t, "", "--log-level", "debug",
		"render", "https://example.com/a.png")
	require.NoError(t, err)
	assert.Contains(t, stderr, "imgtag: image rejected")

	_, _, err = runCLI(t, "", "--log-level", "loud", "render", "x")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestFormatError(t *testing.T) {
	assert.Empty(t, FormatError(nil))
	assert.Equal(t, 0, ErrorExitCode(nil))
	assert.Equal(t, "Error [internal]: boom", FormatError(errors.New("boom")))
	assert.True(t, strings.HasPrefix(
		FormatError(ErrInvalidInput), "Error [invalid-input]"))
}

func TestRootCmd_helpSkipsConfig(t *testing.T) {
	clearConfigEnv(t)
	var stdout bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--config", writeConfigFile(t, "foo = 1"), "help", "render"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "imgtag render")
}
