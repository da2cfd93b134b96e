package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionMechanism(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extension script is a shell script")
	}
	dir := useTempJournal(t)
	config.Currency = "EUR"

	out := filepath.Join(dir, "out.txt")
	script := `#!/bin/sh
echo "args=$*" > "` + out + `"
echo "` + EnvJournal + `=$` + EnvJournal + `" >> "` + out + `"
echo "` + EnvCurrency + `=$` + EnvCurrency + `" >> "` + out + `"
exit 3
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tj-hello"), []byte(script), 0755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	found, code := RunExtension("hello", []string{"a", "b"})
	assert.True(t, found)
	assert.Equal(t, 3, code)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Equal(t, []string{
		"args=a b",
		EnvJournal + "=" + config.Journal,
		EnvCurrency + "=EUR",
	}, lines)

	found, _ = RunExtension("missing-extension", nil)
	assert.False(t, found)
}
