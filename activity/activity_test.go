package activity

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry_Truncates(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	e := NewEntry(at, strings.Repeat("a", 250), &Target{Type: "Trade", ID: "t1"}, strings.Repeat("é", 2100))

	assert.Len(t, e.Action, maxAction)
	assert.Equal(t, maxDetails, len([]rune(e.Details)))
	assert.Equal(t, "Trade", e.TargetType)
	assert.Equal(t, "t1", e.TargetID)
	assert.Equal(t, at, e.Time)

	e = NewEntry(at, "Added trade XYZ", nil, "")
	assert.Equal(t, "Added trade XYZ", e.Action)
	assert.Empty(t, e.TargetType)
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.jsonl")
	f := NewFile(path, zerolog.Nop())
	tick := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	f.now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}

	f.Log("Added trade XYZ", &Target{Type: "Trade", ID: "t1"}, "qty=10 buy=100")
	f.Log("Closed trade XYZ", &Target{Type: "Trade", ID: "t1"}, "sell=110 exit=RES")
	f.Log("Uploaded chart for XYZ", nil, "xyz.png")

	all, err := Recent(path, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Uploaded chart for XYZ", all[0].Action)
	assert.Equal(t, "Added trade XYZ", all[2].Action)
	assert.Equal(t, "qty=10 buy=100", all[2].Details)

	last, err := Recent(path, 1)
	require.NoError(t, err)
	assert.Len(t, last, 1)
}

func TestFile_FailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	dir := t.TempDir()
	// a directory cannot be opened for append.
	f := NewFile(dir, zerolog.New(&buf))
	f.Log("Added trade XYZ", nil, "")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "Added trade XYZ", entry["action"])
}

func TestRecent_Missing(t *testing.T) {
	entries, err := Recent(filepath.Join(t.TempDir(), "none.jsonl"), 10)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRead_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"action\":\"ok\"}\n\nnot json\n"), 0644))
	_, err := Recent(path, 0)
	assert.ErrorContains(t, err, "line 3")
}

func TestZerolog(t *testing.T) {
	var buf bytes.Buffer
	NewZerolog(zerolog.New(&buf)).Log("Closed trade ABC", &Target{Type: "Trade", ID: "t9"}, "sell=12")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Closed trade ABC", entry["message"])
	assert.Equal(t, "t9", entry["target_id"])
	assert.Equal(t, "sell=12", entry["details"])
}

func TestNop(t *testing.T) {
	var l Logger = Nop{}
	l.Log("anything", nil, "")
}
