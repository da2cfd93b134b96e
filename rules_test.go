package tradejournal

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules_Edit(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 30, 15, 500, time.UTC)
	r := NewRules().Edit("", "sell below the 30 week MA", now)
	assert.Equal(t, DefaultRulesTitle, r.Title)
	assert.Equal(t, "sell below the 30 week MA", r.Content)
	assert.Equal(t, now.Truncate(time.Second), r.UpdatedAt)

	r = r.Edit("  Mine ", "", now)
	assert.Equal(t, "Mine", r.Title)
	assert.Empty(t, r.Content)

	assert.Equal(t, DefaultRulesTitle, Rules{}.Edit("", "x", now).Title)
}

func TestRules_EncodeDecode(t *testing.T) {
	want := Rules{
		Title:     "Stage: 2 only",
		Content:   "# Entries\n\n---\n\n* breakout on volume\n",
		UpdatedAt: time.Date(2025, 3, 1, 10, 30, 15, 0, time.UTC),
	}
	var buf bytes.Buffer
	require.NoError(t, EncodeRules(&buf, want))
	assert.True(t, strings.HasPrefix(buf.String(), "---\n"), buf.String())

	got, err := DecodeRules(&buf)
	require.NoError(t, err)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Content, got.Content)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt), "updated %v", got.UpdatedAt)
}

func TestDecodeRules(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		title   string
		content string
		wantErr bool
	}{
		{name: "plain markdown", in: "just text\n", title: DefaultRulesTitle, content: "just text\n"},
		{name: "empty", in: "", title: DefaultRulesTitle, content: ""},
		{name: "no title", in: "---\nupdated: 2025-01-01T00:00:00Z\n---\n\nbody", title: DefaultRulesTitle, content: "body"},
		{name: "crlf", in: "---\r\ntitle: T\r\n---\r\n\r\nbody\r\n", title: "T", content: "body\n"},
		{name: "unterminated", in: "---\ntitle: T\nbody", wantErr: true},
		{name: "bad yaml", in: "---\ntitle: [\n---\nbody", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := DecodeRules(strings.NewReader(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.title, r.Title)
			assert.Equal(t, tt.content, r.Content)
		})
	}
}

func TestRulesFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	f := RulesFile(filepath.Join(dir, "rules.md"))

	r, err := f.Rules(ctx)
	require.NoError(t, err)
	assert.Equal(t, NewRules(), r, "a missing file holds the default rules")

	r = r.Edit("Mine", "cut losses", time.Now())
	require.NoError(t, f.SaveRules(ctx, r))
	got, err := f.Rules(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Title)
	assert.Equal(t, "cut losses", got.Content)

	// no temporary file left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, os.WriteFile(string(f), []byte("---\ntitle: broken"), 0644))
	_, err = f.Rules(ctx)
	assert.ErrorContains(t, err, "cannot read rules")
}

func TestWriteFileAtomic_KeepsPreviousOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0644))

	err := WriteFileAtomic(path, func(w io.Writer) error {
		w.Write([]byte("partial"))
		return errors.New("encoding failed")
	})
	assert.ErrorContains(t, err, "encoding failed")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(content))
}
