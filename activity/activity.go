// Package activity records what happened to the journal: trades added, closed
// and charts attached.
//
// Logging is fire and forget. A Logger never returns an error to its caller,
// write failures are reported on the diagnostic logger instead.
package activity

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

const (
	maxAction  = 200
	maxDetails = 2000
)

// Entry is one recorded activity.
type Entry struct {
	Time       time.Time `json:"time"`
	Action     string    `json:"action"`
	TargetType string    `json:"targetType,omitempty"`
	TargetID   string    `json:"targetId,omitempty"`
	Details    string    `json:"details,omitempty"`
}

// Target identifies the object an activity is about.
type Target struct {
	Type string
	ID   string
}

// Logger records activities.
type Logger interface {
	Log(action string, target *Target, details string)
}

// NewEntry builds an entry, truncating action and details to their maximum length.
func NewEntry(at time.Time, action string, target *Target, details string) Entry {
	e := Entry{
		Time:    at.UTC(),
		Action:  truncate(action, maxAction),
		Details: truncate(details, maxDetails),
	}
	if target != nil {
		e.TargetType, e.TargetID = target.Type, target.ID
	}
	return e
}

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// Nop discards every activity.
type Nop struct{}

func (Nop) Log(string, *Target, string) {}

// Zerolog writes activities as info messages.
type Zerolog struct{ log zerolog.Logger }

// NewZerolog returns an activity logger on top of log.
func NewZerolog(log zerolog.Logger) *Zerolog { return &Zerolog{log: log} }

func (z *Zerolog) Log(action string, target *Target, details string) {
	e := NewEntry(time.Now(), action, target, details)
	ev := z.log.Info().Str("details", e.Details)
	if target != nil {
		ev = ev.Str("target_type", e.TargetType).Str("target_id", e.TargetID)
	}
	ev.Msg(e.Action)
}

// File appends activities to a JSONL file.
type File struct {
	mu   sync.Mutex
	path string
	log  zerolog.Logger
	now  func() time.Time
}

// NewFile returns an activity logger appending to path. Failures are
// reported on log.
func NewFile(path string, log zerolog.Logger) *File {
	return &File{path: path, log: log, now: time.Now}
}

func (f *File) Log(action string, target *Target, details string) {
	e := NewEntry(f.now(), action, target, details)
	if err := f.append(e); err != nil {
		f.log.Warn().Err(err).Str("action", e.Action).Msg("cannot record activity")
	}
}

func (f *File) append(e Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fd, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	line, err := json.Marshal(e)
	if err != nil {
		fd.Close()
		return err
	}
	line = append(line, '\n')
	if _, err := fd.Write(line); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

// Read decodes activities from a JSONL stream, in file order.
func Read(r io.Reader) ([]Entry, error) {
	var entries []Entry
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for s.Scan() {
		n++
		if len(s.Bytes()) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(s.Bytes(), &e); err != nil {
			return entries, fmt.Errorf("invalid activity at line %d: %w", n, err)
		}
		entries = append(entries, e)
	}
	return entries, s.Err()
}

// Recent returns at most limit entries of the file at path, most recent
// first. A missing file has no entries. limit <= 0 means all.
func Recent(path string, limit int) ([]Entry, error) {
	fd, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	entries, err := Read(fd)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(entries, func(a, b Entry) int { return b.Time.Compare(a.Time) })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
