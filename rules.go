package tradejournal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultRulesTitle is the title of rules that were never given one.
const DefaultRulesTitle = "Stage Analysis Rules"

// Rules are the trading rules the journal owner commits to, as free markdown.
type Rules struct {
	Title     string
	Content   string
	UpdatedAt time.Time // zero until first saved.
}

// NewRules returns empty rules with the default title.
func NewRules() Rules { return Rules{Title: DefaultRulesTitle} }

// Edit returns the rules with a new content, updated at now.
// An empty title keeps the current one.
func (r Rules) Edit(title, content string, now time.Time) Rules {
	if title = strings.TrimSpace(title); title != "" {
		r.Title = title
	}
	if r.Title == "" {
		r.Title = DefaultRulesTitle
	}
	r.Content = content
	r.UpdatedAt = now.UTC().Truncate(time.Second)
	return r
}

// rulesHeader is the yaml front matter of a rules file.
type rulesHeader struct {
	Title   string    `yaml:"title"`
	Updated time.Time `yaml:"updated,omitempty"`
}

const frontMatter = "---\n"

// DecodeRules reads rules as markdown with a yaml front matter holding the
// title and update time. Markdown without front matter is all content.
func DecodeRules(r io.Reader) (Rules, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Rules{}, err
	}
	rules := NewRules()
	text := strings.ReplaceAll(string(b), "\r\n", "\n")

	rest, ok := strings.CutPrefix(text, frontMatter)
	if !ok {
		rules.Content = text
		return rules, nil
	}
	head, body, ok := strings.Cut(rest, "\n"+frontMatter)
	if !ok {
		return Rules{}, errors.New("unterminated rules front matter")
	}
	var h rulesHeader
	if err := yaml.Unmarshal([]byte(head), &h); err != nil {
		return Rules{}, fmt.Errorf("invalid rules front matter: %w", err)
	}
	if h.Title != "" {
		rules.Title = h.Title
	}
	rules.UpdatedAt = h.Updated
	rules.Content = strings.TrimPrefix(body, "\n")
	return rules, nil
}

// EncodeRules writes rules in the format read by DecodeRules.
func EncodeRules(w io.Writer, r Rules) error {
	head, err := yaml.Marshal(rulesHeader{Title: r.Title, Updated: r.UpdatedAt})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s%s%s\n%s", frontMatter, head, frontMatter, r.Content)
	return err
}

// RulesStore loads and saves the trading rules.
type RulesStore interface {
	Rules(ctx context.Context) (Rules, error)
	SaveRules(ctx context.Context, r Rules) error
}

// RulesFile is a RulesStore on a markdown file path. A missing file holds
// NewRules().
type RulesFile string

func (f RulesFile) Rules(context.Context) (Rules, error) {
	fd, err := os.Open(string(f))
	if errors.Is(err, fs.ErrNotExist) {
		return NewRules(), nil
	}
	if err != nil {
		return Rules{}, fmt.Errorf("cannot open rules %q: %w", string(f), err)
	}
	defer fd.Close()
	r, err := DecodeRules(fd)
	if err != nil {
		return Rules{}, fmt.Errorf("cannot read rules %q: %w", string(f), err)
	}
	return r, nil
}

func (f RulesFile) SaveRules(_ context.Context, r Rules) error {
	return WriteFileAtomic(string(f), func(w io.Writer) error { return EncodeRules(w, r) })
}
