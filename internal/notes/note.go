package notes

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/adrg/frontmatter"
)

// Extension is the file extension of Markdown notes.
const Extension = ".md"

// Note is one Markdown file.
type Note struct {
	Path string
	Text string
	Meta Meta

	// MetaErr is set, wrapping ErrFrontMatter, when a leading --- block
	// could not be decoded. Meta is then empty and Text is still usable.
	MetaErr error
}

// Meta is the subset of front matter the extractor cares about.
type Meta struct {
	Title string  `yaml:"title"`
	Tags  TagList `yaml:"tags"`
}

// TagList decodes front matter tags written either as a YAML list or as a
// single comma- or space-separated string.
type TagList []string

// UnmarshalYAML implements the yaml unmarshaler used by the front matter decoder.
func (t *TagList) UnmarshalYAML(unmarshal func(any) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*t = list
		return nil
	}

	var single string
	if err := unmarshal(&single); err != nil {
		return err
	}
	*t = strings.FieldsFunc(single, func(r rune) bool {
		return r == ',' || r == ' '
	})
	return nil
}

var inlineTag = regexp.MustCompile(`(?:^|\s)#([\p{L}\p{N}_/-]+)`)

// Tags returns the note's front matter tags followed by the inline #tags in
// its body, without the leading '#' and without duplicates.
func (n *Note) Tags() []string {
	var tags []string
	add := func(tag string) {
		tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
		if tag != "" && !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}

	for _, tag := range n.Meta.Tags {
		add(tag)
	}
	for _, m := range inlineTag.FindAllStringSubmatch(n.Text, -1) {
		add(m[1])
	}
	return tags
}

// HasAnyTag reports whether the note carries one of the given tags. Tags are
// compared case-insensitively, with or without a leading '#'. An empty filter
// matches every note.
func (n *Note) HasAnyTag(filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	tags := n.Tags()
	for _, want := range filter {
		want = strings.TrimPrefix(want, "#")
		for _, tag := range tags {
			if strings.EqualFold(tag, want) {
				return true
			}
		}
	}
	return false
}

// Parse builds a Note from raw text. Front matter that fails to decode is
// reported in Note.MetaErr and never fails the note.
func Parse(path string, text []byte) *Note {
	note := &Note{
		Path: path,
		Text: string(text),
	}

	var meta Meta
	if _, err := frontmatter.Parse(bytes.NewReader(text), &meta); err != nil {
		note.MetaErr = fmt.Errorf("%w: %s: %w", ErrFrontMatter, path, err)
		return note
	}
	note.Meta = meta
	return note
}

// Load reads the note at path.
func Load(path string) (*Note, error) {
	if !IsMarkdown(path) {
		return nil, fmt.Errorf("%w: %s", ErrNotMarkdown, path)
	}

	text, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, path)
		}
		return nil, fmt.Errorf("failed to read note %s: %w", path, err)
	}

	return Parse(path, text), nil
}

// IsMarkdown reports whether path has the Markdown extension.
func IsMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}

// Walk returns the Markdown notes under root in lexical order. Hidden
// directories such as .obsidian and .git are skipped. A file root is returned
// as is when it is a Markdown note.
func Walk(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, root)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}

	if !info.IsDir() {
		if !IsMarkdown(root) {
			return nil, fmt.Errorf("%w: %s", ErrNotMarkdown, root)
		}
		return []string{root}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsMarkdown(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	slices.Sort(paths)
	return paths, nil
}
