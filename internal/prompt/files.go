package prompt

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
)

type frontMatter struct {
	ID       int    `yaml:"id"`
	Category string `yaml:"category"`
}

// Parse reads a single prompt from markdown with YAML front matter.
// The body becomes the prompt text.
func Parse(data []byte) (Prompt, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return Prompt{}, fmt.Errorf("parsing front-matter: %w", err)
	}
	p := Normalize(Prompt{ID: fm.ID, Text: string(body), Category: fm.Category})
	if err := Validate(p); err != nil {
		return Prompt{}, err
	}
	return p, nil
}

// LoadDir reads every *.md file in dir as a prompt, sorted by ID.
// Duplicate IDs are an error.
func LoadDir(dir string) ([]Prompt, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}

	seen := make(map[int]string)
	var out []Prompt
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		p, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if prev, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("%s: duplicate prompt id %d (also in %s)", filepath.Base(path), p.ID, prev)
		}
		seen[p.ID] = filepath.Base(path)
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Marshal renders a prompt in the format Parse reads.
func Marshal(p Prompt) []byte {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "id: %d\n", p.ID)
	fmt.Fprintf(&b, "category: %s\n", p.Category)
	b.WriteString("---\n\n")
	b.WriteString(p.Text)
	b.WriteString("\n")
	return []byte(b.String())
}

// WriteDir writes each prompt to dir as <id>.md, replacing existing files
// atomically.
func WriteDir(dir string, ps []Prompt) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, p := range ps {
		path := filepath.Join(dir, fmt.Sprintf("%04d.md", p.ID))
		if err := atomicWrite(path, Marshal(p)); err != nil {
			return err
		}
	}
	return nil
}

func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
