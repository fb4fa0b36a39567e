package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// HeadingsFromMarkdown returns the text of every top-level heading of the
// given level in document order. Level 0 means 1.
func HeadingsFromMarkdown(src []byte, level int) []string {
	if level <= 0 {
		level = 1
	}
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var out []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != level {
			continue
		}
		title := strings.TrimSpace(string(h.Text(src)))
		if title != "" {
			out = append(out, title)
		}
	}
	return out
}

// LoadMarkdown reads the markdown file at path and returns its headings of
// the given level.
func LoadMarkdown(path string, level int) ([]string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: markdown: %w", err)
	}
	headings := HeadingsFromMarkdown(src, level)
	if len(headings) == 0 {
		return nil, fmt.Errorf("config: markdown %s: no level-%d headings", path, max(level, 1))
	}
	return headings, nil
}
