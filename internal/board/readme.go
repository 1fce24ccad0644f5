package board

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var markdownParser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

// DisplayName returns the text of the first heading in dir/README.md, or the
// folder name with hyphens as spaces in title case.
func DisplayName(dir string) string {
	if source, err := os.ReadFile(filepath.Join(dir, "README.md")); err == nil {
		if heading := firstHeading(source); heading != "" {
			return heading
		}
	}
	return titleCase(strings.ReplaceAll(filepath.Base(dir), "-", " "))
}

// ReadmeSummary returns the first paragraph of dir/README.md that is not a
// heading, or "".
func ReadmeSummary(dir string) string {
	source, err := os.ReadFile(filepath.Join(dir, "README.md"))
	if err != nil {
		return ""
	}
	doc := markdownParser.Parse(text.NewReader(source))
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		if node.Kind() == ast.KindParagraph {
			return strings.TrimSpace(nodeText(node, source))
		}
	}
	return ""
}

func firstHeading(source []byte) string {
	doc := markdownParser.Parse(text.NewReader(source))
	var heading string
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := node.(*ast.Heading); ok {
			heading = strings.TrimSpace(nodeText(h, source))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return heading
}

// nodeText concatenates the raw text segments beneath node.
func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
