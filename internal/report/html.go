package report

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// ToHTML converts a Markdown report into an HTML fragment.
func ToHTML(md []byte) ([]byte, error) {
	var buf bytes.Buffer

	if err := markdown.Convert(md, &buf); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	return buf.Bytes(), nil
}
