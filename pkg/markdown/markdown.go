// Package markdown renders model-written explanations as HTML fragments.
package markdown

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	rendererInstance goldmark.Markdown
	rendererOnce     sync.Once
)

func getRenderer() goldmark.Markdown {
	rendererOnce.Do(func() {
		// raw HTML from the model is dropped, goldmark's default
		rendererInstance = goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
		)
	})
	return rendererInstance
}

// ToHTML converts markdown source to an HTML fragment.
func ToHTML(source string) (string, error) {
	if source == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := getRenderer().Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
