// SPDX-License-Identifier: MPL-2.0

// Package readme selects the README used as the package long description.
package readme

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	ContentTypeRST      = "text/x-rst"
	ContentTypeMarkdown = "text/markdown"
	ContentTypePlain    = "text/plain"
)

// Candidates lists the README file names tried, in order.
var Candidates = []string{"README.md", "README.rst", "README.txt", "README"}

// LongDescription is the selected long description and its content type.
type LongDescription struct {
	Text        string `json:"text"`
	ContentType string `json:"content_type"`
	// File is the path of the README that was read; empty when the
	// metadata description was used instead.
	File string `json:"file,omitempty"`
}

// ContentTypeFor maps a file name to its long-description content type.
func ContentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".rst":
		return ContentTypeRST
	case ".md":
		return ContentTypeMarkdown
	default:
		return ContentTypePlain
	}
}

// Select returns the first readable README candidate under root. If none can
// be read, fallback is used as plain text.
func Select(root, fallback string) LongDescription {
	for _, name := range Candidates {
		path := filepath.Join(root, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return LongDescription{
			Text:        string(data),
			ContentType: ContentTypeFor(name),
			File:        path,
		}
	}
	return LongDescription{Text: fallback, ContentType: ContentTypePlain}
}

// Render formats desc for terminal preview. Markdown goes through glamour
// with the given style; other content types are returned as-is.
func Render(desc LongDescription, style string) (string, error) {
	if desc.ContentType != ContentTypeMarkdown {
		return desc.Text, nil
	}
	return glamour.Render(desc.Text, style)
}
