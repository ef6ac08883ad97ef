// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	t.Parallel()

	ids := []Id{
		MetaNotFoundId,
		MetaInvalidId,
		RequirementsNotFoundId,
		ConfigLoadFailedId,
		ToolNotFoundId,
		UnknownCommandId,
		ReleaseStepFailedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true

		if Get(id) == nil {
			t.Errorf("Get(%d) returned nil, every ID needs a catalog entry", id)
		}
	}

	if MetaNotFoundId != 1 {
		t.Errorf("MetaNotFoundId = %d, want 1", MetaNotFoundId)
	}
}

func TestGet_Unknown(t *testing.T) {
	t.Parallel()

	if Get(Id(9999)) != nil {
		t.Error("Get() should return nil for unknown IDs")
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	entry := Get(MetaNotFoundId)
	if !strings.Contains(string(entry.MarkdownMsg()), "__meta__.toml") {
		t.Errorf("MarkdownMsg() should mention __meta__.toml")
	}

	rendered, err := entry.Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(rendered, "No project metadata found") {
		t.Errorf("Render() missing title, got:\n%s", rendered)
	}
	if !strings.Contains(rendered, "See also") {
		t.Errorf("Render() missing doc links section, got:\n%s", rendered)
	}
}

func TestIssue_DocLinksCloned(t *testing.T) {
	t.Parallel()

	entry := Get(MetaNotFoundId)
	links := entry.DocLinks()
	if len(links) == 0 {
		t.Fatal("expected doc links")
	}
	links[0] = "mutated"
	if entry.DocLinks()[0] == "mutated" {
		t.Error("DocLinks() must return a copy")
	}
}
