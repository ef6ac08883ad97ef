// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"io"

	"github.com/repoutils/repoutils/internal/bootstrap"
	"github.com/repoutils/repoutils/internal/hooks"
	"github.com/repoutils/repoutils/internal/issue"
	"github.com/repoutils/repoutils/internal/meta"
	"github.com/repoutils/repoutils/internal/toolchain"
)

// issueFor returns the catalog entry that explains err, if any. Entries
// linked where the error was built win over the sentinel fallbacks.
func issueFor(err error) (issue.Id, bool) {
	if id, ok := issue.IssueOf(err); ok {
		return id, true
	}
	switch {
	case errors.Is(err, meta.ErrMetaNotFound):
		return issue.MetaNotFoundId, true
	case errors.Is(err, meta.ErrInvalidMeta), errors.Is(err, meta.ErrUnsupportedFormat):
		return issue.MetaInvalidId, true
	case errors.Is(err, toolchain.ErrToolNotFound):
		return issue.ToolNotFoundId, true
	case errors.Is(err, bootstrap.ErrUnknownCommand):
		return issue.UnknownCommandId, true
	}
	var stepErr *hooks.StepFailedError
	if errors.As(err, &stepErr) && stepErr.Hook == "upload" {
		return issue.ReleaseStepFailedId, true
	}
	return 0, false
}

// renderIssue writes the long-form explanation for err to w when one exists.
func renderIssue(w io.Writer, err error, style string) {
	id, ok := issueFor(err)
	if !ok {
		return
	}
	rendered, renderErr := issue.Get(id).Render(style)
	if renderErr != nil {
		return
	}
	fprintf(w, "%s", rendered)
}
