// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Id identifies a catalog entry.
type Id int

const (
	MetaNotFoundId Id = iota + 1
	MetaInvalidId
	RequirementsNotFoundId
	ConfigLoadFailedId
	ToolNotFoundId
	UnknownCommandId
	ReleaseStepFailedId
)

type (
	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the issue's Markdown for the terminal using a glamour
// style name ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "- " + string(link) + "\n"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	metaNotFoundIssue = &Issue{
		id: MetaNotFoundId,
		mdMsg: `
# No project metadata found!

repoutils reads the package name, version and authorship from a declarative
metadata file. None was found.

## Search locations (in order):
1. ` + "`__meta__.cue`" + ` or ` + "`__meta__.toml`" + ` in the repository root
2. ` + "`<dir>/__meta__.cue`" + ` or ` + "`<dir>/__meta__.toml`" + ` for each top-level directory

## Example ` + "`package_name/__meta__.toml`" + `:
~~~toml
name = "package-name"
version = "0.1.0"
path = "package_name"
author = "Jane Doe"
author_email = "jane@example.com"
description = "Short description"
license = "MIT"
url = "https://example.com/package-name"
~~~`,
		docLinks: []HttpLink{"https://packaging.python.org/guides/single-sourcing-package-version/"},
	}

	metaInvalidIssue = &Issue{
		id: MetaInvalidId,
		mdMsg: `
# Invalid project metadata!

Every metadata file must define ` + "`name`, `version`, `path`, `author`, `author_email`, `description`, `license` and `url`" + `
as non-empty strings. Commands must set exactly one of ` + "`script`" + ` or ` + "`callable`" + `.

## Things you can try:
- Run ` + "`repoutils show`" + ` after each edit to check the metadata
- Use ` + "`module:function`" + ` syntax for callables, e.g. ` + "`package_name.definitions:define`",
	}

	requirementsNotFoundIssue = &Issue{
		id: RequirementsNotFoundId,
		mdMsg: `
# requirements.txt not found!

The base requirement list is mandatory. Optional dependency groups live in
` + "`requirements-<extra>.txt`" + ` files next to it.

## Things you can try:
~~~
$ touch requirements.txt
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the repoutils configuration file.

## Configuration file locations:
- Linux: ~/.config/repoutils/config.cue
- macOS: ~/Library/Application Support/repoutils/config.cue
- Windows: %APPDATA%\repoutils\config.cue
- Repository: ./repoutils.cue (overrides the user file)

## Things you can try:
- Create a default configuration:
~~~
$ repoutils config init
~~~
- Check the configuration syntax`,
	}

	toolNotFoundIssue = &Issue{
		id: ToolNotFoundId,
		mdMsg: `
# Required tool not found!

repoutils shells out to the Python build toolchain and git. It never installs
them on its own.

## Things you can try:
- Install Python 3.6 or greater and make sure ` + "`python3`" + ` is on your PATH
- Point ` + "`REPOUTILS_PYTHON`" + ` at a specific interpreter
- Install the release tooling:
~~~
$ python3 -m pip install build twine
~~~`,
	}

	unknownCommandIssue = &Issue{
		id: UnknownCommandId,
		mdMsg: `
# Unknown command!

The requested command is not declared in the package metadata.

## Things you can try:
- List the available commands:
~~~
$ repoutils commands
~~~
- Declare it under ` + "`commands`" + ` in the metadata file`,
	}

	releaseStepFailedIssue = &Issue{
		id: ReleaseStepFailedId,
		mdMsg: `
# Release step failed!

The upload sequence stops at the first failing step. Steps that already ran
are not rolled back.

## Things you can try:
- Check the output of the failing step above
- Delete a tag that was created before the failure:
~~~
$ git tag -d v<version>
~~~`,
	}

	issues = map[Id]*Issue{
		metaNotFoundIssue.Id():         metaNotFoundIssue,
		metaInvalidIssue.Id():          metaInvalidIssue,
		requirementsNotFoundIssue.Id(): requirementsNotFoundIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		toolNotFoundIssue.Id():         toolNotFoundIssue,
		unknownCommandIssue.Id():       unknownCommandIssue,
		releaseStepFailedIssue.Id():    releaseStepFailedIssue,
	}
)

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
