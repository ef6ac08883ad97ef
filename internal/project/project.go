// SPDX-License-Identifier: MPL-2.0

// Package project ties metadata, requirements and README selection together
// and drives the stub-generate, discover, assemble, clean-up build flow.
package project

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/repoutils/repoutils/internal/initstub"
	"github.com/repoutils/repoutils/internal/issue"
	"github.com/repoutils/repoutils/internal/meta"
	"github.com/repoutils/repoutils/internal/packaging"
	"github.com/repoutils/repoutils/internal/readme"
	"github.com/repoutils/repoutils/internal/requirements"

	"github.com/hashicorp/go-multierror"
)

type (
	// Options control how a project is opened.
	Options struct {
		// MetaPath points at an explicit metadata file.
		MetaPath string
		// Settings are forwarded to packaging.Assemble.
		Settings packaging.Settings
	}

	// Project is an opened repository.
	Project struct {
		Root            string
		Meta            *meta.Meta
		Requirements    *requirements.Set
		LongDescription readme.LongDescription
		Settings        packaging.Settings
	}

	// Prepared holds an assembled configuration while its stubs exist on disk.
	Prepared struct {
		Config *packaging.Config
		Stubs  *initstub.Stubs
	}
)

// Open loads the metadata, requirement lists and README of the repository
// at root.
func Open(ctx context.Context, root string, opts Options) (*Project, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, issue.WrapWithContext(err, "resolve repository root", root)
	}

	m, err := meta.Load(abs, opts.MetaPath)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "loaded metadata", "file", m.File, "name", m.Name, "version", m.Version)

	reqs, err := requirements.Load(abs)
	if err != nil {
		ec := issue.NewErrorContext().
			WithOperation("load requirements").
			WithResource(filepath.Join(abs, requirements.BaseFile)).
			Wrap(err)
		if errors.Is(err, fs.ErrNotExist) {
			ec = ec.WithIssue(issue.RequirementsNotFoundId).
				WithSuggestion("Create requirements.txt, even if it is empty")
		}
		return nil, ec.BuildError()
	}
	slog.DebugContext(ctx, "loaded requirements", "install", len(reqs.Install), "extras", reqs.ExtraNames())

	desc := readme.Select(abs, m.Description)
	if desc.File == "" {
		slog.DebugContext(ctx, "no README found, using the metadata description")
	}

	return &Project{
		Root:            abs,
		Meta:            m,
		Requirements:    reqs,
		LongDescription: desc,
		Settings:        opts.Settings,
	}, nil
}

// Assemble builds the configuration from packages already on disk, without
// generating stubs.
func (p *Project) Assemble() (*packaging.Config, error) {
	packages, err := packaging.FindPackages(p.Root, packaging.DefaultExcludes...)
	if err != nil {
		return nil, issue.WrapWithContext(err, "discover packages", p.Root)
	}
	return packaging.Assemble(p.input(packages)), nil
}

// Prepare generates __init__.py stubs, discovers packages and assembles the
// configuration. The caller must Close the result.
func (p *Project) Prepare(ctx context.Context) (*Prepared, error) {
	stubs, err := initstub.Generate(p.Root, p.Meta.Path)
	if err != nil {
		_ = (&Prepared{Stubs: stubs}).Close()
		return nil, issue.WrapWithContext(err, "generate __init__.py stubs", p.Meta.PackageDir(p.Root))
	}
	slog.DebugContext(ctx, "generated init stubs", "count", stubs.Len())

	cfg, err := p.Assemble()
	if err != nil {
		_ = (&Prepared{Stubs: stubs}).Close()
		return nil, err
	}
	return &Prepared{Config: cfg, Stubs: stubs}, nil
}

func (p *Project) input(packages []string) packaging.Input {
	return packaging.Input{
		Meta:            p.Meta,
		Requirements:    p.Requirements,
		LongDescription: p.LongDescription,
		Packages:        packages,
		Settings:        p.Settings,
	}
}

// PyprojectPath is where the generated pyproject.toml is written.
func (p *Project) PyprojectPath() string {
	return filepath.Join(p.Root, packaging.PyprojectFile)
}

// Close removes the generated stubs. Failures are logged and returned but
// are not meant to fail the surrounding command.
func (pr *Prepared) Close() error {
	err := pr.Stubs.Cleanup()
	if err != nil {
		var merr *multierror.Error
		if errors.As(err, &merr) {
			for _, e := range merr.Errors {
				slog.Warn("failed to remove init stub", "error", e)
			}
		} else {
			slog.Warn("failed to remove init stubs", "error", err)
		}
	}
	return err
}
