// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package driver implements the compile_unit(paths, options) entry
// spec §6 leaves external to the CORE: parsing source paths, feeding
// them to lang/resolver, and lowering the result against a caller-
// supplied codegen.Builder. Everything here sits outside the CORE's
// own scope (lexing, parsing, file-system access, CLI surface), so
// this package is the first layer a real toolchain adds on top.
package driver

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/rift-lang/riftc/core/codegen"
	"github.com/rift-lang/riftc/diag"
	"github.com/rift-lang/riftc/lang/ast"
	"github.com/rift-lang/riftc/lang/compiler"
	"github.com/rift-lang/riftc/lang/resolver"
)

// Options configures one CompileUnit invocation. Namespace and
// TargetABI are accepted and surfaced to the caller's codegen.Builder
// and logging, not consulted by CompileUnit itself: ABI selection lives
// entirely in which Builder the caller constructs, and namespace
// scoping is a single flat root per spec §4.1. ExtractCalls and
// RemoveDeadCode name two optimization passes spec.md's Non-goals
// exclude ("optimization beyond constant folding") — they are plumbed
// through as reserved flags for a downstream optimizer this module
// does not implement, not silently dropped.
type Options struct {
	Namespace      string
	TargetABI      string
	ExtractCalls   bool
	RemoveDeadCode bool
}

// ParseFunc turns one source path into a parsed *ast.File. The CORE
// does not own a lexer or grammar-driven parser (spec §1: "the CORE
// consumes a token stream and a pre-built concrete-syntax tree") —
// CompileUnit's caller supplies its own front end.
type ParseFunc func(path string) (*ast.File, error)

// Unit is the outcome of one CompileUnit call.
type Unit struct {
	// ID tags this compilation for callers that batch diagnostics
	// across several concurrently-run units.
	ID    uuid.UUID
	Diags *diag.List
	// Resolved is nil only if parsing failed before resolution began.
	Resolved *resolver.Unit
}

// CompileUnit parses paths (independent paths load concurrently via
// errgroup — SPEC_FULL.md §5; elaboration of the resulting unit stays
// single-threaded), resolves them into one flat unit, and, if
// resolution produced no error-level diagnostic, lowers every
// reachable function body into b. Diagnostics from both passes are
// merged and returned sorted by spec §7's contract via Unit.Diags.Entries.
func CompileUnit(ctx context.Context, paths []string, parse ParseFunc, b codegen.Builder, opts Options) (*Unit, error) {
	files := make([]*ast.File, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			f, err := parse(p)
			if err != nil {
				return errors.Wrapf(err, "parsing %s", p)
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	u := resolver.NewUnit()
	u.ResolveFiles(files)

	result := &Unit{ID: uuid.New(), Diags: u.Diags, Resolved: u}
	if u.Diags.HasErrors() {
		return result, nil
	}

	result.Diags.Merge(compiler.Compile(u.Root, b))
	return result, nil
}
