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

// Package resolver turns parsed *ast.File values into a fully typed
// semantic tree: it walks scope chains, follows «::» qualifiers,
// drives the generic-instantiation engine on demand, and elaborates
// every expression and statement into its semantic.Expression or
// semantic.Statement form (spec §4.1-§4.4). It never touches the SSA
// builder; that is the compiler package's job, which only ever sees an
// already-resolved tree and performs no further name lookups.
package resolver

import (
	"github.com/rift-lang/riftc/diag"
	"github.com/rift-lang/riftc/lang/ast"
	"github.com/rift-lang/riftc/scope"
	"github.com/rift-lang/riftc/semantic"
)

// Unit holds the state threaded through resolution of one compilation
// unit: the root namespace, the accumulated diagnostics, and the
// pending-bodies worklist that lets declaration and elaboration run as
// two passes (spec §4.1: "names throughout the unit are visible
// regardless of declaration order").
type Unit struct {
	Root  *semantic.Namespace
	Diags *diag.List

	pendingFuncs         []pendingFunc
	pendingGlobals       []pendingGlobal
	pendingFieldDefaults []pendingFieldDefaults
	pendingAliases       []pendingAlias
}

type pendingFunc struct {
	fn    *semantic.Function
	scope *scope.Scope
}

type pendingGlobal struct {
	global *semantic.Global
	ast    *ast.FieldDecl
	scope  *scope.Scope
}

// NewUnit creates an empty Unit whose root scope is seeded with the
// builtin scalar types (spec §3.2's Builtins, visible without
// qualification from every scope).
func NewUnit() *Unit {
	root := semantic.NewRootNamespace()
	for _, t := range semantic.Builtins {
		root.Scope.Declare(semantic.TypeName(t), t)
	}
	return &Unit{Root: root, Diags: &diag.List{}}
}

// ResolveFiles resolves every declaration across files into u.Root,
// then elaborates all pending function bodies and global initializers.
// Files share one flat root scope: a declaration in one file is
// visible from another (spec §4.1).
func (u *Unit) ResolveFiles(files []*ast.File) {
	u.Diags.Collect(func() {
		for _, f := range files {
			u.declareFile(f, u.Root)
		}
		u.elaboratePending()
	})
}

func (u *Unit) declareFile(f *ast.File, ns *semantic.Namespace) {
	for _, nd := range f.Namespaces {
		u.declareNamespace(nd, ns)
	}
	for _, cd := range f.Classes {
		u.declareClass(cd, ns)
	}
	for _, ad := range f.Aliases {
		u.declareAlias(ad, ns)
	}
	for _, gd := range f.Globals {
		u.declareGlobal(gd, ns)
	}
	for _, fd := range f.Functions {
		u.declareFunction(fd, ns.Scope, nil)
	}
}

func (u *Unit) declareNamespace(nd *ast.NamespaceDecl, parent *semantic.Namespace) {
	var child *semantic.Namespace
	if existing, ok := parent.Scope.DeclaredHere(nd.Name.Value); ok {
		if ns, ok := existing.(*semantic.Namespace); ok {
			child = ns
		}
	}
	if child == nil {
		child = parent.NewChild(nd, nd.Name.Value)
	}
	for _, cd := range nd.Classes {
		u.declareClass(cd, child)
	}
	for _, ad := range nd.Aliases {
		u.declareAlias(ad, child)
	}
	for _, gd := range nd.Globals {
		u.declareGlobal(gd, child)
	}
	for _, fd := range nd.Functions {
		u.declareFunction(fd, child.Scope, nil)
	}
	for _, sub := range nd.Namespaces {
		u.declareNamespace(sub, child)
	}
}

func (u *Unit) declareGlobal(gd *ast.FieldDecl, ns *semantic.Namespace) {
	g := &semantic.Global{AST: gd, Named: gd.Named.Value, Annotations: u.resolveAnnotations(gd.Annotations, ns.Scope)}
	if gd.Type != nil {
		g.Type = u.resolveType(gd.Type, ns.Scope)
	}
	if !ns.Scope.Declare(g.Named, g) {
		u.Diags.Add(diag.RedeclaredName, gd.Pos(),
			"global '%s' already declared in this scope", g.Named)
		return
	}
	if g.Type == nil && gd.Default == nil {
		u.Diags.Add(diag.ExpectedType, gd.Pos(),
			"global '%s' needs either a type or an initializer", g.Named)
		g.Type = semantic.ErrorType
	}
	u.pendingGlobals = append(u.pendingGlobals, pendingGlobal{global: g, ast: gd, scope: ns.Scope})
}

// elaboratePending drains each worklist by index, not by range, because
// resolving one pending body can trigger a generic instantiation (spec
// §4.2) whose elaborate callback appends fresh entries — declareMethod
// queues a newly-instantiated generic class's own non-generic methods
// onto pendingFuncs mid-drain. An index loop picks those up in the same
// pass; a range loop would silently skip them.
func (u *Unit) elaboratePending() {
	for i := 0; i < len(u.pendingAliases); i++ {
		pa := u.pendingAliases[i]
		pa.alias.Target = u.resolveAliasTarget(pa.ast, pa.scope)
	}
	for i := 0; i < len(u.pendingFieldDefaults); i++ {
		pfd := u.pendingFieldDefaults[i]
		for j, fd := range pfd.ast.Fields {
			if fd.Default == nil {
				continue
			}
			f := pfd.class.Fields[j]
			f.Default = u.expr(fd.Default, pfd.scope, nil)
			if f.Type == nil {
				f.Type = f.Default.ExpressionType()
			}
		}
	}
	for i := 0; i < len(u.pendingGlobals); i++ {
		pg := u.pendingGlobals[i]
		if pg.ast.Default != nil {
			pg.global.Init = u.expr(pg.ast.Default, pg.scope, nil)
			if pg.global.Type == nil {
				pg.global.Type = pg.global.Init.ExpressionType()
			}
		}
	}
	for i := 0; i < len(u.pendingFuncs); i++ {
		pf := u.pendingFuncs[i]
		u.elaborateFunctionBody(pf.fn, pf.scope)
	}
}
