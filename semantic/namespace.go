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

package semantic

import (
	"github.com/rift-lang/riftc/lang/ast"
	"github.com/rift-lang/riftc/scope"
)

// Namespace is a named scope owning its own set of bindings (spec
// §3.2's Namespace entity, "a named scope that owns bindings and can
// be nested"). The root namespace of a compilation unit has AST == nil
// and Named == "".
type Namespace struct {
	AST     *ast.NamespaceDecl
	Named   string
	Parent  *Namespace
	Scope   *scope.Scope
}

func (*Namespace) isEntity()    {}
func (*Namespace) isOwner()     {}
func (n *Namespace) EntityName() string { return n.Named }

func (n *Namespace) ASTNode() ast.Node {
	if n.AST == nil {
		return nil
	}
	return n.AST
}

// NewRootNamespace creates the translation unit's outermost namespace.
func NewRootNamespace() *Namespace {
	ns := &Namespace{Named: ""}
	ns.Scope = scope.NewRoot(ns)
	return ns
}

// NewChild declares and returns a nested namespace bound in n's scope.
func (n *Namespace) NewChild(ast *ast.NamespaceDecl, name string) *Namespace {
	child := &Namespace{AST: ast, Named: name, Parent: n}
	child.Scope = n.Scope.NewChild(child)
	n.Scope.Declare(name, child)
	return child
}
