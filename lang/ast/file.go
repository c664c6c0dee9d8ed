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

package ast

// File is the root of the AST tree and constitutes one parsed source
// file. It holds the set of top-level declarations grouped by kind,
// mirroring the grammar's top-level productions.
type File struct {
	at
	Imports     []*Import
	Namespaces  []*NamespaceDecl
	Classes     []*ClassDecl
	Functions   []*FunctionDecl
	Aliases     []*AliasDecl
	Globals     []*FieldDecl
	Definitions []*DefinitionDecl
}

func (*File) isNode() {}

// Annotation is «@name(arguments)».
type Annotation struct {
	at
	Name      *Identifier
	Arguments []Node
}

func (*Annotation) isNode() {}

// Annotations is the set of annotations applied to a declaration.
type Annotations []*Annotation

// Get finds the annotation with the given name, or nil.
func (a Annotations) Get(name string) *Annotation {
	for _, ann := range a {
		if ann.Name != nil && ann.Name.Value == name {
			return ann
		}
	}
	return nil
}

// Docs is the set of doc-comment lines attached to a declaration,
// passed through read-only by the resolver and elaborator (spec
// SPEC_FULL.md §3.6).
type Docs []string

// Import is «import "path"».
type Import struct {
	at
	Annotations Annotations
	Path        *StringLit
}

func (*Import) isNode() {}

// NamespaceDecl is «namespace name { ... }». Re-opening a namespace with
// the same qualified name adds to its existing scope (spec §4.1).
type NamespaceDecl struct {
	at
	Name        *Identifier
	Classes     []*ClassDecl
	Functions   []*FunctionDecl
	Aliases     []*AliasDecl
	Globals     []*FieldDecl
	Definitions []*DefinitionDecl
	Namespaces  []*NamespaceDecl
}

func (*NamespaceDecl) isNode() {}

// DefinitionDecl is «define NAME = expr», a named compile-time constant.
type DefinitionDecl struct {
	at
	Annotations Annotations
	Docs        Docs
	Named       *Identifier
	Value       Node
}

func (*DefinitionDecl) isNode() {}
