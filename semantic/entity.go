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

// Package semantic holds the entity graph described in spec §3: Type,
// Value, Alias and Namespace and their subvariants. Entities are
// ordinary Go values linked by pointers; the package has no separate
// arena type holding them.
package semantic

import "github.com/rift-lang/riftc/lang/ast"

// Entity is any first-class semantic object: a type, a value, an
// alias, or a namespace (see GLOSSARY).
type Entity interface {
	isEntity()
	EntityName() string
}

// Named gives an entity a fixed, immutable name. Embed it to satisfy
// the Name-bearing half of Entity.
type Named string

func (n Named) EntityName() string { return string(n) }

// Documentation is the set of doc-comment lines attached to a
// declaration, carried through read-only (SPEC_FULL.md §3.6).
type Documentation []string

// Annotation mirrors ast.Annotation once argument expressions have
// been resolved to constants where applicable.
type Annotation struct {
	Name      string
	Arguments []Expression
}

// Annotations is the set of annotations applied to an entity.
type Annotations []Annotation

// Get finds the annotation with the given name, or returns ok=false.
func (a Annotations) Get(name string) (Annotation, bool) {
	for _, ann := range a {
		if ann.Name == name {
			return ann, true
		}
	}
	return Annotation{}, false
}

// ASTBacked is implemented by entities that retain a pointer to the
// syntax node they were elaborated from, used to report a source
// position for a diagnostic rooted at the entity itself rather than a
// reference to it.
type ASTBacked interface {
	ASTNode() ast.Node
}

// Type is any object that can act as a type (spec §3.2's tagged
// variant). Types are compared structurally up to alias resolution
// (see Equal).
type Type interface {
	Entity
	isType()
}

// Expression is anything that can appear as a sub-expression result —
// concretely, *Value (spec's elaborator unit of result).
type Expression interface {
	Entity
	isExpression()
	ExpressionType() Type
}

// Owner is implemented by scope-bearing entities: Namespace and
// ClassType. Qualified lookup (spec §4.1) demands the left-hand side
// of a "::" resolve to an Owner.
type Owner interface {
	Entity
	isOwner()
}
