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

// Package scope implements the ordered tree of lexical scopes described
// in spec §3.1. A Scope owns named bindings to entities (types,
// values, aliases, namespaces — the semantic package's concern, kept
// opaque here as interface{} to avoid an import cycle) and an
// optional owner entity (the function, class, namespace or block the
// scope belongs to).
//
// Scopes do not own entities whose lifetime exceeds the scope itself
// (generic instantiations live in the root scope, see genengine); a
// Scope only owns its child Scopes and its own bindings slice.
package scope

import "golang.org/x/text/unicode/norm"

// normalize puts name into Unicode Normalization Form C before it is
// used as a map key, so two source identifiers that a text editor or
// a different OS input method encoded with distinct combining-
// character sequences (e.g. "é" as one codepoint vs. "e"+combining
// acute) still collide on lookup the way a reader would expect them
// to.
func normalize(name string) string {
	return norm.NFC.String(name)
}

// Binding is one name -> entity association recorded in a Scope, in
// the order it was declared.
type Binding struct {
	Name   string
	Entity interface{}
}

// Scope is one node of the scope tree (spec §3.1).
type Scope struct {
	parent   *Scope // non-owning back-reference, nil for the root
	children []*Scope
	bindings []Binding
	index    map[string]int // name -> index into bindings, for the common single-binding case
	owner    interface{}    // the function/class/namespace/block entity this scope belongs to
}

// NewRoot creates the single root scope of a compilation unit group
// (spec §3.1's "exactly one root scope" invariant). owner is typically
// the module's top-level Namespace entity.
func NewRoot(owner interface{}) *Scope {
	return &Scope{owner: owner, index: map[string]int{}}
}

// NewChild creates a new scope nested inside s, owned by owner (nil
// for a plain lexical block). The returned scope is appended to s's
// owned children.
func (s *Scope) NewChild(owner interface{}) *Scope {
	child := &Scope{parent: s, owner: owner, index: map[string]int{}}
	s.children = append(s.children, child)
	return child
}

// Parent returns the enclosing scope, or nil for the root.
func (s *Scope) Parent() *Scope { return s.parent }

// Children returns the scopes owned directly by s, in creation order.
func (s *Scope) Children() []*Scope { return s.children }

// Owner returns the entity this scope belongs to.
func (s *Scope) Owner() interface{} { return s.owner }

// Declare inserts a new binding in this scope. It reports false if the
// name is already bound *in this scope* — shadowing a name bound in an
// ancestor scope is permitted, but redeclaring within the same scope
// is not (spec §3.1).
func (s *Scope) Declare(name string, entity interface{}) bool {
	name = normalize(name)
	if _, exists := s.index[name]; exists {
		return false
	}
	s.index[name] = len(s.bindings)
	s.bindings = append(s.bindings, Binding{Name: name, Entity: entity})
	return true
}

// DeclaredHere reports whether name is bound directly in s, without
// consulting ancestors.
func (s *Scope) DeclaredHere(name string) (interface{}, bool) {
	if i, ok := s.index[normalize(name)]; ok {
		return s.bindings[i].Entity, true
	}
	return nil, false
}

// Lookup walks from s to the root, returning the first binding found
// for name and the scope it was found in. This implements spec
// §4.1's unqualified-lookup algorithm: "child→parent until a match or
// root".
func (s *Scope) Lookup(name string) (interface{}, *Scope, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if e, ok := cur.DeclaredHere(name); ok {
			return e, cur, true
		}
	}
	return nil, nil, false
}

// Bindings returns the bindings declared directly in s, in declaration
// order.
func (s *Scope) Bindings() []Binding {
	return s.bindings
}

// Depth returns the number of ancestors between s and the root
// (0 for the root itself). Used by destructor-unwind bookkeeping in
// the elaborator (spec §4.4).
func (s *Scope) Depth() int {
	d := 0
	for cur := s.parent; cur != nil; cur = cur.parent {
		d++
	}
	return d
}
