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

// Package ast holds the passive record types that reproduce the parsed
// grammar productions of the Rift language (the syntax tree, "ST" in
// spec terms). Nodes are read-only from the perspective of the
// resolver and elaborator: nothing outside this package constructs or
// mutates them once the external parser has produced a *File.
package ast

import "github.com/rift-lang/riftc/diag"

// Node is implemented by every syntax tree node.
type Node interface {
	Pos() diag.Position
	isNode()
}

// at is embedded by every concrete node to satisfy the position half of
// Node without repeating the boilerplate accessor on every type.
type at struct {
	Position diag.Position
}

func (a at) Pos() diag.Position { return a.Position }

// Identifier is a single lexical name.
type Identifier struct {
	at
	Value string
}

func (*Identifier) isNode() {}

// ScopedName is a «A::B::C» qualified reference, optionally followed by
// a generic argument list, e.g. «A::B<i32, 4>».
type ScopedName struct {
	at
	Qualifier *ScopedName // non-nil for the "B" and "C" parts of "A::B::C"
	Name      *Identifier
	Arguments []Node // generic arguments (TypeRef or constant Node), nil if none given
}

func (*ScopedName) isNode() {}
