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

// Block is a linear sequence of statements, most often the contents of
// a {} pair. Entering one pushes a scope (spec §4.4).
type Block struct {
	at
	Statements []Node
}

func (*Block) isNode() {}

// DeclareLocal is «let name: T = value» or «let name = value» (Type
// nil, inferred from Value).
type DeclareLocal struct {
	at
	Named *Identifier
	Type  TypeRef // nil if the type is to be inferred from Value
	Value Node    // nil for a default-initialized local
}

func (*DeclareLocal) isNode() {}

// ExpressionStatement is an expression evaluated for its side effects.
type ExpressionStatement struct {
	at
	Expression Node
}

func (*ExpressionStatement) isNode() {}

// Branch is «if (cond) {true} else {false}» (spec §4.3.8). False is nil
// if there is no else clause.
type Branch struct {
	at
	Condition Node
	True      *Block
	False     *Block
}

func (*Branch) isNode() {}

// While is «while (cond) { block }».
type While struct {
	at
	Condition Node
	Block     *Block
}

func (*While) isNode() {}

// ForIn is «for (variable in iterable) { block }», lowered over the
// next()-returning-Optional iteration protocol (SPEC_FULL.md §4.5).
type ForIn struct {
	at
	Variable *Identifier
	Iterable Node
	Block    *Block
}

func (*ForIn) isNode() {}

// Return is «return expr» or bare «return».
type Return struct {
	at
	Value Node // nil for a bare return
}

func (*Return) isNode() {}

// Break is «break», targeting the innermost enclosing loop's exit
// block (spec §4.3.8).
type Break struct {
	at
}

func (*Break) isNode() {}

// Assert is a runtime assertion used both to check and to inform the
// elaborator of invariants it can rely on downstream.
type Assert struct {
	at
	Condition Node
	Message   string
}

func (*Assert) isNode() {}
