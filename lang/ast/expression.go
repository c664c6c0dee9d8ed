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

// Unary is a prefix operator expression: «!x», «~x», «-x», «&x», «*x».
type Unary struct {
	at
	Operator string
	Operand  Node
}

func (*Unary) isNode() {}

// Binary is «lhs OP rhs» for any of the arithmetic, comparison, bit,
// or short-circuit logical operators (spec §4.3.3-4.3.4).
type Binary struct {
	at
	Operator string
	LHS, RHS Node
}

func (*Binary) isNode() {}

// Assign is «target OP= value» including plain «target = value»
// (Operator == "=").
type Assign struct {
	at
	Operator string
	Target   Node
	Value    Node
}

func (*Assign) isNode() {}

// Call is «callee(arguments...)».
type Call struct {
	at
	Callee    Node
	Arguments []Node
}

func (*Call) isNode() {}

// Index is «object[index]».
type Index struct {
	at
	Object Node
	Index  Node
}

func (*Index) isNode() {}

// Member is «object.name» (Arrow == false) or «object->name» (Arrow ==
// true), see spec §4.3.7 and SPEC_FULL.md §4.6 for the auto-deref rule.
type Member struct {
	at
	Object Node
	Name   *Identifier
	Arrow  bool
}

func (*Member) isNode() {}

// Cast is «x as T», routed to the implicit conversion table or a user
// «cast T» method (spec §4.3.2, §4.3.5).
type Cast struct {
	at
	Object Node
	Type   TypeRef
}

func (*Cast) isNode() {}

// Length is «len(x)» / «x.length», kept as a distinct node because its
// result type is resolved independent of the object's declared type.
type Length struct {
	at
	Object Node
}

func (*Length) isNode() {}

// ClassInitializer is «T{f1: v1, f2: v2}» (spec §4.3.9).
type ClassInitializer struct {
	at
	Type   TypeRef
	Fields []*FieldInit
}

func (*ClassInitializer) isNode() {}

// FieldInit is one «name: value» entry of a ClassInitializer.
type FieldInit struct {
	at
	Name  *Identifier
	Value Node
}

func (*FieldInit) isNode() {}

// AsmOperand is one constrained operand of an InlineAsm node.
type AsmOperand struct {
	at
	Constraint *StringLit
	Value      Node
}

func (*AsmOperand) isNode() {}

// InlineAsm is «asm("template" : outputs : inputs : clobbers)» (spec
// §4.3.10). The elaborator passes this through to the SSA builder
// untouched; template validity is the backend's responsibility.
type InlineAsm struct {
	at
	Template *StringLit
	Outputs  []*AsmOperand
	Inputs   []*AsmOperand
	Clobbers []*StringLit
}

func (*InlineAsm) isNode() {}
