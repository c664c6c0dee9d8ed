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

import "github.com/rift-lang/riftc/lang/ast"

// Local is a declared local variable (spec §3.3's Variable subvariant,
// is_alloca == true once lowered). It is itself an Expression so a bare
// reference to it can appear as a sub-expression.
type Local struct {
	AST   ast.Node
	Named string
	Type  Type
	Init  Expression // nil if uninitialized
}

func (*Local) isEntity()              {}
func (*Local) isExpression()          {}
func (l *Local) EntityName() string   { return l.Named }
func (l *Local) ExpressionType() Type { return l.Type }

// Global is a package-scope variable declared outside any function
// (spec §3.2's Namespace-owned bindings).
type Global struct {
	AST         ast.Node
	Annotations Annotations
	Named       string
	Type        Type
	Init        Expression
}

func (*Global) isEntity()              {}
func (*Global) isExpression()          {}
func (g *Global) EntityName() string   { return g.Named }
func (g *Global) ExpressionType() Type { return g.Type }

// Constant is a folded compile-time literal (spec §3.3's Constant
// subvariant).
type Constant struct {
	Value ConstValue
}

func (*Constant) isEntity()              {}
func (*Constant) isExpression()          {}
func (c *Constant) EntityName() string   { return c.Value.String() }
func (c *Constant) ExpressionType() Type { return c.Value.Type }

// LocalRef, ParameterRef and GlobalRef wrap a reference to a previously
// declared binding so the tree distinguishes "declares x" from
// "reads x" while keeping both Expression-typed.
type LocalRef struct{ Local *Local }

func (*LocalRef) isEntity()              {}
func (*LocalRef) isExpression()          {}
func (r *LocalRef) EntityName() string   { return r.Local.Named }
func (r *LocalRef) ExpressionType() Type { return r.Local.Type }

type ParameterRef struct{ Parameter *Parameter }

func (*ParameterRef) isEntity()              {}
func (*ParameterRef) isExpression()          {}
func (r *ParameterRef) EntityName() string   { return r.Parameter.Named }
func (r *ParameterRef) ExpressionType() Type { return r.Parameter.Type }

type GlobalRef struct{ Global *Global }

func (*GlobalRef) isEntity()              {}
func (*GlobalRef) isExpression()          {}
func (r *GlobalRef) EntityName() string   { return r.Global.Named }
func (r *GlobalRef) ExpressionType() Type { return r.Global.Type }

// FieldRef is a resolved «object.name» / «object->name» member access
// (spec §4.3.7), after the SPEC_FULL.md §4.6 auto-deref rule has
// already been applied to Object.
type FieldRef struct {
	Object Expression
	Field  *Field
}

func (*FieldRef) isEntity()              {}
func (*FieldRef) isExpression()          {}
func (r *FieldRef) EntityName() string   { return r.Field.Named }
func (r *FieldRef) ExpressionType() Type { return r.Field.Type }

// MethodRef is a resolved reference to a method about to be called; it
// carries the receiver so the compiler can bind the implicit
// calling_variable (spec §3.3) when it lowers the Call that wraps this.
type MethodRef struct {
	Object Expression
	Method *Function
}

func (*MethodRef) isEntity()            {}
func (*MethodRef) isExpression()        {}
func (r *MethodRef) EntityName() string { return r.Method.Named }
func (r *MethodRef) ExpressionType() Type {
	return r.Method.Signature
}

// Call is a resolved function, method or operator-overload invocation
// (spec §4.3.6). ResolvedFunction is always concrete: overload
// resolution and generic instantiation have already happened.
type Call struct {
	Callee           Expression // a Function/MethodRef identity; informational
	Arguments        []Expression
	ResolvedFunction *Function
}

func (*Call) isEntity()     {}
func (*Call) isExpression() {}
func (c *Call) EntityName() string {
	return c.ResolvedFunction.Named + "(...)"
}
func (c *Call) ExpressionType() Type { return c.ResolvedFunction.Signature.Return }

// BinaryOp is a resolved arithmetic/bit/comparison operator application
// (spec §4.3.3-4.3.4) that did not resolve to an overloaded method Call.
type BinaryOp struct {
	Operator string
	LHS, RHS Expression
	Type     Type
}

func (*BinaryOp) isEntity()              {}
func (*BinaryOp) isExpression()          {}
func (b *BinaryOp) EntityName() string   { return "(" + b.Operator + ")" }
func (b *BinaryOp) ExpressionType() Type { return b.Type }

// ShortCircuit is «lhs && rhs» / «lhs || rhs» (spec §4.3.4), kept
// distinct from BinaryOp because it lowers to a branch and phi join
// rather than a single SSA instruction.
type ShortCircuit struct {
	Operator string // "&&" or "||"
	LHS, RHS Expression
}

func (*ShortCircuit) isEntity()            {}
func (*ShortCircuit) isExpression()        {}
func (s *ShortCircuit) EntityName() string { return "(" + s.Operator + ")" }
func (s *ShortCircuit) ExpressionType() Type { return BoolType }

// UnaryOp is a resolved prefix operator application that did not
// resolve to an overloaded method Call.
type UnaryOp struct {
	Operator string
	Operand  Expression
	Type     Type
}

func (*UnaryOp) isEntity()              {}
func (*UnaryOp) isExpression()          {}
func (u *UnaryOp) EntityName() string   { return "(" + u.Operator + ")" }
func (u *UnaryOp) ExpressionType() Type { return u.Type }

// Cast is a resolved implicit-conversion-table entry or user «cast»
// method invocation (spec §4.3.2). Upcast carries the ancestor index
// path the compiler needs to compute the byte offset (spec §8).
type Cast struct {
	Object     Expression
	Type       Type
	Upcast     bool
	ParentPath []int // indices into each ClassType.Parents, root-to-leaf
	Overload   *Function // non-nil if resolved to a user «cast» method
}

func (*Cast) isEntity()              {}
func (*Cast) isExpression()          {}
func (c *Cast) EntityName() string   { return "cast(" + TypeName(c.Type) + ")" }
func (c *Cast) ExpressionType() Type { return c.Type }

// Index is «object[index]» over a Pointer or Array (spec's element
// access; an overloaded «[]» resolves to a Call instead).
type Index struct {
	Object Expression
	Index  Expression
	Type   Type
}

func (*Index) isEntity()              {}
func (*Index) isExpression()          {}
func (i *Index) EntityName() string   { return "[]" }
func (i *Index) ExpressionType() Type { return i.Type }

// AddressOf is «&x»: x must be addressable (spec §3.3's can_be_taken).
type AddressOf struct {
	Operand Expression
	Type    *PointerType
}

func (*AddressOf) isEntity()              {}
func (*AddressOf) isExpression()          {}
func (a *AddressOf) EntityName() string   { return "&(...)" }
func (a *AddressOf) ExpressionType() Type { return a.Type }

// Deref is «*p»: the addressable l-value obtained by dereferencing a
// pointer.
type Deref struct {
	Operand Expression
	Type    Type
}

func (*Deref) isEntity()              {}
func (*Deref) isExpression()          {}
func (d *Deref) EntityName() string   { return "*(...)" }
func (d *Deref) ExpressionType() Type { return d.Type }

// ClassInitializer is a resolved «Type{field: value, ...}» construction
// (spec §4.3.9). When Type has no user
// @constructor, Values holds one entry per field in declared order
// (parents first), zero-initialized or defaulted where the literal
// omitted a field. When Type does have a @constructor, the listed
// values are instead forwarded positionally as CtorArgs — Values is
// left empty, since the constructor body owns every field's init.
type ClassInitializer struct {
	Type     *ClassType
	Values   []Expression
	CtorArgs []Expression
}

func (*ClassInitializer) isEntity()              {}
func (*ClassInitializer) isExpression()          {}
func (c *ClassInitializer) EntityName() string   { return TypeName(c.Type) + "{...}" }
func (c *ClassInitializer) ExpressionType() Type { return c.Type }

// Length is «len(x)» for a fixed-size Array, folded to its declared
// length at resolve time; there is no dynamic length for any other
// type in this language.
type Length struct {
	Array *ArrayType
}

func (*Length) isEntity()              {}
func (*Length) isExpression()          {}
func (l *Length) EntityName() string   { return "len(...)" }
func (l *Length) ExpressionType() Type { return Uint64Type }

// InlineAsmExpr passes an inline-asm block through to the SSA builder
// untouched (spec §4.3.10, §6.1's inline_asm builder op).
type InlineAsmExpr struct {
	AST      *ast.InlineAsm
	Outputs  []Expression
	Inputs   []Expression
	Type     Type
}

func (*InlineAsmExpr) isEntity()              {}
func (*InlineAsmExpr) isExpression()          {}
func (a *InlineAsmExpr) EntityName() string   { return "asm(...)" }
func (a *InlineAsmExpr) ExpressionType() Type { return a.Type }
