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

import "fmt"

// VoidType is the unique «void» type.
type voidType struct{ Named }

func (*voidType) isEntity() {}
func (*voidType) isType()   {}

// VoidType is the singleton void type.
var VoidType Type = &voidType{Named: "void"}

// ErrorType is the sentinel type assigned to a poisoned Value (spec
// §7): "a Value with a sentinel error type" that suppresses further
// diagnostics rooted at the same expression.
type errorType struct{ Named }

func (*errorType) isEntity() {}
func (*errorType) isType()   {}

var ErrorType Type = &errorType{Named: "<error>"}

// IntegerType is Integer(bits, signed) from spec §3.2.
type IntegerType struct {
	Named
	Bits   int
	Signed bool
	IsBool bool // true only for the "bool" alias of Integer(1, false)
}

func (*IntegerType) isEntity() {}
func (*IntegerType) isType()   {}

// FloatType is Float(32|64).
type FloatType struct {
	Named
	Bits int // 32 or 64
}

func (*FloatType) isEntity() {}
func (*FloatType) isType()   {}

// PointerType is Pointer(of: Type).
type PointerType struct {
	Element Type
	IsConst bool
}

func (*PointerType) isEntity() {}
func (*PointerType) isType()   {}
func (t *PointerType) EntityName() string { return t.String() }

// ReferenceType is Reference(of: Type).
type ReferenceType struct {
	Element Type
}

func (*ReferenceType) isEntity() {}
func (*ReferenceType) isType()   {}
func (t *ReferenceType) EntityName() string { return t.String() }

// ArrayType is Array(of: Type, len).
type ArrayType struct {
	Element Type
	Len     uint64
}

func (*ArrayType) isEntity() {}
func (*ArrayType) isType()   {}
func (t *ArrayType) EntityName() string { return t.String() }

// Builtin scalar types. Names match the surface syntax.
var (
	BoolType   = &IntegerType{Named: "bool", Bits: 1, Signed: false, IsBool: true}
	Int8Type   = &IntegerType{Named: "i8", Bits: 8, Signed: true}
	Uint8Type  = &IntegerType{Named: "u8", Bits: 8, Signed: false}
	Int16Type  = &IntegerType{Named: "i16", Bits: 16, Signed: true}
	Uint16Type = &IntegerType{Named: "u16", Bits: 16, Signed: false}
	Int32Type  = &IntegerType{Named: "i32", Bits: 32, Signed: true}
	Uint32Type = &IntegerType{Named: "u32", Bits: 32, Signed: false}
	Int64Type  = &IntegerType{Named: "i64", Bits: 64, Signed: true}
	Uint64Type = &IntegerType{Named: "u64", Bits: 64, Signed: false}
	Float32Type = &FloatType{Named: "f32", Bits: 32}
	Float64Type = &FloatType{Named: "f64", Bits: 64}
	CharType   = &IntegerType{Named: "char", Bits: 32, Signed: false}
)

// Builtins is the fixed set of scalar types visible in every scope
// without qualification.
var Builtins = []Type{
	VoidType, BoolType,
	Int8Type, Uint8Type, Int16Type, Uint16Type,
	Int32Type, Uint32Type, Int64Type, Uint64Type,
	Float32Type, Float64Type, CharType,
}

// deref strips Reference layers, returning the underlying type. Used throughout §4.3.2's cast table,
// which operates on types "dereferenced through Reference layers as
// needed".
func deref(t Type) Type {
	for {
		r, ok := t.(*ReferenceType)
		if !ok {
			return t
		}
		t = r.Element
	}
}

// Equal implements spec §3.2's structural type equality, resolving
// through Alias first (Equal is called with already-resolved,
// non-Alias types by convention; the resolver never hands an Alias
// itself to Equal).
func Equal(a, b Type) bool {
	a, b = deref(a), deref(b)
	if a == b {
		return true
	}
	switch a := a.(type) {
	case *IntegerType:
		b, ok := b.(*IntegerType)
		return ok && a.Bits == b.Bits && a.Signed == b.Signed && a.IsBool == b.IsBool
	case *FloatType:
		b, ok := b.(*FloatType)
		return ok && a.Bits == b.Bits
	case *PointerType:
		b, ok := b.(*PointerType)
		return ok && Equal(a.Element, b.Element)
	case *ReferenceType:
		b, ok := b.(*ReferenceType)
		return ok && Equal(a.Element, b.Element)
	case *ArrayType:
		b, ok := b.(*ArrayType)
		return ok && a.Len == b.Len && Equal(a.Element, b.Element)
	case *ClassType:
		// A Struct is equal iff the origin ClassType is the same
		// instance (spec §3.2) — already covered by the a == b
		// pointer-identity check above, so reaching here means unequal.
		return false
	case *voidType:
		_, ok := b.(*voidType)
		return ok
	case *errorType:
		_, ok := b.(*errorType)
		return ok
	default:
		return false
	}
}

// TypeName renders a type the way diagnostics spell it.
func TypeName(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.EntityName()
}

func (t *PointerType) String() string   { return fmt.Sprintf("%s*", TypeName(t.Element)) }
func (t *ReferenceType) String() string { return fmt.Sprintf("%s&", TypeName(t.Element)) }
func (t *ArrayType) String() string     { return fmt.Sprintf("%s[%d]", TypeName(t.Element), t.Len) }
