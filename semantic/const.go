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
	"fmt"

	"github.com/rift-lang/riftc/genengine"
)

// ConstKind discriminates the literal domains spec §4.2 allows for a
// generic value-parameter (SPEC_FULL.md §4.7 restricts these to
// literals) and that the constant-folding rule of §4.3.3 operates on.
type ConstKind int

const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstBool
	ConstString
	ConstChar
	ConstNull
)

// ConstValue is a compile-time constant: the payload of a Constant
// Value (spec §3.3) and of a bound generic value-parameter (spec
// §4.2). Integers are stored two's-complement-wrapped to the
// declared IntegerType's bit width (spec §8: "i32 overflow in constant
// folding wraps modulo 2^32").
type ConstValue struct {
	Kind  ConstKind
	Type  Type
	Int   uint64
	Float float64
	Bool  bool
	Str   string
	Char  rune
}

// wrapInt truncates v to bits, matching two's-complement wraparound
// (spec §8's boundary behavior).
func wrapInt(v uint64, bits int) uint64 {
	if bits >= 64 {
		return v
	}
	mask := uint64(1)<<uint(bits) - 1
	return v & mask
}

// NewIntConst builds a Constant of the given integer type, wrapping v
// to the type's bit width.
func NewIntConst(t *IntegerType, v int64) ConstValue {
	return ConstValue{Kind: ConstInt, Type: t, Int: wrapInt(uint64(v), t.Bits)}
}

// NewUintConst is NewIntConst for an already-unsigned value.
func NewUintConst(t *IntegerType, v uint64) ConstValue {
	return ConstValue{Kind: ConstInt, Type: t, Int: wrapInt(v, t.Bits)}
}

// SignedInt sign-extends the stored bit pattern per the IntegerType's
// declared width and signedness, for use in diagnostics and folding.
func (c ConstValue) SignedInt() int64 {
	t := c.Type.(*IntegerType)
	v := c.Int
	if t.Signed && t.Bits < 64 {
		signBit := uint64(1) << uint(t.Bits-1)
		if v&signBit != 0 {
			v |= ^uint64(0) << uint(t.Bits)
		}
	}
	return int64(v)
}

// IsZero reports whether c is the literal zero of its domain — used by
// the division-by-literal-zero diagnostic rule (spec §8).
func (c ConstValue) IsZero() bool {
	switch c.Kind {
	case ConstInt:
		return c.Int == 0
	case ConstFloat:
		return c.Float == 0
	default:
		return false
	}
}

// Equal implements the structural constant-expression equality spec
// §3.2/§4.2 requires for comparing generic argument tuples and for
// EnumEntry-free literal comparisons.
func (c ConstValue) Equal(o ConstValue) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case ConstInt:
		return c.Int == o.Int && Equal(c.Type, o.Type)
	case ConstFloat:
		return c.Float == o.Float && Equal(c.Type, o.Type)
	case ConstBool:
		return c.Bool == o.Bool
	case ConstString:
		return c.Str == o.Str
	case ConstChar:
		return c.Char == o.Char
	case ConstNull:
		return true
	default:
		return false
	}
}

func (c ConstValue) String() string {
	switch c.Kind {
	case ConstInt:
		return fmt.Sprintf("%d", c.SignedInt())
	case ConstFloat:
		return fmt.Sprintf("%g", c.Float)
	case ConstBool:
		return fmt.Sprintf("%t", c.Bool)
	case ConstString:
		return fmt.Sprintf("%q", c.Str)
	case ConstChar:
		return fmt.Sprintf("%q", c.Char)
	default:
		return "null"
	}
}

// ConstArg adapts a ConstValue for use as a genengine.Arg: a bound
// generic value-parameter (SPEC_FULL.md §4.7 restricts these to
// literals).
type ConstArg struct{ Value ConstValue }

func (a ConstArg) EqualArg(other genengine.Arg) bool {
	o, ok := other.(ConstArg)
	return ok && a.Value.Equal(o.Value)
}

// TypeArg adapts a Type for use as a genengine.Arg: a bound generic
// type-parameter.
type TypeArg struct{ Type Type }

func (a TypeArg) EqualArg(other genengine.Arg) bool {
	o, ok := other.(TypeArg)
	return ok && Equal(a.Type, o.Type)
}
