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

package resolver

import (
	"github.com/rift-lang/riftc/diag"
	"github.com/rift-lang/riftc/semantic"
)

// coerce adapts e to want, following spec §4.3.2's implicit conversion
// table: int<->int (any width/sign), int<->float, float<->float,
// int<->pointer, pointer<->bool, struct upcast via the parent chain,
// and reference<->value. It folds untyped-looking integer/float
// Constants to want's type directly instead of wrapping them in a
// Cast node, matching the "literal adapts to context" inference rule.
// Anything outside the table is a TypeMismatch, producing an
// ErrorType-typed Constant so the caller's own diagnostic is
// suppressed by the cascade rule (spec §7).
func (u *Unit) coerce(e semantic.Expression, want semantic.Type, at diag.Position) semantic.Expression {
	have := e.ExpressionType()
	if semantic.Equal(have, want) {
		return e
	}
	if c, ok := e.(*semantic.Constant); ok {
		if folded, ok := refoldConst(c.Value, want); ok {
			return &semantic.Constant{Value: folded}
		}
	}
	if r, ok := have.(*semantic.ReferenceType); ok && semantic.Equal(r.Element, want) {
		return &semantic.Deref{Operand: e, Type: want}
	}
	switch want := want.(type) {
	case *semantic.IntegerType:
		if want.IsBool {
			// Spec §4.3.2's Int->Bool and Ptr->Bool rows are a
			// compare-ne-zero/compare-ne-null, not a bare width
			// truncation; a float has no row in that table at all, so it
			// falls through to the TypeMismatch below.
			switch have.(type) {
			case *semantic.IntegerType, *semantic.PointerType:
				return &semantic.Cast{Object: e, Type: want}
			}
			break
		}
		switch have.(type) {
		case *semantic.IntegerType, *semantic.FloatType:
			return &semantic.Cast{Object: e, Type: want}
		case *semantic.PointerType:
			return &semantic.Cast{Object: e, Type: want}
		}
	case *semantic.FloatType:
		switch have.(type) {
		case *semantic.IntegerType, *semantic.FloatType:
			return &semantic.Cast{Object: e, Type: want}
		}
	case *semantic.PointerType:
		switch h := have.(type) {
		case *semantic.IntegerType:
			return &semantic.Cast{Object: e, Type: want}
		case *semantic.PointerType:
			if semantic.Equal(h.Element, want.Element) {
				return e
			}
		}
	case *semantic.ClassType:
		if h, ok := have.(*semantic.ClassType); ok {
			if path, ok := upcastPath(h, want, nil); ok {
				return &semantic.Cast{Object: e, Type: want, Upcast: true, ParentPath: path}
			}
		}
	}
	u.Diags.Add(diag.TypeMismatch, at, "cannot convert %s to %s", semantic.TypeName(have), semantic.TypeName(want))
	return &semantic.Constant{Value: semantic.ConstValue{Kind: semantic.ConstInt, Type: semantic.ErrorType}}
}

// coercible reports whether coerce would convert an expression of type
// from to want without raising a diagnostic — the same conversion
// table as coerce, minus the side effects and the literal-refolding
// special case, used to score a candidate in an overload set (spec §9:
// "an exact match is preferred over one reached through coercion").
func coercible(from, want semantic.Type) bool {
	if semantic.Equal(from, want) {
		return true
	}
	if r, ok := from.(*semantic.ReferenceType); ok && semantic.Equal(r.Element, want) {
		return true
	}
	switch want := want.(type) {
	case *semantic.IntegerType:
		if want.IsBool {
			switch from.(type) {
			case *semantic.IntegerType, *semantic.PointerType:
				return true
			}
			return false
		}
		switch from.(type) {
		case *semantic.IntegerType, *semantic.FloatType, *semantic.PointerType:
			return true
		}
	case *semantic.FloatType:
		switch from.(type) {
		case *semantic.IntegerType, *semantic.FloatType:
			return true
		}
	case *semantic.PointerType:
		switch h := from.(type) {
		case *semantic.IntegerType:
			return true
		case *semantic.PointerType:
			return semantic.Equal(h.Element, want.Element)
		}
	case *semantic.ClassType:
		if h, ok := from.(*semantic.ClassType); ok {
			_, ok := upcastPath(h, want, nil)
			return ok
		}
	}
	return false
}

// upcastPath finds the left-to-right parent-index path from from to
// to, if to is an ancestor of from (spec §4.3.2/§8's upcast rule).
func upcastPath(from, to *semantic.ClassType, prefix []int) ([]int, bool) {
	if from == to {
		return prefix, true
	}
	for i, p := range from.Parents {
		if path, ok := upcastPath(p, to, append(append([]int{}, prefix...), i)); ok {
			return path, true
		}
	}
	return nil, false
}

// refoldConst re-evaluates a literal constant as though it had been
// written directly with want's type, implementing "an untyped literal
// adapts to its context" without an intervening Cast node.
func refoldConst(c semantic.ConstValue, want semantic.Type) (semantic.ConstValue, bool) {
	switch want := want.(type) {
	case *semantic.IntegerType:
		switch c.Kind {
		case semantic.ConstInt:
			return semantic.NewUintConst(want, c.Int), true
		case semantic.ConstFloat:
			return semantic.NewIntConst(want, int64(c.Float)), true
		}
	case *semantic.FloatType:
		switch c.Kind {
		case semantic.ConstInt:
			return semantic.ConstValue{Kind: semantic.ConstFloat, Type: want, Float: float64(c.SignedInt())}, true
		case semantic.ConstFloat:
			return semantic.ConstValue{Kind: semantic.ConstFloat, Type: want, Float: c.Float}, true
		}
	}
	return semantic.ConstValue{}, false
}

// usualArithmeticType picks the common type of a binary operator's two
// operands (spec §4.3.3): the wider of two integer types or of two
// float types, the float side when an integer meets a float, and a's
// type otherwise. Whether an operand is a literal does not matter here.
func usualArithmeticType(a, b semantic.Type) semantic.Type {
	switch a := a.(type) {
	case *semantic.FloatType:
		if bf, ok := b.(*semantic.FloatType); ok {
			if bf.Bits > a.Bits {
				return bf
			}
		}
		return a
	case *semantic.IntegerType:
		switch b := b.(type) {
		case *semantic.FloatType:
			return b
		case *semantic.IntegerType:
			if b.Bits > a.Bits {
				return b
			}
			return a
		}
	}
	return a
}
