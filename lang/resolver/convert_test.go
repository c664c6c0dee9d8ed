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
	"testing"

	"github.com/rift-lang/riftc/diag"
	"github.com/rift-lang/riftc/semantic"
)

func TestCoerceFoldsLiteralToWantType(t *testing.T) {
	u := NewUnit()
	lit := &semantic.Constant{Value: semantic.NewIntConst(semantic.Int32Type, 1)}

	got := u.coerce(lit, semantic.Int64Type, diag.Position{})
	if u.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", u.Diags.Entries())
	}
	c, ok := got.(*semantic.Constant)
	if !ok {
		t.Fatalf("expected a folded Constant, got %T", got)
	}
	if !semantic.Equal(c.ExpressionType(), semantic.Int64Type) {
		t.Fatalf("expected folded constant to carry i64, got %s", semantic.TypeName(c.ExpressionType()))
	}
}

func TestCoerceWrapsNonLiteralInCast(t *testing.T) {
	u := NewUnit()
	local := &semantic.Local{Named: "n", Type: semantic.Int32Type}
	ref := &semantic.LocalRef{Local: local}

	got := u.coerce(ref, semantic.Int64Type, diag.Position{})
	if u.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", u.Diags.Entries())
	}
	cast, ok := got.(*semantic.Cast)
	if !ok {
		t.Fatalf("expected a Cast wrapping the non-literal operand, got %T", got)
	}
	if cast.Object != semantic.Expression(ref) {
		t.Fatalf("expected the Cast to wrap the original LocalRef unchanged")
	}
}

func TestCoerceRejectsIncompatibleTypesWithTypeMismatch(t *testing.T) {
	u := NewUnit()
	cls := &semantic.ClassType{Named: "Widget"}
	local := &semantic.Local{Named: "w", Type: cls}
	ref := &semantic.LocalRef{Local: local}

	got := u.coerce(ref, semantic.BoolType, diag.Position{})
	if !u.Diags.HasErrors() {
		t.Fatalf("expected a TypeMismatch diagnostic")
	}
	entries := u.Diags.Entries()
	if entries[len(entries)-1].Kind != diag.TypeMismatch {
		t.Fatalf("expected the last diagnostic to be TypeMismatch, got %v", entries[len(entries)-1].Kind)
	}
	c, ok := got.(*semantic.Constant)
	if !ok || !semantic.Equal(c.ExpressionType(), semantic.ErrorType) {
		t.Fatalf("expected an ErrorType-typed Constant placeholder, got %T", got)
	}
}

func TestCoerceAlreadyEqualReturnsExpressionUnchanged(t *testing.T) {
	u := NewUnit()
	local := &semantic.Local{Named: "n", Type: semantic.Int32Type}
	ref := &semantic.LocalRef{Local: local}

	got := u.coerce(ref, semantic.Int32Type, diag.Position{})
	if u.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", u.Diags.Entries())
	}
	if got != semantic.Expression(ref) {
		t.Fatalf("expected coerce to return the same expression when types already match")
	}
}

func TestUpcastPathFindsAncestorThroughMultipleParents(t *testing.T) {
	base := &semantic.ClassType{Named: "Base"}
	mid := &semantic.ClassType{Named: "Mid", Parents: []*semantic.ClassType{base}}
	derived := &semantic.ClassType{Named: "Derived", Parents: []*semantic.ClassType{mid}}

	path, ok := upcastPath(derived, base, nil)
	if !ok {
		t.Fatalf("expected base to be found as an ancestor of derived")
	}
	if len(path) != 2 || path[0] != 0 || path[1] != 0 {
		t.Fatalf("expected path [0 0], got %v", path)
	}
}

func TestUpcastPathFailsForUnrelatedClasses(t *testing.T) {
	a := &semantic.ClassType{Named: "A"}
	b := &semantic.ClassType{Named: "B"}

	if _, ok := upcastPath(a, b, nil); ok {
		t.Fatalf("expected no upcast path between unrelated classes")
	}
}

func TestUsualArithmeticTypePicksWiderInteger(t *testing.T) {
	got := usualArithmeticType(semantic.Int32Type, semantic.Int64Type)
	if !semantic.Equal(got, semantic.Int64Type) {
		t.Fatalf("expected i64 to win over i32, got %s", semantic.TypeName(got))
	}
	got = usualArithmeticType(semantic.Int64Type, semantic.Int32Type)
	if !semantic.Equal(got, semantic.Int64Type) {
		t.Fatalf("expected i64 to win regardless of operand order, got %s", semantic.TypeName(got))
	}
}

func TestUsualArithmeticTypeFloatBeatsInteger(t *testing.T) {
	got := usualArithmeticType(semantic.Int32Type, semantic.Float32Type)
	if !semantic.Equal(got, semantic.Float32Type) {
		t.Fatalf("expected float to win over integer, got %s", semantic.TypeName(got))
	}
}

func TestNewUnitSeedsRootScopeWithBuiltins(t *testing.T) {
	u := NewUnit()
	for _, want := range []semantic.Type{semantic.Int32Type, semantic.BoolType, semantic.Float64Type} {
		name := semantic.TypeName(want)
		entity, ok := u.Root.Scope.DeclaredHere(name)
		if !ok {
			t.Fatalf("expected builtin %q to be declared in the root scope", name)
		}
		if entity != semantic.Entity(want) {
			t.Fatalf("expected %q to resolve to the shared builtin instance", name)
		}
	}
}

func TestScopeLookupWalksToParentAndShadowingWorksInChild(t *testing.T) {
	u := NewUnit()
	child := u.Root.Scope.NewChild(nil)

	if !child.Declare("x", semantic.Int32Type) {
		t.Fatalf("expected first declaration of x in child to succeed")
	}
	if child.Declare("x", semantic.Int64Type) {
		t.Fatalf("expected redeclaring x in the same scope to fail")
	}

	entity, foundIn, ok := child.Lookup("x")
	if !ok || entity != semantic.Entity(semantic.Int32Type) || foundIn != child {
		t.Fatalf("expected x to resolve to the child's own binding")
	}

	_, rootFound, ok := child.Lookup("i64")
	if !ok || rootFound != u.Root.Scope {
		t.Fatalf("expected an unshadowed builtin lookup to walk up to the root scope")
	}
}
