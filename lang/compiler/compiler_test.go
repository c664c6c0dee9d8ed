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

package compiler_test

import (
	"strings"
	"testing"

	"github.com/rift-lang/riftc/core/codegen"
	"github.com/rift-lang/riftc/lang/compiler"
	"github.com/rift-lang/riftc/semantic"
)

// classWithDestructor builds a class owning a single extern destructor
// (no body of its own — the test only cares that it gets *called*, not
// what it does), named after named.
func classWithDestructor(named string) *semantic.ClassType {
	ct := &semantic.ClassType{Named: named}
	dtor := &semantic.Function{
		Named:        "~" + named,
		IsDestructor: true,
		Owner:        ct,
		Signature:    &semantic.FunctionType{IsMethod: true, Return: semantic.VoidType},
	}
	ct.Methods = []*semantic.Function{dtor}
	return ct
}

func indexOfSubstr(instrs []string, substr string) int {
	for i, s := range instrs {
		if strings.Contains(s, substr) {
			return i
		}
	}
	return -1
}

func countSubstr(instrs []string, substr string) int {
	n := 0
	for _, s := range instrs {
		if strings.Contains(s, substr) {
			n++
		}
	}
	return n
}

// indexOfAll finds the first instruction line containing every one of
// subs — used for destructor-call lines, where the Recorder's %v
// formatting of the argument slice puts the local's value name
// somewhere inside the call's argument list rather than immediately
// after the opening paren.
func indexOfAll(instrs []string, subs ...string) int {
	for i, s := range instrs {
		ok := true
		for _, sub := range subs {
			if !strings.Contains(s, sub) {
				ok = false
				break
			}
		}
		if ok {
			return i
		}
	}
	return -1
}

// TestReturnUnwindsDestructorsInReverseOrder checks that an explicit
// return runs every in-scope local's destructor, last-declared first,
// before the function's own ret instruction — not just on ordinary
// fallthrough.
func TestReturnUnwindsDestructorsInReverseOrder(t *testing.T) {
	res := classWithDestructor("Res")
	a := &semantic.Local{Named: "a", Type: res}
	b := &semantic.Local{Named: "b", Type: res}

	fn := &semantic.Function{
		Named:     "f",
		Signature: &semantic.FunctionType{Return: semantic.VoidType},
		Block: semantic.Statements{
			&semantic.DeclareLocal{Local: a},
			&semantic.DeclareLocal{Local: b},
			&semantic.Return{},
		},
	}

	ns := semantic.NewRootNamespace()
	ns.Scope.Declare("Res", res)
	ns.Scope.Declare("f", fn)

	rec := codegen.NewRecorder()
	diags := compiler.Compile(ns, rec)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Entries())
	}

	dtorB := indexOfAll(rec.Instructions, "call Res::~Res(", "%b")
	dtorA := indexOfAll(rec.Instructions, "call Res::~Res(", "%a")
	ret := indexOfSubstr(rec.Instructions, "ret void")

	if dtorB < 0 || dtorA < 0 || ret < 0 {
		t.Fatalf("missing expected instructions, got:\n%s", strings.Join(rec.Instructions, "\n"))
	}
	if !(dtorB < dtorA && dtorA < ret) {
		t.Fatalf("expected b's destructor, then a's, then ret void; got:\n%s", strings.Join(rec.Instructions, "\n"))
	}
	if n := countSubstr(rec.Instructions, "ret void"); n != 1 {
		t.Fatalf("expected exactly one ret void, got %d:\n%s", n, strings.Join(rec.Instructions, "\n"))
	}
}

// TestVoidFunctionExplicitReturnEmitsOneTerminator guards against the
// double-RetVoid bug: a void function whose body already ends in an
// explicit return must not get a second terminator appended.
func TestVoidFunctionExplicitReturnEmitsOneTerminator(t *testing.T) {
	fn := &semantic.Function{
		Named:     "h",
		Signature: &semantic.FunctionType{Return: semantic.VoidType},
		Block: semantic.Statements{
			&semantic.Return{},
		},
	}

	ns := semantic.NewRootNamespace()
	ns.Scope.Declare("h", fn)

	rec := codegen.NewRecorder()
	diags := compiler.Compile(ns, rec)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Entries())
	}
	if n := countSubstr(rec.Instructions, "ret void"); n != 1 {
		t.Fatalf("expected exactly one ret void, got %d:\n%s", n, strings.Join(rec.Instructions, "\n"))
	}
}

// TestBreakUnwindsOnlyScopesEnteredSinceLoop checks that break runs the
// destructor of a local declared inside the loop body, but leaves a
// local declared in the function's outer scope (before the loop) alone
// until the loop's own natural scope exit.
func TestBreakUnwindsOnlyScopesEnteredSinceLoop(t *testing.T) {
	res := classWithDestructor("Res")
	outer := &semantic.Local{Named: "outer", Type: res}
	inner := &semantic.Local{Named: "inner", Type: res}

	fn := &semantic.Function{
		Named:     "g",
		Signature: &semantic.FunctionType{Return: semantic.VoidType},
		Block: semantic.Statements{
			&semantic.DeclareLocal{Local: outer},
			&semantic.While{
				Condition: &semantic.Constant{Value: semantic.NewIntConst(semantic.BoolType, 1)},
				Block: semantic.Statements{
					&semantic.DeclareLocal{Local: inner},
					&semantic.Break{},
				},
			},
		},
	}

	ns := semantic.NewRootNamespace()
	ns.Scope.Declare("Res", res)
	ns.Scope.Declare("g", fn)

	rec := codegen.NewRecorder()
	diags := compiler.Compile(ns, rec)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Entries())
	}

	dtorInner := indexOfAll(rec.Instructions, "call Res::~Res(", "%inner")
	dtorOuter := indexOfAll(rec.Instructions, "call Res::~Res(", "%outer")
	brk := indexOfSubstr(rec.Instructions, "br while.end")
	ret := indexOfSubstr(rec.Instructions, "ret void")

	if dtorInner < 0 || dtorOuter < 0 || brk < 0 || ret < 0 {
		t.Fatalf("missing expected instructions, got:\n%s", strings.Join(rec.Instructions, "\n"))
	}
	if !(dtorInner < brk) {
		t.Fatalf("inner's destructor must run before the break's branch; got:\n%s", strings.Join(rec.Instructions, "\n"))
	}
	if !(brk < dtorOuter && dtorOuter < ret) {
		t.Fatalf("outer's destructor must run after the loop exits, before ret void; got:\n%s", strings.Join(rec.Instructions, "\n"))
	}
	if n := countSubstr(rec.Instructions, "br while.end"); n != 1 {
		t.Fatalf("expected exactly one branch to the loop's end block (no duplicate after break), got %d:\n%s", n, strings.Join(rec.Instructions, "\n"))
	}
}

// TestStructReturnAboveThresholdUsesHiddenPointer checks that a class
// whose size crosses semantic.SRetThreshold pointer-widths is returned
// through a hidden first parameter instead of in registers.
func TestStructReturnAboveThresholdUsesHiddenPointer(t *testing.T) {
	big := &semantic.ClassType{
		Named: "Big",
		Fields: []*semantic.Field{
			{Named: "a", Type: semantic.Int64Type},
			{Named: "b", Type: semantic.Int64Type},
			{Named: "c", Type: semantic.Int64Type},
		},
	}
	local := &semantic.Local{Named: "v", Type: big}

	fn := &semantic.Function{
		Named:     "make",
		Signature: &semantic.FunctionType{Return: big},
		Block: semantic.Statements{
			&semantic.DeclareLocal{Local: local},
			&semantic.Return{Value: &semantic.LocalRef{Local: local}},
		},
	}

	ns := semantic.NewRootNamespace()
	ns.Scope.Declare("Big", big)
	ns.Scope.Declare("make", fn)

	rec := codegen.NewRecorder()
	diags := compiler.Compile(ns, rec)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Entries())
	}

	// make's own body has no sret param slot to observe directly
	// through the Recorder trace (Param handles are synthesized, not
	// recorded as instructions); the externally visible effect is that
	// the value gets stored into a slot and the function still exits
	// through a single ret void rather than a ret of a value.
	if n := countSubstr(rec.Instructions, "ret void"); n != 1 {
		t.Fatalf("expected sret-returning function to exit via ret void, got %d:\n%s", n, strings.Join(rec.Instructions, "\n"))
	}
	if n := countSubstr(rec.Instructions, "ret %"); n != 0 {
		t.Fatalf("sret-returning function must not ret a value, got:\n%s", strings.Join(rec.Instructions, "\n"))
	}
	if n := countSubstr(rec.Instructions, "store"); n == 0 {
		t.Fatalf("expected at least one store (into the sret slot), got:\n%s", strings.Join(rec.Instructions, "\n"))
	}
}

// TestShortCircuitLowersToBranchAndPhi checks that && lowers to a
// conditional branch into a dedicated rhs block and a phi join, rather
// than an eager Arith/Cmp over both operands.
func TestShortCircuitLowersToBranchAndPhi(t *testing.T) {
	p1 := &semantic.Parameter{Named: "p", Type: semantic.BoolType}
	p2 := &semantic.Parameter{Named: "q", Type: semantic.BoolType}

	fn := &semantic.Function{
		Named: "both",
		Signature: &semantic.FunctionType{
			Parameters: []*semantic.Parameter{p1, p2},
			Return:     semantic.BoolType,
		},
		Block: semantic.Statements{
			&semantic.Return{Value: &semantic.ShortCircuit{
				Operator: "&&",
				LHS:      &semantic.ParameterRef{Parameter: p1},
				RHS:      &semantic.ParameterRef{Parameter: p2},
			}},
		},
	}

	ns := semantic.NewRootNamespace()
	ns.Scope.Declare("both", fn)

	rec := codegen.NewRecorder()
	diags := compiler.Compile(ns, rec)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Entries())
	}

	brCond := indexOfSubstr(rec.Instructions, "br.cond")
	phi := indexOfSubstr(rec.Instructions, "= phi")
	ret := indexOfSubstr(rec.Instructions, "ret %")
	if brCond < 0 || phi < 0 || ret < 0 {
		t.Fatalf("expected a br.cond, a phi and a value ret, got:\n%s", strings.Join(rec.Instructions, "\n"))
	}
	if !(brCond < phi && phi < ret) {
		t.Fatalf("expected br.cond before phi before ret, got:\n%s", strings.Join(rec.Instructions, "\n"))
	}
	if n := countSubstr(rec.Instructions, "arith."); n != 0 {
		t.Fatalf("short-circuit must not lower to an eager Arith, got:\n%s", strings.Join(rec.Instructions, "\n"))
	}
}

// TestExternFunctionProducesNoBody checks that a Function with a nil
// Block (an extern/forward declaration) still gets a callable handle
// but contributes no lowered instructions of its own.
func TestExternFunctionProducesNoBody(t *testing.T) {
	extern := &semantic.Function{
		Named:     "native_thing",
		Signature: &semantic.FunctionType{Return: semantic.VoidType},
	}
	caller := &semantic.Function{
		Named:     "caller",
		Signature: &semantic.FunctionType{Return: semantic.VoidType},
		Block: semantic.Statements{
			&semantic.ExpressionStatement{Expression: &semantic.Call{
				ResolvedFunction: extern,
			}},
		},
	}

	ns := semantic.NewRootNamespace()
	ns.Scope.Declare("native_thing", extern)
	ns.Scope.Declare("caller", caller)

	rec := codegen.NewRecorder()
	diags := compiler.Compile(ns, rec)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Entries())
	}
	if idx := indexOfSubstr(rec.Instructions, "call native_thing("); idx < 0 {
		t.Fatalf("expected a call to the extern function, got:\n%s", strings.Join(rec.Instructions, "\n"))
	}
	if n := countSubstr(rec.Instructions, "ret void"); n != 1 {
		t.Fatalf("expected only caller's ret void, extern must lower no body; got %d:\n%s", n, strings.Join(rec.Instructions, "\n"))
	}
}
