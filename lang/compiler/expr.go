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

package compiler

import (
	"github.com/rift-lang/riftc/core/codegen"
	"github.com/rift-lang/riftc/semantic"
)

// lowerExpr emits e's value, dispatching on its concrete semantic node
// type exactly as the resolver left it — every overload, cast and
// generic instantiation decision has already been made, so this is a
// pure tree walk with no further name lookups.
func (ctx *funcContext) lowerExpr(e semantic.Expression) *Value {
	switch e := e.(type) {
	case *semantic.Constant:
		return ctx.lowerConstant(e)
	case *semantic.LocalRef:
		return ctx.lowerLocalRef(e)
	case *semantic.ParameterRef:
		return ctx.lowerParameterRef(e)
	case *semantic.GlobalRef:
		return ctx.lowerGlobalRef(e)
	case *semantic.FieldRef:
		return ctx.lowerFieldRef(e)
	case *semantic.MethodRef:
		// A bare MethodRef (not wrapped in a Call) only appears as the
		// Callee of the Call it is bound to; lowerCall reaches into it
		// directly rather than lowering it standalone.
		return ctx.internal(diag0, "bare MethodRef reached lowerExpr")
	case *semantic.Call:
		return ctx.lowerCall(e)
	case *semantic.BinaryOp:
		return ctx.lowerBinaryOp(e)
	case *semantic.ShortCircuit:
		return ctx.lowerShortCircuit(e)
	case *semantic.UnaryOp:
		return ctx.lowerUnaryOp(e)
	case *semantic.Cast:
		return ctx.lowerCast(e)
	case *semantic.Index:
		return ctx.lowerIndex(e)
	case *semantic.AddressOf:
		return ctx.lowerAddressOf(e)
	case *semantic.Deref:
		return ctx.lowerDeref(e)
	case *semantic.ClassInitializer:
		return ctx.lowerClassInitializer(e)
	case *semantic.Length:
		return &Value{Ref: ctx.b.ConstInt(64, false, e.Array.Len), Type: semantic.Uint64Type}
	case *semantic.InlineAsmExpr:
		return ctx.lowerInlineAsm(e)
	default:
		return ctx.internal(diag0, "unhandled expression node %T", e)
	}
}

func (ctx *funcContext) lowerConstant(c *semantic.Constant) *Value {
	v := c.Value
	switch v.Kind {
	case semantic.ConstInt:
		it, _ := v.Type.(*semantic.IntegerType)
		bits := 32
		signed := true
		if it != nil {
			bits, signed = it.Bits, it.Signed
		}
		return &Value{Ref: ctx.b.ConstInt(bits, signed, v.Int), Type: v.Type}
	case semantic.ConstChar:
		it, _ := v.Type.(*semantic.IntegerType)
		bits := 32
		if it != nil {
			bits = it.Bits
		}
		return &Value{Ref: ctx.b.ConstInt(bits, false, uint64(v.Char)), Type: v.Type}
	case semantic.ConstBool:
		return &Value{Ref: ctx.b.ConstBool(v.Bool), Type: semantic.BoolType}
	case semantic.ConstFloat:
		ft, _ := v.Type.(*semantic.FloatType)
		bits := 64
		if ft != nil {
			bits = ft.Bits
		}
		return &Value{Ref: ctx.b.ConstFloat(bits, v.Float), Type: v.Type}
	case semantic.ConstString:
		return &Value{Ref: ctx.b.ConstString(v.Str), Type: v.Type}
	case semantic.ConstNull:
		return &Value{Ref: ctx.b.ConstNull(codegen.KindPointer), Type: v.Type}
	default:
		return ctx.internal(diag0, "unhandled constant kind %v", v.Kind)
	}
}

func (ctx *funcContext) lowerLocalRef(r *semantic.LocalRef) *Value {
	v, ok := ctx.locals[r.Local]
	if !ok {
		return ctx.internal(diag0, "local '%s' referenced before its DeclareLocal was lowered", r.Local.Named)
	}
	return v
}

// lowerParameterRef special-cases the injected "this" binding (spec
// §3.1), which is not one of fn.Signature.Parameters and so carries no
// entry in ctx.params; every other Parameter was populated by
// lowerFunction from the same pointer the resolver bound into scope.
func (ctx *funcContext) lowerParameterRef(r *semantic.ParameterRef) *Value {
	if r.Parameter.Named == "this" && ctx.thisSlot != nil {
		return &Value{Ref: ctx.thisSlot, Type: r.Parameter.Type, CanBeTaken: false}
	}
	v, ok := ctx.params[r.Parameter]
	if !ok {
		return ctx.internal(diag0, "parameter '%s' not bound in this function", r.Parameter.Named)
	}
	return v
}

func (ctx *funcContext) lowerGlobalRef(r *semantic.GlobalRef) *Value {
	v, ok := ctx.globals[r.Global]
	if !ok {
		return ctx.internal(diag0, "global '%s' not yet lowered", r.Global.Named)
	}
	return v
}

// lowerFieldRef computes object's address, offsets to the field via
// GEP, and returns an alloca-flavored Value so a read loads through it
// and a write (Assign's Target) stores through it directly.
func (ctx *funcContext) lowerFieldRef(r *semantic.FieldRef) *Value {
	ct := classOfExprType(r.Object.ExpressionType())
	if ct == nil {
		return ctx.internal(diag0, "field access on non-class type")
	}
	base := ctx.addressOf(r.Object, ct)
	idx := fieldIndex(ct, r.Field)
	ref := ctx.b.GEP(base, int64(idx))
	return &Value{Ref: ref, Type: r.Field.Type, IsAlloca: true, CanBeTaken: true}
}

func fieldIndex(ct *semantic.ClassType, f *semantic.Field) int {
	n := 0
	for _, p := range ct.Parents {
		n += len(allFields(p))
	}
	for i, cf := range ct.Fields {
		if cf == f {
			return n + i
		}
	}
	return n
}

func allFields(ct *semantic.ClassType) []*semantic.Field {
	var fs []*semantic.Field
	for _, p := range ct.Parents {
		fs = append(fs, allFields(p)...)
	}
	return append(fs, ct.Fields...)
}

// addressOf returns object's address as a codegen.Value. object must
// already be of class type ct, possibly behind a Deref/AddressOf the
// resolver already inserted; alloca-flavored Values are already
// addresses, everything else is materialized into a fresh slot first
// (spec §3.3's "Value wraps a memory slot or an immediate").
func (ctx *funcContext) addressOf(e semantic.Expression, ct *semantic.ClassType) codegen.Value {
	v := ctx.lowerExpr(e)
	if v.IsAlloca {
		return v.Ref
	}
	slot := ctx.b.Alloca("tmp", ctx.layout.SizeOf(ct))
	ctx.b.Store(slot, v.Ref)
	return slot
}

func classOfExprType(t semantic.Type) *semantic.ClassType {
	switch t := t.(type) {
	case *semantic.ClassType:
		return t
	case *semantic.PointerType:
		return classOfExprType(t.Element)
	case *semantic.ReferenceType:
		return classOfExprType(t.Element)
	default:
		return nil
	}
}

// lowerCall evaluates arguments left-to-right, prepends the receiver
// when ResolvedFunction.Signature.IsMethod (spec §3.3's
// calling_variable), prepends a freshly allocated sret slot when the
// return type crosses the threshold, and emits the call.
func (ctx *funcContext) lowerCall(c *semantic.Call) *Value {
	var recv codegen.Value
	if c.ResolvedFunction.Signature.IsMethod {
		mref, _ := c.Callee.(*semantic.MethodRef)
		if mref == nil {
			return ctx.internal(diag0, "method call missing receiver")
		}
		recv = ctx.addressOf(mref.Object, classOfExprType(mref.Object.ExpressionType()))
	}
	args := make([]codegen.Value, len(c.Arguments))
	for i, a := range c.Arguments {
		args[i] = ctx.load(ctx.lowerExpr(a))
	}
	return ctx.emitCall(c.ResolvedFunction, recv, args...)
}

// emitCall is the sret/receiver-aware call sequence shared by an
// ordinary resolved Call and the for-in loop's direct invocation of
// NextMethod (stmt.go), which has no semantic.Call node of its own.
func (ctx *funcContext) emitCall(fn *semantic.Function, recv codegen.Value, args ...codegen.Value) *Value {
	target := ctx.declareFunc(fn)
	var callArgs []codegen.Value

	sret := isSRet(ctx.layout, fn.Signature.Return)
	var sretSlot codegen.Value
	if sret {
		sretSlot = ctx.b.Alloca("sret", ctx.layout.SizeOf(fn.Signature.Return))
		callArgs = append(callArgs, sretSlot)
	}
	if fn.Signature.IsMethod {
		callArgs = append(callArgs, recv)
	}
	callArgs = append(callArgs, args...)

	ret := ctx.b.Call(target, callArgs...)
	if sret {
		return &Value{Ref: sretSlot, Type: fn.Signature.Return, IsAlloca: true, IsTemporary: true}
	}
	return &Value{Ref: ret, Type: fn.Signature.Return, IsTemporary: true}
}

// callMethod invokes a no-argument method on recv, returning its
// result's storage address — used by the for-in loop to call
// NextMethod each iteration without going through a resolved Call
// node.
func (ctx *funcContext) callMethod(fn *semantic.Function, recv codegen.Value) codegen.Value {
	v := ctx.emitCall(fn, recv)
	if v.IsAlloca {
		return v.Ref
	}
	slot := ctx.b.Alloca("call.tmp", ctx.layout.SizeOf(fn.Signature.Return))
	ctx.b.Store(slot, v.Ref)
	return slot
}

func (ctx *funcContext) lowerBinaryOp(b *semantic.BinaryOp) *Value {
	lhs := ctx.load(ctx.lowerExpr(b.LHS))
	rhs := ctx.load(ctx.lowerExpr(b.RHS))
	isFloat := isFloatType(b.LHS.ExpressionType())
	if pred, ok := predicateFor(b.Operator); ok {
		return &Value{Ref: ctx.b.Cmp(pred, lhs, rhs, isFloat), Type: semantic.BoolType}
	}
	op, ok := opcodeFor(b.Operator)
	if !ok {
		return ctx.internal(diag0, "unhandled binary operator '%s'", b.Operator)
	}
	return &Value{Ref: ctx.b.Arith(op, lhs, rhs, isFloat), Type: b.Type}
}

// lowerShortCircuit lowers «lhs && rhs» / «lhs || rhs» to a branch and
// phi join (spec's rationale for keeping it out of BinaryOp): evaluate
// lhs, short-circuit to its value without evaluating rhs when it
// already determines the result, otherwise branch into rhs's block.
func (ctx *funcContext) lowerShortCircuit(s *semantic.ShortCircuit) *Value {
	lhs := ctx.load(ctx.lowerExpr(s.LHS))
	startBlock := ctx.currentBlock
	rhsBlock := ctx.b.NewBlock("sc.rhs")
	joinBlock := ctx.b.NewBlock("sc.join")
	if s.Operator == "&&" {
		ctx.emitBrCond(lhs, rhsBlock, joinBlock)
	} else {
		ctx.emitBrCond(lhs, joinBlock, rhsBlock)
	}
	ctx.setBlock(rhsBlock)
	rhs := ctx.load(ctx.lowerExpr(s.RHS))
	ctx.emitBr(joinBlock)
	rhsEndBlock := ctx.currentBlock
	ctx.setBlock(joinBlock)
	phi := ctx.b.Phi(codegen.KindInt, 1, map[codegen.Block]codegen.Value{
		startBlock:  lhs,
		rhsEndBlock: rhs,
	})
	return &Value{Ref: phi, Type: semantic.BoolType}
}

func (ctx *funcContext) lowerUnaryOp(u *semantic.UnaryOp) *Value {
	v := ctx.load(ctx.lowerExpr(u.Operand))
	isFloat := isFloatType(u.Operand.ExpressionType())
	switch u.Operator {
	case "!":
		return &Value{Ref: ctx.b.Not(v), Type: semantic.BoolType}
	case "~":
		return &Value{Ref: ctx.b.Not(v), Type: u.Type}
	case "-":
		return &Value{Ref: ctx.b.Neg(v, isFloat), Type: u.Type}
	default:
		return ctx.internal(diag0, "unhandled unary operator '%s'", u.Operator)
	}
}

// lowerCast emits the conversion the resolver already selected: an
// upcast walks ParentPath by GEP offset, everything else is a scalar
// bit-level conversion.
func (ctx *funcContext) lowerCast(c *semantic.Cast) *Value {
	if c.Upcast {
		ct := classOfExprType(c.Object.ExpressionType())
		base := ctx.addressOf(c.Object, ct)
		for _, idx := range c.ParentPath {
			base = ctx.b.GEP(base, int64(idx))
		}
		return &Value{Ref: base, Type: c.Type, IsAlloca: true}
	}
	v := ctx.load(ctx.lowerExpr(c.Object))
	from, to := c.Object.ExpressionType(), c.Type
	if tt, ok := to.(*semantic.IntegerType); ok && tt.IsBool {
		switch ft := from.(type) {
		case *semantic.IntegerType:
			zero := ctx.b.ConstInt(ft.Bits, ft.Signed, 0)
			return &Value{Ref: ctx.b.Cmp(codegen.CmpNE, v, zero, false), Type: to}
		case *semantic.PointerType:
			null := ctx.b.ConstNull(codegen.KindPointer)
			return &Value{Ref: ctx.b.Cmp(codegen.CmpNE, v, null, false), Type: to}
		}
	}
	switch {
	case isIntType(from) && isIntType(to):
		tt := to.(*semantic.IntegerType)
		return &Value{Ref: ctx.b.IntCast(v, tt.Bits, tt.Signed), Type: to}
	case isFloatType(from) && isFloatType(to):
		tt := to.(*semantic.FloatType)
		return &Value{Ref: ctx.b.FloatCast(v, tt.Bits), Type: to}
	case isIntType(from) && isFloatType(to):
		tt := to.(*semantic.FloatType)
		return &Value{Ref: ctx.b.IntToFloat(v, tt.Bits), Type: to}
	case isFloatType(from) && isIntType(to):
		tt := to.(*semantic.IntegerType)
		return &Value{Ref: ctx.b.FloatToInt(v, tt.Bits, tt.Signed), Type: to}
	case isIntType(from) && isPointerType(to):
		return &Value{Ref: ctx.b.IntToPtr(v), Type: to}
	case isPointerType(from) && isIntType(to):
		tt := to.(*semantic.IntegerType)
		return &Value{Ref: ctx.b.PtrToInt(v, tt.Bits), Type: to}
	case isPointerType(from) && isPointerType(to):
		return &Value{Ref: v, Type: to}
	default:
		return ctx.internal(diag0, "unhandled cast %s -> %s", semantic.TypeName(from), semantic.TypeName(to))
	}
}

// lowerIndex offsets by a runtime index scaled by the element size. An
// Array's own storage (not a pointer to it) is the base, since array
// values live inline; a Pointer's pointee is already the base once
// loaded.
func (ctx *funcContext) lowerIndex(i *semantic.Index) *Value {
	objV := ctx.lowerExpr(i.Object)
	var base codegen.Value
	if _, ok := i.Object.ExpressionType().(*semantic.ArrayType); ok {
		base = objV.Ref
	} else {
		base = ctx.load(objV)
	}
	idx := ctx.load(ctx.lowerExpr(i.Index))
	ref := ctx.b.GEPIndex(base, idx, ctx.layout.SizeOf(i.Type))
	return &Value{Ref: ref, Type: i.Type, IsAlloca: true, CanBeTaken: true}
}

func (ctx *funcContext) lowerAddressOf(a *semantic.AddressOf) *Value {
	v := ctx.lowerExpr(a.Operand)
	return &Value{Ref: v.Ref, Type: a.Type}
}

func (ctx *funcContext) lowerDeref(d *semantic.Deref) *Value {
	v := ctx.load(ctx.lowerExpr(d.Operand))
	return &Value{Ref: v, Type: d.Type, IsAlloca: true, CanBeTaken: true}
}

// lowerClassInitializer allocates a temporary and then either calls the
// class's constructor on it with CtorArgs (when a @constructor exists)
// or stores each of Values into its field in declared order; no field
// stores are emitted before a constructor call.
func (ctx *funcContext) lowerClassInitializer(c *semantic.ClassInitializer) *Value {
	slot := ctx.b.Alloca("init", ctx.layout.SizeOf(c.Type))
	if ctor, ok := c.Type.Constructor(); ok {
		args := make([]codegen.Value, len(c.CtorArgs))
		for i, a := range c.CtorArgs {
			args[i] = ctx.load(ctx.lowerExpr(a))
		}
		ctx.emitCall(ctor, slot, args...)
	} else {
		for i, fv := range c.Values {
			ref := ctx.b.GEP(slot, int64(i))
			ctx.b.Store(ref, ctx.load(ctx.lowerExpr(fv)))
		}
	}
	return &Value{Ref: slot, Type: c.Type, IsAlloca: true, IsTemporary: true, CanBeTaken: true}
}

func (ctx *funcContext) lowerInlineAsm(a *semantic.InlineAsmExpr) *Value {
	outs := make([]codegen.Value, len(a.Outputs))
	for i, o := range a.Outputs {
		outs[i] = ctx.load(ctx.lowerExpr(o))
	}
	ins := make([]codegen.Value, len(a.Inputs))
	for i, in := range a.Inputs {
		ins[i] = ctx.load(ctx.lowerExpr(in))
	}
	var template string
	var clobbers []string
	if a.AST != nil {
		if a.AST.Template != nil {
			template = a.AST.Template.Value
		}
		for _, c := range a.AST.Clobbers {
			clobbers = append(clobbers, c.Value)
		}
	}
	return &Value{Ref: ctx.b.InlineAsm(template, outs, ins, clobbers), Type: a.Type}
}

func isIntType(t semantic.Type) bool {
	_, ok := t.(*semantic.IntegerType)
	return ok
}
func isFloatType(t semantic.Type) bool {
	_, ok := t.(*semantic.FloatType)
	return ok
}
func isPointerType(t semantic.Type) bool {
	_, ok := t.(*semantic.PointerType)
	return ok
}

func predicateFor(op string) (codegen.Predicate, bool) {
	switch op {
	case "==":
		return codegen.CmpEQ, true
	case "!=":
		return codegen.CmpNE, true
	case "<":
		return codegen.CmpLT, true
	case "<=":
		return codegen.CmpLE, true
	case ">":
		return codegen.CmpGT, true
	case ">=":
		return codegen.CmpGE, true
	default:
		return 0, false
	}
}

func opcodeFor(op string) (codegen.Opcode, bool) {
	switch op {
	case "+":
		return codegen.OpAdd, true
	case "-":
		return codegen.OpSub, true
	case "*":
		return codegen.OpMul, true
	case "/":
		return codegen.OpDiv, true
	case "%":
		return codegen.OpRem, true
	case "&":
		return codegen.OpAnd, true
	case "|":
		return codegen.OpOr, true
	case "^":
		return codegen.OpXor, true
	case "<<":
		return codegen.OpShl, true
	case ">>":
		return codegen.OpShr, true
	case ">>>":
		return codegen.OpUShr, true
	default:
		return 0, false
	}
}
