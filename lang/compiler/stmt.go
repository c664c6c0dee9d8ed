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

// lowerStatements lowers a nested block's Statements inside its own
// destructor scope, matching the resolver's "entering a block pushes a
// scope" rule (spec §4.4) one level down: at SSA-emission time that
// scope also owns the reverse-order destructor unwind.
func (ctx *funcContext) lowerStatements(stmts semantic.Statements) {
	ctx.pushScope()
	for _, s := range stmts {
		if ctx.terminated {
			break // everything after a return/break in this block is unreachable
		}
		ctx.lowerStmt(s)
	}
	ctx.popScope()
}

func (ctx *funcContext) lowerStmt(s semantic.Statement) {
	switch s := s.(type) {
	case *semantic.DeclareLocal:
		ctx.lowerDeclareLocal(s)
	case *semantic.Assign:
		ctx.lowerAssign(s)
	case *semantic.ExpressionStatement:
		ctx.lowerExpr(s.Expression)
	case *semantic.Branch:
		ctx.lowerBranch(s)
	case *semantic.While:
		ctx.lowerWhile(s)
	case *semantic.ForIn:
		ctx.lowerForIn(s)
	case *semantic.Return:
		ctx.lowerReturn(s)
	case *semantic.Break:
		ctx.lowerBreak()
	case *semantic.Assert:
		ctx.lowerAssert(s)
	default:
		ctx.internal(diag0, "unhandled statement node %T", s)
	}
}

func (ctx *funcContext) lowerDeclareLocal(d *semantic.DeclareLocal) {
	sz := ctx.layout.SizeOf(d.Local.Type)
	slot := &Value{Ref: ctx.b.Alloca(d.Local.Named, sz), Type: d.Local.Type, IsAlloca: true, CanBeTaken: true}
	ctx.locals[d.Local] = slot
	if d.Local.Init != nil {
		v := ctx.lowerExpr(d.Local.Init)
		ctx.b.Store(slot.Ref, ctx.load(v))
	}
	ctx.trackLocal(d.Local)
}

func (ctx *funcContext) lowerAssign(a *semantic.Assign) {
	target := ctx.lowerExpr(a.Target)
	value := ctx.load(ctx.lowerExpr(a.Value))
	ctx.b.Store(target.Ref, value)
}

func (ctx *funcContext) lowerBranch(b *semantic.Branch) {
	cond := ctx.load(ctx.lowerExpr(b.Condition))
	thenBlock := ctx.b.NewBlock("if.then")
	var elseBlock codegen.Block
	if len(b.False) > 0 {
		elseBlock = ctx.b.NewBlock("if.else")
	}
	joinBlock := ctx.b.NewBlock("if.join")
	if elseBlock != nil {
		ctx.emitBrCond(cond, thenBlock, elseBlock)
	} else {
		ctx.emitBrCond(cond, thenBlock, joinBlock)
	}
	ctx.setBlock(thenBlock)
	ctx.lowerStatements(b.True)
	ctx.emitBr(joinBlock)
	if elseBlock != nil {
		ctx.setBlock(elseBlock)
		ctx.lowerStatements(b.False)
		ctx.emitBr(joinBlock)
	}
	ctx.setBlock(joinBlock)
}

func (ctx *funcContext) lowerWhile(w *semantic.While) {
	condBlock := ctx.b.NewBlock("while.cond")
	bodyBlock := ctx.b.NewBlock("while.body")
	endBlock := ctx.b.NewBlock("while.end")

	ctx.emitBr(condBlock)
	ctx.setBlock(condBlock)
	cond := ctx.load(ctx.lowerExpr(w.Condition))
	ctx.emitBrCond(cond, bodyBlock, endBlock)

	ctx.setBlock(bodyBlock)
	ctx.pushBreakTarget(endBlock)
	ctx.lowerStatements(w.Block)
	ctx.popBreakTarget()
	ctx.emitBr(condBlock)

	ctx.setBlock(endBlock)
}

// lowerForIn lowers «for (x in e) block» against the next()-returning-
// Optional protocol (SPEC_FULL.md §4.5): call NextMethod each
// iteration, branch on its "has_value" field, bind Variable to its
// "value" field for the body, and loop.
func (ctx *funcContext) lowerForIn(f *semantic.ForIn) {
	iterSlot := ctx.addressOf(f.Iterable, classOfExprType(f.Iterable.ExpressionType()))
	condBlock := ctx.b.NewBlock("for.cond")
	bodyBlock := ctx.b.NewBlock("for.body")
	endBlock := ctx.b.NewBlock("for.end")

	ctx.emitBr(condBlock)
	ctx.setBlock(condBlock)
	resultClass := classOfExprType(f.NextMethod.Signature.Return)
	resultSlot := ctx.callMethod(f.NextMethod, iterSlot)

	var hasValue codegen.Value
	if resultClass != nil {
		if hf, ok := resultClass.Field("has_value"); ok {
			idx := fieldIndex(resultClass, hf)
			hasValue = ctx.b.Load(ctx.b.GEP(resultSlot, int64(idx)))
		}
	}
	if hasValue == nil {
		hasValue = ctx.b.ConstBool(true)
	}
	ctx.emitBrCond(hasValue, bodyBlock, endBlock)

	ctx.setBlock(bodyBlock)
	if resultClass != nil {
		if vf, ok := resultClass.Field("value"); ok {
			idx := fieldIndex(resultClass, vf)
			valueRef := ctx.b.GEP(resultSlot, int64(idx))
			ctx.locals[f.Variable] = &Value{Ref: valueRef, Type: f.Variable.Type, IsAlloca: true}
		}
	}
	ctx.pushBreakTarget(endBlock)
	ctx.lowerStatements(f.Block)
	ctx.popBreakTarget()
	ctx.emitBr(condBlock)

	ctx.setBlock(endBlock)
}

// lowerReturn exits the function, first unwinding every scope's
// destructors (a return is a scope exit too, same as falling off the
// end of a block — spec's reverse-construction-order rule applies to
// the whole chain of open scopes, not just the innermost one).
func (ctx *funcContext) lowerReturn(r *semantic.Return) {
	if r.Value == nil {
		ctx.unwindFrom(0)
		ctx.emitRetVoid()
		return
	}
	v := ctx.load(ctx.lowerExpr(r.Value))
	if ctx.sretSlot != nil {
		ctx.b.Store(ctx.sretSlot, v)
		ctx.unwindFrom(0)
		ctx.emitRetVoid()
		return
	}
	ctx.unwindFrom(0)
	ctx.emitRet(v)
}

// lowerBreak jumps to the nearest enclosing loop's end block, first
// unwinding destructors for every scope entered since that loop began
// (but not the loop's own outer scopes, which are still live).
func (ctx *funcContext) lowerBreak() {
	if len(ctx.breakTargets) == 0 {
		ctx.internal(diag0, "break outside of a loop reached lowering")
		return
	}
	top := len(ctx.breakTargets) - 1
	ctx.unwindFrom(ctx.breakDtorDepth[top])
	ctx.emitBr(ctx.breakTargets[top])
}

func (ctx *funcContext) pushBreakTarget(b codegen.Block) {
	ctx.breakTargets = append(ctx.breakTargets, b)
	ctx.breakDtorDepth = append(ctx.breakDtorDepth, len(ctx.scopeDtors))
}

func (ctx *funcContext) popBreakTarget() {
	ctx.breakTargets = ctx.breakTargets[:len(ctx.breakTargets)-1]
	ctx.breakDtorDepth = ctx.breakDtorDepth[:len(ctx.breakDtorDepth)-1]
}

// lowerAssert lowers a failed condition to an inline-asm trap: this
// target has no dedicated trap opcode, and spec leaves a failed
// assertion's lowering to the backend, so the abstract builder's
// general-purpose inline_asm escape hatch carries the message through.
func (ctx *funcContext) lowerAssert(a *semantic.Assert) {
	cond := ctx.load(ctx.lowerExpr(a.Condition))
	okBlock := ctx.b.NewBlock("assert.ok")
	failBlock := ctx.b.NewBlock("assert.fail")
	ctx.emitBrCond(cond, okBlock, failBlock)

	ctx.setBlock(failBlock)
	ctx.b.InlineAsm("trap", nil, nil, nil)
	ctx.emitBr(okBlock)

	ctx.setBlock(okBlock)
}
