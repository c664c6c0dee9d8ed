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
	"github.com/rift-lang/riftc/diag"
	"github.com/rift-lang/riftc/semantic"
)

// funcContext is the state threaded through lowering of one function
// body: the builder, the layout adapter, the slots already allocated
// for locals/parameters/globals, and the break-target and
// destructor-unwind stacks a nested block needs.
type funcContext struct {
	compilation *Compilation
	b           codegen.Builder
	layout      layout
	diags       *diag.List
	fn          codegen.Func

	globals map[*semantic.Global]*Value
	locals  map[*semantic.Local]*Value
	params  map[*semantic.Parameter]*Value

	// sretSlot and thisSlot are the hidden-pointer and receiver
	// parameters lowerFunction peels off the front of the parameter
	// list before populating params (spec §3.2's sret convention and
	// §3.1's injected "this" binding — neither is a declared
	// semantic.Parameter, so neither lives in the params map).
	sretSlot codegen.Value
	thisSlot codegen.Value

	breakTargets []codegen.Block
	// breakDtorDepth[i] is len(scopeDtors) at the point breakTargets[i]
	// was pushed, so a break unwinds exactly the scopes it is inside of.
	breakDtorDepth []int

	currentBlock codegen.Block
	// terminated is true once the current block has emitted a Ret,
	// RetVoid, Br or BrCond — every statement after that point in the
	// same source block is unreachable, and lowering must not append a
	// second terminator (setBlock resets this for the new block).
	terminated bool

	// scopeDtors holds, per nested block, the locals declared in that
	// block whose class exposes a destructor — popped and called in
	// reverse declaration order when the block's Statements finish
	// lowering (spec's "destructors run in reverse construction order").
	scopeDtors [][]*semantic.Local
}

func newFuncContext(c *Compilation, fn codegen.Func) *funcContext {
	globals := map[*semantic.Global]*Value{}
	for g, v := range c.globals {
		globals[g] = v
	}
	return &funcContext{
		compilation: c,
		b:           c.b,
		layout:      c.layout,
		diags:       c.diags,
		fn:          fn,
		globals:     globals,
		locals:      map[*semantic.Local]*Value{},
		params:      map[*semantic.Parameter]*Value{},
	}
}

// diag0 is the zero Position used for internal-invariant diagnostics
// raised during lowering, where no surface-syntax location applies
// (the resolver already attached positions to every diagnosable
// mistake; reaching here means resolver and compiler disagree about
// the tree shape, not that the source has an error).
var diag0 = diag.Position{}

func (ctx *funcContext) setBlock(b codegen.Block) {
	ctx.b.SetInsertPoint(b)
	ctx.currentBlock = b
	ctx.terminated = false
}

// emitRet/emitRetVoid/emitBr/emitBrCond are the only places a
// terminator instruction is emitted; every lowering path funnels
// through them so ctx.terminated always reflects reality.
func (ctx *funcContext) emitRet(v codegen.Value) {
	if ctx.terminated {
		return
	}
	ctx.b.Ret(v)
	ctx.terminated = true
}

func (ctx *funcContext) emitRetVoid() {
	if ctx.terminated {
		return
	}
	ctx.b.RetVoid()
	ctx.terminated = true
}

func (ctx *funcContext) emitBr(to codegen.Block) {
	if ctx.terminated {
		return
	}
	ctx.b.Br(to)
	ctx.terminated = true
}

func (ctx *funcContext) emitBrCond(cond codegen.Value, ifTrue, ifFalse codegen.Block) {
	if ctx.terminated {
		return
	}
	ctx.b.BrCond(cond, ifTrue, ifFalse)
	ctx.terminated = true
}

func (ctx *funcContext) pushScope() {
	ctx.scopeDtors = append(ctx.scopeDtors, nil)
}

// unwindFrom calls destructors for every tracked local from the
// innermost open scope down to (and including) scopeDtors[depth], in
// reverse declaration order — the shared logic behind both a natural
// scope exit (popScope) and an early exit (return, break) that skips
// over still-open scopes.
func (ctx *funcContext) unwindFrom(depth int) {
	for i := len(ctx.scopeDtors) - 1; i >= depth; i-- {
		locals := ctx.scopeDtors[i]
		for j := len(locals) - 1; j >= 0; j-- {
			l := locals[j]
			ct := l.Type.(*semantic.ClassType)
			dtor, _ := ct.Destructor()
			fn := ctx.declareFunc(dtor)
			ctx.b.Call(fn, ctx.locals[l].Ref)
		}
	}
}

func (ctx *funcContext) trackLocal(l *semantic.Local) {
	if len(ctx.scopeDtors) == 0 {
		return
	}
	ct, ok := l.Type.(*semantic.ClassType)
	if !ok {
		return
	}
	if _, ok := ct.Destructor(); !ok {
		return
	}
	top := len(ctx.scopeDtors) - 1
	ctx.scopeDtors[top] = append(ctx.scopeDtors[top], l)
}

// popScope emits destructor calls for every tracked local of the
// innermost scope, last-declared first. If the block already ended in
// a return or break, unwindFrom already ran these calls (or the
// block is unreachable) — popScope only needs to drop the frame.
func (ctx *funcContext) popScope() {
	top := len(ctx.scopeDtors) - 1
	locals := ctx.scopeDtors[top]
	ctx.scopeDtors = ctx.scopeDtors[:top]
	if ctx.terminated {
		return
	}
	for i := len(locals) - 1; i >= 0; i-- {
		l := locals[i]
		ct := l.Type.(*semantic.ClassType)
		dtor, _ := ct.Destructor()
		fn := ctx.declareFunc(dtor)
		ctx.b.Call(fn, ctx.locals[l].Ref)
	}
}

func (ctx *funcContext) internal(pos diag.Position, format string, args ...interface{}) *Value {
	ctx.diags.Add(diag.InternalInvariant, pos, format, args...)
	return &Value{Ref: ctx.b.ConstNull(codegen.KindPointer), Type: semantic.ErrorType}
}
