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

// Compilation is the shared state across every function lowered from
// one resolved semantic.Namespace: the set of declared codegen.Funcs
// (so a forward call resolves to the same handle regardless of
// declaration order) and the storage allocated for module globals.
type Compilation struct {
	b       codegen.Builder
	layout  layout
	diags   *diag.List
	funcs   map[*semantic.Function]codegen.Func
	globals map[*semantic.Global]*Value
}

// Compile lowers every function body reachable from root into b,
// returning the accumulated internal-invariant diagnostics (a fully
// resolved tree should never produce one; if it does, resolver and
// compiler have gone out of sync). Mirrors resolver.Unit.ResolveFiles'
// use of diag.List.Collect so a fatal ctx.internal() call unwinds to a
// recorded diagnostic instead of an uncaught panic.
func Compile(root *semantic.Namespace, b codegen.Builder) *diag.List {
	c := &Compilation{
		b:       b,
		layout:  layout{b: b},
		diags:   &diag.List{},
		funcs:   map[*semantic.Function]codegen.Func{},
		globals: map[*semantic.Global]*Value{},
	}

	c.diags.Collect(func() {
		var classes []*semantic.ClassType
		var freeFuncs []*semantic.Function
		var globals []*semantic.Global
		collect(root, &classes, &freeFuncs, &globals)

		for _, cl := range classes {
			for _, m := range cl.Methods {
				c.declareFuncTop(m)
			}
		}
		for _, f := range freeFuncs {
			c.declareFuncTop(f)
		}

		c.lowerGlobals(globals)

		for _, cl := range classes {
			for _, m := range cl.Methods {
				c.lowerFunction(m)
			}
		}
		for _, f := range freeFuncs {
			c.lowerFunction(f)
		}
	})
	return c.diags
}

func collect(ns *semantic.Namespace, classes *[]*semantic.ClassType, funcs *[]*semantic.Function, globals *[]*semantic.Global) {
	for _, binding := range ns.Scope.Bindings() {
		switch e := binding.Entity.(type) {
		case *semantic.ClassType:
			*classes = append(*classes, e)
		case *semantic.Function:
			*funcs = append(*funcs, e)
		case *semantic.FunctionSet:
			*funcs = append(*funcs, e.Functions...)
		case *semantic.Global:
			*globals = append(*globals, e)
		case *semantic.Namespace:
			collect(e, classes, funcs, globals)
		}
	}
}

// declareFuncTop registers fn's codegen.Func handle once, before any
// body is lowered, so a call to a function declared later in the unit
// (spec §4.1's order-independent visibility) still resolves.
func (c *Compilation) declareFuncTop(fn *semantic.Function) codegen.Func {
	if f, ok := c.funcs[fn]; ok {
		return f
	}
	paramCount := len(fn.Signature.Parameters)
	if fn.Signature.IsMethod {
		paramCount++ // implicit receiver slot
	}
	if isSRet(c.layout, fn.Signature.Return) {
		paramCount++ // hidden sret pointer
	}
	f := c.b.DeclareFunc(mangle(fn), paramCount)
	c.funcs[fn] = f
	return f
}

func (ctx *funcContext) declareFunc(fn *semantic.Function) codegen.Func {
	return ctx.compilation.declareFuncTop(fn)
}

// mangle names a lowered function uniquely enough to avoid collisions
// between overloads and between a class's methods and free functions
// of the same name, without promising any particular ABI.
func mangle(fn *semantic.Function) string {
	name := fn.Named
	if fn.Owner != nil {
		name = semantic.TypeName(fn.Owner) + "::" + name
	}
	if fn.Operator != "" {
		name += "$op"
	}
	for _, p := range fn.Signature.Parameters {
		name += "$" + semantic.TypeName(p.Type)
	}
	return name
}

func (c *Compilation) lowerGlobals(globals []*semantic.Global) {
	if len(globals) == 0 {
		return
	}
	initFn := c.b.DeclareFunc("@init", 0)
	ctx := newFuncContext(c, initFn)
	entry := c.b.NewBlock("entry")
	ctx.setBlock(entry)
	for _, g := range globals {
		sz := c.layout.SizeOf(g.Type)
		slot := &Value{Ref: c.b.Alloca(g.Named, sz), Type: g.Type, IsAlloca: true, CanBeTaken: true}
		c.globals[g] = slot
		ctx.globals[g] = slot
		if g.Init != nil {
			v := ctx.lowerExpr(g.Init)
			c.b.Store(slot.Ref, ctx.load(v))
		}
	}
	ctx.emitRetVoid()
}

// lowerFunction emits fn's body. Extern declarations (fn.Block == nil,
// per resolver's elaborateFunctionBody skipping them) produce no body
// at all — their codegen.Func handle exists only so calls resolve.
func (c *Compilation) lowerFunction(fn *semantic.Function) {
	if fn.Block == nil {
		return
	}
	f := c.declareFuncTop(fn)
	ctx := newFuncContext(c, f)

	paramIdx := 0
	sret := isSRet(c.layout, fn.Signature.Return)
	if sret {
		ctx.sretSlot = f.Param(paramIdx)
		paramIdx++
	}
	if fn.Signature.IsMethod {
		ctx.thisSlot = f.Param(paramIdx)
		paramIdx++
	}
	for _, p := range fn.Signature.Parameters {
		ctx.params[p] = &Value{Ref: f.Param(paramIdx), Type: p.Type}
		paramIdx++
	}

	entry := c.b.NewBlock("entry")
	ctx.setBlock(entry)
	ctx.pushScope()
	ctx.lowerStatements(fn.Block)
	ctx.popScope()
	if semantic.Equal(fn.Signature.Return, semantic.VoidType) {
		ctx.emitRetVoid()
	}
}
