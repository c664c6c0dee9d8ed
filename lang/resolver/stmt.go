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
	"github.com/rift-lang/riftc/lang/ast"
	"github.com/rift-lang/riftc/scope"
	"github.com/rift-lang/riftc/semantic"
)

// block resolves a ast.Block into a fresh child scope (spec §4.4:
// "entering a block pushes a scope").
func (u *Unit) block(b *ast.Block, sc *scope.Scope, ctx *funcCtx) semantic.Statements {
	if b == nil {
		return nil
	}
	blockScope := sc.NewChild(nil)
	out := make(semantic.Statements, 0, len(b.Statements))
	for _, s := range b.Statements {
		out = append(out, u.stmt(s, blockScope, ctx))
	}
	return out
}

func (u *Unit) stmt(n ast.Node, sc *scope.Scope, ctx *funcCtx) semantic.Statement {
	switch n := n.(type) {
	case *ast.DeclareLocal:
		return u.declareLocal(n, sc, ctx)
	case *ast.ExpressionStatement:
		if a, ok := n.Expression.(*ast.Assign); ok {
			return u.assign(a, sc, ctx)
		}
		return &semantic.ExpressionStatement{AST: n, Expression: u.expr(n.Expression, sc, ctx)}
	case *ast.Branch:
		return &semantic.Branch{AST: n,
			Condition: u.coerce(u.expr(n.Condition, sc, ctx), semantic.BoolType, n.Pos()),
			True:      u.block(n.True, sc, ctx),
			False:     u.block(n.False, sc, ctx)}
	case *ast.While:
		loopCtx := *ctx
		loopCtx.InLoop = true
		return &semantic.While{AST: n,
			Condition: u.coerce(u.expr(n.Condition, sc, ctx), semantic.BoolType, n.Pos()),
			Block:     u.block(n.Block, sc, &loopCtx)}
	case *ast.ForIn:
		return u.forIn(n, sc, ctx)
	case *ast.Return:
		return u.returnStmt(n, sc, ctx)
	case *ast.Break:
		if !ctx.InLoop {
			u.Diags.Add(diag.BreakOutsideLoop, n.Pos(), "break outside of a loop")
		}
		return &semantic.Break{AST: n}
	case *ast.Assert:
		return &semantic.Assert{AST: n,
			Condition: u.coerce(u.expr(n.Condition, sc, ctx), semantic.BoolType, n.Pos()),
			Message:   n.Message}
	default:
		u.Diags.Add(diag.InternalInvariant, n.Pos(), "unhandled statement node %T", n)
		return &semantic.ExpressionStatement{Expression: errExpr()}
	}
}

func (u *Unit) declareLocal(n *ast.DeclareLocal, sc *scope.Scope, ctx *funcCtx) semantic.Statement {
	local := &semantic.Local{AST: n, Named: n.Named.Value}
	if n.Type != nil {
		local.Type = u.resolveType(n.Type, sc)
	}
	if n.Value != nil {
		init := u.expr(n.Value, sc, ctx)
		if local.Type == nil {
			local.Type = init.ExpressionType()
		} else {
			init = u.coerce(init, local.Type, n.Pos())
		}
		local.Init = init
	} else if local.Type == nil {
		u.Diags.Add(diag.ExpectedType, n.Pos(), "local '%s' needs either a type or an initializer", local.Named)
		local.Type = semantic.ErrorType
	}
	if !sc.Declare(local.Named, local) {
		u.Diags.Add(diag.RedeclaredName, n.Pos(), "'%s' already declared in this scope", local.Named)
	}
	return &semantic.DeclareLocal{AST: n, Local: local}
}

func (u *Unit) assign(n *ast.Assign, sc *scope.Scope, ctx *funcCtx) semantic.Statement {
	target := u.expr(n.Target, sc, ctx)
	if !isAddressable(target) {
		u.Diags.Add(diag.NotAssignable, n.Pos(), "left-hand side of assignment is not addressable")
	}
	value := u.expr(n.Value, sc, ctx)
	if n.Operator != "=" {
		op := n.Operator[:len(n.Operator)-1] // "+=" -> "+"
		if method, ok := operatorOverload(target.ExpressionType(), n.Operator); ok {
			call := u.makeCall(method, target, []semantic.Expression{value}, n.Pos())
			return &semantic.Assign{AST: n, Target: target, Value: call}
		}
		common := usualArithmeticType(target.ExpressionType(), value.ExpressionType())
		value = &semantic.BinaryOp{Operator: op, LHS: target, RHS: u.coerce(value, common, n.Pos()), Type: common}
	}
	value = u.coerce(value, target.ExpressionType(), n.Pos())
	return &semantic.Assign{AST: n, Target: target, Value: value}
}

// forIn resolves «for (x in e) block» against the next()-returning-
// Optional iteration protocol SPEC_FULL.md §4.5 settles on: e's class
// must expose a "next" method returning a class with a bool
// "has_value" field and a "value" field typed Variable's element type.
func (u *Unit) forIn(n *ast.ForIn, sc *scope.Scope, ctx *funcCtx) semantic.Statement {
	iterable := u.expr(n.Iterable, sc, ctx)
	ct := classOf(iterable.ExpressionType())
	if ct == nil {
		u.Diags.Add(diag.NotAScope, n.Pos(), "'%s' is not iterable", semantic.TypeName(iterable.ExpressionType()))
		return &semantic.ForIn{AST: n, Iterable: iterable}
	}
	next, ok := ct.Method("next")
	if !ok {
		u.Diags.Add(diag.NotCallable, n.Pos(), "'%s' has no next() method", semantic.TypeName(ct))
		return &semantic.ForIn{AST: n, Iterable: iterable}
	}
	resultClass := classOf(next.Signature.Return)
	var varType semantic.Type = semantic.ErrorType
	if resultClass != nil {
		if f, ok := resultClass.Field("value"); ok {
			varType = f.Type
		}
	}
	loopScope := sc.NewChild(nil)
	local := &semantic.Local{AST: n.Variable, Named: n.Variable.Value, Type: varType}
	loopScope.Declare(local.Named, local)
	loopCtx := *ctx
	loopCtx.InLoop = true
	return &semantic.ForIn{AST: n, Variable: local, Iterable: iterable, NextMethod: next, Block: u.block(n.Block, loopScope, &loopCtx)}
}

func (u *Unit) returnStmt(n *ast.Return, sc *scope.Scope, ctx *funcCtx) semantic.Statement {
	if n.Value == nil {
		if !semantic.Equal(ctx.Return, semantic.VoidType) {
			u.Diags.Add(diag.ReturnTypeMismatch, n.Pos(), "missing return value, expected %s", semantic.TypeName(ctx.Return))
		}
		return &semantic.Return{AST: n}
	}
	v := u.coerce(u.expr(n.Value, sc, ctx), ctx.Return, n.Pos())
	return &semantic.Return{AST: n, Value: v}
}
