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
	"strconv"
	"strings"

	"github.com/rift-lang/riftc/diag"
	"github.com/rift-lang/riftc/lang/ast"
	"github.com/rift-lang/riftc/scope"
	"github.com/rift-lang/riftc/semantic"
)

// funcCtx threads the state specific to elaborating one function body:
// its declared return type (for checking «return»), and whether the
// current position is inside a loop (for checking «break», spec §8).
type funcCtx struct {
	Return semantic.Type
	InLoop bool
}

// errExpr is the poisoned sentinel returned whenever resolution of a
// sub-expression fails; its ErrorType suppresses further diagnostics
// rooted at the same node (spec §7).
func errExpr() semantic.Expression {
	return &semantic.Constant{Value: semantic.ConstValue{Kind: semantic.ConstInt, Type: semantic.ErrorType}}
}

// expr resolves one ST expression node to its semantic.Expression form
// (spec §4.3).
func (u *Unit) expr(n ast.Node, sc *scope.Scope, ctx *funcCtx) semantic.Expression {
	switch n := n.(type) {
	case *ast.Number:
		return u.number(n)
	case *ast.StringLit:
		return &semantic.Constant{Value: semantic.ConstValue{Kind: semantic.ConstString, Type: &semantic.PointerType{Element: semantic.Uint8Type, IsConst: true}, Str: n.Value}}
	case *ast.CharLit:
		return &semantic.Constant{Value: semantic.ConstValue{Kind: semantic.ConstChar, Type: semantic.CharType, Char: n.Value}}
	case *ast.BoolLit:
		return &semantic.Constant{Value: semantic.ConstValue{Kind: semantic.ConstBool, Type: semantic.BoolType, Bool: n.Value}}
	case *ast.NullLit:
		return &semantic.Constant{Value: semantic.ConstValue{Kind: semantic.ConstNull, Type: &semantic.PointerType{Element: semantic.VoidType}}}
	case *ast.ScopedName:
		return u.identifier(n, sc)
	case *ast.Unary:
		return u.unary(n, sc, ctx)
	case *ast.Binary:
		return u.binary(n, sc, ctx)
	case *ast.Call:
		return u.call(n, sc, ctx)
	case *ast.Index:
		return u.index(n, sc, ctx)
	case *ast.Member:
		return u.member(n, sc, ctx)
	case *ast.Cast:
		return u.cast(n, sc, ctx)
	case *ast.Length:
		return u.length(n, sc, ctx)
	case *ast.ClassInitializer:
		return u.classInitializer(n, sc, ctx)
	case *ast.InlineAsm:
		return u.inlineAsm(n, sc, ctx)
	case *ast.Assign:
		// An Assign reached as a sub-expression (not directly inside an
		// ExpressionStatement, where stmt.go handles it as a Statement)
		// has no result value in this language; reject it here so a
		// construct like "f(x = 1)" is diagnosed instead of silently
		// typed void.
		u.Diags.Add(diag.ExpectedValue, n.Pos(), "assignment is a statement, not an expression")
		return errExpr()
	default:
		u.Diags.Add(diag.InternalInvariant, n.Pos(), "unhandled expression node %T", n)
		return errExpr()
	}
}

func (u *Unit) number(n *ast.Number) semantic.Expression {
	if strings.ContainsAny(n.Value, ".eE") && !strings.HasPrefix(n.Value, "0x") {
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			u.Diags.Add(diag.ExpectedValue, n.Pos(), "invalid numeric literal '%s'", n.Value)
			return errExpr()
		}
		return &semantic.Constant{Value: semantic.ConstValue{Kind: semantic.ConstFloat, Type: semantic.Float64Type, Float: f}}
	}
	v, err := strconv.ParseInt(n.Value, 0, 64)
	if err != nil {
		uv, uerr := strconv.ParseUint(n.Value, 0, 64)
		if uerr != nil {
			u.Diags.Add(diag.ExpectedValue, n.Pos(), "invalid numeric literal '%s'", n.Value)
			return errExpr()
		}
		return &semantic.Constant{Value: semantic.NewUintConst(semantic.Int32Type, uv)}
	}
	return &semantic.Constant{Value: semantic.NewIntConst(semantic.Int32Type, v)}
}

func (u *Unit) identifier(n *ast.ScopedName, sc *scope.Scope) semantic.Expression {
	e := u.resolveScopedName(n, sc)
	e = semantic.ResolveAlias(e)
	switch e := e.(type) {
	case *semantic.Local:
		return &semantic.LocalRef{Local: e}
	case *semantic.Parameter:
		return &semantic.ParameterRef{Parameter: e}
	case *semantic.Global:
		u.checkDeprecated(e.Annotations, e.Named, n.Pos())
		return &semantic.GlobalRef{Global: e}
	case *semantic.Constant:
		return e
	case semantic.Expression:
		return e
	case semantic.Type:
		u.Diags.Add(diag.ExpectedValue, n.Pos(), "'%s' is a type, not a value", scopedNameString(n))
		return errExpr()
	default:
		return errExpr()
	}
}

func (u *Unit) unary(n *ast.Unary, sc *scope.Scope, ctx *funcCtx) semantic.Expression {
	operand := u.expr(n.Operand, sc, ctx)
	switch n.Operator {
	case "&":
		if !isAddressable(operand) {
			u.Diags.Add(diag.NotAssignable, n.Pos(), "cannot take the address of this expression")
			return errExpr()
		}
		return &semantic.AddressOf{Operand: operand, Type: &semantic.PointerType{Element: operand.ExpressionType()}}
	case "*":
		pt, ok := operand.ExpressionType().(*semantic.PointerType)
		if !ok {
			u.Diags.Add(diag.NotIndexable, n.Pos(), "cannot dereference non-pointer type %s", semantic.TypeName(operand.ExpressionType()))
			return errExpr()
		}
		return &semantic.Deref{Operand: operand, Type: pt.Element}
	default:
		if method, ok := operatorOverload(operand.ExpressionType(), n.Operator); ok {
			return u.makeCall(method, operand, nil, n.Pos())
		}
		t := operand.ExpressionType()
		if n.Operator == "!" {
			t = semantic.BoolType
		}
		return &semantic.UnaryOp{Operator: n.Operator, Operand: operand, Type: t}
	}
}

func (u *Unit) binary(n *ast.Binary, sc *scope.Scope, ctx *funcCtx) semantic.Expression {
	if n.Operator == "&&" || n.Operator == "||" {
		lhs := u.coerce(u.expr(n.LHS, sc, ctx), semantic.BoolType, n.Pos())
		rhs := u.coerce(u.expr(n.RHS, sc, ctx), semantic.BoolType, n.Pos())
		return &semantic.ShortCircuit{Operator: n.Operator, LHS: lhs, RHS: rhs}
	}
	lhs := u.expr(n.LHS, sc, ctx)
	rhs := u.expr(n.RHS, sc, ctx)

	if method, ok := operatorOverload(lhs.ExpressionType(), n.Operator); ok {
		return u.makeCall(method, lhs, []semantic.Expression{rhs}, n.Pos())
	}

	common := usualArithmeticType(lhs.ExpressionType(), rhs.ExpressionType())
	lhs = u.coerce(lhs, common, n.Pos())
	rhs = u.coerce(rhs, common, n.Pos())

	if isComparison(n.Operator) {
		return &semantic.BinaryOp{Operator: n.Operator, LHS: lhs, RHS: rhs, Type: semantic.BoolType}
	}
	if (n.Operator == "/" || n.Operator == "%") && isDivByLiteralZero(n.Operator, rhs) {
		u.Diags.AddCategory(diag.TypeMismatch, diag.ArithmeticDomain, n.Pos(), "division by a literal zero")
		return errExpr()
	}
	return &semantic.BinaryOp{Operator: n.Operator, LHS: lhs, RHS: rhs, Type: common}
}

func isDivByLiteralZero(op string, rhs semantic.Expression) bool {
	c, ok := rhs.(*semantic.Constant)
	return ok && c.Value.IsZero()
}

func isComparison(op string) bool {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
		return true
	default:
		return false
	}
}

// operatorOverload looks up an overloaded operator method on t's class
// (spec §4.3.5); t is dereferenced through Pointer/Reference layers
// first via classOf.
func operatorOverload(t semantic.Type, sym string) (*semantic.Function, bool) {
	if !semantic.Overloadable[sym] {
		return nil, false
	}
	ct := classOf(t)
	if ct == nil {
		return nil, false
	}
	return ct.Operator(sym)
}

func classOf(t semantic.Type) *semantic.ClassType {
	switch t := t.(type) {
	case *semantic.ClassType:
		return t
	case *semantic.ReferenceType:
		return classOf(t.Element)
	case *semantic.PointerType:
		return classOf(t.Element)
	default:
		return nil
	}
}

func isAddressable(e semantic.Expression) bool {
	switch e.(type) {
	case *semantic.LocalRef, *semantic.GlobalRef, *semantic.FieldRef, *semantic.Deref:
		return true
	default:
		return false
	}
}

func (u *Unit) index(n *ast.Index, sc *scope.Scope, ctx *funcCtx) semantic.Expression {
	raw := u.expr(n.Object, sc, ctx)
	obj := autoDeref(raw, 1)
	if method, ok := operatorOverload(obj.ExpressionType(), "[]"); ok {
		idx := u.expr(n.Index, sc, ctx)
		return u.makeCall(method, obj, []semantic.Expression{idx}, n.Pos())
	}
	if _, ok := raw.ExpressionType().(*semantic.PointerType); ok {
		// Built-in p[i] indexes the pointer itself: *(p + i).
		obj = raw
	}
	idx := u.coerce(u.expr(n.Index, sc, ctx), semantic.Int64Type, n.Pos())
	var elem semantic.Type
	switch t := obj.ExpressionType().(type) {
	case *semantic.PointerType:
		elem = t.Element
	case *semantic.ArrayType:
		elem = t.Element
	default:
		u.Diags.Add(diag.NotIndexable, n.Pos(), "cannot index type %s", semantic.TypeName(obj.ExpressionType()))
		return errExpr()
	}
	return &semantic.Index{Object: obj, Index: idx, Type: elem}
}

// member resolves «object.name» / «object->name» (spec §4.3.7),
// applying SPEC_FULL.md §4.6's auto-deref rule: "." performs exactly
// one implicit dereference through a Pointer or Reference before
// field lookup; "->" performs none.
func (u *Unit) member(n *ast.Member, sc *scope.Scope, ctx *funcCtx) semantic.Expression {
	obj := u.expr(n.Object, sc, ctx)
	if !n.Arrow {
		obj = autoDeref(obj, 1)
	}
	ct := classOf(obj.ExpressionType())
	if ct == nil {
		u.Diags.Add(diag.NotAScope, n.Pos(), "type %s has no members", semantic.TypeName(obj.ExpressionType()))
		return errExpr()
	}
	if f, ok := ct.Field(n.Name.Value); ok {
		u.checkDeprecated(f.Annotations, f.Named, n.Pos())
		return &semantic.FieldRef{Object: obj, Field: f}
	}
	if m, ok := ct.Method(n.Name.Value); ok {
		u.checkDeprecated(m.Annotations, m.Named, n.Pos())
		return &semantic.MethodRef{Object: obj, Method: m}
	}
	u.Diags.Add(diag.UnknownName, n.Pos(), "%s has no member '%s'", semantic.TypeName(ct), n.Name.Value)
	return errExpr()
}

// autoDeref strips up to n layers of Pointer/Reference by inserting
// explicit Deref nodes, used by "." and by indexing through a pointer.
func autoDeref(e semantic.Expression, n int) semantic.Expression {
	for i := 0; i < n; i++ {
		switch t := e.ExpressionType().(type) {
		case *semantic.PointerType:
			e = &semantic.Deref{Operand: e, Type: t.Element}
		case *semantic.ReferenceType:
			e = &semantic.Deref{Operand: e, Type: t.Element}
		default:
			return e
		}
	}
	return e
}

func (u *Unit) call(n *ast.Call, sc *scope.Scope, ctx *funcCtx) semantic.Expression {
	args := make([]semantic.Expression, len(n.Arguments))
	for i, a := range n.Arguments {
		args[i] = u.expr(a, sc, ctx)
	}

	if mref, ok := n.Callee.(*ast.Member); ok {
		obj := autoDeref(u.expr(mref.Object, sc, ctx), 1)
		ct := classOf(obj.ExpressionType())
		if ct != nil {
			var fns []*semantic.Function
			for _, m := range ct.Methods {
				if m.Named == mref.Name.Value {
					fns = append(fns, m)
				}
			}
			if m, ok := u.resolveOverload(fns, mref.Name.Value, args, n.Pos()); ok {
				return u.makeCall(m, obj, args, n.Pos())
			}
			if len(fns) > 0 {
				return errExpr() // resolveOverload already raised NoMatchingOverload
			}
		}
		u.Diags.Add(diag.NotCallable, n.Pos(), "no method '%s' matches the given arguments", mref.Name.Value)
		return errExpr()
	}

	if sn, ok := n.Callee.(*ast.ScopedName); ok {
		e := semantic.ResolveAlias(u.resolveScopedName(sn, sc))
		if fn, ok := e.(*semantic.Function); ok {
			var receiver semantic.Expression
			if fn.Owner != nil && !fn.IsStatic {
				receiver = u.implicitThis(sc)
			}
			return u.makeCall(fn, receiver, args, n.Pos())
		}
		if fs, ok := e.(*semantic.FunctionSet); ok {
			fn, ok := u.resolveOverload(fs.Functions, fs.Named, args, n.Pos())
			if !ok {
				return errExpr()
			}
			return u.makeCall(fn, nil, args, n.Pos())
		}
	}

	callee := u.expr(n.Callee, sc, ctx)
	if mr, ok := callee.(*semantic.MethodRef); ok {
		return u.makeCall(mr.Method, mr.Object, args, n.Pos())
	}
	u.Diags.Add(diag.NotCallable, n.Pos(), "expression is not callable")
	return errExpr()
}

// resolveOverload scores every candidate in fns against args (spec §9:
// "an exact type match is preferred over one reached through
// coercion") and returns the unique best-scoring one. fns empty means
// the name itself doesn't exist in this set — resolveOverload raises
// nothing and leaves the caller to report that. fns non-empty but no
// candidate scoring, or two or more tying for best, raises
// NoMatchingOverload itself (making the kind reachable, unlike the
// previous first-arity-match scheme which could never fail once a
// same-named, same-arity method existed).
func (u *Unit) resolveOverload(fns []*semantic.Function, name string, args []semantic.Expression, at diag.Position) (*semantic.Function, bool) {
	if len(fns) == 0 {
		return nil, false
	}
	if best, ok := bestOverload(fns, args); ok {
		return best, true
	}
	u.Diags.Add(diag.NoMatchingOverload, at, "no overload of '%s' matches the given arguments", name)
	return nil, false
}

// bestOverload picks the unique highest-scoring candidate, or reports
// ok=false on a tie or when nothing scores.
func bestOverload(fns []*semantic.Function, args []semantic.Expression) (*semantic.Function, bool) {
	var best *semantic.Function
	bestScore := -1
	tied := false
	for _, fn := range fns {
		score, ok := scoreOverload(fn, args)
		if !ok {
			continue
		}
		switch {
		case score > bestScore:
			best, bestScore, tied = fn, score, false
		case score == bestScore:
			tied = true
		}
	}
	if best == nil || tied {
		return nil, false
	}
	return best, true
}

// scoreOverload sums fn's per-argument match quality against args: 2
// for an exact type match, 1 for a coercible one. ok is false if fn's
// arity doesn't fit args, or if any argument matches neither way.
func scoreOverload(fn *semantic.Function, args []semantic.Expression) (score int, ok bool) {
	params := fn.Signature.Parameters
	if len(args) != len(params) && !fn.Signature.Variadic {
		return 0, false
	}
	for i := 0; i < len(params) && i < len(args); i++ {
		at, pt := args[i].ExpressionType(), params[i].Type
		switch {
		case semantic.Equal(at, pt):
			score += 2
		case coercible(at, pt):
			score++
		default:
			return 0, false
		}
	}
	return score, true
}

// implicitThis resolves an unqualified instance-method call's receiver
// to the enclosing method's injected "this" binding (spec §3.1: "this
// is injected as a binding when elaborating an instance method"), or
// nil if sc is not inside an instance method (a free function, or a
// static method, has no "this" to find).
func (u *Unit) implicitThis(sc *scope.Scope) semantic.Expression {
	e, _, ok := sc.Lookup("this")
	if !ok {
		return nil
	}
	p, ok := e.(*semantic.Parameter)
	if !ok {
		return nil
	}
	return &semantic.ParameterRef{Parameter: p}
}

func (u *Unit) makeCall(fn *semantic.Function, receiver semantic.Expression, args []semantic.Expression, at diag.Position) semantic.Expression {
	if fn == nil {
		u.Diags.Add(diag.NotCallable, at, "no matching overload")
		return errExpr()
	}
	u.checkDeprecated(fn.Annotations, fn.Named, at)
	if len(args) != len(fn.Signature.Parameters) && !fn.Signature.Variadic {
		u.Diags.Add(diag.WrongArgumentCount, at, "'%s' expects %d argument(s), got %d", fn.Named, len(fn.Signature.Parameters), len(args))
		return errExpr()
	}
	coerced := make([]semantic.Expression, len(args))
	for i, a := range args {
		if i < len(fn.Signature.Parameters) {
			coerced[i] = u.coerce(a, fn.Signature.Parameters[i].Type, at)
		} else {
			coerced[i] = a
		}
	}
	var callee semantic.Expression
	if receiver != nil {
		callee = &semantic.MethodRef{Object: receiver, Method: fn}
	}
	return &semantic.Call{Callee: callee, Arguments: coerced, ResolvedFunction: fn}
}

func (u *Unit) cast(n *ast.Cast, sc *scope.Scope, ctx *funcCtx) semantic.Expression {
	obj := u.expr(n.Object, sc, ctx)
	want := u.resolveType(n.Type, sc)
	if m, ok := castOverload(obj.ExpressionType(), want); ok {
		return u.makeCall(m, obj, nil, n.Pos())
	}
	return u.coerce(obj, want, n.Pos())
}

func castOverload(from, to semantic.Type) (*semantic.Function, bool) {
	ct := classOf(from)
	if ct == nil {
		return nil, false
	}
	m, ok := ct.Operator("cast")
	if !ok || !semantic.Equal(m.Signature.Return, to) {
		return nil, false
	}
	return m, true
}

func (u *Unit) length(n *ast.Length, sc *scope.Scope, ctx *funcCtx) semantic.Expression {
	obj := u.expr(n.Object, sc, ctx)
	at, ok := obj.ExpressionType().(*semantic.ArrayType)
	if !ok {
		u.Diags.Add(diag.ExpectedType, n.Pos(), "len() requires a fixed-size array")
		return errExpr()
	}
	return &semantic.Length{Array: at}
}

func (u *Unit) classInitializer(n *ast.ClassInitializer, sc *scope.Scope, ctx *funcCtx) semantic.Expression {
	t := u.resolveType(n.Type, sc)
	ct, ok := t.(*semantic.ClassType)
	if !ok {
		u.Diags.Add(diag.ExpectedClass, n.Pos(), "'%s' is not a class", semantic.TypeName(t))
		return errExpr()
	}
	given := map[string]semantic.Expression{}
	for _, fi := range n.Fields {
		given[fi.Name.Value] = u.expr(fi.Value, sc, ctx)
	}
	if ctor, ok := ct.Constructor(); ok {
		return &semantic.ClassInitializer{Type: ct, CtorArgs: forwardToConstructor(u, ctor, given, n.Pos())}
	}
	fieldCount := totalFieldCount(ct)
	values := make([]semantic.Expression, fieldCount)
	i := 0
	fillDefaults(ct, given, values, &i, u, n.Pos())
	return &semantic.ClassInitializer{Type: ct, Values: values}
}

// forwardToConstructor builds ctor's positional argument list from the
// initializer's listed field values (spec: a class with a user
// @constructor forwards its listed fields positionally instead of
// storing them directly). A constructor parameter with no matching
// listed field is an ExpectedValue diagnostic — the constructor body
// has no other source for it.
func forwardToConstructor(u *Unit, ctor *semantic.Function, given map[string]semantic.Expression, at diag.Position) []semantic.Expression {
	args := make([]semantic.Expression, len(ctor.Signature.Parameters))
	for i, p := range ctor.Signature.Parameters {
		if v, ok := given[p.Named]; ok {
			args[i] = u.coerce(v, p.Type, at)
		} else {
			u.Diags.Add(diag.ExpectedValue, at, "constructor parameter '%s' was not given an initializer", p.Named)
			args[i] = errExpr()
		}
	}
	return args
}

func totalFieldCount(ct *semantic.ClassType) int {
	n := len(ct.Fields)
	for _, p := range ct.Parents {
		n += totalFieldCount(p)
	}
	return n
}

func fillDefaults(ct *semantic.ClassType, given map[string]semantic.Expression, values []semantic.Expression, i *int, u *Unit, at diag.Position) {
	for _, p := range ct.Parents {
		fillDefaults(p, given, values, i, u, at)
	}
	for _, f := range ct.Fields {
		if v, ok := given[f.Named]; ok {
			values[*i] = u.coerce(v, f.Type, at)
		} else if f.Default != nil {
			values[*i] = f.Default
		} else {
			u.Diags.Add(diag.ExpectedValue, at, "field '%s' has no default and was not given an initializer", f.Named)
			values[*i] = errExpr()
		}
		*i++
	}
}

func (u *Unit) inlineAsm(n *ast.InlineAsm, sc *scope.Scope, ctx *funcCtx) semantic.Expression {
	outs := make([]semantic.Expression, len(n.Outputs))
	for i, o := range n.Outputs {
		outs[i] = u.expr(o.Value, sc, ctx)
	}
	ins := make([]semantic.Expression, len(n.Inputs))
	for i, o := range n.Inputs {
		ins[i] = u.expr(o.Value, sc, ctx)
	}
	return &semantic.InlineAsmExpr{AST: n, Outputs: outs, Inputs: ins, Type: semantic.VoidType}
}
