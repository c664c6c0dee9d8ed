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
	"github.com/rift-lang/riftc/genengine"
	"github.com/rift-lang/riftc/lang/ast"
	"github.com/rift-lang/riftc/scope"
	"github.com/rift-lang/riftc/semantic"
)

// declareClass binds cd's name (or, if generic, a GenericClass
// factory) into ns and — for a non-generic class — immediately
// elaborates its parents, fields and method signatures so the rest of
// the unit can reference it regardless of declaration order (spec
// §4.1). Method bodies are deferred to the pending-functions worklist.
func (u *Unit) declareClass(cd *ast.ClassDecl, ns *semantic.Namespace) {
	if cd.Generic != nil {
		g := &semantic.GenericClass{AST: cd, Named: cd.Named.Value, Params: cd.Generic, Docs: semantic.Documentation(cd.Docs), Annotations: u.resolveAnnotations(cd.Annotations, ns.Scope)}
		if !ns.Scope.Declare(g.Named, g) {
			u.Diags.Add(diag.RedeclaredName, cd.Pos(), "'%s' already declared in this scope", g.Named)
		}
		return
	}
	c := &semantic.ClassType{AST: cd, Named: cd.Named.Value, Docs: semantic.Documentation(cd.Docs), Annotations: u.resolveAnnotations(cd.Annotations, ns.Scope)}
	if !ns.Scope.Declare(c.Named, c) {
		u.Diags.Add(diag.RedeclaredName, cd.Pos(), "'%s' already declared in this scope", c.Named)
		return
	}
	u.elaborateClassBody(c, cd, ns.Scope)
}

// elaborateClassBody fills in a stub ClassType (already bound into
// scope by declareClass or by a generic instantiation's newStub/
// elaborate pair) with its parents, fields and method signatures.
func (u *Unit) elaborateClassBody(c *semantic.ClassType, cd *ast.ClassDecl, sc *scope.Scope) {
	for _, p := range cd.Parents {
		pe := semantic.ResolveAlias(u.resolveScopedName(p, sc))
		if pc, ok := pe.(*semantic.ClassType); ok {
			c.Parents = append(c.Parents, pc)
		} else {
			u.Diags.Add(diag.ExpectedClass, p.Pos(), "'%s' is not a class", scopedNameString(p))
		}
	}
	classScope := sc.NewChild(c)
	for _, fd := range cd.Fields {
		f := &semantic.Field{AST: fd, Named: fd.Named.Value, Docs: semantic.Documentation(fd.Docs), Annotations: u.resolveAnnotations(fd.Annotations, classScope)}
		if fd.Type != nil {
			f.Type = u.resolveType(fd.Type, classScope)
		}
		c.Fields = append(c.Fields, f)
	}
	for _, md := range cd.Methods {
		u.declareMethod(c, md, classScope)
	}
	// Field defaults and method bodies are elaborated in the second pass
	// (elaboratePending's field-default and function-body loops), once every class in
	// the unit has its field types resolved — a field default may
	// reference a sibling class declared later in the same file.
	u.pendingFieldDefaults = append(u.pendingFieldDefaults, pendingFieldDefaults{class: c, ast: cd, scope: classScope})
}

func (u *Unit) declareMethod(c *semantic.ClassType, md *ast.FunctionDecl, classScope *scope.Scope) {
	if md.Generic != nil {
		g := &semantic.GenericFunction{AST: md, Named: md.Named.Value, Params: md.Generic, Owner: c, Docs: semantic.Documentation(md.Docs), Annotations: u.resolveAnnotations(md.Annotations, classScope)}
		classScope.Declare(methodScopeName(md), g)
		return
	}
	fn := u.newFunctionSignature(md, classScope, c)
	c.Methods = append(c.Methods, fn)
	classScope.Declare(methodScopeName(md), fn)
	u.pendingFuncs = append(u.pendingFuncs, pendingFunc{fn: fn, scope: classScope})
}

// methodScopeName lets operator overloads and plain methods share a
// class's method scope without an empty-string key collision; the
// overload-set itself is resolved by declareMethod, which appends
// every matching *Function to c.Methods directly rather than relying
// on scope lookup for call resolution (see expr.go's call).
func methodScopeName(md *ast.FunctionDecl) string {
	if md.Operator != "" {
		return "operator" + md.Operator
	}
	if md.IsConstructor {
		return "constructor"
	}
	if md.IsDestructor {
		return "destructor"
	}
	return md.Named.Value
}

func (u *Unit) newFunctionSignature(fd *ast.FunctionDecl, sc *scope.Scope, owner *semantic.ClassType) *semantic.Function {
	sig := &semantic.FunctionType{IsMethod: owner != nil, Variadic: fd.Variadic}
	for _, pd := range fd.Params {
		sig.Parameters = append(sig.Parameters, &semantic.Parameter{AST: pd, Named: pd.Named.Value, Type: u.resolveType(pd.Type, sc)})
	}
	if fd.Return != nil {
		sig.Return = u.resolveType(fd.Return, sc)
	} else {
		sig.Return = semantic.VoidType
	}
	if c, ok := sig.Return.(*semantic.ClassType); ok {
		_ = c // sret decision is made by the compiler package from Size(), not here
	}
	return &semantic.Function{
		AST: fd, Named: fd.Named.Value, Signature: sig,
		IsStatic: fd.IsStatic, IsConstructor: fd.IsConstructor, IsDestructor: fd.IsDestructor,
		Operator: fd.Operator, Owner: owner, Docs: semantic.Documentation(fd.Docs),
		Annotations: u.resolveAnnotations(fd.Annotations, sc),
	}
}

func (u *Unit) declareFunction(fd *ast.FunctionDecl, sc *scope.Scope, owner *semantic.ClassType) {
	if fd.Generic != nil {
		g := &semantic.GenericFunction{AST: fd, Named: fd.Named.Value, Params: fd.Generic, Owner: owner, Docs: semantic.Documentation(fd.Docs), Annotations: u.resolveAnnotations(fd.Annotations, sc)}
		if !sc.Declare(g.Named, g) {
			u.Diags.Add(diag.RedeclaredName, fd.Pos(), "'%s' already declared in this scope", g.Named)
		}
		return
	}
	fn := u.newFunctionSignature(fd, sc, owner)
	if existing, ok := sc.DeclaredHere(fn.Named); ok {
		fs, ok := existing.(*semantic.FunctionSet)
		if !ok {
			u.Diags.Add(diag.RedeclaredName, fd.Pos(), "'%s' already declared in this scope", fn.Named)
			return
		}
		fs.Functions = append(fs.Functions, fn)
	} else {
		sc.Declare(fn.Named, &semantic.FunctionSet{Named: fn.Named, Functions: []*semantic.Function{fn}})
	}
	u.pendingFuncs = append(u.pendingFuncs, pendingFunc{fn: fn, scope: sc})
}

func (u *Unit) declareAlias(ad *ast.AliasDecl, ns *semantic.Namespace) {
	if ad.Generic != nil {
		g := &semantic.GenericAlias{AST: ad, Named: ad.Named.Value, Params: ad.Generic, Docs: semantic.Documentation(ad.Docs), Annotations: u.resolveAnnotations(ad.Annotations, ns.Scope)}
		ns.Scope.Declare(g.Named, g)
		return
	}
	a := &semantic.Alias{AST: ad, Named: ad.Named.Value, Docs: semantic.Documentation(ad.Docs), Annotations: u.resolveAnnotations(ad.Annotations, ns.Scope)}
	if !ns.Scope.Declare(a.Named, a) {
		u.Diags.Add(diag.RedeclaredName, ad.Pos(), "'%s' already declared in this scope", a.Named)
		return
	}
	u.pendingAliases = append(u.pendingAliases, pendingAlias{alias: a, ast: ad, scope: ns.Scope})
}

type pendingFieldDefaults struct {
	class *semantic.ClassType
	ast   *ast.ClassDecl
	scope *scope.Scope
}

type pendingAlias struct {
	alias *semantic.Alias
	ast   *ast.AliasDecl
	scope *scope.Scope
}

// instantiateClass materializes one GenericClass child (spec §4.2),
// inserting a named stub into the unit's root scope before elaborating
// its body so a self-referential field (e.g. a tree node's "next:
// List<T>*") resolves to the same instance instead of recursing.
func (u *Unit) instantiateClass(g *semantic.GenericClass, args []genengine.Arg, sc *scope.Scope) *semantic.ClassType {
	return genengine.Instantiate(&g.Engine, args,
		func() *semantic.ClassType {
			c := &semantic.ClassType{AST: g.AST, Named: semantic.ChildName(g.Named, args), Docs: g.Docs, Annotations: g.Annotations}
			u.Root.Scope.Declare(c.Named, c)
			return c
		},
		func(c *semantic.ClassType) {
			childScope := sc.NewChild(c)
			u.bindGenericArgs(childScope, g.Params, args)
			u.elaborateClassBody(c, g.AST, childScope)
		})
}

func (u *Unit) instantiateFunction(g *semantic.GenericFunction, args []genengine.Arg, sc *scope.Scope) *semantic.Function {
	return genengine.Instantiate(&g.Engine, args,
		func() *semantic.Function {
			fn := &semantic.Function{AST: g.AST, Named: semantic.ChildName(g.Named, args), Owner: g.Owner, Docs: g.Docs, Annotations: g.Annotations}
			return fn
		},
		func(fn *semantic.Function) {
			childScope := sc.NewChild(fn)
			u.bindGenericArgs(childScope, g.Params, args)
			sig := u.newFunctionSignature(g.AST, childScope, g.Owner)
			fn.Signature = sig
			fn.IsStatic, fn.IsConstructor, fn.IsDestructor, fn.Operator = g.AST.IsStatic, g.AST.IsConstructor, g.AST.IsDestructor, g.AST.Operator
			u.elaborateFunctionBody(fn, childScope)
		})
}

func (u *Unit) instantiateAlias(g *semantic.GenericAlias, args []genengine.Arg, sc *scope.Scope) *semantic.Alias {
	return genengine.Instantiate(&g.Engine, args,
		func() *semantic.Alias {
			return &semantic.Alias{AST: g.AST, Named: semantic.ChildName(g.Named, args), Docs: g.Docs, Annotations: g.Annotations}
		},
		func(a *semantic.Alias) {
			childScope := sc.NewChild(a)
			u.bindGenericArgs(childScope, g.Params, args)
			a.Target = u.resolveAliasTarget(g.AST, childScope)
		})
}

func (u *Unit) resolveAliasTarget(ad *ast.AliasDecl, sc *scope.Scope) semantic.Entity {
	if tr, ok := ad.Target.(ast.TypeRef); ok {
		return u.resolveType(tr, sc)
	}
	return u.expr(ad.Target, sc, nil)
}

// bindGenericArgs declares each generic parameter's bound argument in
// childScope, as a type binding (for the parameter's own use as a
// TypeRef inside the body) or as a folded Constant (for a
// value-parameter's use as an expression).
func (u *Unit) bindGenericArgs(childScope *scope.Scope, params *ast.GenericParams, args []genengine.Arg) {
	for i, p := range params.Params {
		switch a := args[i].(type) {
		case semantic.TypeArg:
			childScope.Declare(p.Name.Value, a.Type)
		case semantic.ConstArg:
			childScope.Declare(p.Name.Value, &semantic.Constant{Value: a.Value})
		}
	}
}

// resolveAnnotations converts ast-level annotations to their semantic
// form (SPEC_FULL.md §3.6), resolving each argument expression in sc.
func (u *Unit) resolveAnnotations(anns ast.Annotations, sc *scope.Scope) semantic.Annotations {
	if len(anns) == 0 {
		return nil
	}
	out := make(semantic.Annotations, len(anns))
	for i, a := range anns {
		args := make([]semantic.Expression, len(a.Arguments))
		for j, arg := range a.Arguments {
			args[j] = u.expr(arg, sc, nil)
		}
		out[i] = semantic.Annotation{Name: a.Name.Value, Arguments: args}
	}
	return out
}

// checkDeprecated raises a non-fatal Deprecated diagnostic when ann
// carries @deprecated (SPEC_FULL.md §3.6), quoting the annotation's
// first string-literal argument as the reason if one was given.
func (u *Unit) checkDeprecated(ann semantic.Annotations, name string, at diag.Position) {
	a, ok := ann.Get("deprecated")
	if !ok {
		return
	}
	if len(a.Arguments) > 0 {
		if c, ok := a.Arguments[0].(*semantic.Constant); ok && c.Value.Kind == semantic.ConstString {
			u.Diags.Add(diag.Deprecated, at, "'%s' is deprecated: %s", name, c.Value.Str)
			return
		}
	}
	u.Diags.Add(diag.Deprecated, at, "'%s' is deprecated", name)
}
