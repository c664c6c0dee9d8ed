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

// resolveType turns a TypeRef into a semantic.Type, per spec §4.3.2's
// type grammar.
func (u *Unit) resolveType(tr ast.TypeRef, sc *scope.Scope) semantic.Type {
	switch tr := tr.(type) {
	case *ast.NamedTypeRef:
		e := u.resolveScopedName(tr.Name, sc)
		e = semantic.ResolveAlias(e)
		if ct, ok := e.(*semantic.ClassType); ok {
			u.checkDeprecated(ct.Annotations, ct.Named, tr.Pos())
			return ct
		}
		if t, ok := e.(semantic.Type); ok {
			return t
		}
		if e != nil {
			u.Diags.Add(diag.ExpectedType, tr.Pos(), "'%s' is not a type", scopedNameString(tr.Name))
		}
		return semantic.ErrorType
	case *ast.PointerTypeRef:
		return &semantic.PointerType{Element: u.resolveType(tr.To, sc), IsConst: tr.Const}
	case *ast.ReferenceTypeRef:
		return &semantic.ReferenceType{Element: u.resolveType(tr.To, sc)}
	case *ast.ArrayTypeRef:
		elem := u.resolveType(tr.Of, sc)
		if tr.Size == nil {
			u.Diags.Add(diag.ExpectedValue, tr.Pos(), "open array types are not supported; give the array a size")
			return semantic.ErrorType
		}
		c := u.constExpr(tr.Size, sc)
		return &semantic.ArrayType{Element: elem, Len: c.Int}
	default:
		u.Diags.Add(diag.InternalInvariant, tr.Pos(), "unhandled TypeRef %T", tr)
		return semantic.ErrorType
	}
}

// resolveScopedName implements spec §4.1's qualified/unqualified lookup
// algorithm and, when the name carries generic arguments, delegates to
// the generic engine (spec §4.2) to materialize the monomorphized
// entity.
func (u *Unit) resolveScopedName(n *ast.ScopedName, sc *scope.Scope) semantic.Entity {
	var base semantic.Entity
	if n.Qualifier != nil {
		q := u.resolveScopedName(n.Qualifier, sc)
		q = semantic.ResolveAlias(q)
		owner, ok := q.(semantic.Owner)
		if !ok {
			u.Diags.Add(diag.NotAScope, n.Pos(), "'%s' is not a namespace or class", scopedNameString(n.Qualifier))
			return semantic.ErrorType
		}
		base = u.lookupInOwner(owner, n.Name.Value, n.Pos())
	} else {
		e, _, ok := sc.Lookup(n.Name.Value)
		if !ok {
			u.Diags.Add(diag.UnknownName, n.Pos(), "unknown name '%s'", n.Name.Value)
			return semantic.ErrorType
		}
		base = e.(semantic.Entity)
	}
	if n.Arguments == nil {
		return base
	}
	return u.instantiateGeneric(base, n, sc)
}

// lookupInOwner resolves a name directly bound within owner's own
// scope — the qualified («::») half of spec §4.1's lookup contract,
// which unlike unqualified lookup never consults ancestor scopes.
func (u *Unit) lookupInOwner(owner semantic.Owner, name string, at diag.Position) semantic.Entity {
	switch owner := owner.(type) {
	case *semantic.Namespace:
		if e, ok := owner.Scope.DeclaredHere(name); ok {
			return e.(semantic.Entity)
		}
	case *semantic.ClassType:
		if f, ok := owner.Field(name); ok {
			return &fieldEntity{f}
		}
		if m, ok := owner.Method(name); ok {
			return m
		}
	}
	u.Diags.Add(diag.UnknownName, at, "'%s' has no member '%s'", owner.EntityName(), name)
	return semantic.ErrorType
}

// fieldEntity adapts a *semantic.Field (which is not itself an Entity,
// since a Field only exists in the context of an object) for the rare
// case a qualified lookup names a field directly, e.g. resolving a
// generic value-parameter's declared type through a field. Ordinary
// member access goes through expr's member-access path instead, which
// builds a FieldRef bound to an Object expression.
type fieldEntity struct{ f *semantic.Field }

func (fieldEntity) isEntity() {}
func (e fieldEntity) EntityName() string { return e.f.Named }

func scopedNameString(n *ast.ScopedName) string {
	if n == nil {
		return ""
	}
	if n.Qualifier == nil {
		return n.Name.Value
	}
	return scopedNameString(n.Qualifier) + "::" + n.Name.Value
}

// instantiateGeneric resolves the bound argument tuple of a generic
// reference and drives genengine.Instantiate to produce the
// monomorphized entity (spec §4.2).
func (u *Unit) instantiateGeneric(base semantic.Entity, n *ast.ScopedName, sc *scope.Scope) semantic.Entity {
	var params *ast.GenericParams
	switch base := base.(type) {
	case *semantic.GenericClass:
		params = base.Params
	case *semantic.GenericFunction:
		params = base.Params
	case *semantic.GenericAlias:
		params = base.Params
	default:
		u.Diags.Add(diag.GenericArityMismatch, n.Pos(), "'%s' does not take generic arguments", base.EntityName())
		return semantic.ErrorType
	}
	if len(params.Params) != len(n.Arguments) {
		u.Diags.Add(diag.GenericArityMismatch, n.Pos(), "'%s' expects %d generic argument(s), got %d",
			base.EntityName(), len(params.Params), len(n.Arguments))
		return semantic.ErrorType
	}
	args := make([]genengine.Arg, len(n.Arguments))
	for i, argNode := range n.Arguments {
		p := params.Params[i]
		if p.ValueType == nil {
			if tr, ok := argNode.(ast.TypeRef); ok {
				args[i] = semantic.TypeArg{Type: u.resolveType(tr, sc)}
			} else {
				u.Diags.Add(diag.GenericArgumentKindMismatch, n.Pos(), "argument %d of '%s' must be a type", i, base.EntityName())
				args[i] = semantic.TypeArg{Type: semantic.ErrorType}
			}
		} else {
			c := u.constExpr(argNode, sc)
			wantType := u.resolveType(p.ValueType, sc)
			if !semantic.Equal(c.Type, wantType) {
				u.Diags.Add(diag.GenericArgumentKindMismatch, n.Pos(),
					"argument %d of '%s' must be a constant of type %s", i, base.EntityName(), semantic.TypeName(wantType))
			}
			args[i] = semantic.ConstArg{Value: c}
		}
	}
	switch base := base.(type) {
	case *semantic.GenericClass:
		return u.instantiateClass(base, args, sc)
	case *semantic.GenericFunction:
		return u.instantiateFunction(base, args, sc)
	case *semantic.GenericAlias:
		return u.instantiateAlias(base, args, sc)
	}
	return semantic.ErrorType
}
