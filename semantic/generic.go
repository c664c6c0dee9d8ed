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

package semantic

import (
	"github.com/rift-lang/riftc/genengine"
	"github.com/rift-lang/riftc/lang/ast"
)

// GenericClass is a class declared with type/value parameters (spec
// §3.2's GenericType / §4.2's generic entity). Each concrete
// instantiation is memoized by genengine.Generic keyed on the bound
// argument tuple.
type GenericClass struct {
	AST         *ast.ClassDecl
	Annotations Annotations
	Docs        Documentation
	Named       string
	Params      *ast.GenericParams
	Engine      genengine.Generic[*ClassType]
}

func (*GenericClass) isEntity()            {}
func (g *GenericClass) EntityName() string { return g.Named }
func (g *GenericClass) ASTNode() ast.Node  { return g.AST }

// GenericFunction is a function or method declared with type/value
// parameters.
type GenericFunction struct {
	AST         *ast.FunctionDecl
	Annotations Annotations
	Docs        Documentation
	Named       string
	Params      *ast.GenericParams
	Owner       *ClassType // non-nil for a generic method
	Engine      genengine.Generic[*Function]
}

func (*GenericFunction) isEntity()            {}
func (g *GenericFunction) EntityName() string { return g.Named }
func (g *GenericFunction) ASTNode() ast.Node  { return g.AST }

// GenericAlias is an alias declared with type/value parameters.
type GenericAlias struct {
	AST         *ast.AliasDecl
	Annotations Annotations
	Docs        Documentation
	Named       string
	Params      *ast.GenericParams
	Engine      genengine.Generic[*Alias]
}

func (*GenericAlias) isEntity()            {}
func (g *GenericAlias) EntityName() string { return g.Named }
func (g *GenericAlias) ASTNode() ast.Node  { return g.AST }

// ChildName renders the mangled name of a generic instantiation, spec
// SPEC_FULL.md §3.7's "Base!Arg1:Arg2" convention. A class child is
// also declared under this name in the unit's root scope; function and
// alias children are not bound in any scope and are reached only
// through Instantiate's memo.
func ChildName(base string, args []genengine.Arg) string {
	name := base + "!"
	for i, a := range args {
		if i > 0 {
			name += ":"
		}
		switch a := a.(type) {
		case TypeArg:
			name += TypeName(a.Type)
		case ConstArg:
			name += a.Value.String()
		}
	}
	return name
}
