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

import "github.com/rift-lang/riftc/lang/ast"

// Parameter is one (name, Type) entry of a FunctionType or Function
// (spec §3.2).
type Parameter struct {
	AST   *ast.ParamDecl
	Named string
	Type  Type
}

func (*Parameter) isEntity()    {}
func (*Parameter) isExpression() {}
func (p *Parameter) EntityName() string   { return p.Named }
func (p *Parameter) ExpressionType() Type { return p.Type }

// FunctionType is spec §3.2's FunctionType: argument list, variadic
// flag, method-ness, sret-ness, and return type.
type FunctionType struct {
	Parameters []*Parameter
	Variadic   bool
	IsMethod   bool
	IsSRet     bool
	Return     Type
}

func (*FunctionType) isEntity() {}
func (*FunctionType) isType()   {}

func (t *FunctionType) EntityName() string {
	name := "fn("
	for i, p := range t.Parameters {
		if i > 0 {
			name += ", "
		}
		name += TypeName(p.Type)
	}
	if t.Variadic {
		name += ", ..."
	}
	return name + "): " + TypeName(t.Return)
}

// SRetThreshold is the struct size (in pointer widths) above which a
// struct return switches to the hidden-sret-pointer convention (spec
// §3.2: "return by hidden pointer when struct > 2 × pointer width").
const SRetThreshold = 2

// Function is a concrete (possibly generic-instantiated) function,
// method, constructor or destructor. Overload sets are modeled as
// multiple *Function values sharing a Named in the same scope (spec
// §4.1, "Overload sets").
type Function struct {
	AST           *ast.FunctionDecl
	Annotations   Annotations
	Docs          Documentation
	Named         string
	Signature     *FunctionType
	IsStatic      bool
	IsConstructor bool
	IsDestructor  bool
	Operator      string // overloaded operator symbol, or "" for a plain name
	Owner         *ClassType // nil for a free function
	Block         Statements
}

func (*Function) isEntity() {}

func (f *Function) EntityName() string { return f.Named }
func (f *Function) ASTNode() ast.Node  { return f.AST }

// FunctionSet groups every free function declared under one name in
// the same scope (spec §4.1, "Overload sets"): a second declaration
// with a different signature grows the set instead of conflicting,
// mirroring how ClassType.Methods already lets a class carry several
// same-named methods.
type FunctionSet struct {
	Named     string
	Functions []*Function
}

func (*FunctionSet) isEntity() {}

func (s *FunctionSet) EntityName() string { return s.Named }

// Statements is a statement sequence (a function or block body).
type Statements []Statement

// Overloadable is the closed set of operator symbols spec §4.3.5 lets
// a class overload via a same-named method.
var Overloadable = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"!": true, "~": true, "^": true, "|": true, "&": true,
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"^=": true, "|=": true, "&=": true,
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
	"[]": true, "->": true, ".": true,
	"<<": true, ">>": true, ">>>": true,
	"<<=": true, ">>=": true, ">>>=": true,
	"cast": true,
}
