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

package ast

// ClassDecl is «class Name<Generics> extends P1, P2 { fields; methods }».
// Generic is nil for a non-generic class.
type ClassDecl struct {
	at
	Annotations Annotations
	Docs        Docs
	Named       *Identifier
	Generic     *GenericParams
	Parents     []*ScopedName
	Fields      []*FieldDecl
	Methods     []*FunctionDecl
}

func (*ClassDecl) isNode() {}

// FieldDecl is a class member or global variable declaration.
type FieldDecl struct {
	at
	Annotations Annotations
	Docs        Docs
	Named       *Identifier
	Type        TypeRef
	Default     Node // nil if the field has no explicit default
}

func (*FieldDecl) isNode() {}

// ParamDecl is one parameter of a FunctionDecl.
type ParamDecl struct {
	at
	Named *Identifier
	Type  TypeRef
}

func (*ParamDecl) isNode() {}

// FunctionDecl is a top-level function, class method, constructor, or
// destructor. Operator overload methods set Operator to the
// overloaded symbol (spec §4.3.5); ordinary methods leave it empty.
type FunctionDecl struct {
	at
	Annotations  Annotations
	Docs         Docs
	Named        *Identifier
	Generic      *GenericParams
	IsStatic     bool
	IsConstructor bool
	IsDestructor bool
	Operator     string // e.g. "+", "[]", "cast"; empty for a plain-named function
	Params       []*ParamDecl
	Variadic     bool
	Return       TypeRef // nil for void
	Block        *Block  // nil for an extern declaration
}

func (*FunctionDecl) isNode() {}

// AliasDecl is «alias Name<Generics> = target», where target is either
// a TypeRef or a constant expression Node (spec §3.4).
type AliasDecl struct {
	at
	Annotations Annotations
	Docs        Docs
	Named       *Identifier
	Generic     *GenericParams
	Target      Node
}

func (*AliasDecl) isNode() {}
