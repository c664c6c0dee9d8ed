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

// TypeRef is the syntax-level spelling of a type: a name, or a
// compound built from «*», «&», «[]», or generic arguments. The
// resolver's resolveType turns a TypeRef into a semantic.Type.
type TypeRef interface {
	Node
	isTypeRef()
}

// NamedTypeRef is a plain or qualified type name, e.g. «i32» or «A::B».
type NamedTypeRef struct {
	at
	Name *ScopedName
}

func (*NamedTypeRef) isNode()    {}
func (*NamedTypeRef) isTypeRef() {}

// PointerTypeRef is «T*» or «const T*» / «T* const».
type PointerTypeRef struct {
	at
	To    TypeRef
	Const bool
}

func (*PointerTypeRef) isNode()    {}
func (*PointerTypeRef) isTypeRef() {}

// ReferenceTypeRef is «T&».
type ReferenceTypeRef struct {
	at
	To TypeRef
}

func (*ReferenceTypeRef) isNode()    {}
func (*ReferenceTypeRef) isTypeRef() {}

// ArrayTypeRef is «T[n]» (Size non-nil) or «T[]» (open, unsized; the
// resolver rejects an open array wherever it appears, including behind
// a pointer or reference).
type ArrayTypeRef struct {
	at
	Of   TypeRef
	Size Node // constant expression, nil for an open array
}

func (*ArrayTypeRef) isNode()    {}
func (*ArrayTypeRef) isTypeRef() {}

// GenericParam is one entry of a generic parameter list: a
// type-parameter (ValueType nil) or a value-parameter (ValueType
// gives its declared type).
type GenericParam struct {
	at
	Name      *Identifier
	ValueType TypeRef // nil for a type-parameter
}

func (*GenericParam) isNode() {}

// GenericParams is the «<T, N: i32>» clause on a generic declaration.
type GenericParams struct {
	at
	Params []*GenericParam
}

func (*GenericParams) isNode() {}
