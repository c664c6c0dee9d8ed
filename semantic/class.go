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

// Field is one class property, (name, Type) per spec §3.2.
type Field struct {
	AST         *ast.FieldDecl
	Annotations Annotations
	Docs        Documentation
	Named       string
	Type        Type
	Default     Expression // nil if the field has no default
}

// ClassType extends Type with inheritance, members and layout (spec
// §3.2). Multiple inheritance is allowed; linearization is
// left-to-right as the Parents slice is declared.
type ClassType struct {
	AST         *ast.ClassDecl
	Annotations Annotations
	Docs        Documentation
	Named       string
	Parents     []*ClassType
	Fields      []*Field
	Methods     []*Function
	scope       Owner // the Namespace or ClassType this class is nested in, for qualified-name lookup
}

func (*ClassType) isEntity() {}
func (*ClassType) isType()   {}
func (*ClassType) isOwner()  {}
func (c *ClassType) EntityName() string { return c.Named }
func (c *ClassType) ASTNode() ast.Node  { return c.AST }

// Field looks up a property declared directly on c (not its parents).
func (c *ClassType) Field(name string) (*Field, bool) {
	for _, f := range c.Fields {
		if f.Named == name {
			return f, true
		}
	}
	return nil, false
}

// Method looks up a method (including @constructor/@destructor)
// declared directly on c.
func (c *ClassType) Method(name string) (*Function, bool) {
	for _, m := range c.Methods {
		if m.Named == name {
			return m, true
		}
	}
	return nil, false
}

// Constructor returns c's user-defined @constructor, if any.
func (c *ClassType) Constructor() (*Function, bool) {
	for _, m := range c.Methods {
		if m.IsConstructor {
			return m, true
		}
	}
	return nil, false
}

// Destructor returns c's user-defined @destructor, if any.
func (c *ClassType) Destructor() (*Function, bool) {
	for _, m := range c.Methods {
		if m.IsDestructor {
			return m, true
		}
	}
	return nil, false
}

// Operator returns the method overloading operator sym on c (spec
// §4.3.5), if declared directly on c.
func (c *ClassType) Operator(sym string) (*Function, bool) {
	for _, m := range c.Methods {
		if m.Operator == sym {
			return m, true
		}
	}
	return nil, false
}

// IsDescendantOf reports whether parent appears in c's transitive,
// left-to-right linearized parent chain. It returns only that yes/no
// answer; the index path to the ancestor comes from the resolver's
// upcastPath. Relevant to the upcast rule (spec §4.3.2, §8's "cast(c, Pi) shifts the address by
// sum of preceding parents' sizes").
func (c *ClassType) IsDescendantOf(parent *ClassType) bool {
	for _, p := range c.Parents {
		if p == parent || p.IsDescendantOf(parent) {
			return true
		}
	}
	return false
}

// DataLayout is the subset of the SSA builder's data-layout queries
// (spec §6.1's size_of/offset_of) the class layout computation needs.
// It is implemented by the compiler package's codegen adapter; kept as
// an interface here so semantic does not depend on codegen.
type DataLayout interface {
	SizeOf(t Type) uint64
}

// Size returns c's total size: the sum of its parents' sizes (in
// declared, left-to-right order) plus its own fields' sizes, per the
// "naive left-to-right packing" rule of spec §3.2.
func (c *ClassType) Size(dl DataLayout) uint64 {
	var sz uint64
	for _, p := range c.Parents {
		sz += p.Size(dl)
	}
	for _, f := range c.Fields {
		sz += dl.SizeOf(f.Type)
	}
	return sz
}

// ParentOffset returns the byte offset of c.Parents[i] within c: the
// cumulative size of the preceding parents (spec's "padding for
// upcast", §3.2 and §8's upcast invariant).
func (c *ClassType) ParentOffset(dl DataLayout, i int) uint64 {
	var off uint64
	for j := 0; j < i; j++ {
		off += c.Parents[j].Size(dl)
	}
	return off
}

// FieldOffset returns the byte offset of field index i within c,
// counting past all parents first (parents occupy the leading bytes).
func (c *ClassType) FieldOffset(dl DataLayout, i int) uint64 {
	var off uint64
	for _, p := range c.Parents {
		off += p.Size(dl)
	}
	for j := 0; j < i; j++ {
		off += dl.SizeOf(c.Fields[j].Type)
	}
	return off
}
