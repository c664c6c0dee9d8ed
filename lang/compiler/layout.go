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

// Package compiler is the SSA-lowering adapter of spec §4.3/§6.1: it
// walks an already name-resolved, type-elaborated semantic tree (built
// by lang/resolver) and emits the corresponding sequence of calls on
// the abstract codegen.Builder. It performs no further name
// resolution or overload selection — every Call/Cast/FieldRef node it
// sees already names a concrete Function/Field.
package compiler

import (
	"github.com/rift-lang/riftc/core/codegen"
	"github.com/rift-lang/riftc/semantic"
)

// layout adapts a codegen.Builder's scalar size_of query into
// semantic.ClassType's DataLayout interface, letting ClassType.Size
// and FieldOffset compute struct layout without semantic importing
// codegen directly (see semantic/class.go's DataLayout doc comment).
type layout struct {
	b codegen.Builder
}

func (l layout) SizeOf(t semantic.Type) uint64 {
	switch t := t.(type) {
	case *semantic.IntegerType:
		return l.b.SizeOf(codegen.KindInt, t.Bits)
	case *semantic.FloatType:
		return l.b.SizeOf(codegen.KindFloat, t.Bits)
	case *semantic.PointerType, *semantic.ReferenceType:
		return l.b.PointerSize()
	case *semantic.ArrayType:
		return t.Len * l.SizeOf(t.Element)
	case *semantic.ClassType:
		return t.Size(l)
	default:
		return 0
	}
}

// isSRet reports whether fn's return type crosses spec §3.2's
// sret threshold (a struct larger than SRetThreshold pointer widths
// returns via a hidden pointer parameter instead of in registers).
func isSRet(l layout, t semantic.Type) bool {
	ct, ok := t.(*semantic.ClassType)
	if !ok {
		return false
	}
	if _, ok := ct.Annotations.Get("no_sret"); ok {
		return false
	}
	return ct.Size(l) > semantic.SRetThreshold*l.b.PointerSize()
}
