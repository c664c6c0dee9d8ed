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

package compiler

import (
	"github.com/rift-lang/riftc/core/codegen"
	"github.com/rift-lang/riftc/semantic"
)

// Value wraps a codegen.Value handle with the bookkeeping spec §3.3
// hangs off every lowered expression: whether the handle is itself a
// pointer to storage (IsAlloca), whether it is a freshly constructed
// temporary that owns a destructor call (IsTemporary), whether taking
// its address is legal (CanBeTaken), and — for a method call lowered
// from a MethodRef — the receiver slot the call was dispatched through
// (CallingVariable). None of this lives on the semantic tree itself:
// it only exists once an expression has actually been lowered to SSA.
type Value struct {
	Ref             codegen.Value
	Type            semantic.Type
	IsAlloca        bool
	IsTemporary     bool
	CanBeTaken      bool
	CallingVariable *Value
}

// load dereferences v if it is an alloca (an l-value pointer), or
// returns v.Ref unchanged if it is already a plain r-value.
func (ctx *funcContext) load(v *Value) codegen.Value {
	if v.IsAlloca {
		return ctx.b.Load(v.Ref)
	}
	return v.Ref
}
