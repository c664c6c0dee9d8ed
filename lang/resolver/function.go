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
	"github.com/rift-lang/riftc/scope"
	"github.com/rift-lang/riftc/semantic"
)

// elaborateFunctionBody resolves fn's block against its own parameter
// scope (spec §4.4), skipping extern declarations (fn.AST.Block == nil).
func (u *Unit) elaborateFunctionBody(fn *semantic.Function, sc *scope.Scope) {
	if fn.AST == nil || fn.AST.Block == nil {
		return
	}
	fnScope := sc.NewChild(fn)
	if fn.Owner != nil && !fn.IsStatic {
		this := &semantic.Parameter{Named: "this", Type: &semantic.PointerType{Element: fn.Owner}}
		fnScope.Declare(this.Named, this)
	}
	for _, p := range fn.Signature.Parameters {
		fnScope.Declare(p.Named, p)
	}
	ctx := &funcCtx{Return: fn.Signature.Return}
	fn.Block = u.block(fn.AST.Block, fnScope, ctx)
}
