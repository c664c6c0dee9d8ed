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
	"github.com/rift-lang/riftc/lang/ast"
	"github.com/rift-lang/riftc/scope"
	"github.com/rift-lang/riftc/semantic"
)

// constExpr evaluates n as a compile-time constant (array sizes,
// generic value-arguments — SPEC_FULL.md §4.7 restricts the latter to
// literals). It accepts any expression that resolves to a Constant: a
// bare literal or a reference to a bound generic value-parameter.
// Anything else raises an ExpectedValue diagnostic and yields a zero
// i32 constant.
func (u *Unit) constExpr(n ast.Node, sc *scope.Scope) semantic.ConstValue {
	e := u.expr(n, sc, nil)
	if c, ok := e.(*semantic.Constant); ok {
		return c.Value
	}
	u.Diags.Add(diag.ExpectedValue, n.Pos(), "expected a compile-time constant")
	return semantic.ConstValue{Kind: semantic.ConstInt, Type: semantic.Int32Type}
}
