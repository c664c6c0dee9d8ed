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

// Statement is any resolved statement-level node the compiler package
// walks to emit SSA (spec §4.3's elaborator, operating one level above
// expressions).
type Statement interface {
	Entity
	isStatement()
}

// DeclareLocal introduces Local into the enclosing block's scope
// (spec's "declare" form); Local.Init, if non-nil, is its initializer.
type DeclareLocal struct {
	AST   *ast.DeclareLocal
	Local *Local
}

func (*DeclareLocal) isEntity()            {}
func (*DeclareLocal) isStatement()         {}
func (d *DeclareLocal) EntityName() string { return "declare " + d.Local.Named }

// Assign is a resolved «target OP= value» (spec §4.3.1): target must be
// addressable (is_alloca); compound operators are expanded to an
// ordinary BinaryOp over a read of Target by the resolver so the
// compiler only ever lowers a plain store here.
type Assign struct {
	AST    *ast.Assign
	Target Expression
	Value  Expression
}

func (*Assign) isEntity()            {}
func (*Assign) isStatement()         {}
func (a *Assign) EntityName() string { return "assign" }

// ExpressionStatement discards the Value of Expression, executed for
// its side effects only (e.g. a bare call).
type ExpressionStatement struct {
	AST        *ast.ExpressionStatement
	Expression Expression
}

func (*ExpressionStatement) isEntity()            {}
func (*ExpressionStatement) isStatement()         {}
func (e *ExpressionStatement) EntityName() string { return "expr" }

// Branch is «if (cond) true else false» (spec §4.3.1's control flow).
type Branch struct {
	AST       *ast.Branch
	Condition Expression
	True      Statements
	False     Statements // empty if there is no else
}

func (*Branch) isEntity()            {}
func (*Branch) isStatement()         {}
func (b *Branch) EntityName() string { return "if" }

// While is «while (cond) block».
type While struct {
	AST       *ast.While
	Condition Expression
	Block     Statements
}

func (*While) isEntity()            {}
func (*While) isStatement()         {}
func (w *While) EntityName() string { return "while" }

// ForIn is «for (x in iterable) block», resolved against the
// next()-returning-Optional iteration protocol SPEC_FULL.md §4.5
// settles on: NextMethod returns a class exposing a bool "has_value"
// field and a "value" field of Variable's type, per iteration.
type ForIn struct {
	AST        *ast.ForIn
	Variable   *Local
	Iterable   Expression
	NextMethod *Function
	Block      Statements
}

func (*ForIn) isEntity()            {}
func (*ForIn) isStatement()         {}
func (f *ForIn) EntityName() string { return "for" }

// Return is «return» / «return value».
type Return struct {
	AST   *ast.Return
	Value Expression // nil for a void return
}

func (*Return) isEntity()            {}
func (*Return) isStatement()         {}
func (r *Return) EntityName() string { return "return" }

// Break exits the innermost enclosing While or ForIn.
type Break struct {
	AST *ast.Break
}

func (*Break) isEntity()            {}
func (*Break) isStatement()         {}
func (*Break) EntityName() string   { return "break" }

// Assert is a debug-only runtime check (spec's fault taxonomy does not
// define its own kind for this; a failed Assert lowers to a trap call
// on the SSA builder, not a diagnostic).
type Assert struct {
	AST       *ast.Assert
	Condition Expression
	Message   string
}

func (*Assert) isEntity()            {}
func (*Assert) isStatement()         {}
func (*Assert) EntityName() string   { return "assert" }
