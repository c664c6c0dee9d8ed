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

// Alias binds Named to Target within its declaring scope (spec §3.2's
// Alias subvariant). Target may itself be a Type, a Value, or another
// Alias; resolution always follows Target to its non-Alias origin
// before use (see Equal's convention in types.go).
type Alias struct {
	AST         *ast.AliasDecl
	Annotations Annotations
	Docs        Documentation
	Named       string
	Target      Entity
}

func (*Alias) isEntity()            {}
func (a *Alias) EntityName() string { return a.Named }
func (a *Alias) ASTNode() ast.Node  { return a.AST }

// ResolveAlias follows a chain of Aliases to its first non-Alias
// target.
func ResolveAlias(e Entity) Entity {
	for {
		a, ok := e.(*Alias)
		if !ok {
			return e
		}
		e = a.Target
	}
}
