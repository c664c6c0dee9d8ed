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

// Number is an untyped numeric literal; the resolver infers its
// concrete type from context (spec's inference on literals).
type Number struct {
	at
	Value string // the literal text, parsed per the destination type
}

func (*Number) isNode() {}

// StringLit is a «"..."» literal.
type StringLit struct {
	at
	Value string
}

func (*StringLit) isNode() {}

// CharLit is a «'x'» literal.
type CharLit struct {
	at
	Value rune
}

func (*CharLit) isNode() {}

// BoolLit is «true» or «false».
type BoolLit struct {
	at
	Value bool
}

func (*BoolLit) isNode() {}

// NullLit is «null».
type NullLit struct {
	at
}

func (*NullLit) isNode() {}
