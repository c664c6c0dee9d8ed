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

package diag

// Kind is one entry in the closed taxonomy of diagnostics the resolver,
// generic engine and elaborator may raise. See spec §7.
type Kind string

// The closed set. Fatal kinds abort the current translation unit; all
// others are non-fatal and permit continued elaboration with a
// poisoned value.
const (
	UnknownName      Kind = "UnknownName"
	AmbiguousName    Kind = "AmbiguousName"
	NotAScope        Kind = "NotAScope"
	ExpectedType     Kind = "ExpectedType"
	ExpectedValue    Kind = "ExpectedValue"
	ExpectedClass    Kind = "ExpectedClass"

	GenericArityMismatch        Kind = "GenericArityMismatch"
	GenericArgumentKindMismatch Kind = "GenericArgumentKindMismatch"
	GenericInstantiationCycle   Kind = "GenericInstantiationCycle" // fatal

	TypeMismatch      Kind = "TypeMismatch"
	NotCastable       Kind = "NotCastable"
	NotAssignable     Kind = "NotAssignable"
	NotIndexable      Kind = "NotIndexable"
	NotCallable       Kind = "NotCallable"
	WrongArgumentCount Kind = "WrongArgumentCount"

	InvalidOperator    Kind = "InvalidOperator"
	NoMatchingOverload Kind = "NoMatchingOverload"

	RedeclaredName       Kind = "RedeclaredName"
	UninitializedConst   Kind = "UninitializedConst"
	BreakOutsideLoop     Kind = "BreakOutsideLoop"
	ReturnTypeMismatch   Kind = "ReturnTypeMismatch"

	InternalInvariant Kind = "InternalInvariant" // fatal, should never fire on correct input

	// Deprecated is an [EXPANDED] advisory kind raised by a reference to
	// an entity annotated @deprecated (SPEC_FULL.md §3.6). It is
	// collected and printed like any other diagnostic but never flips
	// exit status on its own.
	Deprecated Kind = "Deprecated"
)

// ArithmeticDomain is the diagnostic category spec §8 requires for
// division-by-literal-zero: it is reported with kind TypeMismatch, but
// carries this category so presentation layers can distinguish it from
// an ordinary type mismatch without widening the closed Kind set.
const ArithmeticDomain = "ArithmeticDomain"

// fatal is the set of kinds that abort the current translation unit
// rather than permitting continued elaboration with a poisoned value.
var fatal = map[Kind]bool{
	GenericInstantiationCycle: true,
	InternalInvariant:         true,
}

// Fatal reports whether a diagnostic of kind k aborts the translation
// unit immediately instead of being recorded and suppressed-cascaded.
func (k Kind) Fatal() bool { return fatal[k] }

// Recoverable reports whether exit status must be flipped non-zero for
// a diagnostic of this kind. Deprecated is advisory only.
func (k Kind) Recoverable() bool { return k != Deprecated }
