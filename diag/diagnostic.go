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

import (
	"fmt"
	"sort"
)

// Fatal is the sentinel panic value used to unwind out of an elaboration
// in progress once a fatal diagnostic (cycle, internal invariant) has
// been recorded. It is recovered at the List.Collect boundary.
const Fatal = constError("diag: fatal, aborting translation unit")

type constError string

func (c constError) Error() string { return string(c) }

// Diagnostic is a single entry in the closed taxonomy of spec §7.
type Diagnostic struct {
	Kind     Kind
	Category string // optional sub-classification, e.g. ArithmeticDomain
	At       Position
	Message  string
}

func (d Diagnostic) String() string {
	if d.Category != "" {
		return fmt.Sprintf("%s: %s [%s/%s]", d.At, d.Message, d.Kind, d.Category)
	}
	return fmt.Sprintf("%s: %s [%s]", d.At, d.Message, d.Kind)
}

// List accumulates diagnostics for a single compilation unit. It is
// held by resolver.Unit (its Diags field) or returned by
// compiler.Compile, and is not
// safe for concurrent use — elaboration of one unit is single-threaded
// per spec §5.
type List struct {
	entries  []Diagnostic
	poisoned map[interface{}]bool
}

// Add records a diagnostic. Message is formatted with fmt.Sprintf when
// args are supplied.
func (l *List) Add(kind Kind, at Position, message string, args ...interface{}) {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	l.entries = append(l.entries, Diagnostic{Kind: kind, At: at, Message: message})
	if kind.Fatal() {
		panic(Fatal)
	}
}

// AddCategory is like Add but tags the diagnostic with a sub-category,
// e.g. ArithmeticDomain for division by a literal zero (spec §8).
func (l *List) AddCategory(kind Kind, category string, at Position, message string, args ...interface{}) {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	l.entries = append(l.entries, Diagnostic{Kind: kind, Category: category, At: at, Message: message})
	if kind.Fatal() {
		panic(Fatal)
	}
}

// Poisoned reports whether a diagnostic has already been rooted at node
// and, if not, marks it as poisoned for future calls. The elaborator
// calls this before emitting a second diagnostic for the same
// expression node, per spec §7's cascade-suppression rule.
func (l *List) Poisoned(node interface{}) bool {
	if l.poisoned == nil {
		l.poisoned = map[interface{}]bool{}
	}
	if l.poisoned[node] {
		return true
	}
	l.poisoned[node] = true
	return false
}

// Merge appends other's entries to l, for combining diagnostics from
// independently-run passes (resolver and compiler, or concurrently
// pre-loaded units) before a single sorted Entries() call.
func (l *List) Merge(other *List) {
	if other == nil {
		return
	}
	l.entries = append(l.entries, other.entries...)
}

// Entries returns the accumulated diagnostics, sorted by file then
// position as required by spec §7's user-visible contract.
func (l *List) Entries() []Diagnostic {
	out := make([]Diagnostic, len(l.entries))
	copy(out, l.entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out
}

// HasErrors reports whether any recoverable (non-advisory) diagnostic
// was recorded — the condition under which the driver's exit status
// must be non-zero.
func (l *List) HasErrors() bool {
	for _, e := range l.entries {
		if e.Kind.Recoverable() {
			return true
		}
	}
	return false
}

// Collect runs action, recovering a panic(Fatal) raised by a fatal
// diagnostic and returning normally. Any other panic propagates.
func (l *List) Collect(action func()) {
	defer func() {
		if r := recover(); r != nil {
			if r == Fatal {
				return
			}
			panic(r)
		}
	}()
	action()
}
