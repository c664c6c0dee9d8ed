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

package diag_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rift-lang/riftc/diag"
)

func TestEntriesSortedByFileThenPosition(t *testing.T) {
	var l diag.List
	l.Add(diag.UnknownName, diag.Position{File: "b.rift", Line: 5, Column: 1}, "in b")
	l.Add(diag.UnknownName, diag.Position{File: "a.rift", Line: 9, Column: 1}, "late in a")
	l.Add(diag.UnknownName, diag.Position{File: "a.rift", Line: 2, Column: 3}, "early in a")

	entries := l.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []string{"early in a", "late in a", "in b"}
	for i, e := range entries {
		if e.Message != want[i] {
			t.Fatalf("entry %d: got message %q, want %q", i, e.Message, want[i])
		}
	}
}

func TestHasErrorsIgnoresDeprecatedOnly(t *testing.T) {
	var l diag.List
	l.Add(diag.Deprecated, diag.Position{}, "old api")
	if l.HasErrors() {
		t.Fatalf("a Deprecated-only list must not flip exit status")
	}
	l.Add(diag.UnknownName, diag.Position{}, "oops")
	if !l.HasErrors() {
		t.Fatalf("expected HasErrors once a recoverable kind is present")
	}
}

func TestCollectRecoversFatalPanic(t *testing.T) {
	var l diag.List
	ran := false
	l.Collect(func() {
		ran = true
		l.Add(diag.InternalInvariant, diag.Position{}, "unreachable state")
		t.Fatalf("code after a fatal Add must not run")
	})
	if !ran {
		t.Fatalf("expected the action to run up to the fatal Add")
	}
	entries := l.Entries()
	if len(entries) != 1 || entries[0].Kind != diag.InternalInvariant {
		t.Fatalf("expected the fatal diagnostic to be recorded, got %v", entries)
	}
}

func TestCollectPropagatesOtherPanics(t *testing.T) {
	var l diag.List
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a non-Fatal panic to propagate out of Collect")
		}
	}()
	l.Collect(func() {
		panic("not a diagnostic")
	})
}

func TestPoisonedSuppressesRepeatedDiagnosisOfSameNode(t *testing.T) {
	var l diag.List
	node := new(int)
	if l.Poisoned(node) {
		t.Fatalf("first call for a node must report not-yet-poisoned")
	}
	if !l.Poisoned(node) {
		t.Fatalf("second call for the same node must report already-poisoned")
	}
	other := new(int)
	if l.Poisoned(other) {
		t.Fatalf("a distinct node must not be poisoned by an unrelated one")
	}
}

func TestMergeAppendsEntriesFromOther(t *testing.T) {
	var a, b diag.List
	a.Add(diag.UnknownName, diag.Position{File: "x.rift", Line: 1}, "from a")
	b.Add(diag.TypeMismatch, diag.Position{File: "x.rift", Line: 2}, "from b")

	a.Merge(&b)
	entries := a.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 merged entries, got %d", len(entries))
	}
	if entries[0].Message != "from a" || entries[1].Message != "from b" {
		t.Fatalf("unexpected merged entries: %v", entries)
	}
}

func TestMergeNilIsNoOp(t *testing.T) {
	var a diag.List
	a.Add(diag.UnknownName, diag.Position{}, "solo")
	a.Merge(nil)
	if len(a.Entries()) != 1 {
		t.Fatalf("merging nil must not change the entry count")
	}
}

func TestDiagnosticStringIncludesCategoryWhenPresent(t *testing.T) {
	var l diag.List
	l.AddCategory(diag.TypeMismatch, diag.ArithmeticDomain, diag.Position{File: "f.rift", Line: 3, Column: 4}, "divide by zero")
	s := l.Entries()[0].String()
	want := "f.rift:3:4: divide by zero [TypeMismatch/ArithmeticDomain]"
	if s != want {
		t.Fatalf("got %q, want %q", s, want)
	}
}

func TestKindFatalAndRecoverable(t *testing.T) {
	if !diag.InternalInvariant.Fatal() {
		t.Fatalf("InternalInvariant must be fatal")
	}
	if !diag.GenericInstantiationCycle.Fatal() {
		t.Fatalf("GenericInstantiationCycle must be fatal")
	}
	if diag.UnknownName.Fatal() {
		t.Fatalf("UnknownName must not be fatal")
	}
	if diag.Deprecated.Recoverable() {
		t.Fatalf("Deprecated must not be recoverable")
	}
}

func TestMergeProducesExpectedEntrySlice(t *testing.T) {
	var a, b diag.List
	a.Add(diag.UnknownName, diag.Position{File: "x.rift", Line: 1}, "from a")
	b.AddCategory(diag.TypeMismatch, diag.ArithmeticDomain, diag.Position{File: "x.rift", Line: 2}, "from b")
	a.Merge(&b)

	want := []diag.Diagnostic{
		{Kind: diag.UnknownName, At: diag.Position{File: "x.rift", Line: 1}, Message: "from a"},
		{Kind: diag.TypeMismatch, Category: diag.ArithmeticDomain, At: diag.Position{File: "x.rift", Line: 2}, Message: "from b"},
	}
	if diff := cmp.Diff(want, a.Entries()); diff != "" {
		t.Fatalf("unexpected entries (-want +got):\n%s", diff)
	}
}

func TestPositionBeforeOrdersByFileThenLineThenColumn(t *testing.T) {
	a := diag.Position{File: "a.rift", Line: 1, Column: 1}
	b := diag.Position{File: "a.rift", Line: 1, Column: 2}
	c := diag.Position{File: "b.rift", Line: 1, Column: 1}
	if !a.Before(b) {
		t.Fatalf("expected a before b (same line, earlier column)")
	}
	if !b.Before(c) {
		t.Fatalf("expected b before c (earlier file)")
	}
	if c.Before(a) {
		t.Fatalf("c must not sort before a")
	}
}
