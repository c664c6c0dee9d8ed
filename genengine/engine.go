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

// Package genengine implements the memoizing generic-instantiation
// engine described in spec §4.2: a pure function of the tuple
// (generic, arguments), memoized on the generic's own child cache, and
// tolerant of a recursive reference reaching back into an
// instantiation already in progress.
//
// The package is deliberately ignorant of the semantic package's
// entity types (that would create an import cycle, since semantic's
// GenericClass/GenericFunction/GenericAlias embed Generic[C]); callers
// supply the concrete child type C and an Arg implementation capable
// of comparing itself against another Arg.
package genengine

// Arg is one bound generic argument — either a type or a constant
// value (spec restricts value-parameters to literal constants, see
// SPEC_FULL.md §4.7). EqualArg must implement the pairwise comparison
// spec §4.2 requires: types compare via semantic.Equal, values compare
// structurally.
type Arg interface {
	EqualArg(other Arg) bool
}

// ArgsEqual reports whether two argument tuples match pairwise, per
// spec §4.2.
func ArgsEqual(a, b []Arg) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].EqualArg(b[i]) {
			return false
		}
	}
	return true
}

// instance is one memoized child of a Generic[C]: the argument tuple
// it was instantiated with, and the resulting entity.
type instance[C any] struct {
	args   []Arg
	entity C
}

// Generic is a generic entity factory (spec's GenericType, generalized
// over the concrete child kind C — *semantic.ClassType for a
// GenericClass, *semantic.Function for a GenericFunction, *semantic.Alias
// for a GenericAlias). It owns the memoized list of children keyed by
// argument tuple.
type Generic[C any] struct {
	Name     string
	children []*instance[C]
}

// Children returns the memoized instances created so far, in creation
// order. Exposed for diagnostics and tests; callers must not mutate
// the returned entities' identity, only their contents.
func (g *Generic[C]) Children() []C {
	out := make([]C, len(g.children))
	for i, inst := range g.children {
		out[i] = inst.entity
	}
	return out
}

// Instantiate finds or creates the child entity for args (spec §4.2).
//
// newStub must construct a fully-identified-but-empty entity: its type
// shell and identity are fixed, but its members/body are not yet
// populated. elaborate then fills the stub in place. If, while
// elaborate runs, a recursive reference reaches back to the same
// (g, args) pair, the recursive Instantiate call observes the instance
// already appended to g.children (inserted before elaborate was
// called) and returns the in-progress stub directly without
// re-entering elaborate — this is what makes cyclic type/method
// references (spec §9 "Cyclic type graphs") safe.
//
// Instantiate is pure with respect to (g, args): repeat calls with an
// argument tuple that already matches a memoized child return that
// child's exact entity, not merely an equal one (spec §8's identity
// invariant).
func Instantiate[C any](g *Generic[C], args []Arg, newStub func() C, elaborate func(stub C)) C {
	for _, inst := range g.children {
		if ArgsEqual(inst.args, args) {
			return inst.entity
		}
	}
	stub := newStub()
	g.children = append(g.children, &instance[C]{args: args, entity: stub})
	elaborate(stub)
	return stub
}
