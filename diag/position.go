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

// Package diag holds the closed diagnostic taxonomy emitted by the
// resolver, generic engine and elaborator, and the position type used
// to locate a diagnostic in source.
//
// The CORE does not own a lexer or parser (those are external
// collaborators, see spec §1), so Position is a minimal value the
// syntax tree carries alongside each node rather than a rich
// concrete-syntax-tree fragment.
package diag

import "fmt"

// Position locates a diagnostic in a source file.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return "-"
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Before reports whether p sorts earlier than o: by file, then line, then
// column. Used to satisfy the "sorted by file then position" contract in
// spec §7.
func (p Position) Before(o Position) bool {
	if p.File != o.File {
		return p.File < o.File
	}
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}
