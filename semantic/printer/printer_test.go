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

package printer_test

import (
	"strings"
	"testing"

	"github.com/rift-lang/riftc/semantic"
	"github.com/rift-lang/riftc/semantic/printer"
)

func TestWriteExpressionBinaryOp(t *testing.T) {
	p := printer.New()
	p.WriteExpression(&semantic.BinaryOp{
		Operator: "+",
		LHS:      &semantic.Constant{Value: semantic.NewIntConst(semantic.Int32Type, 1)},
		RHS:      &semantic.Constant{Value: semantic.NewIntConst(semantic.Int32Type, 2)},
		Type:     semantic.Int32Type,
	})
	got := p.String()
	if got != "1 + 2" {
		t.Fatalf("got %q, want %q", got, "1 + 2")
	}
}

func TestWriteFunctionSignatureAndBody(t *testing.T) {
	param := &semantic.Parameter{Named: "x", Type: semantic.Int32Type}
	local := &semantic.Local{Named: "y", Type: semantic.Int32Type, Init: &semantic.ParameterRef{Parameter: param}}
	fn := &semantic.Function{
		Named: "double",
		Signature: &semantic.FunctionType{
			Parameters: []*semantic.Parameter{param},
			Return:     semantic.Int32Type,
		},
		Block: semantic.Statements{
			&semantic.DeclareLocal{Local: local},
			&semantic.Return{Value: &semantic.BinaryOp{
				Operator: "+",
				LHS:      &semantic.LocalRef{Local: local},
				RHS:      &semantic.LocalRef{Local: local},
				Type:     semantic.Int32Type,
			}},
		},
	}

	p := printer.New()
	p.WriteFunction(fn)
	got := p.String()

	for _, want := range []string{"i32 double(i32 x)", "i32 y = x", "return y + y"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestWriteTypePointerAndArray(t *testing.T) {
	p := printer.New()
	p.WriteType(&semantic.PointerType{Element: semantic.Uint8Type})
	if got := p.String(); got != "u8*" {
		t.Fatalf("got %q, want %q", got, "u8*")
	}

	p2 := printer.New()
	p2.WriteType(&semantic.ArrayType{Element: semantic.Int32Type, Len: 4})
	if got := p2.String(); got != "i32[4]" {
		t.Fatalf("got %q, want %q", got, "i32[4]")
	}
}
