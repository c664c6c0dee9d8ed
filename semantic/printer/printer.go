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

// Package printer provides a human-readable printer for the resolved
// semantic tree, used by tests and debug tooling to dump a Function's
// body without re-deriving surface syntax from the AST.
package printer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/rift-lang/riftc/core/text/reflow"
	"github.com/rift-lang/riftc/semantic"
)

// Printer exposes methods for appending string representations of
// semantic Statements, Expressions and Types. The strings generated
// loosely follow surface syntax but are written to aid debugging, and
// may not be parseable.
type Printer struct {
	reflow *reflow.Writer
	buf    *bytes.Buffer
}

// New returns a new Printer.
func New() *Printer {
	buf := &bytes.Buffer{}
	return &Printer{
		reflow: reflow.New(buf),
		buf:    buf,
	}
}

func (p Printer) String() string {
	if p.reflow == nil {
		return ""
	}
	p.reflow.Flush()
	return p.buf.String()
}

// WriteString appends s to the Printer's buffer.
func (p *Printer) WriteString(s string) {
	p.reflow.Write([]byte(s))
}

// WriteRune appends r to the Printer's buffer.
func (p *Printer) WriteRune(r rune) {
	p.reflow.WriteRune(r)
}

func (p *Printer) list(n int, sep string, write func(i int)) {
	for i := 0; i < n; i++ {
		write(i)
		if i < n-1 {
			p.WriteString(sep)
		}
	}
}

// WriteFunction appends the string representation of f to the
// Printer's buffer.
func (p *Printer) WriteFunction(f *semantic.Function) *Printer {
	switch {
	case f.IsConstructor:
		p.WriteString("@constructor ")
	case f.IsDestructor:
		p.WriteString("@destructor ")
	case f.IsStatic:
		p.WriteString("static ")
	}
	p.WriteType(f.Signature.Return)
	p.WriteRune(' ')
	if f.Owner != nil {
		p.WriteString(semantic.TypeName(f.Owner))
		p.WriteString("::")
	}
	p.WriteString(f.Named)
	p.WriteRune('(')
	params := f.Signature.Parameters
	p.list(len(params), ", ", func(i int) {
		p.WriteType(params[i].Type)
		p.WriteRune(' ')
		p.WriteString(params[i].Named)
	})
	p.WriteString(") ")
	p.WriteStatements(f.Block)
	return p
}

// WriteExpression appends the string representation of n to the
// Printer's buffer.
func (p *Printer) WriteExpression(n semantic.Expression) *Printer {
	switch n := n.(type) {
	case *semantic.Constant:
		p.WriteString(n.Value.String())
	case *semantic.LocalRef:
		p.WriteString(n.Local.Named)
	case *semantic.ParameterRef:
		p.WriteString(n.Parameter.Named)
	case *semantic.GlobalRef:
		p.WriteString(n.Global.Named)
	case *semantic.FieldRef:
		p.WriteExpression(n.Object)
		p.WriteRune('.')
		p.WriteString(n.Field.Named)
	case *semantic.MethodRef:
		p.WriteExpression(n.Object)
		p.WriteRune('.')
		p.WriteString(n.Method.Named)
	case *semantic.Call:
		p.WriteString(n.ResolvedFunction.Named)
		p.WriteRune('(')
		p.list(len(n.Arguments), ", ", func(i int) { p.WriteExpression(n.Arguments[i]) })
		p.WriteRune(')')
	case *semantic.BinaryOp:
		p.WriteExpression(n.LHS)
		p.WriteRune(' ')
		p.WriteString(n.Operator)
		p.WriteRune(' ')
		p.WriteExpression(n.RHS)
	case *semantic.ShortCircuit:
		p.WriteExpression(n.LHS)
		p.WriteRune(' ')
		p.WriteString(n.Operator)
		p.WriteRune(' ')
		p.WriteExpression(n.RHS)
	case *semantic.UnaryOp:
		p.WriteString(n.Operator)
		p.WriteExpression(n.Operand)
	case *semantic.Cast:
		p.WriteString("as!")
		p.WriteType(n.Type)
		p.WriteRune('(')
		p.WriteExpression(n.Object)
		p.WriteRune(')')
	case *semantic.Index:
		p.WriteExpression(n.Object)
		p.WriteRune('[')
		p.WriteExpression(n.Index)
		p.WriteRune(']')
	case *semantic.AddressOf:
		p.WriteRune('&')
		p.WriteExpression(n.Operand)
	case *semantic.Deref:
		p.WriteRune('*')
		p.WriteExpression(n.Operand)
	case *semantic.ClassInitializer:
		p.WriteType(n.Type)
		p.WriteRune('{')
		p.list(len(n.Values), ", ", func(i int) { p.WriteExpression(n.Values[i]) })
		p.WriteRune('}')
	case *semantic.Length:
		p.WriteString("len(")
		p.WriteType(n.Array)
		p.WriteRune(')')
	case *semantic.InlineAsmExpr:
		p.WriteString("asm(...)")
	default:
		panic(fmt.Sprintf("unknown expression type: %T", n))
	}
	return p
}

// WriteType appends the string representation of n to the Printer's
// buffer.
func (p *Printer) WriteType(n semantic.Type) *Printer {
	switch n := n.(type) {
	case *semantic.IntegerType:
		p.WriteString(n.EntityName())
	case *semantic.FloatType:
		p.WriteString(n.EntityName())
	case *semantic.PointerType:
		if n.IsConst {
			p.WriteString("const ")
		}
		p.WriteType(n.Element)
		p.WriteRune('*')
	case *semantic.ReferenceType:
		p.WriteType(n.Element)
		p.WriteRune('&')
	case *semantic.ArrayType:
		p.WriteType(n.Element)
		p.WriteRune('[')
		p.WriteString(strconv.FormatUint(n.Len, 10))
		p.WriteRune(']')
	case *semantic.ClassType:
		p.WriteString(semantic.TypeName(n))
	case *semantic.FunctionType:
		p.WriteType(n.Return)
		p.WriteRune('(')
		p.list(len(n.Parameters), ", ", func(i int) { p.WriteType(n.Parameters[i].Type) })
		p.WriteRune(')')
	default:
		panic(fmt.Sprintf("unknown type: %T", n))
	}
	return p
}

// WriteStatements appends the string representation of a block's
// statements, one per line, to the Printer's buffer.
func (p *Printer) WriteStatements(stmts semantic.Statements) *Printer {
	p.WriteString("{»¶")
	for _, s := range stmts {
		p.WriteStatement(s)
		p.WriteString("¶")
	}
	p.WriteString("«}")
	return p
}

// WriteStatement appends the string representation of n to the
// Printer's buffer.
func (p *Printer) WriteStatement(n semantic.Statement) *Printer {
	switch n := n.(type) {
	case *semantic.DeclareLocal:
		p.WriteType(n.Local.Type)
		p.WriteRune(' ')
		p.WriteString(n.Local.Named)
		if n.Local.Init != nil {
			p.WriteString(" = ")
			p.WriteExpression(n.Local.Init)
		}
	case *semantic.Assign:
		p.WriteExpression(n.Target)
		p.WriteString(" = ")
		p.WriteExpression(n.Value)
	case *semantic.ExpressionStatement:
		p.WriteExpression(n.Expression)
	case *semantic.Branch:
		p.WriteString("if (")
		p.WriteExpression(n.Condition)
		p.WriteString(") ")
		p.WriteStatements(n.True)
		if len(n.False) > 0 {
			p.WriteString(" else ")
			p.WriteStatements(n.False)
		}
	case *semantic.While:
		p.WriteString("while (")
		p.WriteExpression(n.Condition)
		p.WriteString(") ")
		p.WriteStatements(n.Block)
	case *semantic.ForIn:
		p.WriteString("for (")
		p.WriteString(n.Variable.Named)
		p.WriteString(" in ")
		p.WriteExpression(n.Iterable)
		p.WriteString(") ")
		p.WriteStatements(n.Block)
	case *semantic.Return:
		if n.Value != nil {
			p.WriteString("return ")
			p.WriteExpression(n.Value)
		} else {
			p.WriteString("return")
		}
	case *semantic.Break:
		p.WriteString("break")
	case *semantic.Assert:
		p.WriteString("assert(")
		p.WriteExpression(n.Condition)
		p.WriteRune(')')
	default:
		panic(fmt.Sprintf("unknown statement type: %T", n))
	}
	return p
}
