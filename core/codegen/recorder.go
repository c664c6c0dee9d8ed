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

package codegen

import "fmt"

// Recorder is a minimal Builder that appends a textual trace of every
// instruction instead of lowering to machine code. It exists so the
// compiler package's tests exercise a real Builder without this module
// taking on a concrete backend dependency.
type Recorder struct {
	Instructions []string
	blocks       []string
	funcs        []string
	seq          int
}

func NewRecorder() *Recorder { return &Recorder{} }

type recValue struct {
	r    *Recorder
	name string
}

func (v *recValue) Name() string     { return v.name }
func (v *recValue) SetName(n string) { v.name = n }

type recBlock struct{ name string }

func (b *recBlock) Name() string { return b.name }

type recFunc struct {
	name   string
	params int
}

func (f *recFunc) Name() string         { return f.name }
func (f *recFunc) Param(i int) Value    { return &recValue{name: fmt.Sprintf("%s.arg%d", f.name, i)} }

func (r *Recorder) next(prefix string) *recValue {
	r.seq++
	return &recValue{r: r, name: fmt.Sprintf("%%%s%d", prefix, r.seq)}
}

func (r *Recorder) emit(format string, args ...interface{}) {
	r.Instructions = append(r.Instructions, fmt.Sprintf(format, args...))
}

func (r *Recorder) SizeOf(kind Kind, bits int) uint64 {
	switch kind {
	case KindInt, KindFloat:
		return uint64(bits) / 8
	case KindPointer:
		return r.PointerSize()
	default:
		return 0
	}
}

func (r *Recorder) PointerSize() uint64 { return 8 }

func (r *Recorder) ConstInt(bits int, signed bool, value uint64) Value {
	v := r.next("c")
	r.emit("%s = const.int i%d %d", v.name, bits, value)
	return v
}

func (r *Recorder) ConstFloat(bits int, value float64) Value {
	v := r.next("c")
	r.emit("%s = const.float f%d %g", v.name, bits, value)
	return v
}

func (r *Recorder) ConstNull(ptrKind Kind) Value {
	v := r.next("c")
	r.emit("%s = const.null", v.name)
	return v
}

func (r *Recorder) ConstBool(value bool) Value {
	v := r.next("c")
	r.emit("%s = const.bool %t", v.name, value)
	return v
}

func (r *Recorder) ConstString(value string) Value {
	v := r.next("c")
	r.emit("%s = const.string %q", v.name, value)
	return v
}

func (r *Recorder) Alloca(name string, sizeBytes uint64) Value {
	v := r.next("a")
	if name != "" {
		v.name = "%" + name
	}
	r.emit("%s = alloca %d", v.name, sizeBytes)
	return v
}

func (r *Recorder) Load(ptr Value) Value {
	v := r.next("l")
	r.emit("%s = load %s", v.name, ptr.Name())
	return v
}

func (r *Recorder) Store(ptr, val Value) {
	r.emit("store %s, %s", ptr.Name(), val.Name())
}

func (r *Recorder) GEP(base Value, indices ...int64) Value {
	v := r.next("g")
	r.emit("%s = gep %s %v", v.name, base.Name(), indices)
	return v
}

func (r *Recorder) GEPIndex(base Value, index Value, elemSizeBytes uint64) Value {
	v := r.next("g")
	r.emit("%s = gep.idx %s [%s * %d]", v.name, base.Name(), index.Name(), elemSizeBytes)
	return v
}

func (r *Recorder) Arith(op Opcode, lhs, rhs Value, floatKind bool) Value {
	v := r.next("b")
	r.emit("%s = arith.%d %s, %s", v.name, op, lhs.Name(), rhs.Name())
	return v
}

func (r *Recorder) Cmp(pred Predicate, lhs, rhs Value, floatKind bool) Value {
	v := r.next("p")
	r.emit("%s = cmp.%d %s, %s", v.name, pred, lhs.Name(), rhs.Name())
	return v
}

func (r *Recorder) Not(v1 Value) Value {
	v := r.next("n")
	r.emit("%s = not %s", v.name, v1.Name())
	return v
}

func (r *Recorder) Neg(v1 Value, floatKind bool) Value {
	v := r.next("n")
	r.emit("%s = neg %s", v.name, v1.Name())
	return v
}

func (r *Recorder) IntCast(v1 Value, toBits int, signed bool) Value {
	v := r.next("x")
	r.emit("%s = intcast %s to i%d", v.name, v1.Name(), toBits)
	return v
}

func (r *Recorder) FloatCast(v1 Value, toBits int) Value {
	v := r.next("x")
	r.emit("%s = fpcast %s to f%d", v.name, v1.Name(), toBits)
	return v
}

func (r *Recorder) IntToFloat(v1 Value, toBits int) Value {
	v := r.next("x")
	r.emit("%s = sitofp %s to f%d", v.name, v1.Name(), toBits)
	return v
}

func (r *Recorder) FloatToInt(v1 Value, toBits int, signed bool) Value {
	v := r.next("x")
	r.emit("%s = fptosi %s to i%d", v.name, v1.Name(), toBits)
	return v
}

func (r *Recorder) IntToPtr(v1 Value) Value {
	v := r.next("x")
	r.emit("%s = inttoptr %s", v.name, v1.Name())
	return v
}

func (r *Recorder) PtrToInt(v1 Value, bits int) Value {
	v := r.next("x")
	r.emit("%s = ptrtoint %s to i%d", v.name, v1.Name(), bits)
	return v
}

func (r *Recorder) Call(fn Func, args ...Value) Value {
	v := r.next("r")
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = a.Name()
	}
	r.emit("%s = call %s(%v)", v.name, fn.Name(), names)
	return v
}

func (r *Recorder) NewBlock(name string) Block {
	r.seq++
	b := &recBlock{name: fmt.Sprintf("%s.%d", name, r.seq)}
	r.blocks = append(r.blocks, b.name)
	return b
}

func (r *Recorder) SetInsertPoint(b Block) {
	r.emit("; block %s", b.Name())
}

func (r *Recorder) Br(to Block) {
	r.emit("br %s", to.Name())
}

func (r *Recorder) BrCond(cond Value, ifTrue, ifFalse Block) {
	r.emit("br.cond %s, %s, %s", cond.Name(), ifTrue.Name(), ifFalse.Name())
}

func (r *Recorder) Phi(typeHint Kind, bits int, incoming map[Block]Value) Value {
	v := r.next("phi")
	r.emit("%s = phi %v", v.name, incoming)
	return v
}

func (r *Recorder) Ret(v Value) {
	r.emit("ret %s", v.Name())
}

func (r *Recorder) RetVoid() {
	r.emit("ret void")
}

func (r *Recorder) DeclareFunc(name string, paramCount int) Func {
	f := &recFunc{name: name, params: paramCount}
	r.funcs = append(r.funcs, name)
	return f
}

func (r *Recorder) InlineAsm(template string, outputs, inputs []Value, clobbers []string) Value {
	v := r.next("asm")
	r.emit("%s = asm %q", v.name, template)
	return v
}
