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

// Package logx is a small context-carried structured logger modeled on
// the teacher's core/log package (Broadcaster/Handler/Severity), cut
// down to the handful of concepts driver and cmd/riftc actually need:
// no fluent Context wrapper, no jot/severity sub-packages, just a
// Handler registered on a context.Context and package-level severity
// helpers.
package logx

import (
	"context"
	"fmt"
	"sync"
)

// Severity is the level a Message was logged at.
type Severity int

const (
	Verbose Severity = iota
	Debug
	Info
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Verbose:
		return "verbose"
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "?"
	}
}

// Message is one logged entry.
type Message struct {
	Severity Severity
	Text     string
}

// Handler receives every Message passed to a logger built over it.
type Handler interface {
	Handle(Message)
}

// HandlerFunc adapts a plain function to a Handler.
type HandlerFunc func(Message)

func (f HandlerFunc) Handle(m Message) { f(m) }

// Broadcaster forwards every Message to each of its registered
// Handlers, matching the teacher's Broadcaster/Listen shape.
type Broadcaster struct {
	mu sync.RWMutex
	hs []Handler
}

func NewBroadcaster(hs ...Handler) *Broadcaster {
	return &Broadcaster{hs: append([]Handler(nil), hs...)}
}

func (b *Broadcaster) Listen(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hs = append(b.hs, h)
}

func (b *Broadcaster) Handle(m Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, h := range b.hs {
		h.Handle(m)
	}
}

type ctxKey struct{}

// With returns a context carrying b, retrievable by From.
func With(ctx context.Context, b *Broadcaster) context.Context {
	return context.WithValue(ctx, ctxKey{}, b)
}

// From returns the Broadcaster carried by ctx, or a no-op one if none
// was attached — a caller that never wired a handler still gets a
// silently-discarding logger rather than a nil-pointer panic.
func From(ctx context.Context) *Broadcaster {
	if b, ok := ctx.Value(ctxKey{}).(*Broadcaster); ok {
		return b
	}
	return NewBroadcaster()
}

func log(ctx context.Context, sev Severity, format string, args ...interface{}) {
	From(ctx).Handle(Message{Severity: sev, Text: fmt.Sprintf(format, args...)})
}

// V, D, I, W and E log at Verbose, Debug, Info, Warning and Error
// severity respectively, mirroring the teacher's log.I/W/E package
// functions.
func V(ctx context.Context, format string, args ...interface{}) { log(ctx, Verbose, format, args...) }
func D(ctx context.Context, format string, args ...interface{}) { log(ctx, Debug, format, args...) }
func I(ctx context.Context, format string, args ...interface{}) { log(ctx, Info, format, args...) }
func W(ctx context.Context, format string, args ...interface{}) { log(ctx, Warning, format, args...) }
func E(ctx context.Context, format string, args ...interface{}) { log(ctx, Error, format, args...) }
