// Package symtab provides the nested-scope symbol table shared by the
// semantic analyzer, the type checker and the interpreter. The table is
// generic over the payload stored per binding.
package symtab

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrDuplicate = errors.New("duplicate binding")
	ErrNotFound  = errors.New("binding not found")
	ErrNoScope   = errors.New("no open scope")
)

// Table is a stack of frames, innermost last.
type Table[T any] struct {
	frames []map[string]T
}

// New returns a table with no open frames.
func New[T any]() *Table[T] {
	return &Table[T]{}
}

// EnterScope pushes an empty frame.
func (t *Table[T]) EnterScope() {
	t.frames = append(t.frames, make(map[string]T))
}

// ExitScope pops the innermost frame and drops its bindings. It is a no-op on
// an empty table.
func (t *Table[T]) ExitScope() {
	n := len(t.frames)
	if n == 0 {
		return
	}
	t.frames[n-1] = nil
	t.frames = t.frames[:n-1]
}

// Depth returns the number of open frames.
func (t *Table[T]) Depth() int {
	return len(t.frames)
}

// Define binds name in the innermost frame. Shadowing an outer binding is
// allowed; rebinding within the same frame is not.
func (t *Table[T]) Define(name string, slot T) error {
	n := len(t.frames)
	if n == 0 {
		return fmt.Errorf("%w: define %s", ErrNoScope, name)
	}
	frame := t.frames[n-1]
	if _, exists := frame[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	frame[name] = slot
	return nil
}

// Lookup returns the slot of the nearest enclosing binding.
func (t *Table[T]) Lookup(name string) (T, bool) {
	for i := len(t.frames) - 1; i >= 0; i-- {
		if slot, ok := t.frames[i][name]; ok {
			return slot, true
		}
	}
	var zero T
	return zero, false
}

// Set replaces the slot of the nearest enclosing binding.
func (t *Table[T]) Set(name string, slot T) error {
	for i := len(t.frames) - 1; i >= 0; i-- {
		if _, ok := t.frames[i][name]; ok {
			t.frames[i][name] = slot
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Names returns the bindings of the innermost frame in sorted order.
func (t *Table[T]) Names() []string {
	n := len(t.frames)
	if n == 0 {
		return nil
	}
	keys := make([]string, 0, len(t.frames[n-1]))
	for k := range t.frames[n-1] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone copies every frame so the copy can be mutated independently. Slots
// are copied by value.
func (t *Table[T]) Clone() *Table[T] {
	out := &Table[T]{frames: make([]map[string]T, len(t.frames))}
	for i, frame := range t.frames {
		copied := make(map[string]T, len(frame))
		for k, v := range frame {
			copied[k] = v
		}
		out.frames[i] = copied
	}
	return out
}
