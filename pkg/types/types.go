// Package types defines the closed type lattice of the language together with
// the per-operator compatibility rules used by the checker and mirrored by the
// interpreter.
package types

import (
	"fmt"
	"strings"
)

// Kind identifies the shape of a type.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindBoolean
	KindString
	KindVoid
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindVoid:
		return "void"
	case KindArray:
		return "array"
	default:
		return "invalid"
	}
}

// Type is a comparable type descriptor. Scalars are identified by their kind
// alone; arrays by element kind and dimension count. The zero value is Invalid
// and doubles as the "incompatible" operator result.
type Type struct {
	kind Kind
	elem Kind
	dims int
}

var (
	Invalid = Type{}
	Int     = Type{kind: KindInt}
	Float   = Type{kind: KindFloat}
	Boolean = Type{kind: KindBoolean}
	String  = Type{kind: KindString}
	// Void is only ever a function result; it is not a value type.
	Void = Type{kind: KindVoid}
)

// ArrayOf returns the array type with the given scalar element type and
// dimension count, or Invalid when either is unusable.
func ArrayOf(elem Type, dims int) Type {
	if !elem.IsScalar() || dims <= 0 {
		return Invalid
	}
	return Type{kind: KindArray, elem: elem.kind, dims: dims}
}

// Lookup resolves a type keyword.
func Lookup(name string) (Type, bool) {
	switch name {
	case "int":
		return Int, true
	case "float":
		return Float, true
	case "boolean":
		return Boolean, true
	case "string":
		return String, true
	case "void":
		return Void, true
	default:
		return Invalid, false
	}
}

func (t Type) Kind() Kind { return t.kind }

// Elem returns the element type of an array, Invalid otherwise.
func (t Type) Elem() Type {
	if t.kind != KindArray {
		return Invalid
	}
	return Type{kind: t.elem}
}

// Dims returns the dimension count of an array, 0 otherwise.
func (t Type) Dims() int {
	if t.kind != KindArray {
		return 0
	}
	return t.dims
}

func (t Type) IsValid() bool   { return t.kind != KindInvalid }
func (t Type) IsArray() bool   { return t.kind == KindArray }
func (t Type) IsNumeric() bool { return t.kind == KindInt || t.kind == KindFloat }

// IsScalar reports whether t is one of int, float, boolean or string.
func (t Type) IsScalar() bool {
	switch t.kind {
	case KindInt, KindFloat, KindBoolean, KindString:
		return true
	default:
		return false
	}
}

// IsValue reports whether values of t can exist at run time.
func (t Type) IsValue() bool { return t.IsScalar() || t.IsArray() }

func (t Type) String() string {
	if t.kind == KindArray {
		return t.Elem().String() + strings.Repeat("[]", t.dims)
	}
	return t.kind.String()
}

// GoString keeps %#v output readable in test failures.
func (t Type) GoString() string { return fmt.Sprintf("types.%s", t) }

// Plus covers addition and string concatenation.
func (t Type) Plus(other Type) (Type, bool) {
	switch {
	case t.IsNumeric():
		return promote(t, other)
	case t == String && other.IsValue():
		return String, true
	}
	return Invalid, false
}

func (t Type) Minus(other Type) (Type, bool) {
	if t.IsNumeric() {
		return promote(t, other)
	}
	return Invalid, false
}

// Mul covers numeric multiplication and string repetition by an int count.
func (t Type) Mul(other Type) (Type, bool) {
	switch {
	case t.IsNumeric():
		return promote(t, other)
	case t == String && other == Int:
		return String, true
	}
	return Invalid, false
}

func (t Type) Div(other Type) (Type, bool) {
	if t.IsNumeric() {
		return promote(t, other)
	}
	return Invalid, false
}

func (t Type) Mod(other Type) (Type, bool) {
	if t.IsNumeric() {
		return promote(t, other)
	}
	return Invalid, false
}

// Relational covers the ordering operators < <= > >=.
func (t Type) Relational(other Type) (Type, bool) {
	switch {
	case t.IsNumeric() && other.IsNumeric():
		return Boolean, true
	case t == String && other == String:
		return Boolean, true
	}
	return Invalid, false
}

// Equality covers == and !=.
func (t Type) Equality(other Type) (Type, bool) {
	switch {
	case t.IsNumeric() && other.IsNumeric():
		return Boolean, true
	case t == Boolean && other == Boolean:
		return Boolean, true
	case t == String && other == String:
		return Boolean, true
	}
	return Invalid, false
}

// Logical covers && and ||.
func (t Type) Logical(other Type) (Type, bool) {
	if t == Boolean && other == Boolean {
		return Boolean, true
	}
	return Invalid, false
}

// Negate is unary minus.
func (t Type) Negate() (Type, bool) {
	if t.IsNumeric() {
		return t, true
	}
	return Invalid, false
}

// Not is logical negation.
func (t Type) Not() (Type, bool) {
	if t == Boolean {
		return Boolean, true
	}
	return Invalid, false
}

// CanAssign reports whether a value of type source may be stored in a
// location of type target. Only identical value types are compatible.
func CanAssign(target, source Type) bool {
	return target.IsValue() && target == source
}

func promote(left, right Type) (Type, bool) {
	if !left.IsNumeric() || !right.IsNumeric() {
		return Invalid, false
	}
	if left == Float || right == Float {
		return Float, true
	}
	return Int, true
}

// Category groups binary operators that share a compatibility rule.
type Category int

const (
	Additive Category = iota
	Subtractive
	Multiplicative
	Division
	Modulus
	Relational
	Equality
	Logical
)

func (c Category) String() string {
	switch c {
	case Additive:
		return "additive"
	case Subtractive:
		return "subtractive"
	case Multiplicative:
		return "multiplicative"
	case Division:
		return "division"
	case Modulus:
		return "modulus"
	case Relational:
		return "relational"
	case Equality:
		return "equality"
	case Logical:
		return "logical"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Binary applies the rule for category c to left and right.
func Binary(c Category, left, right Type) (Type, bool) {
	switch c {
	case Additive:
		return left.Plus(right)
	case Subtractive:
		return left.Minus(right)
	case Multiplicative:
		return left.Mul(right)
	case Division:
		return left.Div(right)
	case Modulus:
		return left.Mod(right)
	case Relational:
		return left.Relational(right)
	case Equality:
		return left.Equality(right)
	case Logical:
		return left.Logical(right)
	default:
		return Invalid, false
	}
}
