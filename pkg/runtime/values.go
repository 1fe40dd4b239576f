package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/YulinWu/interpreter/pkg/types"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindBool
	KindString
	KindArray
	KindVoid
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindVoid:
		return "void"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// VoidValue is the result of calling a void function.
type VoidValue struct{}

func (VoidValue) Kind() Kind { return KindVoid }

// Zero returns the default value stored in a freshly declared scalar of typ.
func Zero(typ types.Type) Value {
	switch typ {
	case types.Int:
		return IntegerValue{}
	case types.Float:
		return FloatValue{}
	case types.Boolean:
		return BoolValue{}
	case types.String:
		return StringValue{}
	default:
		return VoidValue{}
	}
}

// Format renders a value the way print shows it.
func Format(v Value) string {
	switch val := v.(type) {
	case IntegerValue:
		return strconv.FormatInt(val.Val, 10)
	case FloatValue:
		return FormatFloat(val.Val)
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case StringValue:
		return val.Val
	case *ArrayValue:
		var sb strings.Builder
		val.format(&sb, 0, 0)
		return sb.String()
	case VoidValue:
		return "void"
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}

// FormatFloat uses the shortest round-trip form and keeps integral values
// recognisable as floats: 3.0, 2.5, 1e+21.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}
