package runtime

import (
	"fmt"
	"strings"

	"github.com/YulinWu/interpreter/pkg/types"
)

// MaxArrayElements bounds the storage a single declaration may allocate.
const MaxArrayElements = 1 << 26

// ArrayValue is a dense row-major multi-dimensional store. Its shape is fixed
// at construction.
type ArrayValue struct {
	Elem     types.Type
	Dims     []int
	Elements []Value
}

func (a *ArrayValue) Kind() Kind { return KindArray }

// NewArray allocates an array of the given shape with every element set to
// the zero value of elem.
func NewArray(elem types.Type, dims []int64) (*ArrayValue, error) {
	if !elem.IsScalar() {
		return nil, fmt.Errorf("invalid array element type %s", elem)
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("array needs at least one dimension")
	}
	shape := make([]int, len(dims))
	total := int64(1)
	for i, d := range dims {
		if d < 0 {
			return nil, fmt.Errorf("negative array dimension %d", d)
		}
		if d > MaxArrayElements || total*d > MaxArrayElements {
			return nil, fmt.Errorf("array shape %s exceeds the limit of %d elements", shapeString(dims), MaxArrayElements)
		}
		total *= d
		shape[i] = int(d)
	}
	elements := make([]Value, total)
	zero := Zero(elem)
	for i := range elements {
		elements[i] = zero
	}
	return &ArrayValue{Elem: elem, Dims: shape, Elements: elements}, nil
}

// IndexError reports a bad index or the wrong number of indices.
type IndexError struct {
	Indices []int64
	Dims    []int
}

func (e *IndexError) Error() string {
	if len(e.Indices) != len(e.Dims) {
		return fmt.Sprintf("array has %d dimensions, got %d indices", len(e.Dims), len(e.Indices))
	}
	return fmt.Sprintf("index %s out of range for array of shape %s", shapeString(e.Indices), shapeString(intsToInt64(e.Dims)))
}

// Offset maps indices to a position in Elements, walking the dimensions left
// to right.
func (a *ArrayValue) Offset(indices []int64) (int, error) {
	if len(indices) != len(a.Dims) {
		return 0, &IndexError{Indices: indices, Dims: a.Dims}
	}
	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= int64(a.Dims[i]) {
			return 0, &IndexError{Indices: indices, Dims: a.Dims}
		}
		offset = offset*a.Dims[i] + int(idx)
	}
	return offset, nil
}

func (a *ArrayValue) Get(indices []int64) (Value, error) {
	offset, err := a.Offset(indices)
	if err != nil {
		return nil, err
	}
	return a.Elements[offset], nil
}

func (a *ArrayValue) Set(indices []int64, v Value) error {
	offset, err := a.Offset(indices)
	if err != nil {
		return err
	}
	a.Elements[offset] = v
	return nil
}

// SameShape reports whether both arrays have identical dimensions.
func (a *ArrayValue) SameShape(other *ArrayValue) bool {
	if len(a.Dims) != len(other.Dims) {
		return false
	}
	for i := range a.Dims {
		if a.Dims[i] != other.Dims[i] {
			return false
		}
	}
	return true
}

// CopyFrom overwrites a's elements with src's. The storage of a is kept.
func (a *ArrayValue) CopyFrom(src *ArrayValue) error {
	if a.Elem != src.Elem || !a.SameShape(src) {
		return fmt.Errorf("cannot copy %s array of shape %s into %s array of shape %s",
			src.Elem, shapeString(intsToInt64(src.Dims)), a.Elem, shapeString(intsToInt64(a.Dims)))
	}
	copy(a.Elements, src.Elements)
	return nil
}

func (a *ArrayValue) format(sb *strings.Builder, dim, offset int) int {
	sb.WriteByte('[')
	for i := 0; i < a.Dims[dim]; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		if dim == len(a.Dims)-1 {
			sb.WriteString(Format(a.Elements[offset]))
			offset++
			continue
		}
		offset = a.format(sb, dim+1, offset)
	}
	sb.WriteByte(']')
	return offset
}

func shapeString(dims []int64) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = fmt.Sprint(d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func intsToInt64(xs []int) []int64 {
	out := make([]int64, len(xs))
	for i, x := range xs {
		out[i] = int64(x)
	}
	return out
}
