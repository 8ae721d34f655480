// Package task finalizes a [graph.Builder] into the two JSON artifacts a
// downstream compiler consumes: the full annotated computation graph and
// the compact interface signature describing how to call into it.
package task

import (
	"fmt"

	"github.com/cipherflow-fhe/lattisense/graph"
)

// Nested is either a graph.DataRef or a []Nested, mirroring the arbitrary
// list-of-lists an Argument's data can take (a single tensor, a row, a
// batch of rows, ...).
type Nested interface{}

// Argument names one input, output, or offline-input slot of a task: a
// caller-facing id and the (possibly nested) data nodes it denotes.
type Argument struct {
	ID   string
	Data Nested
}

// NewArgument validates id and data before wrapping them as an Argument.
// Both the empty id and an empty/nil data tree are rejected with
// [graph.ErrArg].
func NewArgument(id string, data Nested) (Argument, error) {
	if id == "" {
		return Argument{}, fmt.Errorf("cannot build argument: %w: empty id", graph.ErrArg)
	}
	if len(Flatten(data)) == 0 {
		return Argument{}, fmt.Errorf("cannot build argument %q: %w: no data nodes", id, graph.ErrArg)
	}
	return Argument{ID: id, Data: data}, nil
}

// Flatten walks a Nested value in depth-first order and returns every
// graph.DataRef leaf it contains.
func Flatten(n Nested) []graph.DataRef {
	switch v := n.(type) {
	case nil:
		return nil
	case graph.DataRef:
		return []graph.DataRef{v}
	case []Nested:
		var out []graph.DataRef
		for _, e := range v {
			out = append(out, Flatten(e)...)
		}
		return out
	default:
		return nil
	}
}

// Shape reports the list-of-lists nesting depth of n as a dimension
// vector, assuming (as the caller must guarantee) that every branch at a
// given depth has the same length. A bare DataRef has an empty shape.
func Shape(n Nested) []int {
	v, ok := n.([]Nested)
	if !ok {
		return nil
	}
	shape := []int{len(v)}
	if len(v) > 0 {
		shape = append(shape, Shape(v[0])...)
	}
	return shape
}
