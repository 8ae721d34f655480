package task_test

import (
	"testing"

	"github.com/cipherflow-fhe/lattisense/graph"
	"github.com/cipherflow-fhe/lattisense/task"
	"github.com/stretchr/testify/require"
)

func TestNewArgumentRejectsEmptyID(t *testing.T) {
	_, err := task.NewArgument("", graph.DataRef(0))
	require.ErrorIs(t, err, graph.ErrArg)
}

func TestNewArgumentRejectsEmptyData(t *testing.T) {
	_, err := task.NewArgument("x", nil)
	require.ErrorIs(t, err, graph.ErrArg)
}

func TestFlattenAndShapeNested(t *testing.T) {
	nested := []task.Nested{
		[]task.Nested{graph.DataRef(0), graph.DataRef(1)},
		[]task.Nested{graph.DataRef(2), graph.DataRef(3)},
	}
	require.Equal(t, []graph.DataRef{0, 1, 2, 3}, task.Flatten(nested))
	require.Equal(t, []int{2, 2}, task.Shape(nested))
}

func TestFlattenSingleLeaf(t *testing.T) {
	require.Equal(t, []graph.DataRef{7}, task.Flatten(graph.DataRef(7)))
	require.Empty(t, task.Shape(graph.DataRef(7)))
}
