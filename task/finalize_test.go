package task_test

import (
	"testing"

	"github.com/cipherflow-fhe/lattisense/graph"
	"github.com/cipherflow-fhe/lattisense/param"
	"github.com/cipherflow-fhe/lattisense/task"
	"github.com/stretchr/testify/require"
)

func newBFVBuilder(t *testing.T, n int) *graph.Builder {
	t.Helper()
	p, err := param.NewBFVDefault(n)
	require.NoError(t, err)
	b, err := graph.New(p, []byte("finalize-test-seed"))
	require.NoError(t, err)
	return b
}

// S1 — finalizing mult_relin(x, y, "z") produces a mega_ag with one Mult
// and one Relin compute node, a bound rlk_ntt key node, x/y as inputs,
// and z as the sole output.
func TestFinalizeMultRelinRoundTrip(t *testing.T) {
	b := newBFVBuilder(t, 16384)
	x, err := b.NewBFVCiphertext("x", 3)
	require.NoError(t, err)
	y, err := b.NewBFVCiphertext("y", 3)
	require.NoError(t, err)
	z, err := b.MultRelin(x, y, "z")
	require.NoError(t, err)

	xArg, err := task.NewArgument("x", x)
	require.NoError(t, err)
	yArg, err := task.NewArgument("y", y)
	require.NoError(t, err)
	zArg, err := task.NewArgument("z", z)
	require.NoError(t, err)

	mag, sig, err := task.Finalize(b, "Acc task", []task.Argument{xArg, yArg}, []task.Argument{zArg}, nil)
	require.NoError(t, err)

	require.Equal(t, "BFV", mag.Algorithm)
	require.Equal(t, b.DataLen(), len(mag.Data))
	require.Equal(t, b.ComputeLen(), len(mag.Compute))
	require.Contains(t, mag.Inputs, int(x))
	require.Contains(t, mag.Inputs, int(y))
	require.Equal(t, []int{int(z)}, mag.Outputs)
	require.Empty(t, mag.OfflineInputs)

	// rlk_ntt is a bound key, so it rides along as an extra input.
	rlkRef, ok := b.KeyRef("rlk_ntt")
	require.True(t, ok)
	require.Contains(t, mag.Inputs, int(rlkRef))
	require.Equal(t, 3, sig.Key.Rlk)

	require.Len(t, sig.Online, 3) // x, y inputs + z output
	require.Empty(t, sig.Offline)
}

// S6 — two Argument instances with identical ids are rejected even when
// they denote different nodes.
func TestFinalizeRejectsDuplicateArgumentID(t *testing.T) {
	b := newBFVBuilder(t, 16384)
	x, err := b.NewBFVCiphertext("x", 2)
	require.NoError(t, err)
	y, err := b.NewBFVCiphertext("y", 2)
	require.NoError(t, err)
	z, err := b.Add(x, y, "z")
	require.NoError(t, err)

	xArg, err := task.NewArgument("same", x)
	require.NoError(t, err)
	yArg, err := task.NewArgument("same", y)
	require.NoError(t, err)
	zArg, err := task.NewArgument("z", z)
	require.NoError(t, err)

	_, _, err = task.Finalize(b, "dup", []task.Argument{xArg, yArg}, []task.Argument{zArg}, nil)
	require.ErrorIs(t, err, graph.ErrArg)
}

func TestFinalizeRejectsUnusedInput(t *testing.T) {
	b := newBFVBuilder(t, 16384)
	x, err := b.NewBFVCiphertext("x", 2)
	require.NoError(t, err)
	y, err := b.NewBFVCiphertext("y", 2)
	require.NoError(t, err)
	z, err := b.Add(x, y, "z")
	require.NoError(t, err)
	unused, err := b.NewBFVCiphertext("unused", 2)
	require.NoError(t, err)

	xArg, err := task.NewArgument("x", x)
	require.NoError(t, err)
	yArg, err := task.NewArgument("y", y)
	require.NoError(t, err)
	uArg, err := task.NewArgument("unused", unused)
	require.NoError(t, err)
	zArg, err := task.NewArgument("z", z)
	require.NoError(t, err)

	_, _, err = task.Finalize(b, "unused", []task.Argument{xArg, yArg, uArg}, []task.Argument{zArg}, nil)
	require.ErrorIs(t, err, graph.ErrGraph)
}

func TestFinalizeRejectsDanglingInteriorNode(t *testing.T) {
	b := newBFVBuilder(t, 16384)
	x, err := b.NewBFVCiphertext("x", 2)
	require.NoError(t, err)
	y, err := b.NewBFVCiphertext("y", 2)
	require.NoError(t, err)
	// z is computed but neither consumed nor declared as an output.
	_, err = b.Add(x, y, "z")
	require.NoError(t, err)

	xArg, err := task.NewArgument("x", x)
	require.NoError(t, err)
	yArg, err := task.NewArgument("y", y)
	require.NoError(t, err)

	_, _, err = task.Finalize(b, "dangling", []task.Argument{xArg, yArg}, nil, nil)
	require.ErrorIs(t, err, graph.ErrGraph)
}
