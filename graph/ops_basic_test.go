package graph_test

import (
	"testing"

	"github.com/cipherflow-fhe/lattisense/graph"
	"github.com/cipherflow-fhe/lattisense/param"
	"github.com/stretchr/testify/require"
)

func newBFVBuilder(t *testing.T, n int) *graph.Builder {
	t.Helper()
	p, err := param.NewBFVDefault(n)
	require.NoError(t, err)
	b, err := graph.New(p, []byte("test-seed"))
	require.NoError(t, err)
	return b
}

// S1 — BFV multiply: mult_relin(x, y, "z") emits one Mult node (2
// inputs), one Relin node (2 inputs: the ct3 and rlk_ntt), a degree-2
// intermediate, and a degree-1 output "z" at the operand level.
func TestMultRelinBFV(t *testing.T) {
	b := newBFVBuilder(t, 16384)
	x, err := b.NewBFVCiphertext("x", 3)
	require.NoError(t, err)
	y, err := b.NewBFVCiphertext("y", 3)
	require.NoError(t, err)

	z, err := b.MultRelin(x, y, "z")
	require.NoError(t, err)

	zd := b.Data(z)
	require.Equal(t, "z", zd.ID)
	require.Equal(t, graph.DataCiphertext, zd.Kind)
	require.Equal(t, 1, zd.Degree)
	require.Equal(t, 3, zd.Level)

	var multOp, relinOp graph.ComputeNode
	for _, op := range b.AllCompute() {
		switch op.Kind {
		case graph.OpMult:
			multOp = op
		case graph.OpRelin:
			relinOp = op
		}
	}
	require.Len(t, multOp.Operands, 2)
	require.Len(t, relinOp.Operands, 2)

	ct3 := b.Data(multOp.Result)
	require.Equal(t, graph.DataCiphertext3, ct3.Kind)
	require.Equal(t, 2, ct3.Degree)

	rlk := b.Data(relinOp.Operands[1])
	require.Equal(t, graph.DataRelinKey, rlk.Kind)
	require.Equal(t, "rlk_ntt", rlk.ID)
	require.Equal(t, 3, rlk.Level)
}

func TestAddSelfEdgeCollapses(t *testing.T) {
	b := newBFVBuilder(t, 16384)
	x, err := b.NewBFVCiphertext("x", 2)
	require.NoError(t, err)

	_, err = b.Add(x, x, "")
	require.NoError(t, err)

	op := b.AllCompute()[len(b.AllCompute())-1]
	require.Equal(t, graph.OpAdd, op.Kind)
	require.Len(t, op.Operands, 1)
}

func TestSubSelfEdgeCollapsesUniformly(t *testing.T) {
	b := newBFVBuilder(t, 16384)
	x, err := b.NewBFVCiphertext("x", 2)
	require.NoError(t, err)

	_, err = b.Sub(x, x, "")
	require.NoError(t, err)

	op := b.AllCompute()[len(b.AllCompute())-1]
	require.Equal(t, graph.OpSub, op.Kind)
	require.Len(t, op.Operands, 1)
}

func TestSubRejectsPlaintextFirstOperand(t *testing.T) {
	b := newBFVBuilder(t, 16384)
	x, err := b.NewBFVCiphertext("x", 2)
	require.NoError(t, err)
	pt, err := b.NewBFVPlaintext("pt", 2)
	require.NoError(t, err)

	_, err = b.Sub(pt, x, "")
	require.ErrorIs(t, err, graph.ErrTypeMismatch)
}

func TestAddLevelMismatch(t *testing.T) {
	b := newBFVBuilder(t, 16384)
	x, err := b.NewBFVCiphertext("x", 2)
	require.NoError(t, err)
	y, err := b.NewBFVCiphertext("y", 1)
	require.NoError(t, err)

	_, err = b.Add(x, y, "")
	require.ErrorIs(t, err, graph.ErrTypeMismatch)
}

func TestRescaleDecrementsLevel(t *testing.T) {
	b := newBFVBuilder(t, 16384)
	x, err := b.NewBFVCiphertext("x", 3)
	require.NoError(t, err)

	z, err := b.Rescale(x, "z")
	require.NoError(t, err)
	require.Equal(t, 2, b.Data(z).Level)
}

func TestDropLevelChain(t *testing.T) {
	b := newBFVBuilder(t, 16384)
	x, err := b.NewBFVCiphertext("x", 5)
	require.NoError(t, err)

	dataBefore, computeBefore := b.DataLen(), b.ComputeLen()
	z, err := b.DropLevel(x, 3, "z")
	require.NoError(t, err)

	require.Equal(t, dataBefore+3, b.DataLen())
	require.Equal(t, computeBefore+3, b.ComputeLen())
	require.Equal(t, 2, b.Data(z).Level)
	require.Equal(t, "z", b.Data(z).ID)
}

func TestDropLevelRangeError(t *testing.T) {
	b := newBFVBuilder(t, 16384)
	x, err := b.NewBFVCiphertext("x", 2)
	require.NoError(t, err)

	_, err = b.DropLevel(x, 5, "z")
	require.ErrorIs(t, err, graph.ErrRange)
}

func TestToNttToInvNttRoundTrip(t *testing.T) {
	b := newBFVBuilder(t, 16384)
	x, err := b.NewBFVCiphertext("x", 2)
	require.NoError(t, err)

	ntt, err := b.ToNtt(x, "")
	require.NoError(t, err)
	require.True(t, b.Data(ntt).IsNTT)

	back, err := b.ToInvNtt(ntt, "")
	require.NoError(t, err)
	require.False(t, b.Data(back).IsNTT)
	require.Equal(t, 2, b.ComputeLen())
}
