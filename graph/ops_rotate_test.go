package graph_test

import (
	"fmt"
	"testing"

	"github.com/cipherflow-fhe/lattisense/galois"
	"github.com/cipherflow-fhe/lattisense/graph"
	"github.com/cipherflow-fhe/lattisense/param"
	"github.com/stretchr/testify/require"
)

func newCKKSBuilder(t *testing.T, n int) *graph.Builder {
	t.Helper()
	p, err := param.NewCKKSDefault(n)
	require.NoError(t, err)
	b, err := graph.New(p, []byte("test-seed"))
	require.NoError(t, err)
	return b
}

// S2 — CKKS rotate by 1: NAF of 1 is +1, so one RotateColUnit with
// step=1 and one GaloisKey glk_ntt_col_<5^1 mod 32768> = glk_ntt_col_5.
func TestRotateColsByOne(t *testing.T) {
	b := newCKKSBuilder(t, 16384)
	x, err := b.NewCKKSCiphertext("x", 2)
	require.NoError(t, err)

	out, err := b.RotateCols(x, []int{1}, "z")
	require.NoError(t, err)
	require.Len(t, out, 1)

	var rotOps []graph.ComputeNode
	for _, op := range b.AllCompute() {
		if op.Kind == graph.OpRotateCol {
			rotOps = append(rotOps, op)
		}
	}
	require.Len(t, rotOps, 1)
	require.Equal(t, 1, rotOps[0].Step)

	glk := b.Data(rotOps[0].Operands[1])
	require.Equal(t, graph.DataGaloisKey, glk.Kind)
	require.Equal(t, "glk_ntt_col_5", glk.ID)
	require.Equal(t, 5, glk.GaloisElement)
}

// S3 — CKKS rotate by 3: NAF of 3 is +4, -1.
func TestRotateColsByThreeIsNAF(t *testing.T) {
	b := newCKKSBuilder(t, 16384)
	x, err := b.NewCKKSCiphertext("x", 2)
	require.NoError(t, err)

	_, err = b.RotateCols(x, []int{3}, "z")
	require.NoError(t, err)

	var steps []int
	for _, op := range b.AllCompute() {
		if op.Kind == graph.OpRotateCol {
			steps = append(steps, op.Step)
		}
	}
	require.Equal(t, []int{4, -1}, steps)
}

func TestRotateColsMemoizesSharedPrefix(t *testing.T) {
	b := newCKKSBuilder(t, 16384)
	x, err := b.NewCKKSCiphertext("x", 2)
	require.NoError(t, err)

	_, err = b.RotateCols(x, []int{4, 3}, "")
	require.NoError(t, err)

	var rotCount int
	for _, op := range b.AllCompute() {
		if op.Kind == graph.OpRotateCol {
			rotCount++
		}
	}
	// step 4 contributes one rotation (+4); step 3 reuses it and adds -1.
	require.Equal(t, 2, rotCount)
}

func TestSealRotateColsUsesGeneratorThree(t *testing.T) {
	b := newCKKSBuilder(t, 16384)
	x, err := b.NewCKKSCiphertext("x", 2)
	require.NoError(t, err)

	_, err = b.SealRotateCols(x, []int{1}, "")
	require.NoError(t, err)

	expected := galois.ColumnElement(1, 16384, galois.GeneratorSEAL)
	found := false
	for _, d := range b.AllData() {
		if d.Kind == graph.DataGaloisKey && d.ID == fmt.Sprintf("glk_ntt_col_%d", expected) {
			found = true
		}
	}
	require.True(t, found)
}

func TestAdvancedRotateColsOneNodePerStep(t *testing.T) {
	b := newCKKSBuilder(t, 16384)
	x, err := b.NewCKKSCiphertext("x", 2)
	require.NoError(t, err)

	out, err := b.AdvancedRotateCols(x, []int{3, 5}, "z", graph.OutCt, galois.Hybrid)
	require.NoError(t, err)
	require.Len(t, out, 2)

	var rotCount int
	for _, op := range b.AllCompute() {
		if op.Kind == graph.OpRotateCol {
			rotCount++
		}
	}
	require.Equal(t, 2, rotCount)
}

func TestRotateRowsBindsRowKey(t *testing.T) {
	b := newCKKSBuilder(t, 16384)
	x, err := b.NewCKKSCiphertext("x", 2)
	require.NoError(t, err)

	z, err := b.RotateRows(x, "z")
	require.NoError(t, err)
	require.Equal(t, 2, b.Data(z).Level)

	found := false
	for _, d := range b.AllData() {
		if d.Kind == graph.DataGaloisKey && d.ID == "glk_ntt_row" {
			found = true
			require.Equal(t, galois.RowElement(16384), d.GaloisElement)
		}
	}
	require.True(t, found)
}

// S5 — Bootstrap at n=2^13 yields exactly 29 column Galois keys, one row
// Galois key, one rlk_ntt, swk_dts, swk_std, output level = btp_output_level.
func TestBootstrapToy(t *testing.T) {
	p := param.NewCKKSBootstrapToy()
	b, err := graph.New(p, []byte("test-seed"))
	require.NoError(t, err)
	x, err := b.NewCKKSCiphertext("x", 0)
	require.NoError(t, err)

	z, err := b.Bootstrap(x, "z")
	require.NoError(t, err)
	require.Equal(t, p.Bootstrap.OutputLevel, b.Data(z).Level)

	var colKeys, rowKeys, rlkKeys, swkKeys int
	for _, d := range b.AllData() {
		switch {
		case d.Kind == graph.DataGaloisKey && d.ID == "glk_ntt_row":
			rowKeys++
		case d.Kind == graph.DataGaloisKey:
			colKeys++
		case d.Kind == graph.DataRelinKey:
			rlkKeys++
		case d.Kind == graph.DataSwitchKey:
			swkKeys++
		}
	}
	require.Equal(t, 29, colKeys)
	require.Equal(t, 1, rowKeys)
	require.Equal(t, 1, rlkKeys)
	require.Equal(t, 2, swkKeys)
}

func TestBootstrapRejectsNonZeroLevel(t *testing.T) {
	p := param.NewCKKSBootstrapToy()
	b, err := graph.New(p, []byte("test-seed"))
	require.NoError(t, err)
	x, err := b.NewCKKSCiphertext("x", 1)
	require.NoError(t, err)

	_, err = b.Bootstrap(x, "z")
	require.ErrorIs(t, err, graph.ErrRange)
}

func TestBootstrapUnsupportedRingDimension(t *testing.T) {
	p, err := param.NewCKKSCustom(8192*3, []uint64{1, 2, 3}, []uint64{5})
	require.NoError(t, err)
	p.Bootstrap = &param.BootstrapLevels{OutputLevel: 1}
	b, err := graph.New(p, []byte("test-seed"))
	require.NoError(t, err)
	x, err := b.NewCKKSCiphertext("x", 0)
	require.NoError(t, err)

	_, err = b.Bootstrap(x, "z")
	require.ErrorIs(t, err, graph.ErrNotSupported)
}
