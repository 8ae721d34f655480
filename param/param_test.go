package param_test

import (
	"errors"
	"testing"

	"github.com/cipherflow-fhe/lattisense/param"
	"github.com/stretchr/testify/require"
)

func TestNewBFVDefault(t *testing.T) {
	p, err := param.NewBFVDefault(16384)
	require.NoError(t, err)
	require.Equal(t, param.BFV, p.Scheme)
	require.Equal(t, 7, p.MaxLevel)
	require.Len(t, p.Q, 8)
	require.EqualValues(t, 65537, p.T)
}

func TestNewCKKSDefault(t *testing.T) {
	p, err := param.NewCKKSDefault(8192)
	require.NoError(t, err)
	require.Equal(t, param.CKKS, p.Scheme)
	require.Equal(t, 4, p.MaxLevel)
	require.Nil(t, p.Bootstrap)
}

func TestNewBFVDefaultUnsupportedN(t *testing.T) {
	_, err := param.NewBFVDefault(123)
	require.Error(t, err)
	require.True(t, errors.Is(err, param.ErrConfig))
}

func TestNewCKKSCustomRejectsEmptyChain(t *testing.T) {
	_, err := param.NewCKKSCustom(8192, nil, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, param.ErrConfig))
}

func TestMaxSPLevel(t *testing.T) {
	p, err := param.NewBFVCustom(8192, []uint64{1, 2, 3}, []uint64{10, 20}, 65537)
	require.NoError(t, err)
	require.Equal(t, 2, p.MaxLevel)
	require.Equal(t, 1, p.MaxSPLevel())
}

func TestCKKSBootstrapToy(t *testing.T) {
	p := param.NewCKKSBootstrapToy()
	require.Equal(t, 1<<13, p.N)
	require.NotNil(t, p.Bootstrap)
	require.Equal(t, 9, p.Bootstrap.OutputLevel)
	require.Equal(t, len(p.Q)-1, p.MaxLevel)
}

func TestCKKSBootstrapDefault(t *testing.T) {
	p := param.NewCKKSBootstrapDefault()
	require.Equal(t, 1<<16, p.N)
	require.NotNil(t, p.Bootstrap)
}
