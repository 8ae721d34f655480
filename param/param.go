// Package param models the FHE scheme configuration a computation graph is
// built against: the scheme family, the ring dimension, the ciphertext and
// special moduli chains, and (for CKKS) the scale and bootstrap checkpoints.
package param

import (
	"errors"
	"fmt"
)

// ErrConfig is returned when a [Param] cannot be constructed: an
// unsupported (scheme, n) pair for a default lookup, or an empty moduli
// chain for a custom one.
var ErrConfig = errors.New("config error")

// Scheme identifies the FHE scheme family a [Param] configures.
type Scheme string

const (
	BFV  Scheme = "BFV"
	CKKS Scheme = "CKKS"
)

// BootstrapLevels holds the CKKS bootstrap-circuit level checkpoints. It is
// nil on a [Param] that was not built for bootstrapping.
type BootstrapLevels struct {
	// OutputLevel is the level of the ciphertext produced by bootstrap.
	OutputLevel int
	// CtsStartLevel is the level at which CoeffToSlot begins.
	CtsStartLevel int
	// EvalModStartLevel is the level at which the modular-reduction
	// evaluation begins.
	EvalModStartLevel int
	// StcStartLevel is the level at which SlotToCoeff begins.
	StcStartLevel int
}

// Param is an FHE parameter set: scheme, ring dimension, moduli chains, and
// the scheme-specific fields that are only meaningful for their matching
// scheme (T for BFV, Scale and Bootstrap for CKKS).
type Param struct {
	Scheme Scheme
	N      int
	Q      []uint64
	P      []uint64

	// T is the plaintext modulus. Meaningful for BFV only.
	T uint64
	// Scale is the default encoding scale. Meaningful for CKKS only.
	Scale float64
	// Bootstrap holds the CKKS bootstrap level checkpoints, or nil if this
	// Param was not constructed for bootstrapping.
	Bootstrap *BootstrapLevels

	MaxLevel int
}

// MaxSPLevel returns the highest level of the special-modulus chain P.
func (p Param) MaxSPLevel() int {
	return len(p.P) - 1
}

// NewBFVDefault builds a BFV [Param] by looking n up in the embedded
// default parameter table. It returns an error wrapping [ErrConfig] if
// (BFV, n) is absent from the table.
func NewBFVDefault(n int) (Param, error) {
	e, err := lookupDefault(BFV, n)
	if err != nil {
		return Param{}, err
	}
	return Param{
		Scheme:   BFV,
		N:        n,
		Q:        e.Q,
		P:        e.P,
		T:        e.T,
		MaxLevel: e.MaxLevel,
	}, nil
}

// NewCKKSDefault builds a CKKS [Param] by looking n up in the embedded
// default parameter table. It returns an error wrapping [ErrConfig] if
// (CKKS, n) is absent from the table.
func NewCKKSDefault(n int) (Param, error) {
	e, err := lookupDefault(CKKS, n)
	if err != nil {
		return Param{}, err
	}
	return Param{
		Scheme:   CKKS,
		N:        n,
		Q:        e.Q,
		P:        e.P,
		MaxLevel: e.MaxLevel,
	}, nil
}

// NewBFVCustom builds a BFV [Param] from caller-supplied moduli chains.
// MaxLevel is set to len(q)-1. It returns an error wrapping [ErrConfig] if
// q is empty.
func NewBFVCustom(n int, q, p []uint64, t uint64) (Param, error) {
	if len(q) == 0 {
		return Param{}, fmt.Errorf("cannot build custom BFV param: %w: empty ciphertext moduli chain", ErrConfig)
	}
	return Param{
		Scheme:   BFV,
		N:        n,
		Q:        q,
		P:        p,
		T:        t,
		MaxLevel: len(q) - 1,
	}, nil
}

// NewCKKSCustom builds a CKKS [Param] from caller-supplied moduli chains.
// MaxLevel is set to len(q)-1. It returns an error wrapping [ErrConfig] if
// q is empty.
func NewCKKSCustom(n int, q, p []uint64) (Param, error) {
	if len(q) == 0 {
		return Param{}, fmt.Errorf("cannot build custom CKKS param: %w: empty ciphertext moduli chain", ErrConfig)
	}
	return Param{
		Scheme:   CKKS,
		N:        n,
		Q:        q,
		P:        p,
		MaxLevel: len(q) - 1,
	}, nil
}
