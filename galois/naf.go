// Package galois computes the Galois-automorphism bookkeeping a column or
// row rotation needs: the non-adjacent-form decomposition of a rotation
// step into power-of-two sub-steps, and the Galois group element each
// sub-step corresponds to for a given ring dimension and generator.
package galois

import "golang.org/x/exp/constraints"

// SubSteps decomposes a column-rotation amount into a signed, non-adjacent
// form (NAF) sequence of power-of-two sub-steps. Positive sub-steps are
// listed from most to least significant bit, followed by negative
// sub-steps in the same order. A positive sub-step whose magnitude is a
// multiple of polyDegree/2 rotates a ciphertext back onto itself and is
// dropped; negative sub-steps are never dropped.
//
// Applying every returned sub-step as a sequential rotation reproduces a
// rotation by steps, using at most one rotation per set bit of the NAF
// representation instead of one per unit step.
func SubSteps[T constraints.Signed](steps, polyDegree T) []T {
	x, n := int64(steps), int64(polyDegree)

	xh := x >> 1
	x3 := x + xh
	c := xh ^ x3
	nPos := x3 & c
	nMinus := xh & c
	mask := (n >> 1) - 1

	var out []int64
	for bit := 63; bit >= 0; bit-- {
		if nPos&(int64(1)<<uint(bit)) == 0 {
			continue
		}
		step := (int64(1) << uint(bit)) & mask
		if step == 0 {
			continue
		}
		out = append(out, int64(1)<<uint(bit))
	}
	for bit := 63; bit >= 0; bit-- {
		if nMinus&(int64(1)<<uint(bit)) == 0 {
			continue
		}
		out = append(out, -(int64(1) << uint(bit)))
	}

	result := make([]T, len(out))
	for i, v := range out {
		result[i] = T(v)
	}
	return result
}
