package graph

import "fmt"

// plainOperand names the right-hand operand of a single ciphertext*plaintext
// product inside a fused slice: either an ordinary plaintext node, or a
// shared compressed plaintext node together with the block index this
// particular ciphertext multiplies against.
type plainOperand struct {
	ref        DataRef
	blockIdx   *int
	compressed bool
}

func plainOperands(compressed DataRef, n int) []plainOperand {
	ops := make([]plainOperand, n)
	for i := range ops {
		idx := i
		ops[i] = plainOperand{ref: compressed, blockIdx: &idx, compressed: true}
	}
	return ops
}

func uncompressedOperands(y []DataRef) []plainOperand {
	ops := make([]plainOperand, len(y))
	for i, ref := range y {
		ops[i] = plainOperand{ref: ref}
	}
	return ops
}

// ctPtSlice fuses len(xs) ciphertext*plaintext products (and, for
// CmpacSum, one running-sum accumulator appended as the last element of
// xs) into a single compute node.
func (b *Builder) ctPtSlice(kind ComputeKind, xs []DataRef, ys []plainOperand) (DataRef, error) {
	level := b.Data(xs[0]).Level
	for _, xi := range xs {
		xd := b.Data(xi)
		if xd.Kind != DataCiphertext || xd.Level != level {
			return 0, fmt.Errorf("cannot fuse ct*pt slice: %w: ciphertext level mismatch", ErrTypeMismatch)
		}
	}

	compressed := ys[0].compressed
	var ptType string
	var blockInfo []int
	for _, y := range ys {
		yd := b.Data(y.ref)
		if compressed != y.compressed {
			return 0, fmt.Errorf("cannot fuse ct*pt slice: %w: mixed compressed/plain operands", ErrTypeMismatch)
		}
		if compressed {
			if !yd.IsCompressed {
				return 0, fmt.Errorf("cannot fuse ct*pt slice: %w: operand is not a compressed plaintext", ErrTypeMismatch)
			}
			blockInfo = append(blockInfo, yd.CompressedBlockInfo[*y.blockIdx])
			continue
		}
		switch yd.Kind {
		case DataPlaintextRingT:
			ptType = string(DataPlaintextRingT)
		case DataPlaintext:
			ptType = string(DataPlaintext)
		default:
			return 0, fmt.Errorf("cannot fuse ct*pt slice: %w: unsupported plaintext kind %q", ErrTypeMismatch, yd.Kind)
		}
	}

	operands := append([]DataRef(nil), xs...)
	if compressed {
		operands = append(operands, ys[0].ref)
	} else {
		for _, y := range ys {
			operands = append(operands, y.ref)
		}
	}

	sumCnt := len(xs)
	if kind == OpCmpacSum {
		sumCnt = len(xs) - 1
	}

	opRef := b.newCompute(ComputeNode{Kind: kind, Operands: operands, SumCnt: sumCnt, PtType: ptType, CompressedBlockInfo: blockInfo})
	resolvedID, err := b.resolveID("")
	if err != nil {
		return 0, err
	}
	x0 := b.Data(xs[0])
	result := b.newData(DataNode{Kind: DataCiphertext, ID: resolvedID, Level: level, Degree: 1, IsNTT: x0.IsNTT, SPLevel: -1})
	b.ops[opRef].Result = result
	return result, nil
}

var fuseSliceSizes = []int{16, 8, 4, 2, 1}

func greedySliceSize(remaining int) int {
	for _, s := range fuseSliceSizes {
		if remaining >= s {
			return s
		}
	}
	return 1
}

// CtPtMultAccumulate computes the fused inner product sum(x[i]*y[i]) over
// equal-length ciphertext and plaintext vectors, greedily slicing the
// vector into power-of-two CmpSum/CmpacSum compute nodes (largest slice
// first). outputMForm, if non-nil, forces (or suppresses) a trailing
// to_mf conversion; nil defaults to following the ciphertexts' own
// Montgomery flag.
func (b *Builder) CtPtMultAccumulate(x, y []DataRef, outputMForm *bool) (DataRef, error) {
	return b.ctPtMultAccumulate(x, uncompressedOperands(y), outputMForm)
}

// CtPtMultAccumulateCompressed is CtPtMultAccumulate against a single
// block-compressed plaintext shared across every slot of x.
func (b *Builder) CtPtMultAccumulateCompressed(x []DataRef, compressed DataRef, outputMForm *bool) (DataRef, error) {
	cd := b.Data(compressed)
	if !cd.IsCompressed {
		return 0, fmt.Errorf("cannot ct_pt_mult_accumulate: %w: operand is not a compressed plaintext", ErrTypeMismatch)
	}
	if len(x) != len(cd.CompressedBlockInfo) {
		return 0, fmt.Errorf("cannot ct_pt_mult_accumulate: %w: vector length does not match block count", ErrArg)
	}
	return b.ctPtMultAccumulate(x, plainOperands(compressed, len(x)), outputMForm)
}

func (b *Builder) ctPtMultAccumulate(x []DataRef, y []plainOperand, outputMForm *bool) (DataRef, error) {
	n := len(x)
	if n == 0 || n != len(y) {
		return 0, fmt.Errorf("cannot ct_pt_mult_accumulate: %w: mismatched or empty vectors", ErrArg)
	}

	firstSize := greedySliceSize(n)
	partialSum, err := b.ctPtSlice(OpCmpSum, x[:firstSize], y[:firstSize])
	if err != nil {
		return 0, err
	}
	processed := firstSize

	for processed < n {
		size := greedySliceSize(n - processed)
		xs := append(append([]DataRef(nil), x[processed:processed+size]...), partialSum)
		ys := y[processed : processed+size]
		partialSum, err = b.ctPtSlice(OpCmpacSum, xs, ys)
		if err != nil {
			return 0, err
		}
		processed += size
	}

	x0 := b.Data(x[0])
	wantMForm := x0.IsMForm
	if outputMForm != nil {
		wantMForm = *outputMForm
	}
	if wantMForm {
		return b.ToMForm(partialSum, "")
	}
	return partialSum, nil
}

// CtPtMultAccumulateChained is the alternate fused inner-product
// compiler: it slices only from {8, 4, 2, 1} and chains each slice's
// CmpSum result onto the running total with a plain Add rather than
// folding the accumulator into the next CmpacSum.
func (b *Builder) CtPtMultAccumulateChained(x, y []DataRef) (DataRef, error) {
	n := len(x)
	if n == 0 || n != len(y) {
		return 0, fmt.Errorf("cannot ct_pt_mult_accumulate_1: %w: mismatched or empty vectors", ErrArg)
	}
	ys := uncompressedOperands(y)

	var partialSum DataRef
	haveSum := false
	processed := 0
	sizes := []int{8, 4, 2, 1}
	for processed < n {
		size := 1
		for _, s := range sizes {
			if n-processed >= s {
				size = s
				break
			}
		}
		cc, err := b.ctPtSlice(OpCmpSum, x[processed:processed+size], ys[processed:processed+size])
		if err != nil {
			return 0, err
		}
		if !haveSum {
			partialSum, haveSum = cc, true
		} else {
			partialSum, err = b.Add(partialSum, cc, "")
			if err != nil {
				return 0, err
			}
		}
		processed += size
	}

	if b.Data(x[0]).IsMForm {
		return b.ToMForm(partialSum, "")
	}
	return partialSum, nil
}
