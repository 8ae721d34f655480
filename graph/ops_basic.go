package graph

import "fmt"

func isCiphertextOrPlaintext(k DataKind) bool {
	return k == DataCiphertext || k == DataPlaintext || k == DataPlaintextRingT
}

func levelsCompatible(x, y DataNode) bool {
	if x.Kind == DataPlaintextRingT || y.Kind == DataPlaintextRingT {
		return true
	}
	return x.Level == y.Level && x.IsNTT == y.IsNTT
}

// operandRefs collapses a self-edge: when x and y are the same node, the
// operator records a single operand edge rather than a duplicate one.
func operandRefs(x, y DataRef) []DataRef {
	if x == y {
		return []DataRef{x}
	}
	return []DataRef{x, y}
}

func (b *Builder) addOrSub(kind ComputeKind, x, y DataRef, outputID string) (DataRef, error) {
	xd, yd := b.Data(x), b.Data(y)
	if !isCiphertextOrPlaintext(xd.Kind) || !isCiphertextOrPlaintext(yd.Kind) {
		return 0, fmt.Errorf("cannot %s: %w: unsupported operand kinds %q and %q", kind, ErrTypeMismatch, xd.Kind, yd.Kind)
	}
	if xd.Kind != DataCiphertext && yd.Kind != DataCiphertext {
		return 0, fmt.Errorf("cannot %s: %w: at least one operand must be a ciphertext", kind, ErrTypeMismatch)
	}
	if kind == OpSub && xd.Kind != DataCiphertext {
		return 0, fmt.Errorf("cannot sub: %w: left operand must be a ciphertext", ErrTypeMismatch)
	}
	if !levelsCompatible(xd, yd) {
		return 0, fmt.Errorf("cannot %s: %w: level/NTT mismatch", kind, ErrTypeMismatch)
	}

	ctOperand := xd
	if xd.Kind != DataCiphertext {
		ctOperand = yd
	}

	opRef := b.newCompute(ComputeNode{Kind: kind, Operands: operandRefs(x, y)})
	resolvedID, err := b.resolveID(outputID)
	if err != nil {
		return 0, err
	}
	result := b.newData(DataNode{
		Kind:    DataCiphertext,
		ID:      resolvedID,
		Level:   ctOperand.Level,
		Degree:  1,
		IsNTT:   ctOperand.IsNTT,
		SPLevel: -1,
	})
	b.ops[opRef].Result = result
	return result, nil
}

// Add defines ct+ct, ct+pt, pt+ct, or ct+pt-ringT. When x and y are the
// same node, only one operand edge is recorded.
func (b *Builder) Add(x, y DataRef, outputID string) (DataRef, error) {
	return b.addOrSub(OpAdd, x, y, outputID)
}

// Sub defines ct-ct or ct-pt. Unlike the Python original, the self-edge
// collapse applied to Add is applied uniformly here too.
func (b *Builder) Sub(x, y DataRef, outputID string) (DataRef, error) {
	return b.addOrSub(OpSub, x, y, outputID)
}

// Neg negates a ciphertext, inheriting its level and domain flags.
func (b *Builder) Neg(x DataRef, outputID string) (DataRef, error) {
	xd := b.Data(x)
	if xd.Kind != DataCiphertext {
		return 0, fmt.Errorf("cannot neg: %w: operand must be a ciphertext", ErrTypeMismatch)
	}
	opRef := b.newCompute(ComputeNode{Kind: OpNeg, Operands: []DataRef{x}})
	resolvedID, err := b.resolveID(outputID)
	if err != nil {
		return 0, err
	}
	result := b.newData(DataNode{Kind: DataCiphertext, ID: resolvedID, Level: xd.Level, Degree: 1, IsNTT: xd.IsNTT, SPLevel: -1})
	b.ops[opRef].Result = result
	return result, nil
}

func isPlaintextKind(k DataKind) bool {
	return k == DataPlaintext || k == DataPlaintextRingT || k == DataPlaintextMul
}

// Mult defines ct*ct (result is Ciphertext-3, degree 2), ct*pt, or pt*ct
// (result is Ciphertext-1). startBlockIdx selects the block of a
// compressed RingT plaintext operand and is required whenever either
// operand is compressed.
func (b *Builder) Mult(x, y DataRef, outputID string, startBlockIdx *int) (DataRef, error) {
	xd, yd := b.Data(x), b.Data(y)

	switch {
	case xd.Kind == DataCiphertext && yd.Kind == DataCiphertext:
		if xd.Level != yd.Level || xd.Degree != 1 || yd.Degree != 1 || xd.IsNTT != yd.IsNTT {
			return 0, fmt.Errorf("cannot mult: %w: ct*ct operand mismatch", ErrTypeMismatch)
		}
		opRef := b.newCompute(ComputeNode{Kind: OpMult, Operands: operandRefs(x, y)})
		resolvedID, err := b.resolveID(outputID)
		if err != nil {
			return 0, err
		}
		result := b.newData(DataNode{Kind: DataCiphertext3, ID: resolvedID, Level: xd.Level, Degree: 2, IsNTT: xd.IsNTT, SPLevel: -1})
		b.ops[opRef].Result = result
		return result, nil

	case xd.Kind == DataCiphertext && isPlaintextKind(yd.Kind):
		return b.multCtPt(x, xd, y, yd, outputID, startBlockIdx)

	case yd.Kind == DataCiphertext && isPlaintextKind(xd.Kind):
		return b.multCtPt(y, yd, x, xd, outputID, startBlockIdx)

	default:
		return 0, fmt.Errorf("cannot mult: %w: unsupported operand kinds %q and %q", ErrTypeMismatch, xd.Kind, yd.Kind)
	}
}

func (b *Builder) multCtPt(ct DataRef, ctd DataNode, pt DataRef, ptd DataNode, outputID string, startBlockIdx *int) (DataRef, error) {
	if ptd.Kind != DataPlaintextRingT && ptd.Level != ctd.Level {
		return 0, fmt.Errorf("cannot mult: %w: plaintext level does not match ciphertext level", ErrTypeMismatch)
	}

	var blockInfo []int
	if ptd.IsCompressed {
		if startBlockIdx == nil {
			return 0, fmt.Errorf("cannot mult: %w: compressed plaintext requires start_block_idx", ErrArg)
		}
		if *startBlockIdx < 0 || *startBlockIdx >= len(ptd.CompressedBlockInfo) {
			return 0, fmt.Errorf("cannot mult: %w: start_block_idx out of range", ErrRange)
		}
		blockInfo = []int{ptd.CompressedBlockInfo[*startBlockIdx]}
	}

	opRef := b.newCompute(ComputeNode{Kind: OpMult, Operands: operandRefs(ct, pt), CompressedBlockInfo: blockInfo})
	resolvedID, err := b.resolveID(outputID)
	if err != nil {
		return 0, err
	}
	result := b.newData(DataNode{Kind: DataCiphertext, ID: resolvedID, Level: ctd.Level, Degree: 1, IsNTT: ctd.IsNTT, SPLevel: -1})
	b.ops[opRef].Result = result
	return result, nil
}

func (b *Builder) relinKey(level int) DataRef {
	const id = "rlk_ntt"
	if ref, ok := b.keys.lookup(id); ok {
		b.raiseLevel(ref, level)
		return ref
	}
	ref := b.newData(DataNode{
		Kind:    DataRelinKey,
		ID:      id,
		Level:   level,
		Degree:  1,
		IsNTT:   true,
		IsMForm: true,
		SPLevel: b.Param.MaxSPLevel(),
	})
	b.keys.register(id, ref)
	return ref
}

// Relin consumes a Ciphertext-3 and produces a Ciphertext-1 at the same
// level, binding (and level-raising) the singleton relinearization key.
func (b *Builder) Relin(x DataRef, outputID string) (DataRef, error) {
	xd := b.Data(x)
	if xd.Kind != DataCiphertext3 {
		return 0, fmt.Errorf("cannot relin: %w: operand must be a degree-2 ciphertext", ErrTypeMismatch)
	}
	rlk := b.relinKey(xd.Level)
	opRef := b.newCompute(ComputeNode{Kind: OpRelin, Operands: []DataRef{x, rlk}})
	resolvedID, err := b.resolveID(outputID)
	if err != nil {
		return 0, err
	}
	result := b.newData(DataNode{Kind: DataCiphertext, ID: resolvedID, Level: xd.Level, Degree: 1, IsNTT: xd.IsNTT, SPLevel: -1})
	b.ops[opRef].Result = result
	return result, nil
}

// MultRelin is relin(mult(x, y)): when outputID is set the intermediate
// degree-2 ciphertext is given the deterministic id "<outputID>_ct3".
func (b *Builder) MultRelin(x, y DataRef, outputID string) (DataRef, error) {
	interID := ""
	if outputID != "" {
		interID = outputID + "_ct3"
	}
	ct3, err := b.Mult(x, y, interID, nil)
	if err != nil {
		return 0, err
	}
	return b.Relin(ct3, outputID)
}

// Rescale consumes one level from a degree-1 ciphertext.
func (b *Builder) Rescale(x DataRef, outputID string) (DataRef, error) {
	xd := b.Data(x)
	if xd.Kind != DataCiphertext || xd.Degree != 1 {
		return 0, fmt.Errorf("cannot rescale: %w: operand must be a degree-1 ciphertext", ErrTypeMismatch)
	}
	if xd.Level <= 0 {
		return 0, fmt.Errorf("cannot rescale: %w: level %d has no lower level", ErrRange, xd.Level)
	}
	opRef := b.newCompute(ComputeNode{Kind: OpRescale, Operands: []DataRef{x}})
	resolvedID, err := b.resolveID(outputID)
	if err != nil {
		return 0, err
	}
	result := b.newData(DataNode{Kind: DataCiphertext, ID: resolvedID, Level: xd.Level - 1, Degree: 1, IsNTT: xd.IsNTT, SPLevel: -1})
	b.ops[opRef].Result = result
	return result, nil
}

// DropLevel emits a chain of k DropLevel compute nodes; only the final
// result in the chain carries outputID.
func (b *Builder) DropLevel(x DataRef, k int, outputID string) (DataRef, error) {
	xd := b.Data(x)
	if xd.Kind != DataCiphertext {
		return 0, fmt.Errorf("cannot drop_level: %w: operand must be a ciphertext", ErrTypeMismatch)
	}
	if k < 0 || xd.Level < k {
		return 0, fmt.Errorf("cannot drop_level: %w: level %d cannot drop %d levels", ErrRange, xd.Level, k)
	}

	cur, curLevel, curNTT := x, xd.Level, xd.IsNTT
	for i := 0; i < k; i++ {
		opRef := b.newCompute(ComputeNode{Kind: OpDropLevel, Operands: []DataRef{cur}})
		id := ""
		if i == k-1 {
			id = outputID
		}
		resolvedID, err := b.resolveID(id)
		if err != nil {
			return 0, err
		}
		curLevel--
		next := b.newData(DataNode{Kind: DataCiphertext, ID: resolvedID, Level: curLevel, Degree: 1, IsNTT: curNTT, SPLevel: -1})
		b.ops[opRef].Result = next
		cur = next
	}
	return cur, nil
}

// RnsSpDecomp decomposes a ciphertext into the special-modulus RNS basis,
// the shared operand a hoisted rotation chain rotates from.
func (b *Builder) RnsSpDecomp(x DataRef, outputID string) (DataRef, error) {
	xd := b.Data(x)
	if xd.Kind != DataCiphertext {
		return 0, fmt.Errorf("cannot rns_sp_decomp: %w: operand must be a ciphertext", ErrTypeMismatch)
	}
	opRef := b.newCompute(ComputeNode{Kind: OpRnsSpDecomp, Operands: []DataRef{x}})
	resolvedID, err := b.resolveID(outputID)
	if err != nil {
		return 0, err
	}
	result := b.newData(DataNode{
		Kind: DataCiphertext, ID: resolvedID, Level: xd.Level, Degree: xd.Degree, IsNTT: xd.IsNTT,
		SPLevel: -1, PolyRnsSpDecomped: true,
	})
	b.ops[opRef].Result = result
	return result, nil
}

// ToNtt converts a BFV ciphertext out of coefficient form.
func (b *Builder) ToNtt(x DataRef, outputID string) (DataRef, error) {
	xd := b.Data(x)
	if xd.Kind != DataCiphertext || xd.IsNTT {
		return 0, fmt.Errorf("cannot to_ntt: %w: operand must be a non-NTT ciphertext", ErrTypeMismatch)
	}
	return b.convert(OpToNtt, x, xd, outputID, true, xd.IsMForm)
}

// ToInvNtt converts a BFV ciphertext back to coefficient form.
func (b *Builder) ToInvNtt(x DataRef, outputID string) (DataRef, error) {
	xd := b.Data(x)
	if xd.Kind != DataCiphertext || !xd.IsNTT {
		return 0, fmt.Errorf("cannot to_inv_ntt: %w: operand must be an NTT ciphertext", ErrTypeMismatch)
	}
	return b.convert(OpToInvNtt, x, xd, outputID, false, false)
}

// ToMForm converts a ciphertext into Montgomery representation.
func (b *Builder) ToMForm(x DataRef, outputID string) (DataRef, error) {
	xd := b.Data(x)
	if xd.Kind != DataCiphertext || xd.IsMForm {
		return 0, fmt.Errorf("cannot to_mf: %w: operand must not already be in Montgomery form", ErrTypeMismatch)
	}
	return b.convert(OpToMForm, x, xd, outputID, xd.IsNTT, true)
}

// ToMul converts a ciphertext into the NTT+Montgomery representation
// used as a multiplication operand.
func (b *Builder) ToMul(x DataRef, outputID string) (DataRef, error) {
	xd := b.Data(x)
	if xd.Kind != DataCiphertext || xd.IsNTT || xd.IsMForm {
		return 0, fmt.Errorf("cannot to_mul: %w: operand must be coefficient-form, non-Montgomery", ErrTypeMismatch)
	}
	return b.convert(OpToMul, x, xd, outputID, true, true)
}

func (b *Builder) convert(kind ComputeKind, x DataRef, xd DataNode, outputID string, isNTT, isMForm bool) (DataRef, error) {
	opRef := b.newCompute(ComputeNode{Kind: kind, Operands: []DataRef{x}})
	resolvedID, err := b.resolveID(outputID)
	if err != nil {
		return 0, err
	}
	result := b.newData(DataNode{
		Kind: DataCiphertext, ID: resolvedID, Level: xd.Level, Degree: xd.Degree,
		IsNTT: isNTT, IsMForm: isMForm, SPLevel: -1,
	})
	b.ops[opRef].Result = result
	return result, nil
}
