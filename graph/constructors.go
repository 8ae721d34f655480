package graph

// NewBFVCiphertext registers a BFV ciphertext leaf (not produced by any
// operator) at the given level, with the caller-supplied id or a
// generated one if id is "".
func (b *Builder) NewBFVCiphertext(id string, level int) (DataRef, error) {
	return b.newLeafCiphertext(id, level, false)
}

// NewCKKSCiphertext registers a CKKS ciphertext leaf; CKKS ciphertexts
// are NTT-domain by default.
func (b *Builder) NewCKKSCiphertext(id string, level int) (DataRef, error) {
	return b.newLeafCiphertext(id, level, true)
}

func (b *Builder) newLeafCiphertext(id string, level int, isNTT bool) (DataRef, error) {
	resolved, err := b.resolveID(id)
	if err != nil {
		return 0, err
	}
	return b.newData(DataNode{
		Kind:    DataCiphertext,
		ID:      resolved,
		Level:   level,
		Degree:  1,
		IsNTT:   isNTT,
		SPLevel: -1,
	}), nil
}

// NewBFVPlaintext registers a BFV plaintext leaf.
func (b *Builder) NewBFVPlaintext(id string, level int) (DataRef, error) {
	return b.newPlaintext(id, level, false)
}

// NewCKKSPlaintext registers a CKKS plaintext leaf; CKKS plaintexts are
// NTT-domain by default.
func (b *Builder) NewCKKSPlaintext(id string, level int) (DataRef, error) {
	return b.newPlaintext(id, level, true)
}

func (b *Builder) newPlaintext(id string, level int, isNTT bool) (DataRef, error) {
	resolved, err := b.resolveID(id)
	if err != nil {
		return 0, err
	}
	return b.newData(DataNode{
		Kind:    DataPlaintext,
		ID:      resolved,
		Level:   level,
		IsNTT:   isNTT,
		SPLevel: -1,
	}), nil
}

// NewPlaintextRingT registers a residue-modulo-t plaintext used as the
// right-hand side of a ct*pt or ct+pt operation that ignores level.
func (b *Builder) NewPlaintextRingT(id string) (DataRef, error) {
	resolved, err := b.resolveID(id)
	if err != nil {
		return 0, err
	}
	return b.newData(DataNode{
		Kind:    DataPlaintextRingT,
		ID:      resolved,
		Level:   0,
		SPLevel: -1,
	}), nil
}

// NewCompressedPlaintextRingT registers a block-compressed RingT
// plaintext carrying per-block metadata consumed by ct_pt_mult_accumulate.
func (b *Builder) NewCompressedPlaintextRingT(id string, blockInfo []int) (DataRef, error) {
	if len(blockInfo) == 0 {
		return 0, ErrArg
	}
	resolved, err := b.resolveID(id)
	if err != nil {
		return 0, err
	}
	return b.newData(DataNode{
		Kind:                DataPlaintextRingT,
		ID:                  resolved,
		Level:               0,
		SPLevel:             -1,
		IsCompressed:        true,
		CompressedBlockInfo: append([]int(nil), blockInfo...),
	}), nil
}

// NewPlaintextMul registers a preconverted (NTT + Montgomery) plaintext
// for ct*pt.
func (b *Builder) NewPlaintextMul(id string, level int) (DataRef, error) {
	resolved, err := b.resolveID(id)
	if err != nil {
		return 0, err
	}
	return b.newData(DataNode{
		Kind:    DataPlaintextMul,
		ID:      resolved,
		Level:   level,
		IsNTT:   true,
		IsMForm: true,
		SPLevel: -1,
	}), nil
}
