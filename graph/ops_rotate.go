package graph

import (
	"fmt"

	"github.com/cipherflow-fhe/lattisense/galois"
)

func (b *Builder) galoisKeyCol(id string, galoisElement, level int) DataRef {
	if ref, ok := b.keys.lookup(id); ok {
		b.raiseLevel(ref, level)
		return ref
	}
	ref := b.newData(DataNode{
		Kind:          DataGaloisKey,
		ID:            id,
		Level:         level,
		Degree:        1,
		IsNTT:         true,
		IsMForm:       true,
		SPLevel:       b.Param.MaxSPLevel(),
		GaloisElement: galoisElement,
	})
	b.keys.register(id, ref)
	return ref
}

func (b *Builder) galoisKeyRow(level int) DataRef {
	const id = "glk_ntt_row"
	if ref, ok := b.keys.lookup(id); ok {
		b.raiseLevel(ref, level)
		return ref
	}
	ref := b.newData(DataNode{
		Kind:          DataGaloisKey,
		ID:            id,
		Level:         level,
		Degree:        1,
		IsNTT:         true,
		IsMForm:       true,
		SPLevel:       b.Param.MaxSPLevel(),
		GaloisElement: galois.RowElement(b.Param.N),
	})
	b.keys.register(id, ref)
	return ref
}

// RotateCols decomposes each requested step into a NAF chain of
// power-of-two sub-rotations under the hybrid key-switching mode, and
// returns one result ciphertext per requested step. Partial running sums
// are memoized across the whole steps vector.
func (b *Builder) RotateCols(x DataRef, steps []int, outputID string) ([]DataRef, error) {
	return b.rotateCols(x, steps, outputID, galois.Hybrid, galois.GeneratorDefault, Lattigo)
}

// RotateColsMode is RotateCols with an explicit hybrid/hoisted knob.
func (b *Builder) RotateColsMode(x DataRef, steps []int, outputID string, mode galois.Mode) ([]DataRef, error) {
	return b.rotateCols(x, steps, outputID, mode, galois.GeneratorDefault, Lattigo)
}

// SealRotateCols is RotateCols under the SEAL Galois generator, always
// in hybrid mode, and labels its compute nodes lib=seal.
func (b *Builder) SealRotateCols(x DataRef, steps []int, outputID string) ([]DataRef, error) {
	return b.rotateCols(x, steps, outputID, galois.Hybrid, galois.GeneratorSEAL, SEAL)
}

func (b *Builder) rotateCols(x DataRef, steps []int, outputID string, mode galois.Mode, gen int, lib Lib) ([]DataRef, error) {
	xd := b.Data(x)
	if xd.Kind != DataCiphertext {
		return nil, fmt.Errorf("cannot rotate_cols: %w: operand must be a ciphertext", ErrTypeMismatch)
	}

	half := b.Param.N / 2
	rotatedInput := map[int]DataRef{0: x}
	decomposed := map[int]DataRef{}
	output := make([]DataRef, 0, len(steps))

	for _, step := range steps {
		subSteps := galois.SubSteps(step, b.Param.N)
		sum := 0
		for i, subStep := range subSteps {
			if subStep%half == 0 {
				sum += subStep
				continue
			}
			target := sum + subStep
			if _, ok := rotatedInput[target]; !ok {
				galElem := galois.ColumnElement(subStep, b.Param.N, gen)
				glkID := fmt.Sprintf("glk_ntt_col_%d", galElem)
				glk := b.galoisKeyCol(glkID, galElem, xd.Level)

				source := rotatedInput[sum]
				if mode == galois.Hoisted {
					dec, ok := decomposed[sum]
					if !ok {
						var err error
						dec, err = b.RnsSpDecomp(rotatedInput[sum], "")
						if err != nil {
							return nil, err
						}
						decomposed[sum] = dec
					}
					source = dec
				}

				opRef := b.newCompute(ComputeNode{Kind: OpRotateCol, Operands: []DataRef{source, glk}, Step: subStep, Lib: lib})
				id := ""
				if i == len(subSteps)-1 && outputID != "" {
					id = fmt.Sprintf("%s_step%d", outputID, step)
				}
				resolvedID, err := b.resolveID(id)
				if err != nil {
					return nil, err
				}
				result := b.newData(DataNode{Kind: DataCiphertext, ID: resolvedID, Level: xd.Level, Degree: 1, IsNTT: xd.IsNTT, SPLevel: -1})
				b.ops[opRef].Result = result
				rotatedInput[target] = result
			}
			sum = target
		}
		output = append(output, rotatedInput[sum])
	}
	return output, nil
}

// AdvancedRotateCols emits exactly one RotateColUnit per requested step
// using the Galois key for that exact step, skipping NAF decomposition.
func (b *Builder) AdvancedRotateCols(x DataRef, steps []int, outputID string, outCtType OutCtType, mode galois.Mode) ([]DataRef, error) {
	return b.advancedRotateCols(x, steps, outputID, outCtType, mode, galois.GeneratorDefault, Lattigo)
}

// SealAdvancedRotateCols is AdvancedRotateCols under the SEAL generator.
func (b *Builder) SealAdvancedRotateCols(x DataRef, steps []int, outputID string, outCtType OutCtType, mode galois.Mode) ([]DataRef, error) {
	return b.advancedRotateCols(x, steps, outputID, outCtType, mode, galois.GeneratorSEAL, SEAL)
}

func (b *Builder) advancedRotateCols(x DataRef, steps []int, outputID string, outCtType OutCtType, mode galois.Mode, gen int, lib Lib) ([]DataRef, error) {
	xd := b.Data(x)
	if xd.Kind != DataCiphertext {
		return nil, fmt.Errorf("cannot advanced_rotate_cols: %w: operand must be a ciphertext", ErrTypeMismatch)
	}

	source := x
	if mode == galois.Hoisted {
		decomposedID := fmt.Sprintf("decomposed_%s", xd.ID)
		dec, err := b.RnsSpDecomp(x, decomposedID)
		if err != nil {
			return nil, err
		}
		source = dec
	}

	output := make([]DataRef, 0, len(steps))
	for _, step := range steps {
		galElem := galois.ColumnElement(step, b.Param.N, gen)
		glkID := fmt.Sprintf("glk_ntt_col_%d", galElem)
		glk := b.galoisKeyCol(glkID, galElem, xd.Level)

		opRef := b.newCompute(ComputeNode{Kind: OpRotateCol, Operands: []DataRef{source, glk}, Step: step, Lib: lib})
		id := ""
		if outputID != "" {
			id = fmt.Sprintf("%s_step%d", outputID, step)
		}
		resolvedID, err := b.resolveID(id)
		if err != nil {
			return nil, err
		}
		isNTT := xd.IsNTT
		if b.Param.Scheme == "BFV" {
			isNTT = outCtType != OutCt
		}
		result := b.newData(DataNode{
			Kind: DataCiphertext, ID: resolvedID, Level: xd.Level, Degree: 1,
			IsNTT: isNTT, IsMForm: outCtType == OutCtNTTMF, SPLevel: -1,
		})
		b.ops[opRef].Result = result
		output = append(output, result)
	}
	return output, nil
}

// RotateRows swaps a ciphertext's two plaintext-slot rows via a single
// conjugation automorphism.
func (b *Builder) RotateRows(x DataRef, outputID string) (DataRef, error) {
	return b.rotateRows(x, outputID, Lattigo)
}

// SealRotateRows is RotateRows labeled for the SEAL backend. The row
// automorphism's Galois element does not depend on the generator, so the
// key itself is shared with RotateRows.
func (b *Builder) SealRotateRows(x DataRef, outputID string) (DataRef, error) {
	return b.rotateRows(x, outputID, SEAL)
}

func (b *Builder) rotateRows(x DataRef, outputID string, lib Lib) (DataRef, error) {
	xd := b.Data(x)
	if xd.Kind != DataCiphertext {
		return 0, fmt.Errorf("cannot rotate_rows: %w: operand must be a ciphertext", ErrTypeMismatch)
	}
	glk := b.galoisKeyRow(xd.Level)
	opRef := b.newCompute(ComputeNode{Kind: OpRotateRow, Operands: []DataRef{x, glk}, Lib: lib})
	resolvedID, err := b.resolveID(outputID)
	if err != nil {
		return 0, err
	}
	result := b.newData(DataNode{Kind: DataCiphertext, ID: resolvedID, Level: xd.Level, Degree: 1, IsNTT: xd.IsNTT, SPLevel: -1})
	b.ops[opRef].Result = result
	return result, nil
}

func (b *Builder) switchKey(id string, level int) DataRef {
	if ref, ok := b.keys.lookup(id); ok {
		return ref
	}
	ref := b.newData(DataNode{
		Kind: DataSwitchKey, ID: id, Level: level, Degree: 1,
		IsNTT: true, IsMForm: true, SPLevel: b.Param.MaxSPLevel(),
	})
	b.keys.register(id, ref)
	return ref
}

// Bootstrap refreshes a depleted CKKS ciphertext back to a usable level.
// It is valid only at level 0 and binds the relin key, the row Galois
// key, the ring's hard-coded column-rotation key set, and the two
// bootstrap switch keys.
func (b *Builder) Bootstrap(x DataRef, outputID string) (DataRef, error) {
	if b.Param.Scheme != "CKKS" {
		return 0, fmt.Errorf("cannot bootstrap: %w: only supported for CKKS", ErrTypeMismatch)
	}
	if b.Param.Bootstrap == nil {
		return 0, fmt.Errorf("cannot bootstrap: %w: parameter set has no bootstrap levels", ErrConfig)
	}
	xd := b.Data(x)
	if xd.Kind != DataCiphertext {
		return 0, fmt.Errorf("cannot bootstrap: %w: operand must be a ciphertext", ErrTypeMismatch)
	}
	if xd.Level != 0 {
		return 0, fmt.Errorf("cannot bootstrap: %w: operand must be at level 0, got %d", ErrRange, xd.Level)
	}

	columnSteps, err := galois.BootstrapColumnSteps(b.Param.N)
	if err != nil {
		return 0, fmt.Errorf("cannot bootstrap: %w", ErrNotSupported)
	}

	operands := []DataRef{x, b.relinKey(b.Param.MaxLevel)}
	for _, step := range columnSteps {
		galElem := galois.ColumnElement(step, b.Param.N, galois.GeneratorDefault)
		glkID := fmt.Sprintf("glk_ntt_col_%d", galElem)
		operands = append(operands, b.galoisKeyCol(glkID, galElem, b.Param.MaxLevel))
	}
	operands = append(operands, b.galoisKeyRow(b.Param.MaxLevel))
	operands = append(operands, b.switchKey("swk_dts", 0))
	operands = append(operands, b.switchKey("swk_std", b.Param.MaxLevel))

	opRef := b.newCompute(ComputeNode{Kind: OpBootstrap, Operands: operands})
	resolvedID, err := b.resolveID(outputID)
	if err != nil {
		return 0, err
	}
	result := b.newData(DataNode{
		Kind: DataCiphertext, ID: resolvedID, Level: b.Param.Bootstrap.OutputLevel, Degree: 1, IsNTT: xd.IsNTT, SPLevel: -1,
	})
	b.ops[opRef].Result = result
	return result, nil
}
