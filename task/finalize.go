package task

import (
	"fmt"
	"strings"

	"github.com/cipherflow-fhe/lattisense/graph"
	"github.com/cipherflow-fhe/lattisense/param"
)

// Finalize validates a Builder's accumulated graph against its declared
// arguments and assembles the two serializable documents that describe
// it: the full annotated graph (MegaAG) and the compact calling
// convention (TaskSignature). It performs no I/O; call WriteArtifacts to
// persist the result.
//
// Finalize does not mutate b. A Builder is scoped to one task; start a
// fresh one (via graph.New) to build the next.
func Finalize(b *graph.Builder, name string, inputs, outputs, offlineInputs []Argument) (*MegaAG, *TaskSignature, error) {
	usedIDs := make(map[string]bool)

	inputRefs, inputSigs, err := processArgs(b, inputs, "in", usedIDs)
	if err != nil {
		return nil, nil, err
	}
	outputRefs, outputSigs, err := processArgs(b, outputs, "out", usedIDs)
	if err != nil {
		return nil, nil, err
	}
	offlineRefs, offlineSigs, err := processArgs(b, offlineInputs, "offline", usedIDs)
	if err != nil {
		return nil, nil, err
	}

	rlkLevel := -1
	var glk glkSignature
	swkSignature := map[string][2]int{}
	var keyRefs []graph.DataRef

	if ref, ok := b.KeyRef("rlk_ntt"); ok {
		rlkLevel = b.Data(ref).Level
		keyRefs = append(keyRefs, ref)
	}
	for _, id := range b.KeyOrder() {
		if !strings.Contains(id, "col") && id != "glk_ntt_row" {
			continue
		}
		ref, _ := b.KeyRef(id)
		d := b.Data(ref)
		glk = append(glk, glkLevel{Element: d.GaloisElement, Level: d.Level})
		keyRefs = append(keyRefs, ref)
	}
	for _, id := range b.KeyOrder() {
		if !strings.Contains(id, "swk") {
			continue
		}
		ref, _ := b.KeyRef(id)
		d := b.Data(ref)
		swkSignature[id] = [2]int{d.Level, d.SPLevel}
		keyRefs = append(keyRefs, ref)
	}

	if err := validateReachability(b, append(append(append([]graph.DataRef{}, inputRefs...), offlineRefs...), keyRefs...), outputRefs); err != nil {
		return nil, nil, err
	}

	data := make(map[int]dataRecord, b.DataLen())
	for i, d := range b.AllData() {
		data[i] = buildDataRecord(d)
	}
	compute := make(map[int]computeRecord, b.ComputeLen())
	for i, op := range b.AllCompute() {
		compute[i] = buildComputeRecord(op)
	}

	mag := &MegaAG{
		Name:          name,
		Algorithm:     string(b.Param.Scheme),
		Parameter:     buildParameterDoc(b.Param),
		Data:          data,
		Compute:       compute,
		Inputs:        append(refIndices(inputRefs), refIndices(keyRefs)...),
		Outputs:       refIndices(outputRefs),
		OfflineInputs: refIndices(offlineRefs),
	}

	sig := &TaskSignature{
		Algorithm: string(b.Param.Scheme),
		Key:       keySignature{Rlk: rlkLevel, Glk: glk, CkksBtpSwk: swkSignature},
		Online:    append(inputSigs, outputSigs...),
		Offline:   offlineSigs,
	}
	if len(swkSignature) == 0 {
		sig.Key.CkksBtpSwk = nil
	}

	return mag, sig, nil
}

func processArgs(b *graph.Builder, args []Argument, phase string, usedIDs map[string]bool) ([]graph.DataRef, []signatureRecord, error) {
	var refs []graph.DataRef
	var sigs []signatureRecord
	for _, arg := range args {
		if usedIDs[arg.ID] {
			return nil, nil, fmt.Errorf("cannot finalize task: %w: duplicate argument id %q", graph.ErrArg, arg.ID)
		}
		usedIDs[arg.ID] = true

		flat := Flatten(arg.Data)
		if len(flat) == 0 {
			return nil, nil, fmt.Errorf("cannot finalize task: %w: argument %q has no data nodes", graph.ErrArg, arg.ID)
		}
		refs = append(refs, flat...)

		first := b.Data(flat[0])
		level := first.Level
		sigs = append(sigs, signatureRecord{
			ID: arg.ID, Type: first.Kind, Size: Shape(arg.Data), Level: &level, Phase: phase,
		})
	}
	return refs, sigs, nil
}

// validateReachability enforces the two structural invariants a
// finalized graph must satisfy: every externally supplied node (input,
// offline input, or key) must feed at least one compute node, and every
// node in the graph must either feed a compute node or be a declared
// output.
func validateReachability(b *graph.Builder, supplied []graph.DataRef, outputs []graph.DataRef) error {
	for _, ref := range supplied {
		if len(b.ConsumersOf(ref)) == 0 {
			d := b.Data(ref)
			return fmt.Errorf("cannot finalize task: %w: input %q is never consumed", graph.ErrGraph, d.ID)
		}
	}

	isOutput := make(map[graph.DataRef]bool, len(outputs))
	for _, ref := range outputs {
		isOutput[ref] = true
	}
	for i := 0; i < b.DataLen(); i++ {
		ref := graph.DataRef(i)
		if len(b.ConsumersOf(ref)) > 0 || isOutput[ref] {
			continue
		}
		d := b.Data(ref)
		return fmt.Errorf("cannot finalize task: %w: data node %q is dangling (no consumer, not an output)", graph.ErrGraph, d.ID)
	}
	return nil
}

func refIndices(refs []graph.DataRef) []int {
	out := make([]int, len(refs))
	for i, r := range refs {
		out[i] = int(r)
	}
	return out
}

func buildParameterDoc(p param.Param) parameterDoc {
	pd := parameterDoc{N: p.N, MaxLevel: p.MaxLevel, Q: p.Q, P: p.P}
	if p.Scheme == param.BFV {
		t := p.T
		pd.T = &t
	}
	if p.Bootstrap != nil {
		scale := p.Scale
		pd.Scale = &scale
		cts, em, stc, out := p.Bootstrap.CtsStartLevel, p.Bootstrap.EvalModStartLevel, p.Bootstrap.StcStartLevel, p.Bootstrap.OutputLevel
		pd.BtpCtsStartLevel = &cts
		pd.BtpEvalModStartLevel = &em
		pd.BtpStcStartLevel = &stc
		pd.BtpOutputLevel = &out
	}
	return pd
}
