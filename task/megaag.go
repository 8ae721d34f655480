package task

import (
	"encoding/json"
	"sort"

	"github.com/cipherflow-fhe/lattisense/graph"
)

// parameterDoc mirrors param.Param: t is emitted for BFV only, and scale
// and the CKKS bootstrap checkpoints only when the parameter set carries
// bootstrap levels.
type parameterDoc struct {
	N        int      `json:"n"`
	MaxLevel int      `json:"max_level"`
	Q        []uint64 `json:"q"`
	P        []uint64 `json:"p"`

	T     *uint64  `json:"t,omitempty"`
	Scale *float64 `json:"scale,omitempty"`

	BtpCtsStartLevel     *int `json:"btp_cts_start_level,omitempty"`
	BtpEvalModStartLevel *int `json:"btp_eval_mod_start_level,omitempty"`
	BtpStcStartLevel     *int `json:"btp_stc_start_level,omitempty"`
	BtpOutputLevel       *int `json:"btp_output_level,omitempty"`
}

// dataRecord is one entry of mega_ag.json's "data" map, keyed by the
// node's graph.DataRef index.
type dataRecord struct {
	ID      string         `json:"id"`
	Type    graph.DataKind `json:"type"`
	Level   int            `json:"level"`
	Degree  int            `json:"degree"`
	IsNTT   bool           `json:"is_ntt"`
	IsMForm bool           `json:"is_mform"`

	SPLevel           *int  `json:"sp_level,omitempty"`
	IsCompressed      *bool `json:"is_compressed,omitempty"`
	PolyRnsSpDecomped *bool `json:"poly1_rns_sp_decomped,omitempty"`
	GaloisElement     *int  `json:"galois_element,omitempty"`
}

func buildDataRecord(d graph.DataNode) dataRecord {
	rec := dataRecord{
		ID: d.ID, Type: d.Kind, Level: d.Level, Degree: d.Degree,
		IsNTT: d.IsNTT, IsMForm: d.IsMForm,
	}
	if d.SPLevel >= 0 {
		sp := d.SPLevel
		rec.SPLevel = &sp
	}
	if d.Kind == graph.DataPlaintextRingT && d.IsCompressed {
		t := true
		rec.IsCompressed = &t
	}
	if d.Kind == graph.DataCiphertext || d.Kind == graph.DataCiphertext3 {
		v := d.PolyRnsSpDecomped
		rec.PolyRnsSpDecomped = &v
	}
	if d.Kind == graph.DataGaloisKey {
		e := d.GaloisElement
		rec.GaloisElement = &e
	}
	return rec
}

// computeRecord is one entry of mega_ag.json's "compute" map, keyed by
// the node's graph.ComputeRef index.
type computeRecord struct {
	ID      string            `json:"id"`
	Type    graph.ComputeKind `json:"type"`
	Inputs  []int             `json:"inputs"`
	Outputs []int             `json:"outputs"`

	Step                *int       `json:"step,omitempty"`
	Lib                 *graph.Lib `json:"lib,omitempty"`
	SumCnt              *int       `json:"sum_cnt,omitempty"`
	PtType              *string    `json:"pt_type,omitempty"`
	CompressedBlockInfo []int      `json:"compressed_block_info,omitempty"`
}

func buildComputeRecord(op graph.ComputeNode) computeRecord {
	ins := make([]int, len(op.Operands))
	for i, o := range op.Operands {
		ins[i] = int(o)
	}
	rec := computeRecord{ID: op.ID, Type: op.Kind, Inputs: ins, Outputs: []int{int(op.Result)}}
	if op.Kind == graph.OpRotateCol {
		s := op.Step
		rec.Step = &s
	}
	if (op.Kind == graph.OpRotateCol || op.Kind == graph.OpRotateRow) && op.Lib != graph.Lattigo {
		l := op.Lib
		rec.Lib = &l
	}
	if op.Kind == graph.OpCmpSum || op.Kind == graph.OpCmpacSum {
		c := op.SumCnt
		rec.SumCnt = &c
		p := op.PtType
		rec.PtType = &p
	}
	if len(op.CompressedBlockInfo) > 0 {
		rec.CompressedBlockInfo = op.CompressedBlockInfo
	}
	return rec
}

// MegaAG is the full annotated computation graph for a finalized task:
// every data and compute node, and the index lists that mark which data
// nodes are externally supplied or returned.
type MegaAG struct {
	Name      string       `json:"name"`
	Algorithm string       `json:"algorithm"`
	Parameter parameterDoc `json:"parameter"`

	Data    map[int]dataRecord    `json:"data"`
	Compute map[int]computeRecord `json:"compute"`

	Inputs        []int `json:"inputs"`
	Outputs       []int `json:"outputs"`
	OfflineInputs []int `json:"offline_inputs"`
}

// MarshalJSON emits Data and Compute as JSON objects keyed in ascending
// index order. graph.Builder assigns DataRef/ComputeRef indices
// monotonically, so ascending numeric order and first-creation order
// coincide here; encoding/json's default map[int]V marshaling does
// neither (it sorts keys by their decimal string form), which would
// reorder node 10 before node 2 in any graph with 10+ nodes.
func (m MegaAG) MarshalJSON() ([]byte, error) {
	dataKeys := make([]int, 0, len(m.Data))
	for k := range m.Data {
		dataKeys = append(dataKeys, k)
	}
	sort.Ints(dataKeys)
	dataVals := make([]dataRecord, len(dataKeys))
	for i, k := range dataKeys {
		dataVals[i] = m.Data[k]
	}
	data, err := marshalIntKeyedObject(dataKeys, dataVals)
	if err != nil {
		return nil, err
	}

	computeKeys := make([]int, 0, len(m.Compute))
	for k := range m.Compute {
		computeKeys = append(computeKeys, k)
	}
	sort.Ints(computeKeys)
	computeVals := make([]computeRecord, len(computeKeys))
	for i, k := range computeKeys {
		computeVals[i] = m.Compute[k]
	}
	compute, err := marshalIntKeyedObject(computeKeys, computeVals)
	if err != nil {
		return nil, err
	}

	type wire struct {
		Name      string          `json:"name"`
		Algorithm string          `json:"algorithm"`
		Parameter parameterDoc    `json:"parameter"`
		Data      json.RawMessage `json:"data"`
		Compute   json.RawMessage `json:"compute"`

		Inputs        []int `json:"inputs"`
		Outputs       []int `json:"outputs"`
		OfflineInputs []int `json:"offline_inputs"`
	}
	return json.Marshal(wire{
		Name: m.Name, Algorithm: m.Algorithm, Parameter: m.Parameter,
		Data: data, Compute: compute,
		Inputs: m.Inputs, Outputs: m.Outputs, OfflineInputs: m.OfflineInputs,
	})
}
