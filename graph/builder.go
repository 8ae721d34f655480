package graph

import (
	"fmt"

	"github.com/cipherflow-fhe/lattisense/idgen"
	"github.com/cipherflow-fhe/lattisense/param"
)

// Builder is the explicit, task-scoped replacement for the process-wide
// mutable context the Python original threads through every operator
// call: the parameter set, the accumulated DAG, the id generator, and
// the key-deduplication table. A Builder is the unit of isolation for one
// task construction; Finalize (in package task) is the only sanctioned
// way to retire one.
type Builder struct {
	Param param.Param

	ids  *idgen.Generator
	data []DataNode
	ops  []ComputeNode
	keys *keyTable
}

// New creates a Builder bound to p. seed drives the deterministic id
// generator; pass nil to seed from a fixed default so a script that
// never names a node still reproduces the same ids across runs of the
// same call sequence.
func New(p param.Param, seed []byte) (*Builder, error) {
	if p.N == 0 {
		return nil, fmt.Errorf("cannot create builder: %w: no parameter set", ErrConfig)
	}
	gen, err := idgen.New(seed)
	if err != nil {
		return nil, fmt.Errorf("cannot create builder: %w", err)
	}
	return &Builder{
		Param: p,
		ids:   gen,
		keys:  newKeyTable(),
	}, nil
}

// Data returns the DataNode referenced by ref.
func (b *Builder) Data(ref DataRef) DataNode {
	return b.data[ref]
}

// Compute returns the ComputeNode referenced by ref.
func (b *Builder) Compute(ref ComputeRef) ComputeNode {
	return b.ops[ref]
}

// DataLen and ComputeLen report the monotonically increasing node
// counters; they double as the next index to be assigned.
func (b *Builder) DataLen() int    { return len(b.data) }
func (b *Builder) ComputeLen() int { return len(b.ops) }

// AllData and AllCompute expose the full node slices in index order, for
// the task finalizer to walk.
func (b *Builder) AllData() []DataNode       { return b.data }
func (b *Builder) AllCompute() []ComputeNode { return b.ops }

func (b *Builder) resolveID(requested string) (string, error) {
	if requested == "" {
		return b.ids.Next(), nil
	}
	if err := b.ids.Reserve(requested); err != nil {
		return "", fmt.Errorf("cannot assign id %q: %w", requested, ErrTypeMismatch)
	}
	return requested, nil
}

func (b *Builder) newData(n DataNode) DataRef {
	n.Index = len(b.data)
	b.data = append(b.data, n)
	return DataRef(n.Index)
}

func (b *Builder) newCompute(n ComputeNode) ComputeRef {
	id := b.ids.Next()
	n.ID = id
	n.Index = len(b.ops)
	b.ops = append(b.ops, n)
	return ComputeRef(n.Index)
}

// raiseLevel sets the level of an existing data node to max(current, level).
func (b *Builder) raiseLevel(ref DataRef, level int) {
	if b.data[ref].Level < level {
		b.data[ref].Level = level
	}
}

// consumersOf returns the indices of every compute node that reads ref
// as an operand, in index order.
func (b *Builder) consumersOf(ref DataRef) []ComputeRef {
	var out []ComputeRef
	for i, op := range b.ops {
		for _, operand := range op.Operands {
			if operand == ref {
				out = append(out, ComputeRef(i))
				break
			}
		}
	}
	return out
}

// ConsumersOf exposes consumersOf to package task, which needs it to
// validate that every declared input is actually read by the graph.
func (b *Builder) ConsumersOf(ref DataRef) []ComputeRef {
	return b.consumersOf(ref)
}

// KeyOrder returns the ids of every deduplicated key node (relin, Galois,
// switch), in first-reference order.
func (b *Builder) KeyOrder() []string {
	return b.keys.orderedIDs()
}

// KeyRef looks up a deduplicated key node by id.
func (b *Builder) KeyRef(id string) (DataRef, bool) {
	return b.keys.lookup(id)
}
