package graph

// keyTable deduplicates relin/Galois/switch key nodes by their logical
// key id ("rlk_ntt", "glk_ntt_col_<element>", "glk_ntt_row", "swk_dts",
// "swk_std"), in first-reference order. A later operator that needs a
// higher level raises the existing node's level instead of creating a
// new one.
type keyTable struct {
	order []string
	refs  map[string]DataRef
}

func newKeyTable() *keyTable {
	return &keyTable{refs: make(map[string]DataRef)}
}

func (t *keyTable) lookup(id string) (DataRef, bool) {
	ref, ok := t.refs[id]
	return ref, ok
}

func (t *keyTable) register(id string, ref DataRef) {
	if _, ok := t.refs[id]; ok {
		return
	}
	t.refs[id] = ref
	t.order = append(t.order, id)
}

// orderedIDs returns the key ids in first-reference order. The task
// finalizer groups them by kind when it registers them as additional
// inputs (relin key, then Galois keys, then switch keys), keeping this
// order within each group.
func (t *keyTable) orderedIDs() []string {
	return append([]string(nil), t.order...)
}
