package task

import (
	"encoding/json"

	"github.com/cipherflow-fhe/lattisense/graph"
)

// signatureRecord describes one Argument slot in task_signature.json:
// enough to marshal a caller's data into the right data nodes without
// seeing the full graph.
type signatureRecord struct {
	ID    string         `json:"id"`
	Type  graph.DataKind `json:"type"`
	Size  []int          `json:"size"`
	Level *int           `json:"level,omitempty"`
	Phase string         `json:"phase"`
}

// glkLevel pairs a Galois rotation key's element with the level it must
// be generated at. glkSignature keeps these in first-registration order
// rather than a map[int]int: Galois elements are arbitrary large ints
// (not small sequential indices), so a plain map would let
// encoding/json's string-sort of its keys silently reorder the emitted
// "glk" object as soon as a task binds two or more rotation keys.
type glkLevel struct {
	Element int
	Level   int
}

type glkSignature []glkLevel

func (g glkSignature) MarshalJSON() ([]byte, error) {
	keys := make([]int, len(g))
	levels := make([]int, len(g))
	for i, e := range g {
		keys[i] = e.Element
		levels[i] = e.Level
	}
	return marshalIntKeyedObject(keys, levels)
}

// keySignature is the "key" object of task_signature.json: the level a
// caller's key-generation infrastructure must produce each deduplicated
// key material node at.
type keySignature struct {
	Rlk        int               `json:"rlk"`
	Glk        glkSignature      `json:"glk"`
	CkksBtpSwk map[string][2]int `json:"ckks_btp_swk,omitempty"`
}

// TaskSignature is the compact calling convention for a finalized task:
// what to supply online (inputs and the key material bound into the
// graph), what was already supplied offline, and what comes back out.
type TaskSignature struct {
	Algorithm string            `json:"algorithm"`
	Key       keySignature      `json:"key"`
	Online    []signatureRecord `json:"online"`
	Offline   []signatureRecord `json:"offline"`
}
