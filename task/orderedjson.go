package task

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// marshalIntKeyedObject renders an int-keyed JSON object honoring the
// exact order of keys/values given, rather than encoding/json's default
// map marshaling, which sorts map[int]V keys by their decimal string
// form ("10" before "2") and so reproduces neither ascending numeric
// order nor first-registration order. mega_ag.json's "data"/"compute"
// maps and task_signature.json's "glk" map both require one of those
// two orderings, never the string-sorted one.
func marshalIntKeyedObject[V any](keys []int, values []V) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(k)))
		buf.WriteByte(':')
		vb, err := json.Marshal(values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
