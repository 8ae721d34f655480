package param

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed testdata/parameter.json
var defaultTableFS embed.FS

// tableEntry mirrors one leaf of parameter.json: {"p": [...], "q": [...],
// "t": ..., "max_level": ...}. T is omitted (zero value) for CKKS entries.
type tableEntry struct {
	Q        []uint64 `json:"q"`
	P        []uint64 `json:"p"`
	T        uint64   `json:"t"`
	MaxLevel int      `json:"max_level"`
}

// defaultTable is keyed scheme -> stringified n -> entry, matching the
// on-disk layout described in spec.md §6.
type defaultTable map[Scheme]map[string]tableEntry

func loadDefaultTable() (defaultTable, error) {
	data, err := defaultTableFS.ReadFile("testdata/parameter.json")
	if err != nil {
		return nil, fmt.Errorf("cannot load default parameter table: %w", err)
	}
	var raw map[string]map[string]tableEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("cannot parse default parameter table: %w", err)
	}
	table := make(defaultTable, len(raw))
	for scheme, entries := range raw {
		table[Scheme(scheme)] = entries
	}
	return table, nil
}

func lookupDefault(scheme Scheme, n int) (tableEntry, error) {
	table, err := loadDefaultTable()
	if err != nil {
		return tableEntry{}, err
	}
	byN, ok := table[scheme]
	if !ok {
		return tableEntry{}, fmt.Errorf("cannot build default param: %w: unsupported scheme %q", ErrConfig, scheme)
	}
	e, ok := byN[fmt.Sprint(n)]
	if !ok {
		return tableEntry{}, fmt.Errorf("cannot build default param: %w: unsupported n=%d for scheme %q", ErrConfig, n, scheme)
	}
	return e, nil
}
