package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cipherflow-fhe/lattisense/graph"
)

// WriteArtifacts creates dir if absent and writes mega_ag.json and
// task_signature.json into it, 4-space indented, matching the layout a
// downstream compiler stage reads back in.
func WriteArtifacts(dir string, mag *MegaAG, sig *TaskSignature) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory %q: %w", dir, err)
	}

	magBytes, err := json.MarshalIndent(mag, "", "    ")
	if err != nil {
		return fmt.Errorf("cannot marshal mega_ag.json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "mega_ag.json"), magBytes, 0o644); err != nil {
		return fmt.Errorf("cannot write mega_ag.json: %w", err)
	}

	sigBytes, err := json.MarshalIndent(sig, "", "    ")
	if err != nil {
		return fmt.Errorf("cannot marshal task_signature.json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "task_signature.json"), sigBytes, 0o644); err != nil {
		return fmt.Errorf("cannot write task_signature.json: %w", err)
	}
	return nil
}

// ProcessCustomTask is the end-to-end entry point: it finalizes b against
// its declared arguments and writes the resulting artifacts to dir.
func ProcessCustomTask(b *graph.Builder, name string, inputs, outputs, offlineInputs []Argument, dir string) (*MegaAG, *TaskSignature, error) {
	mag, sig, err := Finalize(b, name, inputs, outputs, offlineInputs)
	if err != nil {
		return nil, nil, err
	}
	if err := WriteArtifacts(dir, mag, sig); err != nil {
		return nil, nil, err
	}
	return mag, sig, nil
}
