package sim

import (
	"encoding/json"
	"os"

	"rescueops-sim/internal/fault"
	"rescueops-sim/internal/telemetry"
)

// FileWriter writes fused points to a JSONL log that ReplayLog can read back.
type FileWriter struct {
	path string
	file *os.File
	enc  *json.Encoder
}

// NewFileWriter creates (or truncates) the log at path.
func NewFileWriter(path string) (*FileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &fault.ExportError{Path: path, Err: err}
	}
	return &FileWriter{path: path, file: f, enc: json.NewEncoder(f)}, nil
}

// Write logs a single fused point.
func (f *FileWriter) Write(p telemetry.FusedPoint) error {
	if err := f.enc.Encode(p); err != nil {
		return &fault.ExportError{Path: f.path, Err: err}
	}
	return nil
}

// Close closes the underlying file.
func (f *FileWriter) Close() error {
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}
