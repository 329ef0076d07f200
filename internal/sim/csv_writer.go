package sim

import (
	"encoding/csv"
	"io"
	"os"

	"rescueops-sim/internal/fault"
	"rescueops-sim/internal/telemetry"
)

// CSVWriter exports fused points as a flat table, one header row followed by one
// row per point in telemetry.CSVHeader order.
type CSVWriter struct {
	path   string
	closer io.Closer
	w      *csv.Writer
}

// NewCSVWriter creates the export file at path and writes the header.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &fault.ExportError{Path: path, Err: err}
	}
	cw, err := newCSVWriter(path, f, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return cw, nil
}

func newCSVWriter(path string, out io.Writer, closer io.Closer) (*CSVWriter, error) {
	cw := &CSVWriter{path: path, closer: closer, w: csv.NewWriter(out)}
	if err := cw.w.Write(telemetry.CSVHeader()); err != nil {
		return nil, &fault.ExportError{Path: path, Err: err}
	}
	return cw, nil
}

// Write appends one row.
func (c *CSVWriter) Write(p telemetry.FusedPoint) error {
	if err := c.w.Write(p.CSVRow()); err != nil {
		return &fault.ExportError{Path: c.path, Err: err}
	}
	return nil
}

// WriteBatch appends rows and flushes.
func (c *CSVWriter) WriteBatch(points []telemetry.FusedPoint) error {
	for i := range points {
		if err := c.Write(points[i]); err != nil {
			return err
		}
	}
	return c.Flush()
}

// Flush pushes buffered rows to the file.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return &fault.ExportError{Path: c.path, Err: err}
	}
	return nil
}

// Close flushes and closes the file.
func (c *CSVWriter) Close() error {
	err := c.Flush()
	if c.closer != nil {
		if cerr := c.closer.Close(); cerr != nil && err == nil {
			err = &fault.ExportError{Path: c.path, Err: cerr}
		}
		c.closer = nil
	}
	return err
}

// ExportCSV writes a complete history to path.
func ExportCSV(path string, history []telemetry.FusedPoint) error {
	cw, err := NewCSVWriter(path)
	if err != nil {
		return err
	}
	if err := cw.WriteBatch(history); err != nil {
		cw.Close()
		return err
	}
	return cw.Close()
}
