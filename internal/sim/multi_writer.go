package sim

import (
	"errors"
	"io"

	"rescueops-sim/internal/telemetry"
)

// MultiWriter fans fused points out to multiple writers.
type MultiWriter struct {
	writers []PointWriter
}

// NewMultiWriter creates a new MultiWriter. Nil writers are skipped.
func NewMultiWriter(ws ...PointWriter) *MultiWriter {
	mw := &MultiWriter{}
	for _, w := range ws {
		if w != nil {
			mw.writers = append(mw.writers, w)
		}
	}
	return mw
}

// Write sends a point to all writers.
func (mw *MultiWriter) Write(p telemetry.FusedPoint) error {
	for _, w := range mw.writers {
		if err := w.Write(p); err != nil {
			return err
		}
	}
	return nil
}

// WriteBatch sends multiple points to all writers, using batch if supported.
func (mw *MultiWriter) WriteBatch(points []telemetry.FusedPoint) error {
	for _, w := range mw.writers {
		if bw, ok := w.(batchWriter); ok {
			if err := bw.WriteBatch(points); err != nil {
				return err
			}
			continue
		}
		for _, p := range points {
			if err := w.Write(p); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes every writer that is an io.Closer and joins their errors.
func (mw *MultiWriter) Close() error {
	var errs []error
	for _, w := range mw.writers {
		if c, ok := w.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
