// Package wire implements the binary stream primitives used by compiled
// script graphs and blackboard saves.
//
// The format is deliberately simple and stable: strings are written as a
// uint32 little-endian byte length followed by the UTF-8 bytes, enum values
// are written as their single-byte ordinal, and integers are little-endian.
// Readers and writers are symmetric; every Read* call consumes exactly the
// bytes the matching Write* call produced.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrStringTooLong is returned when a string exceeds the encodable length.
var ErrStringTooLong = errors.New("wire: string exceeds maximum encodable length")

const maxStringLen = 1 << 30

// Writer serializes values to an underlying io.Writer.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w in a Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteString writes a length-prefixed UTF-8 string.
func (w *Writer) WriteString(s string) error {
	if len(s) > maxStringLen {
		return ErrStringTooLong
	}
	if err := w.WriteUint32(uint32(len(s))); err != nil {
		return err
	}
	if _, err := io.WriteString(w.w, s); err != nil {
		return fmt.Errorf("wire: write string payload: %w", err)
	}
	return nil
}

// WriteUint32 writes a little-endian uint32.
func (w *Writer) WriteUint32(v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	if _, err := w.w.Write(buf[:]); err != nil {
		return fmt.Errorf("wire: write uint32: %w", err)
	}
	return nil
}

// WriteByte writes a single byte. Enum values go on the wire through this.
func (w *Writer) WriteByte(b byte) error {
	if _, err := w.w.Write([]byte{b}); err != nil {
		return fmt.Errorf("wire: write byte: %w", err)
	}
	return nil
}

// WriteFloat64 writes a little-endian IEEE 754 double.
func (w *Writer) WriteFloat64(f float64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
	if _, err := w.w.Write(buf[:]); err != nil {
		return fmt.Errorf("wire: write float64: %w", err)
	}
	return nil
}

// Reader deserializes values from an underlying io.Reader.
type Reader struct {
	r io.Reader
}

// NewReader wraps r in a Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadString reads a length-prefixed UTF-8 string.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return "", err
	}
	if n > maxStringLen {
		return "", fmt.Errorf("wire: string length %d out of range", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return "", fmt.Errorf("wire: read string payload: %w", err)
	}
	return string(buf), nil
}

// ReadUint32 reads a little-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		return 0, fmt.Errorf("wire: read uint32: %w", err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		return 0, fmt.Errorf("wire: read byte: %w", err)
	}
	return buf[0], nil
}

// ReadFloat64 reads a little-endian IEEE 754 double.
func (r *Reader) ReadFloat64() (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		return 0, fmt.Errorf("wire: read float64: %w", err)
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:])), nil
}
