// Package bytebuf provides a bounds-checked, position-tracking reader over
// an in-memory byte slice. All multi-byte reads are big-endian.
package bytebuf

import (
	"encoding/binary"
	"errors"
	"math"
)

var ErrOutOfRange = errors.New("bytebuf: read beyond buffer bounds")

// Reader wraps a byte slice with a cursor. Every read advances the cursor by
// the number of bytes consumed; a failed read leaves the cursor unchanged.
// Reader does not copy or take ownership of the underlying slice.
type Reader struct {
	data []byte
	pos  int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Seek moves the cursor to an absolute position. Seeking to Len() is legal
// and leaves zero bytes remaining.
func (r *Reader) Seek(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return ErrOutOfRange
	}
	r.pos = pos
	return nil
}

func (r *Reader) Position() int  { return r.pos }
func (r *Reader) Remaining() int { return len(r.data) - r.pos }
func (r *Reader) Len() int       { return len(r.data) }

// take reserves n bytes at the cursor, advancing past them.
func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || n > len(r.data)-r.pos {
		return nil, ErrOutOfRange
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadBytes copies the next n bytes out of the buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadString reads the next n bytes as text.
func (r *Reader) ReadString(n int) (string, error) {
	b, err := r.take(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
