// Package wire содержит курсор над байтами пакета и примитивы сетевого формата.
//
// Buffer хранит первую ошибку чтения: после неё все чтения возвращают нулевые
// значения, поэтому кодеки проверяют Err() один раз на структурный шаг.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/annel0/protobridge/internal/protocol/version"
)

// Buffer - курсор чтения и буфер записи с атрибутами соединения.
type Buffer struct {
	data  []byte
	off   int
	err   error
	attrs *Attributes
}

// NewReader создаёт курсор для чтения data.
func NewReader(data []byte, attrs *Attributes) *Buffer {
	return &Buffer{data: data, attrs: attrs}
}

// NewWriter создаёт пустой буфер записи.
func NewWriter(attrs *Attributes) *Buffer {
	return &Buffer{attrs: attrs}
}

// Attrs возвращает атрибуты соединения.
func (b *Buffer) Attrs() *Attributes {
	return b.attrs
}

// Revision возвращает ревизию соединения.
func (b *Buffer) Revision() version.Revision {
	return b.attrs.Revision
}

// Err возвращает первую ошибку.
func (b *Buffer) Err() error {
	return b.err
}

// Fail запоминает ошибку, если ошибки ещё не было.
func (b *Buffer) Fail(err error) {
	if b.err == nil && err != nil {
		b.err = err
	}
}

// ReaderIndex возвращает позицию курсора чтения.
func (b *Buffer) ReaderIndex() int {
	return b.off
}

// Remaining возвращает число непрочитанных байтов.
func (b *Buffer) Remaining() int {
	return len(b.data) - b.off
}

// Bytes возвращает непрочитанную часть буфера (для буфера записи - всё записанное).
func (b *Buffer) Bytes() []byte {
	return b.data[b.off:]
}

// next сдвигает курсор на n байтов и возвращает их.
func (b *Buffer) next(n int) []byte {
	if b.err != nil {
		return nil
	}
	if n < 0 {
		b.err = fmt.Errorf("%w: %d", ErrInvalidLength, n)
		return nil
	}
	if n > b.Remaining() {
		b.err = fmt.Errorf("%w: нужно %d, доступно %d", ErrTruncated, n, b.Remaining())
		return nil
	}
	p := b.data[b.off : b.off+n]
	b.off += n
	return p
}

// Read реализует io.Reader.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	if b.Remaining() == 0 {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.off:])
	b.off += n
	return n, nil
}

// ReadByte реализует io.ByteReader.
func (b *Buffer) ReadByte() (byte, error) {
	if b.err != nil {
		return 0, b.err
	}
	if b.Remaining() == 0 {
		return 0, io.EOF
	}
	c := b.data[b.off]
	b.off++
	return c, nil
}

// UnreadByte реализует io.ByteScanner.
func (b *Buffer) UnreadByte() error {
	if b.err != nil {
		return b.err
	}
	if b.off == 0 {
		return ErrNothingToUnread
	}
	b.off--
	return nil
}

// Write реализует io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

// Skip пропускает n байтов.
func (b *Buffer) Skip(n int) {
	b.next(n)
}

// ReadBytes читает ровно n байтов (копия).
func (b *Buffer) ReadBytes(n int) []byte {
	p := b.next(n)
	if p == nil {
		if n == 0 && b.err == nil {
			return []byte{}
		}
		return nil
	}
	out := make([]byte, n)
	copy(out, p)
	return out
}

// ReadRemaining читает всё до конца буфера.
func (b *Buffer) ReadRemaining() []byte {
	return b.ReadBytes(b.Remaining())
}

func (b *Buffer) ReadBool() bool {
	p := b.next(1)
	return p != nil && p[0] != 0
}

func (b *Buffer) ReadInt8() int8 {
	return int8(b.ReadUint8())
}

func (b *Buffer) ReadUint8() uint8 {
	p := b.next(1)
	if p == nil {
		return 0
	}
	return p[0]
}

func (b *Buffer) ReadInt16() int16 {
	return int16(b.ReadUint16())
}

func (b *Buffer) ReadUint16() uint16 {
	p := b.next(2)
	if p == nil {
		return 0
	}
	return binary.BigEndian.Uint16(p)
}

func (b *Buffer) ReadInt32() int32 {
	p := b.next(4)
	if p == nil {
		return 0
	}
	return int32(binary.BigEndian.Uint32(p))
}

func (b *Buffer) ReadInt64() int64 {
	p := b.next(8)
	if p == nil {
		return 0
	}
	return int64(binary.BigEndian.Uint64(p))
}

func (b *Buffer) ReadFloat32() float32 {
	return math.Float32frombits(uint32(b.ReadInt32()))
}

func (b *Buffer) ReadFloat64() float64 {
	return math.Float64frombits(uint64(b.ReadInt64()))
}

func (b *Buffer) WriteBool(v bool) {
	if v {
		b.data = append(b.data, 1)
	} else {
		b.data = append(b.data, 0)
	}
}

func (b *Buffer) WriteInt8(v int8) {
	b.data = append(b.data, byte(v))
}

func (b *Buffer) WriteUint8(v uint8) {
	b.data = append(b.data, v)
}

func (b *Buffer) WriteInt16(v int16) {
	b.data = binary.BigEndian.AppendUint16(b.data, uint16(v))
}

func (b *Buffer) WriteUint16(v uint16) {
	b.data = binary.BigEndian.AppendUint16(b.data, v)
}

func (b *Buffer) WriteInt32(v int32) {
	b.data = binary.BigEndian.AppendUint32(b.data, uint32(v))
}

func (b *Buffer) WriteInt64(v int64) {
	b.data = binary.BigEndian.AppendUint64(b.data, uint64(v))
}

func (b *Buffer) WriteFloat32(v float32) {
	b.WriteInt32(int32(math.Float32bits(v)))
}

func (b *Buffer) WriteFloat64(v float64) {
	b.WriteInt64(int64(math.Float64bits(v)))
}
