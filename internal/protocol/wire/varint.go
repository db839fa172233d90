package wire

import (
	"errors"
	"fmt"
	"io"
)

const (
	maxVarIntLen  = 5
	maxVarLongLen = 10
)

// ReadVarIntFrom читает 32-битное число группами по 7 бит, младшая группа первой.
// Конец потока до первого байта возвращается как io.EOF, внутри числа - как
// io.ErrUnexpectedEOF.
func ReadVarIntFrom(r io.ByteReader) (int32, error) {
	var v uint32
	for i := 0; i < maxVarIntLen; i++ {
		c, err := r.ReadByte()
		if err != nil {
			if i > 0 && errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		v |= uint32(c&0x7F) << (7 * i)
		if c&0x80 == 0 {
			return int32(v), nil
		}
	}
	return 0, ErrVarIntTooBig
}

// AppendVarInt дописывает varint-представление v; отрицательные числа
// всегда занимают 5 байтов.
func AppendVarInt(dst []byte, v int32) []byte {
	u := uint32(v)
	for u >= 0x80 {
		dst = append(dst, byte(u)|0x80)
		u >>= 7
	}
	return append(dst, byte(u))
}

// ReadVarInt читает varint из курсора.
func (b *Buffer) ReadVarInt() int32 {
	if b.err != nil {
		return 0
	}
	v, err := ReadVarIntFrom(b)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = fmt.Errorf("%w: varint", ErrTruncated)
		}
		b.Fail(err)
		return 0
	}
	return v
}

// ReadVarLong читает 64-битное число в формате varint.
func (b *Buffer) ReadVarLong() int64 {
	var v uint64
	for i := 0; i < maxVarLongLen; i++ {
		p := b.next(1)
		if p == nil {
			return 0
		}
		v |= uint64(p[0]&0x7F) << (7 * i)
		if p[0]&0x80 == 0 {
			return int64(v)
		}
	}
	b.Fail(ErrVarIntTooBig)
	return 0
}

// WriteVarInt записывает v.
func (b *Buffer) WriteVarInt(v int32) {
	b.data = AppendVarInt(b.data, v)
}

// WriteVarLong записывает v в формате varint.
func (b *Buffer) WriteVarLong(v int64) {
	u := uint64(v)
	for u >= 0x80 {
		b.data = append(b.data, byte(u)|0x80)
		u >>= 7
	}
	b.data = append(b.data, byte(u))
}

// VarIntSize возвращает длину varint-представления v.
func VarIntSize(v int32) int {
	u := uint32(v)
	n := 1
	for u >= 0x80 {
		u >>= 7
		n++
	}
	return n
}

// readLength читает varint-длину и проверяет, что столько байтов может быть в буфере.
func (b *Buffer) readLength(unit int) int {
	n := b.ReadVarInt()
	if b.err != nil {
		return 0
	}
	if n < 0 {
		b.Fail(fmt.Errorf("%w: %d", ErrInvalidLength, n))
		return 0
	}
	if unit > 0 && int(n) > b.Remaining()/unit {
		b.Fail(fmt.Errorf("%w: объявлено %d элементов, доступно %d байт", ErrTruncated, n, b.Remaining()))
		return 0
	}
	return int(n)
}
