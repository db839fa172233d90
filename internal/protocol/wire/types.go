package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"github.com/annel0/protobridge/internal/protocol/nbt"
	"github.com/annel0/protobridge/internal/protocol/version"
)

// MaxStringChars - предельная длина строки в символах.
const MaxStringChars = 32767

// ReadString читает строку: varint-длина в байтах и UTF-8.
func (b *Buffer) ReadString() string {
	return b.ReadStringMax(MaxStringChars)
}

// ReadStringMax читает строку не длиннее maxChars символов.
func (b *Buffer) ReadStringMax(maxChars int) string {
	n := b.readLength(1)
	if b.err != nil {
		return ""
	}
	if n > maxChars*4 {
		b.Fail(fmt.Errorf("%w: %d байт", ErrStringTooLong, n))
		return ""
	}
	p := b.next(n)
	if p == nil {
		return ""
	}
	if utf8.RuneCount(p) > maxChars {
		b.Fail(fmt.Errorf("%w: %d символов", ErrStringTooLong, utf8.RuneCount(p)))
		return ""
	}
	return string(p)
}

func (b *Buffer) WriteString(s string) {
	b.WriteVarInt(int32(len(s)))
	b.data = append(b.data, s...)
}

// ReadByteArray читает массив байтов с varint-длиной.
func (b *Buffer) ReadByteArray() []byte {
	n := b.readLength(1)
	if b.err != nil {
		return nil
	}
	return b.ReadBytes(n)
}

func (b *Buffer) WriteByteArray(p []byte) {
	b.WriteVarInt(int32(len(p)))
	b.data = append(b.data, p...)
}

// ReadLongs читает n чисел int64 без префикса.
func (b *Buffer) ReadLongs(n int) []int64 {
	p := b.next(n * 8)
	if p == nil {
		if n == 0 && b.err == nil {
			return []int64{}
		}
		return nil
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(binary.BigEndian.Uint64(p[i*8:]))
	}
	return out
}

func (b *Buffer) WriteLongs(v []int64) {
	for _, x := range v {
		b.WriteInt64(x)
	}
}

// ReadLongArray читает массив int64 с varint-длиной.
func (b *Buffer) ReadLongArray() []int64 {
	n := b.readLength(8)
	if b.err != nil {
		return nil
	}
	return b.ReadLongs(n)
}

func (b *Buffer) WriteLongArray(v []int64) {
	b.WriteVarInt(int32(len(v)))
	b.WriteLongs(v)
}

// ReadVarIntArray читает массив varint с varint-длиной.
func (b *Buffer) ReadVarIntArray() []int32 {
	n := b.readLength(1)
	if b.err != nil {
		return nil
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = b.ReadVarInt()
	}
	if b.err != nil {
		return nil
	}
	return out
}

func (b *Buffer) WriteVarIntArray(v []int32) {
	b.WriteVarInt(int32(len(v)))
	for _, x := range v {
		b.WriteVarInt(x)
	}
}

// ReadUUID читает UUID как два big-endian int64.
func (b *Buffer) ReadUUID() uuid.UUID {
	var id uuid.UUID
	if p := b.next(16); p != nil {
		copy(id[:], p)
	}
	return id
}

func (b *Buffer) WriteUUID(id uuid.UUID) {
	b.data = append(b.data, id[:]...)
}

// DefaultNamespace подставляется в идентификаторы без пространства имён.
const DefaultNamespace = "minecraft"

// Identifier - имя вида namespace:path.
type Identifier struct {
	Namespace string
	Path      string
}

// ParseIdentifier разбирает имя; без ':' используется пространство имён minecraft.
func ParseIdentifier(s string) Identifier {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		ns := s[:i]
		if ns == "" {
			ns = DefaultNamespace
		}
		return Identifier{Namespace: ns, Path: s[i+1:]}
	}
	return Identifier{Namespace: DefaultNamespace, Path: s}
}

// NormalizeName приводит имя к полной форме namespace:path.
func NormalizeName(s string) string {
	return ParseIdentifier(s).String()
}

func (id Identifier) String() string {
	return id.Namespace + ":" + id.Path
}

// IsZero сообщает, пуст ли идентификатор.
func (id Identifier) IsZero() bool {
	return id.Namespace == "" && id.Path == ""
}

func (b *Buffer) ReadIdentifier() Identifier {
	s := b.ReadString()
	if b.err != nil {
		return Identifier{}
	}
	return ParseIdentifier(s)
}

func (b *Buffer) WriteIdentifier(id Identifier) {
	b.WriteString(id.String())
}

// ReadNBT читает тег в формате текущей ревизии: до 1.8 - short-длина и gzip,
// до 1.20.2 - именованный корень, начиная с 1.20.2 - безымянный.
// Отсутствующее значение возвращается как nil.
func (b *Buffer) ReadNBT() nbt.Tag {
	if b.err != nil {
		return nil
	}
	rev := b.Revision()
	if rev < version.V1_8 {
		n := b.ReadInt16()
		if b.err != nil || n < 0 {
			return nil
		}
		raw := b.next(int(n))
		if raw == nil {
			return nil
		}
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			b.Fail(fmt.Errorf("ошибка распаковки NBT: %w", err))
			return nil
		}
		defer zr.Close()
		plain, err := io.ReadAll(zr)
		if err != nil {
			b.Fail(fmt.Errorf("ошибка распаковки NBT: %w", err))
			return nil
		}
		t, err := nbt.Read(bytes.NewReader(plain), true)
		if err != nil {
			b.Fail(fmt.Errorf("ошибка чтения NBT: %w", err))
			return nil
		}
		return t
	}
	t, err := nbt.Read(b, rev < version.V1_20_2)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = ErrTruncated
		}
		b.Fail(fmt.Errorf("ошибка чтения NBT: %w", err))
		return nil
	}
	return t
}

// ReadCompound читает тег и требует, чтобы это был составной тег или пустое значение.
func (b *Buffer) ReadCompound() *nbt.Compound {
	t := b.ReadNBT()
	if t == nil {
		return nil
	}
	c, ok := t.(*nbt.Compound)
	if !ok {
		b.Fail(fmt.Errorf("ожидался составной тег, получен тип %d", t.Type()))
		return nil
	}
	return c
}

// WriteNBT записывает тег в формате текущей ревизии.
func (b *Buffer) WriteNBT(t nbt.Tag) {
	if b.err != nil {
		return
	}
	rev := b.Revision()
	if rev < version.V1_8 {
		if t == nil {
			b.WriteInt16(-1)
			return
		}
		var plain bytes.Buffer
		if err := nbt.Write(&plain, t, true); err != nil {
			b.Fail(err)
			return
		}
		var packed bytes.Buffer
		zw := gzip.NewWriter(&packed)
		if _, err := zw.Write(plain.Bytes()); err != nil {
			b.Fail(err)
			return
		}
		if err := zw.Close(); err != nil {
			b.Fail(err)
			return
		}
		b.WriteInt16(int16(packed.Len()))
		b.data = append(b.data, packed.Bytes()...)
		return
	}
	if err := nbt.Write(b, t, rev < version.V1_20_2); err != nil {
		b.Fail(err)
	}
}

// WriteCompound записывает составной тег; nil записывается как пустое значение.
func (b *Buffer) WriteCompound(c *nbt.Compound) {
	if c == nil {
		b.WriteNBT(nil)
		return
	}
	b.WriteNBT(c)
}
