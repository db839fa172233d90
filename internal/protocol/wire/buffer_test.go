package wire

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/protobridge/internal/protocol/nbt"
	"github.com/annel0/protobridge/internal/protocol/version"
)

func newAttrs(rev version.Revision) *Attributes {
	return NewAttributes(rev)
}

func TestVarIntEncoding(t *testing.T) {
	cases := []struct {
		value int32
		bytes []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xAC, 0x02}},
		{2097151, []byte{0xFF, 0xFF, 0x7F}},
		{2147483647, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x07}},
		{-1, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
		{-2147483648, []byte{0x80, 0x80, 0x80, 0x80, 0x08}},
	}

	for _, c := range cases {
		w := NewWriter(newAttrs(version.V1_20_5))
		w.WriteVarInt(c.value)
		assert.Equal(t, c.bytes, w.Bytes(), "неверная кодировка %d", c.value)
		assert.Equal(t, len(c.bytes), VarIntSize(c.value))

		r := NewReader(c.bytes, newAttrs(version.V1_20_5))
		assert.Equal(t, c.value, r.ReadVarInt())
		require.NoError(t, r.Err())
		assert.Zero(t, r.Remaining())
	}
}

func TestVarIntTooLong(t *testing.T) {
	r := NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}, newAttrs(version.V1_20_5))
	r.ReadVarInt()
	assert.ErrorIs(t, r.Err(), ErrVarIntTooBig)
}

func TestVarIntFromStream(t *testing.T) {
	for _, v := range []int32{0, 1, 300, 2097151, -1, -2147483648} {
		raw := AppendVarInt(nil, v)
		w := NewWriter(newAttrs(version.V1_8))
		w.WriteVarInt(v)
		assert.Equal(t, w.Bytes(), raw, "курсор и поток кодируют %d одинаково", v)

		got, err := ReadVarIntFrom(bytes.NewReader(raw))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	_, err := ReadVarIntFrom(bytes.NewReader(nil))
	assert.ErrorIs(t, err, io.EOF, "пустой поток - чистый конец")

	_, err = ReadVarIntFrom(bytes.NewReader([]byte{0x80, 0x80}))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF, "обрыв внутри числа")

	_, err = ReadVarIntFrom(bytes.NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}))
	assert.ErrorIs(t, err, ErrVarIntTooBig)

	r := NewReader([]byte{0x80}, newAttrs(version.V1_8))
	r.ReadVarInt()
	assert.ErrorIs(t, r.Err(), ErrTruncated)
}

func TestVarLong(t *testing.T) {
	w := NewWriter(newAttrs(version.V1_20_5))
	w.WriteVarLong(-1)
	assert.Len(t, w.Bytes(), 10)

	r := NewReader(w.Bytes(), newAttrs(version.V1_20_5))
	assert.Equal(t, int64(-1), r.ReadVarLong())
	require.NoError(t, r.Err())
}

func TestFixedWidthBigEndian(t *testing.T) {
	w := NewWriter(newAttrs(version.V1_8))
	w.WriteInt16(0x0102)
	w.WriteInt32(0x03040506)
	w.WriteInt64(0x0708090A0B0C0D0E)
	w.WriteFloat32(1.5)
	assert.Equal(t, []byte{
		0x01, 0x02,
		0x03, 0x04, 0x05, 0x06,
		0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E,
		0x3F, 0xC0, 0x00, 0x00,
	}, w.Bytes())

	r := NewReader(w.Bytes(), newAttrs(version.V1_8))
	assert.Equal(t, int16(0x0102), r.ReadInt16())
	assert.Equal(t, int32(0x03040506), r.ReadInt32())
	assert.Equal(t, int64(0x0708090A0B0C0D0E), r.ReadInt64())
	assert.Equal(t, float32(1.5), r.ReadFloat32())
	require.NoError(t, r.Err())
}

func TestStickyTruncation(t *testing.T) {
	r := NewReader([]byte{0x00, 0x01}, newAttrs(version.V1_8))
	assert.Equal(t, int32(0), r.ReadInt32())
	require.Error(t, r.Err())
	assert.True(t, errors.Is(r.Err(), ErrTruncated))

	// после ошибки чтения возвращают нули, а курсор стоит на месте
	assert.Equal(t, uint8(0), r.ReadUint8())
	assert.Equal(t, 0, r.ReaderIndex())
}

func TestStringsAndIdentifiers(t *testing.T) {
	w := NewWriter(newAttrs(version.V1_20_5))
	w.WriteString("привет")
	w.WriteIdentifier(ParseIdentifier("stone"))
	w.WriteIdentifier(ParseIdentifier("custom:thing"))

	r := NewReader(w.Bytes(), newAttrs(version.V1_20_5))
	assert.Equal(t, "привет", r.ReadString())
	assert.Equal(t, Identifier{Namespace: "minecraft", Path: "stone"}, r.ReadIdentifier())
	assert.Equal(t, "custom:thing", r.ReadIdentifier().String())
	require.NoError(t, r.Err())

	assert.Equal(t, "minecraft:grass", NormalizeName("grass"))
	assert.Equal(t, "minecraft:grass", NormalizeName(":grass"))
}

func TestStringLengthBeyondBuffer(t *testing.T) {
	r := NewReader([]byte{0x10, 'a', 'b'}, newAttrs(version.V1_20_5))
	assert.Equal(t, "", r.ReadString())
	assert.ErrorIs(t, r.Err(), ErrTruncated)
}

func TestUUIDAndArrays(t *testing.T) {
	id := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	w := NewWriter(newAttrs(version.V1_20_5))
	w.WriteUUID(id)
	w.WriteLongArray([]int64{1, -2, 3})
	w.WriteVarIntArray([]int32{5, 300})
	w.WriteByteArray([]byte{9, 8})

	assert.Equal(t, byte(0x12), w.Bytes()[0])

	r := NewReader(w.Bytes(), newAttrs(version.V1_20_5))
	assert.Equal(t, id, r.ReadUUID())
	assert.Equal(t, []int64{1, -2, 3}, r.ReadLongArray())
	assert.Equal(t, []int32{5, 300}, r.ReadVarIntArray())
	assert.Equal(t, []byte{9, 8}, r.ReadByteArray())
	require.NoError(t, r.Err())
	assert.Zero(t, r.Remaining())
}

func TestStructuralHelpers(t *testing.T) {
	w := NewWriter(newAttrs(version.V1_20_5))
	v := int32(42)
	WriteOptional(w, &v, (*Buffer).WriteVarInt)
	WriteOptional[int32](w, nil, (*Buffer).WriteVarInt)
	WriteList(w, []string{"a", "b"}, (*Buffer).WriteString)
	WriteEither(w, Left[int32, string](7), (*Buffer).WriteVarInt, (*Buffer).WriteString)
	WriteEither(w, Right[int32, string]("x"), (*Buffer).WriteVarInt, (*Buffer).WriteString)
	WriteMap(w, []int32{2, 1, 3}, map[int32]string{1: "one", 2: "two"}, (*Buffer).WriteVarInt, (*Buffer).WriteString)

	r := NewReader(w.Bytes(), newAttrs(version.V1_20_5))
	got := ReadOptional(r, (*Buffer).ReadVarInt)
	require.NotNil(t, got)
	assert.Equal(t, int32(42), *got)
	assert.Nil(t, ReadOptional(r, (*Buffer).ReadVarInt))
	assert.Equal(t, []string{"a", "b"}, ReadList(r, (*Buffer).ReadString))

	left := ReadEither(r, (*Buffer).ReadVarInt, (*Buffer).ReadString)
	lv, ok := left.Left()
	assert.True(t, ok)
	assert.Equal(t, int32(7), lv)

	right := ReadEither(r, (*Buffer).ReadVarInt, (*Buffer).ReadString)
	rv, ok := right.Right()
	assert.True(t, ok)
	assert.Equal(t, "x", rv)

	m := ReadMap(r, (*Buffer).ReadVarInt, (*Buffer).ReadString)
	assert.Equal(t, map[int32]string{1: "one", 2: "two"}, m)
	require.NoError(t, r.Err())
	assert.Zero(t, r.Remaining())
}

func TestEitherDiscriminantIsTrueForLeft(t *testing.T) {
	w := NewWriter(newAttrs(version.V1_20_5))
	WriteEither(w, Left[int32, string](1), (*Buffer).WriteVarInt, (*Buffer).WriteString)
	assert.Equal(t, []byte{0x01, 0x01}, w.Bytes())
}

func TestNBTRootNaming(t *testing.T) {
	c := nbt.NewCompound().Set("a", nbt.Byte(1))

	t.Run("до 1.20.2 корень именованный", func(t *testing.T) {
		w := NewWriter(newAttrs(version.V1_20))
		w.WriteNBT(c)
		assert.Equal(t, []byte{nbt.TagCompound, 0x00, 0x00, nbt.TagByte, 0x00, 0x01, 'a', 0x01, nbt.TagEnd}, w.Bytes())
	})

	t.Run("с 1.20.2 корень безымянный", func(t *testing.T) {
		w := NewWriter(newAttrs(version.V1_20_2))
		w.WriteNBT(c)
		assert.Equal(t, []byte{nbt.TagCompound, nbt.TagByte, 0x00, 0x01, 'a', 0x01, nbt.TagEnd}, w.Bytes())

		r := NewReader(w.Bytes(), newAttrs(version.V1_20_2))
		assert.Equal(t, c, r.ReadCompound())
		require.NoError(t, r.Err())
	})

	t.Run("до 1.8 тег сжат gzip", func(t *testing.T) {
		w := NewWriter(newAttrs(version.V1_7_10))
		w.WriteNBT(c)
		w.WriteNBT(nil)

		r := NewReader(w.Bytes(), newAttrs(version.V1_7_10))
		assert.Equal(t, c, r.ReadCompound())
		assert.Nil(t, r.ReadCompound())
		require.NoError(t, r.Err())
		assert.Zero(t, r.Remaining())
	})

	t.Run("имя корня переживает чтение и запись", func(t *testing.T) {
		named := nbt.NewCompound().Set("a", nbt.Byte(1))
		named.Name = "Level"
		for _, rev := range []version.Revision{version.V1_7_10, version.V1_12_2, version.V1_20} {
			w := NewWriter(newAttrs(rev))
			w.WriteNBT(named)

			r := NewReader(w.Bytes(), newAttrs(rev))
			got := r.ReadCompound()
			require.NoError(t, r.Err())
			require.NotNil(t, got)
			assert.Equal(t, "Level", got.Name, "ревизия %s", rev)
			assert.Zero(t, r.Remaining())
		}
	})
}

func TestDesyncErrorWrapsSentinel(t *testing.T) {
	err := error(&DesyncError{Where: "чанк (1, 2)", Expected: 10, Actual: 12})
	assert.ErrorIs(t, err, ErrProtocolDesync)
	assert.Contains(t, err.Error(), "чанк (1, 2)")
}
