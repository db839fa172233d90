package chunk

import (
	"bytes"
	"errors"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/protobridge/internal/protocol/nbt"
	"github.com/annel0/protobridge/internal/protocol/version"
	"github.com/annel0/protobridge/internal/protocol/wire"
)

func pattern(size, distinct int) Container {
	values := make([]uint32, size)
	for i := range values {
		values[i] = uint32(i % distinct)
	}
	return Container{Values: values}.normalize()
}

func filled(n int, seed byte) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i) + seed
	}
	return p
}

func ints(n, mod int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(i % mod)
	}
	return out
}

func longs(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i) * 0x0102030405
	}
	return out
}

// sampleColumn строит столбец в форме, которую производит ревизия attrs.
func sampleColumn(attrs *wire.Attributes) *Column {
	rev := attrs.Revision
	count := SectionCount(attrs)
	c := &Column{
		X:             -3,
		Z:             7,
		FullChunk:     true,
		IgnoreOldData: rev == version.V1_16 || rev == version.V1_16_1,
		Sections:      make([]*Section, count),
	}
	for i := range c.Sections {
		if rev < version.V1_18 && i%3 == 1 {
			continue
		}
		var blocks Container
		switch i {
		case 2:
			blocks = Uniform(0)
		case 3:
			blocks = pattern(SectionVolume, 300)
		default:
			blocks = pattern(SectionVolume, 21+i)
		}
		s := &Section{Blocks: blocks, BlockCount: blocks.nonAir(SectionVolume)}
		if rev < version.V1_14 {
			s.BlockLight = filled(LightLength, byte(i))
			if attrs.HasSkyLight || rev < version.V1_9 {
				s.SkyLight = filled(LightLength, byte(i+100))
			}
		}
		if rev >= version.V1_18 {
			biomes := pattern(BiomeVolume, 1+i%5)
			s.Biomes = &biomes
		}
		c.Sections[i] = s
	}

	switch {
	case rev >= version.V1_18:
	case rev >= version.V1_15:
		c.Biomes = ints(1024, 50)
	default:
		c.Biomes = ints(256, 256)
	}
	if rev >= version.V1_14 {
		c.Heightmaps = map[HeightmapType][]int64{
			WorldSurface:   longs(37),
			MotionBlocking: longs(37),
		}
	}
	if rev >= version.V1_9 {
		tag := nbt.NewCompound().Set("id", nbt.String("minecraft:chest")).Set("x", nbt.Int(-48))
		te := TileEntity{Tag: tag}
		if rev >= version.V1_18 {
			te.PackedXZ, te.Y, te.Type = 0x3A, -12, 2
		}
		c.TileEntities = []TileEntity{te}
	}
	if rev >= version.V1_18 {
		c.Light = &LightData{
			TrustEdges:     rev < version.V1_20,
			SkyMask:        []int64{3},
			BlockMask:      []int64{1},
			EmptySkyMask:   []int64{},
			EmptyBlockMask: []int64{},
			SkyLight:       [][]byte{filled(LightLength, 1), filled(LightLength, 2)},
			BlockLight:     [][]byte{filled(LightLength, 3)},
		}
	}
	return c
}

func roundTrip(t *testing.T, attrs *wire.Attributes, c *Column) *Column {
	t.Helper()
	w := wire.NewWriter(attrs)
	require.NoError(t, Write(w, c))
	r := wire.NewReader(w.Bytes(), attrs)
	got, err := Read(r)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Remaining(), "пакет должен быть прочитан полностью")
	return got
}

func TestColumnRoundTrip(t *testing.T) {
	revs := []version.Revision{
		version.V1_7_10, version.V1_8, version.V1_9_4, version.V1_12_2, version.V1_13_2,
		version.V1_14_4, version.V1_15_2, version.V1_16_1, version.V1_16_4, version.V1_17_1,
		version.V1_18_2, version.V1_19_4, version.V1_20_3, version.V1_21_4, version.V1_21_5,
		version.V1_21_6,
	}
	for _, rev := range revs {
		t.Run(rev.String(), func(t *testing.T) {
			attrs := wire.NewAttributes(rev)
			c := sampleColumn(attrs)
			assert.Equal(t, c, roundTrip(t, attrs, c))
		})
	}
}

func TestColumnWithoutSkyLight(t *testing.T) {
	for _, rev := range []version.Revision{version.V1_8, version.V1_12_2} {
		t.Run(rev.String(), func(t *testing.T) {
			attrs := wire.NewAttributes(rev)
			attrs.HasSkyLight = false
			c := sampleColumn(attrs)
			for _, s := range c.Sections {
				if s != nil {
					s.SkyLight = nil
				}
			}
			got := roundTrip(t, attrs, c)
			assert.Equal(t, c, got)
			assert.Nil(t, got.Sections[0].SkyLight)
		})
	}
}

func TestPartialColumn(t *testing.T) {
	attrs := wire.NewAttributes(version.V1_12_2)
	c := sampleColumn(attrs)
	c.FullChunk = false
	c.Biomes = nil
	got := roundTrip(t, attrs, c)
	assert.False(t, got.FullChunk)
	assert.Nil(t, got.Biomes, "неполный столбец не несёт биомов")
}

func TestTallWorld(t *testing.T) {
	t.Run("маска секций", func(t *testing.T) {
		attrs := wire.NewAttributes(version.V1_17_1)
		attrs.WorldHeight = 384
		c := sampleColumn(attrs)
		require.Len(t, c.Sections, 24)
		c.Sections[23] = nil

		got := roundTrip(t, attrs, c)
		require.Len(t, got.Sections, 24)
		assert.Nil(t, got.Sections[23], "пустая верхняя секция передаётся сброшенным битом маски")
		assert.Equal(t, c, got)
	})

	t.Run("явная пустая секция", func(t *testing.T) {
		attrs := wire.NewAttributes(version.V1_18_2)
		attrs.WorldHeight = 384
		c := sampleColumn(attrs)
		require.Len(t, c.Sections, 24)
		c.Sections[23] = EmptySection()

		got := roundTrip(t, attrs, c)
		require.Len(t, got.Sections, 24)
		assert.Equal(t, EmptySection(), got.Sections[23])
		assert.Equal(t, c, got)

		c.Sections[23] = nil
		got = roundTrip(t, attrs, c)
		assert.Equal(t, EmptySection(), got.Sections[23], "отсутствующая секция записывается как воздух")
	})
}

func TestLegacyAddBits(t *testing.T) {
	attrs := wire.NewAttributes(version.V1_7_10)
	c := sampleColumn(attrs)
	blocks := Uniform(0)
	blocks.Set(17, 0x1234, SectionVolume)
	c.Sections[0].Blocks = blocks
	c.Sections[0].BlockCount = 1

	got := roundTrip(t, attrs, c)
	assert.Equal(t, uint32(0x1234), got.Sections[0].Blocks.Get(17))
	assert.Equal(t, uint32(0), got.Sections[0].Blocks.Get(18))
}

func TestInflatedLength(t *testing.T) {
	assert.Equal(t, 61696, InflatedLength(5, true))
	assert.Equal(t, 12288*16, InflatedLength(16, false))
}

func legacyPacket(t *testing.T, rev version.Revision, mask uint16, inflated []byte) []byte {
	t.Helper()
	var z bytes.Buffer
	zw := zlib.NewWriter(&z)
	_, err := zw.Write(inflated)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	w := wire.NewWriter(wire.NewAttributes(rev))
	w.WriteInt32(1)
	w.WriteInt32(2)
	w.WriteBool(true)
	w.WriteUint16(mask)
	w.WriteUint16(0)
	w.WriteInt32(int32(z.Len()))
	w.Write(z.Bytes())
	return w.Bytes()
}

func TestLegacyInflateLength(t *testing.T) {
	attrs := wire.NewAttributes(version.V1_7_10)

	t.Run("точная длина", func(t *testing.T) {
		c, err := Read(wire.NewReader(legacyPacket(t, version.V1_7_10, 0x1F, make([]byte, 61696)), attrs))
		require.NoError(t, err)
		assert.Equal(t, 5, maskOf(c.Sections).count(LegacySections))
		assert.Len(t, c.Biomes, 256)
	})

	for _, n := range []int{61695, 61697} {
		_, err := Read(wire.NewReader(legacyPacket(t, version.V1_7_10, 0x1F, make([]byte, n)), attrs))
		require.Error(t, err)
		assert.True(t, errors.Is(err, wire.ErrProtocolDesync))
		var d *wire.DesyncError
		require.True(t, errors.As(err, &d))
		assert.Equal(t, 61696, d.Expected)
		assert.Contains(t, d.Where, "(1, 2)", "ошибка должна называть координаты чанка")
	}
}

func TestPayloadLengthMismatch(t *testing.T) {
	attrs := wire.NewAttributes(version.V1_12_2)
	c := sampleColumn(attrs)
	w := wire.NewWriter(attrs)
	require.NoError(t, Write(w, c))

	// Вставляем лишний байт в конец данных секций и увеличиваем объявленную длину.
	r := wire.NewReader(w.Bytes(), attrs)
	r.ReadInt32()
	r.ReadInt32()
	r.ReadBool()
	r.ReadVarInt()
	head := len(w.Bytes()) - r.Remaining()
	payload := r.ReadByteArray()
	tail := r.ReadRemaining()
	require.NoError(t, r.Err())

	tampered := wire.NewWriter(attrs)
	tampered.Write(w.Bytes()[:head])
	tampered.WriteByteArray(append(payload, 0))
	tampered.Write(tail)

	_, err := Read(wire.NewReader(tampered.Bytes(), attrs))
	require.Error(t, err)
	var d *wire.DesyncError
	require.True(t, errors.As(err, &d))
	assert.Equal(t, len(payload)+1, d.Expected)
	assert.Equal(t, len(payload), d.Actual)
	assert.Contains(t, d.Where, "(-3, 7)")

	short := wire.NewWriter(attrs)
	short.Write(w.Bytes()[:head])
	short.WriteByteArray(payload[:len(payload)-10])
	short.Write(tail)
	_, err = Read(wire.NewReader(short.Bytes(), attrs))
	assert.ErrorIs(t, err, wire.ErrProtocolDesync)
}

func TestZeroByteSuffix(t *testing.T) {
	attrs := wire.NewAttributes(version.V1_21_5)
	attrs.WorldHeight = 16
	c := &Column{X: 0, Z: 0, FullChunk: true, Sections: []*Section{EmptySection()}, Heightmaps: map[HeightmapType][]int64{}}

	w := wire.NewWriter(attrs)
	require.NoError(t, Write(w, c))
	raw := w.Bytes()
	// x, z, пустое отображение карт высот, затем длина данных секций.
	assert.Equal(t, byte(8), raw[9], "секция из 6 байтов и 2 нулевых байта суффикса")
	assert.Equal(t, []byte{0, 0}, raw[16:18])

	got, err := Read(wire.NewReader(raw, attrs))
	require.NoError(t, err)
	assert.Equal(t, EmptySection(), got.Sections[0])
}

func TestHeightmapUnknownKeysDropped(t *testing.T) {
	attrs := wire.NewAttributes(version.V1_16_4)
	w := wire.NewWriter(attrs)
	w.WriteCompound(nbt.NewCompound().
		Set("MOTION_BLOCKING", nbt.LongArray{1, 2}).
		Set("SOMETHING_NEW", nbt.LongArray{3}).
		Set("WORLD_SURFACE", nbt.Int(5)))

	r := wire.NewReader(w.Bytes(), attrs)
	m := readHeightmaps(r)
	require.NoError(t, r.Err())
	assert.Equal(t, map[HeightmapType][]int64{MotionBlocking: {1, 2}}, m)
}

func TestBitStorage(t *testing.T) {
	values := make([]uint32, 100)
	for i := range values {
		values[i] = uint32(i*7) % 32
	}

	t.Run("с переходом через границу long", func(t *testing.T) {
		packed := pack(values, 5, true)
		assert.Len(t, packed, 8)
		// Значение 12 занимает биты 60-64 и переходит во второй long.
		assert.Equal(t, values[12]&0xF, uint32(uint64(packed[0])>>60))
		got, err := unpack(packed, 5, len(values), true)
		require.NoError(t, err)
		assert.Equal(t, values, got)
	})

	t.Run("без перехода", func(t *testing.T) {
		packed := pack(values, 5, false)
		assert.Len(t, packed, 9, "по 12 значений в long")
		assert.Equal(t, values[12], uint32(packed[1]&0x1F))
		got, err := unpack(packed, 5, len(values), false)
		require.NoError(t, err)
		assert.Equal(t, values, got)
	})

	t.Run("короткий массив", func(t *testing.T) {
		_, err := unpack(make([]int64, 3), 5, len(values), false)
		assert.ErrorIs(t, err, wire.ErrProtocolDesync)
	})
}

func TestWriteRejectsBadBiomes(t *testing.T) {
	attrs := wire.NewAttributes(version.V1_15_2)
	c := sampleColumn(attrs)
	c.Biomes = c.Biomes[:10]
	assert.ErrorIs(t, Write(wire.NewWriter(attrs), c), wire.ErrInvalidLength)
}
