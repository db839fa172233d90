package chunk

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/annel0/protobridge/internal/protocol/version"
	"github.com/annel0/protobridge/internal/protocol/wire"
)

// SectionCount возвращает число секций столбца: высота мира / 16 начиная с 1.17,
// раньше всегда 16.
func SectionCount(attrs *wire.Attributes) int {
	if attrs.Revision >= version.V1_17 {
		return attrs.Height() >> 4
	}
	return LegacySections
}

// InflatedLength - ожидаемая длина распакованных данных 1.7.
func InflatedLength(sections int, fullChunk bool) int {
	n := legacySectionBytes * sections
	if fullChunk {
		n += legacyBiomeBytes
	}
	return n
}

func where(x, z int32) string {
	return fmt.Sprintf("чанк (%d, %d)", x, z)
}

// Read читает столбец в разметке ревизии буфера.
func Read(b *wire.Buffer) (*Column, error) {
	rev := b.Revision()
	c := &Column{X: b.ReadInt32(), Z: b.ReadInt32(), FullChunk: true}
	if rev < version.V1_17 {
		c.FullChunk = b.ReadBool()
	}
	if rev == version.V1_16 || rev == version.V1_16_1 {
		c.IgnoreOldData = b.ReadBool()
	}
	var mask bitSet
	if rev < version.V1_18 {
		mask = readMask(b)
	}
	c.Heightmaps = readHeightmaps(b)
	var addMask bitSet
	if rev <= version.V1_7_10 {
		addMask = readMask(b)
	}
	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка чтения заголовка: %w", where(c.X, c.Z), err)
	}

	count := SectionCount(b.Attrs())
	hasBiomes := c.FullChunk && rev < version.V1_18
	switch {
	case hasBiomes && rev >= version.V1_16_2:
		c.Biomes = b.ReadVarIntArray()
	case hasBiomes && rev >= version.V1_15:
		c.Biomes = readInts(b, 1024)
	}

	payload, err := readPayload(b, c, mask)
	if err != nil {
		return nil, err
	}
	if err := decodePayload(wire.NewReader(payload, b.Attrs()), c, mask, addMask, count, hasBiomes); err != nil {
		return nil, err
	}

	if rev >= version.V1_9 {
		c.TileEntities = wire.ReadList(b, readTileEntity)
		if len(c.TileEntities) == 0 {
			c.TileEntities = nil
		}
	}
	if rev >= version.V1_18 {
		c.Light = ReadLight(b)
	}
	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", where(c.X, c.Z), err)
	}
	return c, nil
}

// readPayload возвращает данные секций; в 1.7 они сжаты zlib и должны
// распаковаться ровно в InflatedLength байтов.
func readPayload(b *wire.Buffer, c *Column, mask bitSet) ([]byte, error) {
	if b.Revision() > version.V1_7_10 {
		p := b.ReadByteArray()
		if err := b.Err(); err != nil {
			return nil, fmt.Errorf("%s: ошибка чтения данных секций: %w", where(c.X, c.Z), err)
		}
		return p, nil
	}

	n := b.ReadInt32()
	if n < 0 {
		b.Fail(fmt.Errorf("%w: %d", wire.ErrInvalidLength, n))
	}
	compressed := b.ReadBytes(int(n))
	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка чтения сжатых данных: %w", where(c.X, c.Z), err)
	}
	expected := InflatedLength(mask.count(LegacySections), c.FullChunk)
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка распаковки: %w", where(c.X, c.Z), err)
	}
	defer zr.Close()
	data, err := io.ReadAll(io.LimitReader(zr, int64(expected)+1))
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%s: ошибка распаковки: %w", where(c.X, c.Z), err)
	}
	if len(data) != expected {
		return nil, &wire.DesyncError{Where: where(c.X, c.Z) + ", распакованные данные", Expected: expected, Actual: len(data)}
	}
	return data, nil
}

// decodePayload разбирает секции и замыкающие биомы. Данные должны быть прочитаны ровно
// до конца: любое расхождение означает рассинхронизацию.
func decodePayload(p *wire.Buffer, c *Column, mask, addMask bitSet, count int, hasBiomes bool) error {
	rev := p.Revision()
	total := p.Remaining()
	w := where(c.X, c.Z)

	switch {
	case rev <= version.V1_7_10:
		c.Sections = readSections17(p, mask, addMask)
	case rev < version.V1_9:
		biomeLen := 0
		if hasBiomes && total > 0 {
			biomeLen = legacyBiomeBytes
		}
		sections, err := readSections18(p, mask, total, biomeLen, w)
		if err != nil {
			return desync(w, err)
		}
		c.Sections = sections
	case rev < version.V1_18:
		c.Sections = readPalettedSections(p, mask, count)
	default:
		c.Sections = readModernSections(p, count)
	}

	if hasBiomes && rev < version.V1_15 {
		switch {
		case rev >= version.V1_13:
			c.Biomes = readInts(p, 256)
		case rev >= version.V1_9 || total > 0:
			c.Biomes = readBytes(p, legacyBiomeBytes)
		}
	}
	if err := p.Err(); err != nil {
		return desync(w, err)
	}
	if p.Remaining() != 0 {
		return &wire.DesyncError{Where: w, Expected: total, Actual: total - p.Remaining()}
	}
	return nil
}

// desync приводит ошибку разбора данных секций к рассинхронизации.
func desync(w string, err error) error {
	var d *wire.DesyncError
	if errors.As(err, &d) {
		return err
	}
	return fmt.Errorf("%s: данные секций не совпадают с объявленной длиной: %w: %w", w, wire.ErrProtocolDesync, err)
}

func readInts(b *wire.Buffer, n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = b.ReadInt32()
	}
	if b.Err() != nil {
		return nil
	}
	return out
}

func readBytes(b *wire.Buffer, n int) []int32 {
	raw := b.ReadBytes(n)
	if raw == nil {
		return nil
	}
	out := make([]int32, n)
	for i, v := range raw {
		out[i] = int32(v)
	}
	return out
}

// Write записывает столбец в разметке ревизии буфера.
func Write(b *wire.Buffer, c *Column) error {
	rev := b.Revision()
	count := SectionCount(b.Attrs())
	if len(c.Sections) > count {
		return fmt.Errorf("%s: %w: %d секций при допустимых %d", where(c.X, c.Z), wire.ErrInvalidLength, len(c.Sections), count)
	}
	sections := make([]*Section, count)
	copy(sections, c.Sections)
	full := c.FullChunk || rev >= version.V1_17
	hasBiomes := full && rev < version.V1_18
	if err := checkBiomes(c, rev, hasBiomes); err != nil {
		return err
	}

	b.WriteInt32(c.X)
	b.WriteInt32(c.Z)
	if rev < version.V1_17 {
		b.WriteBool(full)
	}
	if rev == version.V1_16 || rev == version.V1_16_1 {
		b.WriteBool(c.IgnoreOldData)
	}
	mask := maskOf(sections)
	if rev < version.V1_18 {
		writeMask(b, mask)
	}
	writeHeightmaps(b, c.Heightmaps)
	if rev <= version.V1_7_10 {
		writeMask(b, mask)
	}
	switch {
	case hasBiomes && rev >= version.V1_16_2:
		b.WriteVarIntArray(c.Biomes)
	case hasBiomes && rev >= version.V1_15:
		for _, v := range c.Biomes {
			b.WriteInt32(v)
		}
	}

	p := wire.NewWriter(b.Attrs())
	switch {
	case rev <= version.V1_7_10:
		writeSections17(p, sections)
	case rev < version.V1_9:
		writeSections18(p, sections)
	case rev < version.V1_18:
		writePalettedSections(p, sections)
	default:
		writeModernSections(p, sections)
	}
	if hasBiomes && rev < version.V1_15 {
		for _, v := range c.Biomes {
			if rev >= version.V1_13 {
				p.WriteInt32(v)
			} else {
				p.WriteUint8(uint8(v))
			}
		}
	}
	if err := p.Err(); err != nil {
		return fmt.Errorf("%s: ошибка записи секций: %w", where(c.X, c.Z), err)
	}

	if rev <= version.V1_7_10 {
		var z bytes.Buffer
		zw := zlib.NewWriter(&z)
		if _, err := zw.Write(p.Bytes()); err != nil {
			return fmt.Errorf("%s: ошибка сжатия: %w", where(c.X, c.Z), err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("%s: ошибка сжатия: %w", where(c.X, c.Z), err)
		}
		b.WriteInt32(int32(z.Len()))
		b.Write(z.Bytes())
	} else {
		b.WriteByteArray(p.Bytes())
	}

	if rev >= version.V1_9 {
		wire.WriteList(b, c.TileEntities, writeTileEntity)
	}
	if rev >= version.V1_18 {
		WriteLight(b, c.Light)
	}
	if err := b.Err(); err != nil {
		return fmt.Errorf("%s: %w", where(c.X, c.Z), err)
	}
	return nil
}

// checkBiomes проверяет размер биомов уровня столбца для ревизии.
func checkBiomes(c *Column, rev version.Revision, hasBiomes bool) error {
	if !hasBiomes || rev >= version.V1_16_2 {
		return nil
	}
	want := 256
	if rev >= version.V1_15 {
		want = 1024
	}
	if len(c.Biomes) == want {
		return nil
	}
	// 1.8 допускает полный столбец без биомов, если нет и секций.
	if len(c.Biomes) == 0 && rev > version.V1_7_10 && rev < version.V1_9 && maskOf(c.Sections).count(LegacySections) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %w: %d биомов, ожидалось %d", where(c.X, c.Z), wire.ErrInvalidLength, len(c.Biomes), want)
}
