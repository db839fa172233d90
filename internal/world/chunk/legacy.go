package chunk

import (
	"encoding/binary"

	"github.com/annel0/protobridge/internal/protocol/wire"
)

const (
	// legacySectionBytes - секция 1.7 (блоки, метаданные, свет, небо, старшие биты id)
	// и секция 1.8 со светом неба.
	legacySectionBytes = 12288
	// legacyNoSkyBytes - секция 1.8 без света неба.
	legacyNoSkyBytes = 10240
	legacyBiomeBytes = 256
)

func nibble(p []byte, i int) uint32 {
	return uint32(p[i>>1]>>(uint(i&1)*4)) & 0xF
}

func setNibble(p []byte, i int, v uint32) {
	shift := uint(i&1) * 4
	p[i>>1] = p[i>>1]&^(0xF<<shift) | byte(v&0xF)<<shift
}

// present возвращает номера присутствующих секций.
func present(mask bitSet, count int) []int {
	var out []int
	for i := 0; i < count; i++ {
		if mask.has(i) {
			out = append(out, i)
		}
	}
	return out
}

// readSections17 разбирает распакованные данные 1.7: массивы сгруппированы по виду,
// состояние блока собирается как (add<<12)|(id<<4)|meta.
func readSections17(b *wire.Buffer, mask, addMask bitSet) []*Section {
	idx := present(mask, LegacySections)
	sections := make([]*Section, LegacySections)
	ids := make([][]byte, len(idx))
	for k := range idx {
		ids[k] = b.ReadBytes(SectionVolume)
	}
	meta := make([][]byte, len(idx))
	for k := range idx {
		meta[k] = b.ReadBytes(LightLength)
	}
	for _, i := range idx {
		sections[i] = &Section{BlockLight: b.ReadBytes(LightLength)}
	}
	for _, i := range idx {
		sections[i].SkyLight = b.ReadBytes(LightLength)
	}
	// Данные имеют фиксированный размер InflatedLength, поэтому массив старших битов
	// читается для каждой секции и применяется только по маске add.
	add := make([][]byte, len(idx))
	for k, i := range idx {
		raw := b.ReadBytes(LightLength)
		if addMask.has(i) {
			add[k] = raw
		}
	}
	if b.Err() != nil {
		return nil
	}
	for k, i := range idx {
		values := make([]uint32, SectionVolume)
		for j := range values {
			v := uint32(ids[k][j])<<4 | nibble(meta[k], j)
			if add[k] != nil {
				v |= nibble(add[k], j) << 12
			}
			values[j] = v
		}
		s := sections[i]
		s.Blocks = Container{Values: values}.normalize()
		s.BlockCount = s.Blocks.nonAir(SectionVolume)
	}
	return sections
}

// writeSections17 записывает секции 1.7; массив старших битов передаётся для
// каждой секции, поэтому маска add совпадает с основной.
func writeSections17(b *wire.Buffer, sections []*Section) {
	var list []*Section
	for _, s := range sections {
		if s != nil {
			list = append(list, s)
		}
	}
	ids := make([]byte, SectionVolume)
	for _, s := range list {
		for j := range ids {
			ids[j] = byte(s.Blocks.Get(j) >> 4)
		}
		b.Write(ids)
	}
	for _, s := range list {
		meta := make([]byte, LightLength)
		for j := 0; j < SectionVolume; j++ {
			setNibble(meta, j, s.Blocks.Get(j))
		}
		b.Write(meta)
	}
	for _, s := range list {
		writeLight(b, s.BlockLight)
	}
	for _, s := range list {
		writeLight(b, s.SkyLight)
	}
	for _, s := range list {
		add := make([]byte, LightLength)
		for j := 0; j < SectionVolume; j++ {
			setNibble(add, j, s.Blocks.Get(j)>>12)
		}
		b.Write(add)
	}
}

// readSections18 разбирает данные 1.8: состояния - short в little-endian. Наличие
// света неба определяется по длине данных.
func readSections18(b *wire.Buffer, mask bitSet, dataLen int, biomeLen int, where string) ([]*Section, error) {
	idx := present(mask, LegacySections)
	var sky bool
	switch rest := dataLen - biomeLen; rest {
	case len(idx) * legacySectionBytes:
		sky = true
	case len(idx) * legacyNoSkyBytes:
	default:
		return nil, &wire.DesyncError{Where: where, Expected: len(idx)*legacySectionBytes + biomeLen, Actual: dataLen}
	}

	sections := make([]*Section, LegacySections)
	for _, i := range idx {
		raw := b.ReadBytes(SectionVolume * 2)
		if raw == nil {
			return nil, b.Err()
		}
		values := make([]uint32, SectionVolume)
		for j := range values {
			values[j] = uint32(binary.LittleEndian.Uint16(raw[j*2:]))
		}
		blocks := Container{Values: values}.normalize()
		sections[i] = &Section{Blocks: blocks, BlockCount: blocks.nonAir(SectionVolume)}
	}
	for _, i := range idx {
		sections[i].BlockLight = b.ReadBytes(LightLength)
	}
	if sky {
		for _, i := range idx {
			sections[i].SkyLight = b.ReadBytes(LightLength)
		}
	}
	return sections, b.Err()
}

// writeSections18 записывает секции 1.8; свет неба пишется, если он есть хотя бы у одной секции.
func writeSections18(b *wire.Buffer, sections []*Section) {
	var list []*Section
	sky := false
	for _, s := range sections {
		if s != nil {
			list = append(list, s)
			sky = sky || s.SkyLight != nil
		}
	}
	raw := make([]byte, SectionVolume*2)
	for _, s := range list {
		for j := 0; j < SectionVolume; j++ {
			binary.LittleEndian.PutUint16(raw[j*2:], uint16(s.Blocks.Get(j)))
		}
		b.Write(raw)
	}
	for _, s := range list {
		writeLight(b, s.BlockLight)
	}
	if sky {
		for _, s := range list {
			writeLight(b, s.SkyLight)
		}
	}
}
