package chunk

import (
	"github.com/annel0/protobridge/internal/protocol/version"
	"github.com/annel0/protobridge/internal/protocol/wire"
)

// sectionLayout возвращает разметку контейнера блоков для ревизии.
func sectionLayout(rev version.Revision) layout {
	l := layout{
		singleton:          rev >= version.V1_18,
		spanning:           rev < version.V1_16,
		implied:            rev >= version.V1_21_5,
		emptyGlobalPalette: rev < version.V1_13,
	}
	if rev < version.V1_16 {
		l.minLegacyBits = 4
	}
	return l
}

// readPalettedSections читает секции 1.9-1.17: присутствие задаёт маска.
func readPalettedSections(b *wire.Buffer, mask bitSet, count int) []*Section {
	rev := b.Revision()
	l := sectionLayout(rev)
	light := rev < version.V1_14
	sky := light && b.Attrs().HasSkyLight

	sections := make([]*Section, count)
	for i := range sections {
		if !mask.has(i) {
			continue
		}
		s := &Section{}
		if rev >= version.V1_14 {
			s.BlockCount = b.ReadInt16()
		}
		s.Blocks, _ = readContainer(b, blockKind, l)
		if light {
			s.BlockLight = b.ReadBytes(LightLength)
			if sky {
				s.SkyLight = b.ReadBytes(LightLength)
			}
		}
		if b.Err() != nil {
			return nil
		}
		if rev < version.V1_14 {
			s.BlockCount = s.Blocks.nonAir(SectionVolume)
		}
		sections[i] = s
	}
	return sections
}

func writePalettedSections(b *wire.Buffer, sections []*Section) {
	rev := b.Revision()
	l := sectionLayout(rev)
	light := rev < version.V1_14
	sky := light && b.Attrs().HasSkyLight

	for _, s := range sections {
		if s == nil {
			continue
		}
		if rev >= version.V1_14 {
			b.WriteInt16(s.BlockCount)
		}
		writeContainer(b, s.Blocks, blockKind, l)
		if light {
			writeLight(b, s.BlockLight)
			if sky {
				writeLight(b, s.SkyLight)
			}
		}
	}
}

// readModernSections читает секции 1.18+: передаются все секции, пустая секция -
// палитра из одного воздуха.
func readModernSections(b *wire.Buffer, count int) []*Section {
	l := sectionLayout(b.Revision())
	sections := make([]*Section, count)
	suffix := 0
	for i := range sections {
		s := &Section{BlockCount: b.ReadInt16()}
		var blockLongs int
		s.Blocks, blockLongs = readContainer(b, blockKind, l)
		biomes, biomeLongs := readContainer(b, biomeKind, l)
		s.Biomes = &biomes
		if b.Err() != nil {
			return nil
		}
		suffix += zeroSuffix(blockLongs, biomeLongs)
		sections[i] = s
	}
	if l.implied {
		b.Skip(suffix)
	}
	return sections
}

func writeModernSections(b *wire.Buffer, sections []*Section) {
	l := sectionLayout(b.Revision())
	suffix := 0
	for _, s := range sections {
		if s == nil {
			s = EmptySection()
		}
		biomes := Uniform(0)
		if s.Biomes != nil {
			biomes = *s.Biomes
		}
		b.WriteInt16(s.BlockCount)
		blockLongs := writeContainer(b, s.Blocks, blockKind, l)
		biomeLongs := writeContainer(b, biomes, biomeKind, l)
		suffix += zeroSuffix(blockLongs, biomeLongs)
	}
	if l.implied {
		b.Write(make([]byte, suffix))
	}
}

// zeroSuffix - сколько нулевых байтов vanilla дописывает за секцией в 1.21.5+:
// размер буфера там считается вместе с уже не передаваемыми длинами массивов.
func zeroSuffix(blockLongs, biomeLongs int) int {
	return wire.VarIntSize(int32(blockLongs)) + wire.VarIntSize(int32(biomeLongs))
}

// writeLight записывает полубайтовый массив света; отсутствующий массив - нулями.
func writeLight(b *wire.Buffer, light []byte) {
	if len(light) == LightLength {
		b.Write(light)
		return
	}
	p := make([]byte, LightLength)
	copy(p, light)
	b.Write(p)
}
