package chunk

import (
	"fmt"
	"math/bits"

	"github.com/annel0/protobridge/internal/protocol/wire"
)

// Container - значения секции (состояния блоков или биомы) в порядке y, z, x.
// Если все значения одинаковы, Values равен nil и значение лежит в Single.
type Container struct {
	Single uint32
	Values []uint32
}

// Uniform возвращает контейнер с одним значением.
func Uniform(v uint32) Container {
	return Container{Single: v}
}

// Get возвращает значение по индексу.
func (c Container) Get(i int) uint32 {
	if c.Values == nil {
		return c.Single
	}
	return c.Values[i]
}

// Set меняет значение; size - объём контейнера.
func (c *Container) Set(i int, v uint32, size int) {
	if c.Values == nil {
		if v == c.Single {
			return
		}
		c.Values = make([]uint32, size)
		for j := range c.Values {
			c.Values[j] = c.Single
		}
	}
	c.Values[i] = v
}

// normalize сворачивает контейнер из одинаковых значений.
func (c Container) normalize() Container {
	if len(c.Values) == 0 {
		return Container{Single: c.Single}
	}
	first := c.Values[0]
	for _, v := range c.Values[1:] {
		if v != first {
			return c
		}
	}
	return Container{Single: first}
}

// palette возвращает различные значения в порядке первого появления.
func (c Container) palette() ([]uint32, map[uint32]uint32) {
	index := make(map[uint32]uint32)
	var out []uint32
	for _, v := range c.Values {
		if _, ok := index[v]; !ok {
			index[v] = uint32(len(out))
			out = append(out, v)
		}
	}
	return out, index
}

// nonAir считает ненулевые значения.
func (c Container) nonAir(size int) int16 {
	if c.Values == nil {
		if c.Single == 0 {
			return 0
		}
		return int16(size)
	}
	var n int16
	for _, v := range c.Values {
		if v != 0 {
			n++
		}
	}
	return n
}

// kind описывает разновидность контейнера.
type kind struct {
	size        int
	minIndirect int
	maxIndirect int
	global      func(*wire.Attributes) int
}

var (
	blockKind = kind{size: SectionVolume, minIndirect: 4, maxIndirect: 8, global: (*wire.Attributes).GlobalBlockBits}
	biomeKind = kind{size: BiomeVolume, minIndirect: 1, maxIndirect: 3, global: (*wire.Attributes).GlobalBiomeBits}
)

// layout - разметка контейнера в данной ревизии.
type layout struct {
	// singleton - допускается палитра из одного значения без данных (1.18+).
	singleton bool
	// spanning - значения могут пересекать границы long (до 1.16).
	spanning bool
	// implied - длина массива long не передаётся (1.21.5+).
	implied bool
	// emptyGlobalPalette - перед глобальной палитрой передаётся нулевая длина (до 1.13).
	emptyGlobalPalette bool
	// minLegacyBits - нижняя граница ширины для старой разметки.
	minLegacyBits int
}

// readContainer читает контейнер; возвращает также число long в массиве данных.
func readContainer(b *wire.Buffer, k kind, l layout) (Container, int) {
	width := int(b.ReadUint8())
	if b.Err() != nil {
		return Container{}, 0
	}
	if width == 0 && l.singleton {
		v := b.ReadVarInt()
		if !l.implied {
			b.ReadLongs(int(b.ReadVarInt()))
		}
		return Uniform(uint32(v)), 0
	}
	if width < l.minLegacyBits {
		width = l.minLegacyBits
	}
	if width > 32 {
		b.Fail(fmt.Errorf("%w: ширина значения %d бит", wire.ErrInvalidLength, width))
		return Container{}, 0
	}

	var pal []int32
	switch {
	case width <= k.maxIndirect:
		pal = wire.ReadList(b, (*wire.Buffer).ReadVarInt)
	case l.emptyGlobalPalette:
		b.ReadVarInt()
	}

	count := longsFor(width, k.size, l.spanning)
	if !l.implied {
		count = int(b.ReadVarInt())
	}
	longs := b.ReadLongs(count)
	if b.Err() != nil {
		return Container{}, 0
	}
	raw, err := unpack(longs, width, k.size, l.spanning)
	if err != nil {
		b.Fail(err)
		return Container{}, 0
	}
	if pal != nil {
		for i, idx := range raw {
			if int(idx) < len(pal) {
				raw[i] = uint32(pal[idx])
			} else {
				raw[i] = 0
			}
		}
	}
	return Container{Values: raw}.normalize(), count
}

// writeContainer записывает контейнер с наименьшей подходящей палитрой;
// возвращает число long в массиве данных.
func writeContainer(b *wire.Buffer, c Container, k kind, l layout) int {
	c = c.normalize()
	if c.Values == nil && l.singleton {
		b.WriteUint8(0)
		b.WriteVarInt(int32(c.Single))
		if !l.implied {
			b.WriteVarInt(0)
		}
		return 0
	}
	if c.Values == nil {
		c = Container{Values: []uint32{c.Single}}
	}

	pal, index := c.palette()
	width := bitsFor(len(pal))
	if width < k.minIndirect {
		width = k.minIndirect
	}
	if width < l.minLegacyBits {
		width = l.minLegacyBits
	}

	values := make([]uint32, k.size)
	if width <= k.maxIndirect {
		b.WriteUint8(uint8(width))
		b.WriteVarInt(int32(len(pal)))
		for _, v := range pal {
			b.WriteVarInt(int32(v))
		}
		for i := range values {
			values[i] = index[c.Get(i%len(c.Values))]
		}
	} else {
		width = k.global(b.Attrs())
		var maxValue uint32
		for _, v := range pal {
			if v > maxValue {
				maxValue = v
			}
		}
		if need := bits.Len32(maxValue); need > width {
			width = need
		}
		b.WriteUint8(uint8(width))
		if l.emptyGlobalPalette {
			b.WriteVarInt(0)
		}
		for i := range values {
			values[i] = c.Get(i % len(c.Values))
		}
	}

	longs := pack(values, width, l.spanning)
	if !l.implied {
		b.WriteLongArray(longs)
	} else {
		b.WriteLongs(longs)
	}
	return len(longs)
}

// bitsFor возвращает число бит, достаточное для n различных индексов.
func bitsFor(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// longsFor возвращает длину массива long для size значений шириной width.
func longsFor(width, size int, spanning bool) int {
	if width == 0 {
		return 0
	}
	if spanning {
		return (size*width + 63) / 64
	}
	perLong := 64 / width
	return (size + perLong - 1) / perLong
}

// unpack извлекает size значений шириной width.
func unpack(longs []int64, width, size int, spanning bool) ([]uint32, error) {
	if need := longsFor(width, size, spanning); len(longs) < need {
		return nil, &wire.DesyncError{Where: "массив данных секции", Expected: need, Actual: len(longs)}
	}
	out := make([]uint32, size)
	if width == 0 {
		return out, nil
	}
	mask := uint64(1)<<uint(width) - 1
	if spanning {
		for i := range out {
			off := i * width
			word, shift := off/64, uint(off%64)
			v := uint64(longs[word]) >> shift
			if int(shift)+width > 64 {
				v |= uint64(longs[word+1]) << (64 - shift)
			}
			out[i] = uint32(v & mask)
		}
		return out, nil
	}
	perLong := 64 / width
	for i := range out {
		word, shift := i/perLong, uint((i%perLong)*width)
		out[i] = uint32((uint64(longs[word]) >> shift) & mask)
	}
	return out, nil
}

// pack упаковывает значения шириной width.
func pack(values []uint32, width int, spanning bool) []int64 {
	longs := make([]uint64, longsFor(width, len(values), spanning))
	mask := uint64(1)<<uint(width) - 1
	if spanning {
		for i, v := range values {
			off := i * width
			word, shift := off/64, uint(off%64)
			x := uint64(v) & mask
			longs[word] |= x << shift
			if int(shift)+width > 64 {
				longs[word+1] |= x >> (64 - shift)
			}
		}
	} else {
		perLong := 64 / width
		for i, v := range values {
			word, shift := i/perLong, uint((i%perLong)*width)
			longs[word] |= (uint64(v) & mask) << shift
		}
	}
	out := make([]int64, len(longs))
	for i, x := range longs {
		out[i] = int64(x)
	}
	return out
}
