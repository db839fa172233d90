package chunk

import (
	"github.com/annel0/protobridge/internal/protocol/version"
	"github.com/annel0/protobridge/internal/protocol/wire"
)

// bitSet - маска присутствия секций.
type bitSet []uint64

func (s bitSet) has(i int) bool {
	w := i / 64
	return w < len(s) && s[w]&(1<<uint(i%64)) != 0
}

func (s *bitSet) set(i int) {
	w := i / 64
	for len(*s) <= w {
		*s = append(*s, 0)
	}
	(*s)[w] |= 1 << uint(i%64)
}

// count считает установленные биты среди первых n.
func (s bitSet) count(n int) int {
	total := 0
	for i := 0; i < n; i++ {
		if s.has(i) {
			total++
		}
	}
	return total
}

// trimmed отбрасывает старшие нулевые слова.
func (s bitSet) trimmed() bitSet {
	n := len(s)
	for n > 0 && s[n-1] == 0 {
		n--
	}
	return s[:n]
}

// maskOf строит маску по присутствующим секциям.
func maskOf(sections []*Section) bitSet {
	var s bitSet
	for i, sec := range sections {
		if sec != nil {
			s.set(i)
		}
	}
	return s
}

// readMask читает маску секций: u16 до 1.9, varint до 1.17, массив long в 1.17.x.
func readMask(b *wire.Buffer) bitSet {
	rev := b.Revision()
	switch {
	case rev < version.V1_9:
		return bitSet{uint64(b.ReadUint16())}
	case rev < version.V1_17:
		return bitSet{uint64(uint32(b.ReadVarInt()))}
	}
	longs := b.ReadLongArray()
	s := make(bitSet, len(longs))
	for i, l := range longs {
		s[i] = uint64(l)
	}
	return s
}

func writeMask(b *wire.Buffer, s bitSet) {
	var low uint64
	if len(s) > 0 {
		low = s[0]
	}
	rev := b.Revision()
	switch {
	case rev < version.V1_9:
		b.WriteUint16(uint16(low))
	case rev < version.V1_17:
		b.WriteVarInt(int32(uint32(low)))
	default:
		t := s.trimmed()
		longs := make([]int64, len(t))
		for i, w := range t {
			longs[i] = int64(w)
		}
		b.WriteLongArray(longs)
	}
}
