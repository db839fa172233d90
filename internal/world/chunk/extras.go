package chunk

import (
	"sort"

	"github.com/annel0/protobridge/internal/protocol/nbt"
	"github.com/annel0/protobridge/internal/protocol/version"
	"github.com/annel0/protobridge/internal/protocol/wire"
)

// readHeightmaps читает карты высот: составной тег в 1.14-1.21.4, прямое отображение
// вид -> массив long начиная с 1.21.5. Ключи тега неизвестных видов отбрасываются.
func readHeightmaps(b *wire.Buffer) map[HeightmapType][]int64 {
	rev := b.Revision()
	if rev < version.V1_14 {
		return nil
	}
	if rev >= version.V1_21_5 {
		return wire.ReadMap(b, func(b *wire.Buffer) HeightmapType {
			return HeightmapType(b.ReadVarInt())
		}, (*wire.Buffer).ReadLongArray)
	}
	c := b.ReadCompound()
	out := make(map[HeightmapType][]int64)
	if c == nil {
		return out
	}
	for _, key := range c.Keys() {
		kind, ok := heightmapByKey(key)
		if !ok {
			continue
		}
		v, _ := c.Get(key)
		if arr, ok := v.(nbt.LongArray); ok {
			out[kind] = []int64(arr)
		}
	}
	return out
}

func writeHeightmaps(b *wire.Buffer, m map[HeightmapType][]int64) {
	rev := b.Revision()
	if rev < version.V1_14 {
		return
	}
	kinds := make([]HeightmapType, 0, len(m))
	for k := range m {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	if rev >= version.V1_21_5 {
		wire.WriteMap(b, kinds, m, func(b *wire.Buffer, k HeightmapType) {
			b.WriteVarInt(int32(k))
		}, (*wire.Buffer).WriteLongArray)
		return
	}
	c := nbt.NewCompound()
	for _, k := range kinds {
		c.Set(k.Key(), nbt.LongArray(m[k]))
	}
	b.WriteCompound(c)
}

// readTileEntity читает блок-сущность: с 1.18 с координатами и типом, раньше только тег.
func readTileEntity(b *wire.Buffer) TileEntity {
	if b.Revision() < version.V1_18 {
		return TileEntity{Tag: b.ReadNBT()}
	}
	return TileEntity{
		PackedXZ: b.ReadUint8(),
		Y:        b.ReadInt16(),
		Type:     b.ReadVarInt(),
		Tag:      b.ReadNBT(),
	}
}

func writeTileEntity(b *wire.Buffer, t TileEntity) {
	if b.Revision() >= version.V1_18 {
		b.WriteUint8(t.PackedXZ)
		b.WriteInt16(t.Y)
		b.WriteVarInt(t.Type)
	}
	b.WriteNBT(t.Tag)
}

// ReadLight читает данные света; тот же формат использует отдельный пакет обновления света.
func ReadLight(b *wire.Buffer) *LightData {
	l := &LightData{}
	if b.Revision() < version.V1_20 {
		l.TrustEdges = b.ReadBool()
	}
	l.SkyMask = b.ReadLongArray()
	l.BlockMask = b.ReadLongArray()
	l.EmptySkyMask = b.ReadLongArray()
	l.EmptyBlockMask = b.ReadLongArray()
	l.SkyLight = wire.ReadList(b, (*wire.Buffer).ReadByteArray)
	l.BlockLight = wire.ReadList(b, (*wire.Buffer).ReadByteArray)
	if b.Err() != nil {
		return nil
	}
	return l
}

// WriteLight записывает данные света; nil записывается как пустой свет.
func WriteLight(b *wire.Buffer, l *LightData) {
	if l == nil {
		l = &LightData{TrustEdges: true}
	}
	if b.Revision() < version.V1_20 {
		b.WriteBool(l.TrustEdges)
	}
	b.WriteLongArray(l.SkyMask)
	b.WriteLongArray(l.BlockMask)
	b.WriteLongArray(l.EmptySkyMask)
	b.WriteLongArray(l.EmptyBlockMask)
	wire.WriteList(b, l.SkyLight, (*wire.Buffer).WriteByteArray)
	wire.WriteList(b, l.BlockLight, (*wire.Buffer).WriteByteArray)
}
