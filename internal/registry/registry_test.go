package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/protobridge/internal/protocol/version"
	"github.com/annel0/protobridge/internal/protocol/wire"
)

type item struct {
	Entry
	Weight int32
}

func readItemInline(b *wire.Buffer) item {
	name := b.ReadIdentifier()
	return item{Entry: NamedEntry(name), Weight: b.ReadVarInt()}
}

func writeItemInline(b *wire.Buffer, v item) {
	n, _ := v.Name()
	b.WriteIdentifier(n)
	b.WriteVarInt(v.Weight)
}

const testListing = `
registry: test:item
revisions:
  - version: "1.12"
    entries: [stone, dirt]
  - version: "1.16"
    entries: [dirt, grass, stone]
`

func newTestRegistry(t *testing.T) *Versioned[item] {
	t.Helper()
	lf, err := ParseListing([]byte(testListing))
	require.NoError(t, err)
	r, err := NewVersioned(lf, func(e Entry) item { return item{Entry: e} })
	require.NoError(t, err)
	for i, name := range []string{"stone", "dirt", "grass"} {
		w := int32(i + 1)
		_, err := r.Define(name, func(e Entry) item { return item{Entry: e, Weight: w} })
		require.NoError(t, err)
	}
	require.NoError(t, r.Freeze())
	return r
}

func TestVersionedLookup(t *testing.T) {
	r := newTestRegistry(t)

	stone, ok := r.GetByName("stone")
	require.True(t, ok)
	same, ok := r.GetByName("minecraft:stone")
	require.True(t, ok)
	assert.Equal(t, stone, same, "имя без пространства имён нормализуется")

	id, ok := r.IDOf(stone, version.V1_12_2)
	require.True(t, ok)
	assert.Equal(t, int32(0), id)

	id, ok = r.IDOf(stone, version.V1_20)
	require.True(t, ok)
	assert.Equal(t, int32(2), id, "идентификатор берётся из ближайшего старшего списка")

	grass, _ := r.GetByName("grass")
	_, ok = r.IDOf(grass, version.V1_13)
	assert.False(t, ok, "grass отсутствует до 1.16")

	got, ok := r.GetByID(version.V1_16, 1)
	require.True(t, ok)
	assert.Equal(t, grass, got)

	_, ok = r.GetByID(version.V1_9, 0)
	assert.False(t, ok, "до первого списка реестр пуст")

	_, ok = r.GetByName("unknown")
	assert.False(t, ok)

	assert.Len(t, r.Entries(), 3)
}

func TestDefineDefects(t *testing.T) {
	lf, err := ParseListing([]byte(testListing))
	require.NoError(t, err)
	r, err := NewVersioned(lf, func(e Entry) item { return item{Entry: e} })
	require.NoError(t, err)

	_, err = r.Define("missing", func(e Entry) item { return item{Entry: e} })
	assert.Error(t, err, "имя вне списков - дефект сборки")

	_, err = r.Define("stone", func(e Entry) item { return item{Entry: e} })
	require.NoError(t, err)
	_, err = r.Define("stone", func(e Entry) item { return item{Entry: e} })
	assert.Error(t, err, "повторное определение - дефект сборки")

	assert.Error(t, r.Freeze(), "неопределённые имена должны обнаруживаться при заморозке")
}

func TestMappedRoundTripUnknownID(t *testing.T) {
	r := newTestRegistry(t)
	attrs := wire.NewAttributes(version.V1_16)

	w := wire.NewWriter(attrs)
	w.WriteVarInt(999)
	rd := wire.NewReader(w.Bytes(), attrs)
	v := ReadMapped(rd, r)
	require.NoError(t, rd.Err())

	assert.False(t, v.IsStatic())
	_, named := v.Name()
	assert.False(t, named, "динамическое значение не имеет имени")

	out := wire.NewWriter(attrs)
	WriteMapped(out, r, v)
	require.NoError(t, out.Err())
	assert.Equal(t, w.Bytes(), out.Bytes(), "неизвестный идентификатор должен сохраняться")
}

func TestWriteMappedAbsentInRevision(t *testing.T) {
	r := newTestRegistry(t)
	grass, _ := r.GetByName("grass")

	w := wire.NewWriter(wire.NewAttributes(version.V1_12_2))
	WriteMapped(w, r, grass)
	assert.ErrorIs(t, w.Err(), ErrUnmapped)
}

func TestHolder(t *testing.T) {
	r := newTestRegistry(t)
	attrs := wire.NewAttributes(version.V1_16)
	dirt, _ := r.GetByName("dirt")
	custom := item{Entry: NamedEntry(wire.ParseIdentifier("mod:gem")), Weight: 9}

	w := wire.NewWriter(attrs)
	WriteHolder(w, r, dirt, writeItemInline)
	WriteHolder(w, r, custom, writeItemInline)
	assert.Equal(t, byte(1), w.Bytes()[0], "ссылка записывается как идентификатор + 1")

	rd := wire.NewReader(w.Bytes(), attrs)
	assert.Equal(t, dirt, ReadHolder(rd, r, readItemInline))
	got := ReadHolder(rd, r, readItemInline)
	require.NoError(t, rd.Err())
	assert.Equal(t, int32(9), got.Weight)
	name, _ := got.Name()
	assert.Equal(t, "mod:gem", name.String())
}

func TestMaybeMapped(t *testing.T) {
	r := newTestRegistry(t)
	attrs := wire.NewAttributes(version.V1_16)

	t.Run("по имени передаётся только имя", func(t *testing.T) {
		stone, _ := r.GetByName("stone")
		m := Of(stone, Lookup[item](r))

		w := wire.NewWriter(attrs)
		WriteMaybeMapped(w, m, writeItemInline)

		expected := wire.NewWriter(attrs)
		expected.WriteBool(false)
		expected.WriteString("minecraft:stone")
		assert.Equal(t, expected.Bytes(), w.Bytes())

		back := ReadMaybeMapped(wire.NewReader(w.Bytes(), attrs), r, readItemInline)
		assert.True(t, back.Equal(m))
		got, ok := back.Get()
		require.True(t, ok)
		assert.Equal(t, stone, got)
	})

	t.Run("неизвестное имя даёт заглушку", func(t *testing.T) {
		m := Reference(wire.ParseIdentifier("mod:unknown"), Lookup[item](r))
		v, ok := m.Get()
		assert.False(t, ok)
		name, named := v.Name()
		assert.True(t, named)
		assert.Equal(t, "mod:unknown", name.String())
	})

	t.Run("значение целиком", func(t *testing.T) {
		custom := item{Entry: NamedEntry(wire.ParseIdentifier("mod:gem")), Weight: 4}
		w := wire.NewWriter(attrs)
		WriteMaybeMapped(w, Inline(custom), writeItemInline)
		assert.Equal(t, byte(1), w.Bytes()[0], "флаг true означает значение целиком")

		back := ReadMaybeMapped(wire.NewReader(w.Bytes(), attrs), r, readItemInline)
		assert.True(t, back.IsInline())
		v, ok := back.Get()
		require.True(t, ok)
		assert.Equal(t, int32(4), v.Weight)
	})
}

func TestSyncedRegistryOverride(t *testing.T) {
	r := newTestRegistry(t)

	synced := wire.NewAttributes(version.V1_20_5)
	plain := wire.NewAttributes(version.V1_20_5)
	NewSimple(r, []wire.Identifier{
		wire.ParseIdentifier("grass"),
		wire.ParseIdentifier("mod:ruby"),
		wire.ParseIdentifier("stone"),
	}).Install(synced)

	w := wire.NewWriter(synced)
	w.WriteVarInt(1)
	w.WriteVarInt(2)

	rd := wire.NewReader(w.Bytes(), synced)
	ruby := ReadMapped(rd, r)
	stone := ReadMapped(rd, r)
	require.NoError(t, rd.Err())

	name, ok := ruby.Name()
	require.True(t, ok, "имя из синхронизированного реестра известно")
	assert.Equal(t, "mod:ruby", name.String())
	assert.Equal(t, int32(1), stone.Weight, "известное имя разрешается во встроенное значение")

	out := wire.NewWriter(synced)
	WriteMapped(out, r, stone)
	assert.Equal(t, []byte{0x02}, out.Bytes(), "идентификатор берётся из порядка сервера")

	other := wire.NewWriter(plain)
	WriteMapped(other, r, stone)
	assert.Equal(t, []byte{0x02}, other.Bytes())
	dirt, _ := r.GetByName("dirt")
	other = wire.NewWriter(plain)
	WriteMapped(other, r, dirt)
	assert.Equal(t, []byte{0x00}, other.Bytes(), "другое соединение использует встроенный реестр")
}
