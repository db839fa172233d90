package packets

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/protobridge/internal/catalog"
	"github.com/annel0/protobridge/internal/protocol/nbt"
	"github.com/annel0/protobridge/internal/protocol/packettype"
	"github.com/annel0/protobridge/internal/protocol/version"
	"github.com/annel0/protobridge/internal/protocol/wire"
	"github.com/annel0/protobridge/internal/registry"
	"github.com/annel0/protobridge/internal/world/chunk"
)

// encode кодирует полезную нагрузку и возвращает байты.
func encode(t *testing.T, attrs *wire.Attributes, typ *packettype.Type, payload any) []byte {
	t.Helper()
	w := wire.NewWriter(attrs)
	require.NoError(t, Encode(typ, w, payload))
	return w.Bytes()
}

// decode читает полезную нагрузку и проверяет, что буфер прочитан до конца.
func decode(t *testing.T, attrs *wire.Attributes, typ *packettype.Type, raw []byte) any {
	t.Helper()
	r := wire.NewReader(raw, attrs)
	v, err := Decode(typ, r)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Remaining(), "полезная нагрузка должна быть прочитана целиком")
	return v
}

func TestHandshake(t *testing.T) {
	attrs := wire.NewAttributes(version.V1_8)
	in := Handshake{Protocol: int32(version.V1_21), Address: "play.example.org", Port: 25565, Intent: IntentLogin}
	raw := encode(t, attrs, packettype.HandshakeToServerIntention, in)
	assert.Equal(t, in, decode(t, attrs, packettype.HandshakeToServerIntention, raw))
}

func TestStatusPingPong(t *testing.T) {
	attrs := wire.NewAttributes(version.V1_12_2)
	for _, typ := range []*packettype.Type{packettype.StatusToServerPing, packettype.StatusToClientPong} {
		raw := encode(t, attrs, typ, Ping{Payload: 1234567890123})
		assert.Len(t, raw, 8)
		assert.Equal(t, Ping{Payload: 1234567890123}, decode(t, attrs, typ, raw))
	}
	raw := encode(t, attrs, packettype.StatusToServerRequest, StatusRequest{})
	assert.Empty(t, raw)
}

func TestLoginSuccessByRevision(t *testing.T) {
	id := uuid.MustParse("069a79f4-44e9-4726-a5be-fca90e38aaf5")
	sig := "c2ln"

	t.Run("строковый UUID до 1.16", func(t *testing.T) {
		attrs := wire.NewAttributes(version.V1_15_2)
		raw := encode(t, attrs, packettype.LoginToClientLoginSuccess, LoginSuccess{UUID: id, Username: "Notch"})
		assert.Equal(t, byte(36), raw[0], "UUID передаётся строкой из 36 символов")
		got := decode(t, attrs, packettype.LoginToClientLoginSuccess, raw).(LoginSuccess)
		assert.Equal(t, id, got.UUID)
		assert.Equal(t, "Notch", got.Username)
	})

	t.Run("свойства и флаг строгой обработки", func(t *testing.T) {
		attrs := wire.NewAttributes(version.V1_20_5)
		in := LoginSuccess{
			UUID:                id,
			Username:            "Notch",
			Properties:          []Property{{Name: "textures", Value: "e30=", Signature: &sig}},
			StrictErrorHandling: true,
		}
		raw := encode(t, attrs, packettype.LoginToClientLoginSuccess, in)
		assert.Equal(t, byte(1), raw[len(raw)-1])
		assert.Equal(t, in, decode(t, attrs, packettype.LoginToClientLoginSuccess, raw))
	})

	t.Run("флаг убран в 1.21.2", func(t *testing.T) {
		old := encode(t, wire.NewAttributes(version.V1_21), packettype.LoginToClientLoginSuccess, LoginSuccess{UUID: id, Username: "a"})
		cur := encode(t, wire.NewAttributes(version.V1_21_2), packettype.LoginToClientLoginSuccess, LoginSuccess{UUID: id, Username: "a"})
		assert.Equal(t, len(old)-1, len(cur))
	})

	t.Run("неверный UUID", func(t *testing.T) {
		attrs := wire.NewAttributes(version.V1_12_2)
		w := wire.NewWriter(attrs)
		w.WriteString("не-uuid")
		w.WriteString("Notch")
		_, err := Decode(packettype.LoginToClientLoginSuccess, wire.NewReader(w.Bytes(), attrs))
		assert.Error(t, err)
	})
}

func TestKeepAliveWidth(t *testing.T) {
	cases := []struct {
		rev  version.Revision
		size int
	}{
		{version.V1_7_10, 4},
		{version.V1_8, 2},
		{version.V1_12_1, 2},
		{version.V1_12_2, 8},
		{version.V1_21, 8},
	}
	for _, tc := range cases {
		t.Run(tc.rev.String(), func(t *testing.T) {
			attrs := wire.NewAttributes(tc.rev)
			raw := encode(t, attrs, packettype.PlayToClientKeepAlive, KeepAlive{ID: 300})
			assert.Len(t, raw, tc.size)
			assert.Equal(t, KeepAlive{ID: 300}, decode(t, attrs, packettype.PlayToServerKeepAlive, raw))
		})
	}

	attrs := wire.NewAttributes(version.V1_20_2)
	raw := encode(t, attrs, packettype.ConfigToClientKeepAlive, KeepAlive{ID: -5})
	assert.Len(t, raw, 8, "в конфигурации идентификатор всегда long")
}

func TestPluginMessage(t *testing.T) {
	t.Run("1.7 с длиной данных", func(t *testing.T) {
		attrs := wire.NewAttributes(version.V1_7_10)
		raw := encode(t, attrs, packettype.PlayToClientPluginMessage, PluginMessage{Channel: "MC|Brand", Data: []byte("vanilla")})
		// строка канала (1 + 8), затем short 7
		assert.Equal(t, []byte{0, 7}, raw[9:11])
		got := decode(t, attrs, packettype.PlayToClientPluginMessage, raw).(PluginMessage)
		assert.Equal(t, "MC|Brand", got.Channel)
		assert.Equal(t, []byte("vanilla"), got.Data)
	})

	t.Run("идентификатор канала с 1.13", func(t *testing.T) {
		attrs := wire.NewAttributes(version.V1_13)
		raw := encode(t, attrs, packettype.PlayToServerPluginMessage, PluginMessage{Channel: "brand", Data: []byte{1, 2, 3}})
		got := decode(t, attrs, packettype.PlayToServerPluginMessage, raw).(PluginMessage)
		assert.Equal(t, "minecraft:brand", got.Channel)
		assert.Equal(t, []byte{1, 2, 3}, got.Data)
	})
}

func TestUnloadChunkOrder(t *testing.T) {
	old := encode(t, wire.NewAttributes(version.V1_20), packettype.PlayToClientUnloadChunk, UnloadChunk{X: 1, Z: 2})
	assert.Equal(t, []byte{0, 0, 0, 1, 0, 0, 0, 2}, old)

	attrs := wire.NewAttributes(version.V1_20_2)
	cur := encode(t, attrs, packettype.PlayToClientUnloadChunk, UnloadChunk{X: 1, Z: 2})
	assert.Equal(t, []byte{0, 0, 0, 2, 0, 0, 0, 1}, cur)
	assert.Equal(t, UnloadChunk{X: 1, Z: 2}, decode(t, attrs, packettype.PlayToClientUnloadChunk, cur))
}

func TestChunkDataDelegates(t *testing.T) {
	attrs := wire.NewAttributes(version.V1_18_2)
	col := &chunk.Column{X: 3, Z: -4, FullChunk: true, Heightmaps: map[chunk.HeightmapType][]int64{}}
	raw := encode(t, attrs, packettype.PlayToClientChunkData, col)
	got := decode(t, attrs, packettype.PlayToClientChunkData, raw).(*chunk.Column)
	assert.Equal(t, int32(3), got.X)
	assert.Equal(t, int32(-4), got.Z)
	assert.Len(t, got.Sections, chunk.SectionCount(attrs))

	_, err := Decode(packettype.PlayToClientChunkData, wire.NewReader(raw[:len(raw)-3], attrs))
	assert.Error(t, err, "обрезанный столбец должен давать ошибку")
}

func TestSoundEffect(t *testing.T) {
	anvil, ok := catalog.Sounds().GetByName("block.anvil.break")
	require.True(t, ok)

	t.Run("идентификатор и байтовая высота тона в 1.9", func(t *testing.T) {
		attrs := wire.NewAttributes(version.V1_9)
		in := SoundEffect{Sound: anvil, Category: 1, X: 8, Y: 64, Z: -8, Volume: 1, Pitch: 1}
		raw := encode(t, attrs, packettype.PlayToClientSoundEffect, in)
		assert.Equal(t, byte(1), raw[0])
		assert.Equal(t, byte(63), raw[len(raw)-1], "высота тона 1.0 кодируется как 63")
		got := decode(t, attrs, packettype.PlayToClientSoundEffect, raw).(SoundEffect)
		assert.Equal(t, "minecraft:block.anvil.break", got.Sound.SoundID.String())
		assert.Equal(t, float32(1), got.Pitch)
	})

	t.Run("держатель и зерно с 1.19.3", func(t *testing.T) {
		attrs := wire.NewAttributes(version.V1_19_3)
		cave, _ := catalog.Sounds().GetByName("ambient.cave")
		in := SoundEffect{Sound: cave, Volume: 0.5, Pitch: 1.25, Seed: 42}
		raw := encode(t, attrs, packettype.PlayToClientSoundEffect, in)
		assert.Equal(t, byte(11), raw[0], "ссылка передаётся как идентификатор + 1")
		got := decode(t, attrs, packettype.PlayToClientSoundEffect, raw).(SoundEffect)
		assert.Equal(t, "minecraft:ambient.cave", got.Sound.SoundID.String())
		assert.Equal(t, int64(42), got.Seed)
		assert.Equal(t, float32(1.25), got.Pitch)
	})
}

func TestNamedSoundEffect(t *testing.T) {
	attrs := wire.NewAttributes(version.V1_8)
	in := NamedSoundEffect{Name: "random.click", X: 1, Y: 2, Z: 3, Volume: 1, Pitch: 1}
	raw := encode(t, attrs, packettype.PlayToClientNamedSoundEffect, in)
	assert.Equal(t, in, decode(t, attrs, packettype.PlayToClientNamedSoundEffect, raw))
}

func TestRegistryDataInstall(t *testing.T) {
	attrs := wire.NewAttributes(version.V1_21)
	in := RegistryData{
		Registry: wire.ParseIdentifier("sound_event"),
		Entries: []RegistryEntry{
			{ID: wire.ParseIdentifier("mod:boom")},
			{ID: wire.ParseIdentifier("ambient.cave"), Data: nbt.NewCompound().Set("x", nbt.Int(1))},
		},
	}
	raw := encode(t, attrs, packettype.ConfigToClientRegistryData, in)
	got := decode(t, attrs, packettype.ConfigToClientRegistryData, raw).(RegistryData)
	require.Len(t, got.Entries, 2)
	assert.Nil(t, got.Entries[0].Data)
	assert.NotNil(t, got.Entries[1].Data)

	assert.Equal(t, []string{"minecraft:sound_event"}, InstallRegistries(attrs, got))

	cave, _ := catalog.Sounds().GetByName("ambient.cave")
	w := wire.NewWriter(attrs)
	require.NoError(t, Encode(packettype.PlayToClientSoundEffect, w, SoundEffect{Sound: cave}))
	assert.Equal(t, byte(2), w.Bytes()[0], "идентификатор берётся из присланного реестра")

	other := wire.NewAttributes(version.V1_21)
	w = wire.NewWriter(other)
	require.NoError(t, Encode(packettype.PlayToClientSoundEffect, w, SoundEffect{Sound: cave}))
	assert.NotEqual(t, byte(2), w.Bytes()[0], "другое соединение не затронуто")
}

func TestSyncedInstruments(t *testing.T) {
	attrs := wire.NewAttributes(version.V1_21_4)
	in := RegistryData{
		Registry: wire.ParseIdentifier("instrument"),
		Entries:  []RegistryEntry{{ID: wire.ParseIdentifier("mod:lute")}, {ID: wire.ParseIdentifier("dream_goat_horn")}},
	}
	got := decode(t, attrs, packettype.ConfigToClientRegistryData, encode(t, attrs, packettype.ConfigToClientRegistryData, in)).(RegistryData)
	assert.Equal(t, []string{"minecraft:instrument"}, InstallRegistries(attrs, got))

	dream, _ := catalog.Instruments().GetByName("dream_goat_horn")
	w := wire.NewWriter(attrs)
	catalog.WriteInstrumentComponent(w, registry.Of(dream, registry.For(attrs, catalog.Instruments())))
	require.NoError(t, w.Err())
	assert.Equal(t, []byte{0x02}, w.Bytes(), "идентификатор из присланного реестра + 1")

	lute, ok := catalog.ReadInstrumentComponent(wire.NewReader([]byte{0x01}, attrs)).Get()
	require.True(t, ok)
	name, _ := lute.Name()
	assert.Equal(t, "mod:lute", name.String())
}

func TestServerLinks(t *testing.T) {
	label := nbt.NewCompound().Set("text", nbt.String("Вики"))
	in := ServerLinks{Links: []ServerLink{
		{Label: wire.Left[LinkKind, nbt.Tag](LinkWebsite), URL: "https://example.org"},
		{Label: wire.Right[LinkKind, nbt.Tag](label), URL: "https://wiki.example.org"},
	}}

	for _, typ := range []*packettype.Type{packettype.ConfigToClientServerLinks, packettype.PlayToClientServerLinks} {
		attrs := wire.NewAttributes(version.V1_21)
		raw := encode(t, attrs, typ, in)
		assert.Equal(t, []byte{0x02, 0x01, byte(LinkWebsite)}, raw[:3], "встроенный вид: флаг true и номер")

		got := decode(t, attrs, typ, raw).(ServerLinks)
		require.Len(t, got.Links, 2)
		kind, ok := got.Links[0].Label.Left()
		require.True(t, ok)
		assert.Equal(t, LinkWebsite, kind)
		text, ok := got.Links[1].Label.Right()
		require.True(t, ok)
		assert.Equal(t, label, text)
		assert.Equal(t, "https://wiki.example.org", got.Links[1].URL)
	}
}

func TestLegacyRegistryCodec(t *testing.T) {
	value := &nbt.List{Elem: nbt.TagCompound, Items: []nbt.Tag{
		nbt.NewCompound().Set("name", nbt.String("minecraft:kebab")).Set("id", nbt.Int(1)),
		nbt.NewCompound().Set("name", nbt.String("minecraft:aztec")).Set("id", nbt.Int(0)),
	}}
	codec := nbt.NewCompound().Set("minecraft:painting_variant",
		nbt.NewCompound().Set("type", nbt.String("minecraft:painting_variant")).Set("value", value))

	attrs := wire.NewAttributes(version.V1_20_2)
	raw := encode(t, attrs, packettype.ConfigToClientRegistryData, RegistryData{Codec: codec})
	got := decode(t, attrs, packettype.ConfigToClientRegistryData, raw).(RegistryData)

	names := got.Names()["minecraft:painting_variant"]
	require.Len(t, names, 2)
	assert.Equal(t, "minecraft:aztec", names[0].String(), "записи упорядочены по id")
	assert.Equal(t, "minecraft:kebab", names[1].String())
}

func TestCodecErrors(t *testing.T) {
	attrs := wire.NewAttributes(version.V1_21)

	err := Encode(packettype.PlayToClientKeepAlive, wire.NewWriter(attrs), UnloadChunk{})
	assert.ErrorIs(t, err, ErrPayloadType)

	_, err = Decode(packettype.PlayToClientJoinGame, wire.NewReader(nil, attrs))
	assert.ErrorIs(t, err, ErrNoCodec)
	assert.False(t, Has(packettype.PlayToClientJoinGame))
	assert.True(t, Has(packettype.PlayToClientChunkData))

	_, err = Decode(packettype.PlayToClientKeepAlive, wire.NewReader([]byte{1, 2}, attrs))
	assert.ErrorIs(t, err, wire.ErrTruncated)
}
