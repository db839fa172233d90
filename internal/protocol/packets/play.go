package packets

import (
	"math"

	"github.com/annel0/protobridge/internal/catalog"
	"github.com/annel0/protobridge/internal/protocol/packettype"
	"github.com/annel0/protobridge/internal/protocol/version"
	"github.com/annel0/protobridge/internal/protocol/wire"
	"github.com/annel0/protobridge/internal/registry"
	"github.com/annel0/protobridge/internal/world/chunk"
)

// KeepAlive - проверка соединения; ответ повторяет идентификатор.
type KeepAlive struct {
	ID int64
}

// PluginMessage - сообщение канала плагина.
type PluginMessage struct {
	Channel string
	Data    []byte
}

// UnloadChunk - выгрузка столбца.
type UnloadChunk struct {
	X, Z int32
}

// ConfigFinish - завершение конфигурации сервером и подтверждение клиентом.
type ConfigFinish struct{}

// SoundEffect - звук в точке мира. Координаты в восьмых долях блока.
type SoundEffect struct {
	Sound    catalog.Sound
	Category int32
	X, Y, Z  int32
	Volume   float32
	Pitch    float32
	Seed     int64
}

// NamedSoundEffect - звук по имени (до 1.19.3).
type NamedSoundEffect struct {
	Name     string
	Category int32
	X, Y, Z  int32
	Volume   float32
	Pitch    float32
	Seed     int64
}

func init() {
	register([]*packettype.Type{
		packettype.PlayToClientKeepAlive, packettype.PlayToServerKeepAlive,
		packettype.ConfigToClientKeepAlive, packettype.ConfigToServerKeepAlive,
	}, readKeepAlive, writeKeepAlive)
	register([]*packettype.Type{
		packettype.PlayToClientPluginMessage, packettype.PlayToServerPluginMessage,
		packettype.ConfigToClientPluginMessage, packettype.ConfigToServerPluginMessage,
	}, readPluginMessage, writePluginMessage)
	register([]*packettype.Type{packettype.ConfigToClientConfigurationEnd, packettype.ConfigToServerConfigurationEndAck},
		func(*wire.Buffer) ConfigFinish { return ConfigFinish{} },
		func(*wire.Buffer, ConfigFinish) {})
	register([]*packettype.Type{packettype.PlayToClientUnloadChunk}, readUnloadChunk, writeUnloadChunk)
	register([]*packettype.Type{packettype.PlayToClientChunkData}, readChunkData, writeChunkData)
	register([]*packettype.Type{packettype.PlayToClientSoundEffect}, readSoundEffect, writeSoundEffect)
	register([]*packettype.Type{packettype.PlayToClientNamedSoundEffect}, readNamedSoundEffect, writeNamedSoundEffect)
}

// readKeepAlive: int до 1.8, varint до 1.12.2, далее long.
func readKeepAlive(b *wire.Buffer) KeepAlive {
	switch rev := b.Revision(); {
	case rev <= version.V1_7_10:
		return KeepAlive{ID: int64(b.ReadInt32())}
	case rev < version.V1_12_2:
		return KeepAlive{ID: int64(b.ReadVarInt())}
	default:
		return KeepAlive{ID: b.ReadInt64()}
	}
}

func writeKeepAlive(b *wire.Buffer, p KeepAlive) {
	switch rev := b.Revision(); {
	case rev <= version.V1_7_10:
		b.WriteInt32(int32(p.ID))
	case rev < version.V1_12_2:
		b.WriteVarInt(int32(p.ID))
	default:
		b.WriteInt64(p.ID)
	}
}

// readPluginMessage: в 1.7 данные с префиксом длины short, дальше - до конца пакета.
func readPluginMessage(b *wire.Buffer) PluginMessage {
	var p PluginMessage
	if b.Revision() >= version.V1_13 {
		p.Channel = b.ReadIdentifier().String()
	} else {
		p.Channel = b.ReadStringMax(20)
	}
	if b.Revision() <= version.V1_7_10 {
		p.Data = b.ReadBytes(int(b.ReadUint16()))
	} else {
		p.Data = b.ReadRemaining()
	}
	return p
}

func writePluginMessage(b *wire.Buffer, p PluginMessage) {
	if b.Revision() >= version.V1_13 {
		b.WriteIdentifier(wire.ParseIdentifier(p.Channel))
	} else {
		b.WriteString(p.Channel)
	}
	if b.Revision() <= version.V1_7_10 {
		b.WriteUint16(uint16(len(p.Data)))
	}
	b.Write(p.Data)
}

// readUnloadChunk: с 1.20.2 z передаётся первым.
func readUnloadChunk(b *wire.Buffer) UnloadChunk {
	if b.Revision() >= version.V1_20_2 {
		z := b.ReadInt32()
		return UnloadChunk{Z: z, X: b.ReadInt32()}
	}
	x := b.ReadInt32()
	return UnloadChunk{X: x, Z: b.ReadInt32()}
}

func writeUnloadChunk(b *wire.Buffer, p UnloadChunk) {
	if b.Revision() >= version.V1_20_2 {
		b.WriteInt32(p.Z)
		b.WriteInt32(p.X)
		return
	}
	b.WriteInt32(p.X)
	b.WriteInt32(p.Z)
}

// readChunkData возвращает *chunk.Column либо ошибку разбора столбца.
func readChunkData(b *wire.Buffer) any {
	c, err := chunk.Read(b)
	if err != nil {
		return err
	}
	return c
}

func writeChunkData(b *wire.Buffer, v any) {
	c, ok := v.(*chunk.Column)
	if !ok {
		b.Fail(ErrPayloadType)
		return
	}
	if err := chunk.Write(b, c); err != nil {
		b.Fail(err)
	}
}

func readPitch(b *wire.Buffer) float32 {
	if b.Revision() < version.V1_10 {
		return float32(b.ReadUint8()) / 63
	}
	return b.ReadFloat32()
}

func writePitch(b *wire.Buffer, v float32) {
	if b.Revision() < version.V1_10 {
		b.WriteUint8(uint8(math.Round(float64(v) * 63)))
		return
	}
	b.WriteFloat32(v)
}

// readSoundEffect: идентификатор в реестре звуков до 1.19.3, держатель начиная с неё.
func readSoundEffect(b *wire.Buffer) SoundEffect {
	var p SoundEffect
	if b.Revision() >= version.V1_19_3 {
		p.Sound = registry.ReadHolder(b, catalog.Sounds(), catalog.ReadSoundInline)
	} else {
		p.Sound = registry.ReadMapped(b, catalog.Sounds())
	}
	p.Category = b.ReadVarInt()
	p.X, p.Y, p.Z = b.ReadInt32(), b.ReadInt32(), b.ReadInt32()
	p.Volume = b.ReadFloat32()
	p.Pitch = readPitch(b)
	if b.Revision() >= version.V1_19 {
		p.Seed = b.ReadInt64()
	}
	return p
}

func writeSoundEffect(b *wire.Buffer, p SoundEffect) {
	if b.Revision() >= version.V1_19_3 {
		registry.WriteHolder(b, catalog.Sounds(), p.Sound, catalog.WriteSoundInline)
	} else {
		registry.WriteMapped(b, catalog.Sounds(), p.Sound)
	}
	b.WriteVarInt(p.Category)
	b.WriteInt32(p.X)
	b.WriteInt32(p.Y)
	b.WriteInt32(p.Z)
	b.WriteFloat32(p.Volume)
	writePitch(b, p.Pitch)
	if b.Revision() >= version.V1_19 {
		b.WriteInt64(p.Seed)
	}
}

// readNamedSoundEffect: категория начиная с 1.9.
func readNamedSoundEffect(b *wire.Buffer) NamedSoundEffect {
	p := NamedSoundEffect{Name: b.ReadString()}
	if b.Revision() >= version.V1_9 {
		p.Category = b.ReadVarInt()
	}
	p.X, p.Y, p.Z = b.ReadInt32(), b.ReadInt32(), b.ReadInt32()
	p.Volume = b.ReadFloat32()
	p.Pitch = readPitch(b)
	if b.Revision() >= version.V1_19 {
		p.Seed = b.ReadInt64()
	}
	return p
}

func writeNamedSoundEffect(b *wire.Buffer, p NamedSoundEffect) {
	b.WriteString(p.Name)
	if b.Revision() >= version.V1_9 {
		b.WriteVarInt(p.Category)
	}
	b.WriteInt32(p.X)
	b.WriteInt32(p.Y)
	b.WriteInt32(p.Z)
	b.WriteFloat32(p.Volume)
	writePitch(b, p.Pitch)
	if b.Revision() >= version.V1_19 {
		b.WriteInt64(p.Seed)
	}
}
