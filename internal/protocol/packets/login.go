package packets

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/annel0/protobridge/internal/protocol/packettype"
	"github.com/annel0/protobridge/internal/protocol/version"
	"github.com/annel0/protobridge/internal/protocol/wire"
)

// Handshake - первый пакет соединения.
type Handshake struct {
	Protocol int32
	Address  string
	Port     uint16
	// Intent - следующая фаза: 1 статус, 2 вход, 3 перенос.
	Intent int32
}

const (
	IntentStatus   = 1
	IntentLogin    = 2
	IntentTransfer = 3
)

// StatusRequest - запрос статуса сервера, без полей.
type StatusRequest struct{}

// StatusResponse - ответ статуса в JSON.
type StatusResponse struct {
	JSON string
}

// Ping - пинг и понг фазы статуса.
type Ping struct {
	Payload int64
}

// LoginDisconnect - отказ во входе, причина в JSON.
type LoginDisconnect struct {
	Reason string
}

// SetCompression - порог сжатия; отрицательный выключает сжатие.
type SetCompression struct {
	Threshold int32
}

// Property - свойство профиля игрока.
type Property struct {
	Name      string
	Value     string
	Signature *string
}

// LoginSuccess - успешный вход.
type LoginSuccess struct {
	UUID       uuid.UUID
	Username   string
	Properties []Property
	// StrictErrorHandling передаётся только в 1.20.5-1.21.1.
	StrictErrorHandling bool
}

// LoginAck - подтверждение входа клиентом (1.20.2+).
type LoginAck struct{}

func init() {
	register([]*packettype.Type{packettype.HandshakeToServerIntention}, readHandshake, writeHandshake)

	register([]*packettype.Type{packettype.StatusToServerRequest},
		func(*wire.Buffer) StatusRequest { return StatusRequest{} },
		func(*wire.Buffer, StatusRequest) {})
	register([]*packettype.Type{packettype.StatusToClientResponse},
		func(b *wire.Buffer) StatusResponse { return StatusResponse{JSON: b.ReadString()} },
		func(b *wire.Buffer, p StatusResponse) { b.WriteString(p.JSON) })
	register([]*packettype.Type{packettype.StatusToServerPing, packettype.StatusToClientPong},
		func(b *wire.Buffer) Ping { return Ping{Payload: b.ReadInt64()} },
		func(b *wire.Buffer, p Ping) { b.WriteInt64(p.Payload) })

	register([]*packettype.Type{packettype.LoginToClientDisconnect},
		func(b *wire.Buffer) LoginDisconnect { return LoginDisconnect{Reason: b.ReadString()} },
		func(b *wire.Buffer, p LoginDisconnect) { b.WriteString(p.Reason) })
	register([]*packettype.Type{packettype.LoginToClientSetCompression},
		func(b *wire.Buffer) SetCompression { return SetCompression{Threshold: b.ReadVarInt()} },
		func(b *wire.Buffer, p SetCompression) { b.WriteVarInt(p.Threshold) })
	register([]*packettype.Type{packettype.LoginToClientLoginSuccess}, readLoginSuccess, writeLoginSuccess)
	register([]*packettype.Type{packettype.LoginToServerLoginSuccessAck},
		func(*wire.Buffer) LoginAck { return LoginAck{} },
		func(*wire.Buffer, LoginAck) {})
}

func readHandshake(b *wire.Buffer) Handshake {
	return Handshake{
		Protocol: b.ReadVarInt(),
		Address:  b.ReadStringMax(255),
		Port:     b.ReadUint16(),
		Intent:   b.ReadVarInt(),
	}
}

func writeHandshake(b *wire.Buffer, p Handshake) {
	b.WriteVarInt(p.Protocol)
	b.WriteString(p.Address)
	b.WriteUint16(p.Port)
	b.WriteVarInt(p.Intent)
}

// readLoginSuccess: UUID строкой до 1.16, свойства профиля с 1.19.
func readLoginSuccess(b *wire.Buffer) LoginSuccess {
	rev := b.Revision()
	var p LoginSuccess
	if rev >= version.V1_16 {
		p.UUID = b.ReadUUID()
	} else {
		raw := b.ReadStringMax(36)
		if b.Err() == nil {
			id, err := uuid.Parse(raw)
			if err != nil {
				b.Fail(fmt.Errorf("ошибка разбора UUID %q: %w", raw, err))
			}
			p.UUID = id
		}
	}
	p.Username = b.ReadStringMax(16)
	if rev >= version.V1_19 {
		p.Properties = wire.ReadList(b, readProperty)
	}
	if rev >= version.V1_20_5 && rev < version.V1_21_2 {
		p.StrictErrorHandling = b.ReadBool()
	}
	return p
}

func writeLoginSuccess(b *wire.Buffer, p LoginSuccess) {
	rev := b.Revision()
	if rev >= version.V1_16 {
		b.WriteUUID(p.UUID)
	} else {
		b.WriteString(p.UUID.String())
	}
	b.WriteString(p.Username)
	if rev >= version.V1_19 {
		wire.WriteList(b, p.Properties, writeProperty)
	}
	if rev >= version.V1_20_5 && rev < version.V1_21_2 {
		b.WriteBool(p.StrictErrorHandling)
	}
}

func readProperty(b *wire.Buffer) Property {
	return Property{
		Name:      b.ReadString(),
		Value:     b.ReadString(),
		Signature: wire.ReadOptional(b, (*wire.Buffer).ReadString),
	}
}

func writeProperty(b *wire.Buffer, p Property) {
	b.WriteString(p.Name)
	b.WriteString(p.Value)
	wire.WriteOptional(b, p.Signature, (*wire.Buffer).WriteString)
}
