package protocol

import (
	"errors"
	"fmt"

	"github.com/annel0/protobridge/internal/logging"
	"github.com/annel0/protobridge/internal/protocol/packets"
	"github.com/annel0/protobridge/internal/protocol/packettype"
	"github.com/annel0/protobridge/internal/protocol/version"
	"github.com/annel0/protobridge/internal/protocol/wire"
)

// Packet - разобранный пакет. Payload заполнен, если для типа есть кодек;
// иначе полезная нагрузка сохраняется как есть в Raw.
type Packet struct {
	Type    *packettype.Type
	Opcode  int32
	Payload any
	Raw     []byte
}

// Codec разбирает и собирает кадры: varint-опкод и полезная нагрузка.
type Codec struct {
	registry *packettype.Registry
	metrics  *Metrics
	log      *logging.Logger
}

// Option настраивает Codec.
type Option func(*Codec)

// WithMetrics включает счётчики.
func WithMetrics(m *Metrics) Option {
	return func(c *Codec) { c.metrics = m }
}

// WithRegistry подменяет встроенный реестр опкодов.
func WithRegistry(r *packettype.Registry) Option {
	return func(c *Codec) { c.registry = r }
}

// NewCodec создаёт кодек поверх встроенных таблиц опкодов.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{log: logging.GetCodecLogger()}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = packettype.Default()
	}
	return c
}

// Decode разбирает кадр направления dir в текущей фазе сессии и применяет
// его последствия к сессии: смену фазы, ревизии и синхронизированных реестров.
func (c *Codec) Decode(s *Session, dir packettype.Direction, frame []byte) (Packet, error) {
	p, err := c.decode(s, dir, frame)
	if err != nil {
		c.metrics.failure(err)
		c.log.ProtocolError(s.ID.String(), err, frame)
		return p, err
	}
	c.metrics.decodedPacket(p)
	c.log.Frame(s.ID.String(), dir.String(), p.Type.String(), frame)
	return p, nil
}

func (c *Codec) decode(s *Session, dir packettype.Direction, frame []byte) (Packet, error) {
	b := wire.NewReader(frame, s.Attrs)
	op := b.ReadVarInt()
	if err := b.Err(); err != nil {
		return Packet{}, fmt.Errorf("ошибка чтения опкода: %w", err)
	}
	t, ok := c.registry.ByOpcode(dir, s.Phase(), s.Revision(), op)
	if !ok {
		return Packet{Opcode: op}, fmt.Errorf("%w: 0x%02X (%s/%s, %s)", ErrUnknownOpcode, op, s.Phase(), dir, s.Revision())
	}
	p := Packet{Type: t, Opcode: op}
	if !packets.Has(t) {
		p.Raw = b.ReadRemaining()
		return p, c.apply(s, p)
	}

	start := b.ReaderIndex()
	payload, err := packets.Decode(t, b)
	if err != nil {
		return p, err
	}
	if b.Remaining() != 0 {
		size := len(frame) - start
		return p, &wire.DesyncError{Where: t.String(), Expected: size, Actual: size - b.Remaining()}
	}
	p.Payload = payload
	return p, c.apply(s, p)
}

// Encode собирает кадр пакета для ревизии сессии. Пакет без кодека
// записывается из Raw.
func (c *Codec) Encode(s *Session, p Packet) ([]byte, error) {
	frame, err := c.encode(s, p)
	if err != nil {
		c.metrics.failure(err)
		c.log.ProtocolError(s.ID.String(), err, nil)
		return nil, err
	}
	c.metrics.encodedPacket(p)
	c.log.Frame(s.ID.String(), p.Type.Direction().String(), p.Type.String(), frame)
	return frame, nil
}

func (c *Codec) encode(s *Session, p Packet) ([]byte, error) {
	if p.Type == nil {
		return nil, errors.New("protocol: пакет без типа")
	}
	if p.Type.Phase() != s.Phase() {
		return nil, fmt.Errorf("%w: %s в фазе %s", ErrWrongPhase, p.Type, s.Phase())
	}
	op, ok := c.registry.OpcodeFor(p.Type, s.Revision())
	if !ok {
		return nil, fmt.Errorf("%w: %s не существует в ревизии %s", ErrUnknownOpcode, p.Type, s.Revision())
	}
	b := wire.NewWriter(s.Attrs)
	b.WriteVarInt(op)
	if p.Payload == nil {
		b.Write(p.Raw)
	} else if err := packets.Encode(p.Type, b, p.Payload); err != nil {
		return nil, err
	}
	if err := c.apply(s, p); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// apply переносит последствия пакета на сессию.
func (c *Codec) apply(s *Session, p Packet) error {
	switch v := p.Payload.(type) {
	case packets.Handshake:
		if err := s.SetRevision(version.Revision(v.Protocol)); err != nil {
			return err
		}
		next := packettype.Login
		if v.Intent == packets.IntentStatus {
			next = packettype.Status
		}
		return s.Transition(next)
	case packets.SetCompression:
		s.compression = v.Threshold
	case packets.LoginSuccess:
		if s.Revision() < version.V1_20_2 {
			return s.Transition(packettype.Play)
		}
	case packets.LoginAck:
		return s.Transition(packettype.Configuration)
	case packets.ConfigFinish:
		if p.Type == packettype.ConfigToServerConfigurationEndAck {
			return s.Transition(packettype.Play)
		}
	case packets.RegistryData:
		if keys := packets.InstallRegistries(s.Attrs, v); len(keys) > 0 {
			c.log.Debug("сессия %s: установлены реестры сервера %v", s.ID, keys)
		}
	}
	if p.Type == packettype.PlayToServerConfigurationAck {
		c.log.Warn("сессия %s: повторная конфигурация не поддерживается, фаза остаётся %s", s.ID, s.Phase())
	}
	return nil
}
