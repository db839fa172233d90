// Package protocol связывает таблицы опкодов и кодеки полезной нагрузки
// в разбор кадров одного соединения.
package protocol

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/annel0/protobridge/internal/protocol/packettype"
	"github.com/annel0/protobridge/internal/protocol/version"
	"github.com/annel0/protobridge/internal/protocol/wire"
)

var (
	// ErrUnknownOpcode - опкод не известен в текущей фазе и ревизии.
	ErrUnknownOpcode = errors.New("protocol: неизвестный опкод")
	// ErrIllegalTransition - недопустимая смена фазы.
	ErrIllegalTransition = errors.New("protocol: недопустимый переход фазы")
	// ErrWrongPhase - пакет не принадлежит текущей фазе соединения.
	ErrWrongPhase = errors.New("protocol: пакет другой фазы")
)

// Session - состояние одного соединения. Не безопасна для одновременного
// использования из нескольких горутин.
type Session struct {
	ID    uuid.UUID
	Attrs *wire.Attributes

	phase packettype.Phase
	// compression - порог сжатия кадров; отрицательный, пока сжатие не включено.
	compression int32
}

// NewSession создаёт сессию в фазе рукопожатия. Ревизия нормализуется
// к ближайшей известной не новее её.
func NewSession(rev version.Revision) (*Session, error) {
	norm, err := version.Normalize(rev)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:          uuid.New(),
		Attrs:       wire.NewAttributes(norm),
		phase:       packettype.Handshake,
		compression: -1,
	}, nil
}

// Revision возвращает нормализованную ревизию соединения.
func (s *Session) Revision() version.Revision {
	return s.Attrs.Revision
}

// Phase возвращает текущую фазу.
func (s *Session) Phase() packettype.Phase {
	return s.phase
}

// CompressionThreshold возвращает порог сжатия кадров; -1, если сжатие выключено.
func (s *Session) CompressionThreshold() int32 {
	return s.compression
}

// SetRevision меняет ревизию соединения. Допустимо только до входа.
func (s *Session) SetRevision(rev version.Revision) error {
	if s.phase > packettype.Status {
		return fmt.Errorf("%w: ревизия меняется только при рукопожатии", ErrIllegalTransition)
	}
	norm, err := version.Normalize(rev)
	if err != nil {
		return err
	}
	s.Attrs.Revision = norm
	return nil
}

// Transition переводит сессию в следующую фазу.
func (s *Session) Transition(to packettype.Phase) error {
	if !packettype.CanTransition(s.phase, to, s.Revision()) {
		return fmt.Errorf("%w: %s -> %s в ревизии %s", ErrIllegalTransition, s.phase, to, s.Revision())
	}
	s.phase = to
	return nil
}
