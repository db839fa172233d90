package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/annel0/protobridge/internal/protocol"
)

// Replay разбирает записанные кадры сессии в новой сессии с той же начальной
// ревизией. Ошибка разбора кадра останавливает воспроизведение: после
// рассинхронизации положение следующих кадров неизвестно.
func Replay(ctx context.Context, cs *CaptureStore, codec *protocol.Codec, id uuid.UUID, visit func(Frame, protocol.Packet) error) error {
	info, err := cs.Session(id)
	if err != nil {
		return err
	}
	s, err := protocol.NewSession(info.Revision)
	if err != nil {
		return fmt.Errorf("сессия %s: %w", id, err)
	}
	s.ID = id
	return cs.Iterate(ctx, id, func(f Frame) error {
		p, err := codec.Decode(s, f.Direction, f.Data)
		if err != nil {
			return fmt.Errorf("кадр %d: %w", f.Seq, err)
		}
		return visit(f, p)
	})
}
