package protocol

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/annel0/protobridge/internal/protocol/wire"
)

// MaxFrameSize - предел длины кадра: 2^21 - 1, три байта varint.
const MaxFrameSize = 1<<21 - 1

var ErrFrameTooLarge = errors.New("protocol: кадр больше допустимого")

// FrameReader читает кадры с префиксом длины. После включения сжатия кадр
// начинается с длины распакованных данных (0 - кадр не сжат).
type FrameReader struct {
	r       *bufio.Reader
	session *Session
}

// NewFrameReader создаёт читателя кадров. Порог сжатия берётся из сессии
// перед каждым кадром.
func NewFrameReader(r io.Reader, s *Session) *FrameReader {
	return &FrameReader{r: bufio.NewReader(r), session: s}
}

// ReadFrame возвращает следующий кадр: опкод и полезную нагрузку.
func (fr *FrameReader) ReadFrame() ([]byte, error) {
	n, err := wire.ReadVarIntFrom(fr.r)
	if err != nil {
		return nil, err
	}
	if n < 0 || n > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d байт", ErrFrameTooLarge, n)
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(fr.r, data); err != nil {
		return nil, fmt.Errorf("ошибка чтения кадра: %w", err)
	}
	if fr.session.CompressionThreshold() < 0 {
		return data, nil
	}

	body := bytes.NewReader(data)
	size, err := wire.ReadVarIntFrom(body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения длины сжатого кадра: %w", err)
	}
	rest := data[len(data)-body.Len():]
	if size == 0 {
		return rest, nil
	}
	if size > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d байт после распаковки", ErrFrameTooLarge, size)
	}
	zr, err := zlib.NewReader(bytes.NewReader(rest))
	if err != nil {
		return nil, fmt.Errorf("ошибка распаковки кадра: %w", err)
	}
	defer zr.Close()
	plain, err := io.ReadAll(io.LimitReader(zr, int64(size)+1))
	if err != nil {
		return nil, fmt.Errorf("ошибка распаковки кадра: %w", err)
	}
	if len(plain) != int(size) {
		return nil, &wire.DesyncError{Where: "сжатый кадр", Expected: int(size), Actual: len(plain)}
	}
	return plain, nil
}

// WriteFrame записывает кадр с учётом порога сжатия сессии.
func WriteFrame(w io.Writer, s *Session, frame []byte) error {
	var body bytes.Buffer
	threshold := s.CompressionThreshold()
	switch {
	case threshold < 0:
		body.Write(frame)
	case len(frame) < int(threshold):
		body.WriteByte(0)
		body.Write(frame)
	default:
		body.Write(wire.AppendVarInt(nil, int32(len(frame))))
		zw := zlib.NewWriter(&body)
		if _, err := zw.Write(frame); err != nil {
			return fmt.Errorf("ошибка сжатия кадра: %w", err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("ошибка сжатия кадра: %w", err)
		}
	}
	if body.Len() > MaxFrameSize {
		return fmt.Errorf("%w: %d байт", ErrFrameTooLarge, body.Len())
	}
	if _, err := w.Write(wire.AppendVarInt(nil, int32(body.Len()))); err != nil {
		return fmt.Errorf("ошибка записи кадра: %w", err)
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return fmt.Errorf("ошибка записи кадра: %w", err)
	}
	return nil
}
