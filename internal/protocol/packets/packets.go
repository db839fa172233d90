// Package packets содержит таблицу кодеков полезной нагрузки: каждому
// семантическому типу пакета сопоставлена пара функций чтения и записи.
// Функции получают ревизию из буфера и сами выбирают разметку.
package packets

import (
	"errors"
	"fmt"

	"github.com/annel0/protobridge/internal/protocol/packettype"
	"github.com/annel0/protobridge/internal/protocol/wire"
)

var (
	// ErrNoCodec - для типа нет кодека полезной нагрузки.
	ErrNoCodec = errors.New("packets: для типа пакета нет кодека")
	// ErrPayloadType - полезная нагрузка не того типа, который ожидает кодек.
	ErrPayloadType = errors.New("packets: неверный тип полезной нагрузки")
)

// Codec - пара функций чтения и записи полезной нагрузки типа пакета.
type Codec struct {
	read  func(*wire.Buffer) any
	write func(*wire.Buffer, any) error
}

var table = make(map[*packettype.Type]Codec)

// register добавляет кодек в таблицу. Вызывается только из init.
func register[T any](types []*packettype.Type, read func(*wire.Buffer) T, write func(*wire.Buffer, T)) {
	c := Codec{
		read: func(b *wire.Buffer) any { return read(b) },
		write: func(b *wire.Buffer, v any) error {
			p, ok := v.(T)
			if !ok {
				return fmt.Errorf("%w: %T", ErrPayloadType, v)
			}
			write(b, p)
			return nil
		},
	}
	for _, t := range types {
		if _, dup := table[t]; dup {
			panic(fmt.Sprintf("packets: кодек для %s зарегистрирован дважды", t))
		}
		table[t] = c
	}
}

// Has сообщает, есть ли кодек для типа.
func Has(t *packettype.Type) bool {
	_, ok := table[t]
	return ok
}

// Decode читает полезную нагрузку типа t.
func Decode(t *packettype.Type, b *wire.Buffer) (any, error) {
	c, ok := table[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoCodec, t)
	}
	v := c.read(b)
	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", t, err)
	}
	if err, ok := v.(error); ok && err != nil {
		return nil, fmt.Errorf("%s: %w", t, err)
	}
	return v, nil
}

// Encode записывает полезную нагрузку типа t.
func Encode(t *packettype.Type, b *wire.Buffer, payload any) error {
	c, ok := table[t]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoCodec, t)
	}
	if err := c.write(b, payload); err != nil {
		return fmt.Errorf("%s: %w", t, err)
	}
	if err := b.Err(); err != nil {
		return fmt.Errorf("%s: %w", t, err)
	}
	return nil
}

// Types возвращает типы, для которых есть кодеки.
func Types() []*packettype.Type {
	out := make([]*packettype.Type, 0, len(table))
	for t := range table {
		out = append(out, t)
	}
	return out
}
