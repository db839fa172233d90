package registry

import (
	"fmt"

	"github.com/annel0/protobridge/internal/protocol/wire"
)

// ReadMapped читает varint-идентификатор и разрешает его в реестре соединения.
// Неизвестный идентификатор даёт динамическое значение без имени.
func ReadMapped[T Mapped](b *wire.Buffer, base *Versioned[T]) T {
	id := b.ReadVarInt()
	if b.Err() != nil {
		var zero T
		return zero
	}
	return resolveID(b, base, id)
}

func resolveID[T Mapped](b *wire.Buffer, base *Versioned[T], id int32) T {
	l := For(b.Attrs(), base)
	if v, ok := l.GetByID(b.Revision(), id); ok {
		return v
	}
	return l.Dynamic(id)
}

// WriteMapped записывает идентификатор значения для ревизии буфера.
func WriteMapped[T Mapped](b *wire.Buffer, base *Versioned[T], v T) {
	id, ok := For(b.Attrs(), base).IDOf(v, b.Revision())
	if !ok {
		b.Fail(unmapped(b, base, v))
		return
	}
	b.WriteVarInt(id)
}

func unmapped[T Mapped](b *wire.Buffer, base *Versioned[T], v T) error {
	name := "<без имени>"
	if n, ok := v.Name(); ok {
		name = n.String()
	}
	return fmt.Errorf("%w: %s в реестре %s, ревизия %s", ErrUnmapped, name, base.Key(), b.Revision())
}

// ReadHolder читает ссылку-держатель: 0 и затем значение целиком, либо идентификатор + 1.
func ReadHolder[T Mapped](b *wire.Buffer, base *Versioned[T], inline func(*wire.Buffer) T) T {
	id := b.ReadVarInt()
	if b.Err() != nil {
		var zero T
		return zero
	}
	if id == 0 {
		return inline(b)
	}
	return resolveID(b, base, id-1)
}

// WriteHolder записывает значение ссылкой, если у него есть идентификатор, иначе целиком.
func WriteHolder[T Mapped](b *wire.Buffer, base *Versioned[T], v T, inline func(*wire.Buffer, T)) {
	if id, ok := For(b.Attrs(), base).IDOf(v, b.Revision()); ok {
		b.WriteVarInt(id + 1)
		return
	}
	b.WriteVarInt(0)
	inline(b, v)
}
