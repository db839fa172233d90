package registry

import (
	"github.com/annel0/protobridge/internal/protocol/wire"
)

// MaybeMapped - ссылка, которая на проводе передаётся либо значением целиком,
// либо именем. Имя разрешается лениво при обращении.
type MaybeMapped[T Mapped] struct {
	value  T
	inline bool
	name   wire.Identifier
	lookup Lookup[T]
}

// Inline создаёт ссылку с полным значением.
func Inline[T Mapped](v T) MaybeMapped[T] {
	m := MaybeMapped[T]{value: v, inline: true}
	if n, ok := v.Name(); ok {
		m.name = n
	}
	return m
}

// Reference создаёт ссылку по имени.
func Reference[T Mapped](name wire.Identifier, l Lookup[T]) MaybeMapped[T] {
	return MaybeMapped[T]{name: name, lookup: l}
}

// Of создаёт ссылку по имени на значение реестра.
func Of[T Mapped](v T, l Lookup[T]) MaybeMapped[T] {
	n, _ := v.Name()
	return MaybeMapped[T]{value: v, name: n, lookup: l}
}

// IsInline сообщает, передаётся ли значение целиком.
func (m MaybeMapped[T]) IsInline() bool {
	return m.inline
}

// Name возвращает имя ссылки.
func (m MaybeMapped[T]) Name() wire.Identifier {
	return m.name
}

// Get разрешает ссылку. Для неизвестного имени возвращается заглушка и false.
func (m MaybeMapped[T]) Get() (T, bool) {
	if m.inline {
		return m.value, true
	}
	if m.lookup == nil {
		return m.value, false
	}
	if v, ok := m.lookup.GetByName(m.name.String()); ok {
		return v, true
	}
	return m.lookup.Named(m.name), false
}

// Equal сравнивает ссылки: по имени, а для значений целиком - по имени и флагу.
func (m MaybeMapped[T]) Equal(o MaybeMapped[T]) bool {
	return m.inline == o.inline && m.name == o.name
}

// ReadMaybeMapped читает флаг: true - значение целиком, false - идентификатор.
func ReadMaybeMapped[T Mapped](b *wire.Buffer, base *Versioned[T], inline func(*wire.Buffer) T) MaybeMapped[T] {
	e := wire.ReadEither(b, inline, (*wire.Buffer).ReadIdentifier)
	if v, ok := e.Left(); ok {
		return Inline(v)
	}
	name, _ := e.Right()
	return Reference(name, For(b.Attrs(), base))
}

// WriteMaybeMapped записывает ссылку; для ссылки по имени передаётся только имя.
func WriteMaybeMapped[T Mapped](b *wire.Buffer, m MaybeMapped[T], inline func(*wire.Buffer, T)) {
	e := wire.Right[T](m.name)
	if m.inline {
		e = wire.Left[T, wire.Identifier](m.value)
	}
	wire.WriteEither(b, e, inline, (*wire.Buffer).WriteIdentifier)
}
