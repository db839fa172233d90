package registry

import (
	"github.com/annel0/protobridge/internal/protocol/version"
	"github.com/annel0/protobridge/internal/protocol/wire"
)

// Simple - реестр, присланный сервером в фазе конфигурации. Идентификатор записи -
// её позиция в присланном списке, ревизия не учитывается. Живёт в атрибутах
// одного соединения.
type Simple[T Mapped] struct {
	base   *Versioned[T]
	values []T
	ids    map[string]int32
}

// NewSimple строит синхронизированный реестр. Имена, известные встроенному реестру,
// разрешаются в его значения, остальные становятся заглушками по имени.
func NewSimple[T Mapped](base *Versioned[T], names []wire.Identifier) *Simple[T] {
	s := &Simple[T]{
		base:   base,
		values: make([]T, len(names)),
		ids:    make(map[string]int32, len(names)),
	}
	for i, name := range names {
		key := name.String()
		if v, ok := base.GetByName(key); ok {
			s.values[i] = v
		} else {
			s.values[i] = base.Named(name)
		}
		if _, dup := s.ids[key]; !dup {
			s.ids[key] = int32(i)
		}
	}
	return s
}

// Install кладёт синхронизированный реестр в атрибуты соединения.
func (s *Simple[T]) Install(attrs *wire.Attributes) {
	attrs.SetRegistry(s.base.Key().String(), Lookup[T](s))
}

func (s *Simple[T]) Key() wire.Identifier {
	return s.base.Key()
}

func (s *Simple[T]) Len() int {
	return len(s.values)
}

func (s *Simple[T]) GetByName(name string) (T, bool) {
	id, ok := s.ids[wire.NormalizeName(name)]
	if !ok {
		var zero T
		return zero, false
	}
	return s.values[id], true
}

func (s *Simple[T]) GetByID(_ version.Revision, id int32) (T, bool) {
	if id < 0 || int(id) >= len(s.values) {
		var zero T
		return zero, false
	}
	return s.values[id], true
}

// IDOf ищет значение по имени; безымянное динамическое значение сохраняет сырой идентификатор.
func (s *Simple[T]) IDOf(v T, rev version.Revision) (int32, bool) {
	if name, ok := v.Name(); ok {
		id, found := s.ids[name.String()]
		return id, found
	}
	if !v.IsStatic() {
		return v.ID(rev)
	}
	return 0, false
}

func (s *Simple[T]) Dynamic(id int32) T {
	return s.base.Dynamic(id)
}

func (s *Simple[T]) Named(name wire.Identifier) T {
	return s.base.Named(name)
}
