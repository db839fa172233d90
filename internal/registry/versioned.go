package registry

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/annel0/protobridge/internal/protocol/version"
	"github.com/annel0/protobridge/internal/protocol/wire"
)

// ListingFile - скомпилированные списки записей реестра по ревизиям.
// Позиция имени в списке ревизии равна его идентификатору.
type ListingFile struct {
	Registry  string    `yaml:"registry"`
	Revisions []Listing `yaml:"revisions"`
}

// Listing - список имён одной ревизии.
type Listing struct {
	Version string   `yaml:"version"`
	Entries []string `yaml:"entries"`
}

// ParseListing разбирает YAML со списками.
func ParseListing(raw []byte) (ListingFile, error) {
	var lf ListingFile
	if err := yaml.Unmarshal(raw, &lf); err != nil {
		return ListingFile{}, fmt.Errorf("ошибка разбора списка реестра: %w", err)
	}
	return lf, nil
}

// Lookup - чтение реестра. Реализуется встроенным Versioned и синхронизированным Simple.
type Lookup[T Mapped] interface {
	Key() wire.Identifier
	GetByName(name string) (T, bool)
	GetByID(rev version.Revision, id int32) (T, bool)
	IDOf(v T, rev version.Revision) (int32, bool)
	Dynamic(id int32) T
	Named(name wire.Identifier) T
}

// Versioned - скомпилированный реестр. Заполняется через Define до Freeze,
// затем только читается и может разделяться между соединениями.
type Versioned[T Mapped] struct {
	key     wire.Identifier
	table   *version.Table
	ids     map[string][]int32
	order   []string
	byName  map[string]T
	byID    []map[int32]T
	entries []T
	wrap    func(Entry) T
	frozen  bool
}

// NewVersioned создаёт реестр по спискам. wrap строит значение для динамических записей.
func NewVersioned[T Mapped](lf ListingFile, wrap func(Entry) T) (*Versioned[T], error) {
	revs := make([]version.Revision, 0, len(lf.Revisions))
	for _, l := range lf.Revisions {
		rev, err := version.Parse(l.Version)
		if err != nil {
			return nil, err
		}
		revs = append(revs, rev)
	}
	table, err := version.NewTable(revs...)
	if err != nil {
		return nil, fmt.Errorf("реестр %s: %w", lf.Registry, err)
	}

	r := &Versioned[T]{
		key:    wire.ParseIdentifier(lf.Registry),
		table:  table,
		ids:    make(map[string][]int32),
		byName: make(map[string]T),
		byID:   make([]map[int32]T, table.Len()),
		wrap:   wrap,
	}
	for slot, l := range lf.Revisions {
		seen := make(map[string]bool, len(l.Entries))
		for id, raw := range l.Entries {
			name := wire.NormalizeName(raw)
			if seen[name] {
				return nil, fmt.Errorf("реестр %s, ревизия %s: имя %s указано дважды", lf.Registry, l.Version, name)
			}
			seen[name] = true
			ids, ok := r.ids[name]
			if !ok {
				ids = make([]int32, table.Len())
				for i := range ids {
					ids[i] = -1
				}
				r.ids[name] = ids
				r.order = append(r.order, name)
			}
			ids[slot] = int32(id)
		}
		r.byID[slot] = make(map[int32]T, len(l.Entries))
	}
	return r, nil
}

// Define регистрирует значение для имени из списков. Вызывается только при сборке;
// неизвестное или повторное имя - дефект сборки.
func (r *Versioned[T]) Define(name string, build func(Entry) T) (T, error) {
	var zero T
	if r.frozen {
		return zero, fmt.Errorf("реестр %s уже заморожен", r.key)
	}
	name = wire.NormalizeName(name)
	ids, ok := r.ids[name]
	if !ok {
		return zero, fmt.Errorf("реестр %s: имени %s нет ни в одном списке", r.key, name)
	}
	if _, dup := r.byName[name]; dup {
		return zero, fmt.Errorf("реестр %s: имя %s определено дважды", r.key, name)
	}
	e := Entry{name: wire.ParseIdentifier(name), hasName: true, table: r.table, ids: ids, rawID: -1, static: true}
	v := build(e)
	r.byName[name] = v
	r.entries = append(r.entries, v)
	for slot, id := range ids {
		if id >= 0 {
			r.byID[slot][id] = v
		}
	}
	return v, nil
}

// Freeze завершает сборку: каждое имя из списков должно быть определено.
func (r *Versioned[T]) Freeze() error {
	for _, name := range r.order {
		if _, ok := r.byName[name]; !ok {
			return fmt.Errorf("реестр %s: имя %s не определено", r.key, name)
		}
	}
	r.frozen = true
	return nil
}

// Key возвращает имя реестра.
func (r *Versioned[T]) Key() wire.Identifier {
	return r.key
}

// Revisions возвращает ревизии, для которых есть списки.
func (r *Versioned[T]) Revisions() []version.Revision {
	return r.table.Revisions()
}

// GetByName ищет значение по имени; имя без пространства имён дополняется minecraft.
func (r *Versioned[T]) GetByName(name string) (T, bool) {
	v, ok := r.byName[wire.NormalizeName(name)]
	return v, ok
}

// GetByID ищет значение по идентификатору ревизии.
func (r *Versioned[T]) GetByID(rev version.Revision, id int32) (T, bool) {
	slot, err := r.table.SlotFor(rev)
	if err != nil {
		var zero T
		return zero, false
	}
	v, ok := r.byID[slot][id]
	return v, ok
}

// IDOf возвращает идентификатор значения в ревизии.
func (r *Versioned[T]) IDOf(v T, rev version.Revision) (int32, bool) {
	return v.ID(rev)
}

// Entries возвращает значения в порядке определения.
func (r *Versioned[T]) Entries() []T {
	out := make([]T, len(r.entries))
	copy(out, r.entries)
	return out
}

// Dynamic строит значение для неизвестного идентификатора.
func (r *Versioned[T]) Dynamic(id int32) T {
	return r.wrap(DynamicEntry(id))
}

// Named строит значение-заглушку для неизвестного имени.
func (r *Versioned[T]) Named(name wire.Identifier) T {
	return r.wrap(NamedEntry(name))
}

// For выбирает реестр для соединения: синхронизированный, если сервер его прислал,
// иначе встроенный.
func For[T Mapped](attrs *wire.Attributes, base *Versioned[T]) Lookup[T] {
	if attrs != nil {
		if r, ok := attrs.Registry(base.Key().String()); ok {
			if l, ok := r.(Lookup[T]); ok {
				return l
			}
		}
	}
	return base
}
