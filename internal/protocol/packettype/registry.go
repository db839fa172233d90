package packettype

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/annel0/protobridge/internal/protocol/version"
)

//go:embed data/*.yaml
var tableFS embed.FS

// TableFile - одна таблица опкодов раздела в нескольких ревизиях.
type TableFile struct {
	Direction string          `yaml:"direction"`
	Phase     string          `yaml:"phase"`
	Revisions []RevisionTable `yaml:"revisions"`
}

// RevisionTable - упорядоченный список имён для ревизии; позиция равна опкоду.
type RevisionTable struct {
	Version string   `yaml:"version"`
	Packets []string `yaml:"packets"`
}

type partition struct {
	key    partitionKey
	types  []*Type
	byName map[string]*Type

	// версионные разделы
	mapper   *version.Table
	opcodes  [][]int32 // [индекс типа][слот], -1 если типа нет
	byOpcode []map[int32]*Type

	// плоские разделы
	flat map[int32]*Type
}

// Registry - построенное отображение типов в опкоды. После построения только читается.
type Registry struct {
	partitions map[partitionKey]*partition
}

// Build строит реестр из каталога и таблиц. Неизвестное имя, повтор имени в таблице
// или таблица для плоской фазы - дефект сборки, а не ошибка разбора.
func Build(tables []TableFile) (*Registry, error) {
	return buildRegistry(catalog, tables)
}

func buildRegistry(cat map[partitionKey][]*Type, tables []TableFile) (*Registry, error) {
	r := &Registry{partitions: make(map[partitionKey]*partition, len(cat))}
	for k, types := range cat {
		p := &partition{key: k, types: types, byName: make(map[string]*Type, len(types))}
		for _, t := range types {
			if _, dup := p.byName[t.name]; dup {
				return nil, fmt.Errorf("packettype: тип %s объявлен дважды в %s", t.name, k)
			}
			p.byName[t.name] = t
		}
		if k.phase.flat() {
			p.flat = make(map[int32]*Type, len(types))
			for _, t := range types {
				if other, dup := p.flat[t.flatID]; dup {
					return nil, fmt.Errorf("packettype: опкод 0x%02X занят %s и %s", t.flatID, other.name, t.name)
				}
				p.flat[t.flatID] = t
			}
		}
		r.partitions[k] = p
	}

	for _, tf := range tables {
		dir, err := ParseDirection(tf.Direction)
		if err != nil {
			return nil, err
		}
		phase, err := ParsePhase(tf.Phase)
		if err != nil {
			return nil, err
		}
		k := partitionKey{dir: dir, phase: phase}
		if phase.flat() {
			return nil, fmt.Errorf("packettype: фаза %s не использует таблицы опкодов", phase)
		}
		p, ok := r.partitions[k]
		if !ok {
			return nil, fmt.Errorf("packettype: нет каталога для раздела %s", k)
		}
		if p.mapper != nil {
			return nil, fmt.Errorf("packettype: повторная таблица для раздела %s", k)
		}
		if err := p.load(tf.Revisions); err != nil {
			return nil, fmt.Errorf("packettype: раздел %s: %w", k, err)
		}
	}
	return r, nil
}

func (p *partition) load(tables []RevisionTable) error {
	revs := make([]version.Revision, 0, len(tables))
	for _, rt := range tables {
		rev, err := version.Parse(rt.Version)
		if err != nil {
			return err
		}
		revs = append(revs, rev)
	}
	mapper, err := version.NewTable(revs...)
	if err != nil {
		return err
	}

	p.opcodes = make([][]int32, len(p.types))
	for i := range p.opcodes {
		p.opcodes[i] = make([]int32, mapper.Len())
		for s := range p.opcodes[i] {
			p.opcodes[i][s] = -1
		}
	}
	p.byOpcode = make([]map[int32]*Type, mapper.Len())

	for slot, rt := range tables {
		m := make(map[int32]*Type, len(rt.Packets))
		for op, name := range rt.Packets {
			t, ok := p.byName[name]
			if !ok {
				return fmt.Errorf("ревизия %s: неизвестный тип %q", rt.Version, name)
			}
			if p.opcodes[t.index][slot] >= 0 {
				return fmt.Errorf("ревизия %s: тип %q указан дважды", rt.Version, name)
			}
			p.opcodes[t.index][slot] = int32(op)
			m[int32(op)] = t
		}
		p.byOpcode[slot] = m
	}
	p.mapper = mapper
	return nil
}

// ByOpcode возвращает тип пакета по опкоду для ревизии. Отсутствие - не ошибка.
func (r *Registry) ByOpcode(dir Direction, phase Phase, rev version.Revision, opcode int32) (*Type, bool) {
	p, ok := r.partitions[partitionKey{dir: dir, phase: phase}]
	if !ok {
		return nil, false
	}
	if p.flat != nil {
		t, ok := p.flat[opcode]
		return t, ok
	}
	if p.mapper == nil {
		return nil, false
	}
	slot, err := p.mapper.SlotFor(rev)
	if err != nil {
		return nil, false
	}
	t, ok := p.byOpcode[slot][opcode]
	return t, ok
}

// OpcodeFor возвращает опкод типа в ревизии; false, если тип в ней не существует.
func (r *Registry) OpcodeFor(t *Type, rev version.Revision) (int32, bool) {
	p, ok := r.partitions[partitionKey{dir: t.dir, phase: t.phase}]
	if !ok || t.index >= len(p.types) || p.types[t.index] != t {
		return 0, false
	}
	if p.flat != nil {
		return t.flatID, true
	}
	if p.mapper == nil {
		return 0, false
	}
	slot, err := p.mapper.SlotFor(rev)
	if err != nil {
		return 0, false
	}
	op := p.opcodes[t.index][slot]
	return op, op >= 0
}

// Types возвращает каталог раздела в порядке объявления.
func (r *Registry) Types(dir Direction, phase Phase) []*Type {
	p, ok := r.partitions[partitionKey{dir: dir, phase: phase}]
	if !ok {
		return nil
	}
	out := make([]*Type, len(p.types))
	copy(out, p.types)
	return out
}

// ByName ищет тип по имени в разделе.
func (r *Registry) ByName(dir Direction, phase Phase, name string) (*Type, bool) {
	p, ok := r.partitions[partitionKey{dir: dir, phase: phase}]
	if !ok {
		return nil, false
	}
	t, ok := p.byName[name]
	return t, ok
}

// Revisions возвращает ревизии, для которых у раздела есть таблица.
func (r *Registry) Revisions(dir Direction, phase Phase) []version.Revision {
	p, ok := r.partitions[partitionKey{dir: dir, phase: phase}]
	if !ok || p.mapper == nil {
		return nil
	}
	return p.mapper.Revisions()
}

// Opcodes возвращает таблицу опкодов раздела для ревизии, отсортированную по опкоду.
func (r *Registry) Opcodes(dir Direction, phase Phase, rev version.Revision) []Mapping {
	var out []Mapping
	for _, t := range r.Types(dir, phase) {
		if op, ok := r.OpcodeFor(t, rev); ok {
			out = append(out, Mapping{Opcode: op, Type: t})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Opcode < out[j].Opcode })
	return out
}

// Mapping - пара опкод и тип.
type Mapping struct {
	Opcode int32
	Type   *Type
}

// LoadTables читает таблицы из файловой системы (*.yaml в корне fsys).
func LoadTables(fsys fs.FS) ([]TableFile, error) {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	tables := make([]TableFile, 0, len(names))
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения таблицы %s: %w", name, err)
		}
		var tf TableFile
		if err := yaml.Unmarshal(raw, &tf); err != nil {
			return nil, fmt.Errorf("ошибка разбора таблицы %s: %w", name, err)
		}
		tables = append(tables, tf)
	}
	return tables, nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
	defaultErr  error
)

// Prepare строит реестр из встроенных таблиц. Идемпотентна; вызывайте при старте,
// чтобы дефект таблиц обнаружился до первого пакета.
func Prepare() error {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(tableFS, "data")
		if err != nil {
			defaultErr = err
			return
		}
		tables, err := LoadTables(sub)
		if err != nil {
			defaultErr = err
			return
		}
		defaultReg, defaultErr = Build(tables)
	})
	return defaultErr
}

// Default возвращает встроенный реестр. Паникует при дефекте таблиц.
func Default() *Registry {
	if err := Prepare(); err != nil {
		panic(err)
	}
	return defaultReg
}

// ByOpcode ищет тип во встроенном реестре.
func ByOpcode(dir Direction, phase Phase, rev version.Revision, opcode int32) (*Type, bool) {
	return Default().ByOpcode(dir, phase, rev, opcode)
}

// OpcodeFor ищет опкод во встроенном реестре.
func OpcodeFor(t *Type, rev version.Revision) (int32, bool) {
	return Default().OpcodeFor(t, rev)
}
