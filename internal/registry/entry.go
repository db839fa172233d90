// Package registry реализует версионные реестры: отображение имён и числовых
// идентификаторов на значения с учётом ревизии протокола.
//
// Запись реестра бывает статической (имя и идентификаторы по слотам ревизий) либо
// динамической (только сырой идентификатор или только имя). Динамические записи
// создаются при разборе неизвестных ссылок и никогда не попадают в общий реестр.
package registry

import (
	"errors"
	"strconv"

	"github.com/annel0/protobridge/internal/protocol/version"
	"github.com/annel0/protobridge/internal/protocol/wire"
)

// ErrUnmapped возвращается при записи значения, у которого нет идентификатора в ревизии.
var ErrUnmapped = errors.New("registry: значение не имеет идентификатора в этой ревизии")

// Mapped - значение, которое можно адресовать через реестр.
// Типы каталогов получают эти методы, встраивая Entry.
type Mapped interface {
	Name() (wire.Identifier, bool)
	ID(rev version.Revision) (int32, bool)
	IsStatic() bool
}

// Entry - запись реестра.
type Entry struct {
	name    wire.Identifier
	hasName bool
	table   *version.Table
	ids     []int32
	rawID   int32
	static  bool
}

// DynamicEntry создаёт запись для неизвестного идентификатора.
func DynamicEntry(id int32) Entry {
	return Entry{rawID: id}
}

// NamedEntry создаёт запись для неизвестного имени.
func NamedEntry(name wire.Identifier) Entry {
	return Entry{name: name, hasName: true, rawID: -1}
}

// Name возвращает имя записи; у динамической записи по идентификатору имени нет.
func (e Entry) Name() (wire.Identifier, bool) {
	return e.name, e.hasName
}

// ID возвращает идентификатор в ревизии. Динамическая запись возвращает свой сырой
// идентификатор в любой ревизии, чтобы значение переживало чтение и запись.
func (e Entry) ID(rev version.Revision) (int32, bool) {
	if !e.static {
		return e.rawID, e.rawID >= 0
	}
	slot, err := e.table.SlotFor(rev)
	if err != nil {
		return 0, false
	}
	id := e.ids[slot]
	return id, id >= 0
}

// IsStatic сообщает, взята ли запись из скомпилированного реестра.
func (e Entry) IsStatic() bool {
	return e.static
}

// String для отладочного вывода.
func (e Entry) String() string {
	if e.hasName {
		return e.name.String()
	}
	return "#" + strconv.Itoa(int(e.rawID))
}
