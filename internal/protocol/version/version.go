// Package version описывает ревизии протокола и таблицы слотов.
//
// Ревизия - это номер протокола, согласованный при подключении. Слот - плотный
// индекс ревизии внутри таблицы, по нему адресуются все версионные данные
// (опкоды, идентификаторы реестров).
package version

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUnsupportedRevision возвращается, если запрошенная ревизия старше самой старой известной.
var ErrUnsupportedRevision = errors.New("version: неподдерживаемая ревизия протокола")

// Revision - номер протокола. Ревизии упорядочены по номеру.
type Revision int32

// Известные ревизии.
const (
	V1_7_2  Revision = 4
	V1_7_10 Revision = 5
	V1_8    Revision = 47
	V1_9    Revision = 107
	V1_9_4  Revision = 110
	V1_10   Revision = 210
	V1_11   Revision = 315
	V1_12   Revision = 335
	V1_12_1 Revision = 338
	V1_12_2 Revision = 340
	V1_13   Revision = 393
	V1_13_2 Revision = 404
	V1_14   Revision = 477
	V1_14_4 Revision = 498
	V1_15   Revision = 573
	V1_15_2 Revision = 578
	V1_16   Revision = 735
	V1_16_1 Revision = 736
	V1_16_2 Revision = 751
	V1_16_4 Revision = 754
	V1_17   Revision = 755
	V1_17_1 Revision = 756
	V1_18   Revision = 757
	V1_18_2 Revision = 758
	V1_19   Revision = 759
	V1_19_1 Revision = 760
	V1_19_3 Revision = 761
	V1_19_4 Revision = 762
	V1_20   Revision = 763
	V1_20_2 Revision = 764
	V1_20_3 Revision = 765
	V1_20_5 Revision = 766
	V1_21   Revision = 767
	V1_21_2 Revision = 768
	V1_21_4 Revision = 769
	V1_21_5 Revision = 770
	V1_21_6 Revision = 771
)

// known - скомпилированный список ревизий, строго по возрастанию.
var known = []struct {
	rev  Revision
	name string
}{
	{V1_7_2, "1.7.2"}, {V1_7_10, "1.7.10"}, {V1_8, "1.8"}, {V1_9, "1.9"}, {V1_9_4, "1.9.4"},
	{V1_10, "1.10"}, {V1_11, "1.11"}, {V1_12, "1.12"}, {V1_12_1, "1.12.1"}, {V1_12_2, "1.12.2"},
	{V1_13, "1.13"}, {V1_13_2, "1.13.2"}, {V1_14, "1.14"}, {V1_14_4, "1.14.4"}, {V1_15, "1.15"},
	{V1_15_2, "1.15.2"}, {V1_16, "1.16"}, {V1_16_1, "1.16.1"}, {V1_16_2, "1.16.2"},
	{V1_16_4, "1.16.4"}, {V1_17, "1.17"}, {V1_17_1, "1.17.1"}, {V1_18, "1.18"},
	{V1_18_2, "1.18.2"}, {V1_19, "1.19"}, {V1_19_1, "1.19.1"}, {V1_19_3, "1.19.3"},
	{V1_19_4, "1.19.4"}, {V1_20, "1.20"}, {V1_20_2, "1.20.2"}, {V1_20_3, "1.20.3"},
	{V1_20_5, "1.20.5"}, {V1_21, "1.21"}, {V1_21_2, "1.21.2"}, {V1_21_4, "1.21.4"},
	{V1_21_5, "1.21.5"}, {V1_21_6, "1.21.6"},
}

var (
	names   = make(map[Revision]string, len(known))
	byName  = make(map[string]Revision, len(known))
	all     []Revision
	allSlot *Table
)

func init() {
	all = make([]Revision, 0, len(known))
	for _, k := range known {
		names[k.rev] = k.name
		byName[k.name] = k.rev
		all = append(all, k.rev)
	}
	t, err := NewTable(all...)
	if err != nil {
		panic(err)
	}
	allSlot = t
}

// String возвращает имя выпуска, например "1.20.5".
func (r Revision) String() string {
	if n, ok := names[r]; ok {
		return n
	}
	return fmt.Sprintf("protocol#%d", int32(r))
}

// Parse разбирает имя выпуска ("1.20.5") или номер протокола ("766").
func Parse(s string) (Revision, error) {
	s = strings.TrimSpace(s)
	if r, ok := byName[s]; ok {
		return r, nil
	}
	if n, err := strconv.ParseInt(s, 10, 32); err == nil && n > 0 {
		return Revision(n), nil
	}
	return 0, fmt.Errorf("ошибка разбора ревизии %q", s)
}

// Slot - плотный индекс ревизии в таблице.
type Slot int

// Table - упорядоченный набор ревизий. Используется и как общий список известных
// ревизий, и как разреженный маппер раздела (только ревизии, в которых данные менялись).
type Table struct {
	revs []Revision
}

// NewTable создаёт таблицу. Ревизии должны идти строго по возрастанию.
func NewTable(revs ...Revision) (*Table, error) {
	if len(revs) == 0 {
		return nil, errors.New("version: пустая таблица ревизий")
	}
	for i := 1; i < len(revs); i++ {
		if revs[i] <= revs[i-1] {
			return nil, fmt.Errorf("version: ревизии не по возрастанию: %s после %s", revs[i], revs[i-1])
		}
	}
	cp := make([]Revision, len(revs))
	copy(cp, revs)
	return &Table{revs: cp}, nil
}

// SlotFor возвращает слот наибольшей ревизии таблицы, не превышающей rev.
func (t *Table) SlotFor(rev Revision) (Slot, error) {
	i := sort.Search(len(t.revs), func(i int) bool { return t.revs[i] > rev })
	if i == 0 {
		return 0, fmt.Errorf("%w: %s старше %s", ErrUnsupportedRevision, rev, t.revs[0])
	}
	return Slot(i - 1), nil
}

// Revision возвращает ревизию слота.
func (t *Table) Revision(s Slot) Revision {
	return t.revs[s]
}

// Len возвращает число слотов.
func (t *Table) Len() int {
	return len(t.revs)
}

// Revisions возвращает копию списка ревизий.
func (t *Table) Revisions() []Revision {
	cp := make([]Revision, len(t.revs))
	copy(cp, t.revs)
	return cp
}

// Known возвращает таблицу всех известных ревизий.
func Known() *Table {
	return allSlot
}

// SlotFor ищет слот в таблице известных ревизий.
func SlotFor(rev Revision) (Slot, error) {
	return allSlot.SlotFor(rev)
}

// Revisions возвращает все известные ревизии по возрастанию.
func Revisions() []Revision {
	return allSlot.Revisions()
}

// Normalize отображает произвольный номер протокола на ближайшую известную
// ревизию не новее его. Кодеки сравнивают только нормализованные ревизии.
func Normalize(rev Revision) (Revision, error) {
	s, err := allSlot.SlotFor(rev)
	if err != nil {
		return 0, err
	}
	return allSlot.Revision(s), nil
}
