// Package packettype задаёт каталог семантических типов пакетов и сопоставляет
// их с опкодами конкретной ревизии протокола.
//
// Каталог неизменен между ревизиями, меняются только опкоды. Таблицы опкодов
// скомпилированы в пакет (data/*.yaml): в каждой ревизии позиция имени в списке
// равна опкоду.
package packettype

import (
	"fmt"

	"github.com/annel0/protobridge/internal/protocol/version"
)

// Direction - направление пакета.
type Direction uint8

const (
	ToServer Direction = iota
	ToClient
)

func (d Direction) String() string {
	switch d {
	case ToServer:
		return "to_server"
	case ToClient:
		return "to_client"
	}
	return fmt.Sprintf("direction(%d)", d)
}

// ParseDirection разбирает имя направления.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "to_server", "serverbound":
		return ToServer, nil
	case "to_client", "clientbound":
		return ToClient, nil
	}
	return 0, fmt.Errorf("неизвестное направление %q", s)
}

// Phase - фаза соединения. Фазы сменяются только вперёд.
type Phase uint8

const (
	Handshake Phase = iota
	Status
	Login
	Configuration
	Play
)

func (p Phase) String() string {
	switch p {
	case Handshake:
		return "handshake"
	case Status:
		return "status"
	case Login:
		return "login"
	case Configuration:
		return "configuration"
	case Play:
		return "play"
	}
	return fmt.Sprintf("phase(%d)", p)
}

// ParsePhase разбирает имя фазы.
func ParsePhase(s string) (Phase, error) {
	for p := Handshake; p <= Play; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("неизвестная фаза %q", s)
}

// flat сообщает, что опкоды фазы не зависят от ревизии.
func (p Phase) flat() bool {
	return p == Handshake || p == Status || p == Login
}

// CanTransition проверяет допустимость перехода фаз для ревизии.
// Конфигурация существует начиная с 1.20.2; до неё вход ведёт сразу в игру.
func CanTransition(from, to Phase, rev version.Revision) bool {
	switch from {
	case Handshake:
		return to == Status || to == Login
	case Login:
		if rev >= version.V1_20_2 {
			return to == Configuration
		}
		return to == Play
	case Configuration:
		return to == Play
	}
	return false
}

// Type - семантический тип пакета. Идентичность типа - его позиция
// в каталоге раздела (направление, фаза).
type Type struct {
	name   string
	dir    Direction
	phase  Phase
	index  int
	flatID int32
}

func (t *Type) Name() string         { return t.name }
func (t *Type) Direction() Direction { return t.dir }
func (t *Type) Phase() Phase         { return t.phase }

func (t *Type) String() string {
	return t.phase.String() + "/" + t.dir.String() + "/" + t.name
}

type partitionKey struct {
	dir   Direction
	phase Phase
}

func (k partitionKey) String() string {
	return k.phase.String() + "/" + k.dir.String()
}

// catalog - объявленные типы по разделам в порядке объявления.
var catalog = make(map[partitionKey][]*Type)

func declare(dir Direction, phase Phase, name string) *Type {
	return declareFlat(dir, phase, name, -1)
}

func declareFlat(dir Direction, phase Phase, name string, id int32) *Type {
	k := partitionKey{dir: dir, phase: phase}
	t := &Type{name: name, dir: dir, phase: phase, index: len(catalog[k]), flatID: id}
	catalog[k] = append(catalog[k], t)
	return t
}
