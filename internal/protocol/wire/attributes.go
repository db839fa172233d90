package wire

import "github.com/annel0/protobridge/internal/protocol/version"

const (
	// DefaultWorldHeight - высота мира до расширения в 1.17.
	DefaultWorldHeight = 256
	// DefaultBlockStateBits - ширина глобальной палитры блоков начиная с 1.16.
	DefaultBlockStateBits = 15
	// DefaultBiomeBits - ширина глобальной палитры биомов.
	DefaultBiomeBits = 6
)

// Attributes - состояние соединения, которое влияет на разбор пакетов.
// Принадлежит одному соединению и не разделяется между горутинами.
type Attributes struct {
	Revision version.Revision
	// WorldHeight задаёт высоту текущего измерения; 0 означает DefaultWorldHeight.
	WorldHeight int
	// HasSkyLight - есть ли у текущего измерения небесный свет.
	HasSkyLight bool
	// BlockStateBits и BiomeBits - ширина глобальных палитр; 0 означает значение по умолчанию.
	BlockStateBits int
	BiomeBits      int

	registries map[string]any
}

// NewAttributes создаёт атрибуты для нормализованной ревизии с параметрами обычного мира.
func NewAttributes(rev version.Revision) *Attributes {
	return &Attributes{Revision: rev, HasSkyLight: true}
}

// Height возвращает высоту мира.
func (a *Attributes) Height() int {
	if a.WorldHeight <= 0 {
		return DefaultWorldHeight
	}
	return a.WorldHeight
}

// GlobalBlockBits возвращает ширину глобальной палитры блоков. Без явного значения
// ширина зависит от ревизии: 13 бит до 1.13, 14 бит до 1.16.
func (a *Attributes) GlobalBlockBits() int {
	if a.BlockStateBits > 0 {
		return a.BlockStateBits
	}
	switch {
	case a.Revision < version.V1_13:
		return 13
	case a.Revision < version.V1_16:
		return 14
	}
	return DefaultBlockStateBits
}

// GlobalBiomeBits возвращает ширину глобальной палитры биомов.
func (a *Attributes) GlobalBiomeBits() int {
	if a.BiomeBits <= 0 {
		return DefaultBiomeBits
	}
	return a.BiomeBits
}

// SetRegistry подменяет реестр для этого соединения (синхронизированные реестры).
func (a *Attributes) SetRegistry(key string, r any) {
	if a.registries == nil {
		a.registries = make(map[string]any)
	}
	a.registries[key] = r
}

// Registry возвращает подменённый реестр соединения.
func (a *Attributes) Registry(key string) (any, bool) {
	r, ok := a.registries[key]
	return r, ok
}
