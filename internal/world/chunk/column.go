// Package chunk реализует кодек столбца чанка для всех поддерживаемых ревизий.
//
// Column не зависит от ревизии: кодек сам выбирает разметку (битовые маски,
// карты высот, расположение биомов, свет) по ревизии буфера и высоте мира
// из атрибутов соединения.
package chunk

import (
	"fmt"

	"github.com/annel0/protobridge/internal/protocol/nbt"
)

const (
	// SectionVolume - число блоков в секции 16x16x16.
	SectionVolume = 16 * 16 * 16
	// BiomeVolume - число ячеек биомов в секции 4x4x4.
	BiomeVolume = 4 * 4 * 4
	// LightLength - размер полубайтового массива света секции.
	LightLength = SectionVolume / 2
	// LegacySections - число секций до динамической высоты мира.
	LegacySections = 16
)

// Column - столбец чанка.
type Column struct {
	X, Z int32
	// FullChunk - столбец целиком; с 1.17 всегда true.
	FullChunk bool
	// IgnoreOldData передаётся только в 1.16 и 1.16.1.
	IgnoreOldData bool
	// Sections - секции снизу вверх, nil означает отсутствующую секцию.
	Sections []*Section
	// Biomes - биомы уровня столбца (до 1.18); с 1.18 биомы хранятся в секциях.
	Biomes       []int32
	Heightmaps   map[HeightmapType][]int64
	TileEntities []TileEntity
	// Light передаётся вместе с чанком начиная с 1.18.
	Light *LightData
}

// Section - секция 16x16x16.
type Section struct {
	// BlockCount - число непустых блоков. До 1.14 не передаётся и вычисляется при чтении.
	BlockCount int16
	Blocks     Container
	// Biomes - контейнер биомов секции, только с 1.18.
	Biomes *Container
	// BlockLight и SkyLight - свет секции до 1.14. SkyLight отсутствует в измерениях без неба.
	BlockLight []byte
	SkyLight   []byte
}

// EmptySection возвращает секцию, заполненную воздухом.
func EmptySection() *Section {
	biomes := Uniform(0)
	return &Section{Blocks: Uniform(0), Biomes: &biomes}
}

// TileEntity - данные блока-сущности. До 1.18 передаётся только тег.
type TileEntity struct {
	// PackedXZ - локальные координаты: x в старших четырёх битах, z в младших.
	PackedXZ byte
	Y        int16
	Type     int32
	Tag      nbt.Tag
}

// LightData - свет столбца (1.18+).
type LightData struct {
	// TrustEdges передаётся до 1.20.
	TrustEdges     bool
	SkyMask        []int64
	BlockMask      []int64
	EmptySkyMask   []int64
	EmptyBlockMask []int64
	SkyLight       [][]byte
	BlockLight     [][]byte
}

// HeightmapType - вид карты высот. Значение совпадает с номером на проводе.
type HeightmapType int32

const (
	WorldSurfaceWG HeightmapType = iota
	WorldSurface
	OceanFloorWG
	OceanFloor
	MotionBlocking
	MotionBlockingNoLeaves
)

var heightmapKeys = [...]string{
	WorldSurfaceWG:         "WORLD_SURFACE_WG",
	WorldSurface:           "WORLD_SURFACE",
	OceanFloorWG:           "OCEAN_FLOOR_WG",
	OceanFloor:             "OCEAN_FLOOR",
	MotionBlocking:         "MOTION_BLOCKING",
	MotionBlockingNoLeaves: "MOTION_BLOCKING_NO_LEAVES",
}

// Key возвращает ключ карты высот в составном теге.
func (t HeightmapType) Key() string {
	if t < 0 || int(t) >= len(heightmapKeys) {
		return fmt.Sprintf("HEIGHTMAP_%d", int32(t))
	}
	return heightmapKeys[t]
}

func (t HeightmapType) String() string {
	return t.Key()
}

// heightmapByKey ищет вид карты по ключу тега.
func heightmapByKey(key string) (HeightmapType, bool) {
	for i, k := range heightmapKeys {
		if k == key {
			return HeightmapType(i), true
		}
	}
	return 0, false
}
