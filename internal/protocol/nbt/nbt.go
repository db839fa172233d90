// Package nbt - дерево именованных тегов поверх кодека github.com/Tnze/go-mc/nbt:
// big-endian, строки в modified UTF-8, порядок ключей составного тега сохраняется.
package nbt

import (
	"errors"
	"fmt"

	gonbt "github.com/Tnze/go-mc/nbt"
)

// Идентификаторы типов тегов.
const (
	TagEnd       = gonbt.TagEnd
	TagByte      = gonbt.TagByte
	TagShort     = gonbt.TagShort
	TagInt       = gonbt.TagInt
	TagLong      = gonbt.TagLong
	TagFloat     = gonbt.TagFloat
	TagDouble    = gonbt.TagDouble
	TagByteArray = gonbt.TagByteArray
	TagString    = gonbt.TagString
	TagList      = gonbt.TagList
	TagCompound  = gonbt.TagCompound
	TagIntArray  = gonbt.TagIntArray
	TagLongArray = gonbt.TagLongArray
)

// MaxDepth ограничивает вложенность при чтении.
const MaxDepth = 512

var (
	ErrInvalidTag = errors.New("nbt: неизвестный тип тега")
	ErrTooDeep    = errors.New("nbt: слишком глубокая вложенность")
	ErrBadLength  = errors.New("nbt: недопустимая длина")
)

// Tag - любое значение дерева.
type Tag interface {
	Type() byte
}

type (
	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	ByteArray []byte
	String    string
	IntArray  []int32
	LongArray []int64
)

func (Byte) Type() byte      { return TagByte }
func (Short) Type() byte     { return TagShort }
func (Int) Type() byte       { return TagInt }
func (Long) Type() byte      { return TagLong }
func (Float) Type() byte     { return TagFloat }
func (Double) Type() byte    { return TagDouble }
func (ByteArray) Type() byte { return TagByteArray }
func (String) Type() byte    { return TagString }
func (IntArray) Type() byte  { return TagIntArray }
func (LongArray) Type() byte { return TagLongArray }

// List - однородный список. Elem задаёт тип элементов даже для пустого списка.
type List struct {
	Elem  byte
	Items []Tag
}

func (*List) Type() byte { return TagList }

// Compound - составной тег с сохранением порядка вставки ключей.
// Name - имя корня в именованном формате; у вложенных тегов не используется.
type Compound struct {
	Name string
	keys []string
	vals map[string]Tag
}

func (*Compound) Type() byte { return TagCompound }

// NewCompound создаёт пустой составной тег.
func NewCompound() *Compound {
	return &Compound{vals: make(map[string]Tag)}
}

// Set задаёт значение. Повторная запись сохраняет исходную позицию ключа.
func (c *Compound) Set(key string, v Tag) *Compound {
	if c.vals == nil {
		c.vals = make(map[string]Tag)
	}
	if _, ok := c.vals[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.vals[key] = v
	return c
}

// Get возвращает значение по ключу.
func (c *Compound) Get(key string) (Tag, bool) {
	v, ok := c.vals[key]
	return v, ok
}

// Keys возвращает ключи в порядке вставки.
func (c *Compound) Keys() []string {
	cp := make([]string, len(c.keys))
	copy(cp, c.keys)
	return cp
}

// Len возвращает число ключей.
func (c *Compound) Len() int {
	return len(c.keys)
}

// String для отладочного вывода.
func (c *Compound) String() string {
	return fmt.Sprintf("compound%v", c.keys)
}
