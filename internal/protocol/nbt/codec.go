package nbt

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	gonbt "github.com/Tnze/go-mc/nbt"
)

const maxArrayLen = 1 << 24

// Reader - источник байтов для декодера. Возврат байта нужен, чтобы отличить
// пустой корень до передачи потока декодеру go-mc.
type Reader interface {
	io.Reader
	io.ByteScanner
}

// Read читает корневой тег. При named=true за типом следует имя корня (до 1.20.2),
// иначе корень безымянный. TagEnd в корне означает отсутствующее значение: (nil, nil).
// Имя именованного составного корня сохраняется в Compound.Name.
func Read(r Reader, named bool) (Tag, error) {
	id, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения типа корня: %w", err)
	}
	if id == TagEnd {
		return nil, nil
	}
	if err := r.UnreadByte(); err != nil {
		return nil, err
	}

	dec := gonbt.NewDecoder(r)
	dec.NetworkFormat(!named)
	var root rootTag
	name, err := dec.Decode(&root)
	if err != nil {
		return nil, err
	}
	if c, ok := root.tag.(*Compound); ok {
		c.Name = name
	}
	return root.tag, nil
}

// Write записывает корневой тег; nil записывается как TagEnd.
// В именованном формате корень получает имя из Compound.Name.
func Write(w io.Writer, t Tag, named bool) error {
	if t == nil {
		_, err := w.Write([]byte{TagEnd})
		return err
	}
	var name string
	if c, ok := t.(*Compound); ok {
		name = c.Name
	}
	enc := gonbt.NewEncoder(w)
	enc.NetworkFormat(!named)
	return enc.Encode(rootTag{tag: t}, name)
}

// rootTag отдаёт заголовок корня кодеку go-mc, а полезную нагрузку пишет и
// читает сам: порядок ключей и modified UTF-8 в строках сохраняются.
type rootTag struct {
	tag Tag
}

func (r rootTag) TagType() byte {
	return r.tag.Type()
}

func (r rootTag) MarshalNBT(w io.Writer) error {
	return writePayload(w, r.tag)
}

func (r *rootTag) UnmarshalNBT(tagType byte, rd gonbt.DecoderReader) error {
	t, err := readPayload(rd, tagType, 0)
	if err != nil {
		return err
	}
	r.tag = t
	return nil
}

func readPayload(r gonbt.DecoderReader, id byte, depth int) (Tag, error) {
	if depth > MaxDepth {
		return nil, ErrTooDeep
	}
	switch id {
	case TagByte:
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		return Byte(int8(b)), nil
	case TagShort:
		v, err := readN(r, 2)
		if err != nil {
			return nil, err
		}
		return Short(int16(binary.BigEndian.Uint16(v))), nil
	case TagInt:
		v, err := readN(r, 4)
		if err != nil {
			return nil, err
		}
		return Int(int32(binary.BigEndian.Uint32(v))), nil
	case TagLong:
		v, err := readN(r, 8)
		if err != nil {
			return nil, err
		}
		return Long(int64(binary.BigEndian.Uint64(v))), nil
	case TagFloat:
		v, err := readN(r, 4)
		if err != nil {
			return nil, err
		}
		return Float(math.Float32frombits(binary.BigEndian.Uint32(v))), nil
	case TagDouble:
		v, err := readN(r, 8)
		if err != nil {
			return nil, err
		}
		return Double(math.Float64frombits(binary.BigEndian.Uint64(v))), nil
	case TagByteArray:
		n, err := readLen(r)
		if err != nil {
			return nil, err
		}
		v, err := readN(r, n)
		if err != nil {
			return nil, err
		}
		return ByteArray(v), nil
	case TagString:
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case TagList:
		elem, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		n, err := readLen(r)
		if err != nil {
			return nil, err
		}
		l := &List{Elem: elem}
		for i := 0; i < n; i++ {
			item, err := readPayload(r, elem, depth+1)
			if err != nil {
				return nil, err
			}
			l.Items = append(l.Items, item)
		}
		return l, nil
	case TagCompound:
		c := NewCompound()
		for {
			child, err := r.ReadByte()
			if err != nil {
				return nil, err
			}
			if child == TagEnd {
				return c, nil
			}
			name, err := readString(r)
			if err != nil {
				return nil, err
			}
			v, err := readPayload(r, child, depth+1)
			if err != nil {
				return nil, err
			}
			c.Set(name, v)
		}
	case TagIntArray:
		n, err := readLen(r)
		if err != nil {
			return nil, err
		}
		raw, err := readN(r, n*4)
		if err != nil {
			return nil, err
		}
		v := make(IntArray, n)
		for i := range v {
			v[i] = int32(binary.BigEndian.Uint32(raw[i*4:]))
		}
		return v, nil
	case TagLongArray:
		n, err := readLen(r)
		if err != nil {
			return nil, err
		}
		raw, err := readN(r, n*8)
		if err != nil {
			return nil, err
		}
		v := make(LongArray, n)
		for i := range v {
			v[i] = int64(binary.BigEndian.Uint64(raw[i*8:]))
		}
		return v, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrInvalidTag, id)
}

func writePayload(w io.Writer, t Tag) error {
	var buf []byte
	switch v := t.(type) {
	case Byte:
		buf = []byte{byte(v)}
	case Short:
		buf = binary.BigEndian.AppendUint16(nil, uint16(v))
	case Int:
		buf = binary.BigEndian.AppendUint32(nil, uint32(v))
	case Long:
		buf = binary.BigEndian.AppendUint64(nil, uint64(v))
	case Float:
		buf = binary.BigEndian.AppendUint32(nil, math.Float32bits(float32(v)))
	case Double:
		buf = binary.BigEndian.AppendUint64(nil, math.Float64bits(float64(v)))
	case ByteArray:
		buf = binary.BigEndian.AppendUint32(nil, uint32(len(v)))
		buf = append(buf, v...)
	case String:
		return writeString(w, string(v))
	case IntArray:
		buf = binary.BigEndian.AppendUint32(nil, uint32(len(v)))
		for _, x := range v {
			buf = binary.BigEndian.AppendUint32(buf, uint32(x))
		}
	case LongArray:
		buf = binary.BigEndian.AppendUint32(nil, uint32(len(v)))
		for _, x := range v {
			buf = binary.BigEndian.AppendUint64(buf, uint64(x))
		}
	case *List:
		elem := v.Elem
		if len(v.Items) > 0 {
			elem = v.Items[0].Type()
		}
		head := append([]byte{elem}, binary.BigEndian.AppendUint32(nil, uint32(len(v.Items)))...)
		if _, err := w.Write(head); err != nil {
			return err
		}
		for _, item := range v.Items {
			if item.Type() != elem {
				return fmt.Errorf("nbt: неоднородный список: %d среди %d", item.Type(), elem)
			}
			if err := writePayload(w, item); err != nil {
				return err
			}
		}
		return nil
	case *Compound:
		for _, k := range v.keys {
			child := v.vals[k]
			if _, err := w.Write([]byte{child.Type()}); err != nil {
				return err
			}
			if err := writeString(w, k); err != nil {
				return err
			}
			if err := writePayload(w, child); err != nil {
				return err
			}
		}
		_, err := w.Write([]byte{TagEnd})
		return err
	default:
		return fmt.Errorf("%w: %T", ErrInvalidTag, t)
	}
	_, err := w.Write(buf)
	return err
}

func readN(r gonbt.DecoderReader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func readLen(r gonbt.DecoderReader) (int, error) {
	v, err := readN(r, 4)
	if err != nil {
		return 0, err
	}
	n := int32(binary.BigEndian.Uint32(v))
	if n < 0 || n > maxArrayLen {
		return 0, fmt.Errorf("%w: %d", ErrBadLength, n)
	}
	return int(n), nil
}

func readString(r gonbt.DecoderReader) (string, error) {
	v, err := readN(r, 2)
	if err != nil {
		return "", err
	}
	raw, err := readN(r, int(binary.BigEndian.Uint16(v)))
	if err != nil {
		return "", err
	}
	return decodeMUTF8(raw)
}

func writeString(w io.Writer, s string) error {
	raw := encodeMUTF8(s)
	if len(raw) > math.MaxUint16 {
		return fmt.Errorf("nbt: строка длиннее %d байт", math.MaxUint16)
	}
	_, err := w.Write(append(binary.BigEndian.AppendUint16(nil, uint16(len(raw))), raw...))
	return err
}
