package wire

// ReadOptional читает флаг присутствия и, если он установлен, значение.
func ReadOptional[T any](b *Buffer, read func(*Buffer) T) *T {
	if !b.ReadBool() || b.err != nil {
		return nil
	}
	v := read(b)
	if b.err != nil {
		return nil
	}
	return &v
}

func WriteOptional[T any](b *Buffer, v *T, write func(*Buffer, T)) {
	b.WriteBool(v != nil)
	if v != nil {
		write(b, *v)
	}
}

// ReadList читает varint-количество и элементы.
func ReadList[T any](b *Buffer, read func(*Buffer) T) []T {
	n := b.readLength(1)
	if b.err != nil {
		return nil
	}
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v := read(b)
		if b.err != nil {
			return nil
		}
		out = append(out, v)
	}
	return out
}

func WriteList[T any](b *Buffer, items []T, write func(*Buffer, T)) {
	b.WriteVarInt(int32(len(items)))
	for _, v := range items {
		write(b, v)
	}
}

// ReadMap читает varint-количество пар ключ-значение.
func ReadMap[K comparable, V any](b *Buffer, readK func(*Buffer) K, readV func(*Buffer) V) map[K]V {
	n := b.readLength(1)
	if b.err != nil {
		return nil
	}
	out := make(map[K]V, n)
	for i := 0; i < n; i++ {
		k := readK(b)
		v := readV(b)
		if b.err != nil {
			return nil
		}
		out[k] = v
	}
	return out
}

// WriteMap записывает пары в порядке keys; ключи, которых нет в m, пропускаются.
func WriteMap[K comparable, V any](b *Buffer, keys []K, m map[K]V, writeK func(*Buffer, K), writeV func(*Buffer, V)) {
	present := make([]K, 0, len(keys))
	for _, k := range keys {
		if _, ok := m[k]; ok {
			present = append(present, k)
		}
	}
	b.WriteVarInt(int32(len(present)))
	for _, k := range present {
		writeK(b, k)
		writeV(b, m[k])
	}
}

// Either - значение одного из двух видов. На проводе ему предшествует флаг:
// true означает левое значение.
type Either[L, R any] struct {
	left   L
	right  R
	isLeft bool
}

func Left[L, R any](v L) Either[L, R] {
	return Either[L, R]{left: v, isLeft: true}
}

func Right[L, R any](v R) Either[L, R] {
	return Either[L, R]{right: v}
}

func (e Either[L, R]) IsLeft() bool {
	return e.isLeft
}

func (e Either[L, R]) Left() (L, bool) {
	return e.left, e.isLeft
}

func (e Either[L, R]) Right() (R, bool) {
	return e.right, !e.isLeft
}

func ReadEither[L, R any](b *Buffer, readL func(*Buffer) L, readR func(*Buffer) R) Either[L, R] {
	if b.ReadBool() {
		return Left[L, R](readL(b))
	}
	return Right[L, R](readR(b))
}

func WriteEither[L, R any](b *Buffer, e Either[L, R], writeL func(*Buffer, L), writeR func(*Buffer, R)) {
	b.WriteBool(e.isLeft)
	if e.isLeft {
		writeL(b, e.left)
	} else {
		writeR(b, e.right)
	}
}
