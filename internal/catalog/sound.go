package catalog

import (
	"github.com/annel0/protobridge/internal/protocol/wire"
	"github.com/annel0/protobridge/internal/registry"
)

// Sound - звуковое событие. У встроенных звуков SoundID совпадает с именем записи;
// звук, присланный целиком, задаёт SoundID и необязательную дальность.
type Sound struct {
	registry.Entry
	SoundID wire.Identifier
	Range   *float32
}

func buildSounds() (*registry.Versioned[Sound], error) {
	lf, _, err := readListing("sound_event.yaml")
	if err != nil {
		return nil, err
	}
	r, err := registry.NewVersioned(lf, func(e registry.Entry) Sound {
		s := Sound{Entry: e}
		if n, ok := e.Name(); ok {
			s.SoundID = n
		}
		return s
	})
	if err != nil {
		return nil, err
	}
	for _, name := range listedNames(lf) {
		if _, err := r.Define(name, func(e registry.Entry) Sound {
			n, _ := e.Name()
			return Sound{Entry: e, SoundID: n}
		}); err != nil {
			return nil, err
		}
	}
	return r, r.Freeze()
}

// ReadSoundInline читает звук, переданный целиком: идентификатор и необязательная дальность.
func ReadSoundInline(b *wire.Buffer) Sound {
	id := b.ReadIdentifier()
	rng := wire.ReadOptional(b, (*wire.Buffer).ReadFloat32)
	return Sound{Entry: registry.NamedEntry(id), SoundID: id, Range: rng}
}

// WriteSoundInline записывает звук целиком.
func WriteSoundInline(b *wire.Buffer, s Sound) {
	b.WriteIdentifier(s.SoundID)
	wire.WriteOptional(b, s.Range, (*wire.Buffer).WriteFloat32)
}
