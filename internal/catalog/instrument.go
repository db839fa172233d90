package catalog

import (
	"fmt"

	"github.com/annel0/protobridge/internal/protocol/nbt"
	"github.com/annel0/protobridge/internal/protocol/version"
	"github.com/annel0/protobridge/internal/protocol/wire"
	"github.com/annel0/protobridge/internal/registry"
)

// Instrument - инструмент козьего рога.
type Instrument struct {
	registry.Entry
	Sound       Sound
	UseSeconds  float32
	Range       float32
	Description nbt.Tag
}

const (
	goatHornSeconds = 7
	goatHornRange   = 256
)

func buildInstruments() (*registry.Versioned[Instrument], error) {
	lf, _, err := readListing("instrument.yaml")
	if err != nil {
		return nil, err
	}
	r, err := registry.NewVersioned(lf, func(e registry.Entry) Instrument {
		return Instrument{Entry: e}
	})
	if err != nil {
		return nil, err
	}
	for i, name := range listedNames(lf) {
		sound := wire.ParseIdentifier(fmt.Sprintf("item.goat_horn.sound.%d", i))
		if _, err := r.Define(name, func(e registry.Entry) Instrument {
			n, _ := e.Name()
			return Instrument{
				Entry:       e,
				Sound:       Sound{Entry: registry.NamedEntry(sound), SoundID: sound},
				UseSeconds:  goatHornSeconds,
				Range:       goatHornRange,
				Description: nbt.NewCompound().Set("translate", nbt.String("instrument."+n.Namespace+"."+n.Path)),
			}
		}); err != nil {
			return nil, err
		}
	}
	return r, r.Freeze()
}

// ReadInstrumentInline читает инструмент целиком. До 1.21.2 длительность
// передаётся в тиках и описания нет.
func ReadInstrumentInline(b *wire.Buffer) Instrument {
	p := Instrument{Entry: registry.DynamicEntry(-1)}
	p.Sound = registry.ReadHolder(b, Sounds(), ReadSoundInline)
	if b.Revision() >= version.V1_21_2 {
		p.UseSeconds = b.ReadFloat32()
	} else {
		p.UseSeconds = float32(b.ReadVarInt()) / 20
	}
	p.Range = b.ReadFloat32()
	if b.Revision() >= version.V1_21_2 {
		p.Description = b.ReadNBT()
	}
	return p
}

// WriteInstrumentInline записывает инструмент целиком.
func WriteInstrumentInline(b *wire.Buffer, p Instrument) {
	registry.WriteHolder(b, Sounds(), p.Sound, WriteSoundInline)
	if b.Revision() >= version.V1_21_2 {
		b.WriteFloat32(p.UseSeconds)
	} else {
		b.WriteVarInt(int32(p.UseSeconds * 20))
	}
	b.WriteFloat32(p.Range)
	if b.Revision() >= version.V1_21_2 {
		b.WriteNBT(p.Description)
	}
}

func readInstrumentHolder(b *wire.Buffer) Instrument {
	return registry.ReadHolder(b, Instruments(), ReadInstrumentInline)
}

func writeInstrumentHolder(b *wire.Buffer, p Instrument) {
	registry.WriteHolder(b, Instruments(), p, WriteInstrumentInline)
}

// ReadInstrumentComponent читает компонент предмета instrument. С 1.21.5 он
// передаётся держателем либо одним именем, раньше - только держателем.
func ReadInstrumentComponent(b *wire.Buffer) registry.MaybeMapped[Instrument] {
	if b.Revision() >= version.V1_21_5 {
		return registry.ReadMaybeMapped(b, Instruments(), readInstrumentHolder)
	}
	v := readInstrumentHolder(b)
	if v.IsStatic() {
		return registry.Of(v, registry.For(b.Attrs(), Instruments()))
	}
	return registry.Inline(v)
}

// WriteInstrumentComponent записывает компонент; до 1.21.5 ссылка по имени
// разрешается и передаётся держателем.
func WriteInstrumentComponent(b *wire.Buffer, m registry.MaybeMapped[Instrument]) {
	if b.Revision() >= version.V1_21_5 {
		registry.WriteMaybeMapped(b, m, writeInstrumentHolder)
		return
	}
	v, ok := m.Get()
	if !ok {
		b.Fail(fmt.Errorf("%w: инструмент %s", registry.ErrUnmapped, m.Name()))
		return
	}
	writeInstrumentHolder(b, v)
}
