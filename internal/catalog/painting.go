package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/annel0/protobridge/internal/protocol/wire"
	"github.com/annel0/protobridge/internal/registry"
)

// Painting - вариант картины.
type Painting struct {
	registry.Entry
	Width   int32
	Height  int32
	AssetID wire.Identifier
}

func buildPaintings() (*registry.Versioned[Painting], error) {
	lf, raw, err := readListing("painting_variant.yaml")
	if err != nil {
		return nil, err
	}
	var extra struct {
		Sizes map[string][2]int32 `yaml:"sizes"`
	}
	if err := yaml.Unmarshal(raw, &extra); err != nil {
		return nil, fmt.Errorf("ошибка разбора размеров картин: %w", err)
	}

	r, err := registry.NewVersioned(lf, func(e registry.Entry) Painting {
		p := Painting{Entry: e}
		if n, ok := e.Name(); ok {
			p.AssetID = n
		}
		return p
	})
	if err != nil {
		return nil, err
	}
	for _, name := range listedNames(lf) {
		size, ok := extra.Sizes[name]
		if !ok {
			return nil, fmt.Errorf("картина %s: не задан размер", name)
		}
		if _, err := r.Define(name, func(e registry.Entry) Painting {
			n, _ := e.Name()
			return Painting{Entry: e, Width: size[0], Height: size[1], AssetID: n}
		}); err != nil {
			return nil, err
		}
	}
	return r, r.Freeze()
}

// ReadPaintingInline читает вариант картины, переданный целиком.
func ReadPaintingInline(b *wire.Buffer) Painting {
	w := b.ReadVarInt()
	h := b.ReadVarInt()
	asset := b.ReadIdentifier()
	return Painting{Entry: registry.NamedEntry(asset), Width: w, Height: h, AssetID: asset}
}

// WritePaintingInline записывает вариант картины целиком.
func WritePaintingInline(b *wire.Buffer, p Painting) {
	b.WriteVarInt(p.Width)
	b.WriteVarInt(p.Height)
	b.WriteIdentifier(p.AssetID)
}
