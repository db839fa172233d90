package packets

import (
	"sort"

	"github.com/annel0/protobridge/internal/catalog"
	"github.com/annel0/protobridge/internal/protocol/nbt"
	"github.com/annel0/protobridge/internal/protocol/packettype"
	"github.com/annel0/protobridge/internal/protocol/version"
	"github.com/annel0/protobridge/internal/protocol/wire"
	"github.com/annel0/protobridge/internal/registry"
)

// RegistryEntry - запись синхронизируемого реестра.
type RegistryEntry struct {
	ID   wire.Identifier
	Data nbt.Tag
}

// RegistryData - реестры, присланные сервером в фазе конфигурации. В 1.20.2-1.20.3
// все реестры приходят одним тегом Codec, начиная с 1.20.5 - по одному на пакет.
type RegistryData struct {
	Codec    *nbt.Compound
	Registry wire.Identifier
	Entries  []RegistryEntry
}

func init() {
	register([]*packettype.Type{packettype.ConfigToClientRegistryData}, readRegistryData, writeRegistryData)
}

func readRegistryData(b *wire.Buffer) RegistryData {
	if b.Revision() < version.V1_20_5 {
		return RegistryData{Codec: b.ReadCompound()}
	}
	return RegistryData{
		Registry: b.ReadIdentifier(),
		Entries:  wire.ReadList(b, readRegistryEntry),
	}
}

func writeRegistryData(b *wire.Buffer, p RegistryData) {
	if b.Revision() < version.V1_20_5 {
		b.WriteCompound(p.Codec)
		return
	}
	b.WriteIdentifier(p.Registry)
	wire.WriteList(b, p.Entries, writeRegistryEntry)
}

func readRegistryEntry(b *wire.Buffer) RegistryEntry {
	e := RegistryEntry{ID: b.ReadIdentifier()}
	if t := wire.ReadOptional(b, (*wire.Buffer).ReadNBT); t != nil {
		e.Data = *t
	}
	return e
}

func writeRegistryEntry(b *wire.Buffer, e RegistryEntry) {
	b.WriteIdentifier(e.ID)
	var t *nbt.Tag
	if e.Data != nil {
		t = &e.Data
	}
	wire.WriteOptional(b, t, (*wire.Buffer).WriteNBT)
}

// Names возвращает имена записей по реестрам в порядке их идентификаторов.
func (p RegistryData) Names() map[string][]wire.Identifier {
	out := make(map[string][]wire.Identifier)
	if p.Codec == nil {
		if !p.Registry.IsZero() {
			names := make([]wire.Identifier, len(p.Entries))
			for i, e := range p.Entries {
				names[i] = e.ID
			}
			out[p.Registry.String()] = names
		}
		return out
	}
	for _, key := range p.Codec.Keys() {
		v, _ := p.Codec.Get(key)
		reg, ok := v.(*nbt.Compound)
		if !ok {
			continue
		}
		regKey := key
		if t, ok := reg.Get("type"); ok {
			if s, ok := t.(nbt.String); ok {
				regKey = string(s)
			}
		}
		out[wire.ParseIdentifier(regKey).String()] = legacyNames(reg)
	}
	return out
}

// legacyNames читает список value: [{name, id}] и упорядочивает его по id.
func legacyNames(reg *nbt.Compound) []wire.Identifier {
	v, ok := reg.Get("value")
	if !ok {
		return nil
	}
	list, ok := v.(*nbt.List)
	if !ok {
		return nil
	}
	type entry struct {
		id   int32
		name wire.Identifier
	}
	entries := make([]entry, 0, len(list.Items))
	for i, item := range list.Items {
		c, ok := item.(*nbt.Compound)
		if !ok {
			continue
		}
		e := entry{id: int32(i)}
		if n, ok := c.Get("name"); ok {
			if s, ok := n.(nbt.String); ok {
				e.name = wire.ParseIdentifier(string(s))
			}
		}
		if id, ok := c.Get("id"); ok {
			if n, ok := id.(nbt.Int); ok {
				e.id = int32(n)
			}
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].id < entries[j].id })
	out := make([]wire.Identifier, len(entries))
	for i, e := range entries {
		out[i] = e.name
	}
	return out
}

// InstallRegistries подменяет в атрибутах соединения встроенные реестры
// присланными сервером. Реестры без встроенного аналога пропускаются.
// Возвращает ключи установленных реестров.
func InstallRegistries(attrs *wire.Attributes, p RegistryData) []string {
	var installed []string
	for key, names := range p.Names() {
		switch key {
		case catalog.Sounds().Key().String():
			registry.NewSimple(catalog.Sounds(), names).Install(attrs)
		case catalog.Paintings().Key().String():
			registry.NewSimple(catalog.Paintings(), names).Install(attrs)
		case catalog.Instruments().Key().String():
			registry.NewSimple(catalog.Instruments(), names).Install(attrs)
		default:
			continue
		}
		installed = append(installed, key)
	}
	sort.Strings(installed)
	return installed
}
