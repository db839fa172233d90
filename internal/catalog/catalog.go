// Package catalog содержит встроенные реестры, которые нужны кодекам пакетов:
// звуки, варианты картин и инструменты. Списки идентификаторов скомпилированы в data/.
package catalog

import (
	"embed"
	"fmt"
	"sync"

	"github.com/annel0/protobridge/internal/registry"
)

//go:embed data/*.yaml
var dataFS embed.FS

var (
	prepareOnce sync.Once
	prepareErr  error

	sounds      *registry.Versioned[Sound]
	paintings   *registry.Versioned[Painting]
	instruments *registry.Versioned[Instrument]
)

// Prepare собирает встроенные реестры. Идемпотентна.
func Prepare() error {
	prepareOnce.Do(func() {
		if sounds, prepareErr = buildSounds(); prepareErr != nil {
			return
		}
		if paintings, prepareErr = buildPaintings(); prepareErr != nil {
			return
		}
		instruments, prepareErr = buildInstruments()
	})
	return prepareErr
}

// Sounds возвращает реестр звуков. Паникует при дефекте встроенных данных.
func Sounds() *registry.Versioned[Sound] {
	mustPrepare()
	return sounds
}

// Paintings возвращает реестр вариантов картин.
func Paintings() *registry.Versioned[Painting] {
	mustPrepare()
	return paintings
}

// Instruments возвращает реестр инструментов.
func Instruments() *registry.Versioned[Instrument] {
	mustPrepare()
	return instruments
}

func mustPrepare() {
	if err := Prepare(); err != nil {
		panic(err)
	}
}

func readListing(name string) (registry.ListingFile, []byte, error) {
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return registry.ListingFile{}, nil, fmt.Errorf("ошибка чтения %s: %w", name, err)
	}
	lf, err := registry.ParseListing(raw)
	return lf, raw, err
}

// listedNames возвращает имена из всех ревизий в порядке первого появления.
func listedNames(lf registry.ListingFile) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range lf.Revisions {
		for _, n := range l.Entries {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}
